package repository

import (
	"context"

	"devops-assistant/internal/domain/entity"
)

// ArtifactRepository stores generated artifact records for the API.
type ArtifactRepository interface {
	SaveArtifacts(ctx context.Context, artifacts []*entity.Artifact) error
	GetByJobID(ctx context.Context, jobID string) ([]*entity.Artifact, error)
	DeleteByJobID(ctx context.Context, jobID string) error
}

// ArtifactWriter materializes artifacts on disk, one directory per job,
// each file under the fixed name for its target kind. Overwrites silently.
type ArtifactWriter interface {
	WriteArtifacts(ctx context.Context, jobID string, artifacts []*entity.Artifact) (dir string, err error)
	ReadArtifact(ctx context.Context, jobID, name string) (string, error)
	JobDir(jobID string) string
	DeleteJob(ctx context.Context, jobID string) error
}
