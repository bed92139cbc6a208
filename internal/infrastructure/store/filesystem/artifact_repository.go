package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/domain/repository"
	"devops-assistant/internal/infrastructure/metrics"
)

// ArtifactRepository materializes generated files under basePath/<jobID>/.
// Writes overwrite existing files of the same name completely; there is no
// versioning and no atomic replace.
type ArtifactRepository struct {
	basePath string
}

func NewArtifactRepository(basePath string) (*ArtifactRepository, error) {
	info, err := os.Stat(basePath)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(basePath, 0o755); mkErr != nil {
			return nil, fmt.Errorf("create directory %s: %w", basePath, mkErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("check directory %s: %w", basePath, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %s exists but is not a directory", basePath)
	}

	return &ArtifactRepository{basePath: basePath}, nil
}

var _ repository.ArtifactWriter = (*ArtifactRepository)(nil)

func (r *ArtifactRepository) BasePath() string {
	return r.basePath
}

func (r *ArtifactRepository) JobDir(jobID string) string {
	return filepath.Join(r.basePath, jobID)
}

func (r *ArtifactRepository) WriteArtifacts(ctx context.Context, jobID string, artifacts []*entity.Artifact) (string, error) {
	metrics.IncStoreOp("put")

	jobDir := r.JobDir(jobID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return "", fmt.Errorf("create job directory: %w", err)
	}

	for _, a := range artifacts {
		path := filepath.Join(jobDir, a.Name)
		if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
			metrics.IncError("fs_artifact_repo", "write_error")
			return "", fmt.Errorf("write file %s: %w", a.Name, err)
		}
	}

	metadata := map[string]any{
		"job_id":      jobID,
		"created_at":  time.Now().UTC(),
		"files_count": len(artifacts),
		"files":       artifacts,
	}
	metadataData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(jobDir, "metadata.json"), metadataData, 0o644); err != nil {
		metrics.IncError("fs_artifact_repo", "write_error")
		return "", fmt.Errorf("write metadata: %w", err)
	}

	return jobDir, nil
}

func (r *ArtifactRepository) ReadArtifact(ctx context.Context, jobID, name string) (string, error) {
	metrics.IncStoreOp("get")

	content, err := os.ReadFile(filepath.Join(r.JobDir(jobID), name))
	if err != nil {
		return "", fmt.Errorf("read artifact %s of job %s: %w", name, jobID, err)
	}
	return string(content), nil
}

func (r *ArtifactRepository) DeleteJob(ctx context.Context, jobID string) error {
	metrics.IncStoreOp("delete")

	if err := os.RemoveAll(r.JobDir(jobID)); err != nil {
		return fmt.Errorf("delete job directory: %w", err)
	}
	return nil
}
