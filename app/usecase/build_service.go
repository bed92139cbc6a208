package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/domain/repository"
)

// BuildService runs container builds against a job's generated Dockerfile.
// The build runs to completion within the request; a failing build is
// reported as an unsuccessful outcome, never as an error.
type BuildService struct {
	jobs    repository.JobRepository
	writer  repository.ArtifactWriter
	builder repository.ImageBuilder
	logger  *slog.Logger
}

func NewBuildService(
	jobs repository.JobRepository,
	writer repository.ArtifactWriter,
	builder repository.ImageBuilder,
	logger *slog.Logger,
) *BuildService {
	return &BuildService{jobs: jobs, writer: writer, builder: builder, logger: logger}
}

// Run builds the job's Dockerfile. imageTag may be empty; the job's image
// parameters (or a job-derived default) are used then. When logSink is
// non-nil the build output is streamed to it as it is produced.
func (s *BuildService) Run(ctx context.Context, jobID, imageTag string, logSink io.Writer) (entity.BuildOutcome, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return entity.BuildOutcome{}, err
	}
	if job == nil {
		return entity.BuildOutcome{}, ErrJobNotFound
	}
	if job.Kind != entity.TargetDockerfile {
		return entity.BuildOutcome{}, entity.NewValidationError("job_id",
			fmt.Sprintf("job %s produced %s, not a Dockerfile", jobID, job.Kind))
	}

	if imageTag == "" {
		imageTag = defaultImageTag(job)
	}

	dockerfilePath := filepath.Join(s.writer.JobDir(jobID), entity.TargetDockerfile.ArtifactFileName())
	outcome, err := s.builder.Build(ctx, dockerfilePath, imageTag, logSink)
	if err != nil {
		return entity.BuildOutcome{}, err
	}

	job.Build = &outcome
	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.Error("persist build outcome", "job_id", jobID, "err", err)
	}

	s.logger.Info("build finished", "job_id", jobID, "image", imageTag, "success", outcome.Success)
	return outcome, nil
}

func defaultImageTag(job *entity.Job) string {
	name := job.Params[entity.ParamImageName]
	if name == "" {
		name = "devassist-" + job.ID[:8]
	}
	tag := job.Params[entity.ParamImageTag]
	if tag == "" {
		tag = "latest"
	}
	return name + ":" + tag
}
