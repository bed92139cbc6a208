package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/domain/repository"
)

// ErrJobNotFound is returned when a job id does not exist in the store.
var ErrJobNotFound = errors.New("job not found")

// JobService is the read/delete surface over generation history.
type JobService struct {
	jobs      repository.JobRepository
	artifacts repository.ArtifactRepository
	writer    repository.ArtifactWriter
	logger    *slog.Logger
}

func NewJobService(
	jobs repository.JobRepository,
	artifacts repository.ArtifactRepository,
	writer repository.ArtifactWriter,
	logger *slog.Logger,
) *JobService {
	return &JobService{jobs: jobs, artifacts: artifacts, writer: writer, logger: logger}
}

func (s *JobService) List(ctx context.Context) ([]*entity.Job, error) {
	return s.jobs.List(ctx)
}

func (s *JobService) Get(ctx context.Context, id string) (*entity.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *JobService) GetArtifacts(ctx context.Context, jobID string) ([]*entity.Artifact, error) {
	if _, err := s.Get(ctx, jobID); err != nil {
		return nil, err
	}
	return s.artifacts.GetByJobID(ctx, jobID)
}

// Delete removes the job, its artifact records and its files on disk.
func (s *JobService) Delete(ctx context.Context, jobID string) error {
	if _, err := s.Get(ctx, jobID); err != nil {
		return err
	}

	if err := s.artifacts.DeleteByJobID(ctx, jobID); err != nil {
		return fmt.Errorf("delete artifact records: %w", err)
	}
	if err := s.writer.DeleteJob(ctx, jobID); err != nil {
		return fmt.Errorf("delete artifact files: %w", err)
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	s.logger.Info("job deleted", "job_id", jobID)
	return nil
}
