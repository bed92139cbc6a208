package entity

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Job records one generation request and its outcome. Each user action
// creates exactly one job; the pipeline runs to completion before the
// response is written, so a job never has more than one in-flight run.
type Job struct {
	ID          string            `json:"id" bson:"id"`
	Kind        TargetKind        `json:"kind" bson:"kind"`
	Params      map[string]string `json:"params" bson:"params"`
	Profile     *ProjectProfile   `json:"profile,omitempty" bson:"profile,omitempty"`
	Status      JobStatus         `json:"status" bson:"status"`
	Error       string            `json:"error,omitempty" bson:"error,omitempty"`
	ArtifactDir string            `json:"artifact_dir,omitempty" bson:"artifact_dir,omitempty"`
	Build       *BuildOutcome     `json:"build,omitempty" bson:"build,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}

func NewJob(kind TargetKind, params map[string]string) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		Params:    redactParams(params),
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (j *Job) UpdateStatus(status JobStatus) {
	j.Status = status
	j.UpdatedAt = time.Now().UTC()
}

// redactParams drops credentials before the request parameters are persisted.
func redactParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		if k == ParamGitToken {
			continue
		}
		out[k] = v
	}
	return out
}
