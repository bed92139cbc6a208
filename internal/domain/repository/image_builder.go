package repository

import (
	"context"
	"io"

	"devops-assistant/internal/domain/entity"
)

// ImageBuilder invokes one external container build. A non-zero exit status
// is a normal negative outcome, not an error; errors are reserved for
// failures to run the build at all. When logSink is non-nil the combined
// output is mirrored to it as it is produced.
type ImageBuilder interface {
	Build(ctx context.Context, dockerfilePath, imageTag string, logSink io.Writer) (entity.BuildOutcome, error)
}
