// Package dockerbuild invokes the external container build command. The
// boundary is deliberately narrow: (dockerfile_path, image_tag) in,
// (exit status, combined output) out. A failed build is a normal negative
// outcome for the caller to display, never an error.
package dockerbuild

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/domain/repository"
	"devops-assistant/internal/infrastructure/metrics"
)

type Builder struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

func NewBuilder(binary string, timeout time.Duration, logger *slog.Logger) repository.ImageBuilder {
	if binary == "" {
		binary = "docker"
	}
	return &Builder{binary: binary, timeout: timeout, logger: logger}
}

// Build runs a single `docker build` against the directory containing the
// Dockerfile. Combined stdout/stderr is captured in full and, when logSink
// is non-nil, mirrored to it as the build produces output. Exactly one
// invocation; no retries.
func (b *Builder) Build(ctx context.Context, dockerfilePath, imageTag string, logSink io.Writer) (entity.BuildOutcome, error) {
	info, err := os.Stat(dockerfilePath)
	if err != nil {
		return entity.BuildOutcome{}, fmt.Errorf("dockerfile not found %q: %w", dockerfilePath, err)
	}
	if info.IsDir() {
		return entity.BuildOutcome{}, fmt.Errorf("dockerfile path is a directory: %s", dockerfilePath)
	}

	buildCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	contextDir := filepath.Dir(dockerfilePath)
	var buf bytes.Buffer
	out := io.Writer(&buf)
	if logSink != nil {
		out = io.MultiWriter(&buf, logSink)
	}

	start := time.Now()
	b.logger.Info("starting container build", "dockerfile", dockerfilePath, "tag", imageTag)

	cmd := exec.CommandContext(buildCtx, b.binary, "build", "-t", imageTag, "-f", dockerfilePath, contextDir)
	cmd.Dir = contextDir
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		metrics.IncBuild("error")
		return entity.BuildOutcome{}, fmt.Errorf("start %s build: %w", b.binary, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-buildCtx.Done():
		_ = cmd.Process.Kill()
		<-done
		metrics.IncBuild("error")
		return entity.BuildOutcome{}, fmt.Errorf("build canceled or timed out: %w", buildCtx.Err())
	case err = <-done:
	}
	metrics.ObserveBuildDuration(time.Since(start))

	outcome := entity.BuildOutcome{
		Success:  err == nil,
		ImageTag: imageTag,
		LogText:  buf.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			metrics.IncBuild("error")
			return entity.BuildOutcome{}, fmt.Errorf("run %s build: %w", b.binary, err)
		}
		// non-zero exit: a normal negative result, log already captured
		metrics.IncBuild("failure")
		b.logger.Info("container build failed", "tag", imageTag, "exit_code", exitErr.ExitCode())
		return outcome, nil
	}

	metrics.IncBuild("success")
	b.logger.Info("container build succeeded", "tag", imageTag, "duration", time.Since(start))
	return outcome, nil
}
