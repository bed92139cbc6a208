package dockerbuild

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBuildBinary writes an executable standing in for the docker CLI.
func fakeBuildBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-docker")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func writeDockerfile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM scratch\n"), 0o644))
	return path
}

func TestBuildFailureIsNotAnError(t *testing.T) {
	bin := fakeBuildBinary(t, `printf 'build failed: syntax error'
exit 1
`)
	b := NewBuilder(bin, time.Minute, slog.Default())

	outcome, err := b.Build(context.Background(), writeDockerfile(t), "app:latest", nil)
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "build failed: syntax error", outcome.LogText)
	assert.Equal(t, "app:latest", outcome.ImageTag)
}

func TestBuildSuccessCapturesLog(t *testing.T) {
	bin := fakeBuildBinary(t, `echo "Step 1/2 : FROM scratch"
echo "Successfully built"
exit 0
`)
	b := NewBuilder(bin, time.Minute, slog.Default())

	var sink bytes.Buffer
	outcome, err := b.Build(context.Background(), writeDockerfile(t), "app:v1", &sink)
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Contains(t, outcome.LogText, "Successfully built")
	// sink mirrors the captured log
	assert.Equal(t, outcome.LogText, sink.String())
}

func TestBuildMissingDockerfile(t *testing.T) {
	b := NewBuilder("docker", time.Minute, slog.Default())
	_, err := b.Build(context.Background(), filepath.Join(t.TempDir(), "Dockerfile"), "app:latest", nil)
	assert.Error(t, err)
}

func TestBuildTimeout(t *testing.T) {
	bin := fakeBuildBinary(t, "sleep 10\n")
	b := NewBuilder(bin, 50*time.Millisecond, slog.Default())

	_, err := b.Build(context.Background(), writeDockerfile(t), "app:latest", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
