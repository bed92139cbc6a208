package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devops-assistant/internal/domain/entity"
)

func newRepo(t *testing.T) *ArtifactRepository {
	t.Helper()
	repo, err := NewArtifactRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestWriteArtifactsFixedFilenames(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	kinds := []entity.TargetKind{
		entity.TargetDockerfile,
		entity.TargetTerraform,
		entity.TargetCloudFormation,
		entity.TargetBuildSpec,
	}
	wantNames := []string{"Dockerfile", "main.tf", "cloudformation.yaml", "buildspec.yml"}

	for i, kind := range kinds {
		dir, err := repo.WriteArtifacts(ctx, "job-1", []*entity.Artifact{{
			JobID:   "job-1",
			Name:    kind.ArtifactFileName(),
			Content: "content for " + string(kind),
			Kind:    kind,
		}})
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, wantNames[i]))
	}
}

func TestWriteOverwritesCompletely(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.WriteArtifacts(ctx, "job-1", []*entity.Artifact{{
		JobID: "job-1", Name: "main.tf", Kind: entity.TargetTerraform,
		Content: "resource \"aws_vpc\" \"a\" {}\nresource \"aws_vpc\" \"b\" {}\n",
	}})
	require.NoError(t, err)

	_, err = repo.WriteArtifacts(ctx, "job-1", []*entity.Artifact{{
		JobID: "job-1", Name: "main.tf", Kind: entity.TargetTerraform,
		Content: "short",
	}})
	require.NoError(t, err)

	got, err := repo.ReadArtifact(ctx, "job-1", "main.tf")
	require.NoError(t, err)
	assert.Equal(t, "short", got, "second write must fully replace the first")
}

func TestWriteVerbatim(t *testing.T) {
	repo := newRepo(t)
	raw := "FROM python:latest\n\n# no escaping\nRUN echo \"$HOME\" && echo 'quoted'\n"

	_, err := repo.WriteArtifacts(context.Background(), "job-2", []*entity.Artifact{{
		JobID: "job-2", Name: "Dockerfile", Kind: entity.TargetDockerfile, Content: raw,
	}})
	require.NoError(t, err)

	got, err := repo.ReadArtifact(context.Background(), "job-2", "Dockerfile")
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestWriteArtifactsMetadata(t *testing.T) {
	repo := newRepo(t)

	dir, err := repo.WriteArtifacts(context.Background(), "job-3", []*entity.Artifact{{
		JobID: "job-3", Name: "buildspec.yml", Kind: entity.TargetBuildSpec, Content: "version: 0.2",
	}})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "metadata.json"))
}

func TestDeleteJob(t *testing.T) {
	repo := newRepo(t)

	dir, err := repo.WriteArtifacts(context.Background(), "job-4", []*entity.Artifact{{
		JobID: "job-4", Name: "main.tf", Kind: entity.TargetTerraform, Content: "x",
	}})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteJob(context.Background(), "job-4"))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestNewArtifactRepositoryRejectsFilePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewArtifactRepository(file)
	assert.Error(t, err)
}
