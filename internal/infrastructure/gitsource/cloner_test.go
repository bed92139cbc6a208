package gitsource

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFilesSkipsGitDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("flask"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "app.py"), []byte("print()"), 0o644))

	c := &Cloner{logger: slog.Default()}
	files, err := c.ListFiles(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"requirements.txt", "src/app.py"}, files)
}
