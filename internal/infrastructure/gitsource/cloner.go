// Package gitsource makes remote repositories available on local disk.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"devops-assistant/internal/domain/repository"
)

type Cloner struct {
	logger *slog.Logger
}

func NewCloner(logger *slog.Logger) repository.SourceFetcher {
	return &Cloner{logger: logger}
}

// Fetch clones repoURL under baseDir, or pulls the latest changes when the
// checkout already exists. The checkout directory is named after the repo.
func (c *Cloner) Fetch(ctx context.Context, repoURL, baseDir, token string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(repoURL), ".git")
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive repository name from %q", repoURL)
	}
	repoPath := filepath.Join(baseDir, name)

	var auth *http.BasicAuth
	if token != "" {
		// token auth over https; username is ignored by the common hosts
		auth = &http.BasicAuth{Username: "git", Password: token}
	}

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		c.logger.Info("repository already cloned, pulling", "path", repoPath)
		repo, err := git.PlainOpen(repoPath)
		if err != nil {
			return "", fmt.Errorf("open repository %s: %w", repoPath, err)
		}
		wt, err := repo.Worktree()
		if err != nil {
			return "", fmt.Errorf("worktree %s: %w", repoPath, err)
		}
		err = wt.PullContext(ctx, &git.PullOptions{Auth: auth})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return "", fmt.Errorf("pull %s: %w", repoURL, err)
		}
		return repoPath, nil
	}

	c.logger.Info("cloning repository", "url", repoURL, "path", repoPath)
	_, err := git.PlainCloneContext(ctx, repoPath, false, &git.CloneOptions{
		URL:   repoURL,
		Auth:  auth,
		Depth: 1,
	})
	if err != nil {
		return "", fmt.Errorf("clone %s: %w", repoURL, err)
	}
	return repoPath, nil
}

// ListFiles walks dir and returns every regular file path relative to dir,
// skipping the .git metadata tree.
func (c *Cloner) ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}
