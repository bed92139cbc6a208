package repository

import "context"

// SourceFetcher makes a repository available locally and lists its files.
type SourceFetcher interface {
	// Fetch clones repoURL under baseDir (or pulls if already cloned) and
	// returns the checkout path. token is optional, for private repos.
	Fetch(ctx context.Context, repoURL, baseDir, token string) (string, error)
	// ListFiles returns all file paths under dir, relative to dir.
	ListFiles(dir string) ([]string, error)
}
