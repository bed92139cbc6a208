package repository

import "context"

// ECRRepositoryResolver resolves a registry repository name to its URI.
type ECRRepositoryResolver interface {
	RepositoryURI(ctx context.Context, name string) (string, error)
}
