// Package awsclient constructs the AWS service clients the assistant uses.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

type describeRepositoriesAPI interface {
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
}

// ECRResolver looks up repository URIs so buildspec requests can supply
// just the repository name.
type ECRResolver struct {
	client describeRepositoriesAPI
}

func NewECRResolver(cfg aws.Config) *ECRResolver {
	return &ECRResolver{client: ecr.NewFromConfig(cfg)}
}

// RepositoryURI returns the URI of the named ECR repository.
func (r *ECRResolver) RepositoryURI(ctx context.Context, name string) (string, error) {
	out, err := r.client.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err != nil {
		return "", fmt.Errorf("describe ecr repository %s: %w", name, err)
	}
	if len(out.Repositories) == 0 || out.Repositories[0].RepositoryUri == nil {
		return "", fmt.Errorf("ecr repository %s not found", name)
	}
	return *out.Repositories[0].RepositoryUri, nil
}
