package image

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/docker/docker/api/types/registry"

	"github.com/hiptraveler/agentctl/internal/models"
)

// Registry wraps the ECR operations needed to host the service image:
// repository bootstrap and docker credentials for push.
type Registry struct {
	client *ecr.Client
}

// NewRegistry builds an ECR registry helper from an AWS config.
func NewRegistry(cfg aws.Config) *Registry {
	return &Registry{client: ecr.NewFromConfig(cfg)}
}

// EnsureRepository creates the repository if it does not exist and returns
// its URI. Image tags are kept immutable so a pushed revision can never be
// silently replaced.
func (r *Registry) EnsureRepository(ctx context.Context, name string) (string, error) {
	out, err := r.client.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName:     aws.String(name),
		ImageTagMutability: ecrtypes.ImageTagMutabilityImmutable,
		ImageScanningConfiguration: &ecrtypes.ImageScanningConfiguration{
			ScanOnPush: true,
		},
	})
	if err == nil {
		return aws.ToString(out.Repository.RepositoryUri), nil
	}

	var exists *ecrtypes.RepositoryAlreadyExistsException
	if !errors.As(err, &exists) {
		return "", &models.BuildError{Image: name, Step: "repository", Cause: err}
	}

	desc, err := r.client.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err != nil {
		return "", &models.BuildError{Image: name, Step: "repository", Cause: err}
	}
	return repositoryURI(desc.Repositories, name)
}

// repositoryURI extracts the URI for name from a describe response. The
// repository was reported to exist, so an empty response is its own error
// rather than a wrapped nil.
func repositoryURI(repos []ecrtypes.Repository, name string) (string, error) {
	for _, repo := range repos {
		if aws.ToString(repo.RepositoryName) == name {
			return aws.ToString(repo.RepositoryUri), nil
		}
	}
	return "", &models.BuildError{
		Image: name,
		Step:  "repository",
		Cause: fmt.Errorf("repository '%s' exists but was not returned by describe", name),
	}
}

// AuthConfig exchanges an ECR authorization token for docker registry
// credentials valid for the push.
func (r *Registry) AuthConfig(ctx context.Context) (registry.AuthConfig, error) {
	out, err := r.client.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return registry.AuthConfig{}, &models.BuildError{Step: "login", Cause: err}
	}
	if len(out.AuthorizationData) == 0 {
		return registry.AuthConfig{}, &models.BuildError{Step: "login", Cause: fmt.Errorf("no authorization data returned")}
	}

	data := out.AuthorizationData[0]
	decoded, err := base64.StdEncoding.DecodeString(aws.ToString(data.AuthorizationToken))
	if err != nil {
		return registry.AuthConfig{}, &models.BuildError{Step: "login", Cause: err}
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return registry.AuthConfig{}, &models.BuildError{Step: "login", Cause: fmt.Errorf("malformed authorization token")}
	}

	return registry.AuthConfig{
		Username:      user,
		Password:      pass,
		ServerAddress: aws.ToString(data.ProxyEndpoint),
	}, nil
}
