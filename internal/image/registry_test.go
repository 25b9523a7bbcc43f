package image

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"

	"github.com/hiptraveler/agentctl/internal/models"
)

func TestRepositoryURI(t *testing.T) {
	repos := []ecrtypes.Repository{
		{
			RepositoryName: aws.String("agentic-api-orders"),
			RepositoryUri:  aws.String("123456789012.dkr.ecr.us-east-1.amazonaws.com/agentic-api-orders"),
		},
	}

	uri, err := repositoryURI(repos, "agentic-api-orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "123456789012.dkr.ecr.us-east-1.amazonaws.com/agentic-api-orders" {
		t.Errorf("unexpected URI: %s", uri)
	}
}

func TestRepositoryURIEmptyResponse(t *testing.T) {
	_, err := repositoryURI(nil, "agentic-api-orders")
	if err == nil {
		t.Fatal("expected an error for an empty describe response")
	}

	buildErr, ok := err.(*models.BuildError)
	if !ok {
		t.Fatalf("expected *models.BuildError, got %T", err)
	}
	if buildErr.Cause == nil {
		t.Error("error must carry a non-nil cause")
	}
	if !strings.Contains(err.Error(), "was not returned by describe") {
		t.Errorf("error should explain the empty response, got: %v", err)
	}
}
