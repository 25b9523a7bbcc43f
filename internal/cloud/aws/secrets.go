// internal/cloud/aws/secrets.go
package aws

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/hiptraveler/agentctl/internal/models"
)

const ssmBatchSize = 10 // GetParameters accepts at most 10 names per call

// VerifySecretParameters checks that every named SSM parameter exists and
// returns the missing names. Values are never read back to the caller.
func (p *Provider) VerifySecretParameters(ctx context.Context, names []string) ([]string, error) {
	client := ssm.NewFromConfig(p.AWSConfig)

	var missing []string
	for start := 0; start < len(names); start += ssmBatchSize {
		end := start + ssmBatchSize
		if end > len(names) {
			end = len(names)
		}

		out, err := client.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          names[start:end],
			WithDecryption: aws.Bool(false),
		})
		if err != nil {
			return nil, &models.SecretError{
				Parameter: strings.Join(names[start:end], ","),
				Operation: "resolve",
				Cause:     err,
			}
		}
		missing = append(missing, out.InvalidParameters...)
	}

	sort.Strings(missing)
	return missing, nil
}

// ListSecretParameters lists the project's parameter names (no values)
// under the given path prefix.
func (p *Provider) ListSecretParameters(ctx context.Context, pathPrefix string) ([]string, error) {
	client := ssm.NewFromConfig(p.AWSConfig)

	var names []string
	var nextToken *string
	for {
		out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(pathPrefix),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(false),
			NextToken:      nextToken,
		})
		if err != nil {
			return nil, &models.SecretError{Parameter: pathPrefix, Operation: "list", Cause: err}
		}
		for _, param := range out.Parameters {
			names = append(names, aws.ToString(param.Name))
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	sort.Strings(names)
	return names, nil
}

// PutSecretParameter writes one SecureString parameter. The value comes
// from the operator's prompt and goes straight to SSM; it is never logged
// or persisted anywhere else.
func (p *Provider) PutSecretParameter(ctx context.Context, name, value string) error {
	client := ssm.NewFromConfig(p.AWSConfig)

	_, err := client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      ssmtypes.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		var denied *ssmtypes.ParameterAlreadyExists
		if errors.As(err, &denied) {
			return &models.SecretError{
				Parameter: name,
				Operation: "put",
				Cause:     fmt.Errorf("parameter exists and overwrite was refused"),
			}
		}
		return &models.SecretError{Parameter: name, Operation: "put", Cause: err}
	}
	return nil
}
