// internal/cloud/aws/iam.go
package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/hiptraveler/agentctl/internal/models"
)

// VerifyRole confirms a bring-your-own IAM role exists before it is wired
// into the task definition. An empty ARN is fine: the stack creates its
// own roles in that case.
func (p *Provider) VerifyRole(ctx context.Context, roleARN string) error {
	if roleARN == "" {
		return nil
	}

	roleName, err := roleNameFromARN(roleARN)
	if err != nil {
		return err
	}

	client := iam.NewFromConfig(p.AWSConfig)
	if _, err := client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)}); err != nil {
		return &models.ProviderError{
			Provider:  "aws",
			Operation: "verify-role",
			Resource:  roleARN,
			Cause:     fmt.Errorf("role not found or not accessible: %w", err),
		}
	}
	return nil
}

// roleNameFromARN extracts the role name from arn:aws:iam::<acct>:role/<name>.
func roleNameFromARN(arn string) (string, error) {
	idx := strings.Index(arn, ":role/")
	if idx < 0 {
		return "", fmt.Errorf("'%s' is not an IAM role ARN", arn)
	}
	name := arn[idx+len(":role/"):]
	// Roles may live under a path; IAM wants just the final name.
	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		name = name[slash+1:]
	}
	if name == "" {
		return "", fmt.Errorf("'%s' is not an IAM role ARN", arn)
	}
	return name, nil
}
