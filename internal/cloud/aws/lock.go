// internal/cloud/aws/lock.go
package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hiptraveler/agentctl/internal/models"
)

// ensureLockTable creates the DynamoDB table Terraform uses for state
// locking and waits until it is ACTIVE. The table schema (hash key LockID,
// type S) is fixed by the S3 backend contract.
func (p *Provider) ensureLockTable(ctx context.Context) error {
	tableName := p.GetLockTableName()
	if tableName == "" {
		return &models.ProviderError{
			Provider:  "aws",
			Operation: "lock-table",
			Resource:  p.projectID,
			Cause:     fmt.Errorf("no storage bucket bound yet"),
		}
	}

	client := dynamodb.NewFromConfig(p.AWSConfig, func(o *dynamodb.Options) {
		o.Region = p.region
	})

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: ddbtypes.BillingModePayPerRequest,
		AttributeDefinitions: []ddbtypes.AttributeDefinition{
			{
				AttributeName: aws.String("LockID"),
				AttributeType: ddbtypes.ScalarAttributeTypeS,
			},
		},
		KeySchema: []ddbtypes.KeySchemaElement{
			{
				AttributeName: aws.String("LockID"),
				KeyType:       ddbtypes.KeyTypeHash,
			},
		},
	})
	if err != nil {
		var exists *ddbtypes.ResourceInUseException
		if !errors.As(err, &exists) {
			return &models.ProviderError{
				Provider:  "aws",
				Operation: "lock-table",
				Resource:  tableName,
				Cause:     fmt.Errorf("failed to create lock table: %w", err),
			}
		}
	}

	return p.waitLockTableActive(ctx, client, tableName)
}

// waitLockTableActive polls DescribeTable until the table is usable.
func (p *Provider) waitLockTableActive(ctx context.Context, client *dynamodb.Client, tableName string) error {
	deadline := time.Now().Add(2 * time.Minute)
	for {
		out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(tableName),
		})
		if err == nil && out.Table != nil && out.Table.TableStatus == ddbtypes.TableStatusActive {
			return nil
		}
		if time.Now().After(deadline) {
			return &models.ProviderError{
				Provider:  "aws",
				Operation: "lock-table",
				Resource:  tableName,
				Cause:     fmt.Errorf("table did not become active in time"),
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

// deleteLockTable removes the project's lock table during project deletion.
func (p *Provider) deleteLockTable(ctx context.Context) error {
	tableName := p.GetLockTableName()
	if tableName == "" {
		return nil
	}
	client := dynamodb.NewFromConfig(p.AWSConfig, func(o *dynamodb.Options) {
		o.Region = p.region
	})
	_, err := client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(tableName)})
	if err != nil {
		var notFound *ddbtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil
		}
		return &models.ProviderError{
			Provider:  "aws",
			Operation: "lock-table",
			Resource:  tableName,
			Cause:     fmt.Errorf("failed to delete lock table: %w", err),
		}
	}
	return nil
}
