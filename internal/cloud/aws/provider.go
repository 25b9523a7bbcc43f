// internal/cloud/aws/provider.go
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/hiptraveler/agentctl/internal"
	"github.com/hiptraveler/agentctl/internal/cloud/naming"
	"github.com/hiptraveler/agentctl/internal/models"
)

// Provider holds AWS-specific clients and config
type Provider struct {
	projectID  string
	naming     internal.NamingStrategy
	region     string
	BucketName string
	LockTable  string
	S3Client   *s3.Client
	AWSConfig  aws.Config
}

// ProviderOption is a functional option for provider configuration
type ProviderOption func(*providerOptions)

type providerOptions struct {
	profile string
	region  string
}

// WithRegion specifies the AWS region
func WithRegion(region string) ProviderOption {
	return func(o *providerOptions) {
		o.region = region
	}
}

// WithProfile specifies the AWS profile to use
func WithProfile(profile string) ProviderOption {
	return func(o *providerOptions) {
		o.profile = profile
	}
}

// LoadAWSConfig loads AWS configuration with optional profile
func LoadAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	optFns := []func(*config.LoadOptions) error{}
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, &models.ProviderError{
			Provider:  "aws",
			Operation: "load-config",
			Resource:  fmt.Sprintf("profile:%s", profile),
			Cause:     fmt.Errorf("failed to load AWS config: %w", err),
		}
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg, nil
}

// NewProvider creates a new AWS project provider
func NewProvider(ctx context.Context, options ...ProviderOption) (*Provider, error) {
	opts := &providerOptions{}
	for _, opt := range options {
		opt(opts)
	}

	cfg, err := LoadAWSConfig(ctx, opts.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if opts.region != "" {
		cfg.Region = opts.region
	}

	provider := &Provider{
		S3Client:  s3.NewFromConfig(cfg),
		naming:    naming.NewDefaultNaming(),
		region:    cfg.Region,
		AWSConfig: cfg,
	}
	return provider, nil
}

// ValidateCredentials checks if AWS credentials are valid
func ValidateCredentials(ctx context.Context, profile string) (bool, error) {
	cfg, err := LoadAWSConfig(ctx, profile)
	if err != nil {
		return false, err
	}

	client := sts.NewFromConfig(cfg)
	_, err = client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return false, err
	}

	return true, nil
}

// GetProviderType returns the provider type
func (p *Provider) GetProviderType() string {
	return "aws"
}

func (p *Provider) ValidateProjectName(projectID string) error {
	return p.naming.ValidateProjectID(projectID)
}

func (p *Provider) GetStorageName() string {
	return p.BucketName
}

func (p *Provider) GetLockTableName() string {
	if p.LockTable == "" && p.BucketName != "" {
		p.LockTable = p.naming.LockTableName(p.BucketName)
	}
	return p.LockTable
}

func (p *Provider) GetProjectName() string {
	return p.projectID
}

func (p *Provider) SetStorageName(name string) {
	p.BucketName = name
	p.LockTable = p.naming.LockTableName(name)
}

func (p *Provider) SetProjectName(name string) {
	p.projectID = name
}

func (p *Provider) GetRegion() string {
	return p.region
}

// InitProject ensures the project's state bucket and lock table exist. The
// bucket is versioned and server-side encrypted; the lock table serializes
// concurrent applies against the same state key.
func (p *Provider) InitProject(ctx context.Context, projectID string) error {
	bucketName := p.naming.GenerateStorageName(projectID)

	// Reuse an existing bucket if the project was initialized before.
	if exists, _ := p.ProjectExists(ctx, projectID); exists {
		p.alignRegion(ctx)
		if err := p.ensureLockTable(ctx); err != nil {
			return err
		}
		fmt.Printf("✅ Project already initialized: %s\n", projectID)
		return nil
	}

	var input *s3.CreateBucketInput
	if p.region == "us-east-1" {
		input = &s3.CreateBucketInput{
			Bucket: aws.String(bucketName),
		}
	} else {
		input = &s3.CreateBucketInput{
			Bucket: aws.String(bucketName),
			CreateBucketConfiguration: &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(p.region),
			},
		}
	}

	if _, err := p.S3Client.CreateBucket(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "BucketAlreadyOwnedByYou":
				// fall through to configuration below
			case "BucketAlreadyExists":
				return &models.ProviderError{
					Provider:  "aws",
					Operation: "init",
					Resource:  bucketName,
					Cause:     fmt.Errorf("bucket name '%s' already taken globally — choose a more unique project name", bucketName),
				}
			default:
				return &models.ProviderError{
					Provider:  "aws",
					Operation: "init",
					Resource:  bucketName,
					Cause:     fmt.Errorf("failed to create bucket: %w", err),
				}
			}
		} else {
			return &models.ProviderError{
				Provider:  "aws",
				Operation: "init",
				Resource:  bucketName,
				Cause:     fmt.Errorf("failed to create bucket: %w", err),
			}
		}
	}

	p.projectID = projectID
	p.SetStorageName(bucketName)

	// Versioning keeps declaration and state history; encryption is on by
	// default for every object we put, this covers terraform's writes too.
	if _, err := p.S3Client.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: aws.String(bucketName),
		VersioningConfiguration: &types.VersioningConfiguration{
			Status: types.BucketVersioningStatusEnabled,
		},
	}); err != nil {
		return &models.ProviderError{
			Provider:  "aws",
			Operation: "init",
			Resource:  bucketName,
			Cause:     fmt.Errorf("failed to enable versioning: %w", err),
		}
	}

	if _, err := p.S3Client.PutBucketEncryption(ctx, &s3.PutBucketEncryptionInput{
		Bucket: aws.String(bucketName),
		ServerSideEncryptionConfiguration: &types.ServerSideEncryptionConfiguration{
			Rules: []types.ServerSideEncryptionRule{
				{
					ApplyServerSideEncryptionByDefault: &types.ServerSideEncryptionByDefault{
						SSEAlgorithm: types.ServerSideEncryptionAes256,
					},
				},
			},
		},
	}); err != nil {
		return &models.ProviderError{
			Provider:  "aws",
			Operation: "init",
			Resource:  bucketName,
			Cause:     fmt.Errorf("failed to enable encryption: %w", err),
		}
	}

	if err := p.ensureLockTable(ctx); err != nil {
		return err
	}

	fmt.Println("✅ Project initialized:", projectID)
	return nil
}

// ProjectExists checks if a project exists and binds the provider to its
// bucket when found.
func (p *Provider) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	out, err := p.S3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return false, err
	}

	for _, bucket := range out.Buckets {
		name := aws.ToString(bucket.Name)
		if !strings.HasPrefix(name, p.naming.GetPrefix()) {
			continue
		}
		if p.naming.ExtractProjectID(name) == projectID {
			p.SetStorageName(name)
			p.projectID = projectID
			return true, nil
		}
	}
	return false, nil
}

// ListProjects lists every project bucket owned by this account.
func (p *Provider) ListProjects(ctx context.Context) ([]models.ProjectInfo, error) {
	var projects []models.ProjectInfo

	out, err := p.S3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	for _, bucket := range out.Buckets {
		if bucket.Name == nil || !strings.HasPrefix(*bucket.Name, p.naming.GetPrefix()) {
			continue
		}
		projectID := p.naming.ExtractProjectID(aws.ToString(bucket.Name))
		if projectID == "" {
			continue
		}
		projects = append(projects, models.ProjectInfo{
			ProjectID:   projectID,
			DisplayName: projectID,
			StorageName: aws.ToString(bucket.Name),
		})
	}

	return projects, nil
}

// alignRegion rebinds the S3 client to the bucket's actual region to avoid
// 301 PermanentRedirect on PutObject.
func (p *Provider) alignRegion(ctx context.Context) {
	if p.BucketName == "" {
		return
	}
	loc, err := p.S3Client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: aws.String(p.BucketName)})
	if err != nil {
		return
	}
	resolved := string(loc.LocationConstraint)
	if resolved == "" { // us-east-1 returns empty per API
		resolved = "us-east-1"
	}
	if resolved != p.region {
		p.region = resolved
		cfg := p.AWSConfig
		cfg.Region = resolved
		p.S3Client = s3.NewFromConfig(cfg)
	}
}
