// internal/cloud/aws/store.go
package aws

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/hiptraveler/agentctl/internal/models"
	"github.com/hiptraveler/agentctl/internal/terraform"
)

// SaveTopology persists the declaration as the current document plus a
// timestamped version snapshot.
func (p *Provider) SaveTopology(ctx context.Context, top *models.Topology) error {
	if p.BucketName == "" {
		return fmt.Errorf("no storage bucket bound; run 'agentctl init' first")
	}
	cleanProjectID := p.naming.ExtractProjectID(p.projectID)

	jsonData, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal declaration: %w", err)
	}

	key := p.naming.TopologyCurrentKey(cleanProjectID)
	if err := p.putObject(ctx, key, jsonData, "application/json"); err != nil {
		return fmt.Errorf("failed to save current declaration: %w", err)
	}

	version := fmt.Sprintf("v%d", time.Now().Unix())
	versionKey := p.naming.TopologyVersionKey(cleanProjectID, version)
	if err := p.putObject(ctx, versionKey, jsonData, "application/json"); err != nil {
		fmt.Printf("Warning: failed to save version %s: %v\n", version, err)
	}

	index := map[string]interface{}{
		"project_id":     cleanProjectID,
		"latest_version": version,
		"updated_at":     time.Now().UTC(),
		"size":           len(jsonData),
	}
	if idxData, err := json.MarshalIndent(index, "", "  "); err == nil {
		if err := p.putObject(ctx, p.naming.TopologyMetadataKey(cleanProjectID), idxData, "application/json"); err != nil {
			fmt.Printf("Warning: failed to update metadata index: %v\n", err)
		}
	}

	return nil
}

// GetTopology retrieves the current declaration.
func (p *Provider) GetTopology(ctx context.Context) (*models.Topology, error) {
	cleanProjectID := p.naming.ExtractProjectID(p.projectID)
	key := p.naming.TopologyCurrentKey(cleanProjectID)

	data, err := p.getObject(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get declaration from S3: %w", err)
	}

	var top models.Topology
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("failed to unmarshal declaration: %w", err)
	}

	return &top, nil
}

// ListTopologyVersions retrieves the declaration version history.
func (p *Provider) ListTopologyVersions(ctx context.Context) ([]models.VersionInfo, error) {
	cleanProjectID := p.naming.ExtractProjectID(p.projectID)
	prefix := fmt.Sprintf("topology/%s/versions/", cleanProjectID)

	result, err := p.S3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.BucketName),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	var versions []models.VersionInfo
	for _, obj := range result.Contents {
		key := aws.ToString(obj.Key)
		parts := strings.Split(key, "/")
		if len(parts) >= 4 {
			versionName := strings.TrimSuffix(parts[3], ".json")
			versions = append(versions, models.VersionInfo{
				Version:   versionName,
				CreatedAt: aws.ToTime(obj.LastModified),
				Size:      aws.ToInt64(obj.Size),
			})
		}
	}

	return versions, nil
}

// SaveDeploymentMetadata persists the deployment record.
func (p *Provider) SaveDeploymentMetadata(ctx context.Context, md *models.DeploymentMetadata) error {
	jsonData, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment metadata: %w", err)
	}
	return p.putObject(ctx, p.naming.DeploymentMetadataKey(), jsonData, "application/json")
}

// GetDeploymentMetadata retrieves the deployment record. A record that has
// never been written is reported as a metadata document with status none;
// any other read failure is an error, so callers never mistake an outage or
// a permission problem for "not deployed".
func (p *Provider) GetDeploymentMetadata(ctx context.Context) (*models.DeploymentMetadata, error) {
	data, err := p.getObject(ctx, p.naming.DeploymentMetadataKey())
	if err != nil {
		if isMissingObject(err) {
			return &models.DeploymentMetadata{
				ProjectName:      p.naming.ExtractProjectID(p.projectID),
				DeploymentStatus: models.StatusNone,
			}, nil
		}
		return nil, &models.ProviderError{
			Provider:  "aws",
			Operation: "get-deployment-metadata",
			Resource:  p.BucketName,
			Cause:     err,
		}
	}

	var md models.DeploymentMetadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deployment metadata: %w", err)
	}
	return &md, nil
}

// DeleteDeploymentMetadata removes the deployment record after destroy.
func (p *Provider) DeleteDeploymentMetadata(ctx context.Context) error {
	_, err := p.S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.BucketName),
		Key:    aws.String(p.naming.DeploymentMetadataKey()),
	})
	return err
}

// IsDeployed reports whether live infrastructure exists for the project.
func (p *Provider) IsDeployed(ctx context.Context) (bool, error) {
	md, err := p.GetDeploymentMetadata(ctx)
	if err != nil {
		return false, err
	}
	return md.IsDeployed(), nil
}

// RecordOutputs persists a successful deployment's outputs as metadata.
func (p *Provider) RecordOutputs(ctx context.Context, imageURI string, outputs *terraform.Outputs) error {
	md := &models.DeploymentMetadata{
		ProjectName:      p.naming.ExtractProjectID(p.projectID),
		DeploymentStatus: models.StatusDeployed,
		ImageURI:         imageURI,
		DeployedAt:       time.Now().UTC(),
		Infrastructure: models.InfrastructureInfo{
			ClusterName:       outputs.ClusterName,
			ServiceName:       outputs.ServiceName,
			ALBDNS:            outputs.ALBDNSName,
			ServiceURL:        outputs.ServiceURL,
			TargetGroupARN:    outputs.TargetGroupARN,
			TaskDefinitionARN: outputs.TaskDefinitionARN,
			LogGroup:          outputs.LogGroup,
			VPCId:             outputs.VPCID,
			Region:            p.region,
		},
		Outputs: outputs.Raw,
	}
	return p.SaveDeploymentMetadata(ctx, md)
}

// DeleteProject removes every object version in the project bucket, the
// bucket itself, and the lock table. Callers must destroy the
// infrastructure first; the deployment record guards against that.
func (p *Provider) DeleteProject(ctx context.Context, projectID string) error {
	if exists, err := p.ProjectExists(ctx, projectID); err != nil || !exists {
		if err != nil {
			return err
		}
		return fmt.Errorf("project '%s' not found", projectID)
	}

	if deployed, _ := p.IsDeployed(ctx); deployed {
		return fmt.Errorf("project '%s' still has deployed infrastructure; run 'agentctl destroy' first", projectID)
	}

	pager := s3.NewListObjectVersionsPaginator(p.S3Client, &s3.ListObjectVersionsInput{
		Bucket: aws.String(p.BucketName),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list object versions: %w", err)
		}
		var objs []s3types.ObjectIdentifier
		for _, v := range page.Versions {
			objs = append(objs, s3types.ObjectIdentifier{Key: v.Key, VersionId: v.VersionId})
		}
		for _, m := range page.DeleteMarkers {
			objs = append(objs, s3types.ObjectIdentifier{Key: m.Key, VersionId: m.VersionId})
		}
		if len(objs) > 0 {
			if _, err := p.S3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
				Bucket: aws.String(p.BucketName),
				Delete: &s3types.Delete{Objects: objs, Quiet: aws.Bool(true)},
			}); err != nil {
				return fmt.Errorf("delete objects: %w", err)
			}
		}
	}

	if _, err := p.S3Client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(p.BucketName)}); err != nil {
		return fmt.Errorf("delete bucket: %w", err)
	}
	if err := p.deleteLockTable(ctx); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	fmt.Printf("✅ Project %q deleted (bucket and lock table removed)\n", projectID)
	return nil
}

// Helper methods

// isMissingObject reports whether an S3 read failed because the key does not
// exist, as opposed to a transient or permission failure.
func isMissingObject(err error) bool {
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

func (p *Provider) putObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := p.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(p.BucketName),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: s3types.ServerSideEncryption("AES256"),
	})
	return err
}

func (p *Provider) getObject(ctx context.Context, key string) ([]byte, error) {
	result, err := p.S3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()
	return io.ReadAll(result.Body)
}
