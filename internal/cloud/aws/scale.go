// internal/cloud/aws/scale.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/applicationautoscaling"
	aastypes "github.com/aws/aws-sdk-go-v2/service/applicationautoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"

	"github.com/hiptraveler/agentctl/internal/models"
)

// Scale sets the service desired count directly on ECS. The task
// definition keeps desired_count out of its managed attributes, so this
// does not fight the next apply. The request is clamped to the declared
// autoscaling band.
func (p *Provider) Scale(ctx context.Context, info *models.InfrastructureInfo, desired, min, max int32) (int32, error) {
	if info.ClusterName == "" || info.ServiceName == "" {
		return 0, fmt.Errorf("no deployed service recorded; run 'agentctl deploy' first")
	}

	clamped := desired
	if clamped < min {
		clamped = min
	}
	if clamped > max {
		clamped = max
	}
	if clamped != desired {
		fmt.Printf("⚠️  Requested count %d is outside the scaling band [%d, %d]; using %d\n", desired, min, max, clamped)
	}

	client := ecs.NewFromConfig(p.AWSConfig)
	if _, err := client.UpdateService(ctx, &ecs.UpdateServiceInput{
		Cluster:      aws.String(info.ClusterName),
		Service:      aws.String(info.ServiceName),
		DesiredCount: aws.Int32(clamped),
	}); err != nil {
		return 0, &models.ProviderError{
			Provider:  "aws",
			Operation: "scale-service",
			Resource:  info.ServiceName,
			Cause:     err,
		}
	}

	return clamped, nil
}

// UpdateScalingBand re-registers the scalable target with new bounds.
// The target tracking policy attached to it keeps working unchanged.
func (p *Provider) UpdateScalingBand(ctx context.Context, info *models.InfrastructureInfo, min, max int32) error {
	if min < 1 || max < min {
		return fmt.Errorf("invalid scaling band [%d, %d]", min, max)
	}

	client := applicationautoscaling.NewFromConfig(p.AWSConfig)
	resourceID := fmt.Sprintf("service/%s/%s", info.ClusterName, info.ServiceName)
	_, err := client.RegisterScalableTarget(ctx, &applicationautoscaling.RegisterScalableTargetInput{
		ServiceNamespace:  aastypes.ServiceNamespaceEcs,
		ResourceId:        aws.String(resourceID),
		ScalableDimension: aastypes.ScalableDimensionECSServiceDesiredCount,
		MinCapacity:       aws.Int32(min),
		MaxCapacity:       aws.Int32(max),
	})
	if err != nil {
		return &models.ProviderError{
			Provider:  "aws",
			Operation: "update-scaling-band",
			Resource:  resourceID,
			Cause:     err,
		}
	}
	return nil
}
