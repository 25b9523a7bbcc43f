// internal/cloud/aws/runtime.go
package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/applicationautoscaling"
	aastypes "github.com/aws/aws-sdk-go-v2/service/applicationautoscaling/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/hiptraveler/agentctl/internal/models"
)

// RuntimeStatus is a read-only snapshot of the externally managed runtime.
// All transitions (PROVISIONING through STOPPED) happen in the
// orchestrator; this view only reports them.
type RuntimeStatus struct {
	ClusterName    string
	ServiceName    string
	ServiceStatus  string
	DesiredCount   int32
	RunningCount   int32
	PendingCount   int32
	Tasks          []TaskStatus
	Targets        []TargetStatus
	ScalingMin     int32
	ScalingMax     int32
	ScalingKnown   bool
	DeploymentNote string
}

// TaskStatus is one task mapped onto the declared lifecycle states.
type TaskStatus struct {
	TaskARN   string
	Lifecycle models.TaskLifecycleState
	Health    string
	StoppedBy string
}

// TargetStatus is one load balancer target's health.
type TargetStatus struct {
	TargetID    string
	State       string
	Reason      string
	Description string
}

// InspectRuntime gathers the live state of the deployed service: ECS
// service counts and task lifecycle, ALB target health, and the
// registered scaling band.
func (p *Provider) InspectRuntime(ctx context.Context, info *models.InfrastructureInfo) (*RuntimeStatus, error) {
	if info.ClusterName == "" || info.ServiceName == "" {
		return nil, fmt.Errorf("no deployed service recorded; run 'agentctl deploy' first")
	}

	ecsClient := ecs.NewFromConfig(p.AWSConfig)
	status := &RuntimeStatus{
		ClusterName: info.ClusterName,
		ServiceName: info.ServiceName,
	}

	svcOut, err := ecsClient.DescribeServices(ctx, &ecs.DescribeServicesInput{
		Cluster:  aws.String(info.ClusterName),
		Services: []string{info.ServiceName},
	})
	if err != nil {
		return nil, &models.ProviderError{
			Provider:  "aws",
			Operation: "describe-service",
			Resource:  info.ServiceName,
			Cause:     err,
		}
	}
	if len(svcOut.Services) == 0 {
		return nil, fmt.Errorf("service '%s' not found in cluster '%s'", info.ServiceName, info.ClusterName)
	}
	svc := svcOut.Services[0]
	status.ServiceStatus = aws.ToString(svc.Status)
	status.DesiredCount = svc.DesiredCount
	status.RunningCount = svc.RunningCount
	status.PendingCount = svc.PendingCount
	for _, dep := range svc.Deployments {
		if aws.ToString(dep.Status) == "PRIMARY" && dep.RolloutStateReason != nil {
			status.DeploymentNote = aws.ToString(dep.RolloutStateReason)
		}
	}

	tasks, err := p.describeTasks(ctx, ecsClient, info.ClusterName, info.ServiceName)
	if err != nil {
		return nil, err
	}
	status.Tasks = tasks

	if info.TargetGroupARN != "" {
		targets, err := p.describeTargetHealth(ctx, info.TargetGroupARN)
		if err != nil {
			fmt.Printf("Warning: target health unavailable: %v\n", err)
		} else {
			status.Targets = targets
		}
	}

	if min, max, ok := p.scalingBand(ctx, info.ClusterName, info.ServiceName); ok {
		status.ScalingMin = min
		status.ScalingMax = max
		status.ScalingKnown = true
	}

	return status, nil
}

func (p *Provider) describeTasks(ctx context.Context, client *ecs.Client, cluster, service string) ([]TaskStatus, error) {
	listOut, err := client.ListTasks(ctx, &ecs.ListTasksInput{
		Cluster:     aws.String(cluster),
		ServiceName: aws.String(service),
	})
	if err != nil {
		return nil, &models.ProviderError{
			Provider:  "aws",
			Operation: "list-tasks",
			Resource:  service,
			Cause:     err,
		}
	}
	if len(listOut.TaskArns) == 0 {
		return nil, nil
	}

	descOut, err := client.DescribeTasks(ctx, &ecs.DescribeTasksInput{
		Cluster: aws.String(cluster),
		Tasks:   listOut.TaskArns,
	})
	if err != nil {
		return nil, &models.ProviderError{
			Provider:  "aws",
			Operation: "describe-tasks",
			Resource:  service,
			Cause:     err,
		}
	}

	var tasks []TaskStatus
	for _, task := range descOut.Tasks {
		ts := TaskStatus{
			TaskARN:   shortTaskARN(aws.ToString(task.TaskArn)),
			Lifecycle: models.LifecycleFromECS(aws.ToString(task.LastStatus)),
			Health:    string(task.HealthStatus),
		}
		if task.StoppedReason != nil {
			ts.StoppedBy = aws.ToString(task.StoppedReason)
		}
		tasks = append(tasks, ts)
	}
	return tasks, nil
}

func (p *Provider) describeTargetHealth(ctx context.Context, targetGroupARN string) ([]TargetStatus, error) {
	client := elasticloadbalancingv2.NewFromConfig(p.AWSConfig)
	out, err := client.DescribeTargetHealth(ctx, &elasticloadbalancingv2.DescribeTargetHealthInput{
		TargetGroupArn: aws.String(targetGroupARN),
	})
	if err != nil {
		return nil, err
	}

	var targets []TargetStatus
	for _, desc := range out.TargetHealthDescriptions {
		t := TargetStatus{}
		if desc.Target != nil {
			t.TargetID = aws.ToString(desc.Target.Id)
		}
		if desc.TargetHealth != nil {
			t.State = string(desc.TargetHealth.State)
			t.Reason = string(desc.TargetHealth.Reason)
			t.Description = aws.ToString(desc.TargetHealth.Description)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (p *Provider) scalingBand(ctx context.Context, cluster, service string) (int32, int32, bool) {
	client := applicationautoscaling.NewFromConfig(p.AWSConfig)
	resourceID := fmt.Sprintf("service/%s/%s", cluster, service)
	out, err := client.DescribeScalableTargets(ctx, &applicationautoscaling.DescribeScalableTargetsInput{
		ServiceNamespace: aastypes.ServiceNamespaceEcs,
		ResourceIds:      []string{resourceID},
	})
	if err != nil || len(out.ScalableTargets) == 0 {
		return 0, 0, false
	}
	target := out.ScalableTargets[0]
	return aws.ToInt32(target.MinCapacity), aws.ToInt32(target.MaxCapacity), true
}

// shortTaskARN trims a task ARN down to its task ID.
func shortTaskARN(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 && idx < len(arn)-1 {
		return arn[idx+1:]
	}
	return arn
}
