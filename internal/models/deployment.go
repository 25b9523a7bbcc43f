// Package models provides shared data structures
package models

import "time"

// Deployment status lifecycle for a project's infrastructure.
const (
	StatusNone      = "none"
	StatusDeploying = "deploying"
	StatusDeployed  = "deployed"
	StatusFailed    = "failed"
	StatusDestroyed = "destroyed"
)

// DeploymentMetadata tracks infrastructure deployment information. It is
// persisted to the project's state bucket after every apply/destroy.
type DeploymentMetadata struct {
	ProjectName      string                 `json:"project_name"`
	DeploymentStatus string                 `json:"deployment_status"` // none, deploying, deployed, failed, destroyed
	ImageURI         string                 `json:"image_uri,omitempty"`
	DeployedAt       time.Time              `json:"deployed_at,omitempty"`
	DestroyedAt      time.Time              `json:"destroyed_at,omitempty"`
	Infrastructure   InfrastructureInfo     `json:"infrastructure"`
	Outputs          map[string]interface{} `json:"outputs,omitempty"`
}

// InfrastructureInfo contains details about deployed resources
type InfrastructureInfo struct {
	ClusterName       string `json:"cluster_name"`
	ServiceName       string `json:"service_name"`
	ALBDNS            string `json:"alb_dns"`
	ServiceURL        string `json:"service_url"`
	TargetGroupARN    string `json:"target_group_arn"`
	TaskDefinitionARN string `json:"task_definition_arn"`
	LogGroup          string `json:"log_group"`
	VPCId             string `json:"vpc_id"`
	Region            string `json:"region"`
}

// IsDeployed reports whether live infrastructure exists for the project.
func (m *DeploymentMetadata) IsDeployed() bool {
	return m.DeploymentStatus == StatusDeployed
}

// TaskLifecycleState is the externally managed task state machine the
// status command reports. Transitions happen in the orchestrator; this
// toolchain only observes them.
type TaskLifecycleState string

const (
	TaskProvisioning TaskLifecycleState = "PROVISIONING"
	TaskPending      TaskLifecycleState = "PENDING"
	TaskRunning      TaskLifecycleState = "RUNNING"
	TaskDraining     TaskLifecycleState = "DRAINING"
	TaskStopped      TaskLifecycleState = "STOPPED"
)

// LifecycleFromECS maps an ECS task lastStatus onto the five observable
// lifecycle states. ECS reports finer-grained transitional statuses
// (ACTIVATING, DEACTIVATING, STOPPING, DEPROVISIONING) that collapse onto
// the neighboring declared state.
func LifecycleFromECS(lastStatus string) TaskLifecycleState {
	switch lastStatus {
	case "PROVISIONING":
		return TaskProvisioning
	case "PENDING", "ACTIVATING":
		return TaskPending
	case "RUNNING":
		return TaskRunning
	case "DEACTIVATING", "STOPPING", "DEPROVISIONING":
		return TaskDraining
	case "STOPPED", "DELETED":
		return TaskStopped
	default:
		return TaskLifecycleState(lastStatus)
	}
}
