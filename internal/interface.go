package internal

import (
	"context"

	"github.com/hiptraveler/agentctl/internal/models"
	"github.com/hiptraveler/agentctl/internal/terraform"
)

// Provider defines the interface for project storage operations.
// Implementations handle cloud-specific storage (S3 today; the interface
// leaves room for other backends).
type Provider interface {
	// Declaration management
	SaveTopology(ctx context.Context, top *models.Topology) error
	GetTopology(ctx context.Context) (*models.Topology, error)
	ListTopologyVersions(ctx context.Context) ([]models.VersionInfo, error)

	// Project management
	InitProject(ctx context.Context, projectID string) error
	ValidateProjectName(projectID string) error
	ProjectExists(ctx context.Context, projectID string) (bool, error)
	ListProjects(ctx context.Context) ([]models.ProjectInfo, error)
	DeleteProject(ctx context.Context, projectID string) error

	// Provider info
	GetProviderType() string // "aws"
	GetStorageName() string
	GetLockTableName() string
	GetProjectName() string
	SetStorageName(name string)
	SetProjectName(name string)
	GetRegion() string

	// Deployment metadata management
	SaveDeploymentMetadata(ctx context.Context, md *models.DeploymentMetadata) error
	GetDeploymentMetadata(ctx context.Context) (*models.DeploymentMetadata, error)
	DeleteDeploymentMetadata(ctx context.Context) error
	IsDeployed(ctx context.Context) (bool, error)
	RecordOutputs(ctx context.Context, imageURI string, outputs *terraform.Outputs) error

	// Live preflight for the declaration
	VerifySecretParameters(ctx context.Context, names []string) ([]string, error)
	VerifyRole(ctx context.Context, roleARN string) error
}

// NamingStrategy defines how project names map onto storage resources.
type NamingStrategy interface {
	// GenerateStorageName converts a project ID to a storage-specific name
	// Example: "my-project" -> "agentic-api-my-project-abc12345"
	GenerateStorageName(projectID string) string

	// ExtractProjectID extracts the project ID from a storage name
	// Example: "agentic-api-my-project-abc12345" -> "my-project"
	ExtractProjectID(storageName string) string

	// ValidateProjectID validates a project ID for naming constraints
	ValidateProjectID(projectID string) error

	// GenerateSuffix generates a random suffix for new projects
	GenerateSuffix() (string, error)

	// GetPrefix returns the naming prefix (e.g., "agentic-api-")
	GetPrefix() string

	// LockTableName returns the DynamoDB lock table for a storage bucket.
	LockTableName(storageName string) string

	// Object key helpers
	TopologyCurrentKey(projectID string) string
	TopologyVersionKey(projectID, version string) string
	TopologyMetadataKey(projectID string) string
	DeploymentMetadataKey() string
}
