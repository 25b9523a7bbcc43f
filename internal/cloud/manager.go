package cloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/hiptraveler/agentctl/internal"
	awscloud "github.com/hiptraveler/agentctl/internal/cloud/aws"
	"github.com/hiptraveler/agentctl/internal/models"
	"github.com/hiptraveler/agentctl/internal/prompts"
)

// CloudManager orchestrates provider detection and project workflows.
type CloudManager struct {
	profile  string
	Provider internal.Provider
}

// NewCloudManager creates a new cloud manager instance
func NewCloudManager(profile string) *CloudManager {
	return &CloudManager{
		profile: profile,
	}
}

// AutoDetectProvider validates credentials and binds the first available
// cloud provider. Only AWS is supported today.
func (m *CloudManager) AutoDetectProvider(ctx context.Context) error {
	if ok, _ := awscloud.ValidateCredentials(ctx, m.profile); !ok {
		return errors.New("❌ No valid cloud provider credentials found. Please configure AWS credentials")
	}
	fmt.Println("🔍 Detected valid AWS credentials — proceeding with AWS provider...")

	provider, err := SelectProvider(ctx, m.profile)
	if err != nil {
		return fmt.Errorf("failed to initialize cloud provider: %w", err)
	}
	m.Provider = provider
	return nil
}

// Initialize runs the complete init workflow: credential check, project
// storage bootstrap, and first declaration.
func (m *CloudManager) Initialize(ctx context.Context, projectName string, interactive bool) error {
	if err := m.AutoDetectProvider(ctx); err != nil {
		return err
	}

	if err := m.Provider.ValidateProjectName(projectName); err != nil {
		return fmt.Errorf("invalid project name: %w", err)
	}

	exists, err := m.Provider.ProjectExists(ctx, projectName)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if exists {
		fmt.Printf("📂 Using existing project: %s\n", projectName)
	} else {
		fmt.Printf("📂 Creating new project: %s\n", projectName)
	}

	if err := m.Provider.InitProject(ctx, projectName); err != nil {
		return fmt.Errorf("failed to initialize project infrastructure: %w", err)
	}

	// Seed the declaration on first init; an existing one is left alone.
	if _, err := m.Provider.GetTopology(ctx); err != nil {
		top := models.DefaultTopology(projectName, m.Provider.GetRegion())
		if interactive {
			if err := prompts.PromptSetup(top); err != nil {
				return err
			}
		}
		if err := m.Provider.SaveTopology(ctx, top); err != nil {
			return fmt.Errorf("failed to save declaration: %w", err)
		}
		fmt.Printf("📝 Default service declaration saved. Review it with 'agentctl validate --project %s'.\n", projectName)
	}

	fmt.Printf("✅ Project '%s' initialized successfully!\n", projectName)
	return nil
}

// BindProject attaches the provider to an existing project or fails with
// guidance to run init first.
func (m *CloudManager) BindProject(ctx context.Context, projectName string) error {
	if m.Provider == nil {
		if err := m.AutoDetectProvider(ctx); err != nil {
			return err
		}
	}
	exists, err := m.Provider.ProjectExists(ctx, projectName)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return fmt.Errorf("project '%s' does not exist; run 'agentctl init --project %s' first", projectName, projectName)
	}
	return nil
}
