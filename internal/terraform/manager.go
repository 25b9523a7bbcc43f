// internal/terraform/manager.go
package terraform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/terraform-exec/tfexec"

	"github.com/hiptraveler/agentctl/internal/models"
	"github.com/hiptraveler/agentctl/internal/ui"
)

const stateKey = "terraform/service/state/terraform.tfstate"

// Manager drives Terraform over the embedded service stack. Every
// operation runs in an ephemeral workspace: the embedded sources are
// copied out, backend.tf and terraform.tfvars are generated from the
// declaration, and the workspace is removed afterwards. State lives
// remotely in the project's S3 bucket, serialized by the DynamoDB lock
// table.
type Manager struct {
	Topology    *models.Topology
	StateBucket string
	LockTable   string
	Profile     string
	WorkingDir  string
}

// Outputs are the stack outputs recorded after an apply.
type Outputs struct {
	ALBDNSName        string                 `json:"alb_dns_name"`
	ServiceURL        string                 `json:"service_url"`
	ClusterName       string                 `json:"cluster_name"`
	ServiceName       string                 `json:"service_name"`
	TargetGroupARN    string                 `json:"target_group_arn"`
	TaskDefinitionARN string                 `json:"task_definition_arn"`
	LogGroup          string                 `json:"log_group_name"`
	VPCID             string                 `json:"vpc_id"`
	Raw               map[string]interface{} `json:"raw,omitempty"`
}

// NewManager creates a Terraform manager bound to a declaration and its
// remote state location.
func NewManager(top *models.Topology, stateBucket, lockTable, profile string) *Manager {
	workingDir := filepath.Join(os.TempDir(),
		fmt.Sprintf("agentctl-%s-%s", top.Project, time.Now().Format("20060102-150405")))

	return &Manager{
		Topology:    top,
		StateBucket: stateBucket,
		LockTable:   lockTable,
		Profile:     profile,
		WorkingDir:  workingDir,
	}
}

// Plan computes the change set between the declaration and remote state.
func (m *Manager) Plan(ctx context.Context) (*PlanSummary, error) {
	tf, err := m.prepare(ctx)
	if err != nil {
		return nil, err
	}
	defer m.cleanup()

	return m.plan(ctx, tf)
}

// Apply converges the infrastructure to the declaration and returns the
// stack outputs. The plan is computed first and handed to gate, which may
// refuse it; a nil gate always applies.
func (m *Manager) Apply(ctx context.Context, gate func(*PlanSummary) error) (*Outputs, error) {
	tf, err := m.prepare(ctx)
	if err != nil {
		return nil, err
	}
	defer m.cleanup()

	summary, err := m.plan(ctx, tf)
	if err != nil {
		return nil, err
	}
	if gate != nil {
		if err := gate(summary); err != nil {
			return nil, err
		}
	}
	if summary.NoChanges() {
		fmt.Println("✅ Infrastructure already matches the declaration (no changes)")
		return m.outputs(ctx, tf)
	}

	fmt.Println("🏗️  Applying infrastructure changes...")
	loader := ui.NewSpinner(os.Stdout, fmt.Sprintf("Applying %d change(s)", len(summary.Changes)))
	loader.Start()
	err = tf.Apply(ctx, tfexec.DirOrPlan("tfplan"))
	loader.Stop()
	if err != nil {
		return nil, &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "apply", Cause: err}
	}

	return m.outputs(ctx, tf)
}

// Destroy tears the whole stack down.
func (m *Manager) Destroy(ctx context.Context) error {
	tf, err := m.prepare(ctx)
	if err != nil {
		return err
	}
	defer m.cleanup()

	fmt.Println("💥 Destroying infrastructure...")
	if err := tf.Destroy(ctx); err != nil {
		return &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "destroy", Cause: err}
	}
	return nil
}

// Outputs reads the stack outputs from remote state without planning.
func (m *Manager) Outputs(ctx context.Context) (*Outputs, error) {
	tf, err := m.prepare(ctx)
	if err != nil {
		return nil, err
	}
	defer m.cleanup()

	return m.outputs(ctx, tf)
}

// Render writes the Terraform sources, backend configuration, and
// terraform.tfvars for the current declaration into dir for inspection.
func (m *Manager) Render(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create render directory: %w", err)
	}
	if err := writeEmbeddedTemplates(stackTemplates, dir); err != nil {
		return fmt.Errorf("write terraform sources: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "backend.tf"), []byte(m.backendConfig()), 0644); err != nil {
		return fmt.Errorf("write backend.tf: %w", err)
	}
	vars := m.Topology.CreateTerraformVars()
	if err := os.WriteFile(filepath.Join(dir, "terraform.tfvars"), []byte(vars), 0644); err != nil {
		return fmt.Errorf("write terraform.tfvars: %w", err)
	}
	return nil
}

// prepare builds the ephemeral workspace and runs terraform init against
// the remote backend.
func (m *Manager) prepare(ctx context.Context) (*tfexec.Terraform, error) {
	if m.StateBucket == "" {
		return nil, fmt.Errorf("no state bucket configured for project '%s'; run 'agentctl init' first", m.Topology.Project)
	}

	loader := ui.NewSpinner(os.Stdout, "Preparing workspace")
	loader.Start()
	err := m.Render(m.WorkingDir)
	loader.Stop()
	if err != nil {
		return nil, &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "init", Cause: err}
	}

	tf, err := tfexec.NewTerraform(m.WorkingDir, "terraform")
	if err != nil {
		return nil, &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "init",
			Cause: fmt.Errorf("terraform not found in PATH: %w", err)}
	}
	if m.Profile != "" {
		if err := tf.SetEnv(m.execEnv()); err != nil {
			return nil, &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "init", Cause: err}
		}
	}

	loader = ui.NewSpinner(os.Stdout, "Initializing Terraform")
	loader.Start()
	err = tf.Init(ctx, tfexec.Upgrade(true), tfexec.Reconfigure(true))
	loader.Stop()
	if err != nil {
		return nil, &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "init", Cause: err}
	}

	return tf, nil
}

func (m *Manager) plan(ctx context.Context, tf *tfexec.Terraform) (*PlanSummary, error) {
	fmt.Println("📋 Planning infrastructure changes...")
	loader := ui.NewSpinner(os.Stdout, "Computing plan")
	loader.Start()
	hasChanges, err := tf.Plan(ctx, tfexec.Out("tfplan"))
	loader.Stop()
	if err != nil {
		return nil, &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "plan", Cause: err}
	}
	if !hasChanges {
		return &PlanSummary{}, nil
	}

	plan, err := tf.ShowPlanFile(ctx, "tfplan")
	if err != nil {
		return nil, &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "plan",
			Cause: fmt.Errorf("parse plan file: %w", err)}
	}
	return summarizePlan(plan), nil
}

func (m *Manager) outputs(ctx context.Context, tf *tfexec.Terraform) (*Outputs, error) {
	metas, err := tf.Output(ctx)
	if err != nil {
		return nil, &models.DeploymentError{ProjectName: m.Topology.Project, Phase: "output", Cause: err}
	}

	raw := make(map[string]interface{}, len(metas))
	for name, meta := range metas {
		var v interface{}
		if err := json.Unmarshal(meta.Value, &v); err != nil {
			continue
		}
		raw[name] = v
	}

	getStr := func(k string) string {
		if s, ok := raw[k].(string); ok {
			return s
		}
		return ""
	}

	return &Outputs{
		ALBDNSName:        getStr("alb_dns_name"),
		ServiceURL:        getStr("service_url"),
		ClusterName:       getStr("cluster_name"),
		ServiceName:       getStr("service_name"),
		TargetGroupARN:    getStr("target_group_arn"),
		TaskDefinitionARN: getStr("task_definition_arn"),
		LogGroup:          getStr("log_group_name"),
		VPCID:             getStr("vpc_id"),
		Raw:               raw,
	}, nil
}

// backendConfig renders the S3 backend with DynamoDB locking so concurrent
// operator invocations against the same project serialize.
func (m *Manager) backendConfig() string {
	return fmt.Sprintf(`terraform {
  backend "s3" {
    bucket         = "%s"
    key            = "%s"
    region         = "%s"
    encrypt        = true
    dynamodb_table = "%s"
  }
}
`, m.StateBucket, stateKey, m.Topology.Region, m.LockTable)
}

// execEnv passes the operator's environment through to terraform with the
// selected AWS profile. TF_* variables are owned by tfexec and dropped.
func (m *Manager) execEnv() map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.HasPrefix(k, "TF_") {
			continue
		}
		env[k] = v
	}
	env["AWS_PROFILE"] = m.Profile
	return env
}

func (m *Manager) cleanup() {
	if m.WorkingDir != "" && strings.Contains(m.WorkingDir, "agentctl-") {
		os.RemoveAll(m.WorkingDir)
	}
}
