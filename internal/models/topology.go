package models

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Topology is the declared infrastructure for one project: the complete
// desired cloud state the provisioning tool converges toward. It is a pure
// description; nothing here talks to AWS.
type Topology struct {
	Project string `json:"project"`
	Region  string `json:"region"`

	Network       NetworkSpec       `json:"network"`
	Edge          EdgeSpec          `json:"edge"`
	Compute       ComputeSpec       `json:"compute"`
	Identity      IdentitySpec      `json:"identity"`
	Observability ObservabilitySpec `json:"observability"`
	Scaling       ScalingSpec       `json:"scaling"`
}

// NetworkSpec declares the isolated address space for the service.
type NetworkSpec struct {
	VPCCIDR           string   `json:"vpc_cidr"`
	PublicSubnetCIDRs []string `json:"public_subnet_cidrs"`
}

// EdgeSpec declares the public entry point: ALB listeners, TLS certificate
// and the target group health check. Port 80 always redirects to 443.
type EdgeSpec struct {
	HTTPPort       int         `json:"http_port"`
	HTTPSPort      int         `json:"https_port"`
	CertificateARN string      `json:"certificate_arn"`
	HealthCheck    HealthCheck `json:"health_check"`
}

// HealthCheck declares how the target group probes the container. The
// orchestrator interprets these values; the toolchain only passes them on.
type HealthCheck struct {
	Path               string `json:"path"`
	IntervalSeconds    int    `json:"interval_seconds"`
	TimeoutSeconds     int    `json:"timeout_seconds"`
	HealthyThreshold   int    `json:"healthy_threshold"`
	UnhealthyThreshold int    `json:"unhealthy_threshold"`
	Matcher            string `json:"matcher"`
}

// SecretRef names an SSM parameter injected into the container environment
// at launch. Only the parameter name is declared, never its value.
type SecretRef struct {
	Env       string `json:"env"`
	Parameter string `json:"parameter"`
}

// ComputeSpec declares the running workload: ECS cluster, Fargate service
// and task sizing.
type ComputeSpec struct {
	ContainerName              string            `json:"container_name"`
	ContainerPort              int               `json:"container_port"`
	ImageURI                   string            `json:"image_uri"`
	CPUUnits                   int               `json:"cpu_units"`
	MemoryMiB                  int               `json:"memory_mib"`
	DesiredCount               int               `json:"desired_count"`
	AssignPublicIP             bool              `json:"assign_public_ip"`
	HealthCheckGracePeriodSecs int               `json:"health_check_grace_period_seconds"`
	Environment                map[string]string `json:"environment,omitempty"`
	Secrets                    []SecretRef       `json:"secrets"`
}

// IdentitySpec optionally pins pre-existing IAM roles. When empty the stack
// creates and owns its own execution/task roles.
type IdentitySpec struct {
	ExecutionRoleARN string `json:"execution_role_arn,omitempty"`
	TaskRoleARN      string `json:"task_role_arn,omitempty"`
}

// ObservabilitySpec declares the CloudWatch log group for the service.
type ObservabilitySpec struct {
	LogGroup      string `json:"log_group"`
	RetentionDays int    `json:"retention_days"`
}

// ScalingSpec declares the elasticity band. The cloud control plane
// evaluates it continuously; the toolchain only declares it.
type ScalingSpec struct {
	MinCapacity          int `json:"min_capacity"`
	MaxCapacity          int `json:"max_capacity"`
	TargetCPUPercent     int `json:"target_cpu_percent"`
	ScaleInCooldownSecs  int `json:"scale_in_cooldown_seconds"`
	ScaleOutCooldownSecs int `json:"scale_out_cooldown_seconds"`
}

// DefaultSecretNames is the fixed set of environment variables the Agent
// Streaming API reads from its secret store. The parameters must exist in
// SSM before first deploy; `agentctl secrets check` verifies that.
var DefaultSecretNames = []string{
	"OPENAI_API_KEY",
	"ZEP_API_KEY",
	"SUPABASE_URL",
	"SUPABASE_KEY",
	"SUPABASE_PROJECT_ID",
	"SUPABASE_SERVICE_ROLE_KEY",
	"GOOGLE_MAPS_API_KEY",
	"PERPLEXITY_API_KEY",
	"TAVILY_API_KEY",
	"GEMINI_API_KEY",
}

// DefaultTopology returns the declaration for a fresh project: the original
// agentic-api deployable unit (uvicorn on 8000, GET /health, CPU-tracked
// autoscaling between 1 and 4 tasks).
func DefaultTopology(project, region string) *Topology {
	secrets := make([]SecretRef, 0, len(DefaultSecretNames))
	for _, name := range DefaultSecretNames {
		secrets = append(secrets, SecretRef{
			Env:       name,
			Parameter: fmt.Sprintf("/agentic-api/%s/%s", project, name),
		})
	}

	return &Topology{
		Project: project,
		Region:  region,
		Network: NetworkSpec{
			VPCCIDR:           "10.0.0.0/16",
			PublicSubnetCIDRs: []string{"10.0.1.0/24", "10.0.2.0/24"},
		},
		Edge: EdgeSpec{
			HTTPPort:  80,
			HTTPSPort: 443,
			HealthCheck: HealthCheck{
				Path:               "/health",
				IntervalSeconds:    30,
				TimeoutSeconds:     5,
				HealthyThreshold:   2,
				UnhealthyThreshold: 3,
				Matcher:            "200",
			},
		},
		Compute: ComputeSpec{
			ContainerName:              "agentic-api",
			ContainerPort:              8000,
			CPUUnits:                   512,
			MemoryMiB:                  1024,
			DesiredCount:               1,
			AssignPublicIP:             true,
			HealthCheckGracePeriodSecs: 60,
			Secrets:                    secrets,
		},
		Observability: ObservabilitySpec{
			LogGroup:      fmt.Sprintf("/ecs/agentic-api-%s", project),
			RetentionDays: 30,
		},
		Scaling: ScalingSpec{
			MinCapacity:          1,
			MaxCapacity:          4,
			TargetCPUPercent:     60,
			ScaleInCooldownSecs:  300,
			ScaleOutCooldownSecs: 60,
		},
	}
}

// LoadTopology reads a declaration file from disk.
func LoadTopology(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read declaration file: %w", err)
	}
	var t Topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse declaration file %s: %w", path, err)
	}
	return &t, nil
}

// SecretParameterNames returns the declared SSM parameter names, sorted.
func (t *Topology) SecretParameterNames() []string {
	names := make([]string, 0, len(t.Compute.Secrets))
	for _, ref := range t.Compute.Secrets {
		names = append(names, ref.Parameter)
	}
	sort.Strings(names)
	return names
}

// CreateTerraformVars renders terraform.tfvars for the embedded stack.
func (t *Topology) CreateTerraformVars() string {
	var b strings.Builder
	b.WriteString("# agentctl Terraform variables\n")
	b.WriteString("# Generated automatically - do not edit manually\n\n")

	fmt.Fprintf(&b, "project_name                      = %q\n", t.Project)
	fmt.Fprintf(&b, "aws_region                        = %q\n", t.Region)
	fmt.Fprintf(&b, "vpc_cidr                          = %q\n", t.Network.VPCCIDR)
	fmt.Fprintf(&b, "public_subnet_cidrs               = %s\n", hclStringList(t.Network.PublicSubnetCIDRs))
	fmt.Fprintf(&b, "certificate_arn                   = %q\n", t.Edge.CertificateARN)
	fmt.Fprintf(&b, "health_check_path                 = %q\n", t.Edge.HealthCheck.Path)
	fmt.Fprintf(&b, "health_check_interval             = %d\n", t.Edge.HealthCheck.IntervalSeconds)
	fmt.Fprintf(&b, "health_check_timeout              = %d\n", t.Edge.HealthCheck.TimeoutSeconds)
	fmt.Fprintf(&b, "health_check_healthy_threshold    = %d\n", t.Edge.HealthCheck.HealthyThreshold)
	fmt.Fprintf(&b, "health_check_unhealthy_threshold  = %d\n", t.Edge.HealthCheck.UnhealthyThreshold)
	fmt.Fprintf(&b, "health_check_matcher              = %q\n", t.Edge.HealthCheck.Matcher)
	fmt.Fprintf(&b, "container_name                    = %q\n", t.Compute.ContainerName)
	fmt.Fprintf(&b, "container_port                    = %d\n", t.Compute.ContainerPort)
	fmt.Fprintf(&b, "container_image                   = %q\n", t.Compute.ImageURI)
	fmt.Fprintf(&b, "cpu_units                         = %d\n", t.Compute.CPUUnits)
	fmt.Fprintf(&b, "memory_mib                        = %d\n", t.Compute.MemoryMiB)
	fmt.Fprintf(&b, "desired_count                     = %d\n", t.Compute.DesiredCount)
	fmt.Fprintf(&b, "assign_public_ip                  = %t\n", t.Compute.AssignPublicIP)
	fmt.Fprintf(&b, "health_check_grace_period         = %d\n", t.Compute.HealthCheckGracePeriodSecs)
	fmt.Fprintf(&b, "execution_role_arn                = %q\n", t.Identity.ExecutionRoleARN)
	fmt.Fprintf(&b, "task_role_arn                     = %q\n", t.Identity.TaskRoleARN)
	fmt.Fprintf(&b, "log_group_name                    = %q\n", t.Observability.LogGroup)
	fmt.Fprintf(&b, "log_retention_days                = %d\n", t.Observability.RetentionDays)
	fmt.Fprintf(&b, "min_capacity                      = %d\n", t.Scaling.MinCapacity)
	fmt.Fprintf(&b, "max_capacity                      = %d\n", t.Scaling.MaxCapacity)
	fmt.Fprintf(&b, "target_cpu_percent                = %d\n", t.Scaling.TargetCPUPercent)
	fmt.Fprintf(&b, "scale_in_cooldown                 = %d\n", t.Scaling.ScaleInCooldownSecs)
	fmt.Fprintf(&b, "scale_out_cooldown                = %d\n", t.Scaling.ScaleOutCooldownSecs)

	b.WriteString("\nplain_environment = {\n")
	for _, k := range sortedKeys(t.Compute.Environment) {
		fmt.Fprintf(&b, "  %s = %q\n", k, t.Compute.Environment[k])
	}
	b.WriteString("}\n")

	b.WriteString("\nsecret_parameters = {\n")
	for _, ref := range t.Compute.Secrets {
		fmt.Fprintf(&b, "  %s = %q\n", ref.Env, ref.Parameter)
	}
	b.WriteString("}\n")

	return b.String()
}

func hclStringList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, fmt.Sprintf("%q", it))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
