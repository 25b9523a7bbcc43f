package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTopology(t *testing.T) {
	top := DefaultTopology("demo", "us-east-1")

	if top.Compute.ContainerPort != 8000 {
		t.Errorf("expected container port 8000, got %d", top.Compute.ContainerPort)
	}
	if top.Edge.HealthCheck.Path != "/health" {
		t.Errorf("expected health check path /health, got %s", top.Edge.HealthCheck.Path)
	}
	if top.Edge.HTTPPort != 80 || top.Edge.HTTPSPort != 443 {
		t.Errorf("expected listeners 80/443, got %d/%d", top.Edge.HTTPPort, top.Edge.HTTPSPort)
	}
	if len(top.Network.PublicSubnetCIDRs) < 2 {
		t.Errorf("expected at least 2 public subnets, got %d", len(top.Network.PublicSubnetCIDRs))
	}
	if len(top.Compute.Secrets) != len(DefaultSecretNames) {
		t.Fatalf("expected %d secret refs, got %d", len(DefaultSecretNames), len(top.Compute.Secrets))
	}
	for _, ref := range top.Compute.Secrets {
		if !strings.HasPrefix(ref.Parameter, "/agentic-api/demo/") {
			t.Errorf("secret parameter %s missing project prefix", ref.Parameter)
		}
		if !strings.HasSuffix(ref.Parameter, ref.Env) {
			t.Errorf("secret parameter %s does not end with env name %s", ref.Parameter, ref.Env)
		}
	}
	if top.Scaling.MinCapacity > top.Compute.DesiredCount || top.Compute.DesiredCount > top.Scaling.MaxCapacity {
		t.Errorf("desired count %d outside scaling band [%d,%d]",
			top.Compute.DesiredCount, top.Scaling.MinCapacity, top.Scaling.MaxCapacity)
	}
}

func TestLoadTopologyRoundTrip(t *testing.T) {
	top := DefaultTopology("roundtrip", "eu-west-1")
	data, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "topology.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := LoadTopology(path)
	if err != nil {
		t.Fatalf("LoadTopology: %v", err)
	}
	if loaded.Project != "roundtrip" || loaded.Region != "eu-west-1" {
		t.Errorf("unexpected project/region: %s/%s", loaded.Project, loaded.Region)
	}
	if loaded.Compute.ContainerPort != top.Compute.ContainerPort {
		t.Errorf("container port changed across round trip")
	}
	if len(loaded.Compute.Secrets) != len(top.Compute.Secrets) {
		t.Errorf("secret refs changed across round trip")
	}
}

func TestLoadTopologyMissingFile(t *testing.T) {
	if _, err := LoadTopology(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing declaration file")
	}
}

func TestCreateTerraformVars(t *testing.T) {
	top := DefaultTopology("vars", "us-west-2")
	top.Compute.ImageURI = "123456789012.dkr.ecr.us-west-2.amazonaws.com/agentic-api:v1"
	top.Compute.Environment = map[string]string{"LOG_LEVEL": "info"}

	vars := top.CreateTerraformVars()

	for _, want := range []string{
		`project_name`,
		`"vars"`,
		`container_port`,
		`= 8000`,
		`health_check_path`,
		`"/health"`,
		`assign_public_ip                  = true`,
		`min_capacity`,
		`max_capacity`,
		`OPENAI_API_KEY = "/agentic-api/vars/OPENAI_API_KEY"`,
		`LOG_LEVEL = "info"`,
		`"123456789012.dkr.ecr.us-west-2.amazonaws.com/agentic-api:v1"`,
	} {
		if !strings.Contains(vars, want) {
			t.Errorf("tfvars missing %q\nfull output:\n%s", want, vars)
		}
	}
}

func TestCreateTerraformVarsNeverContainsSecretValues(t *testing.T) {
	top := DefaultTopology("leakcheck", "us-east-1")
	vars := top.CreateTerraformVars()

	// Only parameter names may appear, never anything that looks like a value.
	if strings.Contains(vars, "sk-") || strings.Contains(vars, "BEGIN PRIVATE KEY") {
		t.Error("tfvars appears to contain secret material")
	}
	for _, name := range DefaultSecretNames {
		if !strings.Contains(vars, "/agentic-api/leakcheck/"+name) {
			t.Errorf("tfvars missing parameter reference for %s", name)
		}
	}
}

func TestSecretParameterNamesSorted(t *testing.T) {
	top := DefaultTopology("sorted", "us-east-1")
	names := top.SecretParameterNames()
	if len(names) != len(DefaultSecretNames) {
		t.Fatalf("expected %d names, got %d", len(DefaultSecretNames), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %s before %s", names[i-1], names[i])
		}
	}
}

func TestLifecycleFromECS(t *testing.T) {
	cases := map[string]TaskLifecycleState{
		"PROVISIONING":   TaskProvisioning,
		"PENDING":        TaskPending,
		"ACTIVATING":     TaskPending,
		"RUNNING":        TaskRunning,
		"DEACTIVATING":   TaskDraining,
		"STOPPING":       TaskDraining,
		"DEPROVISIONING": TaskDraining,
		"STOPPED":        TaskStopped,
	}
	for input, want := range cases {
		if got := LifecycleFromECS(input); got != want {
			t.Errorf("LifecycleFromECS(%s) = %s, want %s", input, got, want)
		}
	}
}
