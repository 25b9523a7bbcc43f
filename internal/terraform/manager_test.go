package terraform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hiptraveler/agentctl/internal/models"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	top := models.DefaultTopology("unit", "us-east-1")
	top.Edge.CertificateARN = "arn:aws:acm:us-east-1:123456789012:certificate/abc"
	top.Compute.ImageURI = "123456789012.dkr.ecr.us-east-1.amazonaws.com/agentic-api:v1"
	return NewManager(top, "agentic-api-unit-bucket", "agentic-api-unit-locks", "")
}

func TestRenderWritesCompleteStack(t *testing.T) {
	m := testManager(t)
	dir := t.TempDir()

	if err := m.Render(dir); err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, name := range []string{
		"main.tf", "variables.tf", "network.tf", "alb.tf",
		"iam.tf", "ecs.tf", "autoscaling.tf", "outputs.tf",
		"backend.tf", "terraform.tfvars",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be rendered: %v", name, err)
		}
	}
}

func TestRenderedBackendUsesLockTable(t *testing.T) {
	m := testManager(t)
	dir := t.TempDir()
	if err := m.Render(dir); err != nil {
		t.Fatalf("Render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "backend.tf"))
	if err != nil {
		t.Fatalf("read backend.tf: %v", err)
	}
	backend := string(data)

	for _, want := range []string{
		`backend "s3"`,
		`bucket         = "agentic-api-unit-bucket"`,
		`dynamodb_table = "agentic-api-unit-locks"`,
		`encrypt        = true`,
		stateKey,
	} {
		if !strings.Contains(backend, want) {
			t.Errorf("backend.tf missing %q:\n%s", want, backend)
		}
	}
}

func TestRenderedTfvarsMatchDeclaration(t *testing.T) {
	m := testManager(t)
	dir := t.TempDir()
	if err := m.Render(dir); err != nil {
		t.Fatalf("Render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "terraform.tfvars"))
	if err != nil {
		t.Fatalf("read tfvars: %v", err)
	}
	vars := string(data)

	if !strings.Contains(vars, `"unit"`) {
		t.Error("tfvars missing project name")
	}
	if !strings.Contains(vars, "container_port") {
		t.Error("tfvars missing container port")
	}
	if !strings.Contains(vars, "secret_parameters") {
		t.Error("tfvars missing secret parameter map")
	}
}

func TestRenderedStackRedirectsPort80(t *testing.T) {
	m := testManager(t)
	dir := t.TempDir()
	if err := m.Render(dir); err != nil {
		t.Fatalf("Render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "alb.tf"))
	if err != nil {
		t.Fatalf("read alb.tf: %v", err)
	}
	alb := string(data)

	if !strings.Contains(alb, `type = "redirect"`) {
		t.Error("HTTP listener does not declare a redirect action")
	}
	if !strings.Contains(alb, `status_code = "HTTP_301"`) {
		t.Error("redirect should be permanent (301)")
	}
	if !strings.Contains(alb, "certificate_arn   = var.certificate_arn") {
		t.Error("HTTPS listener missing certificate reference")
	}
}

func TestRenderedTaskDefinitionWiresSecrets(t *testing.T) {
	m := testManager(t)
	dir := t.TempDir()
	if err := m.Render(dir); err != nil {
		t.Fatalf("Render: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ecs.tf"))
	if err != nil {
		t.Fatalf("read ecs.tf: %v", err)
	}
	ecs := string(data)

	if !strings.Contains(ecs, "valueFrom") {
		t.Error("task definition does not inject secrets by parameter reference")
	}
	if !strings.Contains(ecs, "assign_public_ip = var.assign_public_ip") {
		t.Error("public IP assignment must come from the declaration, not be hard-coded")
	}
	if !strings.Contains(ecs, `requires_compatibilities = ["FARGATE"]`) {
		t.Error("task definition must target Fargate")
	}
}

func TestWorkingDirIsPerInvocation(t *testing.T) {
	m1 := testManager(t)
	if !strings.Contains(m1.WorkingDir, "agentctl-unit-") {
		t.Errorf("unexpected working dir %s", m1.WorkingDir)
	}
}
