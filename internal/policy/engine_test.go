// internal/policy/engine_test.go
package policy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hiptraveler/agentctl/internal/models"
	"github.com/hiptraveler/agentctl/internal/terraform"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.js")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func testSummary() *terraform.PlanSummary {
	return &terraform.PlanSummary{
		Add:     2,
		Change:  1,
		Destroy: 1,
		Changes: []terraform.ResourceChange{
			{Address: "aws_ecs_service.api", Type: "aws_ecs_service", Action: "update"},
			{Address: "aws_lb.api", Type: "aws_lb", Action: "delete"},
		},
	}
}

func TestEvaluateMissingScriptAllows(t *testing.T) {
	e := NewEngine(filepath.Join(t.TempDir(), "nope.js"))
	if err := e.Evaluate(testSummary(), models.DefaultTopology("demo", "us-east-1")); err != nil {
		t.Fatalf("missing script should allow, got %v", err)
	}
}

func TestEvaluateDeny(t *testing.T) {
	path := writeScript(t, `
		if (plan.destroy > 0) {
			deny("plan destroys " + plan.destroy + " resource(s)");
		}
	`)
	e := NewEngine(path)
	err := e.Evaluate(testSummary(), models.DefaultTopology("demo", "us-east-1"))
	if err == nil {
		t.Fatal("expected policy violation")
	}
	var violation *models.PolicyViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected PolicyViolationError, got %T", err)
	}
	if violation.Reason != "plan destroys 1 resource(s)" {
		t.Errorf("unexpected reason: %s", violation.Reason)
	}
}

func TestEvaluateWarnDoesNotBlock(t *testing.T) {
	path := writeScript(t, `
		warn("load balancer is being replaced");
	`)
	e := NewEngine(path)
	if err := e.Evaluate(testSummary(), models.DefaultTopology("demo", "us-east-1")); err != nil {
		t.Fatalf("warn should not block, got %v", err)
	}
	if len(e.Warnings()) != 1 {
		t.Fatalf("expected one warning, got %d", len(e.Warnings()))
	}
}

func TestEvaluateSeesTopology(t *testing.T) {
	path := writeScript(t, `
		if (topology.scaling.max_capacity > 3) {
			deny("scaling band too wide");
		}
	`)
	e := NewEngine(path)
	top := models.DefaultTopology("demo", "us-east-1")
	top.Scaling.MaxCapacity = 10
	if err := e.Evaluate(testSummary(), top); err == nil {
		t.Fatal("expected deny based on topology field")
	}
}

func TestEvaluateBrokenScript(t *testing.T) {
	path := writeScript(t, `this is not javascript`)
	e := NewEngine(path)
	err := e.Evaluate(testSummary(), models.DefaultTopology("demo", "us-east-1"))
	var violation *models.PolicyViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected PolicyViolationError for broken script, got %v", err)
	}
}
