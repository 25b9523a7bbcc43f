package terraform

import (
	"testing"

	tfjson "github.com/hashicorp/terraform-json"
)

func change(address, typ string, actions tfjson.Actions) *tfjson.ResourceChange {
	return &tfjson.ResourceChange{
		Address: address,
		Type:    typ,
		Change:  &tfjson.Change{Actions: actions},
	}
}

func TestSummarizePlan(t *testing.T) {
	plan := &tfjson.Plan{
		ResourceChanges: []*tfjson.ResourceChange{
			change("aws_vpc.main", "aws_vpc", tfjson.Actions{tfjson.ActionCreate}),
			change("aws_ecs_service.main", "aws_ecs_service", tfjson.Actions{tfjson.ActionUpdate}),
			change("aws_lb.main", "aws_lb", tfjson.Actions{tfjson.ActionDelete}),
			change("aws_ecs_task_definition.service", "aws_ecs_task_definition",
				tfjson.Actions{tfjson.ActionDelete, tfjson.ActionCreate}),
			change("aws_subnet.public[0]", "aws_subnet", tfjson.Actions{tfjson.ActionNoop}),
			change("data.aws_caller_identity.current", "aws_caller_identity", tfjson.Actions{tfjson.ActionRead}),
		},
	}

	s := summarizePlan(plan)

	if s.Add != 2 { // create + replace
		t.Errorf("Add = %d, want 2", s.Add)
	}
	if s.Change != 1 {
		t.Errorf("Change = %d, want 1", s.Change)
	}
	if s.Destroy != 2 { // delete + replace
		t.Errorf("Destroy = %d, want 2", s.Destroy)
	}
	if len(s.Changes) != 4 {
		t.Fatalf("expected 4 recorded changes, got %d", len(s.Changes))
	}
	if s.Changes[3].Action != "replace" {
		t.Errorf("expected replace action for task definition, got %s", s.Changes[3].Action)
	}
	if s.NoChanges() {
		t.Error("NoChanges should be false")
	}
	if !s.Destructive() {
		t.Error("Destructive should be true")
	}
}

func TestSummarizeEmptyPlan(t *testing.T) {
	s := summarizePlan(&tfjson.Plan{})
	if !s.NoChanges() {
		t.Error("empty plan should report no changes")
	}
	if s.Destructive() {
		t.Error("empty plan should not be destructive")
	}

	if s := summarizePlan(nil); !s.NoChanges() {
		t.Error("nil plan should report no changes")
	}
}
