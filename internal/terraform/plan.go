package terraform

import (
	tfjson "github.com/hashicorp/terraform-json"
)

// ResourceChange is one planned action on a single resource.
type ResourceChange struct {
	Address string `json:"address"`
	Type    string `json:"type"`
	Action  string `json:"action"` // create, update, replace, delete
}

// PlanSummary is the typed digest of a terraform plan. A zero-action
// summary means the declaration is already converged: re-applying an
// unchanged declaration plans nothing.
type PlanSummary struct {
	Add     int              `json:"add"`
	Change  int              `json:"change"`
	Destroy int              `json:"destroy"`
	Changes []ResourceChange `json:"changes"`
}

// NoChanges reports whether the plan contains zero actions.
func (s *PlanSummary) NoChanges() bool {
	return s.Add == 0 && s.Change == 0 && s.Destroy == 0
}

// Destructive reports whether any resource would be destroyed or replaced.
func (s *PlanSummary) Destructive() bool {
	return s.Destroy > 0
}

// summarizePlan folds a terraform-json plan into counts and per-resource
// actions, ignoring no-op and read-only entries.
func summarizePlan(plan *tfjson.Plan) *PlanSummary {
	s := &PlanSummary{}
	if plan == nil {
		return s
	}

	for _, rc := range plan.ResourceChanges {
		if rc.Change == nil {
			continue
		}
		actions := rc.Change.Actions
		if actions.NoOp() || actions.Read() {
			continue
		}

		change := ResourceChange{Address: rc.Address, Type: rc.Type}
		switch {
		case actions.Replace():
			change.Action = "replace"
			s.Add++
			s.Destroy++
		case actions.Create():
			change.Action = "create"
			s.Add++
		case actions.Update():
			change.Action = "update"
			s.Change++
		case actions.Delete():
			change.Action = "delete"
			s.Destroy++
		default:
			continue
		}
		s.Changes = append(s.Changes, change)
	}

	return s
}
