// internal/policy/engine.go
package policy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dop251/goja"

	"github.com/hiptraveler/agentctl/internal/models"
	"github.com/hiptraveler/agentctl/internal/terraform"
)

// Engine runs a JavaScript policy script against a plan before it is
// applied. The script sees a `plan` object and a `topology` object and can
// call deny(reason) to block the apply or warn(reason) to annotate it.
type Engine struct {
	vm         *goja.Runtime
	scriptPath string
	denied     []string
	warnings   []string
}

// NewEngine creates a JavaScript environment for the given policy script.
func NewEngine(scriptPath string) *Engine {
	e := &Engine{
		vm:         goja.New(),
		scriptPath: scriptPath,
	}
	e.setupEnvironment()
	return e
}

func (e *Engine) setupEnvironment() {
	e.vm.Set("deny", func(reason string) {
		e.denied = append(e.denied, reason)
	})
	e.vm.Set("warn", func(reason string) {
		e.warnings = append(e.warnings, reason)
	})

	console := map[string]interface{}{
		"log": func(args ...interface{}) {
			fmt.Printf("   [Policy Log] %v\n", args)
		},
		"error": func(args ...interface{}) {
			fmt.Printf("   [Policy Error] %v\n", args)
		},
	}
	e.vm.Set("console", console)
}

// Evaluate runs the script against the plan summary and declaration.
// A missing script file allows everything.
func (e *Engine) Evaluate(summary *terraform.PlanSummary, top *models.Topology) error {
	script, err := os.ReadFile(e.scriptPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read policy script: %w", err)
	}

	if err := e.bind("plan", planObject(summary)); err != nil {
		return err
	}
	if err := e.bind("topology", top); err != nil {
		return err
	}

	if err := e.run(string(script)); err != nil {
		return err
	}

	for _, w := range e.warnings {
		fmt.Printf("⚠️  Policy warning: %s\n", w)
	}
	if len(e.denied) > 0 {
		return &models.PolicyViolationError{
			Script: e.scriptPath,
			Reason: e.denied[0],
		}
	}
	return nil
}

// Warnings returns the warn() messages collected during evaluation.
func (e *Engine) Warnings() []string {
	return e.warnings
}

// bind exposes a Go value to the VM as plain JavaScript data via a JSON
// round trip, so scripts cannot reach back into Go objects.
func (e *Engine) bind(name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s for policy script: %w", name, err)
	}
	var plain interface{}
	if err := json.Unmarshal(data, &plain); err != nil {
		return fmt.Errorf("failed to bind %s for policy script: %w", name, err)
	}
	e.vm.Set(name, plain)
	return nil
}

func (e *Engine) run(script string) (execErr error) {
	defer func() {
		if r := recover(); r != nil {
			execErr = &models.PolicyViolationError{
				Script: e.scriptPath,
				Reason: fmt.Sprintf("panic during policy evaluation: %v", r),
			}
		}
	}()

	if _, err := e.vm.RunString(script); err != nil {
		return &models.PolicyViolationError{
			Script: e.scriptPath,
			Reason: fmt.Sprintf("script failed: %v", err),
		}
	}
	return nil
}

// planObject flattens the plan summary into the shape policy scripts see.
func planObject(summary *terraform.PlanSummary) map[string]interface{} {
	changes := make([]map[string]interface{}, 0, len(summary.Changes))
	for _, c := range summary.Changes {
		changes = append(changes, map[string]interface{}{
			"address": c.Address,
			"type":    c.Type,
			"action":  c.Action,
		})
	}
	return map[string]interface{}{
		"add":         summary.Add,
		"change":      summary.Change,
		"destroy":     summary.Destroy,
		"destructive": summary.Destructive(),
		"changes":     changes,
	}
}
