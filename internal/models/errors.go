package models

import "fmt"

// ProviderError represents cloud provider operation errors
type ProviderError struct {
	Provider  string // "aws"
	Operation string // "init", "put-state", "lock-table", etc.
	Resource  string // bucket name, table name, project name
	Cause     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error during %s operation on resource '%s': %v",
		e.Provider, e.Operation, e.Resource, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// DeploymentError represents infrastructure deployment errors
type DeploymentError struct {
	ProjectName string
	Phase       string // "init", "plan", "apply", "destroy"
	Cause       error
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("deployment error for project '%s' during %s phase: %v",
		e.ProjectName, e.Phase, e.Cause)
}

func (e *DeploymentError) Unwrap() error {
	return e.Cause
}

// BuildError represents container image build or push errors
type BuildError struct {
	Image string
	Step  string // "context", "build", "login", "push"
	Cause error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("image build failed for '%s' during %s step: %v",
		e.Image, e.Step, e.Cause)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a declaration consistency failure. It carries
// the error-severity findings so callers can print the full report.
type ValidationError struct {
	Project  string
	Findings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("declaration for project '%s' failed validation with %d error(s)",
		e.Project, len(e.Findings))
}

// PolicyViolationError represents a deploy denied by the policy script.
type PolicyViolationError struct {
	Script string
	Reason string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("deploy denied by policy script '%s': %s", e.Script, e.Reason)
}

// SecretError represents a secret reference that could not be resolved.
type SecretError struct {
	Parameter string
	Operation string // "resolve", "put", "list"
	Cause     error
}

func (e *SecretError) Error() string {
	return fmt.Sprintf("secret parameter '%s' %s failed: %v", e.Parameter, e.Operation, e.Cause)
}

func (e *SecretError) Unwrap() error {
	return e.Cause
}
