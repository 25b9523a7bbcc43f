package validate

import (
	"strings"
	"testing"

	"github.com/hiptraveler/agentctl/internal/image"
	"github.com/hiptraveler/agentctl/internal/models"
)

func validPair() (*image.Spec, *models.Topology) {
	top := models.DefaultTopology("demo", "us-east-1")
	top.Edge.CertificateARN = "arn:aws:acm:us-east-1:123456789012:certificate/abc"
	top.Compute.ImageURI = "123456789012.dkr.ecr.us-east-1.amazonaws.com/agentic-api:v1"
	return image.DefaultSpec(), top
}

func hasErrorContaining(t *testing.T, r *Report, fragment string) {
	t.Helper()
	for _, msg := range r.Errors() {
		if strings.Contains(msg, fragment) {
			return
		}
	}
	t.Errorf("expected an error containing %q, got errors: %v", fragment, r.Errors())
}

func TestValidDeclarationPasses(t *testing.T) {
	spec, top := validPair()
	r := Check(spec, top)
	if !r.OK() {
		t.Errorf("expected valid declaration, got errors: %v", r.Errors())
	}
}

func TestErrNilWhenDeclarationIsValid(t *testing.T) {
	spec, top := validPair()
	if err := Check(spec, top).Err("demo"); err != nil {
		t.Errorf("expected nil error for a valid declaration, got: %v", err)
	}
}

func TestErrCarriesBlockingFindings(t *testing.T) {
	spec, top := validPair()
	top.Compute.ContainerPort = 9000
	err := Check(spec, top).Err("demo")
	if err == nil {
		t.Fatal("expected an error for a port mismatch")
	}

	verr, ok := err.(*models.ValidationError)
	if !ok {
		t.Fatalf("expected *models.ValidationError, got %T", err)
	}
	if verr.Project != "demo" {
		t.Errorf("project: got %s, want demo", verr.Project)
	}
	if len(verr.Findings) == 0 {
		t.Error("expected the error to carry the blocking findings")
	}
}

func TestPortMismatch(t *testing.T) {
	spec, top := validPair()
	top.Compute.ContainerPort = 9000
	r := Check(spec, top)
	if r.OK() {
		t.Fatal("expected port mismatch to fail validation")
	}
	hasErrorContaining(t, r, "port")
}

func TestHealthCheckPathMismatch(t *testing.T) {
	spec, top := validPair()
	spec.HealthCheck.Path = "/healthz"
	r := Check(spec, top)
	hasErrorContaining(t, r, "health check path")
}

func TestDesiredCountOutsideBand(t *testing.T) {
	spec, top := validPair()
	top.Compute.DesiredCount = 10
	r := Check(spec, top)
	hasErrorContaining(t, r, "min_capacity <= desired_count <= max_capacity")

	top.Compute.DesiredCount = 0
	r = Check(spec, top)
	hasErrorContaining(t, r, "min_capacity <= desired_count <= max_capacity")
}

func TestDanglingSecretReference(t *testing.T) {
	spec, top := validPair()
	top.Compute.Secrets = append(top.Compute.Secrets, models.SecretRef{Env: "BROKEN_KEY"})
	r := Check(spec, top)
	hasErrorContaining(t, r, "dangling")
}

func TestDuplicateSecretEnv(t *testing.T) {
	spec, top := validPair()
	top.Compute.Secrets = append(top.Compute.Secrets, top.Compute.Secrets[0])
	r := Check(spec, top)
	hasErrorContaining(t, r, "duplicate secret")
}

func TestPlainEnvironmentShadowsSecret(t *testing.T) {
	spec, top := validPair()
	top.Compute.Environment = map[string]string{"OPENAI_API_KEY": "inline"}
	r := Check(spec, top)
	hasErrorContaining(t, r, "both as plain environment and as a secret")
}

func TestMissingCertificate(t *testing.T) {
	spec, top := validPair()
	top.Edge.CertificateARN = ""
	r := Check(spec, top)
	hasErrorContaining(t, r, "certificate")
}

func TestNonStandardListenerPorts(t *testing.T) {
	spec, top := validPair()
	top.Edge.HTTPPort = 8080
	r := Check(spec, top)
	hasErrorContaining(t, r, "redirects to 443")
}

func TestInvalidFargatePairing(t *testing.T) {
	spec, top := validPair()
	top.Compute.CPUUnits = 512
	top.Compute.MemoryMiB = 512
	r := Check(spec, top)
	hasErrorContaining(t, r, "valid band")

	top.Compute.CPUUnits = 300
	r = Check(spec, top)
	hasErrorContaining(t, r, "Fargate allocation")
}

func TestSubnetChecks(t *testing.T) {
	spec, top := validPair()
	top.Network.PublicSubnetCIDRs = []string{"10.0.1.0/24"}
	r := Check(spec, top)
	hasErrorContaining(t, r, "at least 2 public subnets")

	top.Network.PublicSubnetCIDRs = []string{"10.0.1.0/24", "192.168.1.0/24"}
	r = Check(spec, top)
	hasErrorContaining(t, r, "outside the VPC CIDR")

	top.Network.PublicSubnetCIDRs = []string{"10.0.1.0/24", "not-a-cidr"}
	r = Check(spec, top)
	hasErrorContaining(t, r, "not a valid CIDR")
}

func TestHealthCheckTimings(t *testing.T) {
	spec, top := validPair()
	top.Edge.HealthCheck.TimeoutSeconds = 30
	top.Edge.HealthCheck.IntervalSeconds = 30
	r := Check(spec, top)
	hasErrorContaining(t, r, "shorter than the interval")
}

func TestTopologyOnlyValidation(t *testing.T) {
	_, top := validPair()
	r := Check(nil, top)
	if !r.OK() {
		t.Errorf("topology-only validation failed: %v", r.Errors())
	}
}

func TestMissingImageIsWarningOnly(t *testing.T) {
	spec, top := validPair()
	top.Compute.ImageURI = ""
	r := Check(spec, top)
	if !r.OK() {
		t.Errorf("missing image should warn, not error: %v", r.Errors())
	}
	found := false
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning && strings.Contains(f.Message, "image URI") {
			found = true
		}
	}
	if !found {
		t.Error("expected a warning about the missing image URI")
	}
}
