// Package validate checks a declaration for internal consistency before
// anything is rendered, built, or applied. Violations that would otherwise
// only surface at apply time are reported here as findings.
package validate

import (
	"fmt"
	"net"
	"strings"

	"github.com/hiptraveler/agentctl/internal/image"
	"github.com/hiptraveler/agentctl/internal/models"
)

// Severity classifies a finding. Errors block deploy; warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one consistency problem discovered in the declaration.
type Finding struct {
	Severity Severity
	Message  string
}

// Report is the outcome of a validation run.
type Report struct {
	Findings []Finding
}

// OK reports whether the declaration may be deployed.
func (r *Report) OK() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns the error-severity messages.
func (r *Report) Errors() []string {
	var msgs []string
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

// Err folds the blocking findings into a typed error, or nil when the
// declaration may be deployed.
func (r *Report) Err(project string) error {
	if r.OK() {
		return nil
	}
	return &models.ValidationError{Project: project, Findings: r.Errors()}
}

func (r *Report) errorf(format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{SeverityError, fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{SeverityWarning, fmt.Sprintf(format, args...)})
}

// Check runs every static consistency check over the build recipe and the
// topology. A nil spec skips the cross-document checks (topology-only
// validation).
func Check(spec *image.Spec, top *models.Topology) *Report {
	r := &Report{}

	checkProject(r, top)
	checkNetwork(r, top)
	checkEdge(r, top)
	checkCompute(r, top)
	checkScaling(r, top)
	checkSecrets(r, top)
	if spec != nil {
		checkCrossDocument(r, spec, top)
	}

	return r
}

func checkProject(r *Report, top *models.Topology) {
	if top.Project == "" {
		r.errorf("project name must not be empty")
	}
	if top.Region == "" {
		r.errorf("region must not be empty")
	}
}

func checkNetwork(r *Report, top *models.Topology) {
	vpcNet := parseCIDR(r, "vpc_cidr", top.Network.VPCCIDR)

	if len(top.Network.PublicSubnetCIDRs) < 2 {
		r.errorf("at least 2 public subnets are required (the load balancer spans two availability zones), got %d",
			len(top.Network.PublicSubnetCIDRs))
	}
	seen := map[string]bool{}
	for _, cidr := range top.Network.PublicSubnetCIDRs {
		subnet := parseCIDR(r, "subnet", cidr)
		if seen[cidr] {
			r.errorf("duplicate subnet CIDR %s", cidr)
		}
		seen[cidr] = true
		if vpcNet != nil && subnet != nil && !vpcNet.Contains(subnet.IP) {
			r.errorf("subnet %s is outside the VPC CIDR %s", cidr, top.Network.VPCCIDR)
		}
	}
}

func checkEdge(r *Report, top *models.Topology) {
	if top.Edge.HTTPPort != 80 {
		r.errorf("HTTP listener must be port 80 (it unconditionally redirects to 443), got %d", top.Edge.HTTPPort)
	}
	if top.Edge.HTTPSPort != 443 {
		r.errorf("HTTPS listener must be port 443, got %d", top.Edge.HTTPSPort)
	}
	if top.Edge.CertificateARN == "" {
		r.errorf("HTTPS listener requires a certificate ARN")
	} else if !strings.HasPrefix(top.Edge.CertificateARN, "arn:") {
		r.errorf("certificate_arn %q is not an ARN", top.Edge.CertificateARN)
	}

	hc := top.Edge.HealthCheck
	if !strings.HasPrefix(hc.Path, "/") {
		r.errorf("health check path %q must start with /", hc.Path)
	}
	if hc.IntervalSeconds <= 0 || hc.TimeoutSeconds <= 0 {
		r.errorf("health check interval and timeout must be positive")
	} else if hc.TimeoutSeconds >= hc.IntervalSeconds {
		r.errorf("health check timeout (%ds) must be shorter than the interval (%ds)",
			hc.TimeoutSeconds, hc.IntervalSeconds)
	}
	if hc.HealthyThreshold <= 0 || hc.UnhealthyThreshold <= 0 {
		r.errorf("health check thresholds must be positive")
	}
	if hc.Matcher == "" {
		r.warnf("health check matcher is empty; the target group will default to 200")
	}
}

// fargateMemoryRange gives the valid memory band (MiB) for a Fargate CPU
// allocation. Memory must also land on a 1024 MiB step above 1 vCPU.
var fargateMemoryRange = map[int][2]int{
	256:  {512, 2048},
	512:  {1024, 4096},
	1024: {2048, 8192},
	2048: {4096, 16384},
	4096: {8192, 30720},
}

func checkCompute(r *Report, top *models.Topology) {
	c := top.Compute

	if c.ContainerName == "" {
		r.errorf("container name must not be empty")
	}
	if c.ContainerPort <= 0 || c.ContainerPort > 65535 {
		r.errorf("container port %d is out of range", c.ContainerPort)
	}
	if c.DesiredCount < 0 {
		r.errorf("desired count must not be negative")
	}
	if c.HealthCheckGracePeriodSecs < 0 {
		r.errorf("health check grace period must not be negative")
	}

	band, ok := fargateMemoryRange[c.CPUUnits]
	if !ok {
		r.errorf("cpu_units %d is not a valid Fargate allocation (256, 512, 1024, 2048, 4096)", c.CPUUnits)
	} else if c.MemoryMiB < band[0] || c.MemoryMiB > band[1] {
		r.errorf("memory %d MiB is outside the valid band [%d, %d] for %d CPU units",
			c.MemoryMiB, band[0], band[1], c.CPUUnits)
	}

	if c.ImageURI == "" {
		r.warnf("no image URI declared yet; run build --push before deploy")
	}
}

func checkScaling(r *Report, top *models.Topology) {
	s := top.Scaling
	if s.MinCapacity < 0 || s.MaxCapacity < s.MinCapacity {
		r.errorf("scaling band [%d, %d] is invalid", s.MinCapacity, s.MaxCapacity)
		return
	}
	if top.Compute.DesiredCount < s.MinCapacity || top.Compute.DesiredCount > s.MaxCapacity {
		r.errorf("desired count %d must satisfy min_capacity <= desired_count <= max_capacity ([%d, %d])",
			top.Compute.DesiredCount, s.MinCapacity, s.MaxCapacity)
	}
	if s.TargetCPUPercent <= 0 || s.TargetCPUPercent > 100 {
		r.errorf("target CPU utilization %d%% must be in (0, 100]", s.TargetCPUPercent)
	}
	if s.ScaleInCooldownSecs < 0 || s.ScaleOutCooldownSecs < 0 {
		r.errorf("scaling cooldowns must not be negative")
	}
}

func checkSecrets(r *Report, top *models.Topology) {
	seenEnv := map[string]bool{}
	seenParam := map[string]bool{}
	for _, ref := range top.Compute.Secrets {
		if ref.Env == "" {
			r.errorf("secret reference with empty environment variable name")
			continue
		}
		if ref.Parameter == "" {
			r.errorf("secret %s has no parameter name (dangling reference)", ref.Env)
			continue
		}
		if !strings.HasPrefix(ref.Parameter, "/") {
			r.errorf("secret %s parameter %q must be a fully qualified parameter name", ref.Env, ref.Parameter)
		}
		if seenEnv[ref.Env] {
			r.errorf("duplicate secret environment variable %s", ref.Env)
		}
		if seenParam[ref.Parameter] {
			r.warnf("parameter %s is referenced by more than one environment variable", ref.Parameter)
		}
		seenEnv[ref.Env] = true
		seenParam[ref.Parameter] = true
	}

	for env := range top.Compute.Environment {
		if seenEnv[env] {
			r.errorf("environment variable %s is declared both as plain environment and as a secret", env)
		}
	}
}

func checkCrossDocument(r *Report, spec *image.Spec, top *models.Topology) {
	if spec.Port != top.Compute.ContainerPort {
		r.errorf("image exposes port %d but the topology declares container port %d; the target group and security group derive from the declared port",
			spec.Port, top.Compute.ContainerPort)
	}
	if spec.HealthCheck.Path != "" && spec.HealthCheck.Path != top.Edge.HealthCheck.Path {
		r.errorf("image health check path %s does not match the target group health check path %s",
			spec.HealthCheck.Path, top.Edge.HealthCheck.Path)
	}
	if len(spec.Command) == 0 {
		r.errorf("image spec declares no entry point")
	}
}

func parseCIDR(r *Report, field, cidr string) *net.IPNet {
	if cidr == "" {
		r.errorf("%s must not be empty", field)
		return nil
	}
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		r.errorf("%s %q is not a valid CIDR: %v", field, cidr, err)
		return nil
	}
	return network
}
