// Package image models the container build recipe and drives the Docker
// Engine to turn it into a pushed artifact.
package image

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Spec is the typed build recipe: everything needed to produce the
// immutable service image. Rendering it yields a Dockerfile; parsing a
// Dockerfile recovers the fields that matter for consistency checks.
type Spec struct {
	BaseImage        string      `json:"base_image"`
	WorkDir          string      `json:"workdir"`
	SystemPackages   []string    `json:"system_packages"`
	RequirementsFile string      `json:"requirements_file"`
	Port             int         `json:"port"`
	HealthCheck      HealthProbe `json:"health_check"`
	Command          []string    `json:"command"`
}

// HealthProbe is the in-image liveness probe. The orchestrator uses the
// declared interval/timeout/retries; a failed probe past the retry budget
// marks the container unhealthy.
type HealthProbe struct {
	Path               string `json:"path"`
	IntervalSeconds    int    `json:"interval_seconds"`
	TimeoutSeconds     int    `json:"timeout_seconds"`
	Retries            int    `json:"retries"`
	StartPeriodSeconds int    `json:"start_period_seconds"`
}

// DefaultSpec returns the agentic-api build recipe: a slim Python runtime
// serving `main:app` on port 8000 with a curl-based liveness probe.
func DefaultSpec() *Spec {
	return &Spec{
		BaseImage:        "python:3.12-slim",
		WorkDir:          "/app",
		SystemPackages:   []string{"build-essential", "curl"},
		RequirementsFile: "requirements.txt",
		Port:             8000,
		HealthCheck: HealthProbe{
			Path:               "/health",
			IntervalSeconds:    30,
			TimeoutSeconds:     5,
			Retries:            3,
			StartPeriodSeconds: 10,
		},
		Command: []string{"uvicorn", "main:app", "--host", "0.0.0.0", "--port", "8000"},
	}
}

// AlignTo retargets the recipe at the declared container port and health
// path so a generated Dockerfile always agrees with the topology it is
// deployed with. Parsed (hand-written) recipes are never aligned; they are
// cross-checked instead.
func (s *Spec) AlignTo(containerPort int, healthPath string) {
	if containerPort > 0 && containerPort != s.Port {
		for i, arg := range s.Command {
			if arg == "--port" && i+1 < len(s.Command) {
				s.Command[i+1] = strconv.Itoa(containerPort)
			}
		}
		s.Port = containerPort
	}
	if healthPath != "" {
		s.HealthCheck.Path = healthPath
	}
}

// Render produces the canonical Dockerfile for the recipe.
func (s *Spec) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "FROM %s\n\n", s.BaseImage)
	fmt.Fprintf(&b, "WORKDIR %s\n\n", s.WorkDir)

	if len(s.SystemPackages) > 0 {
		fmt.Fprintf(&b, "RUN apt-get update && apt-get install -y --no-install-recommends %s \\\n",
			strings.Join(s.SystemPackages, " "))
		b.WriteString("    && rm -rf /var/lib/apt/lists/*\n\n")
	}

	fmt.Fprintf(&b, "COPY %s .\n", s.RequirementsFile)
	fmt.Fprintf(&b, "RUN pip install --no-cache-dir -r %s\n\n", s.RequirementsFile)

	b.WriteString("COPY . .\n\n")
	fmt.Fprintf(&b, "EXPOSE %d\n\n", s.Port)

	hc := s.HealthCheck
	fmt.Fprintf(&b, "HEALTHCHECK --interval=%ds --timeout=%ds --start-period=%ds --retries=%d \\\n",
		hc.IntervalSeconds, hc.TimeoutSeconds, hc.StartPeriodSeconds, hc.Retries)
	fmt.Fprintf(&b, "    CMD curl -f http://localhost:%d%s || exit 1\n\n", s.Port, hc.Path)

	fmt.Fprintf(&b, "CMD %s\n", jsonStringArray(s.Command))

	return b.String()
}

var (
	exposeRe      = regexp.MustCompile(`(?m)^\s*EXPOSE\s+(\d+)`)
	healthPathRe  = regexp.MustCompile(`curl\s+-f\s+http://localhost:\d+(/[^\s|"']*)`)
	healthFlagRe  = regexp.MustCompile(`--(interval|timeout|start-period|retries)=(\d+)s?`)
	cmdExecFormRe = regexp.MustCompile(`(?m)^\s*CMD\s+\[(.+)\]`)
	fromRe        = regexp.MustCompile(`(?m)^\s*FROM\s+(\S+)`)
)

// Parse recovers a Spec from Dockerfile text. Only the fields the
// consistency checks care about are extracted; unrecognized instructions
// are ignored.
func Parse(content string) (*Spec, error) {
	s := &Spec{}

	if m := fromRe.FindStringSubmatch(content); m != nil {
		s.BaseImage = m[1]
	} else {
		return nil, fmt.Errorf("no FROM instruction found")
	}

	if m := exposeRe.FindStringSubmatch(content); m != nil {
		port, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid EXPOSE port %q: %w", m[1], err)
		}
		s.Port = port
	}

	if m := healthPathRe.FindStringSubmatch(content); m != nil {
		s.HealthCheck.Path = m[1]
	}
	for _, m := range healthFlagRe.FindAllStringSubmatch(content, -1) {
		v, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		switch m[1] {
		case "interval":
			s.HealthCheck.IntervalSeconds = v
		case "timeout":
			s.HealthCheck.TimeoutSeconds = v
		case "start-period":
			s.HealthCheck.StartPeriodSeconds = v
		case "retries":
			s.HealthCheck.Retries = v
		}
	}

	if m := cmdExecFormRe.FindStringSubmatch(content); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(part)
			part = strings.Trim(part, `"`)
			if part != "" {
				s.Command = append(s.Command, part)
			}
		}
	}

	return s, nil
}

func jsonStringArray(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, fmt.Sprintf("%q", it))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
