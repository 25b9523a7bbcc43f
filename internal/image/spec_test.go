package image

import (
	"strings"
	"testing"
)

func TestDefaultSpecRender(t *testing.T) {
	df := DefaultSpec().Render()

	for _, want := range []string{
		"FROM python:3.12-slim",
		"WORKDIR /app",
		"EXPOSE 8000",
		"HEALTHCHECK --interval=30s --timeout=5s --start-period=10s --retries=3",
		"curl -f http://localhost:8000/health",
		`CMD ["uvicorn", "main:app", "--host", "0.0.0.0", "--port", "8000"]`,
		"pip install --no-cache-dir -r requirements.txt",
	} {
		if !strings.Contains(df, want) {
			t.Errorf("rendered Dockerfile missing %q\n%s", want, df)
		}
	}
}

func TestAlignToRetargetsPortAndHealthPath(t *testing.T) {
	s := DefaultSpec()
	s.AlignTo(9090, "/healthz")

	if s.Port != 9090 {
		t.Errorf("port: got %d, want 9090", s.Port)
	}
	if s.HealthCheck.Path != "/healthz" {
		t.Errorf("health path: got %s, want /healthz", s.HealthCheck.Path)
	}

	df := s.Render()
	for _, want := range []string{
		"EXPOSE 9090",
		"curl -f http://localhost:9090/healthz",
		`"--port", "9090"`,
	} {
		if !strings.Contains(df, want) {
			t.Errorf("aligned Dockerfile missing %q\n%s", want, df)
		}
	}
	if strings.Contains(df, "8000") {
		t.Errorf("aligned Dockerfile still references the original port\n%s", df)
	}
}

func TestAlignToZeroValuesLeaveSpecAlone(t *testing.T) {
	s := DefaultSpec()
	s.AlignTo(0, "")

	if s.Port != 8000 {
		t.Errorf("port: got %d, want 8000", s.Port)
	}
	if s.HealthCheck.Path != "/health" {
		t.Errorf("health path: got %s, want /health", s.HealthCheck.Path)
	}
}

func TestParseRecoversRenderedSpec(t *testing.T) {
	orig := DefaultSpec()
	parsed, err := Parse(orig.Render())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.BaseImage != orig.BaseImage {
		t.Errorf("base image: got %s, want %s", parsed.BaseImage, orig.BaseImage)
	}
	if parsed.Port != orig.Port {
		t.Errorf("port: got %d, want %d", parsed.Port, orig.Port)
	}
	if parsed.HealthCheck.Path != orig.HealthCheck.Path {
		t.Errorf("health path: got %s, want %s", parsed.HealthCheck.Path, orig.HealthCheck.Path)
	}
	if parsed.HealthCheck.Retries != orig.HealthCheck.Retries {
		t.Errorf("retries: got %d, want %d", parsed.HealthCheck.Retries, orig.HealthCheck.Retries)
	}
	if parsed.HealthCheck.IntervalSeconds != orig.HealthCheck.IntervalSeconds {
		t.Errorf("interval: got %d, want %d", parsed.HealthCheck.IntervalSeconds, orig.HealthCheck.IntervalSeconds)
	}
	if len(parsed.Command) != len(orig.Command) {
		t.Fatalf("command length: got %v, want %v", parsed.Command, orig.Command)
	}
	for i := range orig.Command {
		if parsed.Command[i] != orig.Command[i] {
			t.Errorf("command[%d]: got %s, want %s", i, parsed.Command[i], orig.Command[i])
		}
	}
}

func TestParseHandEditedDockerfile(t *testing.T) {
	content := `FROM python:3.11
WORKDIR /srv
COPY . .
EXPOSE 9090
HEALTHCHECK --interval=15s --timeout=3s --retries=5 CMD curl -f http://localhost:9090/healthz || exit 1
CMD ["gunicorn", "main:app"]
`
	s, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Port != 9090 {
		t.Errorf("port: got %d, want 9090", s.Port)
	}
	if s.HealthCheck.Path != "/healthz" {
		t.Errorf("health path: got %s, want /healthz", s.HealthCheck.Path)
	}
	if s.HealthCheck.Retries != 5 {
		t.Errorf("retries: got %d, want 5", s.HealthCheck.Retries)
	}
	if len(s.Command) != 2 || s.Command[0] != "gunicorn" {
		t.Errorf("unexpected command: %v", s.Command)
	}
}

func TestParseRejectsMissingFrom(t *testing.T) {
	if _, err := Parse("EXPOSE 8000\n"); err == nil {
		t.Error("expected error for Dockerfile without FROM")
	}
}
