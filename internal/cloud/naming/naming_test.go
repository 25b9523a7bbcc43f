package naming

import (
	"strings"
	"testing"
)

func TestGenerateAndExtract(t *testing.T) {
	n := NewDefaultNaming()
	storage := n.GenerateStorageName("my-project")

	if !strings.HasPrefix(storage, "agentic-api-my-project-") {
		t.Errorf("unexpected storage name %s", storage)
	}
	if got := n.ExtractProjectID(storage); got != "my-project" {
		t.Errorf("ExtractProjectID(%s) = %s, want my-project", storage, got)
	}
}

func TestExtractWithoutPrefix(t *testing.T) {
	n := NewDefaultNaming()
	if got := n.ExtractProjectID("some-other-bucket"); got != "some-other-bucket" {
		t.Errorf("foreign names should pass through, got %s", got)
	}
}

func TestValidateProjectID(t *testing.T) {
	n := NewDefaultNaming()

	valid := []string{"demo", "my-project", "a1", "proj-2024"}
	for _, id := range valid {
		if err := n.ValidateProjectID(id); err != nil {
			t.Errorf("ValidateProjectID(%s) unexpected error: %v", id, err)
		}
	}

	invalid := []string{"", "-start", "end-", "a--b", "Has_Upper!", strings.Repeat("x", 41)}
	for _, id := range invalid {
		if err := n.ValidateProjectID(id); err == nil {
			t.Errorf("ValidateProjectID(%q) should fail", id)
		}
	}
}

func TestLockTableName(t *testing.T) {
	n := NewDefaultNaming()
	if got := n.LockTableName("agentic-api-demo-abc12345"); got != "agentic-api-demo-abc12345-locks" {
		t.Errorf("unexpected lock table name %s", got)
	}
}

func TestKeyHelpers(t *testing.T) {
	n := NewDefaultNaming()
	if got := n.TopologyCurrentKey("demo"); got != "topology/demo/current.json" {
		t.Errorf("current key: %s", got)
	}
	if got := n.TopologyVersionKey("demo", "v17"); got != "topology/demo/versions/v17.json" {
		t.Errorf("version key: %s", got)
	}
	if got := n.DeploymentMetadataKey(); got != "deployment-metadata.json" {
		t.Errorf("deployment key: %s", got)
	}
}

func TestNormalizeProjectID(t *testing.T) {
	cases := map[string]string{
		"My Project":  "my-project",
		"api__v2":     "api-v2",
		"-demo-":      "demo",
		"Agent--Api!": "agent-api",
	}
	for in, want := range cases {
		if got := NormalizeProjectID(in); got != want {
			t.Errorf("NormalizeProjectID(%q) = %q, want %q", in, got, want)
		}
	}
}
