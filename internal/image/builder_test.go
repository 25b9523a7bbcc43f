package image

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeContextFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestTarBuildContext(t *testing.T) {
	dir := t.TempDir()
	writeContextFile(t, dir, "main.py", "app = None\n")
	writeContextFile(t, dir, "requirements.txt", "fastapi\n")
	writeContextFile(t, dir, "Dockerfile", "FROM scratch\n")
	writeContextFile(t, dir, ".git/config", "[core]\n")
	writeContextFile(t, dir, "app/__pycache__/x.pyc", "junk")

	rendered := DefaultSpec().Render()
	rd, err := tarBuildContext(dir, rendered)
	if err != nil {
		t.Fatalf("tarBuildContext: %v", err)
	}

	entries := map[string]string{}
	tr := tar.NewReader(rd)
	first := ""
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read tar: %v", err)
		}
		if first == "" {
			first = hdr.Name
		}
		data, _ := io.ReadAll(tr)
		entries[hdr.Name] = string(data)
	}

	if first != "Dockerfile" {
		t.Errorf("expected Dockerfile as first entry, got %s", first)
	}
	if entries["Dockerfile"] != rendered {
		t.Error("existing Dockerfile was not replaced by the rendered recipe")
	}
	if _, ok := entries["main.py"]; !ok {
		t.Error("main.py missing from build context")
	}
	if _, ok := entries[".git/config"]; ok {
		t.Error(".git contents should be excluded from build context")
	}
	for name := range entries {
		if filepath.Ext(name) == ".pyc" {
			t.Errorf("bytecode file %s should be excluded", name)
		}
	}
}
