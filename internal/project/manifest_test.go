package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadFullManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[scan]
marker = "//!"
include = ["*.cpp"]

[switches]
READLINE = true
AUDIO = false
`)

	m, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if m.Root != dir {
		t.Errorf("Root = %q, want %q", m.Root, dir)
	}
	if m.Marker() != "//!" {
		t.Errorf("Marker = %q", m.Marker())
	}
	if inc := m.Include(); len(inc) != 1 || inc[0] != "*.cpp" {
		t.Errorf("Include = %v", inc)
	}
	ov := m.Overrides()
	if v, ok := ov["READLINE"]; !ok || !v {
		t.Errorf("Overrides[READLINE] = %v, %v", v, ok)
	}
	if v, ok := ov["AUDIO"]; !ok || v {
		t.Errorf("Overrides[AUDIO] = %v, %v", v, ok)
	}
}

func TestLoadEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "")

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if m.Marker() != "" {
		t.Errorf("Marker = %q, want scanner default", m.Marker())
	}
	if len(m.Include()) != len(DefaultInclude()) {
		t.Errorf("Include = %v, want defaults", m.Include())
	}
	if len(m.Overrides()) != 0 {
		t.Errorf("Overrides = %v, want empty", m.Overrides())
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[switches]\nDEBUG = true\n")
	nested := filepath.Join(root, "src", "examples")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %v, %v", ok, err)
	}
	if path != filepath.Join(root, ManifestName) {
		t.Errorf("path = %q", path)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("missing manifest must not be an error, got %v", err)
	}
	if ok || m != nil {
		t.Errorf("Load = %v, %v, want nil, false", m, ok)
	}
}

func TestLoadRejectsBlankMarker(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[scan]\nmarker = \"  \"\n")

	if _, _, err := Load(dir); err == nil {
		t.Error("blank marker accepted")
	}
}

func TestNilManifestDefaults(t *testing.T) {
	var m *Manifest
	if m.Marker() != "" {
		t.Error("nil manifest marker not empty")
	}
	if len(m.Include()) == 0 {
		t.Error("nil manifest include empty")
	}
	if m.Overrides() == nil {
		t.Error("nil manifest overrides nil")
	}
}
