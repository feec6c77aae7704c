package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"srcdep/internal/diag"
	"srcdep/internal/plan"
)

const probeSrc = `#include <stdio.h>
/// switch OPENGL 1
/// uselibrary m
/// {OPENGL} uselibrary GL
/// {OPENGL} usepackage glew
int main(void) { return 0; }
`

const promptSrc = `/// switch READLINE 0
/// {READLINE} uselibrary readline
/// uselibrary curses
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestPlanScansTree(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"probe.c":          probeSrc,
		"ui/prompt.c":      promptSrc,
		"notes/readme.txt": "/// uselibrary ignored\n",
	})

	res, err := Plan(context.Background(), dir, Options{
		Include:        []string{"*.c"},
		MaxDiagnostics: 64,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if res.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", res.Bag.Items())
	}
	if len(res.Plan.Files) != 2 {
		t.Fatalf("plan covers %d files, want 2", len(res.Plan.Files))
	}

	// Directory walk is sorted, probe.c comes before ui/prompt.c.
	probe := res.Plan.Files[0]
	wantProbe := []struct {
		kind plan.RequirementKind
		name string
	}{
		{plan.ReqLibrary, "m"},
		{plan.ReqLibrary, "GL"},
		{plan.ReqPackage, "glew"},
	}
	if len(probe.Requirements) != len(wantProbe) {
		t.Fatalf("probe requirements = %v", probe.Requirements)
	}
	for i, w := range wantProbe {
		got := probe.Requirements[i]
		if got.Kind != w.kind || got.Name != w.name {
			t.Errorf("probe requirement %d = %v %q, want %v %q",
				i, got.Kind, got.Name, w.kind, w.name)
		}
	}

	prompt := res.Plan.Files[1]
	if len(prompt.Requirements) != 1 || prompt.Requirements[0].Name != "curses" {
		t.Errorf("prompt requirements = %v, want only curses", prompt.Requirements)
	}
}

func TestPlanOverrideFlipsGuard(t *testing.T) {
	dir := writeTree(t, map[string]string{"prompt.c": promptSrc})

	res, err := Plan(context.Background(), dir, Options{
		Include:        []string{"*.c"},
		Overrides:      map[string]bool{"READLINE": true},
		MaxDiagnostics: 64,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	reqs := res.Plan.Files[0].Requirements
	if len(reqs) != 2 || reqs[0].Name != "readline" || reqs[1].Name != "curses" {
		t.Errorf("requirements = %v, want readline then curses", reqs)
	}
}

func TestPlanRejectsUnknownOverride(t *testing.T) {
	dir := writeTree(t, map[string]string{"probe.c": probeSrc})

	res, err := Plan(context.Background(), dir, Options{
		Include:        []string{"*.c"},
		Overrides:      map[string]bool{"AUDIO": true},
		MaxDiagnostics: 64,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !res.HasFatal() {
		t.Fatal("undeclared override not reported as fatal")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SwUnknownSwitch {
			found = true
		}
	}
	if !found {
		t.Errorf("no SwUnknownSwitch in %v", res.Bag.Items())
	}
	// Clean files still produce their plans.
	if len(res.Plan.Files) != 1 {
		t.Errorf("plan covers %d files, want 1", len(res.Plan.Files))
	}
}

func TestPlanEmptyDir(t *testing.T) {
	res, err := Plan(context.Background(), t.TempDir(), Options{
		Include:        []string{"*.c"},
		MaxDiagnostics: 64,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(res.Plan.Files) != 0 || res.Bag.Len() != 0 {
		t.Errorf("empty dir produced plan %v, bag %v", res.Plan.Files, res.Bag.Items())
	}
}

func TestPlanSingleFileTarget(t *testing.T) {
	dir := writeTree(t, map[string]string{"probe.c": probeSrc})

	res, err := Plan(context.Background(), filepath.Join(dir, "probe.c"), Options{
		MaxDiagnostics: 64,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(res.Plan.Files) != 1 {
		t.Fatalf("plan covers %d files, want 1", len(res.Plan.Files))
	}
}

func TestPlanCollectsDirectiveErrors(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"bad.c": "/// frobnicate widgets\n/// uselibrary m\n",
	})

	res, err := Plan(context.Background(), dir, Options{
		Include:        []string{"*.c"},
		MaxDiagnostics: 64,
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if res.HasFatal() {
		t.Error("per-line directive error treated as fatal")
	}
	if !res.Bag.HasErrors() {
		t.Error("unknown keyword not reported")
	}
	// The bad line is skipped but the file still yields its plan.
	if len(res.Plan.Files) != 1 || len(res.Plan.Files[0].Requirements) != 1 {
		t.Errorf("plan = %v", res.Plan.Files)
	}
}
