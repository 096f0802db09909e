package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genwalk/genwalk/internal/diagnostics"
)

const goodEnv = `
classes:
  - name: A
  - name: B
    bases: [A]
  - name: C
    bases: [A]
typevars:
  - name: _T1
    constraints: [A, B]
generics:
  - name: Moo
    params:
      - var: _T1
sites:
  - call: m1
    arg: Moo[B]
    param: Moo[A]
    at: specialization1.py:33:3
  - call: m2
    arg: Moo[B]
    param: Moo[B]
    at: specialization1.py:39:3
`

const cleanEnv = `
classes:
  - name: A
sites:
  - instantiate: A
`

func writeEnv(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runPipeline(ctx *PipelineContext) *PipelineContext {
	return New(&LoadProcessor{}, &CheckProcessor{}).Run(ctx)
}

func TestRunCollectsDiagnostics(t *testing.T) {
	path := writeEnv(t, "env.yaml", goodEnv)
	ctx := runPipeline(NewContext(path))

	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected load errors: %v", ctx.Errors)
	}
	if len(ctx.Units) != 1 {
		t.Fatalf("units = %d, want 1", len(ctx.Units))
	}
	diags := ctx.Collector.Drain()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if diags[0].Kind != diagnostics.AssignabilityFailure {
		t.Errorf("kind = %s", diags[0].Kind)
	}
	if diags[0].Pos.File != "specialization1.py" || diags[0].Pos.Line != 33 {
		t.Errorf("position = %s", diags[0].Pos)
	}
}

func TestRunHasIdentity(t *testing.T) {
	ctx := NewContext()
	if ctx.RunID == "" {
		t.Error("every run must carry an ID")
	}
	if NewContext().RunID == ctx.RunID {
		t.Error("run IDs must be unique per context")
	}
}

func TestBadUnitDoesNotHideOthers(t *testing.T) {
	bad := writeEnv(t, "bad.yaml", "classes:\n  - bases: [A]\n")
	good := writeEnv(t, "good.yaml", goodEnv)
	ctx := runPipeline(NewContext(bad, good))

	if len(ctx.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly the bad unit's", ctx.Errors)
	}
	if !strings.Contains(ctx.Errors[0].Error(), "name is required") {
		t.Errorf("error = %v", ctx.Errors[0])
	}
	if len(ctx.Units) != 1 {
		t.Fatalf("units = %d, want the good one", len(ctx.Units))
	}
	if ctx.Collector.Len() != 1 {
		t.Errorf("the good unit's diagnostics must still be collected, got %d", ctx.Collector.Len())
	}
}

func TestMissingFileIsAnError(t *testing.T) {
	ctx := runPipeline(NewContext(filepath.Join(t.TempDir(), "absent.yaml")))
	if len(ctx.Errors) != 1 {
		t.Fatalf("errors = %v", ctx.Errors)
	}
	if ctx.Collector.Len() != 0 {
		t.Error("a missing file must not produce type diagnostics")
	}
}

func TestCleanRun(t *testing.T) {
	path := writeEnv(t, "clean.yaml", cleanEnv)
	ctx := runPipeline(NewContext(path))
	if len(ctx.Errors) != 0 || ctx.Collector.Len() != 0 {
		t.Errorf("clean run reported errors=%v diags=%d", ctx.Errors, ctx.Collector.Len())
	}
}
