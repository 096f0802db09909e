package analyzer

import (
	"strings"
	"testing"

	"github.com/genwalk/genwalk/internal/diagnostics"
	"github.com/genwalk/genwalk/internal/symbols"
	"github.com/genwalk/genwalk/internal/typesystem"
)

// sampleEnv builds the hierarchy the checker is exercised against
// throughout this package: A, B(A), C(A) and Moo[_T1] with _T1
// constrained to {A, B}.
type sampleEnv struct {
	env     *symbols.TypeEnv
	a, b, c *typesystem.TCon
	moo     *typesystem.GenericDecl
	t1      *typesystem.TVar
}

func newSampleEnv(t *testing.T) *sampleEnv {
	t.Helper()
	env := symbols.NewTypeEnv()
	a, err := env.DefineClass("A", nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := env.DefineClass("B", []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	c, err := env.DefineClass("C", []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	t1 := &typesystem.TVar{Name: "_T1", Constraints: []*typesystem.TCon{a, b}}
	moo, err := env.DefineGeneric("Moo", []typesystem.TypeParam{{Var: t1}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return &sampleEnv{env: env, a: a, b: b, c: c, moo: moo, t1: t1}
}

// expectDiag asserts the diagnostic at position i has the given kind and a
// message containing substr.
func expectDiag(t *testing.T, diags []*diagnostics.DiagnosticError, i int, kind diagnostics.Kind, substr string) {
	t.Helper()
	if i >= len(diags) {
		t.Fatalf("expected diagnostic #%d, only %d collected", i, len(diags))
	}
	d := diags[i]
	if d.Kind != kind {
		t.Errorf("diagnostic #%d kind = %s, want %s (%s)", i, d.Kind, kind, d.Message)
	}
	if !strings.Contains(d.Message, substr) {
		t.Errorf("diagnostic #%d message = %q, want it to contain %q", i, d.Message, substr)
	}
}

// expectNoDiags asserts the collector is empty.
func expectNoDiags(t *testing.T, c *diagnostics.Collector) {
	t.Helper()
	if c.Len() > 0 {
		var msgs []string
		for _, d := range c.Drain() {
			msgs = append(msgs, d.Error())
		}
		t.Fatalf("expected no diagnostics, got:\n%s", strings.Join(msgs, "\n"))
	}
}
