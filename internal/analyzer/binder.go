package analyzer

import (
	"fmt"
	"strings"

	"github.com/genwalk/genwalk/internal/diagnostics"
	"github.com/genwalk/genwalk/internal/typesystem"
)

// BindingError is a failed attempt to specialize a generic declaration.
// Like constraint violations, these are per-site results: the walk reports
// them and moves on.
type BindingError struct {
	Kind       diagnostics.Kind // ArityMismatch or ConstraintFailure
	Decl       *typesystem.GenericDecl
	Expected   int              // ArityMismatch: declared parameter count
	Got        int              // ArityMismatch: supplied argument count
	ParamIndex int              // ConstraintFailure: failing position
	ParamName  string           // ConstraintFailure: type variable name
	Offender   typesystem.Type  // ConstraintFailure: rejected argument
}

func (e *BindingError) Message() string {
	if e.Kind == diagnostics.ArityMismatch {
		return fmt.Sprintf("Generic type '%s' expects %d type argument(s), got %d",
			e.Decl.Name(), e.Expected, e.Got)
	}
	return fmt.Sprintf("Type argument '%s' cannot be assigned to type variable '%s'",
		e.Offender, e.ParamName)
}

// Binder builds specializations and interns them by structural identity, so
// two occurrences of Moo[A] anywhere in the run share one canonical value.
// The cache is append-only and written by a single walker.
type Binder struct {
	cache map[string]*typesystem.TApp
}

func NewBinder() *Binder {
	return &Binder{cache: make(map[string]*typesystem.TApp)}
}

// Bind validates the arguments against the declaration's parameters and
// returns the canonical specialization. It is referentially transparent
// beyond interning: same inputs, same (identical) output. A specialization
// is only ever constructed when every argument passed its constraint check,
// so downstream consumers never see an ill-formed TApp.
func (b *Binder) Bind(decl *typesystem.GenericDecl, args []typesystem.Type) (*typesystem.TApp, *BindingError) {
	if decl == nil {
		panic("analyzer: bind with nil generic declaration")
	}
	if len(args) != len(decl.Params) {
		return nil, &BindingError{
			Kind:     diagnostics.ArityMismatch,
			Decl:     decl,
			Expected: len(decl.Params),
			Got:      len(args),
		}
	}
	for i, p := range decl.Params {
		if res := CheckConstraint(p.Var, args[i]); !res.Ok() {
			return nil, &BindingError{
				Kind:       diagnostics.ConstraintFailure,
				Decl:       decl,
				ParamIndex: i,
				ParamName:  p.Var.Name,
				Offender:   res.Offender,
			}
		}
	}
	key := internKey(decl, args)
	if cached, ok := b.cache[key]; ok {
		return cached, nil
	}
	bound := &typesystem.TApp{Decl: decl, Args: append([]typesystem.Type(nil), args...)}
	b.cache[key] = bound
	return bound, nil
}

// internKey is content-addressed: declaration name plus rendered arguments.
// Declared names are unique within an environment, so the rendering is
// injective.
func internKey(decl *typesystem.GenericDecl, args []typesystem.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return decl.Name() + "[" + strings.Join(parts, ",") + "]"
}
