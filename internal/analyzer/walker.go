package analyzer

import (
	"fmt"

	"github.com/genwalk/genwalk/internal/ast"
	"github.com/genwalk/genwalk/internal/config"
	"github.com/genwalk/genwalk/internal/diagnostics"
	"github.com/genwalk/genwalk/internal/symbols"
	"github.com/genwalk/genwalk/internal/token"
	"github.com/genwalk/genwalk/internal/typesystem"
)

// Walker drives the checker over the sites of one analysis unit in source
// order. Every failure produces exactly one diagnostic and the walk always
// continues to the next site; type errors are never fatal.
type Walker struct {
	env       *symbols.TypeEnv
	binder    *Binder
	collector *diagnostics.Collector
}

func NewWalker(env *symbols.TypeEnv, collector *diagnostics.Collector) *Walker {
	if env == nil || collector == nil {
		panic("analyzer: walker requires an environment and a collector")
	}
	return &Walker{env: env, binder: NewBinder(), collector: collector}
}

// Binder exposes the walker's intern cache, mainly for tests that assert
// canonical specialization identity.
func (w *Walker) Binder() *Binder { return w.binder }

// Walk visits the sites in order.
func (w *Walker) Walk(sites []ast.Node) {
	for _, site := range sites {
		switch s := site.(type) {
		case *ast.InstantiationSite:
			w.checkInstantiation(s)
		case *ast.CallSite:
			w.checkCall(s)
		case *ast.AssignSite:
			w.checkAssign(s)
		default:
			panic(fmt.Sprintf("analyzer: unknown site node %T", site))
		}
	}
}

func (w *Walker) checkInstantiation(s *ast.InstantiationSite) {
	w.resolveType(s.Type, s.Pos)
}

func (w *Walker) checkCall(s *ast.CallSite) {
	arg := w.resolveType(s.Arg, s.Pos)
	param := w.resolveType(s.Param, s.Pos)
	if arg == nil || param == nil {
		return // resolution already reported
	}
	if !IsAssignable(arg, param) {
		w.collector.Emit(diagnostics.NewError(diagnostics.ErrG003, s.Pos,
			"Argument of type '%s' cannot be assigned to parameter of type '%s'", arg, param))
	}
}

func (w *Walker) checkAssign(s *ast.AssignSite) {
	value := w.resolveType(s.Value, s.Pos)
	target := w.resolveType(s.Target, s.Pos)
	if value == nil || target == nil {
		return
	}
	if !IsAssignable(value, target) {
		w.collector.Emit(diagnostics.NewError(diagnostics.ErrG003, s.Pos,
			"Expression of type '%s' cannot be assigned to declared type '%s'", value, target))
	}
}

// resolveType turns a site's type expression into a type, binding
// specializations as needed. A failed resolution emits its diagnostic at
// the site's position and returns nil; callers skip further checks for the
// site. Names are validated when the environment is built, so an unknown
// name here is a host contract violation, not a user error.
func (w *Walker) resolveType(expr *ast.TypeExpr, pos token.Position) typesystem.Type {
	if expr == nil {
		panic("analyzer: resolve of nil type expression")
	}

	if expr.Name == config.ListTypeName {
		if len(expr.Args) != 1 {
			w.collector.Emit(diagnostics.NewError(diagnostics.ErrG001, pos,
				"Generic type '%s' expects 1 type argument(s), got %d", expr.Name, len(expr.Args)))
			return nil
		}
		elem := w.resolveType(expr.Args[0], pos)
		if elem == nil {
			return nil
		}
		return &typesystem.TList{Elem: elem}
	}

	if con, ok := w.env.LookupClass(expr.Name); ok {
		if len(expr.Args) > 0 {
			w.collector.Emit(diagnostics.NewError(diagnostics.ErrG001, pos,
				"Type '%s' expects no type arguments, got %d", expr.Name, len(expr.Args)))
			return nil
		}
		return con
	}

	decl, ok := w.env.LookupGeneric(expr.Name)
	if !ok {
		panic(fmt.Sprintf("analyzer: unresolved type name '%s'", expr.Name))
	}

	// A bare reference to a generic is ill-formed: it never reaches the
	// assignability checker, the binder rejects it as an arity mismatch.
	args := make([]typesystem.Type, len(expr.Args))
	for i, a := range expr.Args {
		args[i] = w.resolveType(a, pos)
		if args[i] == nil {
			return nil
		}
	}
	bound, bindErr := w.binder.Bind(decl, args)
	if bindErr != nil {
		code := diagnostics.ErrG002
		if bindErr.Kind == diagnostics.ArityMismatch {
			code = diagnostics.ErrG001
		}
		w.collector.Emit(diagnostics.NewError(code, pos, "%s", bindErr.Message()))
		return nil
	}
	return bound
}
