// Package envfile reads the YAML environment files the checker runs on.
//
// An environment file is the serialized form of the collaborator boundary:
// the declarations a host analyzer's symbol-table pass would provide, plus
// the generic-instantiation, call and assignment sites its tree walk would
// feed to the checker.
package envfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/genwalk/genwalk/internal/ast"
	"github.com/genwalk/genwalk/internal/config"
	"github.com/genwalk/genwalk/internal/symbols"
	"github.com/genwalk/genwalk/internal/token"
	"github.com/genwalk/genwalk/internal/typesystem"
)

// File is the top-level environment file structure.
type File struct {
	// Module is an optional label for the analysis unit.
	Module string `yaml:"module,omitempty"`

	// Classes declares nominal types, in order. Bases must be declared
	// earlier in the list; the universal root 'object' is implicit.
	Classes []Class `yaml:"classes"`

	// TypeVars declares constrained type variables referenced by generics.
	TypeVars []TypeVar `yaml:"typevars"`

	// Generics declares parameterized classes.
	Generics []Generic `yaml:"generics"`

	// Sites lists the check sites in source traversal order.
	Sites []Site `yaml:"sites"`

	path string
}

// Class declares a nominal type and its direct bases.
type Class struct {
	Name  string   `yaml:"name"`
	Bases []string `yaml:"bases,omitempty"`
}

// TypeVar declares a type variable with its enumerated constraint list.
type TypeVar struct {
	Name        string   `yaml:"name"`
	Constraints []string `yaml:"constraints"`
}

// Generic declares a parameterized class. Params reference typevars by
// name; each generic gets its own copies, parameters are never shared
// between declarations.
type Generic struct {
	Name   string   `yaml:"name"`
	Bases  []string `yaml:"bases,omitempty"`
	Params []Param  `yaml:"params"`
}

// Param is one type parameter slot of a generic declaration.
type Param struct {
	Var      string `yaml:"var"`
	Variance string `yaml:"variance,omitempty"` // invariant (default), covariant, contravariant
}

// Site is one check site. Exactly one of the three shapes must be set:
//
//	- instantiate: Moo[A]
//	- call: m1, arg: Moo[B], param: Moo[A]
//	- value: Moo[A], target: Moo[B]
type Site struct {
	Instantiate string `yaml:"instantiate,omitempty"`
	Call        string `yaml:"call,omitempty"`
	Arg         string `yaml:"arg,omitempty"`
	Param       string `yaml:"param,omitempty"`
	Value       string `yaml:"value,omitempty"`
	Target      string `yaml:"target,omitempty"`
	At          string `yaml:"at,omitempty"` // "file:line:col" source position
}

// Load reads and parses an environment file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading environment %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses environment file content from bytes. The path argument is
// used for error messages and default site positions.
func Parse(data []byte, path string) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.path = path
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// validate checks the file for structural errors before any types are
// built. Semantic errors (unknown names in sites, bad base references)
// surface later, in Build.
func (f *File) validate() error {
	seen := map[string]bool{config.RootTypeName: true, config.ListTypeName: true}
	for i, c := range f.Classes {
		if c.Name == "" {
			return fmt.Errorf("%s: classes[%d]: name is required", f.path, i)
		}
		if !isValidName(c.Name) {
			return fmt.Errorf("%s: classes[%d]: invalid type name '%s'", f.path, i, c.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s: classes[%d]: duplicate type name '%s'", f.path, i, c.Name)
		}
		seen[c.Name] = true
	}
	tvars := map[string]bool{}
	for i, tv := range f.TypeVars {
		if tv.Name == "" {
			return fmt.Errorf("%s: typevars[%d]: name is required", f.path, i)
		}
		if !isValidName(tv.Name) {
			return fmt.Errorf("%s: typevars[%d]: invalid type variable name '%s'", f.path, i, tv.Name)
		}
		if tvars[tv.Name] {
			return fmt.Errorf("%s: typevars[%d]: duplicate type variable '%s'", f.path, i, tv.Name)
		}
		if len(tv.Constraints) == 0 {
			return fmt.Errorf("%s: typevars[%d] (%s): constraints must not be empty", f.path, i, tv.Name)
		}
		cs := map[string]bool{}
		for _, c := range tv.Constraints {
			if cs[c] {
				return fmt.Errorf("%s: typevars[%d] (%s): duplicate constraint '%s'", f.path, i, tv.Name, c)
			}
			cs[c] = true
		}
		tvars[tv.Name] = true
	}
	for i, g := range f.Generics {
		if g.Name == "" {
			return fmt.Errorf("%s: generics[%d]: name is required", f.path, i)
		}
		if !isValidName(g.Name) {
			return fmt.Errorf("%s: generics[%d]: invalid type name '%s'", f.path, i, g.Name)
		}
		if seen[g.Name] {
			return fmt.Errorf("%s: generics[%d]: duplicate type name '%s'", f.path, i, g.Name)
		}
		seen[g.Name] = true
		if len(g.Params) == 0 {
			return fmt.Errorf("%s: generics[%d] (%s): params must not be empty", f.path, i, g.Name)
		}
		for j, p := range g.Params {
			if !tvars[p.Var] {
				return fmt.Errorf("%s: generics[%d] (%s): params[%d] references unknown type variable '%s'",
					f.path, i, g.Name, j, p.Var)
			}
			if _, err := parseVariance(p.Variance); err != nil {
				return fmt.Errorf("%s: generics[%d] (%s): params[%d]: %v", f.path, i, g.Name, j, err)
			}
		}
	}
	for i, s := range f.Sites {
		if err := s.checkShape(); err != nil {
			return fmt.Errorf("%s: sites[%d]: %v", f.path, i, err)
		}
	}
	return nil
}

func (s *Site) checkShape() error {
	switch {
	case s.Instantiate != "":
		if s.Call != "" || s.Arg != "" || s.Param != "" || s.Value != "" || s.Target != "" {
			return fmt.Errorf("instantiate site must not carry call or assignment fields")
		}
	case s.Call != "":
		if s.Arg == "" || s.Param == "" {
			return fmt.Errorf("call site requires arg and param")
		}
		if s.Value != "" || s.Target != "" {
			return fmt.Errorf("call site must not carry assignment fields")
		}
	case s.Value != "" || s.Target != "":
		if s.Value == "" || s.Target == "" {
			return fmt.Errorf("assignment site requires both value and target")
		}
	default:
		return fmt.Errorf("site requires one of instantiate, call or value/target")
	}
	return nil
}

// Build constructs the type environment and the ordered site nodes. Name
// resolution errors here are malformed input and fail the whole unit; user
// type errors are left for the walker.
func (f *File) Build() (*symbols.TypeEnv, []ast.Node, error) {
	env := symbols.NewTypeEnv()

	for i, c := range f.Classes {
		if _, err := env.DefineClass(c.Name, c.Bases); err != nil {
			return nil, nil, fmt.Errorf("%s: classes[%d]: %v", f.path, i, err)
		}
	}

	tvars := map[string]TypeVar{}
	for _, tv := range f.TypeVars {
		tvars[tv.Name] = tv
	}

	for i, g := range f.Generics {
		params := make([]typesystem.TypeParam, len(g.Params))
		for j, p := range g.Params {
			decl := tvars[p.Var]
			cons := make([]*typesystem.TCon, len(decl.Constraints))
			for k, cn := range decl.Constraints {
				con, ok := env.LookupClass(cn)
				if !ok {
					return nil, nil, fmt.Errorf("%s: generics[%d] (%s): constraint '%s' of '%s' is not a declared class",
						f.path, i, g.Name, cn, decl.Name)
				}
				cons[k] = con
			}
			variance, _ := parseVariance(p.Variance)
			// Each generic owns fresh copies of its parameters even when
			// two declarations name the same typevar.
			params[j] = typesystem.TypeParam{
				Var:      &typesystem.TVar{Name: decl.Name, Constraints: cons},
				Variance: variance,
			}
		}
		if _, err := env.DefineGeneric(g.Name, params, g.Bases); err != nil {
			return nil, nil, fmt.Errorf("%s: generics[%d]: %v", f.path, i, err)
		}
	}

	sites := make([]ast.Node, 0, len(f.Sites))
	for i, s := range f.Sites {
		node, err := f.buildSite(env, i, s)
		if err != nil {
			return nil, nil, err
		}
		sites = append(sites, node)
	}
	return env, sites, nil
}

func (f *File) buildSite(env *symbols.TypeEnv, index int, s Site) (ast.Node, error) {
	pos := f.sitePos(index, s)
	parse := func(field, src string) (*ast.TypeExpr, error) {
		expr, err := ParseTypeExpr(src, pos)
		if err != nil {
			return nil, fmt.Errorf("%s: sites[%d]: %s: %v", f.path, index, field, err)
		}
		if unknown := findUnknown(env, expr); unknown != "" {
			return nil, fmt.Errorf("%s: sites[%d]: %s: unknown type '%s'", f.path, index, field, unknown)
		}
		return expr, nil
	}

	switch {
	case s.Instantiate != "":
		t, err := parse("instantiate", s.Instantiate)
		if err != nil {
			return nil, err
		}
		return &ast.InstantiationSite{Type: t, Pos: pos}, nil
	case s.Call != "":
		arg, err := parse("arg", s.Arg)
		if err != nil {
			return nil, err
		}
		param, err := parse("param", s.Param)
		if err != nil {
			return nil, err
		}
		return &ast.CallSite{Callee: s.Call, Arg: arg, Param: param, Pos: pos}, nil
	default:
		value, err := parse("value", s.Value)
		if err != nil {
			return nil, err
		}
		target, err := parse("target", s.Target)
		if err != nil {
			return nil, err
		}
		return &ast.AssignSite{Value: value, Target: target, Pos: pos}, nil
	}
}

// sitePos parses the optional "file:line:col" position; without one the
// site is located at its ordinal in the environment file.
func (f *File) sitePos(index int, s Site) token.Position {
	if s.At != "" {
		if pos, ok := parsePos(s.At); ok {
			return pos
		}
	}
	return token.Position{File: f.path, Line: index + 1, Column: 1}
}

func findUnknown(env *symbols.TypeEnv, expr *ast.TypeExpr) string {
	if expr.Name != config.ListTypeName && !env.Has(expr.Name) {
		return expr.Name
	}
	for _, a := range expr.Args {
		if unknown := findUnknown(env, a); unknown != "" {
			return unknown
		}
	}
	return ""
}

func parseVariance(s string) (typesystem.Variance, error) {
	switch s {
	case "", config.InvariantName:
		return typesystem.Invariant, nil
	case config.CovariantName:
		return typesystem.Covariant, nil
	case config.ContravariantName:
		return typesystem.Contravariant, nil
	default:
		return typesystem.Invariant, fmt.Errorf("unknown variance '%s'", s)
	}
}
