package symbols

import (
	"fmt"

	"github.com/genwalk/genwalk/internal/config"
	"github.com/genwalk/genwalk/internal/typesystem"
)

// TypeEnv is the resolved type environment for one analysis run: nominal
// classes and generic declarations keyed by declared name. It is populated
// once while the environment is built and treated as read-only by the
// checker afterwards.
type TypeEnv struct {
	classes  map[string]*typesystem.TCon
	generics map[string]*typesystem.GenericDecl
	root     *typesystem.TCon
}

// NewTypeEnv creates an environment seeded with the universal root type.
func NewTypeEnv() *TypeEnv {
	root := &typesystem.TCon{Name: config.RootTypeName}
	return &TypeEnv{
		classes:  map[string]*typesystem.TCon{root.Name: root},
		generics: map[string]*typesystem.GenericDecl{},
		root:     root,
	}
}

// Root returns the universal root type every base chain terminates at.
func (e *TypeEnv) Root() *typesystem.TCon { return e.root }

// DefineClass registers a nominal class. Bases must already be defined;
// the transitive base chain is computed here, once, so subtype checks
// never walk the hierarchy again.
func (e *TypeEnv) DefineClass(name string, baseNames []string) (*typesystem.TCon, error) {
	if err := e.checkFresh(name); err != nil {
		return nil, err
	}
	chain, err := e.baseChain(name, baseNames)
	if err != nil {
		return nil, err
	}
	con := &typesystem.TCon{Name: name, Bases: chain}
	e.classes[name] = con
	return con, nil
}

// DefineGeneric registers a generic declaration. The declaration owns its
// parameter list; every parameter's type variable must carry a non-empty
// constraint list of already-defined classes.
func (e *TypeEnv) DefineGeneric(name string, params []typesystem.TypeParam, baseNames []string) (*typesystem.GenericDecl, error) {
	if err := e.checkFresh(name); err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("generic type '%s' declares no type parameters", name)
	}
	for _, p := range params {
		if p.Var == nil || len(p.Var.Constraints) == 0 {
			return nil, fmt.Errorf("generic type '%s': type variable without constraints", name)
		}
	}
	chain, err := e.baseChain(name, baseNames)
	if err != nil {
		return nil, err
	}
	decl := &typesystem.GenericDecl{
		Con:    &typesystem.TCon{Name: name, Bases: chain},
		Params: params,
	}
	e.generics[name] = decl
	return decl, nil
}

// LookupClass finds a nominal class by name. Generic declarations are not
// visible here: a bare reference to a generic is ill-formed and has to be
// rejected at binding, not silently treated as a class.
func (e *TypeEnv) LookupClass(name string) (*typesystem.TCon, bool) {
	c, ok := e.classes[name]
	return c, ok
}

// LookupGeneric finds a generic declaration by name.
func (e *TypeEnv) LookupGeneric(name string) (*typesystem.GenericDecl, bool) {
	d, ok := e.generics[name]
	return d, ok
}

// Has reports whether name is declared at all, as a class or a generic.
func (e *TypeEnv) Has(name string) bool {
	if _, ok := e.classes[name]; ok {
		return true
	}
	_, ok := e.generics[name]
	return ok
}

func (e *TypeEnv) checkFresh(name string) error {
	if name == "" {
		return fmt.Errorf("type declaration without a name")
	}
	if e.Has(name) || name == config.ListTypeName {
		return fmt.Errorf("duplicate type declaration '%s'", name)
	}
	return nil
}

// baseChain resolves base names and flattens them into the transitive,
// duplicate-free chain, terminated by the root.
func (e *TypeEnv) baseChain(name string, baseNames []string) ([]*typesystem.TCon, error) {
	var chain []*typesystem.TCon
	seen := map[*typesystem.TCon]bool{}
	add := func(c *typesystem.TCon) {
		if !seen[c] {
			seen[c] = true
			chain = append(chain, c)
		}
	}
	for _, bn := range baseNames {
		base, ok := e.classes[bn]
		if !ok {
			return nil, fmt.Errorf("class '%s': unknown base type '%s'", name, bn)
		}
		add(base)
		for _, anc := range base.Bases {
			add(anc)
		}
	}
	add(e.root)
	return chain, nil
}
