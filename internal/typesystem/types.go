package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	typeNode()
}

// TCon represents a nominal class type. Identity is the declaration: the
// type environment interns exactly one *TCon per class name, so pointer
// equality is declaration equality.
type TCon struct {
	Name  string
	Bases []*TCon // transitive base chain, most-derived first, root last
}

func (t *TCon) String() string { return t.Name }
func (t *TCon) typeNode()      {}

// IsSubtype reports whether t1 is t2 or derives from it. The base chain is
// computed once at environment build time, so this is a linear scan.
func IsSubtype(t1, t2 *TCon) bool {
	if t1 == t2 {
		return true
	}
	for _, b := range t1.Bases {
		if b == t2 {
			return true
		}
	}
	return false
}

// TVar represents a constrained type variable. The constraint list is a
// closed enumeration: a candidate must be one of the listed types, not
// merely a subtype of one.
type TVar struct {
	Name        string
	Constraints []*TCon
}

func (t *TVar) String() string { return t.Name }
func (t *TVar) typeNode()      {}

// Variance governs how a specialization's assignability follows the
// assignability of its type arguments.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	default:
		return "invariant"
	}
}

// TypeParam pairs a declaration's type variable with its variance marker.
type TypeParam struct {
	Var      *TVar
	Variance Variance
}

// GenericDecl is a nominal class parameterized by constrained type
// variables. It owns its parameter list; parameters are never shared
// across declarations.
type GenericDecl struct {
	Con    *TCon // the underlying nominal identity, with its base chain
	Params []TypeParam
}

func (d *GenericDecl) Name() string { return d.Con.Name }

// TApp represents a specialization of a generic declaration. Values are
// produced only by the binder, which validates every argument against its
// parameter's constraints first; an unchecked TApp never exists.
type TApp struct {
	Decl *GenericDecl
	Args []Type
}

func (t *TApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Decl.Name(), strings.Join(args, ", "))
}

func (t *TApp) typeNode() {}

// TList represents the built-in sequence container. Its single slot is
// covariant.
type TList struct {
	Elem Type
}

func (t *TList) String() string { return fmt.Sprintf("List[%s]", t.Elem) }
func (t *TList) typeNode()      {}

// Equal reports structural equality. TCon and TVar compare by identity
// (one value per declaration); TApp compares by declaration identity and
// element-wise argument equality, so two independently bound
// specializations of the same generic compare equal regardless of
// allocation order.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case *TCon:
		y, ok := b.(*TCon)
		return ok && x == y
	case *TVar:
		y, ok := b.(*TVar)
		return ok && x == y
	case *TList:
		y, ok := b.(*TList)
		return ok && Equal(x.Elem, y.Elem)
	case *TApp:
		y, ok := b.(*TApp)
		if !ok || x.Decl != y.Decl || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}
