package analyzer

import (
	"github.com/genwalk/genwalk/internal/typesystem"
)

// IsAssignable reports whether a value of type src can be used where dst is
// expected. Pure and reentrant; it recurses into nested type arguments.
func IsAssignable(src, dst typesystem.Type) bool {
	if src == nil || dst == nil {
		panic("analyzer: assignability check on nil type")
	}
	switch d := dst.(type) {
	case *typesystem.TCon:
		switch s := src.(type) {
		case *typesystem.TCon:
			return typesystem.IsSubtype(s, d)
		case *typesystem.TApp:
			// A specialization relates to a plain nominal target through
			// its declaration's base chain.
			return typesystem.IsSubtype(s.Decl.Con, d)
		}
		return false

	case *typesystem.TApp:
		s, ok := src.(*typesystem.TApp)
		if !ok {
			return false
		}
		if s.Decl != d.Decl {
			// Specializations of different generics relate only through
			// the declarations' nominal chains; the parameter lists have
			// no positional correspondence to compare.
			return typesystem.IsSubtype(s.Decl.Con, d.Decl.Con)
		}
		for i, p := range d.Decl.Params {
			switch p.Variance {
			case typesystem.Covariant:
				if !IsAssignable(s.Args[i], d.Args[i]) {
					return false
				}
			case typesystem.Contravariant:
				if !IsAssignable(d.Args[i], s.Args[i]) {
					return false
				}
			default:
				if !typesystem.Equal(s.Args[i], d.Args[i]) {
					return false
				}
			}
		}
		return true

	case *typesystem.TList:
		s, ok := src.(*typesystem.TList)
		return ok && IsAssignable(s.Elem, d.Elem)
	}
	return false
}
