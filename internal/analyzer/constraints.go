package analyzer

import (
	"github.com/genwalk/genwalk/internal/typesystem"
)

// ConstraintResult is the outcome of checking one candidate type argument
// against a constrained type variable. Rejection is an expected, frequent
// outcome, so it is a plain value rather than an error.
type ConstraintResult struct {
	Var      *typesystem.TVar
	Offender typesystem.Type // nil when the candidate was accepted
}

func (r ConstraintResult) Ok() bool { return r.Offender == nil }

// CheckConstraint tests a candidate against the variable's enumerated
// constraint list. Membership is exact: a subtype of a listed type is still
// rejected, because the list models a closed enumeration, not an upper
// bound. Containers are unwrapped first, so the violation names the
// innermost offending type (List[C] fails because of C).
func CheckConstraint(tv *typesystem.TVar, candidate typesystem.Type) ConstraintResult {
	if tv == nil || candidate == nil {
		panic("analyzer: constraint check on nil input")
	}
	switch c := candidate.(type) {
	case *typesystem.TList:
		return CheckConstraint(tv, c.Elem)
	case *typesystem.TCon:
		for _, m := range tv.Constraints {
			if m == c {
				return ConstraintResult{Var: tv}
			}
		}
		return ConstraintResult{Var: tv, Offender: c}
	default:
		// Specializations and type variables can never be members of an
		// enumerated constraint list in this model.
		return ConstraintResult{Var: tv, Offender: candidate}
	}
}
