package ast

import (
	"fmt"
	"strings"

	"github.com/genwalk/genwalk/internal/token"
)

// TypeExpr is an unresolved type reference as it appears at a site: a
// declared name plus optional type arguments, e.g. Moo[List[C]].
type TypeExpr struct {
	Name string
	Args []*TypeExpr
	Pos  token.Position
}

func (t *TypeExpr) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Name, strings.Join(args, ", "))
}

// Node is the base interface for all site nodes the walker visits.
type Node interface {
	GetPos() token.Position
	siteNode()
}

// InstantiationSite records an occurrence of Generic[Args...] in the
// analyzed source, e.g. a parameter annotation or a constructor call.
type InstantiationSite struct {
	Type *TypeExpr
	Pos  token.Position
}

func (s *InstantiationSite) GetPos() token.Position { return s.Pos }
func (s *InstantiationSite) siteNode()              {}

// CallSite records passing a value of type Arg to a parameter declared as
// Param.
type CallSite struct {
	Callee string // function or method name, used in nothing but debug output
	Arg    *TypeExpr
	Param  *TypeExpr
	Pos    token.Position
}

func (s *CallSite) GetPos() token.Position { return s.Pos }
func (s *CallSite) siteNode()              {}

// AssignSite records assigning a value of type Value to a target declared
// as Target.
type AssignSite struct {
	Value  *TypeExpr
	Target *TypeExpr
	Pos    token.Position
}

func (s *AssignSite) GetPos() token.Position { return s.Pos }
func (s *AssignSite) siteNode()              {}
