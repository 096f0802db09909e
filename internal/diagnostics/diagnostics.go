package diagnostics

import (
	"fmt"

	"github.com/genwalk/genwalk/internal/token"
)

// ErrorCode identifies a diagnostic class with a stable code.
type ErrorCode string

const (
	ErrG001 ErrorCode = "G001" // wrong number of type arguments
	ErrG002 ErrorCode = "G002" // type argument outside the variable's constraint set
	ErrG003 ErrorCode = "G003" // incompatible specialization at a call or assignment
)

// Kind names the failure class for the reporting layer.
type Kind string

const (
	ArityMismatch        Kind = "ArityMismatch"
	ConstraintFailure    Kind = "ConstraintFailure"
	AssignabilityFailure Kind = "AssignabilityFailure"
)

var codeKinds = map[ErrorCode]Kind{
	ErrG001: ArityMismatch,
	ErrG002: ConstraintFailure,
	ErrG003: AssignabilityFailure,
}

// DiagnosticError is one user-facing type error. All three kinds are
// ordinary, recoverable, per-site results; the walk continues past them.
type DiagnosticError struct {
	Code    ErrorCode
	Kind    Kind
	Pos     token.Position
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: error %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("error %s: %s", e.Code, e.Message)
}

// NewError creates a diagnostic with the kind derived from its code.
func NewError(code ErrorCode, pos token.Position, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Kind:    codeKinds[code],
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// Collector accumulates diagnostics in detection order, which equals the
// site traversal order. Nothing is deduplicated or dropped.
type Collector struct {
	diags []*DiagnosticError
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Emit(d *DiagnosticError) {
	if d == nil {
		panic("diagnostics: emit of nil diagnostic")
	}
	c.diags = append(c.diags, d)
}

// Drain returns a snapshot of the collected diagnostics. It does not clear
// the collector; repeated calls after no new emissions return equal
// sequences.
func (c *Collector) Drain() []*DiagnosticError {
	out := make([]*DiagnosticError, len(c.diags))
	copy(out, c.diags)
	return out
}

func (c *Collector) Len() int { return len(c.diags) }
