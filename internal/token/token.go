package token

import "fmt"

// Position is a location in the analyzed source, carried from the site
// descriptions through to the emitted diagnostics.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position carries real location data.
func (p Position) IsValid() bool {
	return p.Line > 0
}
