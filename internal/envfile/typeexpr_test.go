package envfile

import (
	"testing"

	"github.com/genwalk/genwalk/internal/token"
)

func TestParseTypeExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"A", "A"},
		{"_T1", "_T1"},
		{"Moo[A]", "Moo[A]"},
		{"Moo[List[C]]", "Moo[List[C]]"},
		{"Map[A, B]", "Map[A, B]"},
		{" Moo[ A , B ] ", "Moo[A, B]"},
		{"pkg.Type", "pkg.Type"},
	}
	for _, tt := range tests {
		expr, err := ParseTypeExpr(tt.src, token.Position{})
		if err != nil {
			t.Errorf("ParseTypeExpr(%q): %v", tt.src, err)
			continue
		}
		if expr.String() != tt.want {
			t.Errorf("ParseTypeExpr(%q) = %q, want %q", tt.src, expr, tt.want)
		}
	}
}

func TestParseTypeExprErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"Moo[",
		"Moo[]",
		"Moo[A",
		"Moo[A B]",
		"Moo[A]]",
		"[A]",
		"1Moo",
	} {
		if _, err := ParseTypeExpr(src, token.Position{}); err == nil {
			t.Errorf("ParseTypeExpr(%q) succeeded, want error", src)
		}
	}
}

func TestParsePos(t *testing.T) {
	pos, ok := parsePos("specialization1.py:33:7")
	if !ok || pos.File != "specialization1.py" || pos.Line != 33 || pos.Column != 7 {
		t.Errorf("parsePos = %v (%v)", pos, ok)
	}

	pos, ok = parsePos("f.py:12")
	if !ok || pos.Line != 12 || pos.Column != 1 {
		t.Errorf("parsePos file:line = %v (%v)", pos, ok)
	}

	// Windows-ish paths keep their drive colon in the file part.
	pos, ok = parsePos("C:/src/f.py:5:2")
	if !ok || pos.File != "C:/src/f.py" || pos.Line != 5 {
		t.Errorf("parsePos with drive = %v (%v)", pos, ok)
	}

	if _, ok := parsePos("nonsense"); ok {
		t.Error("parsePos must reject strings without line info")
	}
}
