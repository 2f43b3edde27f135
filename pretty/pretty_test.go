package pretty

import (
	"strings"
	"testing"

	"molang/ast"
)

func TestDumpIsStableAcrossEqualValues(t *testing.T) {
	a := ast.TyPrim{Kind: ast.Int}
	b := ast.TyPrim{Kind: ast.Int}
	if Dump(a) != Dump(b) {
		t.Errorf("expected equal values to render identically, got %q vs %q", Dump(a), Dump(b))
	}
}

func TestSprintIsSingleLine(t *testing.T) {
	out := Sprint(ast.TyPrim{Kind: ast.String})
	if strings.Contains(out, "\n") {
		t.Errorf("expected Sprint to collapse to one line, got %q", out)
	}
}
