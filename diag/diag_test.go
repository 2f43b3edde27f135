package diag

import (
	"strings"
	"testing"

	"molang/ast"
)

func TestCollectorAccumulates(t *testing.T) {
	c := NewCollector()
	if c.HasErrors() {
		t.Fatal("fresh collector should have no errors")
	}
	c.Add(ErrUnresolvedIdent(ast.Position{}, "x"))
	c.Add(ErrVoidVar(ast.Position{}))
	if !c.HasErrors() {
		t.Fatal("expected HasErrors after two Adds")
	}
	if len(c.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(c.Errors))
	}
	if c.Errors[0].Kind != UnresolvedIdent {
		t.Errorf("expected first error kind %v, got %v", UnresolvedIdent, c.Errors[0].Kind)
	}
}

func TestRenderWithoutSourceLine(t *testing.T) {
	err := ErrCannotAssign(ast.Position{File: "f.mo", Min: ast.Pos{Line: 3, Col: 5}})
	out := Render(err, false, "")
	if !strings.Contains(out, "f.mo:3:5") {
		t.Errorf("expected position header in output, got %q", out)
	}
	if strings.Contains(out, "^") {
		t.Error("expected no caret line when no source is available")
	}
}

func TestRenderWithSourceLine(t *testing.T) {
	err := ErrCannotAssign(ast.Position{File: "f.mo", Min: ast.Pos{Line: 3, Col: 5}})
	out := Render(err, false, "this.a = a")
	if !strings.Contains(out, "^") {
		t.Error("expected a caret line when source is available")
	}
}

func TestKindsAreStable(t *testing.T) {
	if UnresolvedIdent != "UnresolvedIdent" {
		t.Errorf("Kind identifiers must stay stable; got %q", UnresolvedIdent)
	}
}
