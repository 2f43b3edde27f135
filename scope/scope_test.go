package scope

import (
	"testing"

	"molang/ast"
)

func TestStackShadowing(t *testing.T) {
	var s Stack
	s.Push()
	s.Define("x", Binding{Variability: ast.Constant, Ty: ast.TyPrim{Kind: ast.Int}})

	s.Push()
	s.Define("x", Binding{Variability: ast.Variable, Ty: ast.TyPrim{Kind: ast.String}})

	b, ok := s.Find("x")
	if !ok {
		t.Fatal("expected x to resolve")
	}
	if b.Variability != ast.Variable || b.Ty != (ast.TyPrim{Kind: ast.String}) {
		t.Errorf("inner frame should shadow outer, got %+v", b)
	}

	s.Pop()
	b, ok = s.Find("x")
	if !ok || b.Variability != ast.Constant {
		t.Errorf("after popping the inner frame, outer binding should resolve, got %+v, %v", b, ok)
	}

	s.Pop()
	if _, ok := s.Find("x"); ok {
		t.Error("expected no binding once both frames are popped")
	}
}

func TestStackDepth(t *testing.T) {
	var s Stack
	if s.Depth() != 0 {
		t.Fatalf("zero value stack should have depth 0, got %d", s.Depth())
	}
	s.Push()
	s.Push()
	if s.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", s.Depth())
	}
	s.Pop()
	if s.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", s.Depth())
	}
}

func TestContextEnterMemberResets(t *testing.T) {
	var c Context
	c.InStatic = false
	c.InConstructor = true
	c.HasReturned = true

	c.EnterMember(true)
	if !c.InStatic {
		t.Error("expected in_static to be set from the argument")
	}
	if c.InConstructor {
		t.Error("expected in_constructor to reset")
	}
	if c.HasReturned {
		t.Error("expected has_returned to reset")
	}
}
