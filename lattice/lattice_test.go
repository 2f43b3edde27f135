package lattice

import (
	"testing"

	"molang/ast"
	"molang/typetable"
)

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		ty   ast.Ty
		want bool
	}{
		{ast.TyPrim{Kind: ast.Int}, true},
		{ast.TyPrim{Kind: ast.Float}, true},
		{ast.TyPrim{Kind: ast.Short}, true},
		{ast.TyPrim{Kind: ast.Bool}, false},
		{ast.TyPrim{Kind: ast.String}, false},
		{ast.TyPrim{Kind: ast.Void}, false},
		{ast.TyPath{Path: ast.NewPath("Foo")}, false},
	}
	for _, c := range cases {
		if got := IsNumeric(c.ty); got != c.want {
			t.Errorf("IsNumeric(%v) = %v, want %v", c.ty, got, c.want)
		}
	}
}

func TestTyEqual(t *testing.T) {
	fn := func(conv ast.CallConv) ast.Ty {
		return ast.TyFunc{Params: []ast.Ty{ast.TyPrim{Kind: ast.Int}}, Ret: ast.VoidTy, Conv: conv}
	}
	if !TyEqual(fn(ast.Normal), fn(ast.Normal)) {
		t.Error("identical func types should be equal")
	}
	if TyEqual(fn(ast.Normal), fn(ast.VarArgs)) {
		t.Error("differing calling convention should not be equal")
	}
	if !TyEqual(ast.TyTuple{Elems: []ast.Ty{ast.TyPrim{Kind: ast.Int}}}, ast.TyTuple{Elems: []ast.Ty{ast.TyPrim{Kind: ast.Int}}}) {
		t.Error("elementwise-equal tuples should be equal")
	}
	if TyEqual(ast.TyPrim{Kind: ast.Int}, ast.TyPrim{Kind: ast.Float}) {
		t.Error("different prims should not be equal")
	}
}

func TestCanCastNumeric(t *testing.T) {
	table := typetable.New()
	if !CanCast(table, ast.TyPrim{Kind: ast.Int}, ast.TyPrim{Kind: ast.Float}) {
		t.Error("numeric-to-numeric cast should always be allowed")
	}
}

func TestCanCastExtendsChain(t *testing.T) {
	base := ast.NewPath("Base")
	mid := ast.NewPath("Mid")
	top := ast.NewPath("Top")

	mod := &ast.Module{Defs: []ast.TypeDef{
		{PathV: base, Kind: ast.KindClass{}},
		{PathV: mid, Kind: ast.KindClass{Extends: &base}},
		{PathV: top, Kind: ast.KindClass{Extends: &mid}},
	}}
	table := typetable.New()
	table.Index(mod)

	if !CanCast(table, ast.TyPath{Path: top}, ast.TyPath{Path: base}) {
		t.Error("cast should walk the extends chain transitively")
	}
	if CanCast(table, ast.TyPath{Path: base}, ast.TyPath{Path: top}) {
		t.Error("cast should not work against the direction of extends")
	}
}

func TestCanCastCycleTerminates(t *testing.T) {
	a := ast.NewPath("A")
	b := ast.NewPath("B")
	mod := &ast.Module{Defs: []ast.TypeDef{
		{PathV: a, Kind: ast.KindClass{Extends: &b}},
		{PathV: b, Kind: ast.KindClass{Extends: &a}},
	}}
	table := typetable.New()
	table.Index(mod)

	// A cyclic extends chain must not hang can_cast; if the visited set
	// were missing this call would never return.
	if CanCast(table, ast.TyPath{Path: a}, ast.TyPath{Path: ast.NewPath("Nowhere")}) {
		t.Error("a cyclic extends chain should never report reachability to an unrelated path")
	}
}
