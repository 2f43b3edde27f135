package typetable

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"molang/ast"
)

func TestIndexAndGet(t *testing.T) {
	path := ast.NewPath("Base")
	mod := &ast.Module{Defs: []ast.TypeDef{{PathV: path, Kind: ast.KindClass{}}}}

	table := New()
	if dups := table.Index(mod); len(dups) != 0 {
		t.Fatalf("expected no duplicates, got %d", len(dups))
	}
	def, ok := table.Get(path)
	if !ok {
		t.Fatal("expected Base to be indexed")
	}
	if !def.Path().Equal(path) {
		t.Errorf("got path %v, want %v", def.Path(), path)
	}
}

func TestIndexKeepsFirstDuplicate(t *testing.T) {
	path := ast.NewPath("Base")
	first := ast.TypeDef{PathV: path, Kind: ast.KindClass{}, At: ast.Position{Min: ast.Pos{Line: 1}}}
	second := ast.TypeDef{PathV: path, Kind: ast.KindClass{}, At: ast.Position{Min: ast.Pos{Line: 99}}}
	mod := &ast.Module{Defs: []ast.TypeDef{first, second}}

	table := New()
	dups := table.Index(mod)
	if len(dups) != 1 || dups[0].Pos().Min.Line != 99 {
		t.Fatalf("expected the second declaration to be reported as dropped, got %+v", dups)
	}
	def, _ := table.Get(path)
	if def.Pos().Min.Line != 1 {
		t.Errorf("expected the first declaration to win, got line %d", def.Pos().Min.Line)
	}
}

func TestHasSynthesizesBareName(t *testing.T) {
	mod := &ast.Module{Defs: []ast.TypeDef{{PathV: ast.NewPath("Base"), Kind: ast.KindClass{}}}}
	table := New()
	table.Index(mod)

	if _, ok := table.Has("Base"); !ok {
		t.Error("expected Has to find a top-level declaration by bare name")
	}
	if _, ok := table.Has("Nope"); ok {
		t.Error("expected Has to miss an undeclared name")
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	mod := &ast.Module{Defs: []ast.TypeDef{
		{PathV: ast.NewPath("C"), Kind: ast.KindClass{}},
		{PathV: ast.NewPath("A"), Kind: ast.KindClass{}},
		{PathV: ast.NewPath("B"), Kind: ast.KindClass{}},
	}}
	table := New()
	table.Index(mod)

	var got []string
	for _, def := range table.All() {
		got = append(got, def.Path().Name)
	}
	want := []string{"C", "A", "B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("All() order mismatch (-want +got):\n%s", diff)
	}
}
