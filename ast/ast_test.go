package ast

import "testing"

func TestPathEqual(t *testing.T) {
	a := Path{Pkg: []string{"io"}, Name: "Reader"}
	b := Path{Pkg: []string{"io"}, Name: "Reader"}
	c := Path{Pkg: []string{"os"}, Name: "Reader"}
	if !a.Equal(b) {
		t.Error("structurally identical paths should be equal")
	}
	if a.Equal(c) {
		t.Error("paths with different packages should not be equal")
	}
}

func TestTypeOfConst(t *testing.T) {
	cases := []struct {
		c    Const
		want Prim
	}{
		{ConstInt{Value: 1}, Int},
		{ConstFloat{Value: 1.5}, Float},
		{ConstString{Value: "s"}, String},
		{ConstBool{Value: true}, Bool},
		{ConstNull{}, Void},
	}
	for _, c := range cases {
		if got := TypeOfConst(c.c); got != c.want {
			t.Errorf("TypeOfConst(%#v) = %v, want %v", c.c, got, c.want)
		}
	}
}

func TestIsAssign(t *testing.T) {
	for _, op := range []string{"=", "+=", "-=", "*=", "/="} {
		if !IsAssign(op) {
			t.Errorf("expected %q to be an assigning operator", op)
		}
	}
	for _, op := range []string{"==", "<", "+", "-"} {
		if IsAssign(op) {
			t.Errorf("expected %q not to be an assigning operator", op)
		}
	}
}

func TestTypeDefMemberFirstWins(t *testing.T) {
	def := TypeDef{Members: []MemberDef{
		{Name: "a", Kind: MVar{Type: TyPrim{Kind: Int}}},
		{Name: "a", Kind: MVar{Type: TyPrim{Kind: String}}},
	}}
	m, ok := def.Member("a")
	if !ok {
		t.Fatal("expected a to be found")
	}
	if m.Kind.(MVar).Type.(TyPrim).Kind != Int {
		t.Error("expected declaration order to pick the first member named a")
	}
}
