package tast

import "molang/ast"

// TMember is the closed tagged union of typed members: a field, a method
// or a constructor. Every variant carries its final member type as Tmty.
type TMember interface {
	Name() string
	Tmty() ast.Ty
	tmemberNode()
}

type (
	TMVar struct {
		NameV       string
		Variability ast.Variability
		Ty          ast.Ty
		Init        TExpr // nil when the field has no initializer
		Mods        ast.ModSet
		At          ast.Position
	}

	TMFunc struct {
		NameV string
		Ty    ast.TyFunc
		Body  *TEBlock // nil for bodyless extern declarations
		Mods  ast.ModSet
		At    ast.Position
	}

	TMConstr struct {
		NameV string
		Ty    ast.TyFunc // Ret is always Void
		Body  *TEBlock
		Mods  ast.ModSet
		At    ast.Position
	}
)

func (m TMVar) Name() string    { return m.NameV }
func (m TMVar) Tmty() ast.Ty    { return m.Ty }
func (m TMFunc) Name() string   { return m.NameV }
func (m TMFunc) Tmty() ast.Ty   { return m.Ty }
func (m TMConstr) Name() string { return m.NameV }
func (m TMConstr) Tmty() ast.Ty { return m.Ty }

func (TMVar) tmemberNode()    {}
func (TMFunc) tmemberNode()   {}
func (TMConstr) tmemberNode() {}

// TypeDef is a fully typed class or struct declaration. The declaration
// shape (Kind, Mods, Path) is unchanged from ast.TypeDef; only the member
// bodies gain resolved types.
type TypeDef struct {
	PathV   ast.Path
	Kind    ast.TypeDefKind
	Mods    ast.ModSet
	Members []TMember
	At      ast.Position
}

func (t TypeDef) Path() ast.Path    { return t.PathV }
func (t TypeDef) Pos() ast.Position { return t.At }

// Module is the typed counterpart of ast.Module: the TAST together with
// the type declarations it was checked against. Codegen consumes this and
// the populated type table.
type Module struct {
	Imports []ast.Path
	Defs    []TypeDef
	Package ast.Path
}
