// Package tast defines the typed syntax tree: the output of the semantic
// core. It mirrors ast's shapes with one addition on every expression node,
// ety, the resolved type, plus a handful of variants that surface
// constructs the untyped tree only implies (TEThis, TECast, and so on).
package tast

import "molang/ast"

// TExpr is the closed tagged union of typed expressions. Every variant
// carries its resolved type via Ety and its source position via Pos.
type TExpr interface {
	Pos() ast.Position
	Ety() ast.Ty
	texprNode()
}

type Base struct {
	At  ast.Position
	Ty  ast.Ty
}

func (e Base) Pos() ast.Position { return e.At }
func (e Base) Ety() ast.Ty        { return e.Ty }

type (
	TEThis  struct{ Base }
	TESuper struct{ Base }

	TEConst struct {
		Base
		Value ast.Const
	}

	TEIdent struct {
		Base
		Name string
	}

	TEField struct {
		Base
		Obj  TExpr
		Name string
	}

	TEArrayIndex struct {
		Base
		Obj TExpr
		Idx TExpr
	}

	TEBinOp struct {
		Base
		Op   string
		A, B TExpr
	}

	TEUnOp struct {
		Base
		Op string
		A  TExpr
	}

	TEBlock struct {
		Base
		Exprs []TExpr
	}

	TECall struct {
		Base
		Callee TExpr
		Args   []TExpr
	}

	// TESuperCall is `super(...)`, a constructor delegation; it has no
	// standalone callee expression, only the matched parent path.
	TESuperCall struct {
		Base
		Parent ast.Path
		Args   []TExpr
	}

	TEParen struct {
		Base
		E TExpr
	}

	TEIf struct {
		Base
		Cond TExpr
		Then TExpr
		Else TExpr // nil when absent
	}

	TEWhile struct {
		Base
		Cond TExpr
		Body TExpr
	}

	TEVar struct {
		Base
		Variability ast.Variability
		Name        string
		Init        TExpr
	}

	TENew struct {
		Base
		Path ast.Path
		Args []TExpr
	}

	TETuple struct {
		Base
		Elems []TExpr
	}

	TECast struct {
		Base
		E TExpr
	}

	TEBreak struct{ Base }

	TEContinue struct{ Base }

	TEReturn struct {
		Base
		Value TExpr // nil when absent
	}
)

func (TEThis) texprNode()       {}
func (TESuper) texprNode()      {}
func (TEConst) texprNode()      {}
func (TEIdent) texprNode()      {}
func (TEField) texprNode()      {}
func (TEArrayIndex) texprNode() {}
func (TEBinOp) texprNode()      {}
func (TEUnOp) texprNode()       {}
func (TEBlock) texprNode()      {}
func (TECall) texprNode()       {}
func (TESuperCall) texprNode()  {}
func (TEParen) texprNode()      {}
func (TEIf) texprNode()         {}
func (TEWhile) texprNode()      {}
func (TEVar) texprNode()        {}
func (TENew) texprNode()        {}
func (TETuple) texprNode()      {}
func (TECast) texprNode()       {}
func (TEBreak) texprNode()      {}
func (TEContinue) texprNode()   {}
func (TEReturn) texprNode()     {}
