package typer

import (
	"molang/ast"
	"molang/diag"
	"molang/lattice"
	"molang/scope"
	"molang/tast"
)

var boolTy ast.Ty = ast.TyPrim{Kind: ast.Bool}

func base(pos ast.Position, ty ast.Ty) tast.Base {
	return tast.Base{At: pos, Ty: ty}
}

// typeExpr is the central recursion of 4.4: type_expr : Expr -> TExpr, a
// case analysis on the untyped node. Every arm is normative per the
// section of the same name; see the per-case helpers below for the rule
// each one follows.
func (c *Checker) typeExpr(e ast.Expr) tast.TExpr {
	switch n := e.(type) {
	case ast.This:
		return c.typeThis(n)
	case ast.Super:
		return c.typeSuper(n)
	case ast.ConstExpr:
		return c.typeConst(n)
	case ast.Ident:
		return c.typeIdent(n)
	case ast.Field:
		return c.typeField(n)
	case ast.ArrayIndex:
		return c.typeArrayIndex(n)
	case ast.BinOp:
		return c.typeBinOp(n)
	case ast.UnOp:
		return c.typeUnOp(n)
	case ast.Block:
		return c.typeBlock(n)
	case ast.Call:
		return c.typeCall(n)
	case ast.Paren:
		et := c.typeExpr(n.E)
		return tast.TEParen{Base: base(n.At, et.Ety()), E: et}
	case ast.If:
		return c.typeIf(n)
	case ast.While:
		return c.typeWhile(n)
	case ast.Var:
		return c.typeVarDecl(n)
	case ast.New:
		return c.typeNew(n)
	case ast.TupleExpr:
		return c.typeTuple(n)
	case ast.Cast:
		return c.typeCast(n)
	case ast.Break:
		return tast.TEBreak{Base: base(n.At, ast.VoidTy)}
	case ast.Continue:
		return tast.TEContinue{Base: base(n.At, ast.VoidTy)}
	case ast.Return:
		return c.typeReturn(n)
	default:
		panic("typer: unreachable expr variant")
	}
}

func (c *Checker) typeExprs(es []ast.Expr) []tast.TExpr {
	out := make([]tast.TExpr, len(es))
	for i, e := range es {
		out[i] = c.typeExpr(e)
	}
	return out
}

func tysOf(es []tast.TExpr) []ast.Ty {
	out := make([]ast.Ty, len(es))
	for i, e := range es {
		out[i] = e.Ety()
	}
	return out
}

// typeThis and typeSuper implement 4.4's This/Super rule: This requires an
// enclosing class and types to Path(this_path); Super additionally
// requires that class to extend something, and types to Path of the
// parent.
func (c *Checker) typeThis(n ast.This) tast.TExpr {
	if c.ctx.ThisPath == nil {
		c.diags.Add(diag.ErrUnresolvedThis(n.Pos()))
		return tast.TEThis{Base: base(n.At, ast.InvalidTy)}
	}
	return tast.TEThis{Base: base(n.At, ast.TyPath{Path: *c.ctx.ThisPath})}
}

func (c *Checker) typeSuper(n ast.Super) tast.TExpr {
	parent, ok := c.superPath()
	if !ok {
		c.diags.Add(diag.ErrUnresolvedSuper(n.Pos()))
		return tast.TESuper{Base: base(n.At, ast.InvalidTy)}
	}
	return tast.TESuper{Base: base(n.At, ast.TyPath{Path: parent})}
}

// superPath resolves this_path's extends target, the shared lookup behind
// both the Super expression and `super(...)` constructor delegation.
func (c *Checker) superPath() (ast.Path, bool) {
	if c.ctx.ThisPath == nil {
		return ast.Path{}, false
	}
	def, ok := c.table.Get(*c.ctx.ThisPath)
	if !ok {
		return ast.Path{}, false
	}
	class, ok := def.Kind.(ast.KindClass)
	if !ok || class.Extends == nil {
		return ast.Path{}, false
	}
	return *class.Extends, true
}

// typeConst is the Literals rule: Int->Int, Float->Float, String->String,
// Bool->Bool, Null->Void.
func (c *Checker) typeConst(n ast.ConstExpr) tast.TExpr {
	prim := ast.TypeOfConst(n.Value)
	return tast.TEConst{Base: base(n.At, ast.TyPrim{Kind: prim}), Value: n.Value}
}

// typeIdent is the Ident rule: find_var per 4.3, reusing whatever
// (variability, ty) it returns -- including a synthesized Class(path) when
// name names a top-level type used as a static receiver.
func (c *Checker) typeIdent(n ast.Ident) tast.TExpr {
	b, ok := c.findVar(n.Name, n.Pos())
	if !ok {
		return tast.TEIdent{Base: base(n.At, ast.InvalidTy), Name: n.Name}
	}
	return tast.TEIdent{Base: base(n.At, b.Ty), Name: n.Name}
}

// typeField is the Field rule: type the receiver, then resolve_field the
// name against its underlying path.
func (c *Checker) typeField(n ast.Field) tast.TExpr {
	obj := c.typeExpr(n.Obj)
	b, ok := c.resolveField(obj.Ety(), n.Name, n.Pos())
	if !ok {
		return tast.TEField{Base: base(n.At, ast.InvalidTy), Obj: obj, Name: n.Name}
	}
	return tast.TEField{Base: base(n.At, b.Ty), Obj: obj, Name: n.Name}
}

// typeArrayIndex is the ArrayIndex rule: the receiver must be a Tuple and
// the index a constant integer literal in range; anything else is
// CannotIndex.
func (c *Checker) typeArrayIndex(n ast.ArrayIndex) tast.TExpr {
	obj := c.typeExpr(n.Obj)
	idx := c.typeExpr(n.Idx)

	tup, isTuple := obj.Ety().(ast.TyTuple)
	k, isConst := constIntOf(n.Idx)
	if !isTuple || !isConst || k < 0 || int(k) >= len(tup.Elems) {
		c.diags.Add(diag.ErrCannotIndex(n.Pos()))
		return tast.TEArrayIndex{Base: base(n.At, ast.InvalidTy), Obj: obj, Idx: idx}
	}
	return tast.TEArrayIndex{Base: base(n.At, tup.Elems[k]), Obj: obj, Idx: idx}
}

func constIntOf(e ast.Expr) (int64, bool) {
	c, ok := e.(ast.ConstExpr)
	if !ok {
		return 0, false
	}
	i, ok := c.Value.(ast.ConstInt)
	if !ok {
		return 0, false
	}
	return i.Value, true
}

// typeTuple is the Tuple rule: type each element, ety is the elementwise
// Tuple of their types.
func (c *Checker) typeTuple(n ast.TupleExpr) tast.TExpr {
	elems := c.typeExprs(n.Elems)
	return tast.TETuple{Base: base(n.At, ast.TyTuple{Elems: tysOf(elems)}), Elems: elems}
}

// typeBlock is the Block rule: type each subexpression in order; the
// block's type is the last one's, or Void when empty.
func (c *Checker) typeBlock(n ast.Block) tast.TExpr {
	exprs := c.typeExprs(n.Exprs)
	ty := ast.VoidTy
	if len(exprs) > 0 {
		ty = exprs[len(exprs)-1].Ety()
	}
	return tast.TEBlock{Base: base(n.At, ty), Exprs: exprs}
}

// typeIf is the If rule. The source records the then-branch's type even
// with an else present, without checking the branches agree -- §9's open
// question resolves to (c), preserve that behavior; the else branch is
// still typed (and still checked internally) so its own errors surface.
func (c *Checker) typeIf(n ast.If) tast.TExpr {
	cond := c.typeExpr(n.Cond)
	if !lattice.TyEqual(cond.Ety(), boolTy) {
		c.diags.Add(diag.ErrExpected(n.Cond.Pos(), boolTy, cond.Ety()))
	}
	then := c.typeExpr(n.Then)
	var els tast.TExpr
	if n.Else != nil {
		els = c.typeExpr(n.Else)
	}
	return tast.TEIf{Base: base(n.At, then.Ety()), Cond: cond, Then: then, Else: els}
}

// typeWhile is the While rule: condition must be Bool, the loop's own
// type is always Void.
func (c *Checker) typeWhile(n ast.While) tast.TExpr {
	cond := c.typeExpr(n.Cond)
	if !lattice.TyEqual(cond.Ety(), boolTy) {
		c.diags.Add(diag.ErrExpected(n.Cond.Pos(), boolTy, cond.Ety()))
	}
	body := c.typeExpr(n.Body)
	return tast.TEWhile{Base: base(n.At, ast.VoidTy), Cond: cond, Body: body}
}

// typeVarDecl is the Var declaration rule: type init, check the
// annotation against it when present, reject Void, bind the name in the
// current frame. The declaration's own ety is always Void.
func (c *Checker) typeVarDecl(n ast.Var) tast.TExpr {
	init := c.typeExpr(n.Init)
	ty := init.Ety()
	if n.Type != nil && !lattice.TyEqual(n.Type, ty) {
		c.diags.Add(diag.ErrExpected(n.Pos(), n.Type, ty))
	}
	if lattice.TyEqual(ty, ast.VoidTy) {
		c.diags.Add(diag.ErrVoidVar(n.Pos()))
	}
	c.scope.Define(n.Name, scope.Binding{Variability: n.Variability, Ty: ty})
	return tast.TEVar{Base: base(n.At, ast.VoidTy), Variability: n.Variability, Name: n.Name, Init: init}
}

// typeCast is the Cast rule: can_cast(typeof(e), t) or CannotCastTo.
func (c *Checker) typeCast(n ast.Cast) tast.TExpr {
	e := c.typeExpr(n.E)
	if !lattice.CanCast(c.table, e.Ety(), n.Type) {
		c.diags.Add(diag.ErrCannotCastTo(n.Pos(), e.Ety(), n.Type))
		return tast.TECast{Base: base(n.At, ast.InvalidTy), E: e}
	}
	return tast.TECast{Base: base(n.At, n.Type), E: e}
}

// typeReturn is the Return rule: sets has_returned, types the optional
// payload, and is itself always Void.
func (c *Checker) typeReturn(n ast.Return) tast.TExpr {
	c.ctx.HasReturned = true
	var val tast.TExpr
	if n.Value != nil {
		val = c.typeExpr(n.Value)
	}
	return tast.TEReturn{Base: base(n.At, ast.VoidTy), Value: val}
}
