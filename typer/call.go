package typer

import (
	"molang/ast"
	"molang/diag"
	"molang/lattice"
	"molang/tast"
)

// typeCall is the Call rule. `Call(Super, args)` is constructor
// delegation and is special-cased before the general path, which requires
// the callee to type to Func and checks argument arity/types under its
// calling convention.
func (c *Checker) typeCall(n ast.Call) tast.TExpr {
	if _, ok := n.Callee.(ast.Super); ok {
		return c.typeSuperCall(n)
	}

	callee := c.typeExpr(n.Callee)
	args := c.typeExprs(n.Args)

	fty, ok := callee.Ety().(ast.TyFunc)
	if !ok {
		c.diags.Add(diag.ErrCannotCall(n.Pos(), callee.Ety()))
		return tast.TECall{Base: base(n.At, ast.InvalidTy), Callee: callee, Args: args}
	}
	argTys := tysOf(args)
	if !argsMatch(fty, argTys) {
		c.diags.Add(diag.ErrFunctionArgsMismatch(n.Pos(), fty, fty.Params, argTys))
		return tast.TECall{Base: base(n.At, ast.InvalidTy), Callee: callee, Args: args}
	}
	return tast.TECall{Base: base(n.At, fty.Ret), Callee: callee, Args: args}
}

// typeSuperCall is `Call(Super, args)`: valid only inside a class that
// extends something, matching a constructor on the parent by exact
// parameter-type tuple.
func (c *Checker) typeSuperCall(n ast.Call) tast.TExpr {
	parent, ok := c.superPath()
	if !ok {
		c.diags.Add(diag.ErrUnresolvedSuper(n.Pos()))
		return tast.TESuperCall{Base: base(n.At, ast.InvalidTy), Args: c.typeExprs(n.Args)}
	}
	args := c.typeExprs(n.Args)
	argTys := tysOf(args)
	if _, ok := c.findConstructor(parent, argTys); !ok {
		c.diags.Add(diag.ErrNoMatchingConstr(n.Pos(), parent, argTys))
		return tast.TESuperCall{Base: base(n.At, ast.VoidTy), Parent: parent, Args: args}
	}
	return tast.TESuperCall{Base: base(n.At, ast.VoidTy), Parent: parent, Args: args}
}

// typeNew is the New rule: path must be declared, and a constructor on it
// must match the argument types exactly; the result always types to
// Path(path), matched or not, so a caller can keep typing around the
// error.
func (c *Checker) typeNew(n ast.New) tast.TExpr {
	args := c.typeExprs(n.Args)
	argTys := tysOf(args)

	if _, ok := c.table.Get(n.Path); !ok {
		c.diags.Add(diag.ErrUnresolvedPath(n.Pos(), n.Path))
		return tast.TENew{Base: base(n.At, ast.InvalidTy), Path: n.Path, Args: args}
	}
	if _, ok := c.findConstructor(n.Path, argTys); !ok {
		c.diags.Add(diag.ErrNoMatchingConstr(n.Pos(), n.Path, argTys))
	}
	return tast.TENew{Base: base(n.At, ast.TyPath{Path: n.Path}), Path: n.Path, Args: args}
}

// findConstructor scans path's own members (constructors are not
// inherited; super(...) is how a subclass reaches a parent's) for an
// MConstr whose parameter types exactly match argTys.
func (c *Checker) findConstructor(path ast.Path, argTys []ast.Ty) (ast.MemberDef, bool) {
	def, ok := c.table.Get(path)
	if !ok {
		return ast.MemberDef{}, false
	}
	for _, m := range def.Members {
		ctor, ok := m.Kind.(ast.MConstr)
		if !ok {
			continue
		}
		if paramsMatchExact(ctor.Params, argTys) {
			return m, true
		}
	}
	return ast.MemberDef{}, false
}

func paramsMatchExact(params []ast.Param, argTys []ast.Ty) bool {
	if len(params) != len(argTys) {
		return false
	}
	for i, p := range params {
		if !lattice.TyEqual(p.Type, argTys[i]) {
			return false
		}
	}
	return true
}

// argsMatch checks a call's argument types against a Func's declared
// params under its calling convention: Normal requires exact arity and
// pairwise equality; VarArgs requires at least the fixed prefix to match,
// with trailing args unchecked.
func argsMatch(fty ast.TyFunc, argTys []ast.Ty) bool {
	switch fty.Conv {
	case ast.VarArgs:
		if len(argTys) < len(fty.Params) {
			return false
		}
	default:
		if len(argTys) != len(fty.Params) {
			return false
		}
	}
	for i, p := range fty.Params {
		if !lattice.TyEqual(p, argTys[i]) {
			return false
		}
	}
	return true
}

// typeBinOp is the BinOp rule, including the L-value rule for assigning
// operators. Non-assigning arithmetic/relational operators share a single
// type-identity check; assigning operators re-derive the LHS's
// variability directly rather than re-typing it through the generic path,
// so a bad LHS is reported exactly once.
func (c *Checker) typeBinOp(n ast.BinOp) tast.TExpr {
	if ast.IsAssign(n.Op) {
		return c.typeAssign(n)
	}

	a := c.typeExpr(n.A)
	b := c.typeExpr(n.B)
	aty, bty := a.Ety(), b.Ety()

	switch n.Op {
	case "+", "-", "*", "/":
		if lattice.IsNumeric(aty) && lattice.IsNumeric(bty) && lattice.TyEqual(aty, bty) {
			return tast.TEBinOp{Base: base(n.At, aty), Op: n.Op, A: a, B: b}
		}
	case "==", "<":
		if lattice.TyEqual(aty, bty) {
			return tast.TEBinOp{Base: base(n.At, boolTy), Op: n.Op, A: a, B: b}
		}
	default:
		if lattice.TyEqual(aty, bty) {
			return tast.TEBinOp{Base: base(n.At, aty), Op: n.Op, A: a, B: b}
		}
	}
	c.diags.Add(diag.ErrCannotBinOp(n.Pos(), n.Op, aty, bty))
	return tast.TEBinOp{Base: base(n.At, ast.InvalidTy), Op: n.Op, A: a, B: b}
}

// typeAssign is the assigning half of BinOp, implementing the L-value
// rule directly: an Ident resolved to a Variable binding, or a Field whose
// resolved member is a Variable field. Any other LHS is InvalidLHS; a
// resolved but non-Variable target is CannotAssign, reported at the LHS's
// own position per the concrete scenario in the testable properties.
func (c *Checker) typeAssign(n ast.BinOp) tast.TExpr {
	lhsPos := n.A.Pos()
	lhs, variability, isLValue := c.typeLValue(n.A)
	rhs := c.typeExpr(n.B)

	if !isLValue {
		return tast.TEBinOp{Base: base(n.At, ast.InvalidTy), Op: n.Op, A: lhs, B: rhs}
	}
	if variability != ast.Variable {
		c.diags.Add(diag.ErrCannotAssign(lhsPos))
		return tast.TEBinOp{Base: base(n.At, ast.InvalidTy), Op: n.Op, A: lhs, B: rhs}
	}
	if !lattice.TyEqual(lhs.Ety(), rhs.Ety()) {
		c.diags.Add(diag.ErrCannotBinOp(n.Pos(), n.Op, lhs.Ety(), rhs.Ety()))
		return tast.TEBinOp{Base: base(n.At, ast.InvalidTy), Op: n.Op, A: lhs, B: rhs}
	}
	return tast.TEBinOp{Base: base(n.At, lhs.Ety()), Op: n.Op, A: lhs, B: rhs}
}

// typeLValue types an assignment target and reports whether it qualifies
// as an L-value, per 4.4's L-value rule. An Ident or Field that fails to
// resolve has already had its own specific error (UnresolvedIdent,
// UnresolvedField, ...) added by findVar/resolveField; this only adds
// InvalidLHS for a syntactically ineligible target.
func (c *Checker) typeLValue(e ast.Expr) (tast.TExpr, ast.Variability, bool) {
	switch v := e.(type) {
	case ast.Ident:
		b, ok := c.findVar(v.Name, v.Pos())
		if !ok {
			return tast.TEIdent{Base: base(v.At, ast.InvalidTy), Name: v.Name}, ast.Constant, false
		}
		return tast.TEIdent{Base: base(v.At, b.Ty), Name: v.Name}, b.Variability, true
	case ast.Field:
		obj := c.typeExpr(v.Obj)
		b, ok := c.resolveField(obj.Ety(), v.Name, v.Pos())
		if !ok {
			return tast.TEField{Base: base(v.At, ast.InvalidTy), Obj: obj, Name: v.Name}, ast.Constant, false
		}
		return tast.TEField{Base: base(v.At, b.Ty), Obj: obj, Name: v.Name}, b.Variability, true
	default:
		c.diags.Add(diag.ErrInvalidLHS(e.Pos()))
		return c.typeExpr(e), ast.Constant, false
	}
}

// typeUnOp is the UnOp rule: the result type equals the operand type when
// the operator fits it (numeric for +/-, Bool for !); otherwise a
// CannotBinOp-style error, per 4.4.
func (c *Checker) typeUnOp(n ast.UnOp) tast.TExpr {
	a := c.typeExpr(n.A)
	ty := a.Ety()

	var ok bool
	switch n.Op {
	case "!":
		ok = lattice.TyEqual(ty, boolTy)
	default:
		ok = lattice.IsNumeric(ty)
	}
	if !ok {
		c.diags.Add(diag.ErrCannotBinOp(n.Pos(), n.Op, ty, ty))
		return tast.TEUnOp{Base: base(n.At, ast.InvalidTy), Op: n.Op, A: a}
	}
	return tast.TEUnOp{Base: base(n.At, ty), Op: n.Op, A: a}
}
