// Package typer implements the Expression/Member Typer: the recursive
// checker that turns an ast.Module into a tast.Module, the heart of the
// semantic core. It owns the single TypeContext the rest of the core is
// built around -- a Type Table, a Scope Stack, and the ambient Context
// flags -- threaded explicitly through one Checker value, never as
// package-level state.
package typer

import (
	"molang/ast"
	"molang/diag"
	"molang/lattice"
	"molang/scope"
	"molang/tast"
	"molang/typetable"
)

// Checker is the TypeContext: the Type Table, the Scope Stack, the
// ambient flags, and the error collector for one compilation unit. The
// zero value is not usable; construct with New.
type Checker struct {
	table *typetable.Table
	scope scope.Stack
	ctx   scope.Context
	diags *diag.Collector
}

// New returns a ready Checker with a fresh, empty Type Table.
func New() *Checker {
	return &Checker{
		table: typetable.New(),
		diags: diag.NewCollector(),
	}
}

// Duplicates reports the type declarations dropped by the index phase
// because an earlier declaration already claimed their path. Callers that
// want a diagnostic for this (the source stays silent; see DESIGN.md) can
// walk this slice themselves -- it intentionally isn't folded into the
// Kind taxonomy of package diag.
type Duplicates = []ast.TypeDef

// CheckModule types an entire module: it indexes every top-level type
// declaration first, so intra-module references resolve regardless of
// declaration order, then types each definition in module order. It
// returns the typed module (best-effort; still populated even when errors
// were collected, so a caller can keep walking) together with the
// duplicate declarations the index phase dropped and the error collector.
func CheckModule(mod *ast.Module) (*tast.Module, Duplicates, *diag.Collector) {
	c := New()
	dups := c.table.Index(mod)

	out := &tast.Module{
		Imports: mod.Imports,
		Package: mod.Package,
		Defs:    make([]tast.TypeDef, 0, len(mod.Defs)),
	}
	for _, def := range mod.Defs {
		out.Defs = append(out.Defs, c.typeTypeDef(def))
	}
	return out, dups, c.diags
}

// typeTypeDef types every member of one declaration. Per 4.4's
// type-definition typing rule: this_path is set to the declaration's own
// path for the duration, so This/Super and implicit-member Ident lookups
// inside its bodies resolve against it.
func (c *Checker) typeTypeDef(def ast.TypeDef) tast.TypeDef {
	path := def.Path()
	savedThis := c.ctx.ThisPath
	c.ctx.ThisPath = &path
	defer func() { c.ctx.ThisPath = savedThis }()

	out := tast.TypeDef{
		PathV:   def.PathV,
		Kind:    def.Kind,
		Mods:    def.Mods,
		At:      def.At,
		Members: make([]tast.TMember, 0, len(def.Members)),
	}
	for _, m := range def.Members {
		out.Members = append(out.Members, c.typeMember(m))
	}
	return out
}

// typeMember types one member body per 4.4's member-typing rule: flags
// reset before each member, a func/constructor body gets its own scope
// frame popped on every exit path, and a func's body is checked for
// NoReturn when its tail type disagrees with the declared return type and
// no explicit Return fired. this_path is already set by typeTypeDef for
// the duration of the enclosing declaration.
func (c *Checker) typeMember(m ast.MemberDef) tast.TMember {
	c.ctx.EnterMember(m.Mods.Has(ast.Static))

	switch k := m.Kind.(type) {
	case ast.MFunc:
		conv := ast.Normal
		if m.IsVarArgs() {
			conv = ast.VarArgs
		}
		fty := ast.TyFunc{Params: paramTypes(k.Params), Ret: k.Ret, Conv: conv}

		var body *tast.TEBlock
		if k.Body != nil {
			c.scope.Push()
			c.bindParams(k.Params)
			b := c.typeExpr(*k.Body).(tast.TEBlock)
			if !lattice.TyEqual(b.Ety(), k.Ret) && !c.ctx.HasReturned {
				c.diags.Add(diag.ErrNoReturn(k.Body.Pos()))
			}
			c.scope.Pop()
			body = &b
		}
		return tast.TMFunc{NameV: m.Name, Ty: fty, Body: body, Mods: m.Mods, At: m.At}

	case ast.MConstr:
		fty := ast.TyFunc{Params: paramTypes(k.Params), Ret: ast.VoidTy, Conv: ast.Normal}
		var body *tast.TEBlock
		if k.Body != nil {
			c.scope.Push()
			c.ctx.InConstructor = true
			c.bindParams(k.Params)
			b := c.typeExpr(*k.Body).(tast.TEBlock)
			c.scope.Pop()
			body = &b
		}
		return tast.TMConstr{NameV: m.Name, Ty: fty, Body: body, Mods: m.Mods, At: m.At}

	case ast.MVar:
		switch {
		case k.Type != nil && k.Init == nil:
			return tast.TMVar{NameV: m.Name, Variability: k.Variability, Ty: k.Type, Mods: m.Mods, At: m.At}
		case k.Init != nil:
			tex := c.typeExpr(k.Init)
			ty := tex.Ety()
			if k.Type != nil && !lattice.TyEqual(k.Type, ty) {
				c.diags.Add(diag.ErrExpected(k.Init.Pos(), k.Type, ty))
			}
			return tast.TMVar{NameV: m.Name, Variability: k.Variability, Ty: ty, Init: tex, Mods: m.Mods, At: m.At}
		default:
			c.diags.Add(diag.ErrUnresolvedFieldType(m.At, m.Name))
			return tast.TMVar{NameV: m.Name, Variability: k.Variability, Ty: ast.InvalidTy, Mods: m.Mods, At: m.At}
		}

	default:
		panic("typer: unreachable member kind")
	}
}

func (c *Checker) bindParams(params []ast.Param) {
	for _, p := range params {
		c.scope.Define(p.Name, scope.Binding{Variability: ast.Constant, Ty: p.Type})
	}
}

func paramTypes(params []ast.Param) []ast.Ty {
	tys := make([]ast.Ty, len(params))
	for i, p := range params {
		tys[i] = p.Type
	}
	return tys
}
