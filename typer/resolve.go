package typer

import (
	"molang/ast"
	"molang/diag"
	"molang/scope"
)

// memberLookup is the outcome of walking a class's extends chain looking
// for a name: found (with the path of the declaration that actually
// carries it -- which may be an ancestor), a dead path partway up the
// chain, or an exhausted chain.
type memberLookup struct {
	found     bool
	pathBad   bool
	badPath   ast.Path
	ownerPath ast.Path
	member    ast.MemberDef
}

// lookupMember implements resolve_field steps 2-5: read the TypeDef at
// path, look for name among its direct members (first match wins within a
// level, so subclasses shadow superclass members of the same name), and on
// a miss recurse into a Class declaration's extends path.
func (c *Checker) lookupMember(path ast.Path, name string) memberLookup {
	def, ok := c.table.Get(path)
	if !ok {
		return memberLookup{pathBad: true, badPath: path}
	}
	if m, ok := def.Member(name); ok {
		return memberLookup{found: true, ownerPath: path, member: m}
	}
	if class, ok := def.Kind.(ast.KindClass); ok && class.Extends != nil {
		return c.lookupMember(*class.Extends, name)
	}
	return memberLookup{}
}

// pathOf extracts the underlying path from a Path or Class type, the only
// two variants resolve_field and Field access operate on.
func pathOf(t ast.Ty) (ast.Path, bool) {
	switch v := t.(type) {
	case ast.TyPath:
		return v.Path, true
	case ast.TyClass:
		return v.Path, true
	default:
		return ast.Path{}, false
	}
}

// resolveField implements 4.4's resolve_field and member type extraction
// together: given the statically-known type of a receiver, find name on it
// (walking the extends chain) and return the (variability, type) pair a
// caller uses as ety. Errors are recorded on the collector; the second
// result reports only whether resolution failed, so callers can fall back
// to ast.InvalidTy without re-reporting.
func (c *Checker) resolveField(ty ast.Ty, name string, pos ast.Position) (scope.Binding, bool) {
	path, ok := pathOf(ty)
	if !ok {
		c.diags.Add(diag.ErrCannotField(pos, ty))
		return scope.Binding{}, false
	}
	res := c.lookupMember(path, name)
	switch {
	case res.pathBad:
		c.diags.Add(diag.ErrUnresolvedPath(pos, res.badPath))
		return scope.Binding{}, false
	case !res.found:
		c.diags.Add(diag.ErrUnresolvedField(pos, ty, name))
		return scope.Binding{}, false
	}
	return c.memberType(res.ownerPath, res.member)
}

// memberType is 4.4's "Member type extraction": it turns a raw MemberDef
// into the (variability, type) pair resolve_field and Ident resolution
// both need. A field without a declared type inherits its initializer's
// type; that requires typing the initializer, which runs with this_path
// set to the field's own declaring class, not whichever class triggered
// the lookup.
func (c *Checker) memberType(ownerPath ast.Path, m ast.MemberDef) (scope.Binding, bool) {
	switch k := m.Kind.(type) {
	case ast.MVar:
		if k.Type != nil {
			return scope.Binding{Variability: k.Variability, Ty: k.Type}, true
		}
		if k.Init != nil {
			savedThis := c.ctx.ThisPath
			c.ctx.ThisPath = &ownerPath
			c.scope.Push()
			tex := c.typeExpr(k.Init)
			c.scope.Pop()
			c.ctx.ThisPath = savedThis
			return scope.Binding{Variability: k.Variability, Ty: tex.Ety()}, true
		}
		c.diags.Add(diag.ErrUnresolvedFieldType(m.At, m.Name))
		return scope.Binding{}, false

	case ast.MFunc:
		conv := ast.Normal
		if m.IsVarArgs() {
			conv = ast.VarArgs
		}
		fty := ast.TyFunc{Params: paramTypes(k.Params), Ret: k.Ret, Conv: conv}
		return scope.Binding{Variability: ast.Constant, Ty: fty}, true

	case ast.MConstr:
		fty := ast.TyFunc{Params: paramTypes(k.Params), Ret: ast.VoidTy, Conv: ast.Normal}
		return scope.Binding{Variability: ast.Constant, Ty: fty}, true

	default:
		panic("typer: unreachable member kind")
	}
}

// findVar implements 4.3's find_var: scope stack, then implicit member
// resolution against this_path, then a bare top-level type name
// synthesized as a Class receiver.
func (c *Checker) findVar(name string, pos ast.Position) (scope.Binding, bool) {
	if b, ok := c.scope.Find(name); ok {
		return b, true
	}
	if c.ctx.ThisPath != nil {
		res := c.lookupMember(*c.ctx.ThisPath, name)
		if res.found {
			return c.memberType(res.ownerPath, res.member)
		}
	}
	if path, ok := c.table.Has(name); ok {
		return scope.Binding{Variability: ast.Constant, Ty: ast.TyClass{Path: path}}, true
	}
	c.diags.Add(diag.ErrUnresolvedIdent(pos, name))
	return scope.Binding{}, false
}
