// Package lattice implements the closed universe of types and the
// structural predicates the typer builds on: numeric-ness, structural
// equality and castability. Cycles in the inheritance chain are bounded by
// a visited set along the recursion path, never by the number of known
// classes, so a self-referencing `extends` can't hang the checker.
package lattice

import (
	"molang/ast"
	"molang/typetable"
)

// IsNumeric is true for Int, Float and Short, false for everything else
// including Bool.
func IsNumeric(t ast.Ty) bool {
	p, ok := t.(ast.TyPrim)
	if !ok {
		return false
	}
	switch p.Kind {
	case ast.Int, ast.Float, ast.Short:
		return true
	default:
		return false
	}
}

// TyEqual is structural equality: paths segment-wise, tuples elementwise,
// functions param-wise plus return type and calling convention.
func TyEqual(a, b ast.Ty) bool {
	switch av := a.(type) {
	case ast.TyPrim:
		bv, ok := b.(ast.TyPrim)
		return ok && av.Kind == bv.Kind
	case ast.TyPath:
		bv, ok := b.(ast.TyPath)
		return ok && av.Path.Equal(bv.Path)
	case ast.TyClass:
		bv, ok := b.(ast.TyClass)
		return ok && av.Path.Equal(bv.Path)
	case ast.TyFunc:
		bv, ok := b.(ast.TyFunc)
		if !ok || av.Conv != bv.Conv || len(av.Params) != len(bv.Params) {
			return false
		}
		if !TyEqual(av.Ret, bv.Ret) {
			return false
		}
		for i := range av.Params {
			if !TyEqual(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	case ast.TyTuple:
		bv, ok := b.(ast.TyTuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !TyEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CanCast reports whether source can be cast to target.
//
//   - Both sides numeric primitives: always true.
//   - source = Path(P), target = Path(Q): true when Q is P's direct
//     extends, one of P's implements, or (recursively) reachable by
//     walking up P's extends chain.
//   - Anything else: false.
func CanCast(table *typetable.Table, source, target ast.Ty) bool {
	if IsNumeric(source) && IsNumeric(target) {
		return true
	}
	sp, ok := source.(ast.TyPath)
	if !ok {
		return false
	}
	tp, ok := target.(ast.TyPath)
	if !ok {
		return false
	}
	return canCastPath(table, sp.Path, tp.Path, map[string]bool{})
}

func canCastPath(table *typetable.Table, source, target ast.Path, visited map[string]bool) bool {
	key := source.String()
	if visited[key] {
		return false
	}
	visited[key] = true

	def, ok := table.Get(source)
	if !ok {
		return false
	}
	class, ok := def.Kind.(ast.KindClass)
	if !ok {
		return false
	}
	if class.Extends != nil && class.Extends.Equal(target) {
		return true
	}
	for _, iface := range class.Implements {
		if iface.Equal(target) {
			return true
		}
	}
	if class.Extends == nil {
		return false
	}
	return canCastPath(table, *class.Extends, target, visited)
}
