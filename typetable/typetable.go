// Package typetable implements the Type Table: a process-local mapping
// from fully-qualified type path to its untyped declaration. It is
// populated eagerly before any member body is typed, and is read-only for
// the remainder of the run.
package typetable

import "molang/ast"

// Table maps a type path to its declaration. Construct with New; the zero
// value has no map to index into.
type Table struct {
	defs map[string]ast.TypeDef
	// order preserves first-insertion order, used when a caller wants a
	// deterministic walk over all declared types (e.g. to index members).
	order []string
}

func New() *Table {
	return &Table{defs: make(map[string]ast.TypeDef)}
}

// Index inserts every top-level type declaration of a module. Per the
// source's own behavior, a duplicate path silently keeps the first
// declaration; the caller can use Duplicates to surface a diagnostic for
// the ones that lost.
func (t *Table) Index(mod *ast.Module) (duplicates []ast.TypeDef) {
	for _, def := range mod.Defs {
		key := def.Path().String()
		if _, exists := t.defs[key]; exists {
			duplicates = append(duplicates, def)
			continue
		}
		t.defs[key] = def
		t.order = append(t.order, key)
	}
	return duplicates
}

// Get looks up a path's declaration. The second result is false when the
// path was never indexed (UnresolvedPath at the call site).
func (t *Table) Get(p ast.Path) (ast.TypeDef, bool) {
	def, ok := t.defs[p.String()]
	return def, ok
}

// Has reports whether a bare top-level name (empty package) is a declared
// type; used to synthesize a Class(path) value for a type used as a
// static receiver.
func (t *Table) Has(name string) (ast.Path, bool) {
	p := ast.NewPath(name)
	_, ok := t.defs[p.String()]
	return p, ok
}

// All returns every indexed declaration in the order it was first
// inserted, for callers that need a deterministic walk (e.g. codegen).
func (t *Table) All() []ast.TypeDef {
	defs := make([]ast.TypeDef, 0, len(t.order))
	for _, key := range t.order {
		defs = append(defs, t.defs[key])
	}
	return defs
}
