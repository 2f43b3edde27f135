// Package pretty renders AST/TAST/diagnostic values for humans, the same
// job tawago's "typeinfo" CLI command hands to repr.Println: a deep,
// field-labeled dump good enough to eyeball a typed tree without writing
// a bespoke printer per node kind.
package pretty

import (
	"strings"

	"github.com/alecthomas/repr"
)

// Dump renders v as a multi-line, indented field dump, stable across
// calls for equal values -- repr walks the value by reflection, so two
// structurally-equal trees always render identically regardless of where
// their nodes happen to live in memory.
func Dump(v any) string {
	return repr.String(v, repr.Indent("  "), repr.OmitEmpty(true))
}

// Sprint renders a short single-line form, used for log lines that
// embed a value's shape without dumping the whole tree.
func Sprint(v any) string {
	s := repr.String(v, repr.OmitEmpty(true))
	return strings.Join(strings.Fields(s), " ")
}
