// Package loader builds an ast.Module from a structured YAML fixture. It
// stands in for the parser, which is out of scope for the semantic core
// (see the package doc in ast): instead of a lexer/parser for the Source
// Language's surface syntax, test fixtures and the CLI driver describe a
// module directly in the AST's own shape, the same way tawago's "Tawa
// Module Information" file describes a module's package metadata in YAML.
package loader

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"molang/ast"
)

// yamlPos is a single line/column pair; fixtures give one point per node,
// used for both Position.Min and Position.Max since the YAML shape has no
// notion of a token's end column.
type yamlPos struct {
	Line int `yaml:"line"`
	Col  int `yaml:"col"`
}

type yamlPath struct {
	Pkg  []string `yaml:"pkg,omitempty"`
	Name string   `yaml:"name"`
}

func (p yamlPath) toAST() ast.Path {
	return ast.Path{Pkg: p.Pkg, Name: p.Name}
}

type yamlTy struct {
	Kind   string    `yaml:"kind"`
	Prim   string    `yaml:"prim,omitempty"`
	Path   *yamlPath `yaml:"path,omitempty"`
	Params []yamlTy  `yaml:"params,omitempty"`
	Ret    *yamlTy   `yaml:"ret,omitempty"`
	Conv   string    `yaml:"conv,omitempty"`
	Elems  []yamlTy  `yaml:"elems,omitempty"`
}

type yamlConst struct {
	Kind  string  `yaml:"kind"`
	Int   int64   `yaml:"int,omitempty"`
	Float float64 `yaml:"float,omitempty"`
	Str   string  `yaml:"str,omitempty"`
	Bool  bool    `yaml:"bool,omitempty"`
}

type yamlExpr struct {
	Kind string   `yaml:"kind"`
	Pos  yamlPos  `yaml:"pos"`
	Name string   `yaml:"name,omitempty"`

	Value *yamlConst `yaml:"value,omitempty"`
	Obj   *yamlExpr  `yaml:"obj,omitempty"`
	Idx   *yamlExpr  `yaml:"idx,omitempty"`
	Op    string     `yaml:"op,omitempty"`
	A     *yamlExpr  `yaml:"a,omitempty"`
	B     *yamlExpr  `yaml:"b,omitempty"`
	Exprs []yamlExpr `yaml:"exprs,omitempty"`

	Callee *yamlExpr  `yaml:"callee,omitempty"`
	Args   []yamlExpr `yaml:"args,omitempty"`

	E    *yamlExpr `yaml:"e,omitempty"`
	Cond *yamlExpr `yaml:"cond,omitempty"`
	Then *yamlExpr `yaml:"then,omitempty"`
	Else *yamlExpr `yaml:"else,omitempty"`
	Body *yamlExpr `yaml:"body,omitempty"`

	Variability string    `yaml:"variability,omitempty"`
	Type        *yamlTy   `yaml:"type,omitempty"`
	Init        *yamlExpr `yaml:"init,omitempty"`

	Path *yamlPath `yaml:"path,omitempty"`
}

type yamlParam struct {
	Name string `yaml:"name"`
	Type yamlTy `yaml:"type"`
}

type yamlMember struct {
	Name        string               `yaml:"name"`
	Kind        string               `yaml:"kind"`
	Variability string               `yaml:"variability,omitempty"`
	Type        *yamlTy              `yaml:"type,omitempty"`
	Init        *yamlExpr            `yaml:"init,omitempty"`
	Params      []yamlParam          `yaml:"params,omitempty"`
	Ret         *yamlTy              `yaml:"ret,omitempty"`
	Body        *yamlExpr            `yaml:"body,omitempty"`
	Mods        []string             `yaml:"mods,omitempty"`
	Atts        map[string]yamlConst `yaml:"atts,omitempty"`
	Pos         yamlPos              `yaml:"pos"`
}

type yamlTypeDef struct {
	Path       yamlPath     `yaml:"path"`
	Kind       string       `yaml:"kind"`
	Extends    *yamlPath    `yaml:"extends,omitempty"`
	Implements []yamlPath   `yaml:"implements,omitempty"`
	Mods       []string     `yaml:"mods,omitempty"`
	Members    []yamlMember `yaml:"members,omitempty"`
	Pos        yamlPos      `yaml:"pos"`
}

type yamlModule struct {
	Package yamlPath      `yaml:"package"`
	Imports []yamlPath    `yaml:"imports,omitempty"`
	Defs    []yamlTypeDef `yaml:"defs"`
}

// Load decodes a YAML module fixture from r into an ast.Module. file names
// the source for positions attached to every node.
func Load(r io.Reader, file string) (*ast.Module, error) {
	var raw yamlModule
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("loader: decode %s: %w", file, err)
	}
	return convertModule(raw, file)
}
