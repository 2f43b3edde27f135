package ast

// Param is a single function or constructor parameter.
type Param struct {
	Name string
	Type Ty
}

// MemberMod is a single member modifier; MemberDef holds an unordered set
// of these.
type MemberMod string

const (
	Static  MemberMod = "static"
	Public  MemberMod = "public"
	Private MemberMod = "private"
	Extern  MemberMod = "extern"
)

// ModSet is an unordered set of member modifiers.
type ModSet map[MemberMod]bool

func NewModSet(mods ...MemberMod) ModSet {
	s := make(ModSet, len(mods))
	for _, m := range mods {
		s[m] = true
	}
	return s
}

func (s ModSet) Has(m MemberMod) bool { return s[m] }

// MemberKind is the closed tagged union of member bodies: a field, a
// method or a constructor.
type MemberKind interface {
	memberKindNode()
}

type (
	// MVar is a field. Type is nil when the annotation is omitted; Init is
	// nil when there is no initializer. At least one of the two must be
	// present by the time the member is typed.
	MVar struct {
		Variability Variability
		Type        Ty
		Init        Expr
	}

	// MFunc is a method.
	MFunc struct {
		Params []Param
		Ret    Ty
		Body   *Block // nil for `extern static` declarations without a body
	}

	// MConstr is a constructor, named `new` in source and always returning
	// Void.
	MConstr struct {
		Params []Param
		Body   *Block
	}
)

func (MVar) memberKindNode()    {}
func (MFunc) memberKindNode()   {}
func (MConstr) memberKindNode() {}

// MemberDef is one field, method or constructor declared inside a class or
// struct.
type MemberDef struct {
	Name string
	Kind MemberKind
	Mods ModSet
	Atts map[string]Const
	At   Position
}

func (m MemberDef) Pos() Position { return m.At }

// LinkName returns the LinkName("...") attribute value, if present.
func (m MemberDef) LinkName() (string, bool) {
	c, ok := m.Atts["LinkName"]
	if !ok {
		return "", false
	}
	s, ok := c.(ConstString)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// CallConvAttr returns the CallConv("...") attribute value, if present.
func (m MemberDef) CallConvAttr() (string, bool) {
	c, ok := m.Atts["CallConv"]
	if !ok {
		return "", false
	}
	s, ok := c.(ConstString)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// IsVarArgs reports whether the member carries CallConv("vararg").
func (m MemberDef) IsVarArgs() bool {
	v, ok := m.CallConvAttr()
	return ok && v == "vararg"
}

// TypeDefKind is the closed tagged union of Class vs. Struct declarations.
type TypeDefKind interface {
	typeDefKindNode()
}

type (
	KindClass struct {
		Extends    *Path
		Implements []Path
	}
	KindStruct struct{}
)

func (KindClass) typeDefKindNode()  {}
func (KindStruct) typeDefKindNode() {}

// TypeDef is a top-level class or struct declaration.
type TypeDef struct {
	PathV   Path
	Kind    TypeDefKind
	Mods    ModSet
	Members []MemberDef
	At      Position
}

func (t TypeDef) Path() Path      { return t.PathV }
func (t TypeDef) Pos() Position   { return t.At }
func (t TypeDef) IsStatic() bool  { return t.Mods.Has(Static) }

// Member looks up a member declared directly on this type by name, in
// declaration order (first match wins).
func (t TypeDef) Member(name string) (MemberDef, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}
	return MemberDef{}, false
}

// Module is a single compilation unit: a package path, the paths it
// imports, and the type declarations it defines.
type Module struct {
	Imports []Path
	Defs    []TypeDef
	Package Path
}
