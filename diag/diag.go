// Package diag implements the error reporting surface of the semantic
// core: a single Error variant carrying a stable Kind and a position, and
// a Collector that accumulates them. The core keeps checking past the
// first failure where it can, so a single run surfaces everything wrong
// with a unit instead of one error at a time.
package diag

import (
	"fmt"
	"strings"

	"molang/ast"
)

// Kind is a stable identifier for one of the error taxonomy's variants.
// Kinds never change name across releases; human messages are rendered by
// Render, a single formatter.
type Kind string

const (
	UnresolvedIdent       Kind = "UnresolvedIdent"
	UnresolvedPath        Kind = "UnresolvedPath"
	UnresolvedThis        Kind = "UnresolvedThis"
	UnresolvedSuper       Kind = "UnresolvedSuper"
	UnresolvedField       Kind = "UnresolvedField"
	CannotField           Kind = "CannotField"
	UnresolvedFieldType   Kind = "UnresolvedFieldType"
	CannotBinOp           Kind = "CannotBinOp"
	CannotAssign          Kind = "CannotAssign"
	InvalidLHS            Kind = "InvalidLHS"
	CannotCall            Kind = "CannotCall"
	CannotIndex           Kind = "CannotIndex"
	CannotCastTo          Kind = "CannotCastTo"
	Expected              Kind = "Expected"
	NoMatchingConstr      Kind = "NoMatchingConstr"
	FunctionArgsMismatch  Kind = "FunctionArgsMismatch"
	NoReturn              Kind = "NoReturn"
	VoidVar               Kind = "VoidVar"
)

// Error is the single error variant of the semantic core. Message is the
// rendered human text for Kind; Kind itself is what callers should branch
// on.
type Error struct {
	Kind    Kind
	Pos     ast.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func newErr(kind Kind, pos ast.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func ErrUnresolvedIdent(pos ast.Position, name string) *Error {
	return newErr(UnresolvedIdent, pos, "identifier %q needs to be declared before it gets used", name)
}

func ErrUnresolvedPath(pos ast.Position, path ast.Path) *Error {
	return newErr(UnresolvedPath, pos, "type %v needs to be declared before it gets used", path)
}

func ErrUnresolvedThis(pos ast.Position) *Error {
	return newErr(UnresolvedThis, pos, "this used outside of an enclosing class")
}

func ErrUnresolvedSuper(pos ast.Position) *Error {
	return newErr(UnresolvedSuper, pos, "super used without an extends clause")
}

func ErrUnresolvedField(pos ast.Position, ty ast.Ty, name string) *Error {
	return newErr(UnresolvedField, pos, "%v has no member %q, even after walking its extends chain", ty, name)
}

func ErrCannotField(pos ast.Position, ty ast.Ty) *Error {
	return newErr(CannotField, pos, "can't access a member on %v, it isn't a class or struct type", ty)
}

func ErrUnresolvedFieldType(pos ast.Position, name string) *Error {
	return newErr(UnresolvedFieldType, pos, "field %q needs either a type annotation or an initializer", name)
}

func ErrCannotBinOp(pos ast.Position, op string, a, b ast.Ty) *Error {
	return newErr(CannotBinOp, pos, "operator %s isn't defined for %v and %v", op, a, b)
}

func ErrCannotAssign(pos ast.Position) *Error {
	return newErr(CannotAssign, pos, "assignment target is a val, not a var")
}

func ErrInvalidLHS(pos ast.Position) *Error {
	return newErr(InvalidLHS, pos, "assignment target must be an identifier or field access")
}

func ErrCannotCall(pos ast.Position, ty ast.Ty) *Error {
	return newErr(CannotCall, pos, "%v isn't callable", ty)
}

func ErrCannotIndex(pos ast.Position) *Error {
	return newErr(CannotIndex, pos, "can only index a tuple with a constant integer literal in range")
}

func ErrCannotCastTo(pos ast.Position, from, to ast.Ty) *Error {
	return newErr(CannotCastTo, pos, "can't cast %v to %v", from, to)
}

func ErrExpected(pos ast.Position, wanted, got ast.Ty) *Error {
	return newErr(Expected, pos, "expected %v, got %v", wanted, got)
}

func ErrNoMatchingConstr(pos ast.Position, path ast.Path, argTys []ast.Ty) *Error {
	return newErr(NoMatchingConstr, pos, "no constructor on %v matches argument types %s", path, joinTys(argTys))
}

func ErrFunctionArgsMismatch(pos ast.Position, callee ast.Ty, wanted, got []ast.Ty) *Error {
	return newErr(FunctionArgsMismatch, pos, "call to %v expected args %s, got %s", callee, joinTys(wanted), joinTys(got))
}

func ErrNoReturn(pos ast.Position) *Error {
	return newErr(NoReturn, pos, "function body doesn't always return a value of the declared return type")
}

func ErrVoidVar(pos ast.Position) *Error {
	return newErr(VoidVar, pos, "variable or field can't have type void")
}

func joinTys(tys []ast.Ty) string {
	parts := make([]string, len(tys))
	for i, t := range tys {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Collector accumulates errors over the course of typing one compilation
// unit. The typer keeps walking after every error it records, so one run
// reports as much as it can; the index phase records nothing here.
type Collector struct {
	Errors []*Error
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Add(err *Error) {
	c.Errors = append(c.Errors, err)
}

func (c *Collector) HasErrors() bool {
	return len(c.Errors) > 0
}

// Render renders a single error for a terminal: a dim position header,
// the message, and -- when a source line is available -- a caret pointing
// at the offending column.
func Render(err *Error, color bool, sourceLine string) string {
	var b strings.Builder
	if color {
		fmt.Fprintf(&b, "\033[1;90m%s:\033[0m \033[1;31m%s\033[0m\n", err.Pos, err.Kind)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", err.Pos, err.Kind)
	}
	if sourceLine != "" {
		b.WriteString("    " + sourceLine + "\n")
		col := err.Pos.Min.Col - 1
		if col < 0 {
			col = 0
		}
		b.WriteString("    " + strings.Repeat(" ", col) + "^\n")
	}
	b.WriteString(err.Message)
	return b.String()
}
