// Package scope implements the Scope Stack & Context: a stack of
// name->(variability,type) frames plus the ambient flags the typer reads
// and sets while walking a member body.
package scope

import "molang/ast"

// Binding is what a name resolves to inside a scope frame: whether it was
// declared var or val, and its type.
type Binding struct {
	Variability ast.Variability
	Ty          ast.Ty
}

// frame is one level of the scope stack, holding the bindings introduced
// by an enclosing block or parameter list.
type frame struct {
	vars map[string]Binding
}

func newFrame() *frame {
	return &frame{vars: make(map[string]Binding)}
}

// Stack is a stack of scope frames. Names are resolved by searching
// frames top-of-stack downward; inner frames shadow outer ones. The zero
// value is empty and ready to use.
type Stack struct {
	frames []*frame
}

// Push pushes a fresh empty frame.
func (s *Stack) Push() {
	s.frames = append(s.frames, newFrame())
}

// Pop discards the top frame. Calling Pop on an empty stack is a logic
// error in the caller; every Push on a function/constructor body must be
// paired with exactly one Pop on all exit paths, including error
// propagation, so callers should prefer `defer s.Pop()` right after Push.
func (s *Stack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Define binds name in the current (innermost) frame.
func (s *Stack) Define(name string, b Binding) {
	s.frames[len(s.frames)-1].vars[name] = b
}

// Find searches frames top-of-stack downward and returns the first hit.
func (s *Stack) Find(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].vars[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Depth reports how many frames are currently pushed.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Context holds the ambient flags the typer threads through a member body:
// the enclosing type's path, whether the current member is static, whether
// it's a constructor, and whether a Return has already been typed.
type Context struct {
	ThisPath      *ast.Path
	InStatic      bool
	InConstructor bool
	HasReturned   bool
}

// EnterMember resets the per-member flags the way the typer does before
// typing each member: in_static per the member's modifiers, in_constructor
// false, has_returned false.
func (c *Context) EnterMember(static bool) {
	c.InStatic = static
	c.InConstructor = false
	c.HasReturned = false
}
