package palette

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed color expression.
type ParseError struct {
	Expr   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid color expression %q: %s", e.Expr, e.Reason)
}

// UnknownHueError reports a $hue reference to a hue that is not declared.
type UnknownHueError struct {
	Name string
}

func (e *UnknownHueError) Error() string {
	return fmt.Sprintf("unknown hue %q", e.Name)
}

// UnknownReferenceError reports a reference to a color that is not declared
// anywhere in the colors block. Detected before evaluation.
type UnknownReferenceError struct {
	Name string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown color reference %q", e.Name)
}

// CycleError reports a dependency cycle among color entries. Path lists the
// participating color names in cycle order.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic color reference: %s", strings.Join(e.Path, " -> "))
}

// UnresolvedError reports an expression referencing a color that is not yet
// in the table. After successful dependency resolution this can no longer
// happen for user input; seeing it there indicates a resolver defect.
type UnresolvedError struct {
	Name string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("color %q referenced before it was resolved", e.Name)
}
