package trace

import (
	"fmt"
	"io"

	"github.com/gomlx/fedcomp/types"
)

// Value represents a value in a traced function, like `%0` or `%arg`.
// It has an id, a type and an optional descriptive name that can contain letters, digits and underscore.
type Value struct {
	id   int
	typ  types.Type
	name string // Optional name composed of letters, digits and underscore
	fn   *Function
}

// TypeSignature implements types.Typed.
func (v *Value) TypeSignature() types.Type {
	return v.typ
}

// Function returns the function that owns the value.
func (v *Value) Function() *Function {
	return v.fn
}

// Call traces a call of the value, which must be of a function type, with the given arguments.
// See Function.Apply.
func (v *Value) Call(args ...any) (*Value, error) {
	return v.fn.Apply(v, args...)
}

// Field traces the selection of the field at index of a structure value.
func (v *Value) Field(index int) (*Value, error) {
	return v.fn.Select(v, index)
}

// Attr traces the selection of the field named name of a structure value.
func (v *Value) Attr(name string) (*Value, error) {
	return v.fn.SelectByName(v, name)
}

// Write writes the value in text format to the given writer.
func (v *Value) Write(w io.Writer) error {
	if v.name != "" {
		_, err := fmt.Fprintf(w, "%%%s", v.name)
		return err
	}
	_, err := fmt.Fprintf(w, "%%%d", v.id)
	return err
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	if v.name != "" {
		return "%" + v.name
	}
	return fmt.Sprintf("%%%d", v.id)
}
