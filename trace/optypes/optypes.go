// Package optypes defines OpType and lists the statements a traced computation can hold.
package optypes

import "strings"

// OpType is an enum of the statements recorded while tracing a computation body.
type OpType int

//go:generate go tool enumer -type OpType optypes.go

const (
	Invalid OpType = iota

	// Constant holds a Go literal, a structure of literals or a computation.
	Constant

	// Selection picks one field of a structure value.
	Selection

	// Struct packs values into a structure value.
	Struct

	// Call applies a function-typed value to an (optional) argument.
	Call

	// Return marks the result of the traced function.
	Return

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

// ToText returns the name used for the op in the text rendering of a traced function.
func (op OpType) ToText() string {
	return strings.ToLower(op.String())
}
