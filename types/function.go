package types

import "fmt"

// FunctionType is the type of a computation: an optional parameter and a result.
//
// Multiple parameters are represented by a single StructType parameter.
type FunctionType struct {
	// Parameter is nil if the function takes no parameter.
	Parameter Type

	Result Type
}

// Function returns a function type. Use a nil parameter for functions without parameters.
func Function(parameter, result Type) *FunctionType {
	if IsNil(parameter) {
		parameter = nil
	}
	return &FunctionType{Parameter: parameter, Result: result}
}

func (*FunctionType) isType() {}

// Kind implements Type.
func (t *FunctionType) Kind() Kind { return KindFunction }

// HasParameter returns whether the function takes a parameter.
func (t *FunctionType) HasParameter() bool { return !IsNil(t.Parameter) }

// String implements Type. Functions without parameter render as "( -> result)".
func (t *FunctionType) String() string {
	return fmt.Sprintf("(%s -> %s)", render(t.Parameter), render(t.Result))
}
