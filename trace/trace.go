// Package trace records the body of a federated computation as a list of typed statements, instead of
// running it.
//
// A body is traced by calling it with *Value arguments: every operation on them (selecting a field, packing
// a structure, calling a function-typed value) appends a Statement to the Function being traced, and the
// type of each new Value is inferred on the spot. Type errors are therefore reported while tracing, before
// anything is executed.
//
// Once the function has a return statement, Builder.Build renders it to a human-readable text form and
// returns a Computation, which can be executed on concrete arguments by replaying its statements.
//
// Example of the text form of a traced function:
//
//	func @foo(%arg: <f=(int32 -> int32),x=int32>) -> (int32) {
//	  %0 = "selection"(%arg) {index = 0} : (<f=(int32 -> int32),x=int32>) -> ((int32 -> int32))
//	  %1 = "selection"(%arg) {index = 1} : (<f=(int32 -> int32),x=int32>) -> (int32)
//	  %2 = "call"(%0, %1) : ((int32 -> int32), int32) -> (int32)
//	  "return"(%2) : (int32)
//	}
package trace

import (
	"github.com/gomlx/fedcomp/structure"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
)

// Callable is implemented by values that can be called, either from a traced body (as a constant) or when
// executing a traced Computation. Computations implement it.
type Callable interface {
	types.Typed

	// Call the function with the given arguments and return its result.
	Call(args ...any) (any, error)
}

// FunctionOf returns the Function that owns the traced values found in args (also searched inside
// structures), or nil if there are none.
//
// It returns an error if values of different functions are mixed.
func FunctionOf(args ...any) (*Function, error) {
	var fn *Function
	var visit func(x any) error
	visit = func(x any) error {
		switch v := x.(type) {
		case *Value:
			if fn == nil {
				fn = v.fn
			} else if fn != v.fn {
				return errors.Errorf("traced values of functions %q and %q can not be mixed", fn.Name, v.fn.Name)
			}
		case *structure.Struct:
			for _, value := range v.Values() {
				if err := visit(value); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, arg := range args {
		if err := visit(arg); err != nil {
			return nil, err
		}
	}
	return fn, nil
}
