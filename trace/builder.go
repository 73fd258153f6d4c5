package trace

import (
	"strings"

	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Builder is used to trace a computation.
// See New.
type Builder struct {
	name string

	// functions holds all the functions created in the builder's scope.
	functions []*Function
}

// New creates a new Builder object holding a computation in construction.
//
// Create its main function (named after the builder) with NewFunction, trace the body on its parameter,
// and then call the method Build, which returns a Computation that can be executed.
func New(name string) *Builder {
	return &Builder{
		name: name,
	}
}

// Name of the computation being built.
func (b *Builder) Name() string {
	return b.name
}

// NewFunction creates a new function and adds it to the program.
// The parameter type can be nil, if the function takes no parameter.
func (b *Builder) NewFunction(name string, parameter types.Type) *Function {
	fn := &Function{
		Name: name,
	}
	if !types.IsNil(parameter) {
		fn.Parameter = &Value{
			typ:  parameter,
			name: "arg",
			fn:   fn,
		}
	}
	b.functions = append(b.functions, fn)
	return fn
}

// Build builds the Computation with the traced functions. All functions must have returned, and one of them
// must be named after the builder: it is the entry point of the computation.
func (b *Builder) Build() (*Computation, error) {
	var sb strings.Builder
	var main *Function
	for i, fn := range b.functions {
		if fn.Name == b.name {
			main = fn
		}
		if fn.result == nil {
			return nil, errors.Errorf("function %q has no return statement", fn.Name)
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if err := fn.Write(&sb); err != nil {
			return nil, errors.Wrapf(err, "failed to render function %q", fn.Name)
		}
	}
	if main == nil {
		return nil, errors.Errorf("program must have a function named %q", b.name)
	}
	text := sb.String()
	klog.V(2).Infof("Traced computation %q:\n%s", b.name, text)
	return &Computation{
		Name: b.name,
		Text: text,
		main: main,
	}, nil
}
