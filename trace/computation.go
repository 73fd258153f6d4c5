package trace

import (
	"github.com/gomlx/fedcomp/structure"
	"github.com/gomlx/fedcomp/trace/optypes"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Computation holds a traced computation, and its rendered text.
// It is created with Builder.Build.
type Computation struct {
	Name string
	Text string

	main *Function
}

// Main returns the entry point function of the computation.
func (c *Computation) Main() *Function {
	return c.main
}

// TypeSignature implements types.Typed, it returns a *types.FunctionType.
func (c *Computation) TypeSignature() types.Type {
	return c.main.TypeSignature()
}

// Execute runs the computation by replaying its statements on concrete values.
//
// It takes exactly one argument if the computation has a parameter (arguments must have been packed
// already), and none otherwise. Function-typed values must be Callable when called.
func (c *Computation) Execute(args ...any) (any, error) {
	fn := c.main
	env := make(map[*Value]any, len(fn.values)+1)
	if fn.Parameter != nil {
		if len(args) != 1 {
			return nil, errors.Errorf("computation %q takes one argument, got %d", c.Name, len(args))
		}
		env[fn.Parameter] = args[0]
	} else if len(args) != 0 {
		return nil, errors.Errorf("computation %q takes no arguments, got %d", c.Name, len(args))
	}

	for _, stmt := range fn.Statements {
		inputs := make([]any, len(stmt.Inputs))
		for i, input := range stmt.Inputs {
			value, found := env[input]
			if !found {
				return nil, errors.Errorf("computation %q: value %s used before it was defined", c.Name, input)
			}
			inputs[i] = value
		}
		if stmt.OpType == optypes.Return {
			return inputs[0], nil
		}
		output, err := execute(stmt, inputs)
		if err != nil {
			return nil, errors.WithMessagef(err, "computation %q, executing %s", c.Name, stmt.Outputs[0])
		}
		env[stmt.Outputs[0]] = output
	}
	return nil, errors.Errorf("computation %q has no return statement", c.Name)
}

// execute one statement (other than the return) given the concrete values of its inputs.
func execute(stmt *Statement, inputs []any) (any, error) {
	switch stmt.OpType {
	case optypes.Constant:
		return stmt.Attributes["value"], nil

	case optypes.Selection:
		index := stmt.Attributes["index"].(int)
		s, ok := inputs[0].(*structure.Struct)
		if !ok {
			return nil, errors.Errorf("selection of field #%d from non-structure value %T", index, inputs[0])
		}
		if index >= s.Len() {
			return nil, errors.Errorf("selection of field #%d from structure %s with %d fields", index, s, s.Len())
		}
		return s.Value(index), nil

	case optypes.Struct:
		names, _ := stmt.Attributes["names"].([]string)
		fields := make([]structure.Field, len(inputs))
		for i, input := range inputs {
			fields[i].Value = input
			if names != nil {
				fields[i].Name = names[i]
			}
		}
		return structure.Named(fields...)

	case optypes.Call:
		callee, ok := inputs[0].(Callable)
		if !ok {
			return nil, errors.Errorf("called value of type %T is not callable", inputs[0])
		}
		if klog.V(3).Enabled() {
			klog.Infof("calling %s with %v", callee.TypeSignature(), inputs[1:])
		}
		return callee.Call(inputs[1:]...)
	}
	return nil, errors.Errorf("unknown op type %s", stmt.OpType)
}
