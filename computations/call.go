package computations

import (
	"github.com/gomlx/fedcomp/structure"
	"github.com/gomlx/fedcomp/trace"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
)

// Call the computation with the given arguments, and return its result.
//
// Arguments are matched to the parameter type with types.MatchArguments: a computation without parameter
// takes no arguments, and a computation with a structure parameter takes either one structure argument or
// one argument per field. A *types.TypeMismatchError is returned if they don't fit, before anything is run.
// Polymorphic computations are first bound to the type of the arguments, see Bind.
//
// If any of the arguments is a *trace.Value, the computation is being called from the body of a federated
// computation being traced: the call is recorded in the trace, and the resulting *trace.Value is returned.
func (c *Computation) Call(args ...any) (any, error) {
	fn, err := trace.FunctionOf(args...)
	if err != nil {
		return nil, errors.WithMessagef(err, "calling computation %q", c.name)
	}
	if fn != nil {
		return c.traceCall(fn, args)
	}

	canonical := make([]any, len(args))
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		canonical[i] = types.Canonical(arg)
		argTypes[i], err = types.Infer(canonical[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "calling computation %q, argument #%d", c.name, i)
		}
	}
	bound, err := c.bindFor(argTypes)
	if err != nil {
		return nil, err
	}
	pack, err := types.MatchArguments(bound.typ.Parameter, argTypes...)
	if err != nil {
		return nil, errors.WithMessagef(err, "calling computation %q of type %s", bound.name, bound.typ)
	}
	switch {
	case pack:
		return bound.execute([]any{structure.New(canonical...)})
	case len(canonical) == 1:
		return bound.execute(canonical)
	}
	return bound.execute(nil)
}

// bindFor returns the computation bound to arguments of the given types.
func (c *Computation) bindFor(argTypes []types.Type) (*Computation, error) {
	if !c.IsPolymorphic() {
		return c, nil
	}
	parameter, err := c.parameterFromArgs(argTypes)
	if err != nil {
		return nil, err
	}
	return c.Bind(parameter)
}

// execute the bound computation with its argument (args is empty if it takes no parameter), and check the
// type of the result.
func (c *Computation) execute(args []any) (any, error) {
	var result any
	var err error
	if c.kind == KindFederated {
		result, err = c.traced.Execute(args...)
	} else {
		var in []any
		if len(args) > 0 {
			in, err = c.body.spread(args[0])
			if err != nil {
				return nil, errors.WithMessagef(err, "calling computation %q", c.name)
			}
		}
		result, err = c.body.call(in)
		if err == nil {
			result, err = normalizeResult(result, c.typ.Result)
		}
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "computation %q failed", c.name)
	}

	t, err := types.Infer(result)
	if err != nil {
		return nil, errors.WithMessagef(err, "computation %q returned an invalid value", c.name)
	}
	if !types.IsAssignableFrom(c.typ.Result, t) {
		return nil, errors.Errorf("computation %q of type %s returned a value of type %s", c.name, c.typ, t)
	}
	return result, nil
}

// traceCall records the call of the computation in the traced function fn.
func (c *Computation) traceCall(fn *trace.Function, args []any) (any, error) {
	values := make([]any, len(args))
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		v, err := fn.Lift(arg)
		if err != nil {
			return nil, errors.WithMessagef(err, "tracing call of computation %q, argument #%d", c.name, i)
		}
		values[i] = v
		argTypes[i] = v.TypeSignature()
	}
	bound, err := c.bindFor(argTypes)
	if err != nil {
		return nil, err
	}
	callee, err := fn.NewConstant(bound)
	if err != nil {
		return nil, err
	}
	result, err := callee.Call(values...)
	if err != nil {
		return nil, errors.WithMessagef(err, "tracing call of computation %q", c.name)
	}
	return result, nil
}
