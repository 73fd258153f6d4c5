package computations

import (
	"fmt"

	"github.com/gomlx/fedcomp/trace"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// noParameterKey is the bindings key of computations without a parameter.
const noParameterKey = "<none>"

// Bind returns the computation bound to the given parameter type (nil for no parameter).
//
// For polymorphic computations, the body is bound (traced for federated computations) the first time a
// parameter type is seen, and the bound computation is cached and reused for later binds with the same
// type. Concurrent first binds of one type are executed only once.
//
// Bound computations return themselves if parameter is assignable to their parameter type, and a
// *types.TypeMismatchError otherwise.
func (c *Computation) Bind(parameter types.Type) (*Computation, error) {
	if !c.IsPolymorphic() {
		if err := types.CheckAssignable(c.typ.Parameter, parameter); err != nil {
			return nil, errors.WithMessagef(err, "binding computation %q", c.name)
		}
		return c, nil
	}

	key := noParameterKey
	if !types.IsNil(parameter) {
		key = parameter.String()
	}
	if bound := c.cached(key); bound != nil {
		return bound, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if bound := c.cached(key); bound != nil {
			return bound, nil
		}
		bound, err := c.bind(parameter, false)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.bindings[key] = bound
		c.mu.Unlock()
		klog.V(1).Infof("Bound polymorphic %s computation %q to %s", c.kind, c.name, bound.typ)
		return bound, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Computation), nil
}

// cached returns the binding for key, or nil if there is none yet.
func (c *Computation) cached(key string) *Computation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindings[key]
}

// NumBindings returns the number of cached bindings of a polymorphic computation.
func (c *Computation) NumBindings() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bindings)
}

// bind creates a new computation with the body of c bound to parameter. Restrictions that only apply to
// declared parameter types are checked if declared is set.
func (c *Computation) bind(parameter types.Type, declared bool) (*Computation, error) {
	bound := &Computation{name: c.name, kind: c.kind, body: c.body}
	if err := bound.checkArity(parameter); err != nil {
		return nil, err
	}

	if c.kind == KindFederated {
		traced, err := bound.traceFederated(parameter)
		if err != nil {
			return nil, err
		}
		bound.traced = traced
		bound.typ = traced.TypeSignature().(*types.FunctionType)
		return bound, nil
	}

	if declared && types.ContainsFunction(parameter) {
		return nil, errors.WithStack(&DeclarationError{
			Computation: c.name,
			Reason:      fmt.Sprintf("local computations can not take function-typed parameters, got %s", parameter),
		})
	}
	result, err := c.body.resultType(parameter)
	if err != nil {
		return nil, err
	}
	if declared && types.ContainsSequence(parameter) && types.ContainsSequence(result) {
		return nil, errors.WithStack(&DeclarationError{
			Computation: c.name,
			Reason: fmt.Sprintf("local computations taking a sequence parameter (%s) can not return sequences (%s)",
				parameter, result),
		})
	}
	bound.typ = types.Function(parameter, result)
	return bound, nil
}

// checkArity checks that the body can take an argument of the parameter type: one parameter, or one
// parameter per field of a structure.
func (c *Computation) checkArity(parameter types.Type) error {
	arity := c.body.arity()
	var reason string
	switch {
	case types.IsNil(parameter):
		if arity != 0 {
			reason = fmt.Sprintf("function takes %d parameter(s), but no parameter type was given", arity)
		}
	case arity == 0:
		reason = fmt.Sprintf("function takes no parameters, but parameter type %s was given", parameter)
	case arity > 1:
		st, ok := parameter.(*types.StructType)
		if !ok || st.Len() != arity {
			reason = fmt.Sprintf("function takes %d parameters, but parameter type %s doesn't have %d fields",
				arity, parameter, arity)
		}
	}
	if reason != "" {
		return errors.WithStack(&DeclarationError{Computation: c.name, Reason: reason})
	}
	return nil
}

// parameterFromArgs returns the parameter type a polymorphic computation is bound to when called with
// arguments of the given types: one argument per parameter of the body (packed in an unnamed structure
// if more than one), or one structure argument with one field per parameter.
func (c *Computation) parameterFromArgs(argTypes []types.Type) (types.Type, error) {
	arity := c.body.arity()
	if len(argTypes) == arity {
		return types.ArgumentsType(argTypes...), nil
	}
	if len(argTypes) == 1 && arity > 1 {
		if st, ok := argTypes[0].(*types.StructType); ok && st.Len() == arity {
			return st, nil
		}
	}
	return nil, errors.WithStack(&types.TypeMismatchError{
		Source: types.ArgumentsType(argTypes...),
		Reason: fmt.Sprintf("polymorphic computation %q takes %d parameter(s), got %d argument(s)",
			c.name, arity, len(argTypes)),
	})
}

// traceFederated traces the body of a federated computation on placeholders of the parameter type.
func (c *Computation) traceFederated(parameter types.Type) (*trace.Computation, error) {
	b := trace.New(c.name)
	fn := b.NewFunction(c.name, parameter)
	var args []any
	switch arity := c.body.arity(); {
	case arity == 1:
		args = []any{fn.Parameter}
	case arity > 1:
		for i := range arity {
			field, err := fn.Parameter.Field(i)
			if err != nil {
				return nil, err
			}
			args = append(args, field)
		}
	}
	result, err := c.body.call(args)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to trace federated computation %q", c.name)
	}
	if result == nil {
		return nil, errors.Errorf("federated computation %q returned nil", c.name)
	}
	if err := fn.Return(result); err != nil {
		return nil, err
	}
	return b.Build()
}
