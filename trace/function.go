package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/gomlx/fedcomp/structure"
	"github.com/gomlx/fedcomp/trace/optypes"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
)

// Function represents a traced function: an optional parameter, and the statements recorded so far.
// It is created with Builder.NewFunction.
type Function struct {
	// Name of the function. It should not include the "@" prefix.
	Name string

	// Parameter of the function, rendered as `%arg`. It is nil if the function takes no parameter.
	Parameter *Value

	// Statements in the function body.
	Statements []*Statement

	// result is set by Return.
	result *Value

	// values holds all the values (e.g. %0, %1) created in the function's scope.
	values []*Value
}

// newValue creates a new unique value within the function's scope.
func (f *Function) newValue(t types.Type) *Value {
	v := &Value{
		id:  len(f.values),
		typ: t,
		fn:  f,
	}
	f.values = append(f.values, v)
	return v
}

// checkOpen returns an error if the function already returned: statements can no longer be added.
func (f *Function) checkOpen() error {
	if f.result != nil {
		return errors.Errorf("function %q already has a return statement", f.Name)
	}
	return nil
}

// checkValue returns an error if v is nil or belongs to another function.
func (f *Function) checkValue(v *Value) error {
	if v == nil {
		return errors.Errorf("nil value used in function %q", f.Name)
	}
	if v.fn != f {
		return errors.Errorf("value %s of function %q used in function %q", v, v.fn.Name, f.Name)
	}
	return nil
}

// addStatement appends a statement with one output of type t, and returns the output.
func (f *Function) addStatement(opType optypes.OpType, t types.Type, attributes map[string]any, inputs ...*Value) *Value {
	stmt := &Statement{
		OpType:     opType,
		Inputs:     inputs,
		Attributes: attributes,
		Outputs:    []*Value{f.newValue(t)},
	}
	f.Statements = append(f.Statements, stmt)
	return stmt.Outputs[0]
}

// NewConstant creates a new constant statement and returns the resulting value.
//
// The value can be a Go literal (scalars, slices and arrays), a *structure.Struct of literals, or any
// types.Typed value, like a Callable or a sequence. Its type is inferred with types.Infer.
func (f *Function) NewConstant(value any) (*Value, error) {
	if err := f.checkOpen(); err != nil {
		return nil, err
	}
	if _, ok := value.(*Value); ok {
		return nil, errors.Errorf("traced value %s can not be used as a constant", value)
	}
	value = types.Canonical(value)
	t, err := types.Infer(value)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to infer type of constant value %T", value)
	}
	return f.addStatement(optypes.Constant, t, map[string]any{"value": value}), nil
}

// Select picks the field at index of the structure value v.
func (f *Function) Select(v *Value, index int) (*Value, error) {
	if err := f.checkOpen(); err != nil {
		return nil, err
	}
	if err := f.checkValue(v); err != nil {
		return nil, err
	}
	st, ok := v.typ.(*types.StructType)
	if !ok {
		return nil, errors.Errorf("cannot select field #%d of %s: it has non-structure type %s", index, v, v.typ)
	}
	if index < 0 || index >= st.Len() {
		return nil, errors.Errorf("field index %d out of range for %s of type %s", index, v, st)
	}
	return f.addStatement(optypes.Selection, st.Fields[index].Type, map[string]any{"index": index}, v), nil
}

// SelectByName picks the field named name of the structure value v.
func (f *Function) SelectByName(v *Value, name string) (*Value, error) {
	if err := f.checkValue(v); err != nil {
		return nil, err
	}
	st, ok := v.typ.(*types.StructType)
	if !ok {
		return nil, errors.Errorf("cannot select field %q of %s: it has non-structure type %s", name, v, v.typ)
	}
	index, found := st.Index(name)
	if !found {
		return nil, errors.Errorf("%s of type %s has no field named %q", v, st, name)
	}
	return f.Select(v, index)
}

// Pack creates a structure value from values. Names can be nil (unnamed structure), or must have one
// name per value, where empty names leave the field unnamed.
func (f *Function) Pack(names []string, values ...*Value) (*Value, error) {
	if err := f.checkOpen(); err != nil {
		return nil, err
	}
	if names != nil && len(names) != len(values) {
		return nil, errors.Errorf("Pack got %d names for %d values", len(names), len(values))
	}
	fields := make([]types.Field, len(values))
	hasNames := false
	for i, v := range values {
		if err := f.checkValue(v); err != nil {
			return nil, err
		}
		fields[i].Type = v.typ
		if names != nil && names[i] != "" {
			fields[i].Name = names[i]
			hasNames = true
		}
	}
	st, err := types.StructOrError(fields...)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to pack values")
	}
	var attributes map[string]any
	if hasNames {
		attributes = map[string]any{"names": names}
	}
	return f.addStatement(optypes.Struct, st, attributes, values...), nil
}

// Lift converts x to a value of the function: traced values are returned as is, structures are packed
// (lifting each of their fields) and anything else becomes a constant.
func (f *Function) Lift(x any) (*Value, error) {
	switch v := x.(type) {
	case *Value:
		if err := f.checkValue(v); err != nil {
			return nil, err
		}
		return v, nil
	case *structure.Struct:
		values := make([]*Value, v.Len())
		for i := range values {
			var err error
			values[i], err = f.Lift(v.Value(i))
			if err != nil {
				return nil, errors.WithMessagef(err, "field #%d", i)
			}
		}
		return f.Pack(v.Names(), values...)
	}
	return f.NewConstant(x)
}

// Apply traces the call of callee, a value of function type, with the given arguments.
//
// Arguments are lifted (see Lift) and matched to the parameter of the callee with types.MatchArguments:
// two or more arguments are packed into an unnamed structure. A *types.TypeMismatchError is returned if
// they don't fit the parameter.
func (f *Function) Apply(callee *Value, args ...any) (*Value, error) {
	if err := f.checkOpen(); err != nil {
		return nil, err
	}
	if err := f.checkValue(callee); err != nil {
		return nil, err
	}
	ft, ok := callee.typ.(*types.FunctionType)
	if !ok {
		return nil, errors.Errorf("cannot call %s: it has non-function type %s", callee, callee.typ)
	}
	lifted := make([]*Value, len(args))
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		var err error
		lifted[i], err = f.Lift(arg)
		if err != nil {
			return nil, errors.WithMessagef(err, "calling %s, argument #%d", callee, i)
		}
		argTypes[i] = lifted[i].typ
	}
	pack, err := types.MatchArguments(ft.Parameter, argTypes...)
	if err != nil {
		return nil, errors.WithMessagef(err, "calling %s of type %s", callee, ft)
	}
	inputs := []*Value{callee}
	if pack {
		packed, err := f.Pack(nil, lifted...)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, packed)
	} else if len(lifted) == 1 {
		inputs = append(inputs, lifted[0])
	}
	return f.addStatement(optypes.Call, ft.Result, nil, inputs...), nil
}

// Return adds the return statement of the function, with x (lifted with Lift) as its result.
// No other statements can be added after it.
func (f *Function) Return(x any) error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	v, err := f.Lift(x)
	if err != nil {
		return errors.WithMessagef(err, "failed to return from function %q", f.Name)
	}
	f.Statements = append(f.Statements, &Statement{
		OpType: optypes.Return,
		Inputs: []*Value{v},
	})
	f.result = v
	return nil
}

// Result returns the value returned by the function, or nil if Return was not called yet.
func (f *Function) Result() *Value {
	return f.result
}

// TypeSignature implements types.Typed. It returns nil until Return is called.
func (f *Function) TypeSignature() types.Type {
	if f.result == nil {
		return nil
	}
	var parameter types.Type
	if f.Parameter != nil {
		parameter = f.Parameter.typ
	}
	return types.Function(parameter, f.result.typ)
}

// Write writes the function in text format to the given writer.
func (f *Function) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}

	w("func @%s(", f.Name)
	if f.Parameter != nil {
		if err == nil {
			err = f.Parameter.Write(writer)
		}
		w(": %s", f.Parameter.typ)
	}
	w(") -> (")
	if f.result != nil {
		w("%s", f.result.typ)
	}
	w(") {\n")
	for _, stmt := range f.Statements {
		if err == nil {
			err = stmt.Write(writer)
		}
		w("\n")
	}
	w("}")
	return err
}

// String implements fmt.Stringer.
func (f *Function) String() string {
	var sb strings.Builder
	_ = f.Write(&sb)
	return sb.String()
}
