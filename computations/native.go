package computations

import (
	"math"
	"reflect"

	"github.com/gomlx/fedcomp/dtypes"
	"github.com/gomlx/fedcomp/sequence"
	"github.com/gomlx/fedcomp/structure"
	"github.com/gomlx/fedcomp/trace"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	valueType = reflect.TypeOf((*trace.Value)(nil))
)

// native is the Go function wrapped by a computation: a fixed number of parameters, and results R or
// (R, error).
type native struct {
	fn reflect.Value
	t  reflect.Type
}

func newNative(fn any) (*native, error) {
	if fn == nil {
		return nil, errors.New("no function given")
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, errors.Errorf("a function is required, got %T", fn)
	}
	if v.IsNil() {
		return nil, errors.Errorf("nil function of type %s given", t)
	}
	if t.IsVariadic() {
		return nil, errors.Errorf("variadic functions (%s) are not supported", t)
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return nil, errors.Errorf("the second result of %s must be an error", t)
		}
	default:
		return nil, errors.Errorf("function %s must return one value, or a value and an error", t)
	}
	return &native{fn: v, t: t}, nil
}

// arity is the number of parameters of the function.
func (n *native) arity() int {
	return n.t.NumIn()
}

// spread converts the argument of a computation to the arguments of the function: functions with more
// than one parameter take the fields of a structure argument.
func (n *native) spread(arg any) ([]any, error) {
	switch arity := n.arity(); arity {
	case 0:
		return nil, nil
	case 1:
		return []any{arg}, nil
	default:
		s, ok := arg.(*structure.Struct)
		if !ok || s.Len() != arity {
			return nil, errors.Errorf("function %s requires a structure argument with %d fields, got %T", n.t, arity, arg)
		}
		return s.Values(), nil
	}
}

// call the function with args, converted to its parameter types. Panics are returned as errors.
func (n *native) call(args []any) (result any, err error) {
	if len(args) != n.arity() {
		return nil, errors.Errorf("function %s called with %d arguments", n.t, len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i], err = convert(arg, n.t.In(i))
		if err != nil {
			return nil, errors.WithMessagef(err, "argument #%d of function %s", i, n.t)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrapf(e, "panic while running function %s", n.t)
				return
			}
			err = errors.Errorf("panic while running function %s: %v", n.t, r)
		}
	}()
	out := n.fn.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	if isNil(out[0]) {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// isNil returns whether v is a nil pointer, interface, slice, map or function.
func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return v.IsNil()
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Float64) || k == reflect.Complex64 || k == reflect.Complex128
}

// convert value to the Go type t. Besides assignable values, numbers (and slices of numbers) are converted
// between numeric types: e.g. an int32 argument can be given to an int parameter.
func convert(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, errors.Errorf("nil can not be used as %s", t)
	}
	v := reflect.ValueOf(value)
	return convertValue(v, t)
}

func convertValue(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		return v.Convert(t), nil
	}
	if v.Kind() == reflect.Slice && t.Kind() == reflect.Slice {
		converted := reflect.MakeSlice(t, v.Len(), v.Len())
		for i := range v.Len() {
			element, err := convertValue(v.Index(i), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			converted.Index(i).Set(element)
		}
		return converted, nil
	}
	return reflect.Value{}, errors.Errorf("value of type %s can not be used as %s", v.Type(), t)
}

// staticResult returns the result type of the function if it can be told from its Go result type alone, that
// is for Go types with a dtype. Go's int is taken as Int32, like untyped int values (see types.Infer), and
// uint as Uint64.
func (n *native) staticResult() types.Type {
	t := n.t.Out(0)
	if t.Kind() == reflect.Int {
		return types.Int32
	}
	dtype := dtypes.FromGoType(t)
	if dtype == dtypes.Invalid {
		return nil
	}
	return types.Scalar(dtype)
}

// resultType returns the result type of a local body taking a parameter of the given type (nil for none).
// If it can't be told statically (results of type any, structures or sequences), the body is run once with
// placeholder arguments (see placeholder).
func (n *native) resultType(parameter types.Type) (types.Type, error) {
	if t := n.staticResult(); t != nil {
		return t, nil
	}
	var args []any
	if !types.IsNil(parameter) {
		arg, err := placeholder(parameter)
		if err != nil {
			return nil, err
		}
		args, err = n.spread(arg)
		if err != nil {
			return nil, err
		}
	}
	result, err := n.call(args)
	if err != nil {
		return nil, errors.WithMessagef(err, "cannot determine the result type of function %s: it failed when "+
			"run on placeholder arguments, use a Go result type with a dtype (e.g. int32 instead of any)", n.t)
	}
	t, err := types.Infer(types.Canonical(result))
	if err != nil {
		return nil, errors.WithMessagef(err, "cannot determine the result type of function %s from its result "+
			"on placeholder arguments, use a Go result type with a dtype (e.g. int32 instead of any)", n.t)
	}
	return t, nil
}

// placeholder returns a zero value of type t: zeros for scalars, slices with the known dimensions (unknown
// dimensions are empty), empty sequences and structures of placeholders.
func placeholder(t types.Type) (any, error) {
	switch tt := t.(type) {
	case *types.TensorType:
		goType := tt.DType.GoType()
		if goType == nil {
			return nil, errors.Errorf("no Go type for dtype %s", tt.DType)
		}
		if tt.IsScalar() {
			return reflect.Zero(goType).Interface(), nil
		}
		sliceType := goType
		for range tt.Dimensions {
			sliceType = reflect.SliceOf(sliceType)
		}
		return zeroSlice(sliceType, tt.Dimensions).Interface(), nil
	case *types.SequenceType:
		return sequence.Empty(tt.Element), nil
	case *types.StructType:
		fields := make([]structure.Field, tt.Len())
		for i, field := range tt.Fields {
			value, err := placeholder(field.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = structure.Field{Name: field.Name, Value: value}
		}
		return structure.Named(fields...)
	}
	return nil, errors.Errorf("no placeholder value for type %s", t)
}

func zeroSlice(t reflect.Type, dims []int) reflect.Value {
	n := max(dims[0], 0)
	s := reflect.MakeSlice(t, n, n)
	if len(dims) > 1 {
		for i := range n {
			s.Index(i).Set(zeroSlice(t.Elem(), dims[1:]))
		}
	}
	return s
}

// normalizeResult converts the result of a local body to its canonical Go type (see types.Canonical). Go int
// and uint results are converted to the dtype of the expected scalar result, failing if they don't fit.
func normalizeResult(result any, expected types.Type) (any, error) {
	tensor, ok := expected.(*types.TensorType)
	if !ok || !tensor.IsScalar() {
		return types.Canonical(result), nil
	}
	switch v := result.(type) {
	case int:
		switch tensor.DType {
		case dtypes.Int32:
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, errors.Errorf("result %d overflows the result type %s", v, tensor)
			}
			return int32(v), nil
		case dtypes.Int64:
			return int64(v), nil
		}
	case uint:
		if tensor.DType == dtypes.Uint64 {
			return uint64(v), nil
		}
	}
	return types.Canonical(result), nil
}
