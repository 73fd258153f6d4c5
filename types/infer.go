package types

import (
	"math"
	"reflect"

	"github.com/gomlx/fedcomp/dtypes"
	"github.com/gomlx/fedcomp/structure"
	"github.com/pkg/errors"
)

// Infer returns the type of a concrete value:
//
//   - Values implementing Typed (sequences, computations, traced values) report their own type signature.
//   - *structure.Struct values become a StructType with the same field names.
//   - Go scalars map to scalar tensors of the corresponding dtype. Go's int is taken as an untyped literal:
//     it is Int32 if the value fits in 32 bits, Int64 otherwise.
//   - Slices and arrays (possibly nested, but rectangular) of scalars become tensors with dimensions.
func Infer(value any) (Type, error) {
	switch v := value.(type) {
	case nil:
		return nil, errors.New("cannot infer the type of a nil value")
	case Typed:
		t := v.TypeSignature()
		if IsNil(t) {
			return nil, errors.Errorf("value %v (Go type %T) has no type signature yet: polymorphic computations "+
				"must be bound before being used as values", v, v)
		}
		return t, nil
	case *structure.Struct:
		fields := make([]Field, v.Len())
		for i := range fields {
			field := v.Field(i)
			t, err := Infer(field.Value)
			if err != nil {
				return nil, errors.WithMessagef(err, "field #%d (%q) of structure", i, field.Name)
			}
			fields[i] = Field{Name: field.Name, Type: t}
		}
		return StructOrError(fields...)
	case Type:
		return nil, errors.Errorf("a type (%s) is not a value", v)
	case int:
		return Scalar(intDType(int64(v))), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return inferTensor(rv)
	}
	dtype := dtypes.FromGoType(rv.Type())
	if dtype == dtypes.Invalid {
		return nil, errors.Errorf("cannot infer the type of value %v of Go type %T", value, value)
	}
	return Scalar(dtype), nil
}

// intDType is the dtype of an untyped Go int literal.
func intDType(v int64) dtypes.DType {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return dtypes.Int32
	}
	return dtypes.Int64
}

// inferTensor infers the tensor type of a possibly nested slice or array.
func inferTensor(rv reflect.Value) (Type, error) {
	var dims []int
	elemType := rv.Type()
	for elemType.Kind() == reflect.Slice || elemType.Kind() == reflect.Array {
		elemType = elemType.Elem()
	}
	dtype := dtypes.FromGoType(elemType)
	if dtype == dtypes.Invalid {
		return nil, errors.Errorf("cannot infer the type of a tensor with elements of Go type %s", elemType)
	}
	if elemType.Kind() == reflect.Int {
		dtype = dtypes.Int32
	}

	var walk func(v reflect.Value, axis int) error
	walk = func(v reflect.Value, axis int) error {
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			if v.Kind() == reflect.Int && intDType(v.Int()) == dtypes.Int64 {
				dtype = dtypes.Int64
			}
			return nil
		}
		if axis == len(dims) {
			dims = append(dims, v.Len())
		} else if dims[axis] != v.Len() {
			return errors.Errorf("tensor is not rectangular: axis %d has lengths %d and %d", axis, dims[axis], v.Len())
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), axis+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(rv, 0); err != nil {
		return nil, err
	}
	// Empty slices still count their nested axes.
	for len(dims) < depth(rv.Type()) {
		dims = append(dims, 0)
	}
	return TensorOrError(dtype, dims...)
}

func depth(t reflect.Type) int {
	d := 0
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		d++
		t = t.Elem()
	}
	return d
}

// Canonical converts Go's untyped int values (including inside slices and structures) to the Go type of the
// dtype Infer assigns them, so results of computations always hold the Go type of their dtype.
// Other values are returned unchanged.
func Canonical(value any) any {
	switch v := value.(type) {
	case int:
		if intDType(int64(v)) == dtypes.Int32 {
			return int32(v)
		}
		return int64(v)
	case []int:
		t, err := Infer(v)
		if err != nil {
			return v
		}
		if t.(*TensorType).DType == dtypes.Int32 {
			converted := make([]int32, len(v))
			for i, x := range v {
				converted[i] = int32(x)
			}
			return converted
		}
		converted := make([]int64, len(v))
		for i, x := range v {
			converted[i] = int64(x)
		}
		return converted
	case *structure.Struct:
		canonical, _ := v.Map(func(_ int, value any) (any, error) { return Canonical(value), nil })
		return canonical
	}
	return value
}
