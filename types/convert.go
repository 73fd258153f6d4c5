package types

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/fedcomp/dtypes"
	"github.com/pkg/errors"
)

// ToType converts a type expression to a Type. Accepted expressions:
//
//   - dtypes.DType: the scalar tensor type of the dtype.
//   - Type: returned as is.
//   - string: parsed with Parse, e.g. "<f=(int32 -> int32),x=int32>".
//   - []any: a tuple of expressions, collapsed into a StructType. Elements can be Field values, whose Type is
//     used as is, to name the fields.
//   - []Field: a StructType with the given fields.
func ToType(expr any) (Type, error) {
	switch e := expr.(type) {
	case nil:
		return nil, errors.New("types.ToType: nil type expression")
	case dtypes.DType:
		if e == dtypes.Invalid || !e.IsADType() {
			return nil, errors.Errorf("types.ToType: invalid dtype %s", e)
		}
		return Scalar(e), nil
	case Type:
		if IsNil(e) {
			return nil, errors.New("types.ToType: nil type expression")
		}
		return e, nil
	case string:
		return Parse(e)
	case Field:
		return nil, errors.Errorf("types.ToType: field %q can only be used within a tuple", e.Name)
	case []Field:
		return StructOrError(e...)
	case []any:
		return TupleToType(e...)
	}
	return nil, errors.Errorf("types.ToType: unsupported type expression of Go type %T: %v", expr, expr)
}

// TupleToType converts a list of expressions (see ToType) to a StructType, one field per expression.
// Field expressions name the corresponding field.
func TupleToType(exprs ...any) (*StructType, error) {
	fields := make([]Field, len(exprs))
	for i, expr := range exprs {
		if field, ok := expr.(Field); ok {
			if IsNil(field.Type) {
				return nil, errors.Errorf("types.ToType: field %q has no type", field.Name)
			}
			fields[i] = field
			continue
		}
		t, err := ToType(expr)
		if err != nil {
			return nil, errors.WithMessagef(err, "element #%d of tuple", i)
		}
		fields[i] = Field{Type: t}
	}
	return StructOrError(fields...)
}

// MustToType is the same as ToType, but it panics on error.
func MustToType(expr any) Type {
	t, err := ToType(expr)
	if err != nil {
		exceptions.Panicf("%+v", err)
	}
	return t
}
