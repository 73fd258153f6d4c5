package types

import (
	"slices"

	"github.com/pkg/errors"
)

// IsAssignableFrom reports whether a value of type source can be used where target is expected.
//
// Rules, per variant:
//
//   - Tensors: same dtype, same rank, and each target dimension is either unknown or equal to the source's.
//   - Sequences: the target element type is assignable from the source element type.
//   - Functions: either both take no parameter, or the source parameter is assignable from the target
//     parameter (contravariant); and the target result is assignable from the source result.
//   - Structures: same number of fields. For each position, if both fields are named the names must match,
//     otherwise fields are matched by position only. Field types must be assignable.
//
// Values of different kinds are never assignable. A nil type is only assignable from a nil type.
func IsAssignableFrom(target, source Type) bool {
	if IsNil(target) || IsNil(source) {
		return IsNil(target) && IsNil(source)
	}
	switch t := target.(type) {
	case *TensorType:
		s, ok := source.(*TensorType)
		if !ok || t.DType != s.DType || t.Rank() != s.Rank() {
			return false
		}
		for axis, dim := range t.Dimensions {
			if dim != UnknownDim && dim != s.Dimensions[axis] {
				return false
			}
		}
		return true

	case *SequenceType:
		s, ok := source.(*SequenceType)
		return ok && IsAssignableFrom(t.Element, s.Element)

	case *FunctionType:
		s, ok := source.(*FunctionType)
		if !ok || t.HasParameter() != s.HasParameter() {
			return false
		}
		if t.HasParameter() && !IsAssignableFrom(s.Parameter, t.Parameter) {
			return false
		}
		return IsAssignableFrom(t.Result, s.Result)

	case *StructType:
		s, ok := source.(*StructType)
		if !ok || t.Len() != s.Len() {
			return false
		}
		for i, targetField := range t.Fields {
			sourceField := s.Fields[i]
			if targetField.Name != "" && sourceField.Name != "" && targetField.Name != sourceField.Name {
				return false
			}
			if !IsAssignableFrom(targetField.Type, sourceField.Type) {
				return false
			}
		}
		return true
	}
	return false
}

// CheckAssignable returns a *TypeMismatchError (with stack) if target is not assignable from source.
func CheckAssignable(target, source Type) error {
	if IsAssignableFrom(target, source) {
		return nil
	}
	return errors.WithStack(&TypeMismatchError{Target: target, Source: source})
}

// Equal returns whether a and b are structurally identical, including field names.
func Equal(a, b Type) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	switch ta := a.(type) {
	case *TensorType:
		tb, ok := b.(*TensorType)
		return ok && ta.DType == tb.DType && slices.Equal(ta.Dimensions, tb.Dimensions)
	case *SequenceType:
		tb, ok := b.(*SequenceType)
		return ok && Equal(ta.Element, tb.Element)
	case *FunctionType:
		tb, ok := b.(*FunctionType)
		return ok && Equal(ta.Parameter, tb.Parameter) && Equal(ta.Result, tb.Result)
	case *StructType:
		tb, ok := b.(*StructType)
		if !ok || ta.Len() != tb.Len() {
			return false
		}
		for i, field := range ta.Fields {
			if field.Name != tb.Fields[i].Name || !Equal(field.Type, tb.Fields[i].Type) {
				return false
			}
		}
		return true
	}
	return false
}
