// Package types defines the type signatures of computations and values: tensors, sequences, functions and
// structures.
//
// Types are immutable once created, and render to a canonical textual form:
//
//	int32              scalar tensor
//	float32[2,?]       tensor with dimensions (? is unknown)
//	int64*             sequence of int64
//	(int32 -> bool)    function; ( -> int32) if it takes no parameter
//	<f=int32,bool>     structure, with optionally named fields
//
// The central predicate is IsAssignableFrom, which decides whether a value of a source type can be used
// where a target type is expected.
package types

import (
	"github.com/gomlx/fedcomp/dtypes"
)

// Kind of a Type, one per variant.
type Kind int

//go:generate go tool enumer -type Kind -trimprefix Kind types.go

const (
	KindInvalid Kind = iota
	KindTensor
	KindSequence
	KindFunction
	KindStruct
)

// Type is a type signature. It is implemented by *TensorType, *SequenceType, *FunctionType and *StructType.
type Type interface {
	// Kind of the type variant.
	Kind() Kind

	// String returns the canonical textual representation of the type.
	String() string

	isType()
}

// Typed is implemented by values that carry their own type signature, like sequences, computations and
// traced values.
//
// Infer uses it before falling back to Go reflection.
type Typed interface {
	TypeSignature() Type
}

// Commonly used scalar types.
var (
	Bool    = Scalar(dtypes.Bool)
	Int32   = Scalar(dtypes.Int32)
	Int64   = Scalar(dtypes.Int64)
	Float32 = Scalar(dtypes.Float32)
	Float64 = Scalar(dtypes.Float64)
	String  = Scalar(dtypes.String)
)

// IsNil returns whether t is nil, including a typed nil pointer stored in the interface.
func IsNil(t Type) bool {
	if t == nil {
		return true
	}
	switch tt := t.(type) {
	case *TensorType:
		return tt == nil
	case *SequenceType:
		return tt == nil
	case *FunctionType:
		return tt == nil
	case *StructType:
		return tt == nil
	}
	return false
}

// render is String for a possibly absent type.
func render(t Type) string {
	if IsNil(t) {
		return ""
	}
	return t.String()
}

// ContainsSequence returns whether t is or has, anywhere in its tree, a sequence type.
func ContainsSequence(t Type) bool {
	return contains(t, KindSequence)
}

// ContainsFunction returns whether t is or has, anywhere in its tree, a function type.
func ContainsFunction(t Type) bool {
	return contains(t, KindFunction)
}

func contains(t Type, kind Kind) bool {
	if IsNil(t) {
		return false
	}
	if t.Kind() == kind {
		return true
	}
	switch tt := t.(type) {
	case *SequenceType:
		return contains(tt.Element, kind)
	case *FunctionType:
		return contains(tt.Parameter, kind) || contains(tt.Result, kind)
	case *StructType:
		for _, field := range tt.Fields {
			if contains(field.Type, kind) {
				return true
			}
		}
	}
	return false
}
