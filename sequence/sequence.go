// Package sequence implements Sequence, a typed stream of elements that can be passed between computations
// and folded with Reduce inside a computation body.
//
// It plays the role of an external data source (a dataset): elements are produced lazily by an iterator, and
// can be traversed any number of times.
package sequence

import (
	"fmt"
	"iter"

	"github.com/gomlx/fedcomp/dtypes"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
)

// Sequence is an ordered stream of elements of the same type. Its type signature renders as "<element>*".
type Sequence struct {
	element types.Type
	all     iter.Seq[any]
}

// New creates a Sequence with elements of the given type, produced by all.
// Elements are not checked, see FromSlice for a checked version.
func New(element types.Type, all iter.Seq[any]) *Sequence {
	return &Sequence{element: element, all: all}
}

// Empty returns a sequence with no elements of the given type.
func Empty(element types.Type) *Sequence {
	return New(element, func(yield func(any) bool) {})
}

// FromSlice creates a Sequence over values, which must all be assignable to the element type.
// Values are converted with types.Canonical.
func FromSlice(element types.Type, values []any) (*Sequence, error) {
	canonical := make([]any, len(values))
	for i, value := range values {
		value = types.Canonical(value)
		t, err := types.Infer(value)
		if err != nil {
			return nil, errors.WithMessagef(err, "sequence.FromSlice: element #%d", i)
		}
		if err := types.CheckAssignable(element, t); err != nil {
			return nil, errors.WithMessagef(err, "sequence.FromSlice: element #%d", i)
		}
		canonical[i] = value
	}
	return New(element, func(yield func(any) bool) {
		for _, value := range canonical {
			if !yield(value) {
				return
			}
		}
	}), nil
}

// Range returns the sequence of int64 values 0, 1, ..., n-1.
func Range(n int64) *Sequence {
	return New(types.Scalar(dtypes.Int64), func(yield func(any) bool) {
		for i := int64(0); i < n; i++ {
			if !yield(i) {
				return
			}
		}
	})
}

// TypeSignature implements types.Typed.
func (s *Sequence) TypeSignature() types.Type {
	return types.Sequence(s.element)
}

// Element returns the type of the elements.
func (s *Sequence) Element() types.Type {
	return s.element
}

// All returns an iterator over the elements.
func (s *Sequence) All() iter.Seq[any] {
	return s.all
}

// Collect returns all elements in a slice.
func (s *Sequence) Collect() []any {
	var values []any
	for value := range s.all {
		values = append(values, value)
	}
	return values
}

// Reduce folds the sequence: starting with initial, it calls fn(accumulator, element) for each element, and
// returns the final accumulator. It stops at the first error.
func (s *Sequence) Reduce(initial any, fn func(accumulator, element any) (any, error)) (any, error) {
	accumulator := initial
	var err error
	var count int
	for element := range s.all {
		accumulator, err = fn(accumulator, element)
		if err != nil {
			return nil, errors.WithMessagef(err, "Sequence.Reduce failed at element #%d", count)
		}
		count++
	}
	return accumulator, nil
}

// String implements fmt.Stringer.
func (s *Sequence) String() string {
	return fmt.Sprintf("Sequence[%s]", s.TypeSignature())
}
