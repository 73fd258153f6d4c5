package types

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/fedcomp/dtypes"
	"github.com/pkg/errors"
)

// UnknownDim marks an axis whose dimension is not known. It renders as "?".
const UnknownDim = -1

// TensorType is the type of a tensor: a DType and the dimensions of each axis.
// If len(Dimensions) is 0, it represents a scalar.
type TensorType struct {
	DType      dtypes.DType
	Dimensions []int
}

// Scalar returns the scalar tensor type of the given dtype.
func Scalar(dtype dtypes.DType) *TensorType {
	return &TensorType{DType: dtype}
}

// Tensor returns a tensor type with the given dimensions.
//
// Dimensions must be >= 0 or UnknownDim, it panics otherwise. See TensorOrError for a version that returns an error.
func Tensor(dtype dtypes.DType, dimensions ...int) *TensorType {
	t, err := TensorOrError(dtype, dimensions...)
	if err != nil {
		exceptions.Panicf("%v", err)
	}
	return t
}

// TensorOrError is the same as Tensor, but it returns an error instead of panicking.
func TensorOrError(dtype dtypes.DType, dimensions ...int) (*TensorType, error) {
	if !dtype.IsADType() || dtype == dtypes.Invalid {
		return nil, errors.Errorf("types.Tensor(%s, %v): invalid dtype", dtype, dimensions)
	}
	for _, dim := range dimensions {
		if dim < 0 && dim != UnknownDim {
			return nil, errors.Errorf("types.Tensor(%s, %v): cannot create a tensor type with an axis with dimension < 0",
				dtype, dimensions)
		}
	}
	t := &TensorType{DType: dtype}
	if len(dimensions) > 0 {
		t.Dimensions = slices.Clone(dimensions)
	}
	return t, nil
}

func (*TensorType) isType() {}

// Kind implements Type.
func (t *TensorType) Kind() Kind { return KindTensor }

// Rank is the number of axes. Scalars have rank 0.
func (t *TensorType) Rank() int { return len(t.Dimensions) }

// IsScalar returns whether the tensor is a scalar.
func (t *TensorType) IsScalar() bool { return t.Rank() == 0 }

// IsFullyDefined returns whether all dimensions are known.
func (t *TensorType) IsFullyDefined() bool {
	return !slices.Contains(t.Dimensions, UnknownDim)
}

// String implements Type.
func (t *TensorType) String() string {
	if t.IsScalar() {
		return t.DType.String()
	}
	parts := make([]string, len(t.Dimensions))
	for i, dim := range t.Dimensions {
		if dim == UnknownDim {
			parts[i] = "?"
		} else {
			parts[i] = fmt.Sprintf("%d", dim)
		}
	}
	return fmt.Sprintf("%s[%s]", t.DType, strings.Join(parts, ","))
}
