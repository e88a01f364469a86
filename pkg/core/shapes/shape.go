// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines Shape and associated tools.
//
// Shape represents the shape (rank, dimensions and DType) of a host tensor. DType indicates the
// type of the unit element of a tensor, and it is the enum defined in github.com/gomlx/gopjrt/dtypes.
//
// Go float16 support uses github.com/x448/float16 implementation, and bfloat16 uses the simple
// implementation in github.com/gomlx/gopjrt/dtypes/bfloat16.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a Tensor.
//   - Axis: is the index of a dimension on a multidimensional Tensor. Here we refer to a dimension index
//     as "axis" (plural axes), and its size as its dimension.
//   - Dimension: the size of a multi-dimensions Tensor in one of its axes.
//   - DType: the data type of the unit element in a tensor.
//   - Scalar: is a shape where there are no axes (or dimensions), only a single value
//     of the associated DType.
//   - Batch axis: by convention the first axis (axis 0) of images and labels batches.
//
// Example: The multi-dimensional array `[][]float32{{0, 1, 2}, {3, 4, 5}}` if converted to a Tensor
// would have shape `(Float32)[2 3]`. We say it has rank 2 (so 2 axes), axis 0 has
// dimension 2, and axis 1 has dimension 3. This shape could be created with
// `shapes.Make(dtypes.Float32, 2, 3)`.
package shapes

import (
	"fmt"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// Shape represents the shape of a Tensor.
//
// Use Make to create a new shape. See example in package shapes documentation.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make creates a Shape. A dimension can be 0 (a batch with no examples), but a negative one panics.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{Dimensions: slices.Clone(dimensions), DType: dtype}
	for _, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("shapes.Make(%s): cannot create a shape with an axis with dimension < 0", s)
		}
	}
	return s
}

// Invalid returns the invalid shape, used to describe a missing tensor.
func Invalid() Shape {
	return Shape{DType: dtypes.InvalidDType}
}

// Ok returns false for the zero value Shape{} and for Invalid().
func (s Shape) Ok() bool { return s.DType != dtypes.InvalidDType }

// Rank is the number of axes.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether it is a valid shape with no axes.
func (s Shape) IsScalar() bool { return s.Ok() && s.Rank() == 0 }

// IsZeroSize returns whether any of the axes has dimension 0, in which case the shape holds no elements.
func (s Shape) IsZeroSize() bool {
	return slices.Contains(s.Dimensions, 0)
}

// Dim returns the dimension of axis. Negative values count from the end, so Dim(-1) is the last axis.
// It panics if axis is out of range.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// String implements fmt.Stringer, e.g.: "(Float32)[2 4 4 3]".
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}

// Size is the number of elements, the product of the dimensions. It is 1 for a scalar.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		size *= dim
	}
	return size
}

// Memory is the number of bytes taken by the elements of the shape.
func (s Shape) Memory() uintptr {
	return s.DType.Memory() * uintptr(s.Size())
}

// Equal returns whether both shapes have the same dtype and dimensions.
func (s Shape) Equal(s2 Shape) bool {
	return s.DType == s2.DType && slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a copy of the shape that doesn't share the Dimensions slice.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}

// Strides returns, for each axis, how many flat elements separate two consecutive indices of that axis
// in the row-major layout used by tensors. The last axis has stride 1, and a scalar returns nil.
//
// Strides()[0] is the number of elements of one example of a batch.
func (s Shape) Strides() (strides []int) {
	rank := s.Rank()
	if rank == 0 {
		return nil
	}
	strides = make([]int, rank)
	currentStride := 1
	for axis := rank - 1; axis >= 0; axis-- {
		strides[axis] = currentStride
		currentStride *= s.Dimensions[axis]
	}
	return
}
