// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implements a `Tensor`, a representation of a multi-dimensional array stored in host memory.
//
// A Tensor is always stored as a flat slice of the Go type corresponding to its DType (e.g.: `[]float32`
// for dtypes.Float32, `[]float16.Float16` for dtypes.Float16), in row-major order: the last axis
// is the one that changes fastest. See shapes.Shape.Strides.
//
// Tensors are created with one of the constructors (FromShape, FromFlatDataAndDimensions,
// FromScalar, FromScalarAndDimensions, FromValue), and their contents can be accessed with
// ConstFlatData / MutableFlatData, CopyFlatData or Value.
//
// Constructors panic (with an error) on invalid input: that is a bug in the calling code.
//
// Tensors are not safe for concurrent mutation: synchronize access if writing from multiple goroutines.
package tensors

import (
	"fmt"
	"reflect"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/mixup/pkg/core/shapes"
	"github.com/gomlx/mixup/pkg/support/xslices"
	"github.com/pkg/errors"
)

// Tensor is a multi-dimensional array of a given DType, stored in host memory as a flat slice.
type Tensor struct {
	// shape of the tensor.
	shape shapes.Shape

	// flat holds the array with actual data: a slice of the Go type for the dtype of the shape.
	flat any
}

// Shape of the tensor, includes DType.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType returns the DType of the tensor's shape.
// It is a shortcut to `Tensor.Shape().DType`.
func (t *Tensor) DType() dtypes.DType {
	return t.shape.DType
}

// Rank returns the rank of the tensor's shape.
// It is a shortcut to `Tensor.Shape().Rank()`.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// IsScalar returns whether the tensor represents a scalar value.
func (t *Tensor) IsScalar() bool { return t.shape.IsScalar() }

// Size returns the number of elements in the tensor.
func (t *Tensor) Size() int { return t.shape.Size() }

// Memory returns the number of bytes used to store the tensor data.
func (t *Tensor) Memory() uintptr { return t.shape.Memory() }

// Ok returns whether the tensor is in a valid state: it has a valid shape and associated storage.
func (t *Tensor) Ok() bool {
	return t != nil && t.shape.Ok() && t.flat != nil
}

// AssertValid panics if the tensor is nil or doesn't hold any data.
func (t *Tensor) AssertValid() {
	if t == nil {
		exceptions.Panicf("tensor is nil")
	}
	if !t.shape.Ok() {
		exceptions.Panicf("tensor shape is invalid")
	}
	if t.flat == nil {
		exceptions.Panicf("tensor (%s) has no data", t.shape)
	}
}

// FromShape returns a Tensor with the given shape, with the data initialized with zeros.
func FromShape(shape shapes.Shape) (t *Tensor) {
	if !shape.Ok() {
		panic(errors.New("invalid shape"))
	}
	size := shape.Size()
	flatV := reflect.MakeSlice(reflect.SliceOf(shape.DType.GoType()), size, size)
	return &Tensor{
		shape: shape.Clone(),
		flat:  flatV.Interface(),
	}
}

// Clone creates a deep copy of the Tensor.
func (t *Tensor) Clone() *Tensor {
	t.AssertValid()
	flatV := reflect.ValueOf(t.flat)
	size := flatV.Len()
	cloneFlatV := reflect.MakeSlice(flatV.Type(), size, size)
	reflect.Copy(cloneFlatV, flatV)
	return &Tensor{
		shape: t.shape.Clone(),
		flat:  cloneFlatV.Interface(),
	}
}

// String converts to string, including the values if the tensor is small.
func (t *Tensor) String() string {
	return t.Summary(16)
}

// Summary returns a one line description of the tensor: its shape, memory used and, if the tensor has
// at most maxValues elements, its values.
func (t *Tensor) Summary(maxValues int) string {
	if !t.Ok() {
		return "Tensor(invalid)"
	}
	desc := fmt.Sprintf("%s (%s)", t.shape, humanize.Bytes(uint64(t.Memory())))
	if t.Size() > maxValues {
		return desc
	}
	return fmt.Sprintf("%s: %v", desc, t.Value())
}

// Equal checks weather t == otherTensor.
// If they are the same pointer they are considered equal.
// If the shapes are different it returns false.
// If either are invalid (nil) it panics.
func (t *Tensor) Equal(otherTensor *Tensor) bool {
	return t.InDelta(otherTensor, 0)
}

// InDelta checks weather Abs(t - otherTensor) <= delta for every element.
// NaN values are considered equal to other NaN values.
// If they are the same pointer they are considered equal.
// If the shapes are different it returns false.
// If either are invalid (nil) it panics.
func (t *Tensor) InDelta(otherTensor *Tensor, delta float64) bool {
	t.AssertValid()
	otherTensor.AssertValid()
	if t == otherTensor {
		return true
	}
	if !t.shape.Equal(otherTensor.shape) {
		return false
	}
	if t.shape.IsZeroSize() {
		// If any of the axes is zero-dimensional, there is no data to compare.
		return true
	}
	return xslices.SlicesInDelta(t.flat, otherTensor.flat, delta)
}
