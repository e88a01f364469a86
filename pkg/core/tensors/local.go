// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"reflect"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/gomlx/mixup/pkg/core/shapes"
	"github.com/gomlx/mixup/pkg/support/xslices"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// flatAs returns the storage of t as a []T, panicking if T is not the Go type of the tensor's dtype.
//
// Go's `int` is never a storage type: tensors created from ints are stored as int64 (or int32).
func flatAs[T dtypes.Supported](t *Tensor, caller string) []T {
	t.AssertValid()
	flat, ok := t.flat.([]T)
	if !ok {
		var v T
		exceptions.Panicf("%s[%T]: tensor %s is stored as []%s", caller, v, t.shape, t.shape.DType.GoType())
	}
	return flat
}

// ConstFlatData calls accessFn with the tensor storage, a flat row-major slice. It is not a copy,
// and accessFn must not change it.
//
// It panics if the tensor is invalid or if T doesn't match its dtype.
func ConstFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) {
	accessFn(flatAs[T](t, "ConstFlatData"))
}

// MutableFlatData calls accessFn with the tensor storage, a flat row-major slice that accessFn
// may change in place.
//
// It panics if the tensor is invalid or if T doesn't match its dtype.
func MutableFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) {
	accessFn(flatAs[T](t, "MutableFlatData"))
}

// CopyFlatData returns a copy of the tensor storage.
func CopyFlatData[T dtypes.Supported](t *Tensor) []T {
	return append([]T(nil), flatAs[T](t, "CopyFlatData")...)
}

// MultiDimensionSlice enumerates the values accepted by FromValue: scalars and slices nested up to 5
// levels, enough for a batch of images.
type MultiDimensionSlice interface {
	float32 | float64 | float16.Float16 | bfloat16.BFloat16 | int | int32 | int64 | uint8 |
		[]float32 | []float64 | []float16.Float16 | []bfloat16.BFloat16 | []int | []int32 | []int64 | []uint8 |
		[][]float32 | [][]float64 | [][]float16.Float16 | [][]bfloat16.BFloat16 | [][]int | [][]int32 | [][]int64 | [][]uint8 |
		[][][]float32 | [][][]float64 | [][][]float16.Float16 | [][][]bfloat16.BFloat16 | [][][]int | [][][]int32 | [][][]int64 | [][][]uint8 |
		[][][][]float32 | [][][][]float64 | [][][][]float16.Float16 | [][][][]bfloat16.BFloat16 | [][][][]int | [][][][]int32 | [][][][]int64 | [][][][]uint8 |
		[][][][][]float32 | [][][][][]float64 | [][][][][]float16.Float16 | [][][][][]bfloat16.BFloat16 | [][][][][]int | [][][][][]int32 | [][][][][]int64 | [][][][][]uint8
}

// FromScalar returns a scalar tensor holding value.
func FromScalar[T dtypes.Supported](value T) *Tensor {
	return FromScalarAndDimensions(value)
}

// FromScalarAndDimensions returns a tensor with the given dimensions where every element is value.
// The dtype is the one of T.
func FromScalarAndDimensions[T dtypes.Supported](value T, dimensions ...int) *Tensor {
	flat := make([]T, shapes.Make(dtypes.FromGenericsType[T](), dimensions...).Size())
	xslices.FillSlice(flat, value)
	return FromFlatDataAndDimensions(flat, dimensions...)
}

// FromFlatDataAndDimensions returns a tensor with the given dimensions and a copy of data, in row-major order.
// The dtype is the one of T.
//
// It panics if len(data) doesn't match the dimensions.
func FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int) *Tensor {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	if len(data) != shape.Size() {
		exceptions.Panicf("FromFlatDataAndDimensions(%s): got %d elements, the shape holds %d", shape, len(data), shape.Size())
	}
	t := FromShape(shape)
	copyConverting(reflect.ValueOf(t.flat), reflect.ValueOf(data))
	return t
}

// FromValue returns a tensor with a copy of value, a scalar or a nested slice. Nested slices must be
// regular (all sub-slices of a level have the same length) and non-empty: use FromShape for tensors with
// zero-sized axes.
//
// It panics for irregular or empty slices.
func FromValue[S MultiDimensionSlice](value S) *Tensor {
	shape, err := shapeOf(reflect.ValueOf(value))
	if err != nil {
		panic(errors.WithMessagef(err, "tensors.FromValue(%T)", value))
	}
	t := FromShape(shape)
	fillFromValue(reflect.ValueOf(t.flat), reflect.ValueOf(value), shape.Strides())
	return t
}

// Value returns a copy of the tensor contents as a nested slice with one level per axis,
// or as a single value for scalars.
func (t *Tensor) Value() any {
	t.AssertValid()
	flatV := reflect.ValueOf(t.flat)
	if t.shape.IsScalar() {
		return flatV.Index(0).Interface()
	}
	flatCopyV := reflect.MakeSlice(flatV.Type(), flatV.Len(), flatV.Len())
	reflect.Copy(flatCopyV, flatV)
	return nestSlices(flatCopyV, t.shape.Dimensions, t.shape.Strides()).Interface()
}

// copyConverting copies src into dst, converting element by element if their types differ
// (e.g.: []int into []int64).
func copyConverting(dst, src reflect.Value) {
	if dst.Type() == src.Type() {
		reflect.Copy(dst, src)
		return
	}
	elemType := dst.Type().Elem()
	for ii := range src.Len() {
		dst.Index(ii).Set(src.Index(ii).Convert(elemType))
	}
}

// fillFromValue copies the nested slice (or scalar) value into flat.
func fillFromValue(flat, value reflect.Value, strides []int) {
	switch len(strides) {
	case 0:
		flat.Index(0).Set(value.Convert(flat.Type().Elem()))
	case 1:
		copyConverting(flat, value)
	default:
		for ii := range value.Len() {
			fillFromValue(flat.Slice(ii*strides[0], (ii+1)*strides[0]), value.Index(ii), strides[1:])
		}
	}
}

// nestSlices returns nested slices with the given dimensions sharing the storage of flat.
func nestSlices(flat reflect.Value, dimensions, strides []int) reflect.Value {
	if len(dimensions) == 1 {
		return flat
	}
	sliceType := flat.Type()
	for range dimensions[1:] {
		sliceType = reflect.SliceOf(sliceType)
	}
	nested := reflect.MakeSlice(sliceType, dimensions[0], dimensions[0])
	for ii := range dimensions[0] {
		nested.Index(ii).Set(nestSlices(flat.Slice(ii*strides[0], (ii+1)*strides[0]), dimensions[1:], strides[1:]))
	}
	return nested
}

// shapeOf returns the shape of a scalar or nested slice value, checking that it is regular.
func shapeOf(value reflect.Value) (shapes.Shape, error) {
	if value.Kind() != reflect.Slice {
		dtype := dtypes.FromGoType(value.Type())
		if dtype == dtypes.InvalidDType {
			return shapes.Invalid(), errors.Errorf("type %s has no tensor dtype", value.Type())
		}
		return shapes.Make(dtype), nil
	}
	if value.Len() == 0 {
		return shapes.Invalid(), errors.Errorf("empty slice %s can't be converted, use FromShape for zero-sized axes", value.Type())
	}
	inner, err := shapeOf(value.Index(0))
	if err != nil {
		return inner, err
	}
	for ii := 1; ii < value.Len(); ii++ {
		other, err := shapeOf(value.Index(ii))
		if err != nil {
			return other, err
		}
		if !inner.Equal(other) {
			return shapes.Invalid(), errors.Errorf("irregular sub-slices: element 0 has shape %s, element %d has shape %s",
				inner, ii, other)
		}
	}
	return shapes.Make(inner.DType, append([]int{value.Len()}, inner.Dimensions...)...), nil
}
