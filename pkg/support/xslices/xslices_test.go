// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package xslices

import (
	"math"
	"testing"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestFillSlice(t *testing.T) {
	slice := make([]float32, 7)
	FillSlice(slice, 0.5)
	for _, v := range slice {
		require.Equal(t, float32(0.5), v)
	}
	FillSlice([]int{}, 1) // Must not panic.
}

func TestToFloat64(t *testing.T) {
	v, ok := ToFloat64(float16.Fromfloat32(0.5))
	require.True(t, ok)
	assert.Equal(t, 0.5, v)

	v, ok = ToFloat64(bfloat16.FromFloat32(2))
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = ToFloat64(int32(-3))
	require.True(t, ok)
	assert.Equal(t, -3.0, v)

	_, ok = ToFloat64("x")
	assert.False(t, ok)
}

func TestSlicesInDelta(t *testing.T) {
	assert.True(t, SlicesInDelta([][]float32{{1, 2}, {3, 4}}, [][]float32{{1, 2.00001}, {3, 4}}, 1e-4))
	assert.False(t, SlicesInDelta([][]float32{{1, 2}, {3, 4}}, [][]float32{{1, 2.1}, {3, 4}}, 1e-4))
	assert.False(t, SlicesInDelta([]float32{1, 2}, []float32{1, 2, 3}, 1e-4))
	assert.False(t, SlicesInDelta([]float32{1, 2}, []float64{1, 2}, 1e-4))
	assert.True(t, SlicesInDelta([]float64{math.NaN()}, []float64{math.NaN()}, 0))
	assert.False(t, SlicesInDelta([]float64{math.NaN()}, []float64{0}, 1))
	assert.True(t, SlicesInDelta(
		[]float16.Float16{float16.Fromfloat32(0.3)},
		[]float16.Float16{float16.Fromfloat32(0.3001)}, 1e-3))
}
