// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	invalidShape := Invalid()
	require.False(t, invalidShape.Ok())

	shape0 := Make(dtypes.Float64)
	require.True(t, shape0.Ok())
	require.True(t, shape0.IsScalar())
	require.Equal(t, 0, shape0.Rank())
	require.Len(t, shape0.Dimensions, 0)
	require.Equal(t, 1, shape0.Size())
	require.Equal(t, 8, int(shape0.Memory()))

	shape1 := Make(dtypes.Float32, 4, 3, 2)
	require.True(t, shape1.Ok())
	require.False(t, shape1.IsScalar())
	require.Equal(t, 3, shape1.Rank())
	require.Equal(t, 4*3*2, shape1.Size())
	require.Equal(t, 4*4*3*2, int(shape1.Memory()))
	require.Equal(t, "(Float32)[4 3 2]", shape1.String())

	require.Panics(t, func() { _ = Make(dtypes.Float32, 2, -1) })
}

func TestZeroSize(t *testing.T) {
	shape := Make(dtypes.Float32, 0, 4, 4, 3)
	require.True(t, shape.IsZeroSize())
	require.Equal(t, 0, shape.Size())
	require.False(t, Make(dtypes.Float32, 1, 2).IsZeroSize())
}

func TestDim(t *testing.T) {
	shape := Make(dtypes.Float32, 4, 3, 2)
	require.Equal(t, 4, shape.Dim(0))
	require.Equal(t, 2, shape.Dim(2))
	require.Equal(t, 4, shape.Dim(-3))
	require.Equal(t, 2, shape.Dim(-1))
	require.Panics(t, func() { _ = shape.Dim(3) })
	require.Panics(t, func() { _ = shape.Dim(-4) })
}

func TestEqualAndClone(t *testing.T) {
	shape := Make(dtypes.Float32, 2, 4, 4, 3)
	clone := shape.Clone()
	require.True(t, shape.Equal(clone))
	clone.Dimensions[0] = 5
	require.Equal(t, 2, shape.Dimensions[0])
	require.False(t, shape.Equal(clone))

	other := Make(dtypes.Float64, 2, 4, 4, 3)
	require.False(t, shape.Equal(other))
}

func TestStrides(t *testing.T) {
	require.Nil(t, Make(dtypes.Float32).Strides())
	require.Equal(t, []int{48, 12, 3, 1}, Make(dtypes.Float32, 2, 4, 4, 3).Strides())
}

func TestChecks(t *testing.T) {
	shape := Make(dtypes.Float32, 2, 4, 4, 3)
	require.NoError(t, shape.CheckMinRank(1))
	require.NoError(t, shape.CheckMinRank(4))
	require.ErrorContains(t, shape.CheckMinRank(5), "rank 4 is smaller than 5")
	require.Error(t, Make(dtypes.Float32).CheckMinRank(1))

	require.NoError(t, shape.CheckDim(0, 2))
	require.NoError(t, shape.CheckDim(-1, 3))
	require.ErrorContains(t, shape.CheckDim(1, 5), "axis 1 has dimension 4, wanted 5")
	require.ErrorContains(t, shape.CheckDim(4, 1), "out of range")
	require.Error(t, Make(dtypes.Float32).CheckDim(0, 1))

	require.NoError(t, shape.CheckSame(Make(dtypes.Float32, 2, 4, 4, 3)))
	require.ErrorContains(t, shape.CheckSame(Make(dtypes.Float64, 2, 4, 4, 3)), "dtypes differ")
	require.ErrorContains(t, shape.CheckSame(Make(dtypes.Float32, 2, 16, 3)), "ranks differ: 4 and 3")
	require.ErrorContains(t, shape.CheckSame(Make(dtypes.Float32, 2, 4, 8, 3)), "axis 2 dimensions differ: 4 and 8")
}
