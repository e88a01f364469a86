// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"fmt"
	"math"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

// identityGamma returns the shape parameter itself as the "sample", which makes the Beta sample
// deterministic: concentration1/(concentration0+concentration1).
type identityGamma struct{}

func (identityGamma) Gamma(shape float64) float64 { return shape }

// zeroGamma simulates gamma draws underflowing to 0 for the given indices of the sequence of draws.
type zeroGamma struct {
	count     int
	zeroDraws map[int]bool
}

func (g *zeroGamma) Gamma(_ float64) float64 {
	defer func() { g.count++ }()
	if g.zeroDraws[g.count] {
		return 0
	}
	return 1
}

func TestSampleRange(t *testing.T) {
	for _, alpha := range []float64{0.05, DefaultConcentration, 1, 5} {
		t.Run(fmt.Sprintf("alpha=%g", alpha), func(t *testing.T) {
			samples := must.M1(NewWithSeed(42).Sample(10_000, alpha, alpha))
			require.Len(t, samples, 10_000)
			for ii, v := range samples {
				require.Falsef(t, math.IsNaN(v), "sample #%d is NaN", ii)
				require.GreaterOrEqual(t, v, 0.0)
				require.LessOrEqual(t, v, 1.0)
			}
		})
	}
}

func TestSampleMoments(t *testing.T) {
	sampler := NewWithSeed(7)
	t.Run("symmetric", func(t *testing.T) {
		const alpha = DefaultConcentration
		samples := must.M1(sampler.Sample(100_000, alpha, alpha))
		mean, variance := stat.MeanVariance(samples, nil)
		assert.InDelta(t, 0.5, mean, 0.01)
		// Var(Beta(a, a)) = 1 / (4 * (2a + 1)).
		assert.InDelta(t, 1/(4*(2*alpha+1)), variance, 0.01)
	})
	t.Run("asymmetric", func(t *testing.T) {
		// The first gamma draw uses concentration1, so the mean is concentration1/(concentration0+concentration1).
		samples := must.M1(sampler.Sample(100_000, 2, 6))
		assert.InDelta(t, 0.75, stat.Mean(samples, nil), 0.01)
	})
}

func TestSampleConcentrationRoles(t *testing.T) {
	samples := must.M1(NewWithGamma(identityGamma{}).Sample(2, 1, 3))
	require.Equal(t, []float64{0.75, 0.75}, samples)
}

func TestSampleDeterministic(t *testing.T) {
	s0 := must.M1(NewWithSeed(1).Sample(100, 0.4, 0.4))
	s1 := must.M1(NewWithSeed(1).Sample(100, 0.4, 0.4))
	s2 := must.M1(NewWithSeed(2).Sample(100, 0.4, 0.4))
	require.Equal(t, s0, s1)
	require.NotEqual(t, s0, s2)

	// Consecutive calls consume the state.
	sampler := NewWithSeed(1)
	first := must.M1(sampler.Sample(100, 0.4, 0.4))
	second := must.M1(sampler.Sample(100, 0.4, 0.4))
	require.Equal(t, s0, first)
	require.NotEqual(t, first, second)
}

func TestSampleEmpty(t *testing.T) {
	samples, err := New().Sample(0, 1, 1)
	require.NoError(t, err)
	require.Empty(t, samples)
}

func TestSampleInvalidParameters(t *testing.T) {
	sampler := New()
	testCases := []struct {
		name          string
		size          int
		c0, c1        float64
		wantParamName string
	}{
		{"negative size", -1, 1, 1, "size"},
		{"zero concentration0", 3, 0, 1, "concentration0"},
		{"negative concentration1", 3, 1, -1, "concentration1"},
		{"NaN concentration", 3, math.NaN(), 1, "concentration0"},
		{"infinite concentration", 3, 1, math.Inf(1), "concentration1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			samples, err := sampler.Sample(tc.size, tc.c0, tc.c1)
			require.Error(t, err)
			require.Nil(t, samples)
			require.ErrorIs(t, err, ErrInvalidParameter)
			var paramErr *InvalidParameterError
			require.True(t, errors.As(err, &paramErr))
			require.Equal(t, tc.wantParamName, paramErr.Name)
		})
	}
}

func TestSampleDegeneracy(t *testing.T) {
	// 3 samples: draws 0-2 are gamma1 (concentration1), draws 3-5 are gamma2 (concentration0).
	// Sample #1 has both draws zero.
	gamma := &zeroGamma{zeroDraws: map[int]bool{1: true, 4: true, 5: true}}
	var warnings []*NumericDegeneracyWarning
	sampler := NewWithGamma(gamma).WithDegeneracyHandler(func(w *NumericDegeneracyWarning) {
		warnings = append(warnings, w)
	})
	samples := must.M1(sampler.Sample(3, 1e-3, 1e-3))
	require.Len(t, samples, 3)
	assert.Equal(t, 0.5, samples[0])
	assert.True(t, math.IsNaN(samples[1]))
	assert.Equal(t, 1.0, samples[2])

	require.Len(t, warnings, 1)
	assert.Equal(t, []int{1}, warnings[0].Indices)
	assert.Equal(t, 3, warnings[0].Size)
	assert.Contains(t, warnings[0].String(), "1 of 3 samples")

	// Default handler logs, and a nil handler disables reporting: neither should panic.
	require.NotPanics(t, func() {
		_ = must.M1(NewWithGamma(&zeroGamma{zeroDraws: map[int]bool{0: true, 1: true}}).Sample(1, 1, 1))
	})
	require.NotPanics(t, func() {
		_ = must.M1(NewWithGamma(&zeroGamma{zeroDraws: map[int]bool{0: true, 1: true}}).
			WithDegeneracyHandler(nil).Sample(1, 1, 1))
	})
}

func TestDefaultSample(t *testing.T) {
	samples, err := Sample(16, DefaultConcentration, DefaultConcentration)
	require.NoError(t, err)
	require.Len(t, samples, 16)
	for _, v := range samples {
		require.True(t, v >= 0 && v <= 1)
	}
}

func TestNewWithNilGamma(t *testing.T) {
	samples := must.M1(NewWithGamma(nil).Sample(8, DefaultConcentration, DefaultConcentration))
	require.Len(t, samples, 8)
	for _, v := range samples {
		require.True(t, v >= 0 && v <= 1)
	}
}
