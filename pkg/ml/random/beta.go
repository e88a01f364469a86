// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package random implements sampling of the random coefficients used by data augmentation.
//
// The main type is BetaSampler, that draws samples from a Beta(concentration0, concentration1) distribution
// using the ratio of two independent Gamma variates.
//
// The process-wide default sampler (see Default and Sample) draws from the runtime-seeded global generator
// of math/rand/v2, and can be used concurrently. Samplers created with NewWithSeed hold their own
// deterministic state and are not safe for concurrent use: either use one per goroutine or
// synchronize access.
package random

import (
	"math"
	"math/rand/v2"

	"k8s.io/klog/v2"
)

// DefaultConcentration is the default value of the concentration parameters used by mixup.
const DefaultConcentration = 0.2

// BetaSampler draws samples from a Beta distribution.
type BetaSampler struct {
	gamma        GammaSource
	onDegeneracy DegeneracyHandler
}

// New creates a BetaSampler using the process-wide random number generator.
// It is safe for concurrent use.
func New() *BetaSampler {
	return NewWithGamma(NewGammaSource(nil))
}

// NewWithSeed creates a deterministic BetaSampler, initialized with the given seed.
// Two samplers created with the same seed generate the same sequence of samples.
//
// It is not safe for concurrent use.
func NewWithSeed(seed uint64) *BetaSampler {
	return NewWithGamma(NewGammaSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewWithGamma creates a BetaSampler that draws its Gamma variates from the given source.
// A nil gamma uses the process-wide random number generator, like New.
func NewWithGamma(gamma GammaSource) *BetaSampler {
	if gamma == nil {
		gamma = NewGammaSource(nil)
	}
	return &BetaSampler{
		gamma:        gamma,
		onDegeneracy: LogDegeneracy,
	}
}

// WithDegeneracyHandler sets the function called when some of the samples are NaN, see NumericDegeneracyWarning.
// The default is LogDegeneracy. Setting it to nil disables reporting.
//
// It returns the BetaSampler itself, so configuration calls can be cascaded.
func (s *BetaSampler) WithDegeneracyHandler(handler DegeneracyHandler) *BetaSampler {
	s.onDegeneracy = handler
	return s
}

// checkConcentration returns an InvalidParameterError if value is not a positive finite number.
func checkConcentration(name string, value float64) error {
	if !(value > 0) || math.IsInf(value, 1) {
		return &InvalidParameterError{Name: name, Value: value, Reason: "must be a positive finite number"}
	}
	return nil
}

// Sample returns size independent samples from Beta(concentration0, concentration1), each in the range [0, 1].
//
// Each sample is drawn as g1/(g1+g2), where g1 ~ Gamma(concentration1) and g2 ~ Gamma(concentration0).
// Mixup uses the same value for both concentrations, making λ and 1-λ identically distributed.
//
// If size is 0 it returns an empty (nil) slice. It returns an InvalidParameterError if size is negative
// or either concentration is not a positive finite number.
//
// For very small concentrations both gamma draws may underflow to 0, in which case the sample is NaN.
// These are reported to the degeneracy handler (see WithDegeneracyHandler) and returned as is.
func (s *BetaSampler) Sample(size int, concentration0, concentration1 float64) ([]float64, error) {
	if size < 0 {
		return nil, &InvalidParameterError{Name: "size", Value: float64(size), Reason: "must be >= 0"}
	}
	if err := checkConcentration("concentration0", concentration0); err != nil {
		return nil, err
	}
	if err := checkConcentration("concentration1", concentration1); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	gamma1 := make([]float64, size)
	for ii := range gamma1 {
		gamma1[ii] = s.gamma.Gamma(concentration1)
	}
	samples := make([]float64, size)
	for ii := range samples {
		samples[ii] = s.gamma.Gamma(concentration0)
	}
	var degenerate []int
	for ii, g1 := range gamma1 {
		g2 := samples[ii]
		samples[ii] = g1 / (g1 + g2)
		if math.IsNaN(samples[ii]) {
			degenerate = append(degenerate, ii)
		}
	}
	if len(degenerate) > 0 && s.onDegeneracy != nil {
		s.onDegeneracy(&NumericDegeneracyWarning{
			Indices:        degenerate,
			Size:           size,
			Concentration0: concentration0,
			Concentration1: concentration1,
		})
	}
	if klog.V(2).Enabled() {
		klog.Infof("random: sampled %d values from Beta(%g, %g)", size, concentration0, concentration1)
	}
	return samples, nil
}

// Default is the process-wide BetaSampler used by Sample. It is safe for concurrent use.
var Default = New()

// Sample returns size independent samples from Beta(concentration0, concentration1) using the Default sampler.
// See BetaSampler.Sample for details.
func Sample(size int, concentration0, concentration1 float64) ([]float64, error) {
	return Default.Sample(size, concentration0, concentration1)
}
