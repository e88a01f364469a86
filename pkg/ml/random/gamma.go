// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// GammaSource draws independent Gamma variates.
type GammaSource interface {
	// Gamma returns one sample of Gamma(shape, scale=1). shape is always > 0.
	Gamma(shape float64) float64
}

// gonumGamma implements GammaSource with gonum's distuv.Gamma.
type gonumGamma struct {
	// src of randomness. If nil, the runtime-seeded global generator of math/rand/v2 is used,
	// which is safe for concurrent use.
	src rand.Source
}

var _ GammaSource = (*gonumGamma)(nil)

// NewGammaSource returns a GammaSource backed by gonum's distuv.Gamma, drawing from src.
//
// If src is nil, it uses the process-wide random number generator of math/rand/v2: it is runtime-seeded
// and safe for concurrent use.
func NewGammaSource(src rand.Source) GammaSource {
	return &gonumGamma{src: src}
}

// Gamma implements GammaSource.
func (g *gonumGamma) Gamma(shape float64) float64 {
	// distuv's Beta field is the rate, the inverse of the scale.
	dist := distuv.Gamma{Alpha: shape, Beta: 1, Src: g.src}
	return dist.Rand()
}
