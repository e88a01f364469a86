// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package random

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrInvalidParameter is matched (with errors.Is) by every InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError is returned when a distribution parameter (a concentration, alpha or a sample size)
// is out of its domain.
type InvalidParameterError struct {
	// Name of the parameter, e.g.: "concentration0" or "alpha".
	Name string

	// Value given.
	Value float64

	// Reason describes the domain of the parameter, e.g.: "must be > 0".
	Reason string
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidParameter) true for InvalidParameterError values.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// NumericDegeneracyWarning reports the samples for which both gamma draws underflowed to zero, leaving
// a NaN (0/0) in the Beta sample.
//
// It happens with very small concentration values. It is not an error: the NaN values are returned as is,
// and it is up to the caller to decide what to do with them.
type NumericDegeneracyWarning struct {
	// Indices of the NaN samples.
	Indices []int

	// Size is the total number of samples drawn.
	Size int

	Concentration0, Concentration1 float64
}

// String implements fmt.Stringer.
func (w *NumericDegeneracyWarning) String() string {
	parts := make([]string, 0, len(w.Indices))
	for _, idx := range w.Indices {
		parts = append(parts, fmt.Sprint(idx))
	}
	return fmt.Sprintf("Beta(%g, %g) sampling degenerated to NaN (both gamma draws are 0) in %d of %d samples, at indices [%s]",
		w.Concentration0, w.Concentration1, len(w.Indices), w.Size, strings.Join(parts, ", "))
}

// DegeneracyHandler is called by BetaSampler.Sample whenever some of the samples are NaN.
type DegeneracyHandler func(warning *NumericDegeneracyWarning)

// LogDegeneracy is the default DegeneracyHandler: it logs the warning with klog.
func LogDegeneracy(warning *NumericDegeneracyWarning) {
	klog.Warningf("random: %s", warning)
}
