// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mixup

import (
	"fmt"

	"github.com/gomlx/mixup/pkg/core/shapes"
	"github.com/gomlx/mixup/pkg/ml/random"
	"github.com/pkg/errors"
)

// ErrShapeMismatch is matched (with errors.Is) by every ShapeMismatchError.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrInvalidParameter is matched (with errors.Is) by errors caused by an invalid alpha, mixing coefficient or dtype.
// Invalid values of alpha are reported as *random.InvalidParameterError.
var ErrInvalidParameter = random.ErrInvalidParameter

// ShapeMismatchError is returned when the two batches to be mixed, or the images and labels of one batch,
// have incompatible shapes.
type ShapeMismatchError struct {
	// What describes the mismatch.
	What string

	// One and Two are the offending shapes. Either may be invalid if the tensor was missing.
	One, Two shapes.Shape
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("mixup: shape mismatch, %s: %s and %s", e.What, e.One, e.Two)
}

// Is makes errors.Is(err, ErrShapeMismatch) true for ShapeMismatchError values.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}
