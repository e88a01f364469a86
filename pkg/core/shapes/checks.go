// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"github.com/pkg/errors"
)

// The checks below return errors that describe only the difference found, not the shapes
// themselves: callers usually wrap them with the context and the shapes involved.

// CheckMinRank returns an error if the shape has fewer than rank axes.
func (s Shape) CheckMinRank(rank int) error {
	if s.Rank() < rank {
		return errors.Errorf("rank %d is smaller than %d", s.Rank(), rank)
	}
	return nil
}

// CheckDim returns an error if axis (negative values count from the end) is out of range, or if it
// doesn't have the given dimension.
func (s Shape) CheckDim(axis, dim int) error {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		return errors.Errorf("axis %d is out of range for rank %d", axis, s.Rank())
	}
	if s.Dimensions[adjustedAxis] != dim {
		return errors.Errorf("axis %d has dimension %d, wanted %d", axis, s.Dimensions[adjustedAxis], dim)
	}
	return nil
}

// CheckSame returns an error describing the first difference between s and other: dtype, rank or
// the first axis with a different dimension.
func (s Shape) CheckSame(other Shape) error {
	if s.DType != other.DType {
		return errors.Errorf("dtypes differ: %s and %s", s.DType, other.DType)
	}
	if s.Rank() != other.Rank() {
		return errors.Errorf("ranks differ: %d and %d", s.Rank(), other.Rank())
	}
	for axis, dim := range s.Dimensions {
		if dim != other.Dimensions[axis] {
			return errors.Errorf("axis %d dimensions differ: %d and %d", axis, dim, other.Dimensions[axis])
		}
	}
	return nil
}
