// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provide missing functionality to the slices package.
package xslices

import (
	"math"
	"reflect"
)

// FillSlice sets every element of slice to value.
func FillSlice[T any](slice []T, value T) {
	if len(slice) == 0 {
		return
	}
	// Doubling copies are faster than assigning one element at a time.
	slice[0] = value
	for filled := 1; filled < len(slice); filled *= 2 {
		copy(slice[filled:], slice[:filled])
	}
}

// deepSliceCmp walks s0 and s1 in parallel and returns false as soon as the nesting or lengths differ,
// or cmpFn returns false for a pair of leaf elements.
func deepSliceCmp(s0, s1 reflect.Value, cmpFn func(e0, e1 any) bool) bool {
	if !s0.IsValid() || !s1.IsValid() || s0.Kind() != s1.Kind() {
		return false
	}
	if s0.Kind() != reflect.Slice {
		return cmpFn(s0.Interface(), s1.Interface())
	}
	if s0.Len() != s1.Len() {
		return false
	}
	for ii := range s0.Len() {
		if !deepSliceCmp(s0.Index(ii), s1.Index(ii), cmpFn) {
			return false
		}
	}
	return true
}

// float32Convertible is implemented by float16.Float16 and bfloat16.BFloat16.
type float32Convertible interface {
	Float32() float32
}

// ToFloat64 converts a scalar numeric value (including float16.Float16 and bfloat16.BFloat16) to float64.
// It returns false if the value is not numeric.
func ToFloat64(value any) (float64, bool) {
	if half, ok := value.(float32Convertible); ok {
		// Checked first: both half-precision types have an integer kind underneath.
		return float64(half.Float32()), true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	default:
		return 0, false
	}
}

// SlicesInDelta returns whether s0 and s1, flat or nested slices, have the same element type and lengths
// and all corresponding values differ by at most delta. Two NaNs are considered equal.
//
// A delta of 0 checks for exact equality.
func SlicesInDelta(s0, s1 any, delta float64) bool {
	return deepSliceCmp(reflect.ValueOf(s0), reflect.ValueOf(s1), func(e0, e1 any) bool {
		if reflect.TypeOf(e0) != reflect.TypeOf(e1) {
			return false
		}
		if e0 == e1 {
			return true
		}
		f0, ok0 := ToFloat64(e0)
		f1, ok1 := ToFloat64(e1)
		if !ok0 || !ok1 {
			return false
		}
		if math.IsNaN(f0) || math.IsNaN(f1) {
			return math.IsNaN(f0) && math.IsNaN(f1)
		}
		return math.Abs(f0-f1) <= delta
	})
}
