// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package mixup

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/gomlx/mixup/pkg/core/tensors"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// halfFloat are the 16 bits float types supported by mixing.
type halfFloat interface {
	float16.Float16 | bfloat16.BFloat16
	Float32() float32
}

// isSupportedDType returns whether tensors of the dtype can be mixed.
func isSupportedDType(dtype dtypes.DType) bool {
	switch dtype {
	case dtypes.Float32, dtypes.Float64, dtypes.Float16, dtypes.BFloat16:
		return true
	default:
		return false
	}
}

// blend returns a new tensor with `one*λ + two*(1-λ)`, where λ is broadcast over all axes but the batch axis.
//
// one and two must have been validated to have the same shape, with a supported dtype and len(lambdas) examples.
func blend(one, two *tensors.Tensor, lambdas []float64) *tensors.Tensor {
	out := tensors.FromShape(one.Shape())
	exampleSize := one.Shape().Strides()[0]
	switch one.DType() {
	case dtypes.Float32:
		blendFloat[float32](one, two, out, lambdas, exampleSize)
	case dtypes.Float64:
		blendFloat[float64](one, two, out, lambdas, exampleSize)
	case dtypes.Float16:
		blendHalf(one, two, out, lambdas, exampleSize, float16.Fromfloat32)
	case dtypes.BFloat16:
		blendHalf(one, two, out, lambdas, exampleSize, bfloat16.FromFloat32)
	default:
		// Validated before calling blend.
		panic(errors.Errorf("mixup: blend called with unsupported dtype %s", one.DType()))
	}
	return out
}

func blendFloat[T constraints.Float](one, two, out *tensors.Tensor, lambdas []float64, exampleSize int) {
	tensors.ConstFlatData(one, func(flatOne []T) {
		tensors.ConstFlatData(two, func(flatTwo []T) {
			tensors.MutableFlatData(out, func(flatOut []T) {
				for exampleIdx, lambda := range lambdas {
					start := exampleIdx * exampleSize
					for ii := start; ii < start+exampleSize; ii++ {
						flatOut[ii] = T(float64(flatOne[ii])*lambda + float64(flatTwo[ii])*(1-lambda))
					}
				}
			})
		})
	})
}

func blendHalf[T halfFloat](one, two, out *tensors.Tensor, lambdas []float64, exampleSize int, fromFloat32 func(float32) T) {
	tensors.ConstFlatData(one, func(flatOne []T) {
		tensors.ConstFlatData(two, func(flatTwo []T) {
			tensors.MutableFlatData(out, func(flatOut []T) {
				for exampleIdx, lambda := range lambdas {
					start := exampleIdx * exampleSize
					for ii := start; ii < start+exampleSize; ii++ {
						mixed := float64(flatOne[ii].Float32())*lambda + float64(flatTwo[ii].Float32())*(1-lambda)
						flatOut[ii] = fromFloat32(float32(mixed))
					}
				}
			})
		})
	})
}
