// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package mixup implements the "mixup" data augmentation: it creates a batch of synthetic examples by linearly
// interpolating between the examples of two batches, and does the same with their labels.
//
// For each example i of the batch a mixing coefficient λ[i] is sampled from Beta(alpha, alpha), and the
// mixed batch is:
//
//	images[i] = imagesOne[i] * λ[i] + imagesTwo[i] * (1 - λ[i])
//	labels[i] = labelsOne[i] * λ[i] + labelsTwo[i] * (1 - λ[i])
//
// The same λ[i] is used for the image and the label of the example i.
//
// Images are usually shaped `[batchSize, height, width, channels]` and labels (one-hot or soft labels)
// `[batchSize, numClasses]`, but any rank >= 1 works: the first axis is always the batch axis and λ is
// broadcast over the remaining ones.
//
// Supported dtypes are Float32, Float64, Float16 and BFloat16, and the mixed batch has the same dtypes (and shapes)
// as the inputs. Input tensors are never modified.
//
// Example:
//
//	mixed, err := mixup.Mix(mixup.Batch{Images: imagesOne, Labels: labelsOne},
//		mixup.Batch{Images: imagesTwo, Labels: labelsTwo}, mixup.DefaultAlpha)
//
// Or, with a configured Mixer, for reproducible sampling:
//
//	mixer := mixup.New().WithAlpha(0.4).WithSampler(random.NewWithSeed(42))
//	mixed, err := mixer.Mix(batchOne, batchTwo)
package mixup

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/mixup/pkg/core/shapes"
	"github.com/gomlx/mixup/pkg/core/tensors"
	"github.com/gomlx/mixup/pkg/ml/random"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultAlpha is the default value of the alpha hyperparameter, the concentration of the Beta distribution
// the mixing coefficients are sampled from.
const DefaultAlpha = random.DefaultConcentration

// Batch is a batch of images and their labels. Both have the batch axis first.
type Batch struct {
	Images, Labels *tensors.Tensor
}

// BatchSize returns the size of the batch axis of the images, or 0 if the images are missing.
func (b Batch) BatchSize() int {
	if !b.Images.Ok() || b.Images.Rank() == 0 {
		return 0
	}
	return b.Images.Shape().Dim(0)
}

// LambdaSampler samples the mixing coefficients.
// random.BetaSampler implements it.
type LambdaSampler interface {
	// Sample returns size samples from Beta(concentration0, concentration1).
	Sample(size int, concentration0, concentration1 float64) ([]float64, error)
}

var _ LambdaSampler = (*random.BetaSampler)(nil)

// Mixer holds the configuration for mixup. Create it with New, and configure it with the With* methods.
type Mixer struct {
	alpha   float64
	sampler LambdaSampler
}

// New returns a Mixer with alpha set to DefaultAlpha, sampling from the process-wide random.Default sampler.
func New() *Mixer {
	return &Mixer{
		alpha:   DefaultAlpha,
		sampler: random.Default,
	}
}

// WithAlpha sets the alpha hyperparameter: mixing coefficients are sampled from Beta(alpha, alpha).
// Small values (the default is 0.2) make λ concentrate near 0 and 1, so most mixed examples are close
// to one of the originals.
//
// It must be > 0, which is checked when mixing.
//
// It returns the Mixer itself, so configuration calls can be cascaded.
func (m *Mixer) WithAlpha(alpha float64) *Mixer {
	m.alpha = alpha
	return m
}

// WithSampler sets the sampler of the mixing coefficients.
// The default is random.Default, which is safe for concurrent use. A nil sampler restores the default.
//
// It returns the Mixer itself, so configuration calls can be cascaded.
func (m *Mixer) WithSampler(sampler LambdaSampler) *Mixer {
	if sampler == nil {
		sampler = random.Default
	}
	m.sampler = sampler
	return m
}

// Alpha returns the configured alpha hyperparameter.
func (m *Mixer) Alpha() float64 { return m.alpha }

// Mix returns a new batch with the examples (and labels) of batchOne and batchTwo mixed: see package documentation.
//
// It returns a *random.InvalidParameterError if alpha is not a positive finite number, or
// a *ShapeMismatchError if the batches don't have the same shapes.
func (m *Mixer) Mix(batchOne, batchTwo Batch) (Batch, error) {
	if !(m.alpha > 0) || math.IsInf(m.alpha, 1) {
		return Batch{}, &random.InvalidParameterError{Name: "alpha", Value: m.alpha, Reason: "must be a positive finite number"}
	}
	batchSize, err := checkBatches(batchOne, batchTwo)
	if err != nil {
		return Batch{}, err
	}
	sampler := m.sampler
	if sampler == nil {
		sampler = random.Default
	}
	lambdas, err := sampler.Sample(batchSize, m.alpha, m.alpha)
	if err != nil {
		return Batch{}, errors.WithMessagef(err, "mixup: failed to sample %d mixing coefficients", batchSize)
	}
	return mixWithLambdas(batchOne, batchTwo, lambdas)
}

// Mix returns a new batch with the examples (and labels) of batchOne and batchTwo mixed, with
// coefficients sampled from Beta(alpha, alpha) with the process-wide random.Default sampler.
//
// See Mixer.Mix for details.
func Mix(batchOne, batchTwo Batch, alpha float64) (Batch, error) {
	return New().WithAlpha(alpha).Mix(batchOne, batchTwo)
}

// MixWithLambdas mixes batchOne and batchTwo using the given mixing coefficients, one per example.
// It is the deterministic part of Mix: use it if the coefficients are sampled elsewhere.
//
// Each coefficient must be in the range [0, 1]. NaN values (see random.NumericDegeneracyWarning) are accepted
// and yield NaN values in the corresponding example.
//
// It returns a *ShapeMismatchError if the batches don't have the same shapes, or if the number of
// coefficients is not the batch size.
func MixWithLambdas(batchOne, batchTwo Batch, lambdas []float64) (Batch, error) {
	if _, err := checkBatches(batchOne, batchTwo); err != nil {
		return Batch{}, err
	}
	return mixWithLambdas(batchOne, batchTwo, lambdas)
}

// mixWithLambdas assumes the batches have already been validated.
func mixWithLambdas(batchOne, batchTwo Batch, lambdas []float64) (Batch, error) {
	batchSize := batchOne.BatchSize()
	if len(lambdas) != batchSize {
		return Batch{}, &ShapeMismatchError{
			What: fmt.Sprintf("got %d mixing coefficients for a batch of size %d", len(lambdas), batchSize),
			One:  batchOne.Images.Shape(),
			Two:  batchTwo.Images.Shape(),
		}
	}
	for ii, lambda := range lambdas {
		if lambda < 0 || lambda > 1 {
			return Batch{}, &random.InvalidParameterError{
				Name: fmt.Sprintf("lambdas[%d]", ii), Value: lambda, Reason: "must be in the range [0, 1]"}
		}
	}

	mixed := Batch{
		Images: blend(batchOne.Images, batchTwo.Images, lambdas),
		Labels: blend(batchOne.Labels, batchTwo.Labels, lambdas),
	}
	if klog.V(1).Enabled() {
		klog.Infof("mixup: mixed %d examples, images %s, labels %s (%s)", batchSize,
			mixed.Images.Shape(), mixed.Labels.Shape(),
			humanize.Bytes(uint64(mixed.Images.Memory()+mixed.Labels.Memory())))
	}
	return mixed, nil
}

// checkBatch validates the images and labels of one batch, and returns its batch size.
func checkBatch(name string, batch Batch) (int, error) {
	if !batch.Images.Ok() || !batch.Labels.Ok() {
		return 0, &ShapeMismatchError{
			What: fmt.Sprintf("%s has missing images or labels", name),
			One:  shapeOrInvalid(batch.Images),
			Two:  shapeOrInvalid(batch.Labels),
		}
	}
	imagesShape, labelsShape := batch.Images.Shape(), batch.Labels.Shape()
	for _, shape := range []shapes.Shape{imagesShape, labelsShape} {
		if err := shape.CheckMinRank(1); err != nil {
			return 0, &ShapeMismatchError{
				What: fmt.Sprintf("%s images and labels need a batch axis, %v", name, err),
				One:  imagesShape,
				Two:  labelsShape,
			}
		}
	}
	if err := labelsShape.CheckDim(0, imagesShape.Dim(0)); err != nil {
		return 0, &ShapeMismatchError{
			What: fmt.Sprintf("%s labels don't match the images batch size, %v", name, err),
			One:  imagesShape,
			Two:  labelsShape,
		}
	}
	for _, shape := range []shapes.Shape{imagesShape, labelsShape} {
		if !isSupportedDType(shape.DType) {
			return 0, errors.Wrapf(ErrInvalidParameter,
				"mixup: %s has dtype %s (shape %s), only Float32, Float64, Float16 and BFloat16 can be mixed",
				name, shape.DType, shape)
		}
	}
	return imagesShape.Dim(0), nil
}

// checkBatches validates that both batches can be mixed, and returns the batch size.
func checkBatches(batchOne, batchTwo Batch) (int, error) {
	batchSize, err := checkBatch("batch one", batchOne)
	if err != nil {
		return 0, err
	}
	if _, err = checkBatch("batch two", batchTwo); err != nil {
		return 0, err
	}
	if err := batchOne.Images.Shape().CheckSame(batchTwo.Images.Shape()); err != nil {
		return 0, &ShapeMismatchError{
			What: fmt.Sprintf("images of the two batches differ, %v", err),
			One:  batchOne.Images.Shape(),
			Two:  batchTwo.Images.Shape(),
		}
	}
	if err := batchOne.Labels.Shape().CheckSame(batchTwo.Labels.Shape()); err != nil {
		return 0, &ShapeMismatchError{
			What: fmt.Sprintf("labels of the two batches differ, %v", err),
			One:  batchOne.Labels.Shape(),
			Two:  batchTwo.Labels.Shape(),
		}
	}
	return batchSize, nil
}

func shapeOrInvalid(t *tensors.Tensor) shapes.Shape {
	if !t.Ok() {
		return shapes.Invalid()
	}
	return t.Shape()
}
