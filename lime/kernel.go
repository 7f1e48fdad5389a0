package lime

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/tensor"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// DistanceMode selects the distance used by the built-in exponential
// similarity kernel.
type DistanceMode string

const (
	// DistanceEuclidean uses the Euclidean norm between the flattened
	// original and perturbed inputs.
	DistanceEuclidean DistanceMode = "euclidean"
	// DistanceCosine uses 1 - cosine_similarity between the flattened
	// original and perturbed inputs.
	DistanceCosine DistanceMode = "cosine"
)

// DefaultKernelWidth is the width of the default similarity kernel.
// It must evolve with the input size: too small a width on large inputs
// yields similarities close to zero for every perturbed sample and the
// surrogate fit degenerates. Scaling it is the caller's responsibility.
const DefaultKernelWidth = 45.0

// NewExpKernel returns the exponential similarity kernel
//
//	exp(-D(original, perturbed)^2 / width^2)
//
// where D is selected by mode. An unknown mode or a non-positive width
// fails immediately with a validation error, before any explanation runs.
func NewExpKernel(mode DistanceMode, width float64) (Kernel, error) {
	if width <= 0 {
		return nil, errors.NewValidationError("kernel_width", "must be positive", width)
	}
	switch mode {
	case DistanceEuclidean:
		return KernelFunc(func(original, perturbed *tensor.Image, _ *mat.VecDense) (float64, error) {
			d2, err := squaredEuclidean(original, perturbed)
			if err != nil {
				return 0, err
			}
			return math.Exp(-d2 / (width * width)), nil
		}), nil
	case DistanceCosine:
		return KernelFunc(func(original, perturbed *tensor.Image, _ *mat.VecDense) (float64, error) {
			d, err := cosineDistance(original, perturbed)
			if err != nil {
				return 0, err
			}
			return math.Exp(-(d * d) / (width * width)), nil
		}), nil
	default:
		return nil, errors.NewValidationError("distance_mode", "must be either euclidean or cosine", string(mode))
	}
}

func squaredEuclidean(a, b *tensor.Image) (float64, error) {
	if len(a.Data) != len(b.Data) {
		return 0, errors.NewDimensionError("lime.kernel", len(a.Data), len(b.Data), 1)
	}
	d2 := 0.0
	for i, v := range a.Data {
		diff := v - b.Data[i]
		d2 += diff * diff
	}
	return d2, nil
}

func cosineDistance(a, b *tensor.Image) (float64, error) {
	if len(a.Data) != len(b.Data) {
		return 0, errors.NewDimensionError("lime.kernel", len(a.Data), len(b.Data), 1)
	}
	var dot, na, nb float64
	for i, v := range a.Data {
		w := b.Data[i]
		dot += v * w
		na += v * v
		nb += w * w
	}
	// A zero-norm vector has cosine similarity 0 by convention.
	cos := errors.SafeDivide(dot, math.Sqrt(na)*math.Sqrt(nb))
	return 1.0 - cos, nil
}
