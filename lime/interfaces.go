package lime

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/model"
	"github.com/YuminosukeSato/xaigo/core/tensor"
)

// Model is the black-box model being explained. It is treated as opaque:
// any batched predict function mapping inputs to per-class score vectors
// can be explained.
//
// Predict must return one row per input image and one column per class.
type Model interface {
	Predict(batch []*tensor.Image) (*mat.Dense, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(batch []*tensor.Image) (*mat.Dense, error)

// Predict implements Model.
func (f ModelFunc) Predict(batch []*tensor.Image) (*mat.Dense, error) {
	return f(batch)
}

// Segmenter maps each input to an integer grouping grid of the same
// spatial size, assigning every location to an interpretable-feature
// index. Values must be integers in [0, numFeatures-1]; the feature count
// is derived per input as max value + 1.
type Segmenter interface {
	Segment(inputs []*tensor.Image) ([]*tensor.Grid, error)
}

// SegmenterFunc adapts a plain function to the Segmenter interface.
type SegmenterFunc func(inputs []*tensor.Image) ([]*tensor.Grid, error)

// Segment implements Segmenter.
func (f SegmenterFunc) Segment(inputs []*tensor.Image) ([]*tensor.Grid, error) {
	return f(inputs)
}

// Perturber draws binary interpretable samples: a (nbSamples x
// numFeatures) matrix with values in {0, 1}, where 1 keeps the
// corresponding interpretable feature and 0 replaces it by the reference
// value. Degenerate rows (all-zero, all-one) are permitted.
type Perturber interface {
	Sample(numFeatures, nbSamples int) (*mat.Dense, error)
}

// PerturberFunc adapts a plain function to the Perturber interface.
type PerturberFunc func(numFeatures, nbSamples int) (*mat.Dense, error)

// Sample implements Perturber.
func (f PerturberFunc) Sample(numFeatures, nbSamples int) (*mat.Dense, error) {
	return f(numFeatures, nbSamples)
}

// Kernel scores the similarity between the original input and one
// perturbed sample, either in the input space (both images) or in the
// interpretable space (the binary sample vector). The score is used as
// the regression weight of the surrogate fit.
//
// Implementations must be safe for concurrent use; the pipeline scores
// samples in parallel.
type Kernel interface {
	Score(original, perturbed *tensor.Image, interpSample *mat.VecDense) (float64, error)
}

// KernelFunc adapts a plain function to the Kernel interface.
type KernelFunc func(original, perturbed *tensor.Image, interpSample *mat.VecDense) (float64, error)

// Score implements Kernel.
func (f KernelFunc) Score(original, perturbed *tensor.Image, interpSample *mat.VecDense) (float64, error) {
	return f(original, perturbed, interpSample)
}

// Surrogate is the interpretable model fit locally around each input.
// It must support a weighted fit and expose its per-feature coefficients,
// which become the explanation in interpretable space.
type Surrogate interface {
	model.WeightedFitter
	Coef() (*mat.VecDense, error)
}
