package lime

import (
	"github.com/YuminosukeSato/xaigo/pkg/log"
)

// Option is a function that configures Lime
type Option func(*Lime)

// WithBatchSize sets the number of inputs explained per chunk
func WithBatchSize(n int) Option {
	return func(l *Lime) {
		l.batchSize = n
	}
}

// WithNbSamples sets the number of perturbed samples generated per input
func WithNbSamples(n int) Option {
	return func(l *Lime) {
		l.nbSamples = n
	}
}

// WithBatchPerturbedSamples sets the sub-batch size used when predicting
// the perturbed samples. Unset, all perturbed samples of an input are
// predicted in one inference call.
func WithBatchPerturbedSamples(n int) Option {
	return func(l *Lime) {
		l.batchPerturbedSamples = n
	}
}

// WithInterpretableModel sets the surrogate model fit around each input.
// The default is ridge regression with alpha 2.
func WithInterpretableModel(s Surrogate) Option {
	return func(l *Lime) {
		l.surrogate = s
	}
}

// WithSimilarityKernel sets a custom similarity kernel, overriding the
// built-in exponential kernel selected by WithDistanceMode and
// WithKernelWidth.
func WithSimilarityKernel(k Kernel) Option {
	return func(l *Lime) {
		l.kernel = k
	}
}

// WithDistanceMode selects the distance of the built-in similarity kernel
func WithDistanceMode(mode DistanceMode) Option {
	return func(l *Lime) {
		l.distanceMode = mode
	}
}

// WithKernelWidth sets the width of the built-in similarity kernel
func WithKernelWidth(width float64) Option {
	return func(l *Lime) {
		l.kernelWidth = width
	}
}

// WithPerturber sets a custom perturbation sampler, overriding the
// default Bernoulli sampler.
func WithPerturber(p Perturber) Option {
	return func(l *Lime) {
		l.perturber = p
	}
}

// WithProb sets the inclusion probability of the default perturber
func WithProb(prob float64) Option {
	return func(l *Lime) {
		l.prob = prob
	}
}

// WithRandSeed seeds the default perturber, making explanations
// reproducible. A zero seed leaves sampling non-deterministic.
func WithRandSeed(seed int64) Option {
	return func(l *Lime) {
		l.seed = seed
	}
}

// WithSegmenter sets the mapping from inputs to interpretable features,
// overriding the default quickshift segmentation.
func WithSegmenter(s Segmenter) Option {
	return func(l *Lime) {
		l.segmenter = s
	}
}

// WithRefValues sets the per-channel reference value substituted at
// switched-off locations. Its length must match the input channel count;
// the default is mid-scale gray for 3-channel inputs and zero otherwise.
func WithRefValues(ref []float64) Option {
	return func(l *Lime) {
		l.refValues = ref
	}
}

// WithLogger sets the structured logger used by the explainer
func WithLogger(logger log.Logger) Option {
	return func(l *Lime) {
		l.logger = logger
	}
}
