package lime

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/parallel"
	"github.com/YuminosukeSato/xaigo/core/tensor"
	"github.com/YuminosukeSato/xaigo/linear"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
	"github.com/YuminosukeSato/xaigo/pkg/log"
)

const (
	// DefaultNbSamples is the number of perturbed samples drawn per input.
	DefaultNbSamples = 150

	// largeFeatureThreshold is the interpretable-feature count above which
	// a performance warning is emitted at explain time.
	largeFeatureThreshold = 10000

	// unbatchedSamplesThreshold is the nb_samples value from which a
	// one-shot inference warning is emitted at construction time.
	unbatchedSamplesThreshold = 500

	// prefetchDepth bounds the chunk lookahead used to overlap sample
	// generation with oracle queries.
	prefetchDepth = 2
)

// Lime computes LIME explanations for a black-box model.
//
// All configuration is fixed at construction; no state persists across
// Explain calls.
type Lime struct {
	model Model

	batchSize             int
	nbSamples             int
	batchPerturbedSamples int

	surrogate Surrogate
	kernel    Kernel
	perturber Perturber
	segmenter Segmenter
	refValues []float64

	distanceMode DistanceMode
	kernelWidth  float64
	prob         float64
	seed         int64

	logger log.Logger
}

// New creates a Lime explainer for the given black-box model.
//
// Configuration errors (unknown distance mode, non-positive kernel width,
// out-of-range probability) fail here, before Explain is ever called.
func New(model Model, opts ...Option) (*Lime, error) {
	if model == nil {
		return nil, errors.NewValueError("lime.New", "model must not be nil")
	}

	l := &Lime{
		model:        model,
		batchSize:    1,
		nbSamples:    DefaultNbSamples,
		distanceMode: DistanceEuclidean,
		kernelWidth:  DefaultKernelWidth,
		prob:         DefaultProb,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.batchSize < 1 {
		return nil, errors.NewValidationError("batch_size", "must be at least 1", l.batchSize)
	}
	if l.nbSamples < 1 {
		return nil, errors.NewValidationError("nb_samples", "must be at least 1", l.nbSamples)
	}

	if l.kernel == nil {
		kernel, err := NewExpKernel(l.distanceMode, l.kernelWidth)
		if err != nil {
			return nil, err
		}
		l.kernel = kernel
	}
	if l.perturber == nil {
		perturber, err := NewBernoulliPerturber(l.prob, l.seed)
		if err != nil {
			return nil, err
		}
		l.perturber = perturber
	}
	if l.segmenter == nil {
		l.segmenter = NewQuickshiftSegmenter()
	}
	if l.surrogate == nil {
		l.surrogate = linear.NewRidge()
	}
	if l.logger == nil {
		l.logger = log.GetLogger().With(
			log.ExplainerKey, "Lime",
			log.ComponentKey, "lime",
		)
	}

	if l.nbSamples >= unbatchedSamplesThreshold && l.batchPerturbedSamples <= 0 {
		errors.Warn(errors.NewUnbatchedInferenceWarning(l.nbSamples))
	}

	return l, nil
}

// preparedChunk carries the perturbation samples of one chunk of inputs,
// generated ahead of the oracle queries consuming them.
type preparedChunk struct {
	start, end int
	interp     []*mat.Dense
	perturbed  [][]*tensor.Image
}

// Explain attributes the model's score for the selected labels to the
// inputs, returning one (H x W) attribution map per input, in input order.
//
// labels is a one-hot (N x L) matrix selecting the class to attribute for
// each of the N inputs. All working state is created and consumed within
// the call; any stage failure aborts the whole call.
func (l *Lime) Explain(inputs []*tensor.Image, labels *mat.Dense) (explanations []*mat.Dense, err error) {
	defer errors.Recover(&err, "Lime.Explain")
	start := time.Now()

	n := len(inputs)
	if n == 0 {
		return nil, errors.NewModelError("Lime.Explain", "no inputs", errors.ErrEmptyData)
	}
	labelRows, _ := labels.Dims()
	if labelRows != n {
		return nil, errors.NewDimensionError("Lime.Explain", n, labelRows, 0)
	}

	// Resolve reference values per input, before any sampling.
	refs := make([][]float64, n)
	for i, input := range inputs {
		if l.refValues != nil {
			if len(l.refValues) != input.C {
				return nil, errors.NewDimensionError("Lime.Explain", input.C, len(l.refValues), 1)
			}
			refs[i] = l.refValues
		} else {
			refs[i] = defaultRefValues(input.C)
		}
	}

	l.logger.Info("explanation started",
		log.OperationKey, "explain",
		log.InputsKey, n,
		log.NbSamplesKey, l.nbSamples,
		log.BatchSizeKey, l.batchSize,
		log.KernelWidthKey, l.kernelWidth,
	)

	grids, err := l.segmenter.Segment(inputs)
	if err != nil {
		return nil, errors.NewModelError("Lime.Explain", "segmenter failure", err)
	}
	if len(grids) != n {
		return nil, errors.NewDimensionError("Lime.Explain", n, len(grids), 0)
	}

	numFeatures := make([]int, n)
	maxFeatures := 0
	for i, grid := range grids {
		if grid.W != inputs[i].W || grid.H != inputs[i].H {
			return nil, errors.NewDimensionError("Lime.Explain", inputs[i].W*inputs[i].H, grid.W*grid.H, 0)
		}
		numFeatures[i] = grid.Max() + 1
		if numFeatures[i] > maxFeatures {
			maxFeatures = numFeatures[i]
		}
	}
	if maxFeatures > largeFeatureThreshold {
		errors.Warn(errors.NewLargeFeatureSpaceWarning(maxFeatures, largeFeatureThreshold))
	}

	coefs := make([]*mat.VecDense, n)
	numChunks := (n + l.batchSize - 1) / l.batchSize

	chunkBounds := func(c int) (int, int) {
		s := c * l.batchSize
		e := s + l.batchSize
		if e > n {
			e = n
		}
		return s, e
	}

	if numChunks > prefetchDepth {
		// Overlap sample generation with oracle queries: a producer
		// prepares up to prefetchDepth chunks ahead while the current
		// chunk is being predicted and fit. Channel order preserves
		// input order.
		type prepared struct {
			chunk *preparedChunk
			err   error
		}
		ready := make(chan prepared, prefetchDepth)
		done := make(chan struct{})
		defer close(done)

		go func() {
			defer close(ready)
			for c := 0; c < numChunks; c++ {
				s, e := chunkBounds(c)
				chunk, err := l.prepareChunk(inputs, grids, numFeatures, refs, s, e)
				select {
				case ready <- prepared{chunk: chunk, err: err}:
				case <-done:
					return
				}
				if err != nil {
					return
				}
			}
		}()

		for p := range ready {
			if p.err != nil {
				return nil, p.err
			}
			if err := l.processChunk(p.chunk, inputs, labels, coefs); err != nil {
				return nil, err
			}
		}
	} else {
		for c := 0; c < numChunks; c++ {
			s, e := chunkBounds(c)
			chunk, err := l.prepareChunk(inputs, grids, numFeatures, refs, s, e)
			if err != nil {
				return nil, err
			}
			if err := l.processChunk(chunk, inputs, labels, coefs); err != nil {
				return nil, err
			}
		}
	}

	// Broadcast every input's coefficients back to its resolution.
	explanations = make([]*mat.Dense, n)
	err = parallel.ParallelizeWithError(n, func(start, end int) error {
		for i := start; i < end; i++ {
			out, err := broadcastExplanation(coefs[i], grids[i])
			if err != nil {
				return err
			}
			explanations[i] = out
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("explanation finished",
		log.OperationKey, "explain",
		log.InputsKey, n,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return explanations, nil
}

// prepareChunk draws the interpretable samples for inputs [start, end) and
// synthesizes the perturbed batches. Sampling is sequential (the sampler
// owns the random stream); mask expansion and input synthesis are
// parallel across the chunk's inputs.
func (l *Lime) prepareChunk(inputs []*tensor.Image, grids []*tensor.Grid, numFeatures []int, refs [][]float64, start, end int) (*preparedChunk, error) {
	chunk := &preparedChunk{
		start:     start,
		end:       end,
		interp:    make([]*mat.Dense, end-start),
		perturbed: make([][]*tensor.Image, end-start),
	}

	for i := start; i < end; i++ {
		interp, err := l.perturber.Sample(numFeatures[i], l.nbSamples)
		if err != nil {
			return nil, errors.NewModelError("Lime.Explain", "perturber failure", err)
		}
		rows, cols := interp.Dims()
		if rows != l.nbSamples || cols != numFeatures[i] {
			return nil, errors.NewDimensionError("Lime.Explain", l.nbSamples*numFeatures[i], rows*cols, 0)
		}
		chunk.interp[i-start] = interp
	}

	err := parallel.ParallelizeWithError(end-start, func(s, e int) error {
		for k := s; k < e; k++ {
			i := start + k
			masks, err := expandMasks(chunk.interp[k], grids[i])
			if err != nil {
				return err
			}
			perturbed, err := applyMasks(inputs[i], masks, refs[i])
			if err != nil {
				return err
			}
			chunk.perturbed[k] = perturbed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// processChunk queries the oracle, weights the samples and fits the
// surrogate for every input of the chunk, storing the interpretable-space
// coefficients. Surrogate fits run sequentially: the surrogate instance is
// shared and its coefficients are copied out after each fit.
func (l *Lime) processChunk(chunk *preparedChunk, inputs []*tensor.Image, labels *mat.Dense, coefs []*mat.VecDense) error {
	for k := 0; k < chunk.end-chunk.start; k++ {
		i := chunk.start + k

		label := mat.VecDenseCopyOf(labels.RowView(i))
		scores, err := batchPredictions(l.model, chunk.perturbed[k], label, l.batchPerturbedSamples)
		if err != nil {
			return err
		}

		weights, err := l.similarities(inputs[i], chunk.perturbed[k], chunk.interp[k])
		if err != nil {
			return err
		}

		if err := l.surrogate.FitWeighted(chunk.interp[k], scores, weights); err != nil {
			return errors.NewModelError("Lime.Explain", "fitter failure", err)
		}
		coef, err := l.surrogate.Coef()
		if err != nil {
			return errors.NewModelError("Lime.Explain", "fitter failure", err)
		}
		coefs[i] = coef
	}
	return nil
}

// similarities scores every perturbed sample of one input against the
// original, in parallel. A vanishing weight mass is reported through the
// warning channel but never alters the fit.
func (l *Lime) similarities(original *tensor.Image, perturbed []*tensor.Image, interp *mat.Dense) (*mat.VecDense, error) {
	weights := mat.NewVecDense(len(perturbed), nil)
	err := parallel.ParallelizeWithError(len(perturbed), func(start, end int) error {
		for s := start; s < end; s++ {
			row := mat.VecDenseCopyOf(interp.RowView(s))
			w, err := l.kernel.Score(original, perturbed[s], row)
			if err != nil {
				return err
			}
			weights.SetVec(s, w)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sum := 0.0
	for s := 0; s < weights.Len(); s++ {
		sum += weights.AtVec(s)
	}
	if math.IsNaN(sum) || sum < 1e-30 {
		errors.Warn(errors.NewDegenerateWeightsWarning(sum, weights.Len()))
	}
	return weights, nil
}
