package lime

import (
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// DefaultProb is the inclusion probability of the default perturber.
const DefaultProb = 0.5

// BernoulliPerturber is the default perturbation sampler: each cell of the
// interpretable sample matrix is independently 1 with probability Prob.
// No row is guaranteed to be non-degenerate; all-zero and all-one rows
// occur with nonzero probability.
type BernoulliPerturber struct {
	Prob float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBernoulliPerturber creates the default perturber. prob must lie in
// [0, 1]. A zero seed leaves the sampler non-deterministic; any other
// seed makes draws reproducible.
func NewBernoulliPerturber(prob float64, seed int64) (*BernoulliPerturber, error) {
	if prob < 0 || prob > 1 {
		return nil, errors.NewValidationError("prob", "must be in [0, 1]", prob)
	}
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	return &BernoulliPerturber{Prob: prob, rng: rng}, nil
}

// Sample draws a (nbSamples x numFeatures) binary matrix.
func (p *BernoulliPerturber) Sample(numFeatures, nbSamples int) (*mat.Dense, error) {
	if numFeatures <= 0 {
		return nil, errors.NewValueError("BernoulliPerturber.Sample", "numFeatures must be positive")
	}
	if nbSamples <= 0 {
		return nil, errors.NewValueError("BernoulliPerturber.Sample", "nbSamples must be positive")
	}

	out := mat.NewDense(nbSamples, numFeatures, nil)

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < nbSamples; i++ {
		for j := 0; j < numFeatures; j++ {
			if p.float64() < p.Prob {
				out.Set(i, j, 1)
			}
		}
	}
	return out, nil
}

func (p *BernoulliPerturber) float64() float64 {
	if p.rng != nil {
		return p.rng.Float64()
	}
	return rand.Float64()
}
