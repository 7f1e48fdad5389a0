package lime

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/tensor"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// batchPredictions queries the black-box model with the perturbed samples
// of one input and reduces each per-class score vector to a scalar by
// dot-producting it with the input's one-hot label selector.
//
// When batchSize is positive the perturbed samples are pushed through the
// model in sub-batches of that size; otherwise a single inference call
// covers the whole batch.
func batchPredictions(m Model, perturbed []*tensor.Image, label *mat.VecDense, batchSize int) (*mat.VecDense, error) {
	n := len(perturbed)
	if n == 0 {
		return nil, errors.NewModelError("lime.batchPredictions", "empty perturbed batch", errors.ErrEmptyData)
	}

	step := batchSize
	if step <= 0 || step > n {
		step = n
	}

	out := mat.NewVecDense(n, nil)
	for start := 0; start < n; start += step {
		end := start + step
		if end > n {
			end = n
		}

		preds, err := m.Predict(perturbed[start:end])
		if err != nil {
			return nil, errors.NewModelError("lime.batchPredictions", "oracle failure", err)
		}

		rows, cols := preds.Dims()
		if rows != end-start {
			return nil, errors.NewDimensionError("lime.batchPredictions", end-start, rows, 0)
		}
		if cols != label.Len() {
			return nil, errors.NewDimensionError("lime.batchPredictions", label.Len(), cols, 1)
		}

		for i := 0; i < rows; i++ {
			score := 0.0
			for j := 0; j < cols; j++ {
				score += preds.At(i, j) * label.AtVec(j)
			}
			out.SetVec(start+i, score)
		}
	}
	return out, nil
}
