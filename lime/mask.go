package lime

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/tensor"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// expandMasks translates interpretable samples into spatial masks through
// the grouping grid: location (x, y) of sample row r takes the row's value
// at feature index grid[x, y]. Pure gather, no approximation.
//
// The result is one flat (W*H) mask per sample row, in the grid's layout.
func expandMasks(interpSamples *mat.Dense, grid *tensor.Grid) ([][]float64, error) {
	nbSamples, numFeatures := interpSamples.Dims()

	masks := make([][]float64, nbSamples)
	for r := 0; r < nbSamples; r++ {
		row := interpSamples.RawRowView(r)
		mask := make([]float64, len(grid.Data))
		for i, g := range grid.Data {
			if g < 0 || g >= numFeatures {
				return nil, errors.NewValueError("lime.expandMasks",
					"grouping value out of range of interpretable features")
			}
			mask[i] = row[g]
		}
		masks[r] = mask
	}
	return masks, nil
}

// applyMasks synthesizes the perturbed sample batch: where a mask is 1 the
// original value is kept, elsewhere the reference value is substituted
// across channels. Deterministic given its inputs.
func applyMasks(original *tensor.Image, masks [][]float64, refValues []float64) ([]*tensor.Image, error) {
	if len(refValues) != original.C {
		return nil, errors.NewDimensionError("lime.applyMasks", original.C, len(refValues), 1)
	}

	out := make([]*tensor.Image, len(masks))
	for s, mask := range masks {
		if len(mask) != original.W*original.H {
			return nil, errors.NewDimensionError("lime.applyMasks", original.W*original.H, len(mask), 0)
		}
		img := tensor.NewImage(original.W, original.H, original.C)
		for i, keep := range mask {
			base := i * original.C
			if keep != 0 {
				copy(img.Data[base:base+original.C], original.Data[base:base+original.C])
			} else {
				copy(img.Data[base:base+original.C], refValues)
			}
		}
		out[s] = img
	}
	return out, nil
}
