package lime

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/tensor"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// broadcastExplanation expands an interpretable-space explanation to the
// input resolution: every location takes the coefficient of its feature
// group. Pure gather, exact, no interpolation.
//
// The result is an (H x W) matrix with row y, column x holding the
// coefficient of grid[x, y].
func broadcastExplanation(coef *mat.VecDense, grid *tensor.Grid) (*mat.Dense, error) {
	numFeatures := coef.Len()

	out := mat.NewDense(grid.H, grid.W, nil)
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			g := grid.At(x, y)
			if g < 0 || g >= numFeatures {
				return nil, errors.NewValueError("lime.broadcastExplanation",
					"grouping value out of range of explanation coefficients")
			}
			out.Set(y, x, coef.AtVec(g))
		}
	}
	return out, nil
}
