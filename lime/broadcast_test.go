package lime

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/tensor"
)

func TestBroadcastExplanation(t *testing.T) {
	grid := quadrantGrid(t)
	coef := mat.NewVecDense(4, []float64{0.1, -0.2, 0.3, -0.4})

	expl, err := broadcastExplanation(coef, grid)
	if err != nil {
		t.Fatalf("broadcastExplanation failed: %v", err)
	}
	rows, cols := expl.Dims()
	if rows != 4 || cols != 4 {
		t.Fatalf("Dims = (%d, %d), want (4, 4)", rows, cols)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := coef.AtVec(grid.At(x, y))
			if got := expl.At(y, x); got != want {
				t.Errorf("explanation at (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBroadcastExplanationSingleFeature(t *testing.T) {
	grid := tensor.NewGrid(3, 2)
	coef := mat.NewVecDense(1, []float64{1.5})

	expl, err := broadcastExplanation(coef, grid)
	if err != nil {
		t.Fatalf("broadcastExplanation failed: %v", err)
	}
	rows, cols := expl.Dims()
	if rows != 2 || cols != 3 {
		t.Fatalf("Dims = (%d, %d), want (2, 3)", rows, cols)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if expl.At(y, x) != 1.5 {
				t.Fatalf("explanation at (%d, %d) = %v, want uniform 1.5", x, y, expl.At(y, x))
			}
		}
	}
}

func TestBroadcastExplanationOutOfRange(t *testing.T) {
	grid := tensor.NewGrid(2, 2)
	grid.Set(0, 0, 5)
	coef := mat.NewVecDense(2, []float64{1, 2})

	if _, err := broadcastExplanation(coef, grid); err == nil {
		t.Error("expected error for grouping value beyond coefficient count")
	}
}
