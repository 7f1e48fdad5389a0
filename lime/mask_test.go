package lime

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/xaigo/core/tensor"
)

// quadrantGrid splits a 4x4 grid into four 2x2 features numbered 0..3.
func quadrantGrid(t *testing.T) *tensor.Grid {
	t.Helper()
	grid := tensor.NewGrid(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			grid.Set(x, y, (y/2)*2+x/2)
		}
	}
	return grid
}

func TestExpandMasksGather(t *testing.T) {
	grid := quadrantGrid(t)
	samples := mat.NewDense(2, 4, []float64{
		1, 0, 0, 1,
		0, 1, 1, 0,
	})

	masks, err := expandMasks(samples, grid)
	if err != nil {
		t.Fatalf("expandMasks failed: %v", err)
	}
	if len(masks) != 2 {
		t.Fatalf("len(masks) = %d, want 2", len(masks))
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			feature := grid.At(x, y)
			for r := 0; r < 2; r++ {
				got := masks[r][y*4+x]
				want := samples.At(r, feature)
				if got != want {
					t.Errorf("mask[%d] at (%d, %d) = %v, want %v", r, x, y, got, want)
				}
			}
		}
	}
}

func TestExpandMasksOutOfRange(t *testing.T) {
	grid := tensor.NewGrid(2, 2)
	grid.Set(1, 1, 3)
	samples := mat.NewDense(1, 2, []float64{1, 0})

	if _, err := expandMasks(samples, grid); err == nil {
		t.Error("expected error for grouping value beyond feature count")
	}
}

func TestApplyMasksKeepAndReplace(t *testing.T) {
	original := tensor.NewImage(2, 2, 3)
	for i := range original.Data {
		original.Data[i] = float64(i) / 10.0
	}
	refValues := []float64{0.5, 0.5, 0.5}

	masks := [][]float64{
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{1, 0, 0, 1},
	}
	perturbed, err := applyMasks(original, masks, refValues)
	if err != nil {
		t.Fatalf("applyMasks failed: %v", err)
	}
	if len(perturbed) != 3 {
		t.Fatalf("len(perturbed) = %d, want 3", len(perturbed))
	}

	// All-ones mask reproduces the original exactly.
	for i, v := range perturbed[0].Data {
		if v != original.Data[i] {
			t.Fatalf("all-ones mask: data[%d] = %v, want %v", i, v, original.Data[i])
		}
	}

	// All-zeros mask yields the reference value everywhere.
	for i, v := range perturbed[1].Data {
		if v != refValues[i%3] {
			t.Fatalf("all-zeros mask: data[%d] = %v, want %v", i, v, refValues[i%3])
		}
	}

	// Mixed mask keeps original channels at kept locations only.
	for loc := 0; loc < 4; loc++ {
		for c := 0; c < 3; c++ {
			got := perturbed[2].Data[loc*3+c]
			want := refValues[c]
			if masks[2][loc] != 0 {
				want = original.Data[loc*3+c]
			}
			if got != want {
				t.Errorf("mixed mask: location %d channel %d = %v, want %v", loc, c, got, want)
			}
		}
	}

	// The original must not be mutated.
	for i, v := range original.Data {
		if v != float64(i)/10.0 {
			t.Fatalf("original mutated at %d", i)
		}
	}
}

func TestApplyMasksRefValueMismatch(t *testing.T) {
	original := tensor.NewImage(2, 2, 3)
	masks := [][]float64{{1, 1, 1, 1}}
	if _, err := applyMasks(original, masks, []float64{0.5}); err == nil {
		t.Error("expected error for reference value length mismatch")
	}
}
