package lime

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/xaigo/core/tensor"
)

func TestDefaultRefValues(t *testing.T) {
	tests := []struct {
		channels int
		want     []float64
	}{
		{1, []float64{0}},
		{3, []float64{0.5, 0.5, 0.5}},
		{4, []float64{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		got := defaultRefValues(tt.channels)
		if len(got) != len(tt.want) {
			t.Fatalf("channels=%d: len = %d, want %d", tt.channels, len(got), len(tt.want))
		}
		for c := range got {
			if got[c] != tt.want[c] {
				t.Errorf("channels=%d: ref[%d] = %v, want %v", tt.channels, c, got[c], tt.want[c])
			}
		}
	}
}

func TestDominantRefValues(t *testing.T) {
	// Mostly red with a few blue pixels: the dominant color is red.
	img := tensor.NewImage(8, 8, 3)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, 0, 1.0)
		}
	}
	img.Set(0, 0, 0, 0)
	img.Set(0, 0, 2, 1.0)

	ref, err := DominantRefValues(img)
	if err != nil {
		t.Fatalf("DominantRefValues failed: %v", err)
	}
	if len(ref) != 3 {
		t.Fatalf("len(ref) = %d, want 3", len(ref))
	}
	if math.Abs(ref[0]-1.0) > 0.1 || ref[2] > 0.1 {
		t.Errorf("dominant color = %v, want close to red", ref)
	}
	for c, v := range ref {
		if v < 0 || v > 1 {
			t.Errorf("ref[%d] = %v outside [0, 1]", c, v)
		}
	}
}

func TestDominantRefValuesErrors(t *testing.T) {
	if _, err := DominantRefValues(tensor.NewImage(4, 4, 1)); err == nil {
		t.Error("expected error for non-RGB input")
	}
	if _, err := DominantRefValues(tensor.NewImage(0, 0, 3)); err == nil {
		t.Error("expected error for empty input")
	}
}
