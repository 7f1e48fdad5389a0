package lime

import (
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"

	"github.com/YuminosukeSato/xaigo/core/tensor"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// defaultRefValues returns the substitution value used when an
// interpretable feature is switched off: mid-scale gray for 3-channel
// inputs (a gray pixel when inputs are normalized by 255), zero otherwise.
func defaultRefValues(channels int) []float64 {
	ref := make([]float64, channels)
	if channels == 3 {
		for c := range ref {
			ref[c] = 0.5
		}
	}
	return ref
}

// DominantRefValues derives a reference value from the input itself: the
// input's dominant color. Substituting the dominant color instead of
// mid-gray keeps perturbed samples closer to the input manifold when the
// background is far from gray.
//
// The input must have 3 channels, interpreted as RGB in [0, 1].
func DominantRefValues(input *tensor.Image) ([]float64, error) {
	if input.C != 3 {
		return nil, errors.NewDimensionError("lime.DominantRefValues", 3, input.C, 1)
	}
	if input.W == 0 || input.H == 0 {
		return nil, errors.NewModelError("lime.DominantRefValues", "empty input", errors.ErrEmptyData)
	}

	img := image.NewRGBA(image.Rect(0, 0, input.W, input.H))
	for y := 0; y < input.H; y++ {
		for x := 0; x < input.W; x++ {
			base := input.Offset(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(clamp01(input.Data[base]) * 255),
				G: uint8(clamp01(input.Data[base+1]) * 255),
				B: uint8(clamp01(input.Data[base+2]) * 255),
				A: 255,
			})
		}
	}

	c := dominantcolor.Find(img)
	return []float64{
		float64(c.R) / 255.0,
		float64(c.G) / 255.0,
		float64(c.B) / 255.0,
	}, nil
}
