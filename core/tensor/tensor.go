// Package tensor provides the flat-slice spatial types the explainability
// pipeline works on: Image, a W x H x C float tensor, and Grid, a W x H
// integer array used for interpretable-feature groupings.
//
// Both types store their data row-major in a single slice, matching the
// layout convention offset = (y*W + x); Image additionally interleaves
// channels at each location.
package tensor

import (
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// Image is a dense W x H x C tensor with interleaved channels.
type Image struct {
	W, H, C int
	Data    []float64
}

// NewImage allocates a zero-valued image.
func NewImage(w, h, c int) *Image {
	return &Image{W: w, H: h, C: c, Data: make([]float64, w*h*c)}
}

// NewImageFrom wraps an existing flat slice. The slice length must equal
// w*h*c.
func NewImageFrom(w, h, c int, data []float64) (*Image, error) {
	if len(data) != w*h*c {
		return nil, errors.NewValueError("tensor.NewImageFrom", "data length does not match w*h*c")
	}
	return &Image{W: w, H: h, C: c, Data: data}, nil
}

// At returns the value at location (x, y) in channel c.
func (im *Image) At(x, y, c int) float64 {
	return im.Data[(y*im.W+x)*im.C+c]
}

// Set assigns the value at location (x, y) in channel c.
func (im *Image) Set(x, y, c int, v float64) {
	im.Data[(y*im.W+x)*im.C+c] = v
}

// Offset returns the index of (x, y)'s first channel in Data.
func (im *Image) Offset(x, y int) int {
	return (y*im.W + x) * im.C
}

// Clone deep-copies the image.
func (im *Image) Clone() *Image {
	n := &Image{W: im.W, H: im.H, C: im.C, Data: make([]float64, len(im.Data))}
	copy(n.Data, im.Data)
	return n
}

// Fill sets every location to the given per-channel values. The length of
// values must equal the channel count.
func (im *Image) Fill(values []float64) error {
	if len(values) != im.C {
		return errors.NewDimensionError("tensor.Image.Fill", im.C, len(values), 1)
	}
	for i := 0; i < len(im.Data); i += im.C {
		copy(im.Data[i:i+im.C], values)
	}
	return nil
}

// SameShape reports whether two images have identical dimensions.
func (im *Image) SameShape(other *Image) bool {
	return im.W == other.W && im.H == other.H && im.C == other.C
}

// Grid is a dense W x H integer array.
type Grid struct {
	W, H int
	Data []int
}

// NewGrid allocates a zero-valued grid.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Data: make([]int, w*h)}
}

// NewGridFrom wraps an existing flat slice. The slice length must equal w*h.
func NewGridFrom(w, h int, data []int) (*Grid, error) {
	if len(data) != w*h {
		return nil, errors.NewValueError("tensor.NewGridFrom", "data length does not match w*h")
	}
	return &Grid{W: w, H: h, Data: data}, nil
}

// At returns the value at location (x, y).
func (g *Grid) At(x, y int) int {
	return g.Data[y*g.W+x]
}

// Set assigns the value at location (x, y).
func (g *Grid) Set(x, y, v int) {
	g.Data[y*g.W+x] = v
}

// Max returns the maximum value in the grid. An empty grid yields 0.
func (g *Grid) Max() int {
	if len(g.Data) == 0 {
		return 0
	}
	m := g.Data[0]
	for _, v := range g.Data[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
