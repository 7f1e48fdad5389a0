package lime

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/YuminosukeSato/xaigo/core/parallel"
	"github.com/YuminosukeSato/xaigo/core/tensor"
	"github.com/YuminosukeSato/xaigo/pkg/errors"
)

// Default quickshift parameters.
const (
	DefaultQuickshiftRatio      = 0.5
	DefaultQuickshiftKernelSize = 2.0
	DefaultQuickshiftMaxDist    = 10.0
)

// QuickshiftSegmenter is the default mapping from inputs to interpretable
// features. It runs a quickshift mode-seeking segmentation independently
// per input: pixels climb towards the nearest higher-density neighbor in a
// joint color+position feature space, and each resulting tree is one
// superpixel.
//
// Three-channel inputs are treated as RGB in [0, 1] and compared in Lab
// space; other channel counts are compared on their raw values. The
// segmenter is a pure function of the input, with no learned state.
type QuickshiftSegmenter struct {
	// Ratio balances color-space against image-space proximity, in (0, 1].
	Ratio float64
	// KernelSize is the bandwidth of the Gaussian density estimate.
	KernelSize float64
	// MaxDist is the cut-off distance above which pixels stop climbing,
	// bounding the superpixel extent.
	MaxDist float64
}

// NewQuickshiftSegmenter returns a quickshift segmenter with the default
// parameters.
func NewQuickshiftSegmenter() *QuickshiftSegmenter {
	return &QuickshiftSegmenter{
		Ratio:      DefaultQuickshiftRatio,
		KernelSize: DefaultQuickshiftKernelSize,
		MaxDist:    DefaultQuickshiftMaxDist,
	}
}

// Segment implements Segmenter. Inputs are processed independently and in
// parallel; the returned grids match the input order.
func (s *QuickshiftSegmenter) Segment(inputs []*tensor.Image) ([]*tensor.Grid, error) {
	if s.KernelSize <= 0 {
		return nil, errors.NewValidationError("kernel_size", "must be positive", s.KernelSize)
	}
	if s.Ratio <= 0 {
		return nil, errors.NewValidationError("ratio", "must be positive", s.Ratio)
	}

	grids := make([]*tensor.Grid, len(inputs))
	err := parallel.ParallelizeWithError(len(inputs), func(start, end int) error {
		for i := start; i < end; i++ {
			grid, err := s.segmentOne(inputs[i])
			if err != nil {
				return err
			}
			grids[i] = grid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grids, nil
}

func (s *QuickshiftSegmenter) segmentOne(img *tensor.Image) (*tensor.Grid, error) {
	w, h := img.W, img.H
	if w == 0 || h == 0 {
		return nil, errors.NewModelError("QuickshiftSegmenter.Segment", "empty input", errors.ErrEmptyData)
	}

	feat := s.features(img)
	nf := len(feat) / (w * h)

	dist2 := func(i, j int) float64 {
		xi, yi := i%w, i/w
		xj, yj := j%w, j/w
		dx := float64(xi - xj)
		dy := float64(yi - yj)
		d := dx*dx + dy*dy
		for c := 0; c < nf; c++ {
			diff := feat[i*nf+c] - feat[j*nf+c]
			d += diff * diff
		}
		return d
	}

	// Parzen density estimate over a 3-sigma window.
	densities := make([]float64, w*h)
	dwin := int(math.Ceil(3 * s.KernelSize))
	inv := 1.0 / (2 * s.KernelSize * s.KernelSize)
	parallel.Parallelize(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				sum := 0.0
				for ny := maxInt(0, y-dwin); ny <= minInt(h-1, y+dwin); ny++ {
					for nx := maxInt(0, x-dwin); nx <= minInt(w-1, x+dwin); nx++ {
						sum += math.Exp(-dist2(i, ny*w+nx) * inv)
					}
				}
				densities[i] = sum
			}
		}
	})

	// Each pixel links to the closest higher-density neighbor within
	// MaxDist; pixels with none are modes and seed a superpixel.
	parent := make([]int, w*h)
	pwin := int(math.Ceil(s.MaxDist))
	maxDist2 := s.MaxDist * s.MaxDist
	parallel.Parallelize(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				parent[i] = i
				best := math.MaxFloat64
				for ny := maxInt(0, y-pwin); ny <= minInt(h-1, y+pwin); ny++ {
					for nx := maxInt(0, x-pwin); nx <= minInt(w-1, x+pwin); nx++ {
						j := ny*w + nx
						if densities[j] <= densities[i] {
							continue
						}
						if d := dist2(i, j); d < best && d <= maxDist2 {
							best = d
							parent[i] = j
						}
					}
				}
			}
		}
	})

	// Resolve every pixel to its mode and relabel modes consecutively in
	// scan order, so values are integers in [0, numFeatures-1].
	grid := tensor.NewGrid(w, h)
	labels := make(map[int]int)
	for i := range parent {
		root := i
		for parent[root] != root {
			root = parent[root]
		}
		// path compression
		for j := i; parent[j] != root; {
			parent[j], j = root, parent[j]
		}
		label, ok := labels[root]
		if !ok {
			label = len(labels)
			labels[root] = label
		}
		grid.Data[i] = label
	}
	return grid, nil
}

// features returns the color part of the joint feature space, scaled by
// Ratio. Layout is pixel-major, nf values per pixel.
func (s *QuickshiftSegmenter) features(img *tensor.Image) []float64 {
	w, h, c := img.W, img.H, img.C
	if c == 3 {
		feat := make([]float64, w*h*3)
		for i := 0; i < w*h; i++ {
			col := colorful.Color{
				R: clamp01(img.Data[i*3]),
				G: clamp01(img.Data[i*3+1]),
				B: clamp01(img.Data[i*3+2]),
			}
			l, a, b := col.Lab()
			feat[i*3] = l * s.Ratio
			feat[i*3+1] = a * s.Ratio
			feat[i*3+2] = b * s.Ratio
		}
		return feat
	}

	feat := make([]float64, len(img.Data))
	for i, v := range img.Data {
		feat[i] = v * s.Ratio
	}
	return feat
}

// KMeansSegmenter is an alternative mapping clustering pixels with k-means
// in a joint color+position feature space. It produces a fixed number of
// interpretable features per input (fewer when the input has fewer pixels
// than segments), which keeps the surrogate dimensionality under control
// on large inputs.
type KMeansSegmenter struct {
	// Segments is the number of clusters to request per input.
	Segments int
	// SpatialWeight scales the normalized pixel coordinates added to each
	// observation; larger values produce more compact segments.
	SpatialWeight float64
}

// NewKMeansSegmenter returns a k-means segmenter producing at most the
// given number of interpretable features per input.
func NewKMeansSegmenter(segments int) *KMeansSegmenter {
	return &KMeansSegmenter{Segments: segments, SpatialWeight: 1.0}
}

// Segment implements Segmenter.
func (s *KMeansSegmenter) Segment(inputs []*tensor.Image) ([]*tensor.Grid, error) {
	if s.Segments <= 0 {
		return nil, errors.NewValidationError("segments", "must be positive", s.Segments)
	}

	grids := make([]*tensor.Grid, len(inputs))
	err := parallel.ParallelizeWithError(len(inputs), func(start, end int) error {
		for i := start; i < end; i++ {
			grid, err := s.segmentOne(inputs[i])
			if err != nil {
				return err
			}
			grids[i] = grid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grids, nil
}

func (s *KMeansSegmenter) segmentOne(img *tensor.Image) (*tensor.Grid, error) {
	w, h := img.W, img.H
	if w == 0 || h == 0 {
		return nil, errors.NewModelError("KMeansSegmenter.Segment", "empty input", errors.ErrEmptyData)
	}

	k := s.Segments
	if pixels := w * h; k > pixels {
		k = pixels
	}
	if k == 1 {
		return tensor.NewGrid(w, h), nil
	}

	// Subsample the observations to keep kmeans tractable on large inputs.
	const maxSamples = 12000
	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, w*h/step+1)
	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			dataset = append(dataset, s.observation(img, x, y))
		}
	}
	if len(dataset) < k {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, errors.NewModelError("KMeansSegmenter.Segment", "kmeans failure", err)
	}

	grid := tensor.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid.Set(x, y, cc.Nearest(s.observation(img, x, y)))
		}
	}
	return grid, nil
}

func (s *KMeansSegmenter) observation(img *tensor.Image, x, y int) clusters.Coordinates {
	coords := make(clusters.Coordinates, 0, img.C+2)
	if img.C == 3 {
		base := img.Offset(x, y)
		col := colorful.Color{
			R: clamp01(img.Data[base]),
			G: clamp01(img.Data[base+1]),
			B: clamp01(img.Data[base+2]),
		}
		l, a, b := col.Lab()
		coords = append(coords, l, a, b)
	} else {
		base := img.Offset(x, y)
		for c := 0; c < img.C; c++ {
			coords = append(coords, img.Data[base+c])
		}
	}
	coords = append(coords,
		s.SpatialWeight*float64(x)/float64(img.W),
		s.SpatialWeight*float64(y)/float64(img.H),
	)
	return coords
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
