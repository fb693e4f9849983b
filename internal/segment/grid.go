package segment

import (
	"fmt"
	"math"
)

// Pixel is a single 3-channel color sample. Channel order is whatever the
// source decoder provides; all three channels are treated symmetrically.
type Pixel [3]int

// Dist returns the Euclidean distance between two pixels:
// sqrt(sum over channels of (a_i - b_i)^2).
func (p Pixel) Dist(q Pixel) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := float64(p[i] - q[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Brightness returns the mean of the three channel values.
func (p Pixel) Brightness() float64 {
	return float64(p[0]+p[1]+p[2]) / 3.0
}

// Present reports whether the pixel has a non-zero norm. Seeded runs skip
// absent (all-zero, i.e. black background) pixels.
func (p Pixel) Present() bool {
	return p[0] != 0 || p[1] != 0 || p[2] != 0
}

// PixelGrid is a read-only view over a 2-D array of color samples. It is
// populated once (via SetPixel) before a run and must not be mutated while a
// Grower is using it.
type PixelGrid struct {
	height, width int
	pix           []Pixel // row-major
}

// NewPixelGrid allocates a height x width grid of zero pixels.
// Zero or negative dimensions are rejected.
func NewPixelGrid(height, width int) (*PixelGrid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", height, width)
	}
	return &PixelGrid{
		height: height,
		width:  width,
		pix:    make([]Pixel, height*width),
	}, nil
}

// Height returns the number of rows.
func (g *PixelGrid) Height() int { return g.height }

// Width returns the number of columns.
func (g *PixelGrid) Width() int { return g.width }

// InBounds reports whether (x, y) lies inside the grid. Every generated
// neighbor coordinate goes through this predicate before any grid access.
func (g *PixelGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.height && y >= 0 && y < g.width
}

// At returns the sample at row x, column y. Bounds are the caller's
// responsibility; out-of-range access panics.
func (g *PixelGrid) At(x, y int) Pixel {
	return g.pix[x*g.width+y]
}

// SetPixel stores a sample at row x, column y. Intended for grid
// construction only; the grid is read-only during a run.
func (g *PixelGrid) SetPixel(x, y int, p Pixel) {
	g.pix[x*g.width+y] = p
}
