package segment

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mode selects the similarity rule driving region growth.
type Mode int

const (
	// ModeFixed accepts candidates by Euclidean color distance to the
	// region's original seed pixel, against a fixed threshold.
	ModeFixed Mode = iota

	// ModeAdaptive accepts candidates by distance to the currently popped
	// pixel, against a running variance that follows the mean brightness of
	// pixels admitted to the region, floored at the configured threshold.
	ModeAdaptive
)

// String returns the mode name as used in configuration.
func (m Mode) String() string {
	switch m {
	case ModeAdaptive:
		return "adaptive"
	default:
		return "fixed"
	}
}

// SimilarityPolicy decides whether a candidate neighbor belongs to the
// currently growing region.
//
// The Grower calls Begin once when a region starts at a seed, Similar for
// every in-bounds unlabeled neighbor, and Admit for every candidate it
// actually labels. Similar must be side-effect free: the grower may test a
// candidate and still discard it when the global termination predicate
// fires mid-scan.
type SimilarityPolicy interface {
	// Begin resets per-region state for a region rooted at (x, y).
	Begin(x, y int)

	// Similar reports whether the candidate at (x, y), reached from the
	// popped pixel at (fromX, fromY), passes the similarity test.
	Similar(x, y, fromX, fromY int) bool

	// Admit records that the candidate at (x, y) was labeled into the
	// region.
	Admit(x, y int)
}

// FixedPolicy measures every candidate against the region's original seed
// pixel. The reference never moves as the region grows.
type FixedPolicy struct {
	grid      *PixelGrid
	threshold float64
	seed      Pixel
}

// NewFixedPolicy returns a fixed-threshold policy over the given grid.
func NewFixedPolicy(grid *PixelGrid, threshold float64) *FixedPolicy {
	return &FixedPolicy{grid: grid, threshold: threshold}
}

// Begin pins the reference color to the seed pixel of the new region.
func (p *FixedPolicy) Begin(x, y int) {
	p.seed = p.grid.At(x, y)
}

// Similar reports whether the candidate's distance to the seed pixel is
// below the threshold. The popped-pixel coordinates are ignored.
func (p *FixedPolicy) Similar(x, y, _, _ int) bool {
	return p.grid.At(x, y).Dist(p.seed) < p.threshold
}

// Admit is a no-op: the fixed reference carries no per-admission state.
func (p *FixedPolicy) Admit(_, _ int) {}

// AdaptivePolicy compares candidates against the currently popped pixel and
// tracks the mean brightness of admitted pixels as its running variance.
//
// The distance test uses the full 3-channel color vectors while the running
// mean accumulates scalar brightness. Region boundaries depend on this unit
// mismatch; do not reconcile the two scales.
type AdaptivePolicy struct {
	grid      *PixelGrid
	threshold float64
	elems     []float64 // brightness of every pixel admitted to the region
	variance  float64
}

// NewAdaptivePolicy returns an adaptive-threshold policy over the given
// grid.
func NewAdaptivePolicy(grid *PixelGrid, threshold float64) *AdaptivePolicy {
	return &AdaptivePolicy{grid: grid, threshold: threshold, variance: threshold}
}

// Begin resets the accumulator to the seed pixel's brightness and the
// running variance to the threshold floor.
func (p *AdaptivePolicy) Begin(x, y int) {
	p.elems = append(p.elems[:0], p.grid.At(x, y).Brightness())
	p.variance = p.threshold
}

// Similar reports whether the candidate's distance to the popped pixel is
// below the current running variance.
func (p *AdaptivePolicy) Similar(x, y, fromX, fromY int) bool {
	return p.grid.At(x, y).Dist(p.grid.At(fromX, fromY)) < p.variance
}

// Admit appends the candidate's brightness to the region accumulator and
// moves the running variance to the accumulator mean, clamped to the
// threshold floor. The variance may drift upward as the region accumulates
// brighter pixels but is never observed below the threshold.
func (p *AdaptivePolicy) Admit(x, y int) {
	p.elems = append(p.elems, p.grid.At(x, y).Brightness())
	p.variance = math.Max(stat.Mean(p.elems, nil), p.threshold)
}
