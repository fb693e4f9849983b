package segment

import (
	"fmt"
	"math"
)

const (
	// minRegionArea is the smallest region (an 8x8 block) allowed to survive
	// a seeded run. Smaller regions are reclaimed and growth is retried from
	// a shifted coordinate.
	minRegionArea = 8 * 8

	// maxIterations bounds seeded runs. The cap is a safety valve, not a
	// normal exit path; hitting it yields a valid partial labeling.
	maxIterations = 200000
)

// Grower orchestrates a single labeling pass over a PixelGrid. It selects
// seeds, drives the Frontier-based traversal through a SimilarityPolicy,
// applies small-region reclamation in seeded mode, and produces the final
// LabelMap.
//
// A Grower performs one pass; create a fresh Grower per run. It is not safe
// for concurrent use.
type Grower struct {
	grid       *PixelGrid
	labels     *LabelMap
	frontier   *Frontier
	policy     SimilarityPolicy
	regions    int // highest region id currently assigned
	iterations int // popped-pixel count across the run
}

// NewGrower validates the inputs and prepares a pass over grid in the given
// mode. The threshold must be a finite non-negative number; the grid must be
// non-empty. The algorithm itself never re-validates input after setup.
func NewGrower(grid *PixelGrid, threshold float64, mode Mode) (*Grower, error) {
	if grid == nil {
		return nil, fmt.Errorf("nil pixel grid")
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		return nil, fmt.Errorf("invalid threshold %v: must be a finite non-negative number", threshold)
	}

	var policy SimilarityPolicy
	switch mode {
	case ModeFixed:
		policy = NewFixedPolicy(grid, threshold)
	case ModeAdaptive:
		policy = NewAdaptivePolicy(grid, threshold)
	default:
		return nil, fmt.Errorf("unknown similarity mode %d", mode)
	}

	return &Grower{
		grid:     grid,
		labels:   NewLabelMap(grid.Height(), grid.Width()),
		frontier: NewFrontier(),
		policy:   policy,
	}, nil
}

// GrowAll runs exhaustive mode: every grid cell is scanned in row-major
// order and every still-unlabeled cell seeds a new region. No reclamation
// and no iteration cap apply; every pixel ends up labeled.
func (g *Grower) GrowAll() *LabelMap {
	for x0 := 0; x0 < g.grid.Height(); x0++ {
		for y0 := 0; y0 < g.grid.Width(); y0++ {
			if g.labels.Get(x0, y0) != 0 {
				continue
			}
			g.startRegion(x0, y0)
			g.drain(false)
		}
	}
	return g.labels
}

// GrowFromSeeds runs seeded mode. Each seed's 8-neighborhood is appended to
// the seed list before processing begins, increasing seed density near the
// caller's picks. Seeds that are already labeled or sit on absent (all-zero)
// pixels are skipped. After each region drains, the run stops if the
// termination predicate holds; otherwise regions smaller than 64 pixels are
// reclaimed and growth retries from the seed shifted by (-1,-1).
//
// Hitting the iteration cap is not an error: the returned LabelMap is a
// valid partial result. Callers distinguish full from partial results by
// comparing CountLabeled against the pixel count.
func (g *Grower) GrowFromSeeds(seeds []Seed) (*LabelMap, error) {
	for _, s := range seeds {
		if !g.grid.InBounds(s.X, s.Y) {
			return nil, fmt.Errorf("seed (%d,%d) outside grid %dx%d",
				s.X, s.Y, g.grid.Height(), g.grid.Width())
		}
	}

	for _, s := range g.expandSeeds(seeds) {
		x0, y0 := s.X, s.Y
		for {
			if !g.grid.InBounds(x0, y0) || g.labels.Get(x0, y0) != 0 || !g.grid.At(x0, y0).Present() {
				break
			}
			g.startRegion(x0, y0)
			if g.drain(true) {
				return g.labels, nil
			}
			if g.labels.Count(g.regions) < minRegionArea {
				// Reclaim the undersized region as a whole and retry from a
				// nearby coordinate instead of abandoning the neighborhood.
				g.labels.ClearRegion(g.regions)
				g.regions--
				x0--
				y0--
				continue
			}
			break
		}
	}
	return g.labels, nil
}

// startRegion allocates the next region id, labels the seed cell, primes the
// policy and pushes the seed onto the frontier.
func (g *Grower) startRegion(x, y int) {
	g.regions++
	g.labels.Set(x, y, g.regions)
	g.policy.Begin(x, y)
	g.frontier.Push(x, y)
}

// drain empties the frontier for the current region. For every popped
// coordinate it visits the 8 neighbors (row offset outer, column offset
// inner), and labels and pushes each in-bounds, unlabeled,
// similarity-positive neighbor.
//
// When bounded, the termination predicate is checked before every admission;
// if it holds, the remaining neighbors of the current popped pixel are
// abandoned immediately. The early exit bounds the worst-case iteration
// count and is required, not an optimization. Draining continues so the
// frontier is empty for the caller's end-of-region check.
//
// Returns whether the bounded run has terminated.
func (g *Grower) drain(bounded bool) bool {
	for !g.frontier.Empty() {
		x, y := g.frontier.Pop()
		g.iterations++
		region := g.labels.Get(x, y)

	scan:
		for i := -1; i <= 1; i++ {
			for j := -1; j <= 1; j++ {
				if i == 0 && j == 0 {
					continue
				}
				nx, ny := x+i, y+j
				if !g.grid.InBounds(nx, ny) || g.labels.Get(nx, ny) != 0 {
					continue
				}
				if !g.policy.Similar(nx, ny, x, y) {
					continue
				}
				if bounded && g.terminated() {
					break scan
				}
				g.labels.Set(nx, ny, region)
				g.frontier.Push(nx, ny)
				g.policy.Admit(nx, ny)
			}
		}
	}
	return bounded && g.terminated()
}

// terminated is the global termination predicate for bounded (seeded) runs.
func (g *Grower) terminated() bool {
	return g.iterations > maxIterations ||
		g.labels.CountLabeled() == g.grid.Height()*g.grid.Width()
}

// expandSeeds interleaves each seed with its in-bounds 8-neighborhood, in
// input order.
func (g *Grower) expandSeeds(seeds []Seed) []Seed {
	expanded := make([]Seed, 0, len(seeds)*9)
	for _, s := range seeds {
		expanded = append(expanded, s)
		for i := -1; i <= 1; i++ {
			for j := -1; j <= 1; j++ {
				if i == 0 && j == 0 {
					continue
				}
				if g.grid.InBounds(s.X+i, s.Y+j) {
					expanded = append(expanded, Seed{X: s.X + i, Y: s.Y + j})
				}
			}
		}
	}
	return expanded
}

// Labels returns the label map produced so far.
func (g *Grower) Labels() *LabelMap {
	return g.labels
}

// Regions returns the highest region id currently assigned. In seeded mode
// reclaimed ids are reused by the next region, never left as gaps.
func (g *Grower) Regions() int {
	return g.regions
}

// Iterations returns the number of coordinates popped from the frontier
// across the whole run.
func (g *Grower) Iterations() int {
	return g.iterations
}

// Complete reports whether every pixel was assigned a region. Seeded runs
// that hit the iteration cap, and seeded runs over images with absent
// pixels, return valid but incomplete labelings.
func (g *Grower) Complete() bool {
	return g.labels.CountLabeled() == g.grid.Height()*g.grid.Width()
}
