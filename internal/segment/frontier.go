package segment

// frontierInitialCap is the starting capacity of a Frontier's backing store.
const frontierInitialCap = 1000

// Seed is a pixel coordinate: x is the row, y is the column.
type Seed struct {
	X int
	Y int
}

// Frontier is a growable LIFO stack of pixel coordinates. It exists so the
// traversal never recurses: depth-first growth through an explicit stack is
// part of the observable contract. Capacity grows by doubling and never
// shrinks during a run. Pure value semantics; the Frontier owns nothing
// beyond the coordinates themselves.
type Frontier struct {
	items []Seed
}

// NewFrontier returns an empty frontier with a modest preallocated capacity.
func NewFrontier() *Frontier {
	return &Frontier{items: make([]Seed, 0, frontierInitialCap)}
}

// Push appends a coordinate. Amortized O(1).
func (f *Frontier) Push(x, y int) {
	f.items = append(f.items, Seed{X: x, Y: y})
}

// Pop removes and returns the most recently pushed coordinate. Callers must
// check Empty first; popping an empty frontier panics.
func (f *Frontier) Pop() (x, y int) {
	n := len(f.items) - 1
	s := f.items[n]
	f.items = f.items[:n]
	return s.X, s.Y
}

// Empty reports whether the frontier holds no pending coordinates.
func (f *Frontier) Empty() bool {
	return len(f.items) == 0
}

// Len returns the number of pending coordinates.
func (f *Frontier) Len() int {
	return len(f.items)
}

// Clear drops all pending coordinates, keeping the backing capacity.
func (f *Frontier) Clear() {
	f.items = f.items[:0]
}
