package segment

// LabelMap is a mutable grid of region identifiers with the same dimensions
// as the PixelGrid it was created for. Label 0 means "unassigned". Once a
// cell becomes non-zero it is only ever reset by ClearRegion, which clears a
// whole region atomically with respect to the traversal.
type LabelMap struct {
	height, width int
	cells         []int // row-major
	labeled       int   // count of non-zero cells, maintained incrementally
}

// NewLabelMap allocates a height x width map with every cell unassigned.
func NewLabelMap(height, width int) *LabelMap {
	return &LabelMap{
		height: height,
		width:  width,
		cells:  make([]int, height*width),
	}
}

// Height returns the number of rows.
func (m *LabelMap) Height() int { return m.height }

// Width returns the number of columns.
func (m *LabelMap) Width() int { return m.width }

// Get returns the label at row x, column y.
func (m *LabelMap) Get(x, y int) int {
	return m.cells[x*m.width+y]
}

// Set assigns a label at row x, column y.
func (m *LabelMap) Set(x, y, label int) {
	i := x*m.width + y
	old := m.cells[i]
	if old == 0 && label != 0 {
		m.labeled++
	} else if old != 0 && label == 0 {
		m.labeled--
	}
	m.cells[i] = label
}

// ClearRegion resets every cell carrying the given label back to unassigned.
// Full-grid scan; acceptable because it only fires on small reclaimed
// regions.
func (m *LabelMap) ClearRegion(label int) {
	if label == 0 {
		return
	}
	for i, c := range m.cells {
		if c == label {
			m.cells[i] = 0
			m.labeled--
		}
	}
}

// CountLabeled returns the number of assigned (non-zero) cells.
func (m *LabelMap) CountLabeled() int {
	return m.labeled
}

// Count returns the number of cells carrying the given label.
func (m *LabelMap) Count(label int) int {
	n := 0
	for _, c := range m.cells {
		if c == label {
			n++
		}
	}
	return n
}
