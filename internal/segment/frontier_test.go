package segment

import "testing"

func TestFrontier_LIFOOrder(t *testing.T) {
	f := NewFrontier()

	coords := []Seed{{0, 0}, {1, 2}, {3, 4}, {5, 6}}
	for _, c := range coords {
		f.Push(c.X, c.Y)
	}

	if f.Len() != len(coords) {
		t.Fatalf("Len: got %d, want %d", f.Len(), len(coords))
	}

	// Pops must come back in reverse push order.
	for i := len(coords) - 1; i >= 0; i-- {
		x, y := f.Pop()
		if x != coords[i].X || y != coords[i].Y {
			t.Errorf("pop %d: got (%d,%d), want (%d,%d)", i, x, y, coords[i].X, coords[i].Y)
		}
	}

	if !f.Empty() {
		t.Error("frontier should be empty after popping everything")
	}
}

func TestFrontier_GrowsBeyondInitialCapacity(t *testing.T) {
	f := NewFrontier()

	n := frontierInitialCap * 3
	for i := 0; i < n; i++ {
		f.Push(i, i*2)
	}

	if f.Len() != n {
		t.Fatalf("Len after growth: got %d, want %d", f.Len(), n)
	}

	for i := n - 1; i >= 0; i-- {
		x, y := f.Pop()
		if x != i || y != i*2 {
			t.Fatalf("pop: got (%d,%d), want (%d,%d)", x, y, i, i*2)
		}
	}
}

func TestFrontier_Clear(t *testing.T) {
	f := NewFrontier()
	f.Push(1, 1)
	f.Push(2, 2)

	f.Clear()

	if !f.Empty() {
		t.Error("frontier should be empty after Clear")
	}
	if f.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", f.Len())
	}

	// Still usable after clearing.
	f.Push(7, 8)
	x, y := f.Pop()
	if x != 7 || y != 8 {
		t.Errorf("pop after Clear: got (%d,%d), want (7,8)", x, y)
	}
}

func TestFrontier_PopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pop on empty frontier should panic")
		}
	}()

	NewFrontier().Pop()
}
