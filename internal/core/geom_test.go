package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestRectEmpty(t *testing.T) {
	if !NewRect(0, 0, 0, 5).Empty() {
		t.Error("zero-width rect should be empty")
	}
	if !NewRect(0, 0, 5, -1).Empty() {
		t.Error("negative-height rect should be empty")
	}
	if NewRect(0, 0, 1, 1).Empty() {
		t.Error("1x1 rect should not be empty")
	}
}

func TestBoxOverlapsX(t *testing.T) {
	bird := Box{X: 50, Y: 300, W: 34, H: 24}

	tests := []struct {
		name     string
		other    Box
		expected bool
	}{
		{"pipe fully left", Box{X: -10, W: 52}, false},
		{"pipe touching left edge", Box{X: -2, W: 52}, false},
		{"pipe overlapping left edge", Box{X: -1.5, W: 52}, true},
		{"pipe covering bird", Box{X: 40, W: 52}, true},
		{"pipe touching right edge", Box{X: 84, W: 52}, false},
		{"pipe just inside right edge", Box{X: 83.9, W: 52}, true},
		{"pipe fully right", Box{X: 200, W: 52}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := bird.OverlapsX(tc.other); got != tc.expected {
				t.Errorf("OverlapsX() = %v, expected %v", got, tc.expected)
			}
			if got := tc.other.OverlapsX(bird); got != tc.expected {
				t.Errorf("OverlapsX() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := Box{X: 1.5, Y: 2, W: 3, H: 4.5}
	if b.Right() != 4.5 {
		t.Errorf("Right() = %f, expected 4.5", b.Right())
	}
	if b.Bottom() != 6.5 {
		t.Errorf("Bottom() = %f, expected 6.5", b.Bottom())
	}
}
