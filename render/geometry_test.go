package render

import "testing"

func TestCorners_Fit(t *testing.T) {
	c := uniformCorners(10).fit(10, 40)
	for i, r := range c {
		if r != 5 {
			t.Errorf("corner[%d] = %v, want 5", i, r)
		}
	}

	small := uniformCorners(2).fit(10, 10)
	if small[0] != 2 {
		t.Errorf("fit changed radii that already fit: %v", small)
	}
}

func TestCorners_GrowClampsAtZero(t *testing.T) {
	c := uniformCorners(1).grow(-3)
	for i, r := range c {
		if r != 0 {
			t.Errorf("corner[%d] = %v, want 0", i, r)
		}
	}
}

func TestRoundRect_Degenerate(t *testing.T) {
	if p := roundRect(5, 5, 5, 10, corners{}); p != nil {
		t.Errorf("roundRect with zero width = %v, want nil", p)
	}
	if p := circle(0, 0, 0); p != nil {
		t.Errorf("circle with zero radius = %v, want nil", p)
	}
}

func TestRoundRect_SquareCornersHaveFourPoints(t *testing.T) {
	if p := roundRect(0, 0, 4, 4, corners{}); len(p) != 4 {
		t.Errorf("len(roundRect) = %d, want 4", len(p))
	}
}
