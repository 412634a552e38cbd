package core

import (
	"math"
	"testing"
)

func TestDirDelta(t *testing.T) {
	tests := []struct {
		dir    Dir
		dx, dy int
	}{
		{DirUp, 0, -1},
		{DirUpRight, 1, -1},
		{DirRight, 1, 0},
		{DirDownRight, 1, 1},
		{DirDown, 0, 1},
		{DirDownLeft, -1, 1},
		{DirLeft, -1, 0},
		{DirUpLeft, -1, -1},
		{DirNone, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dx, dy := tc.dir.Delta()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Delta() = (%d, %d), expected (%d, %d)", dx, dy, tc.dx, tc.dy)
			}
			if tc.dir != DirNone && DirFromDelta(dx*3, dy*3) != tc.dir {
				t.Errorf("DirFromDelta(%d, %d) did not round-trip", dx*3, dy*3)
			}
		})
	}
}

func TestDirRotations(t *testing.T) {
	for _, d := range AllDirs {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: Opposite twice should return the original", d)
		}
		dx, dy := d.Delta()
		px, py := d.Perpendicular().Delta()
		if dx*px+dy*py != 0 {
			t.Errorf("%v: Perpendicular %v is not orthogonal", d, d.Perpendicular())
		}
	}
	if DirRight.Opposite() != DirLeft || DirUp.Perpendicular() != DirRight {
		t.Error("cardinal rotations are wrong")
	}
	if DirNone.Opposite() != DirNone {
		t.Error("DirNone should not rotate")
	}
}

func TestParseDir(t *testing.T) {
	if d, ok := ParseDir("downleft"); !ok || d != DirDownLeft {
		t.Errorf("ParseDir(downleft) = %v, %v", d, ok)
	}
	if _, ok := ParseDir("none"); ok {
		t.Error("ParseDir(none) should not be accepted")
	}
	if _, ok := ParseDir("sideways"); ok {
		t.Error("ParseDir(sideways) should fail")
	}
}

func TestCellStep(t *testing.T) {
	c := C(2, 2)
	if got := c.Step(DirDownRight, 3); got != C(5, 5) {
		t.Errorf("Step = %v, expected (5,5)", got)
	}
	if c.Manhattan(C(4, 5)) != 5 {
		t.Errorf("Manhattan = %d", c.Manhattan(C(4, 5)))
	}
	if c.Chebyshev(C(4, 5)) != 3 {
		t.Errorf("Chebyshev = %d", c.Chebyshev(C(4, 5)))
	}
	if !c.IsDiagonalTo(C(3, 3)) || c.IsDiagonalTo(C(2, 3)) {
		t.Error("IsDiagonalTo misclassified a neighbor")
	}
}

func TestVecMoveTowards(t *testing.T) {
	start := V(0, 0)
	target := V(3, 4)

	mid := start.MoveTowards(target, 2.5)
	if math.Abs(mid.Dist(start)-2.5) > 1e-9 {
		t.Errorf("moved %v, expected 2.5", mid.Dist(start))
	}

	// Never overshoots
	if got := mid.MoveTowards(target, 100); got != target {
		t.Errorf("MoveTowards overshoot: %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp returned a value outside the range")
	}
}
