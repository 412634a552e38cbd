package core

import "strings"

// Dir is one of the eight grid directions.
type Dir uint8

const (
	DirNone Dir = iota
	DirUp
	DirUpRight
	DirRight
	DirDownRight
	DirDown
	DirDownLeft
	DirLeft
	DirUpLeft
)

// AllDirs lists the eight real directions in clockwise order starting at Up.
var AllDirs = [8]Dir{DirUp, DirUpRight, DirRight, DirDownRight, DirDown, DirDownLeft, DirLeft, DirUpLeft}

var dirNames = map[Dir]string{
	DirNone:      "None",
	DirUp:        "Up",
	DirUpRight:   "UpRight",
	DirRight:     "Right",
	DirDownRight: "DownRight",
	DirDown:      "Down",
	DirDownLeft:  "DownLeft",
	DirLeft:      "Left",
	DirUpLeft:    "UpLeft",
}

// String returns the string representation of a direction.
func (d Dir) String() string {
	if name, ok := dirNames[d]; ok {
		return name
	}
	return "Unknown"
}

// ParseDir parses a direction name (case-insensitive).
func ParseDir(s string) (Dir, bool) {
	for d, name := range dirNames {
		if strings.EqualFold(name, s) {
			return d, d != DirNone
		}
	}
	return DirNone, false
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirUpRight:
		return 1, -1
	case DirRight:
		return 1, 0
	case DirDownRight:
		return 1, 1
	case DirDown:
		return 0, 1
	case DirDownLeft:
		return -1, 1
	case DirLeft:
		return -1, 0
	case DirUpLeft:
		return -1, -1
	default:
		return 0, 0
	}
}

// DirFromDelta returns the direction whose delta has the same signs as (dx, dy).
func DirFromDelta(dx, dy int) Dir {
	sx, sy := sign(dx), sign(dy)
	for _, d := range AllDirs {
		ddx, ddy := d.Delta()
		if ddx == sx && ddy == sy {
			return d
		}
	}
	return DirNone
}

// Opposite returns the direction rotated by 180 degrees.
func (d Dir) Opposite() Dir {
	if d == DirNone {
		return d
	}
	return d.rotate(4)
}

// Perpendicular returns the direction rotated 90 degrees clockwise.
func (d Dir) Perpendicular() Dir {
	if d == DirNone {
		return d
	}
	return d.rotate(2)
}

// IsDiagonal reports whether the direction moves on both axes.
func (d Dir) IsDiagonal() bool {
	dx, dy := d.Delta()
	return dx != 0 && dy != 0
}

func (d Dir) rotate(steps int) Dir {
	idx := int(d) - 1
	return AllDirs[(idx+steps)%len(AllDirs)]
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
