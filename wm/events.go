package wm

// PointerID identifies the pointer driving an interaction. On a mouse-only
// host there is a single pointer; on touch hosts each contact gets its own ID.
type PointerID int

// Pointer is one pointer sample in viewport pixel coordinates.
type Pointer struct {
	ID PointerID
	X  float64
	Y  float64
	// Primary is true for the primary button / first touch contact. Drags
	// and resizes only start from a primary press.
	Primary bool
}

// Direction is a resize direction token combining compass edges. Corner
// handles combine two edges.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West
)

// The eight resize handle directions.
const (
	DirN  = North
	DirS  = South
	DirE  = East
	DirW  = West
	DirNE = North | East
	DirNW = North | West
	DirSE = South | East
	DirSW = South | West
)

// Has reports whether d includes the given edge.
func (d Direction) Has(edge Direction) bool { return d&edge != 0 }

func (d Direction) String() string {
	var s string
	if d.Has(North) {
		s += "n"
	}
	if d.Has(South) {
		s += "s"
	}
	if d.Has(East) {
		s += "e"
	}
	if d.Has(West) {
		s += "w"
	}
	if s == "" {
		return "none"
	}
	return s
}
