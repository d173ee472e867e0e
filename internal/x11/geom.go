package x11

// Position is a window or workspace rectangle in root-window coordinates.
type Position struct {
	X, Y          uint16
	Width, Height uint16
}

// Dimensions is a reserved-space margin, one value per screen edge.
type Dimensions struct {
	Top, Right, Bottom, Left uint16
}
