package navgrid

// Direction is one of the eight unit steps between grid cells.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// AllDirections returns the eight directions clockwise from North.
func AllDirections() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

var directionOffsets = [...]NavGridNode{
	North:     {X: 0, Z: 1},
	NorthEast: {X: 1, Z: 1},
	East:      {X: 1, Z: 0},
	SouthEast: {X: 1, Z: -1},
	South:     {X: 0, Z: -1},
	SouthWest: {X: -1, Z: -1},
	West:      {X: -1, Z: 0},
	NorthWest: {X: -1, Z: 1},
}

// Offset returns the single-cell vector for d.
func (d Direction) Offset() NavGridNode {
	if int(d) >= len(directionOffsets) {
		return NavGridNode{}
	}
	return directionOffsets[d]
}

// IsDiagonal reports whether d moves on both axes.
func (d Direction) IsDiagonal() bool {
	switch d {
	case NorthEast, SouthEast, SouthWest, NorthWest:
		return true
	default:
		return false
	}
}

// IsStraight reports whether d moves on exactly one axis.
func (d Direction) IsStraight() bool {
	switch d {
	case North, East, South, West:
		return true
	default:
		return false
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case NorthEast:
		return "NorthEast"
	case East:
		return "East"
	case SouthEast:
		return "SouthEast"
	case South:
		return "South"
	case SouthWest:
		return "SouthWest"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

func directionFromSigns(dx, dz int) (Direction, bool) {
	switch {
	case dx == 0 && dz > 0:
		return North, true
	case dx > 0 && dz > 0:
		return NorthEast, true
	case dx > 0 && dz == 0:
		return East, true
	case dx > 0 && dz < 0:
		return SouthEast, true
	case dx == 0 && dz < 0:
		return South, true
	case dx < 0 && dz < 0:
		return SouthWest, true
	case dx < 0 && dz == 0:
		return West, true
	case dx < 0 && dz > 0:
		return NorthWest, true
	default:
		return 0, false
	}
}
