package navgrid

import "fmt"

// NavGridNode identifies one cell of the navigation grid. X grows east and Z
// grows north.
type NavGridNode struct {
	X int
	Z int
}

// Add returns the component-wise sum of n and o.
func (n NavGridNode) Add(o NavGridNode) NavGridNode {
	return NavGridNode{X: n.X + o.X, Z: n.Z + o.Z}
}

// Sub returns n - o. The result is a relative vector, not a cell.
func (n NavGridNode) Sub(o NavGridNode) NavGridNode {
	return NavGridNode{X: n.X - o.X, Z: n.Z - o.Z}
}

// Step moves n one cell along d.
func (n NavGridNode) Step(d Direction) NavGridNode {
	return n.Add(d.Offset())
}

// StepBack moves n one cell against d, undoing Step.
func (n NavGridNode) StepBack(d Direction) NavGridNode {
	return n.Step(d.Opposite())
}

// EightSidedDirectionTo returns the octant pointing from n toward target.
// Only the signs of the difference matter. ok is false when n == target.
func (n NavGridNode) EightSidedDirectionTo(target NavGridNode) (Direction, bool) {
	diff := target.Sub(n)
	return directionFromSigns(sign(diff.X), sign(diff.Z))
}

// RightAngleLen is the rectilinear length |X| + |Z|. It is meant to be called
// on the difference of two nodes.
func (n NavGridNode) RightAngleLen() int {
	return abs(n.X) + abs(n.Z)
}

func (n NavGridNode) String() string {
	return fmt.Sprintf("(%d,%d)", n.X, n.Z)
}

// stepToward moves from one cell along d and reports whether the new cell is
// still strictly before target: it must not be target itself and must not
// have passed target on either axis.
func stepToward(from NavGridNode, d Direction, target NavGridNode) (NavGridNode, bool) {
	next := from.Step(d)
	if next == target {
		return next, false
	}
	off := d.Offset()
	if off.X != 0 && sign(target.X-next.X) == -off.X {
		return next, false
	}
	if off.Z != 0 && sign(target.Z-next.Z) == -off.Z {
		return next, false
	}
	return next, true
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
