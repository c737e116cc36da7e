package navgrid

// LineOfSight reports whether the straight segment between two cells is
// unobstructed. Implementations are called many times per path and are not
// assumed to be symmetric.
type LineOfSight func(from, to NavGridNode) bool

// WithCallBudget wraps los so that every call after the first n answers
// "blocked" without calling los. The returned predicate is not safe for
// concurrent use.
func WithCallBudget(los LineOfSight, n int) LineOfSight {
	if los == nil {
		return nil
	}
	calls := 0
	return func(from, to NavGridNode) bool {
		if calls >= n {
			return false
		}
		calls++
		return los(from, to)
	}
}

// CountingLineOfSight counts the calls made to an inner predicate.
type CountingLineOfSight struct {
	Inner LineOfSight
	Calls int
}

// Check is a LineOfSight.
func (c *CountingLineOfSight) Check(from, to NavGridNode) bool {
	c.Calls++
	if c.Inner == nil {
		return true
	}
	return c.Inner(from, to)
}

// OpenField is a LineOfSight that never reports an obstruction.
func OpenField(NavGridNode, NavGridNode) bool {
	return true
}

// AdjacentOnly only sees cells that touch, including diagonally.
func AdjacentOnly(from, to NavGridNode) bool {
	d := to.Sub(from)
	return abs(d.X) <= 1 && abs(d.Z) <= 1
}
