package navgrid

// CleanedPathIterator yields a greedy any-angle reduction of the raw path.
// From each yielded node it jumps to the farthest ancestor on the raw chain
// that is still visible, falling back to the immediate parent.
type CleanedPathIterator struct {
	raw PathIterator
	los LineOfSight
	err error
}

// NewCleanedPathIterator prepares a reduced walk from end to list.Start().
// A nil los is treated as OpenField.
func NewCleanedPathIterator(list ClosedList, end NavGridNode, los LineOfSight, options ...Option) *CleanedPathIterator {
	if los == nil {
		los = OpenField
	}
	return &CleanedPathIterator{
		raw: NewPathIterator(list, end, options...),
		los: los,
	}
}

// Next returns the next waypoint of the reduced path.
func (c *CleanedPathIterator) Next() (NavGridNode, bool) {
	if c.err != nil {
		return NavGridNode{}, false
	}
	current, ok := c.raw.Next()
	if !ok {
		return NavGridNode{}, false
	}

	scan := c.raw
	best, ok := scan.Next()
	if !ok {
		return current, true
	}
	bestSteps := scan.steps

	for {
		ancestor, ok := scan.Next()
		if !ok {
			break
		}
		if c.los(current, ancestor) {
			best = ancestor
			bestSteps = scan.steps
		}
	}
	if err := scan.Err(); err != nil {
		c.err = err
		return current, true
	}

	c.raw.seek(best, bestSteps)
	return current, true
}

// Err reports a step budget failure from the underlying walk.
func (c *CleanedPathIterator) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.raw.Err()
}

// Collect drains the iterator into a slice.
func (c *CleanedPathIterator) Collect() ([]NavGridNode, error) {
	var nodes []NavGridNode
	for {
		node, ok := c.Next()
		if !ok {
			break
		}
		nodes = append(nodes, node)
	}
	return nodes, c.Err()
}
