package navgrid

// ClosedList is the parent-pointer map left behind by a finished search,
// rooted at Start. Following parents from any node in the list must reach
// Start without a cycle; the walkers in this package rely on it.
type ClosedList struct {
	start   NavGridNode
	parents map[NavGridNode]NavGridNode
}

// NewClosedList creates an empty list rooted at start.
func NewClosedList(start NavGridNode) ClosedList {
	return ClosedList{
		start:   start,
		parents: make(map[NavGridNode]NavGridNode),
	}
}

// Link records parent as the node child was reached from.
func (c *ClosedList) Link(child, parent NavGridNode) {
	if c.parents == nil {
		c.parents = make(map[NavGridNode]NavGridNode)
	}
	c.parents[child] = parent
}

// Start returns the root of the list.
func (c ClosedList) Start() NavGridNode {
	return c.start
}

// Parent returns the node n was reached from.
func (c ClosedList) Parent(n NavGridNode) (NavGridNode, bool) {
	p, ok := c.parents[n]
	return p, ok
}

// Contains reports whether n is the start or has a recorded parent.
func (c ClosedList) Contains(n NavGridNode) bool {
	if n == c.start {
		return true
	}
	_, ok := c.parents[n]
	return ok
}

// Len returns the number of linked nodes.
func (c ClosedList) Len() int {
	return len(c.parents)
}
