package navgrid

// PathIterator walks a closed list from an end node back to its start,
// yielding the raw grid path end first. It is a plain value: copying it
// before calling Next gives an independent traversal of the same list.
type PathIterator struct {
	list    ClosedList
	current NavGridNode
	pending bool
	steps   int
	budget  int
	err     error
}

// NewPathIterator prepares a walk from end to list.Start().
func NewPathIterator(list ClosedList, end NavGridNode, options ...Option) PathIterator {
	opts := applyOptions(options)
	return PathIterator{
		list:    list,
		current: end,
		pending: true,
		budget:  opts.StepBudget,
	}
}

// Next returns the next node of the walk, or false once the start node has
// been produced, a node has no parent, or the step budget ran out.
func (it *PathIterator) Next() (NavGridNode, bool) {
	if !it.pending {
		return NavGridNode{}, false
	}
	if it.budget > 0 && it.steps >= it.budget {
		it.pending = false
		it.err = ErrStepBudgetExceeded
		return NavGridNode{}, false
	}
	it.steps++

	node := it.current
	if node == it.list.start {
		it.pending = false
		return node, true
	}
	parent, ok := it.list.Parent(node)
	if !ok {
		it.pending = false
		return node, true
	}
	it.current = parent
	return node, true
}

// Err returns ErrStepBudgetExceeded if the walk was cut short by its budget.
func (it *PathIterator) Err() error {
	return it.err
}

// Collect drains the iterator into a slice.
func (it *PathIterator) Collect() ([]NavGridNode, error) {
	var nodes []NavGridNode
	for {
		node, ok := it.Next()
		if !ok {
			break
		}
		nodes = append(nodes, node)
	}
	return nodes, it.err
}

// seek repositions the walk so the next call yields node, as if it had been
// reached after steps-1 earlier nodes.
func (it *PathIterator) seek(node NavGridNode, steps int) {
	it.current = node
	it.pending = true
	it.steps = steps - 1
}
