package navgrid

// CollectWithOptimizedNodePositions drains it and smooths the result in two
// passes before converting every node with convert:
//
//   - each interior node is pulled as far toward its previous and then its
//     following neighbour as visibility to both neighbours allows;
//   - every interior bend made of one straight and one diagonal leg is
//     replaced by the two-point cut with the largest rectilinear separation
//     that is mutually visible, if one exists.
//
// The output keeps the end-to-start order of the iterator.
func CollectWithOptimizedNodePositions[T any](it *CleanedPathIterator, convert func(NavGridNode) T) ([]T, error) {
	nodes, err := it.Collect()
	if err != nil {
		return nil, err
	}
	nodes = pullNodePositions(nodes, it.los)
	nodes = cutCorners(nodes, it.los)

	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, convert(n))
	}
	return out, nil
}

// Path reconstructs, reduces and smooths the path from end back to
// list.Start() in one call.
func Path[T any](list ClosedList, end NavGridNode, los LineOfSight, convert func(NavGridNode) T, options ...Option) ([]T, error) {
	return CollectWithOptimizedNodePositions(NewCleanedPathIterator(list, end, los, options...), convert)
}

// Nodes is the identity conversion for CollectWithOptimizedNodePositions.
func Nodes(n NavGridNode) NavGridNode {
	return n
}

// pullNodePositions updates nodes in place, front to back, so each node is
// pulled relative to the already moved node before it.
func pullNodePositions(nodes []NavGridNode, los LineOfSight) []NavGridNode {
	for i := 1; i < len(nodes)-1; i++ {
		last := nodes[i-1]
		next := nodes[i+1]
		node := pullToward(nodes[i], last, next, los)
		nodes[i] = pullToward(node, next, last, los)
	}
	return nodes
}

// pullToward slides node one cell at a time toward target while the new cell
// is short of target and can still see both target and other.
func pullToward(node, target, other NavGridNode, los LineOfSight) NavGridNode {
	dir, ok := node.EightSidedDirectionTo(target)
	if !ok {
		return node
	}
	for {
		candidate, ok := stepToward(node, dir, target)
		if !ok || !los(candidate, target) || !los(candidate, other) {
			return node
		}
		node = candidate
	}
}

func cutCorners(nodes []NavGridNode, los LineOfSight) []NavGridNode {
	if len(nodes) < 3 {
		return nodes
	}
	out := make([]NavGridNode, 0, len(nodes)+len(nodes)/2)
	out = append(out, nodes[0])
	for i := 1; i < len(nodes)-1; i++ {
		out = append(out, cornerOverride(nodes[i-1], nodes[i], nodes[i+1], los)...)
	}
	return append(out, nodes[len(nodes)-1])
}

// cornerOverride returns the replacement for node given its neighbours: the
// node itself, or a pair (toLast, toNext) cutting an L shaped corner.
//
// The inner walk toward next stops at the first blocked pair, so a farther
// visible pair behind a blocked one is never considered.
func cornerOverride(last, node, next NavGridNode, los LineOfSight) []NavGridNode {
	dirLast, ok := node.EightSidedDirectionTo(last)
	if !ok {
		return []NavGridNode{node}
	}
	dirNext, ok := node.EightSidedDirectionTo(next)
	if !ok {
		return []NavGridNode{node}
	}
	if dirLast.IsDiagonal() == dirNext.IsDiagonal() {
		return []NavGridNode{node}
	}

	bestLast, bestNext := node, node
	bestLen := 0
	for toLast, ok := stepToward(node, dirLast, last); ok; toLast, ok = stepToward(toLast, dirLast, last) {
		for toNext, ok := stepToward(node, dirNext, next); ok; toNext, ok = stepToward(toNext, dirNext, next) {
			if !los(toLast, toNext) {
				break
			}
			if l := toLast.Sub(toNext).RightAngleLen(); l > bestLen {
				bestLast, bestNext, bestLen = toLast, toNext, l
			}
		}
	}

	if bestLen == 0 {
		return []NavGridNode{node}
	}
	return []NavGridNode{bestLast, bestNext}
}
