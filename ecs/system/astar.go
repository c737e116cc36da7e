package system

import (
	"container/heap"
	"errors"

	"github.com/milk9111/gridnav/navgrid"
)

var (
	ErrStartBlocked  = errors.New("pathfinding: start cell is blocked")
	ErrGoalBlocked   = errors.New("pathfinding: goal cell is blocked")
	ErrOutOfBounds   = errors.New("pathfinding: cell outside grid")
	ErrNoPath        = errors.New("pathfinding: goal unreachable")
	ErrSearchLimited = errors.New("pathfinding: search node limit reached")
)

const (
	straightCost = 10
	diagonalCost = 14
)

type gridPos struct {
	x int
	y int
}

func (p gridPos) node() navgrid.NavGridNode {
	return navgrid.NavGridNode{X: p.x, Z: p.y}
}

func posFromNode(n navgrid.NavGridNode) gridPos {
	return gridPos{x: n.X, y: n.Z}
}

// navGrid is a row-major occupancy grid.
type navGrid struct {
	width   int
	height  int
	blocked []bool
}

func newNavGrid(width, height int) navGrid {
	return navGrid{width: width, height: height, blocked: make([]bool, width*height)}
}

func (g navGrid) inBounds(p gridPos) bool {
	return p.x >= 0 && p.y >= 0 && p.x < g.width && p.y < g.height
}

func (g navGrid) isBlocked(p gridPos) bool {
	if !g.inBounds(p) {
		return true
	}
	return g.blocked[p.y*g.width+p.x]
}

func (g navGrid) block(p gridPos) {
	if g.inBounds(p) {
		g.blocked[p.y*g.width+p.x] = true
	}
}

// searchResult is the outcome of one A* run. list holds every closed cell
// linked to the cell it was reached from.
type searchResult struct {
	list    navgrid.ClosedList
	visited []gridPos
}

// astarClosedList runs an eight-way A* from start to goal. Diagonal moves
// are only taken when both adjacent straight cells are open, so a path
// never squeezes between two blocked corners. maxNodes <= 0 means no limit.
func astarClosedList(g navGrid, start, goal gridPos, maxNodes int) (searchResult, error) {
	if !g.inBounds(start) || !g.inBounds(goal) {
		return searchResult{}, ErrOutOfBounds
	}
	if g.isBlocked(start) {
		return searchResult{}, ErrStartBlocked
	}
	if g.isBlocked(goal) {
		return searchResult{}, ErrGoalBlocked
	}

	res := searchResult{
		list:    navgrid.NewClosedList(start.node()),
		visited: make([]gridPos, 0, 64),
	}

	size := g.width * g.height
	cameFrom := make([]int, size)
	gScore := make([]int, size)
	closed := make([]bool, size)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = -1
	}

	open := &openSet{}
	heap.Init(open)

	startIdx := start.y*g.width + start.x
	goalIdx := goal.y*g.width + goal.x
	gScore[startIdx] = 0
	heap.Push(open, &openItem{pos: start, f: octile(start, goal), g: 0})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		curIdx := cur.y*g.width + cur.x
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true
		if curIdx != startIdx {
			parent := cameFrom[curIdx]
			res.list.Link(cur.node(), gridPos{x: parent % g.width, y: parent / g.width}.node())
		}
		res.visited = append(res.visited, cur)

		if curIdx == goalIdx {
			return res, nil
		}
		if maxNodes > 0 && len(res.visited) >= maxNodes {
			return res, ErrSearchLimited
		}

		for _, d := range navgrid.AllDirections() {
			n := posFromNode(cur.node().Step(d))
			if g.isBlocked(n) {
				continue
			}
			cost := straightCost
			if d.IsDiagonal() {
				off := d.Offset()
				if g.isBlocked(gridPos{x: cur.x + off.X, y: cur.y}) || g.isBlocked(gridPos{x: cur.x, y: cur.y + off.Z}) {
					continue
				}
				cost = diagonalCost
			}
			idx := n.y*g.width + n.x
			if closed[idx] {
				continue
			}
			tentativeG := gScore[curIdx] + cost
			if gScore[idx] < 0 || tentativeG < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentativeG
				heap.Push(open, &openItem{pos: n, f: tentativeG + octile(n, goal), g: tentativeG})
			}
		}
	}

	return res, ErrNoPath
}

// octile is the exact cost of an unobstructed eight-way walk.
func octile(a, b gridPos) int {
	dx := a.x - b.x
	if dx < 0 {
		dx = -dx
	}
	dy := a.y - b.y
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		dx, dy = dy, dx
	}
	return straightCost*(dx-dy) + diagonalCost*dy
}

type openItem struct {
	pos   gridPos
	f     int
	g     int
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }

// Less breaks f ties toward the larger g so the search runs deep first.
func (o openSet) Less(i, j int) bool {
	if o[i].f == o[j].f {
		return o[i].g > o[j].g
	}
	return o[i].f < o[j].f
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
