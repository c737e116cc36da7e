package system

import (
	"errors"
	"log"
	"math"

	"github.com/milk9111/gridnav/ecs"
	"github.com/milk9111/gridnav/ecs/component"
	"github.com/milk9111/gridnav/navgrid"
)

const (
	defaultPathGridSize      = 32.0
	defaultPathRepathFrames  = 15
	defaultDebugNodeSize     = 3.0
	defaultPathStepBudget    = 4096
	defaultLineOfSightBudget = 2048
)

// PathfindingSystem searches a grid path from every Pathfinding entity to
// the NavTargetTag entity and smooths it into waypoints.
type PathfindingSystem struct {
	scripts map[string]*NavScriptFilter
	broken  map[string]bool
}

func NewPathfindingSystem() *PathfindingSystem {
	return &PathfindingSystem{}
}

// InvalidateScripts drops compiled filter scripts so they are reloaded on
// the next repath, and forces every entity to repath.
func (ps *PathfindingSystem) InvalidateScripts(w *ecs.World) {
	if ps == nil {
		return
	}
	ps.scripts = nil
	ps.broken = nil
	ecs.ForEach(w, component.PathfindingComponent.Kind(), func(_ ecs.Entity, pf *component.Pathfinding) {
		pf.Dirty = true
	})
}

func (ps *PathfindingSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	targetX, targetY, ok := targetPosition(w)
	if !ok {
		return
	}

	bounds, ok := levelBounds(w)
	if !ok {
		return
	}

	grids := map[float64]navGrid{}

	ecs.ForEach2(w, component.PathfindingComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pf *component.Pathfinding, transform *component.Transform) {
		gridSize := defaultPathGridSize
		if pf.GridSize > 0 {
			gridSize = pf.GridSize
		} else if ts := w.PhysicsWorld().TileSize(); ts > 0 {
			gridSize = ts
			pf.GridSize = ts
		} else {
			pf.GridSize = gridSize
		}

		gridW := int(math.Ceil(bounds.Width / gridSize))
		gridH := int(math.Ceil(bounds.Height / gridSize))
		if gridW <= 0 || gridH <= 0 {
			return
		}

		if pf.RepathFrames <= 0 {
			pf.RepathFrames = defaultPathRepathFrames
		}
		if pf.DebugNodeSize <= 0 {
			pf.DebugNodeSize = defaultDebugNodeSize
		}

		start := gridCoord(transform.X, transform.Y, gridSize, gridW, gridH)
		goal := gridCoord(targetX, targetY, gridSize, gridW, gridH)

		pf.FrameCounter++
		if !pf.Dirty && pf.Revision > 0 && pf.FrameCounter%pf.RepathFrames != 0 &&
			pf.LastStartX == start.x && pf.LastStartY == start.y &&
			pf.LastTargetX == goal.x && pf.LastTargetY == goal.y {
			return
		}

		grid, ok := grids[gridSize]
		if !ok {
			grid = buildBlockedGrid(w, gridW, gridH, gridSize)
			grids[gridSize] = grid
		}

		ps.repath(w, e, pf, grid, start, goal)
	})
}

func (ps *PathfindingSystem) repath(w *ecs.World, e ecs.Entity, pf *component.Pathfinding, grid navGrid, start, goal gridPos) {
	gridSize := pf.GridSize
	pf.LastStartX = start.x
	pf.LastStartY = start.y
	pf.LastTargetX = goal.x
	pf.LastTargetY = goal.y
	pf.Revision++
	pf.Dirty = false

	res, err := astarClosedList(grid, start, goal, pf.MaxSearchNodes)
	pf.Visited = gridPathToWorld(res.visited, gridSize)
	if err != nil {
		ps.fail(w, e, pf, err)
		return
	}

	if !res.list.Contains(goal.node()) {
		ps.fail(w, e, pf, ErrNoPath)
		return
	}

	stepBudget := pf.StepBudget
	if stepBudget <= 0 {
		stepBudget = defaultPathStepBudget
	}
	opts := []navgrid.Option{navgrid.WithStepBudget(stepBudget)}

	raw := navgrid.NewPathIterator(res.list, goal.node(), opts...)
	rawNodes, err := raw.Collect()
	if err != nil {
		ps.fail(w, e, pf, err)
		return
	}

	toWorld := func(n navgrid.NavGridNode) component.PathNode {
		return cellCenter(posFromNode(n), gridSize)
	}
	path, err := navgrid.Path(res.list, goal.node(), ps.lineOfSight(w, e, pf), toWorld, opts...)
	if err != nil {
		ps.fail(w, e, pf, err)
		return
	}

	raws := make([]gridPos, 0, len(rawNodes))
	for _, n := range rawNodes {
		raws = append(raws, posFromNode(n))
	}
	pf.Raw = gridPathToWorld(raws, gridSize)
	pf.Path = path
	if pf.LastError != nil {
		log.Printf("pathfinding: entity=%v recovered after %v", e, pf.LastError)
	}
	pf.LastError = nil

	w.Events().Push(ecs.Event{Type: string(ecs.PathEventFound), Data: ecs.PathEvent{
		Entity:    e,
		Kind:      ecs.PathEventFound,
		Waypoints: len(path),
		RawLength: len(pf.Raw),
	}})
}

func (ps *PathfindingSystem) fail(w *ecs.World, e ecs.Entity, pf *component.Pathfinding, err error) {
	if pf.LastError == nil || !errors.Is(err, pf.LastError) {
		log.Printf("pathfinding: entity=%v start=(%d,%d) goal=(%d,%d): %v", e, pf.LastStartX, pf.LastStartY, pf.LastTargetX, pf.LastTargetY, err)
	}
	pf.Raw = nil
	pf.Path = nil
	pf.LastError = err

	w.Events().Push(ecs.Event{Type: string(ecs.PathEventFailed), Data: ecs.PathEvent{
		Entity: e,
		Kind:   ecs.PathEventFailed,
		Err:    err,
	}})
}

// lineOfSight builds the predicate used to smooth e's path: the physics
// world when one is attached, the static body trace otherwise, then the
// optional script veto and the call budget.
func (ps *PathfindingSystem) lineOfSight(w *ecs.World, e ecs.Entity, pf *component.Pathfinding) navgrid.LineOfSight {
	var clear func(ax, ay, bx, by float64) bool
	if pw := w.PhysicsWorld(); pw != nil {
		radius := pf.AgentRadius
		clear = func(ax, ay, bx, by float64) bool {
			return pw.LineOfSight(ax, ay, bx, by, radius)
		}
	} else {
		clear = traceLineOfSight(w, e, pf.AgentRadius)
	}

	gridSize := pf.GridSize
	los := navgrid.LineOfSight(func(from, to navgrid.NavGridNode) bool {
		a := cellCenter(posFromNode(from), gridSize)
		b := cellCenter(posFromNode(to), gridSize)
		return clear(a.X, a.Y, b.X, b.Y)
	})

	if filter := ps.scriptFilter(pf.ScriptPath); filter != nil {
		los = filter.Wrap(los)
	}

	budget := pf.LineOfSightBudget
	if budget <= 0 {
		budget = defaultLineOfSightBudget
	}
	return navgrid.WithCallBudget(los, budget)
}

func (ps *PathfindingSystem) scriptFilter(path string) *NavScriptFilter {
	if path == "" || ps.broken[path] {
		return nil
	}
	if f, ok := ps.scripts[path]; ok {
		return f
	}
	f, err := LoadNavScriptFilter(path)
	if err != nil {
		log.Printf("pathfinding: %v", err)
		if ps.broken == nil {
			ps.broken = map[string]bool{}
		}
		ps.broken[path] = true
		return nil
	}
	if ps.scripts == nil {
		ps.scripts = map[string]*NavScriptFilter{}
	}
	ps.scripts[path] = f
	return f
}

func targetPosition(w *ecs.World) (float64, float64, bool) {
	target, ok := ecs.First(w, component.NavTargetTagComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	if t, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
		return t.X, t.Y, true
	}
	return 0, 0, false
}

func levelBounds(w *ecs.World) (component.LevelBounds, bool) {
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return component.LevelBounds{}, false
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return component.LevelBounds{}, false
	}
	return *bounds, true
}

func gridCoord(x, y, gridSize float64, gridW, gridH int) gridPos {
	gx := int(math.Floor(x / gridSize))
	gy := int(math.Floor(y / gridSize))
	if gx < 0 {
		gx = 0
	}
	if gy < 0 {
		gy = 0
	}
	if gx >= gridW {
		gx = gridW - 1
	}
	if gy >= gridH {
		gy = gridH - 1
	}
	return gridPos{x: gx, y: gy}
}

func cellCenter(p gridPos, gridSize float64) component.PathNode {
	half := gridSize * 0.5
	return component.PathNode{
		X: float64(p.x)*gridSize + half,
		Y: float64(p.y)*gridSize + half,
	}
}

func gridPathToWorld(path []gridPos, gridSize float64) []component.PathNode {
	if len(path) == 0 {
		return nil
	}
	out := make([]component.PathNode, 0, len(path))
	for _, p := range path {
		out = append(out, cellCenter(p, gridSize))
	}
	return out
}

// buildBlockedGrid marks every cell overlapped by a static body or by a
// solid shape of the attached physics world. Static bodies not yet known to
// the physics world are registered with it.
func buildBlockedGrid(w *ecs.World, gridW, gridH int, gridSize float64) navGrid {
	grid := newNavGrid(gridW, gridH)
	pw := w.PhysicsWorld()
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		if !body.Static {
			return
		}
		minX, minY, maxX, maxY := bodyAABB(transform, body)
		if pw != nil && body.Shape == nil {
			body.Shape = pw.AddStaticBox(e, minX, minY, maxX, maxY)
		}
		markCells(grid, minX, minY, maxX, maxY, gridSize)
	})
	for _, bb := range pw.SolidBounds() {
		markCells(grid, bb.L, bb.B, bb.R, bb.T, gridSize)
	}
	return grid
}

func markCells(grid navGrid, minX, minY, maxX, maxY, gridSize float64) {
	startX := int(math.Floor(minX / gridSize))
	startY := int(math.Floor(minY / gridSize))
	endX := int(math.Floor((maxX - 0.001) / gridSize))
	endY := int(math.Floor((maxY - 0.001) / gridSize))

	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}
	if endX >= grid.width {
		endX = grid.width - 1
	}
	if endY >= grid.height {
		endY = grid.height - 1
	}

	for y := startY; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			grid.block(gridPos{x: x, y: y})
		}
	}
}
