package main

import (
	"fmt"
	"strings"

	"github.com/milk9111/gridnav/ecs"
	"github.com/milk9111/gridnav/ecs/component"
	"github.com/milk9111/gridnav/ecs/system"
	"github.com/milk9111/gridnav/prefabs"
)

// scene is a level loaded into an ECS world with one agent and one target.
type scene struct {
	world       *ecs.World
	pathfinding *system.PathfindingSystem
	debug       *system.PathDebugSystem

	layout   prefabs.LevelLayout
	tileSize float64
	agent    ecs.Entity
	target   ecs.Entity
}

func newScene(level prefabs.LevelSpec, nav prefabs.NavigationSpec) (*scene, error) {
	layout, err := level.Layout()
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", level.Name, err)
	}
	tileSize := level.TileSize
	if tileSize <= 0 {
		tileSize = 32
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(layout.Blocked, layout.Width, layout.Height, tileSize))

	s := &scene{
		world:       w,
		pathfinding: system.NewPathfindingSystem(),
		debug:       system.NewPathDebugSystem(),
		layout:      layout,
		tileSize:    tileSize,
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(layout.Width) * tileSize,
		Height: float64(layout.Height) * tileSize,
	}); err != nil {
		return nil, err
	}

	s.agent = ecs.CreateEntity(w)
	ax, ay := s.cellCenter(layout.Agent)
	if err := ecs.Add(w, s.agent, component.TransformComponent.Kind(), &component.Transform{X: ax, Y: ay}); err != nil {
		return nil, err
	}
	pf := &component.Pathfinding{}
	applyPathfindingSpec(pf, nav.Pathfinding)
	if err := ecs.Add(w, s.agent, component.PathfindingComponent.Kind(), pf); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, s.agent, component.PathFollowerComponent.Kind(), &component.PathFollower{
		Speed:        nav.Follower.Speed,
		ArriveRadius: nav.Follower.ArriveRadius,
	}); err != nil {
		return nil, err
	}

	s.target = ecs.CreateEntity(w)
	tx, ty := s.cellCenter(layout.Target)
	if err := ecs.Add(w, s.target, component.TransformComponent.Kind(), &component.Transform{X: tx, Y: ty}); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, s.target, component.NavTargetTagComponent.Kind(), &component.NavTargetTag{}); err != nil {
		return nil, err
	}

	w.AddSystem(s.pathfinding)
	w.AddSystem(system.NewPathFollowSystem())
	w.AddSystem(s.debug)
	return s, nil
}

func applyPathfindingSpec(pf *component.Pathfinding, spec prefabs.PathfindingSpec) {
	pf.GridSize = spec.GridSize
	pf.RepathFrames = spec.RepathFrames
	pf.MaxSearchNodes = spec.MaxSearchNodes
	pf.StepBudget = spec.StepBudget
	pf.LineOfSightBudget = spec.LineOfSightBudget
	pf.AgentRadius = spec.AgentRadius
	pf.DebugNodeSize = spec.DebugNodeSize
	pf.ScriptPath = spec.Script
	pf.Dirty = true
}

// applyNavigation swaps in a reloaded navigation spec.
func (s *scene) applyNavigation(nav prefabs.NavigationSpec) {
	if pf, ok := ecs.Get(s.world, s.agent, component.PathfindingComponent.Kind()); ok {
		applyPathfindingSpec(pf, nav.Pathfinding)
	}
	if f, ok := ecs.Get(s.world, s.agent, component.PathFollowerComponent.Kind()); ok {
		f.Speed = nav.Follower.Speed
		f.ArriveRadius = nav.Follower.ArriveRadius
	}
}

func (s *scene) cellCenter(c prefabs.Cell) (float64, float64) {
	return (float64(c.X) + 0.5) * s.tileSize, (float64(c.Y) + 0.5) * s.tileSize
}

func (s *scene) blocked(c prefabs.Cell) bool {
	if c.X < 0 || c.Y < 0 || c.X >= s.layout.Width || c.Y >= s.layout.Height {
		return true
	}
	return s.layout.Blocked[c.Y*s.layout.Width+c.X]
}

// moveTarget places the target on the open cell under (x, y).
func (s *scene) moveTarget(x, y float64) bool {
	c := prefabs.Cell{X: int(x / s.tileSize), Y: int(y / s.tileSize)}
	if x < 0 || y < 0 || s.blocked(c) {
		return false
	}
	t, ok := ecs.Get(s.world, s.target, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	t.X, t.Y = s.cellCenter(c)
	return true
}

func (s *scene) waypoints() []component.PathNode {
	pf, ok := ecs.Get(s.world, s.agent, component.PathfindingComponent.Kind())
	if !ok {
		return nil
	}
	return pf.Path
}

func (s *scene) lastError() error {
	pf, ok := ecs.Get(s.world, s.agent, component.PathfindingComponent.Kind())
	if !ok {
		return nil
	}
	return pf.LastError
}

// formatWaypoints renders one "x,y" pair per line, agent first.
func formatWaypoints(path []component.PathNode) string {
	var b strings.Builder
	for i := len(path) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%g,%g\n", path[i].X, path[i].Y)
	}
	return b.String()
}
