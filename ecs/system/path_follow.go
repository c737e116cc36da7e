package system

import (
	"math"

	"github.com/milk9111/gridnav/ecs"
	"github.com/milk9111/gridnav/ecs/component"
)

const (
	defaultFollowSpeed  = 2.0
	defaultArriveRadius = 1.0
)

// PathFollowSystem moves PathFollower entities along their smoothed path.
// Waypoints are stored target first, so the follower walks the slice from
// its tail.
type PathFollowSystem struct{}

func NewPathFollowSystem() *PathFollowSystem {
	return &PathFollowSystem{}
}

func (s *PathFollowSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.PathFollowerComponent.Kind(), component.PathfindingComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, f *component.PathFollower, pf *component.Pathfinding, t *component.Transform) {
		if f.Revision != pf.Revision {
			f.Revision = pf.Revision
			f.Cursor = len(pf.Path) - 1
			f.Arrived = false
			// The tail is the cell the agent stood in when the path was built.
			if f.Cursor > 0 && sameCell(t.X, t.Y, pf.Path[f.Cursor], pf.GridSize) {
				f.Cursor--
			}
		}
		if f.Cursor < 0 || f.Cursor >= len(pf.Path) {
			f.Arrived = len(pf.Path) > 0
			return
		}

		speed := f.Speed
		if speed <= 0 {
			speed = defaultFollowSpeed
		}
		arrive := f.ArriveRadius
		if arrive <= 0 {
			arrive = defaultArriveRadius
		}

		budget := speed
		for budget > 0 && f.Cursor >= 0 {
			wp := pf.Path[f.Cursor]
			dx := wp.X - t.X
			dy := wp.Y - t.Y
			dist := math.Hypot(dx, dy)
			if dist <= arrive && dist > budget {
				f.Cursor--
				continue
			}
			if dist <= budget {
				t.X = wp.X
				t.Y = wp.Y
				budget -= dist
				f.Cursor--
				continue
			}
			t.X += dx / dist * budget
			t.Y += dy / dist * budget
			budget = 0
		}
		f.Arrived = f.Cursor < 0
	})
}

func sameCell(x, y float64, node component.PathNode, gridSize float64) bool {
	if gridSize <= 0 {
		return false
	}
	return math.Floor(x/gridSize) == math.Floor(node.X/gridSize) &&
		math.Floor(y/gridSize) == math.Floor(node.Y/gridSize)
}
