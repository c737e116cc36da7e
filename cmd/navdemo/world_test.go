package main

import (
	"testing"

	"github.com/milk9111/gridnav/ecs"
	"github.com/milk9111/gridnav/ecs/component"
	"github.com/milk9111/gridnav/prefabs"
)

func testLevel() prefabs.LevelSpec {
	return prefabs.LevelSpec{
		Name:     "test",
		TileSize: 32,
		Rows: []string{
			"#######",
			"#A.#..#",
			"#..#..#",
			"#....T#",
			"#######",
		},
	}
}

func testNav() prefabs.NavigationSpec {
	return prefabs.NavigationSpec{
		Pathfinding: prefabs.PathfindingSpec{GridSize: 32, RepathFrames: 10},
		Follower:    prefabs.FollowerSpec{Speed: 4, ArriveRadius: 1},
	}
}

func TestSceneFindsPath(t *testing.T) {
	s, err := newScene(testLevel(), testNav())
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	s.world.Update()

	if err := s.lastError(); err != nil {
		t.Fatalf("unexpected search error: %v", err)
	}
	path := s.waypoints()
	if len(path) < 3 {
		t.Fatalf("the wall forces at least one turn, got %v", path)
	}
	if path[0] != (component.PathNode{X: 176, Y: 112}) || path[len(path)-1] != (component.PathNode{X: 48, Y: 48}) {
		t.Fatalf("unexpected endpoints %v", path)
	}
}

func TestSceneMoveTarget(t *testing.T) {
	s, err := newScene(testLevel(), testNav())
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	if s.moveTarget(100, 40) {
		t.Fatalf("wall cell must reject the target")
	}
	if s.moveTarget(-5, 40) {
		t.Fatalf("negative coordinates must be rejected")
	}
	if !s.moveTarget(140, 40) {
		t.Fatalf("open cell should accept the target")
	}
	s.world.Update()
	if path := s.waypoints(); len(path) == 0 || path[0] != (component.PathNode{X: 144, Y: 48}) {
		t.Fatalf("expected the path to end at the new target, got %v", path)
	}
}

func TestSceneRejectsBadLevel(t *testing.T) {
	level := testLevel()
	level.Rows = []string{"#.#"}
	if _, err := newScene(level, testNav()); err == nil {
		t.Fatalf("expected an error for a level without agent and target")
	}
}

func TestFormatWaypoints(t *testing.T) {
	got := formatWaypoints([]component.PathNode{{X: 10, Y: 20}, {X: 1.5, Y: 2}})
	if got != "1.5,2\n10,20\n" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestSceneReloadKeepsRevisionIncreasing(t *testing.T) {
	s, err := newScene(testLevel(), testNav())
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	s.world.Update()

	pf, ok := ecs.Get(s.world, s.agent, component.PathfindingComponent.Kind())
	if !ok {
		t.Fatalf("agent has no pathfinding component")
	}
	if pf.Revision != 1 {
		t.Fatalf("expected revision 1, got %d", pf.Revision)
	}

	s.applyNavigation(testNav())
	if !pf.Dirty || pf.Revision != 1 {
		t.Fatalf("reload should mark the path dirty and keep its revision, got dirty=%v revision=%d", pf.Dirty, pf.Revision)
	}
	s.world.Update()
	if pf.Revision != 2 || pf.Dirty {
		t.Fatalf("expected a forced repath to revision 2, got dirty=%v revision=%d", pf.Dirty, pf.Revision)
	}
}
