package ecs

import "testing"

// wallColumnGrid is a 5x5 grid with column 2 fully blocked.
func wallColumnGrid() []bool {
	blocked := make([]bool, 25)
	for y := 0; y < 5; y++ {
		blocked[y*5+2] = true
	}
	return blocked
}

func TestPhysicsWorldLineOfSight(t *testing.T) {
	pw := NewPhysicsWorld(wallColumnGrid(), 5, 5, 32)

	cases := []struct {
		name           string
		ax, ay, bx, by float64
		radius         float64
		want           bool
	}{
		{"across_wall", 16, 16, 144, 16, 0, false},
		{"diagonal_across_wall", 16, 16, 144, 144, 0, false},
		{"inside_left_columns", 16, 16, 48, 144, 0, true},
		{"inside_right_columns", 112, 16, 144, 144, 0, true},
		{"beside_wall_without_radius", 48, 48, 48, 112, 0, true},
		{"radius_reaches_wall", 48, 48, 48, 112, 20, false},
		{"radius_short_of_wall", 48, 48, 48, 112, 10, true},
		{"radius_reaches_wall_from_right", 112, 48, 112, 112, 20, false},
		{"radius_reaches_border", 16, 48, 16, 112, 20, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := pw.LineOfSight(c.ax, c.ay, c.bx, c.by, c.radius); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestPhysicsWorldMergesTilesAndTracksEntityBoxes(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(wallColumnGrid(), 5, 5, 32)
	w.SetPhysicsWorld(pw)

	if got := len(pw.SolidBounds()); got != 1 {
		t.Fatalf("expected the wall column to merge into 1 box, got %d", got)
	}

	e := CreateEntity(w)
	if pw.AddStaticBox(e, 0, 64, 64, 96) == nil {
		t.Fatalf("expected a shape for a valid box")
	}
	if pw.AddStaticBox(e, 10, 10, 10, 20) != nil {
		t.Fatalf("expected no shape for a zero-width box")
	}
	if got := len(pw.SolidBounds()); got != 2 {
		t.Fatalf("expected 2 solid bounds, got %d", got)
	}
	if pw.LineOfSight(16, 16, 16, 144, 0) {
		t.Fatalf("entity box should block the column")
	}

	DestroyEntity(w, e)
	if !pw.LineOfSight(16, 16, 16, 144, 0) {
		t.Fatalf("destroying the entity should clear its box")
	}
	if got := len(pw.SolidBounds()); got != 1 {
		t.Fatalf("expected 1 solid bound after removal, got %d", got)
	}
}

func TestNilPhysicsWorldSeesEverything(t *testing.T) {
	var pw *PhysicsWorld
	if !pw.LineOfSight(0, 0, 100, 100, 1) {
		t.Fatalf("nil physics world should report clear line of sight")
	}
	if pw.SolidBounds() != nil {
		t.Fatalf("nil physics world has no solids")
	}
}
