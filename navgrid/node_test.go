package navgrid

import "testing"

func TestEightSidedDirectionTo(t *testing.T) {
	origin := NavGridNode{X: 0, Z: 0}
	cases := []struct {
		name   string
		target NavGridNode
		want   Direction
		ok     bool
	}{
		{"north", NavGridNode{X: 0, Z: 1}, North, true},
		{"north_east", NavGridNode{X: 1, Z: 1}, NorthEast, true},
		{"east", NavGridNode{X: 4, Z: 0}, East, true},
		{"south_east_uneven", NavGridNode{X: 2, Z: -5}, SouthEast, true},
		{"south", NavGridNode{X: 0, Z: -3}, South, true},
		{"south_west", NavGridNode{X: -1, Z: -1}, SouthWest, true},
		{"west", NavGridNode{X: -7, Z: 0}, West, true},
		{"north_west_uneven", NavGridNode{X: -1, Z: 9}, NorthWest, true},
		{"same_cell", origin, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := origin.EightSidedDirectionTo(c.target)
			if ok != c.ok {
				t.Fatalf("expected ok=%v, got %v", c.ok, ok)
			}
			if ok && got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestDirectionClassificationPartitions(t *testing.T) {
	diagonal := 0
	for _, d := range AllDirections() {
		if d.IsDiagonal() == d.IsStraight() {
			t.Fatalf("%v must be exactly one of diagonal or straight", d)
		}
		off := d.Offset()
		if d.IsDiagonal() != (off.X != 0 && off.Z != 0) {
			t.Fatalf("%v offset %v does not match its classification", d, off)
		}
		if d.IsDiagonal() {
			diagonal++
		}
		if back := d.Opposite().Offset(); back.Add(off) != (NavGridNode{}) {
			t.Fatalf("%v opposite does not cancel its offset", d)
		}
	}
	if diagonal != 4 {
		t.Fatalf("expected 4 diagonal directions, got %d", diagonal)
	}
}

func TestRightAngleLen(t *testing.T) {
	a := NavGridNode{X: 3, Z: 1}
	b := NavGridNode{X: 1, Z: 4}
	if got := a.Sub(b).RightAngleLen(); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := b.Sub(a).RightAngleLen(); got != 5 {
		t.Fatalf("expected symmetric length 5, got %d", got)
	}
	if got := a.Sub(a).RightAngleLen(); got != 0 {
		t.Fatalf("expected 0 for identical nodes, got %d", got)
	}
}

func TestStepToward(t *testing.T) {
	cases := []struct {
		name   string
		from   NavGridNode
		dir    Direction
		target NavGridNode
		want   NavGridNode
		ok     bool
	}{
		{"short_of_target", NavGridNode{0, 0}, East, NavGridNode{3, 0}, NavGridNode{1, 0}, true},
		{"reaches_target", NavGridNode{2, 0}, East, NavGridNode{3, 0}, NavGridNode{3, 0}, false},
		{"diagonal_within_box", NavGridNode{0, 0}, NorthEast, NavGridNode{5, 1}, NavGridNode{1, 1}, true},
		{"diagonal_overshoots_axis", NavGridNode{1, 1}, NorthEast, NavGridNode{5, 1}, NavGridNode{2, 2}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := stepToward(c.from, c.dir, c.target)
			if got != c.want || ok != c.ok {
				t.Fatalf("expected %v ok=%v, got %v ok=%v", c.want, c.ok, got, ok)
			}
		})
	}
}

func TestStepBackUndoesStep(t *testing.T) {
	origin := NavGridNode{X: 3, Z: -2}
	for _, d := range AllDirections() {
		if got := origin.Step(d).StepBack(d); got != origin {
			t.Fatalf("%v: step then step back gave %v, want %v", d, got, origin)
		}
		if got, want := origin.StepBack(d), origin.Sub(d.Offset()); got != want {
			t.Fatalf("%v: step back gave %v, want %v", d, got, want)
		}
	}
}
