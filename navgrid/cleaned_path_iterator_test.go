package navgrid

import (
	"errors"
	"testing"
)

func staircase() ClosedList {
	return chain(n(3, 2), n(2, 2), n(2, 1), n(1, 1), n(1, 0), n(0, 0))
}

func orthogonalNeighbours(from, to NavGridNode) bool {
	return to.Sub(from).RightAngleLen() == 1
}

func axisAligned(from, to NavGridNode) bool {
	return from.X == to.X || from.Z == to.Z
}

func blocked(NavGridNode, NavGridNode) bool {
	return false
}

func TestCleanedPathIteratorOpenField(t *testing.T) {
	list := chain(n(2, 2), n(1, 1), n(1, 0), n(0, 0))
	got, err := NewCleanedPathIterator(list, n(2, 2), OpenField).Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []NavGridNode{n(2, 2), n(0, 0)}
	if !equalNodes(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCleanedPathIteratorReductions(t *testing.T) {
	cases := []struct {
		name string
		list ClosedList
		end  NavGridNode
		los  LineOfSight
		want []NavGridNode
	}{
		{
			name: "no_shortcuts_keeps_raw_path",
			list: staircase(),
			end:  n(3, 2),
			los:  orthogonalNeighbours,
			want: []NavGridNode{n(3, 2), n(2, 2), n(2, 1), n(1, 1), n(1, 0), n(0, 0)},
		},
		{
			name: "fully_blocked_keeps_raw_path",
			list: staircase(),
			end:  n(3, 2),
			los:  blocked,
			want: []NavGridNode{n(3, 2), n(2, 2), n(2, 1), n(1, 1), n(1, 0), n(0, 0)},
		},
		{
			name: "straight_runs_collapse",
			list: chain(n(2, 3), n(2, 2), n(2, 1), n(2, 0), n(1, 0), n(0, 0)),
			end:  n(2, 3),
			los:  axisAligned,
			want: []NavGridNode{n(2, 3), n(2, 0), n(0, 0)},
		},
		{
			name: "single_node",
			list: chain(n(4, 4)),
			end:  n(4, 4),
			los:  OpenField,
			want: []NavGridNode{n(4, 4)},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rawIt := NewPathIterator(c.list, c.end)
			raw, err := rawIt.Collect()
			if err != nil {
				t.Fatalf("raw walk failed: %v", err)
			}
			got, err := NewCleanedPathIterator(c.list, c.end, c.los).Collect()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalNodes(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if len(got) > len(raw) {
				t.Fatalf("reduction produced %d nodes from a raw path of %d", len(got), len(raw))
			}
			if got[0] != c.end || got[len(got)-1] != c.list.Start() {
				t.Fatalf("expected path from %v to %v, got %v", c.end, c.list.Start(), got)
			}
		})
	}
}

func TestCleanedPathIteratorLineOfSightCost(t *testing.T) {
	counter := &CountingLineOfSight{Inner: blocked}
	got, err := NewCleanedPathIterator(staircase(), n(3, 2), counter.Check).Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected the raw 6 nodes, got %v", got)
	}
	// 4 + 3 + 2 + 1 ancestors beyond each immediate parent.
	if counter.Calls != 10 {
		t.Fatalf("expected 10 line of sight calls, got %d", counter.Calls)
	}
}

func TestCleanedPathIteratorStepBudget(t *testing.T) {
	list := NewClosedList(n(0, 0))
	list.Link(n(1, 0), n(2, 0))
	list.Link(n(2, 0), n(1, 0))

	it := NewCleanedPathIterator(list, n(1, 0), OpenField, WithStepBudget(10))
	got, err := it.Collect()
	if !errors.Is(err, ErrStepBudgetExceeded) {
		t.Fatalf("expected ErrStepBudgetExceeded, got %v", err)
	}
	if len(got) != 1 || got[0] != n(1, 0) {
		t.Fatalf("expected only the end node before failing, got %v", got)
	}
}

func TestCleanedPathIteratorNilLineOfSight(t *testing.T) {
	list := chain(n(2, 2), n(1, 1), n(1, 0), n(0, 0))
	got, err := NewCleanedPathIterator(list, n(2, 2), nil).Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("nil predicate should behave as an open field, got %v", got)
	}
}
