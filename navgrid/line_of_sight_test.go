package navgrid

import "testing"

func TestWithCallBudget(t *testing.T) {
	counter := &CountingLineOfSight{Inner: OpenField}
	los := WithCallBudget(counter.Check, 2)

	results := []bool{los(n(0, 0), n(1, 1)), los(n(0, 0), n(2, 2)), los(n(0, 0), n(3, 3))}
	if !results[0] || !results[1] || results[2] {
		t.Fatalf("expected true, true, false; got %v", results)
	}
	if counter.Calls != 2 {
		t.Fatalf("inner predicate should only run twice, ran %d times", counter.Calls)
	}
	if WithCallBudget(nil, 3) != nil {
		t.Fatalf("wrapping a nil predicate should stay nil")
	}
}

func TestAdjacentOnly(t *testing.T) {
	if !AdjacentOnly(n(0, 0), n(1, -1)) {
		t.Fatalf("diagonal neighbour should be visible")
	}
	if AdjacentOnly(n(0, 0), n(2, 0)) {
		t.Fatalf("cell two steps away should not be visible")
	}
}
