package system

import (
	"testing"

	"github.com/milk9111/gridnav/navgrid"
)

func node(x, z int) navgrid.NavGridNode {
	return navgrid.NavGridNode{X: x, Z: z}
}

func TestNavScriptFilterAllow(t *testing.T) {
	f, err := NewNavScriptFilter([]byte(`
allow := func(fx, fz, tx, tz) {
	return tx - fx <= 2
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	cases := []struct {
		from, to navgrid.NavGridNode
		want     bool
	}{
		{node(0, 0), node(2, 0), true},
		{node(0, 0), node(3, 0), false},
		{node(5, 1), node(6, 9), true},
	}
	for _, c := range cases {
		got, err := f.Allow(c.from, c.to)
		if err != nil {
			t.Fatalf("allow(%v, %v): %v", c.from, c.to, err)
		}
		if got != c.want {
			t.Fatalf("allow(%v, %v) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
	if f.Calls() != len(cases) {
		t.Fatalf("expected %d calls, got %d", len(cases), f.Calls())
	}
}

func TestNavScriptFilterWrap(t *testing.T) {
	f, err := NewNavScriptFilter([]byte(`allow := func(fx, fz, tx, tz) { return true }`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	blocked := f.Wrap(func(navgrid.NavGridNode, navgrid.NavGridNode) bool { return false })
	if blocked(node(0, 0), node(1, 1)) {
		t.Fatalf("a blocked inner check must stay blocked")
	}
	if f.Calls() != 0 {
		t.Fatalf("script should not run when the inner check fails, ran %d times", f.Calls())
	}

	if !f.Wrap(nil)(node(0, 0), node(4, 4)) {
		t.Fatalf("nil inner predicate should see everything the script allows")
	}

	var nilFilter *NavScriptFilter
	if nilFilter.Wrap(navgrid.AdjacentOnly)(node(0, 0), node(3, 0)) {
		t.Fatalf("nil filter should return the inner predicate unchanged")
	}
}

func TestNavScriptFilterErrors(t *testing.T) {
	if _, err := NewNavScriptFilter([]byte(`x := 1`)); err == nil {
		t.Fatalf("expected a compile error when allow is missing")
	}

	f, err := NewNavScriptFilter([]byte(`allow := func(fx, fz, tx, tz) { return tx / fx > 0 }`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := f.Allow(node(0, 0), node(1, 0)); err == nil {
		t.Fatalf("expected a runtime error for division by zero")
	}
	if f.Wrap(nil)(node(0, 0), node(1, 0)) {
		t.Fatalf("a failing script must count as blocked")
	}
	if ok, err := f.Allow(node(1, 0), node(2, 0)); err != nil || !ok {
		t.Fatalf("script should keep running after a failed call, got %v, %v", ok, err)
	}

	if _, err := LoadNavScriptFilter(""); err == nil {
		t.Fatalf("expected an error for an empty path")
	}
	if _, err := LoadNavScriptFilter("scripts/does_not_exist.tengo"); err == nil {
		t.Fatalf("expected an error for a missing script")
	}
}

func TestEmbeddedLineOfSightFilter(t *testing.T) {
	f, err := LoadNavScriptFilter("scripts/los_filter.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := []struct {
		from, to navgrid.NavGridNode
		want     bool
	}{
		{node(0, 0), node(10, 10), true},
		{node(0, 0), node(11, 0), false},
		{node(11, 3), node(0, 3), false},
		{node(4, 12), node(4, 2), true},
	}
	for _, c := range cases {
		got, err := f.Allow(c.from, c.to)
		if err != nil {
			t.Fatalf("allow(%v, %v): %v", c.from, c.to, err)
		}
		if got != c.want {
			t.Fatalf("allow(%v, %v) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
