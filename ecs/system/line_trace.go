package system

import (
	"math"

	"github.com/milk9111/gridnav/ecs"
	"github.com/milk9111/gridnav/ecs/component"
)

// firstStaticHit returns the first point where the segment from (x0, y0) to
// (x1, y1) enters a static body other than self. Bodies are grown by radius
// on every side.
func firstStaticHit(w *ecs.World, self ecs.Entity, x0, y0, x1, y1, radius float64) (float64, float64, bool) {
	if w == nil {
		return 0, 0, false
	}

	dx := x1 - x0
	dy := y1 - y0
	if dx == 0 && dy == 0 {
		return 0, 0, false
	}

	closestT := 1.0
	hasHit := false

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		if e == self || !body.Static {
			return
		}

		minX, minY, maxX, maxY := bodyAABB(transform, body)
		if hit, t := segmentAABBHit(x0, y0, dx, dy, minX-radius, minY-radius, maxX+radius, maxY+radius); hit {
			if t >= 0 && t < closestT {
				closestT = t
				hasHit = true
			}
		}
	})

	if !hasHit {
		return 0, 0, false
	}

	return x0 + dx*closestT, y0 + dy*closestT, true
}

// traceLineOfSight answers visibility from static bodies alone. It is used
// when no physics world is attached.
func traceLineOfSight(w *ecs.World, self ecs.Entity, radius float64) func(ax, ay, bx, by float64) bool {
	return func(ax, ay, bx, by float64) bool {
		_, _, hit := firstStaticHit(w, self, ax, ay, bx, by, radius)
		return !hit
	}
}

func bodyAABB(transform *component.Transform, body *component.PhysicsBody) (minX, minY, maxX, maxY float64) {
	width := body.Width
	height := body.Height
	if width <= 0 {
		width = 32
	}
	if height <= 0 {
		height = 32
	}

	if body.AlignTopLeft {
		minX = transform.X + body.OffsetX
		minY = transform.Y + body.OffsetY
	} else {
		minX = transform.X + body.OffsetX - width/2
		minY = transform.Y + body.OffsetY - height/2
	}
	maxX = minX + width
	maxY = minY + height
	return
}

// segmentAABBHit is a slab test for the segment p(t) = (x0, y0) + t*(dx, dy),
// t in [0, 1]. It returns the entry parameter on a hit.
func segmentAABBHit(x0, y0, dx, dy, minX, minY, maxX, maxY float64) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	if dx != 0 {
		invD := 1.0 / dx
		t1 := (minX - x0) * invD
		t2 := (maxX - x0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if x0 < minX || x0 > maxX {
		return false, 0
	}

	if dy != 0 {
		invD := 1.0 / dy
		t1 := (minY - y0) * invD
		t2 := (maxY - y0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if y0 < minY || y0 > maxY {
		return false, 0
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}
