package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBorder
)

// PhysicsWorld owns the Chipmunk space holding static level geometry. Path
// smoothing uses it to answer line-of-sight queries.
type PhysicsWorld struct {
	space    *cp.Space
	width    int
	height   int
	tileSize float64

	tiles         []*cp.Shape
	shapeToEntity map[*cp.Shape]Entity
	entityShapes  map[Entity][]*cp.Shape
}

// NewPhysicsWorld creates a physics world for a width x height tile grid.
// blocked is row-major; adjacent blocked tiles are merged into boxes.
func NewPhysicsWorld(blocked []bool, width, height int, tileSize float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20

	pw := &PhysicsWorld{
		space:         space,
		width:         width,
		height:        height,
		tileSize:      tileSize,
		shapeToEntity: make(map[*cp.Shape]Entity),
		entityShapes:  make(map[Entity][]*cp.Shape),
	}
	pw.buildStaticShapes(blocked)
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// TileSize returns the world size of one grid tile.
func (pw *PhysicsWorld) TileSize() float64 {
	if pw == nil {
		return 0
	}
	return pw.tileSize
}

// AddStaticBox registers an axis-aligned obstacle owned by e.
func (pw *PhysicsWorld) AddStaticBox(e Entity, minX, minY, maxX, maxY float64) *cp.Shape {
	if pw == nil || pw.space == nil || maxX <= minX || maxY <= minY {
		return nil
	}
	shape := cp.NewBox2(pw.space.StaticBody, cp.BB{L: minX, B: minY, R: maxX, T: maxY}, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	pw.entityShapes[e] = append(pw.entityShapes[e], shape)
	return shape
}

// RemoveEntity drops every shape registered for e.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	for _, shape := range pw.entityShapes[e] {
		pw.space.RemoveShape(shape)
		delete(pw.shapeToEntity, shape)
	}
	delete(pw.entityShapes, e)
}

// SolidBounds returns the bounding boxes of every solid shape, tiles first.
// Level border segments are not included.
func (pw *PhysicsWorld) SolidBounds() []cp.BB {
	if pw == nil {
		return nil
	}
	out := make([]cp.BB, 0, len(pw.tiles)+len(pw.shapeToEntity))
	for _, shape := range pw.tiles {
		out = append(out, shape.BB())
	}
	for _, shapes := range pw.entityShapes {
		for _, shape := range shapes {
			out = append(out, shape.BB())
		}
	}
	return out
}

// LineOfSight reports whether a segment of the given radius from (ax, ay)
// to (bx, by) touches no shape. The broadphase box is grown by radius so
// shapes beside the segment are tested as well.
func (pw *PhysicsWorld) LineOfSight(ax, ay, bx, by, radius float64) bool {
	if pw == nil || pw.space == nil {
		return true
	}
	if radius < 0 {
		radius = 0
	}
	a := cp.Vector{X: ax, Y: ay}
	b := cp.Vector{X: bx, Y: by}
	bb := cp.BB{
		L: math.Min(ax, bx) - radius,
		B: math.Min(ay, by) - radius,
		R: math.Max(ax, bx) + radius,
		T: math.Max(ay, by) + radius,
	}

	visible := true
	pw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if visible && shape.SegmentQuery(a, b, radius, nil) {
			visible = false
		}
	}, nil)
	return visible
}

func (pw *PhysicsWorld) buildStaticShapes(blocked []bool) {
	if pw == nil || pw.space == nil || pw.width <= 0 || pw.height <= 0 {
		return
	}
	if len(blocked) == pw.width*pw.height {
		pw.processBlockedTiles(blocked)
	}

	worldW := float64(pw.width) * pw.tileSize
	worldH := float64(pw.height) * pw.tileSize
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetCollisionType(collisionTypeBorder)
		pw.space.AddShape(shape)
	}
}

// processBlockedTiles greedily grows each unprocessed blocked tile into the
// widest, then tallest, rectangle of blocked tiles and adds it as one box.
func (pw *PhysicsWorld) processBlockedTiles(blocked []bool) {
	processed := make([]bool, len(blocked))
	for y := 0; y < pw.height; y++ {
		for x := 0; x < pw.width; x++ {
			idx := y*pw.width + x
			if processed[idx] {
				continue
			}
			if !blocked[idx] {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < pw.width {
				idx2 := y*pw.width + (x + w)
				if processed[idx2] || !blocked[idx2] {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < pw.height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*pw.width + xi
					if processed[idx2] || !blocked[idx2] {
						break heightLoop
					}
				}
				h++
			}

			x0 := float64(x) * pw.tileSize
			y0 := float64(y) * pw.tileSize
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*pw.tileSize, T: y0 + float64(h)*pw.tileSize}
			shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
			shape.SetFriction(0.8)
			shape.SetCollisionType(collisionTypeSolid)
			pw.space.AddShape(shape)
			pw.tiles = append(pw.tiles, shape)

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*pw.width+xx] = true
				}
			}
		}
	}
}
