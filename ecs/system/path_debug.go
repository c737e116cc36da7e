package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gridnav/ecs"
	"github.com/milk9111/gridnav/ecs/component"
	"golang.org/x/image/colornames"
)

// PathDebugSystem draws obstacles, searched cells, the raw grid path and
// the smoothed waypoints. It does nothing on Update.
type PathDebugSystem struct {
	ShowVisited bool
	ShowRaw     bool
	ShowShapes  bool
	ShowStatus  bool
}

func NewPathDebugSystem() *PathDebugSystem {
	return &PathDebugSystem{ShowVisited: true, ShowRaw: true, ShowShapes: true, ShowStatus: true}
}

func (s *PathDebugSystem) Update(*ecs.World) {}

func (s *PathDebugSystem) Draw(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	if s == nil || w == nil || screen == nil {
		return
	}
	if zoom <= 0 {
		zoom = 1
	}

	if s.ShowShapes {
		if space := w.PhysicsWorld().Space(); space != nil {
			cp.DrawSpace(space, &shapeDebugDrawer{screen: screen, camX: camX, camY: camY, zoom: zoom})
		}
	}

	line := 0
	ecs.ForEach2(w, component.PathfindingComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pf *component.Pathfinding, t *component.Transform) {
		toScreen := func(n component.PathNode) (float32, float32) {
			return float32((n.X - camX) * zoom), float32((n.Y - camY) * zoom)
		}

		if s.ShowVisited {
			size := float32(pf.DebugNodeSize * zoom)
			for _, n := range pf.Visited {
				x, y := toScreen(n)
				vector.FillRect(screen, x-size/2, y-size/2, size, size, colornames.Slategray, false)
			}
		}
		if s.ShowRaw {
			strokePath(screen, pf.Raw, toScreen, 1, colornames.Orange)
		}
		strokePath(screen, pf.Path, toScreen, 2, colornames.Lime)

		size := float32(pf.DebugNodeSize * 2 * zoom)
		for _, n := range pf.Path {
			x, y := toScreen(n)
			vector.StrokeRect(screen, x-size/2, y-size/2, size, size, 1, colornames.White, false)
		}

		if s.ShowStatus {
			status := fmt.Sprintf("entity %v: %d waypoints, %d raw, %d visited", e, len(pf.Path), len(pf.Raw), len(pf.Visited))
			if pf.LastError != nil {
				status = fmt.Sprintf("entity %v: %v", e, pf.LastError)
			}
			ebitenutil.DebugPrintAt(screen, status, 10, 10+line*16)
			line++
		}
	})
}

func strokePath(screen *ebiten.Image, nodes []component.PathNode, toScreen func(component.PathNode) (float32, float32), width float32, clr color.Color) {
	for i := 1; i < len(nodes); i++ {
		x1, y1 := toScreen(nodes[i-1])
		x2, y2 := toScreen(nodes[i])
		vector.StrokeLine(screen, x1, y1, x2, y2, width, clr, true)
	}
}

// shapeDebugDrawer outlines physics shapes for cp.DrawSpace.
type shapeDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *shapeDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.toScreen(pos)
	r := float32(radius * d.zoom)
	vector.StrokeRect(d.screen, x-r, y-r, 2*r, 2*r, 1, toNRGBA(outline), false)
}

func (d *shapeDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *shapeDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *shapeDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *shapeDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.toScreen(pos)
	vector.FillRect(d.screen, x-1, y-1, 2, 2, toNRGBA(fill), false)
}

func (d *shapeDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *shapeDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.8, G: 0.2, B: 0.2, A: 0.9}
}

func (d *shapeDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.6, G: 0.1, B: 0.1, A: 0.5}
}

func (d *shapeDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *shapeDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *shapeDebugDrawer) Data() interface{} {
	return nil
}

func (d *shapeDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), true)
}

func (d *shapeDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32((v.X - d.camX) * d.zoom), float32((v.Y - d.camY) * d.zoom)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
