package main

import (
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gridnav/ecs"
	"github.com/milk9111/gridnav/ecs/component"
	"github.com/milk9111/gridnav/prefabs"
	"golang.org/x/image/colornames"
)

type Game struct {
	scene        *scene
	navPath      string
	watcher      *prefabs.Watcher
	copyOnRepath bool
}

func NewGame(s *scene, navPath string, watcher *prefabs.Watcher, copyOnRepath bool) *Game {
	return &Game{scene: s, navPath: navPath, watcher: watcher, copyOnRepath: copyOnRepath}
}

func (g *Game) Update() error {
	g.drainReloads()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !g.scene.moveTarget(float64(x), float64(y)) {
			log.Printf("navdemo: cell under (%d,%d) is blocked", x, y)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.scene.debug.ShowVisited = !g.scene.debug.ShowVisited
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.debug.ShowRaw = !g.scene.debug.ShowRaw
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		copyWaypoints(g.scene.waypoints())
	}

	g.scene.world.Update()

	for _, evt := range g.scene.world.Events().Drain() {
		pe, ok := evt.Data.(ecs.PathEvent)
		if !ok || pe.Kind != ecs.PathEventFound || !g.copyOnRepath {
			continue
		}
		copyWaypoints(g.scene.waypoints())
	}
	return nil
}

// drainReloads applies spec and script edits picked up by the watcher.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			switch change.Kind {
			case prefabs.SpecChanged:
				if filepath.Base(change.Path) != filepath.Base(g.navPath) {
					continue
				}
				nav, err := prefabs.LoadNavigationSpec(g.navPath)
				if err != nil {
					log.Printf("navdemo: reload %s: %v", g.navPath, err)
					continue
				}
				g.scene.applyNavigation(nav)
				log.Printf("navdemo: reloaded %s", g.navPath)
			case prefabs.ScriptChanged:
				g.scene.pathfinding.InvalidateScripts(g.scene.world)
				log.Printf("navdemo: reloaded %s", change.Path)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("navdemo: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	s := g.scene
	ts := float32(s.tileSize)
	for y := 0; y < s.layout.Height; y++ {
		for x := 0; x < s.layout.Width; x++ {
			if s.layout.Blocked[y*s.layout.Width+x] {
				vector.FillRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, colornames.Dimgray, false)
			}
		}
	}

	s.world.Draw(screen, 0, 0, 1)

	drawMarker(screen, s.world, s.target, ts/2, colornames.Gold)
	drawMarker(screen, s.world, s.agent, ts/3, colornames.Dodgerblue)
}

func drawMarker(screen *ebiten.Image, w *ecs.World, e ecs.Entity, size float32, clr color.Color) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	vector.FillRect(screen, float32(t.X)-size/2, float32(t.Y)-size/2, size, size, clr, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	s := g.scene
	return float64(s.layout.Width) * s.tileSize, float64(s.layout.Height) * s.tileSize
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
