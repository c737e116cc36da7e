package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gridnav/ecs/component"
	"github.com/milk9111/gridnav/prefabs"
	"golang.design/x/clipboard"
)

func main() {
	levelName := flag.String("level", "arena.yaml", "level spec in prefabs/")
	navName := flag.String("nav", "navigation.yaml", "navigation spec in prefabs/")
	headless := flag.Bool("headless", false, "search once, log the waypoints and exit")
	copyPath := flag.Bool("copy", false, "copy waypoints to the clipboard after every repath")
	watch := flag.Bool("watch", true, "reload specs and scripts when they change on disk")
	flag.Parse()

	level, err := prefabs.LoadLevelSpec(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	nav, err := prefabs.LoadNavigationSpec(*navName)
	if err != nil {
		log.Fatal(err)
	}
	s, err := newScene(level, nav)
	if err != nil {
		log.Fatal(err)
	}

	if *copyPath || !*headless {
		if err := clipboard.Init(); err != nil {
			log.Printf("navdemo: clipboard unavailable: %v", err)
		} else {
			clipboardReady = true
		}
	}

	if *headless {
		s.world.Update()
		if err := s.lastError(); err != nil {
			log.Fatal(err)
		}
		path := s.waypoints()
		log.Printf("navdemo: %s: %d waypoints", level.Name, len(path))
		for i := len(path) - 1; i >= 0; i-- {
			log.Printf("navdemo:   (%g, %g)", path[i].X, path[i].Y)
		}
		if *copyPath {
			copyWaypoints(path)
		}
		return
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher = startWatcher()
		if watcher != nil {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(float64(s.layout.Width)*s.tileSize), int(float64(s.layout.Height)*s.tileSize))
	ebiten.SetWindowTitle("navdemo")

	if err := ebiten.RunGame(NewGame(s, *navName, watcher, *copyPath)); err != nil {
		log.Fatal(err)
	}
}

func startWatcher() *prefabs.Watcher {
	dirs := []string{}
	for _, dir := range []string{prefabs.OverrideDir, filepath.Join(prefabs.OverrideDir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("navdemo: watch %v: %v", dirs, err)
		return nil
	}
	return w
}

var clipboardReady bool

func copyWaypoints(path []component.PathNode) {
	if !clipboardReady || len(path) == 0 {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(formatWaypoints(path)))
}
