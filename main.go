package main

import (
	"flag"
	"log"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/kzzzt/prefabs"
	"github.com/milk9111/kzzzt/save"
)

func main() {
	debug := flag.Bool("debug", false, "draw trigger zones and frame stats")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "start in this level, e.g. 1-1, instead of the main menu")
	watch := flag.Bool("watch", false, "reload the level when files under prefabs/ change")
	memSaves := flag.Bool("memsave", false, "keep saves in memory only")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}

	saves := save.NewManager(openStore(spec.SaveApp, *memSaves))
	if _, err := saves.LoadProgress(save.AutosaveSlot); err != nil {
		log.Printf("save: no autosave: %v", err)
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(spec.ScreenWidth*2, spec.ScreenHeight*2)
	ebiten.SetWindowTitle(spec.Title)

	game := NewGame(spec, saves, watcher, *debug)
	if *levelName != "" {
		world, level, ok := parseLevelName(*levelName)
		if !ok {
			log.Fatalf("bad -level %q, want world-level such as 1-1", *levelName)
		}
		game.loadLevel(world, level)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// openStore opens the gdata store, falling back to memory when it is
// unavailable or not wanted.
func openStore(app string, memory bool) save.Store {
	if memory || app == "" {
		return save.NewMemoryStore()
	}
	store, err := save.OpenGData(app)
	if err != nil {
		log.Printf("save: gdata unavailable, saves are memory only: %v", err)
		return save.NewMemoryStore()
	}
	return store
}

func parseLevelName(s string) (int, int, bool) {
	w, l, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, false
	}
	world, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, false
	}
	level, err := strconv.Atoi(l)
	if err != nil {
		return 0, 0, false
	}
	return world, level, true
}
