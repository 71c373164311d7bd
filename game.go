package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/kzzzt/common"
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
	"github.com/milk9111/kzzzt/ecs/render"
	"github.com/milk9111/kzzzt/ecs/system"
	"github.com/milk9111/kzzzt/levels"
	"github.com/milk9111/kzzzt/menu"
	"github.com/milk9111/kzzzt/prefabs"
	"github.com/milk9111/kzzzt/save"
)

const (
	levelScene = "Level"

	// fallbackTPS is used until ebiten has measured a real tick rate.
	fallbackTPS   = 60.0
	bannerSeconds = 3.0
)

type Game struct {
	spec  prefabs.GameSpec
	debug bool

	saves    *save.Manager
	keys     keyBindings
	pause    *menu.Pause
	pauseUI  *PauseUI
	wheel    *menu.LevelSelect
	builder  *prefabs.Builder
	watcher  *prefabs.Watcher
	renderer *render.RenderSystem

	scene  string
	world  *ecs.World
	sched  *ecs.Scheduler
	player ecs.Entity

	banner      string
	bannerTimer float64
}

func NewGame(spec prefabs.GameSpec, saves *save.Manager, watcher *prefabs.Watcher, debug bool) *Game {
	g := &Game{
		spec:    spec,
		debug:   debug,
		saves:   saves,
		keys:    bindKeys(saves.Settings().Keys),
		watcher: watcher,
		scene:   menu.MainMenuScene,
		world:   ecs.NewWorld(),
	}
	g.pause = menu.NewPause(saves, log.Default())
	g.pause.DisabledScenes = []string{menu.MainMenuScene}
	g.pauseUI = NewPauseUI(g.pause, spec.ScreenWidth, spec.ScreenHeight)
	g.wheel = menu.NewLevelSelect(saves.Progress(), 1)
	g.builder = prefabs.NewBuilder(spec.TileSize, prefabs.WithDisplay(g.showBanner))
	g.renderer = render.NewRenderSystem(spec.ScreenWidth, spec.ScreenHeight)
	g.renderer.Debug = debug
	return g
}

// frameDelta is the seconds per tick at tps, falling back to 60 ticks per
// second before ebiten has a measurement.
func frameDelta(tps float64) float64 {
	if tps <= 0 {
		tps = fallbackTPS
	}
	return 1 / tps
}

func (g *Game) newScheduler() *ecs.Scheduler {
	return ecs.NewScheduler(
		system.NewPlayerMoveSystem(),
		system.NewSwitchSystem(),
		system.NewListenerSystem(nil),
		system.NewCompleteLevelSystem(),
		system.NewCheckpointSystem(g.saves.Progress()),
		system.NewOrbitToggleSystem(),
		system.NewOrbitSystem(),
		system.NewCameraFollowSystem(),
		system.NewCameraRelativeSystem(),
		system.NewDestroyOutsideSystem(),
		system.NewAlertSystem(),
		system.NewActionSystem(),
	)
}

func (g *Game) showBanner(text string) {
	g.banner = text
	g.bannerTimer = bannerSeconds
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	g.pollWatcher()

	in := g.keys.menuInput()
	g.pause.Scene = g.scene
	switch g.pause.Update(in) {
	case menu.GoToWorldMap:
		g.enterWorldMap()
	case menu.GoToMainMenu:
		g.wheel.SetActive(false)
		g.scene = menu.MainMenuScene
	case menu.Exit:
		return ebiten.Termination
	case menu.Closed:
		g.keys = bindKeys(g.saves.Settings().Keys)
	}
	if g.pause.Open() {
		g.pauseUI.Update()
		return nil
	}

	switch g.scene {
	case menu.MainMenuScene:
		if in.Select {
			g.enterWorldMap()
		}
	case menu.WorldMapScene:
		if level := g.wheel.Update(in); level > 0 {
			g.loadLevel(g.wheel.World, level)
		}
	case levelScene:
		g.updateLevel()
	}
	return nil
}

func (g *Game) updateLevel() {
	dt := frameDelta(ebiten.ActualTPS())
	if in, ok := ecs.Get(g.world, g.player, component.PlayerInputComponent.Kind()); ok {
		g.keys.playerInput(in)
	}
	g.sched.Step(g.world, dt)
	common.UseAsTimer(&g.bannerTimer, dt)
	g.handleEvents()
}

func (g *Game) handleEvents() {
	progress := g.saves.Progress()
	for _, ev := range g.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventCheckpoint:
			g.autosave()
		case ecs.EventLevelComplete:
			if err := progress.CompleteLevel(progress.World, progress.Level); err != nil {
				log.Printf("game: complete level: %v", err)
			}
			g.autosave()
			g.enterWorldMap()
			return
		}
	}
}

func (g *Game) autosave() {
	if err := g.saves.SaveProgress(save.AutosaveSlot); err != nil {
		log.Printf("game: autosave: %v", err)
	}
}

func (g *Game) enterWorldMap() {
	g.scene = menu.WorldMapScene
	g.wheel.World = max(g.saves.Progress().World, 1)
	g.wheel.SetActive(true)
}

func mapName(world, level int) string {
	return fmt.Sprintf("%d-%d", world, level)
}

// loadLevel replaces the world with a freshly built level. On failure the
// current scene is kept.
func (g *Game) loadLevel(world, level int) {
	name := mapName(world, level)
	plan, err := levels.LoadPlanFromFS(name, g.spec.Palette)
	if err != nil {
		log.Printf("game: load level %s: %v", name, err)
		return
	}

	w := ecs.NewWorld()
	g.builder.Reset()
	if _, err := g.builder.BuildLevel(w, plan); err != nil {
		log.Printf("game: build level %s: %v", name, err)
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		log.Printf("game: level %s has no player", name)
		return
	}
	start, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	g.spawnExtras(w, plan, start)

	progress := g.saves.Progress()
	progress.World, progress.Level = world, level

	g.world, g.player, g.sched = w, player, g.newScheduler()
	g.wheel.SetActive(false)
	g.scene = levelScene
	g.banner, g.bannerTimer = "", 0
	log.Printf("game: entered %s (%s)", name, common.LevelTag(world, level))
}

// spawnExtras adds what every level has but no map paints: the camera,
// the backdrop, and a room zone covering the whole map.
func (g *Game) spawnExtras(w *ecs.World, plan *levels.Plan, start *component.Transform) {
	if _, err := g.builder.Spawn(w, "camera", start.X, start.Y); err != nil {
		log.Printf("game: camera: %v", err)
	}
	if _, err := g.builder.Spawn(w, "backdrop", 0, 0); err != nil {
		log.Printf("game: backdrop: %v", err)
	}

	tile := g.builder.TileSize
	width, height := float64(plan.Width)*tile, float64(plan.Height)*tile
	room, err := g.builder.Spawn(w, "room", width/2-tile/2, height/2-tile/2)
	if err != nil {
		log.Printf("game: room: %v", err)
		return
	}
	if zone, ok := ecs.Get(w, room, component.TriggerZoneComponent.Kind()); ok {
		zone.W, zone.H = width, height
	}
}

// pollWatcher reloads the current level when a prefab or script changes.
func (g *Game) pollWatcher() {
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
			if !change.Script {
				g.builder.Forget(change.Name)
			}
			log.Printf("game: %s changed", change.Name)
			if g.scene == levelScene {
				progress := g.saves.Progress()
				g.loadLevel(progress.World, progress.Level)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.scene {
	case menu.MainMenuScene:
		ebitenutil.DebugPrintAt(screen, g.spec.Title+"\n\nPress Enter", 24, 24)
	case menu.WorldMapScene:
		g.drawWorldMap(screen)
	case levelScene:
		g.drawLevel(screen)
	}
	if g.pause.Open() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawWorldMap(screen *ebiten.Image) {
	msg := fmt.Sprintf("World %d\n\n< %s >\n", g.wheel.World, g.wheel.Label())
	if g.wheel.Locked(g.wheel.Index()) {
		msg += "(locked)\n"
	}
	if g.wheel.Shaking() {
		msg += "\nThat level is locked!"
	}
	msg += fmt.Sprintf("\nGems: %d", g.saves.Progress().GemCount())
	ebitenutil.DebugPrintAt(screen, msg, 24, 24)
}

func (g *Game) drawLevel(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.2f  entities: %d", ebiten.ActualTPS(), len(ecs.Entities(g.world))))
	}
	if g.bannerTimer > 0 {
		ebitenutil.DebugPrintAt(screen, g.banner, 24, g.spec.ScreenHeight-32)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.spec.ScreenWidth, g.spec.ScreenHeight
}
