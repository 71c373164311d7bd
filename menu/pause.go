package menu

import (
	"fmt"
	"log"
	"slices"

	"github.com/milk9111/kzzzt/common"
	"github.com/milk9111/kzzzt/save"
)

// Screen is the pause menu page being shown.
type Screen int

const (
	MainScreen Screen = iota
	VolumeScreen
	SaveScreen
)

type MainItem int

const (
	ChangeVolume MainItem = iota
	SaveGame
	ReturnToWorldMap
	ReturnToMainMenu
	ExitGame
)

var mainLabels = []string{"Set Volume", "Save Game", "Return To World Map", "Return To Main Menu", "Exit Game"}

func (i MainItem) String() string {
	if i < 0 || int(i) >= len(mainLabels) {
		return "unknown"
	}
	return mainLabels[i]
}

type VolumeItem int

const (
	MusicVolume VolumeItem = iota
	EffectsVolume
	ApplyChanges
)

// Command is what the game must do after a pause menu update.
type Command int

const (
	None Command = iota
	Opened
	Closed
	GoToWorldMap
	GoToMainMenu
	Exit
	// Rejected means the selection is not available here, e.g. returning
	// to the world map while on it.
	Rejected
	Saved
)

const (
	WorldMapScene = "World Map"
	MainMenuScene = "Main Menu"

	firstSaveSlot = 1
	lastSaveSlot  = save.SlotCount - 1
)

// Pause is the pause menu model: navigation, live volume edits and save
// slot selection.
type Pause struct {
	manager *save.Manager
	logger  *log.Logger

	// Scene is the name of the active scene.
	Scene          string
	// DisabledScenes never open the menu.
	DisabledScenes []string
	// Allow gates opening the menu, e.g. during cutscenes.
	Allow          bool

	open      bool
	screen    Screen
	main      MainItem
	volume    VolumeItem
	saveSlot  int
	origMusic int
	origFX    int
}

func NewPause(manager *save.Manager, logger *log.Logger) *Pause {
	if logger == nil {
		logger = log.Default()
	}
	return &Pause{manager: manager, logger: logger, Allow: true, saveSlot: firstSaveSlot}
}

func (p *Pause) Open() bool { return p != nil && p.open }
func (p *Pause) Screen() Screen { return p.screen }
func (p *Pause) MainItem() MainItem { return p.main }
func (p *Pause) Volume() VolumeItem { return p.volume }
func (p *Pause) SaveSlot() int { return p.saveSlot }
func (p *Pause) MainItems() []string { return slices.Clone(mainLabels) }

// VolumeItems are the volume page labels with the live values.
func (p *Pause) VolumeItems() []string {
	s := p.settings()
	return []string{
		fmt.Sprintf("Music Volume %d%%", s.MusicVolume),
		fmt.Sprintf("Effects Volume %d%%", s.EffectsVolume),
		"Apply Changes",
	}
}

// SlotItems labels every save slot, autosave first.
func (p *Pause) SlotItems() []string {
	slots := p.manager.Slots()
	out := make([]string, 0, len(slots))
	for _, info := range slots {
		name := fmt.Sprintf("Save File %d", info.Slot)
		if info.Slot == save.AutosaveSlot {
			name = "Autosave"
		}
		if info.Used {
			name = fmt.Sprintf("%s  W%d-L%d  %d gems", name, info.Progress.World, info.Progress.Level, info.Progress.GemCount())
		} else {
			name += "  (empty)"
		}
		out = append(out, name)
	}
	return out
}

func (p *Pause) settings() *save.Settings {
	return p.manager.Settings()
}

func (p *Pause) canOpen() bool {
	return p.Allow && !slices.Contains(p.DisabledScenes, p.Scene)
}

// Toggle opens or closes the menu. Closing drops unapplied volume edits.
func (p *Pause) Toggle() Command {
	if p.open {
		p.open = false
		s := p.settings()
		s.MusicVolume = p.origMusic
		s.EffectsVolume = p.origFX
		return Closed
	}
	p.open = true
	p.screen = MainScreen
	p.main = ChangeVolume
	p.origMusic = p.settings().MusicVolume
	p.origFX = p.settings().EffectsVolume
	return Opened
}

// Update applies one frame of input.
func (p *Pause) Update(in Input) Command {
	if p == nil {
		return None
	}
	if in.Pause && (p.open || p.canOpen()) {
		return p.Toggle()
	}
	if !p.open {
		return None
	}

	switch p.screen {
	case MainScreen:
		return p.updateMain(in)
	case VolumeScreen:
		p.updateVolume(in)
	case SaveScreen:
		return p.updateSave(in)
	}
	return None
}

func (p *Pause) updateMain(in Input) Command {
	if in.Up && p.main > ChangeVolume {
		p.main--
	}
	if in.Down && p.main < ExitGame {
		p.main++
	}

	if in.Select {
		switch p.main {
		case ChangeVolume:
			p.screen = VolumeScreen
			p.volume = MusicVolume
		case SaveGame:
			p.screen = SaveScreen
			p.saveSlot = firstSaveSlot
		case ReturnToWorldMap:
			if p.Scene == WorldMapScene {
				return Rejected
			}
			p.Toggle()
			return GoToWorldMap
		case ReturnToMainMenu:
			p.Toggle()
			return GoToMainMenu
		case ExitGame:
			p.Toggle()
			return Exit
		}
		return None
	}

	if in.Cancel {
		return p.Toggle()
	}
	return None
}

func (p *Pause) updateVolume(in Input) {
	if in.Up && p.volume > MusicVolume {
		p.volume--
	}
	if in.Down && p.volume < ApplyChanges {
		p.volume++
	}

	s := p.settings()
	switch p.volume {
	case MusicVolume:
		s.MusicVolume = stepVolume(s.MusicVolume, in)
	case EffectsVolume:
		s.EffectsVolume = stepVolume(s.EffectsVolume, in)
	case ApplyChanges:
		if in.Select {
			p.origMusic = s.MusicVolume
			p.origFX = s.EffectsVolume
			if err := p.manager.SaveSettings(); err != nil {
				p.logger.Printf("menu: save settings: %v", err)
			}
			p.screen = MainScreen
			p.main = ChangeVolume
			return
		}
	}

	if in.Cancel {
		s.MusicVolume = p.origMusic
		s.EffectsVolume = p.origFX
		p.screen = MainScreen
		p.main = ChangeVolume
	}
}

func stepVolume(v int, in Input) int {
	if in.LeftHeld {
		v = common.IntMoveTowards(v, save.MinVolume, 1)
	}
	if in.RightHeld {
		v = common.IntMoveTowards(v, save.MaxVolume, 1)
	}
	return v
}

func (p *Pause) updateSave(in Input) Command {
	if in.Up && p.saveSlot > firstSaveSlot {
		p.saveSlot--
	}
	if in.Down && p.saveSlot < lastSaveSlot {
		p.saveSlot++
	}

	if in.Erase {
		if err := p.manager.EraseProgress(p.saveSlot); err != nil {
			p.logger.Printf("menu: erase slot %d: %v", p.saveSlot, err)
		}
	}

	if in.Select {
		if err := p.manager.SaveProgress(p.saveSlot); err != nil {
			p.logger.Printf("menu: save slot %d: %v", p.saveSlot, err)
			return Rejected
		}
		p.Toggle()
		return Saved
	}

	if in.Cancel {
		p.screen = MainScreen
		p.main = SaveGame
	}
	return None
}
