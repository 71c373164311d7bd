package menu

import (
	"github.com/milk9111/kzzzt/common"
	"github.com/milk9111/kzzzt/save"
)

const (
	// wheelBaseRotation is the wheel angle, in degrees, with level 1 on top.
	wheelBaseRotation = 160
	wheelStep         = 72
)

// LevelSelect is the level wheel shown on the world map.
type LevelSelect struct {
	progress *save.Progress

	World int
	// RestrictLocked refuses entry into locked levels.
	RestrictLocked bool

	active   bool
	index    int
	rotation float64
	shaking  bool
}

func NewLevelSelect(progress *save.Progress, world int) *LevelSelect {
	return &LevelSelect{progress: progress, World: world, RestrictLocked: true, index: 1, rotation: wheelBaseRotation}
}

// SetActive shows or hides the wheel. Showing it resets the rotation;
// hiding it resets the selection to the first level.
func (ls *LevelSelect) SetActive(active bool) {
	if active == ls.active {
		return
	}
	ls.active = active
	if active {
		ls.rotation = wheelBaseRotation
		return
	}
	ls.index = 1
}

func (ls *LevelSelect) Active() bool { return ls.active }
func (ls *LevelSelect) Index() int { return ls.index }

// TargetRotation is the wheel angle that puts the selected level on top.
func (ls *LevelSelect) TargetRotation() float64 {
	return ls.rotation
}

// Label is the title shown for the selected level.
func (ls *LevelSelect) Label() string {
	return common.LevelTag(ls.World, ls.index)
}

// Locked reports whether index would be refused.
func (ls *LevelSelect) Locked(index int) bool {
	return ls.RestrictLocked && (ls.progress == nil || !ls.progress.IsUnlocked(ls.World, index))
}

// Shaking is true for the frame after a refused entry.
func (ls *LevelSelect) Shaking() bool { return ls.shaking }

// Update moves the selection with Left/Right. Select returns the chosen
// level, or 0 if nothing was entered.
func (ls *LevelSelect) Update(in Input) int {
	ls.shaking = false
	if !ls.active {
		return 0
	}

	next := ls.index
	if in.Left {
		next--
	}
	if in.Right {
		next++
	}
	next, _ = common.ForceRange(next, 1, save.LevelsPerWorld)
	if next != ls.index {
		ls.index = next
		ls.rotation = float64(wheelBaseRotation + wheelStep*(next-1))
	}

	if !in.Select {
		return 0
	}
	if ls.Locked(ls.index) {
		ls.shaking = true
		return 0
	}
	return ls.index
}
