package save

import (
	"fmt"

	"github.com/milk9111/kzzzt/common"
)

const (
	Worlds          = 5
	LevelsPerWorld  = 5
	LettersPerLevel = 3
	// LetterLevels is the number of regular levels per world. Only they
	// hold letters; the challenge and boss levels after them do not.
	LetterLevels    = 3
)

var ErrInvalidLevel = fmt.Errorf("%w: level out of range", common.ErrInvalidArgument)

type LevelProgress struct {
	Unlocked bool                  `yaml:"unlocked"`
	Gem      bool                  `yaml:"gem"`
	Letters  [LettersPerLevel]bool `yaml:"letters"`
}

// Progress is one save file. World and Level are 1-based; Checkpoint is
// the index of the last checkpoint reached in the current level, 0 for the
// level start.
type Progress struct {
	World      int               `yaml:"world"`
	Level      int               `yaml:"level"`
	Checkpoint int               `yaml:"checkpoint"`
	Levels     [][]LevelProgress `yaml:"levels"`
}

// NewProgress starts a game at world 1 level 1 with only that level open.
func NewProgress() Progress {
	p := Progress{World: 1, Level: 1}
	p.normalize()
	p.Levels[0][0].Unlocked = true
	return p
}

// normalize resizes Levels to Worlds x LevelsPerWorld so files written by
// older builds load cleanly.
func (p *Progress) normalize() {
	levels, _ := common.Resize(p.Levels, Worlds)
	for i := range levels {
		levels[i], _ = common.Resize(levels[i], LevelsPerWorld)
	}
	p.Levels = levels
}

func (p *Progress) level(world, level int) (*LevelProgress, error) {
	if world < 1 || world > Worlds || level < 1 || level > LevelsPerWorld {
		return nil, fmt.Errorf("%w (world %d level %d)", ErrInvalidLevel, world, level)
	}
	if len(p.Levels) != Worlds {
		p.normalize()
	}
	return &p.Levels[world-1][level-1], nil
}

func (p *Progress) IsUnlocked(world, level int) bool {
	lp, err := p.level(world, level)
	return err == nil && lp.Unlocked
}

func (p *Progress) Unlock(world, level int) error {
	lp, err := p.level(world, level)
	if err != nil {
		return err
	}
	lp.Unlocked = true
	return nil
}

func (p *Progress) CollectGem(world, level int) error {
	lp, err := p.level(world, level)
	if err != nil {
		return err
	}
	lp.Gem = true
	return nil
}

func (p *Progress) CollectLetter(world, level, letter int) error {
	lp, err := p.level(world, level)
	if err != nil {
		return err
	}
	if letter < 0 || letter >= LettersPerLevel || level > LetterLevels {
		return fmt.Errorf("%w (letter %d)", ErrInvalidLevel, letter)
	}
	lp.Letters[letter] = true
	return nil
}

// GemCount is the number of gems collected over all worlds.
func (p *Progress) GemCount() int {
	n := 0
	for _, world := range p.Levels {
		for _, lp := range world {
			if lp.Gem {
				n++
			}
		}
	}
	return n
}

// RecordCheckpoint remembers checkpoint as the respawn point of the
// current level.
func (p *Progress) RecordCheckpoint(checkpoint int) {
	p.Checkpoint = checkpoint
}

// CompleteLevel clears the checkpoint and opens the next level, moving on
// to the next world after the boss.
func (p *Progress) CompleteLevel(world, level int) error {
	if _, err := p.level(world, level); err != nil {
		return err
	}
	p.Checkpoint = 0
	if level < LevelsPerWorld {
		return p.Unlock(world, level+1)
	}
	if world < Worlds {
		return p.Unlock(world+1, 1)
	}
	return nil
}
