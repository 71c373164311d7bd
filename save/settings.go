package save

import "github.com/milk9111/kzzzt/common"

const (
	MinVolume = 0
	MaxVolume = 100
)

// Settings are global to the install, not to a save slot.
type Settings struct {
	MusicVolume   int               `yaml:"music_volume"`
	EffectsVolume int               `yaml:"effects_volume"`
	Keys          map[string]string `yaml:"keys"`
}

func DefaultSettings() Settings {
	return Settings{
		MusicVolume:   80,
		EffectsVolume: 80,
		Keys: map[string]string{
			"up":     "ArrowUp",
			"down":   "ArrowDown",
			"left":   "ArrowLeft",
			"right":  "ArrowRight",
			"select": "Enter",
			"cancel": "Backspace",
			"pause":  "Escape",
		},
	}
}

// Clamp forces both volumes into [MinVolume, MaxVolume] and fills in any
// missing key binding from the defaults.
func (s *Settings) Clamp() {
	s.MusicVolume, _ = common.ForceRange(s.MusicVolume, MinVolume, MaxVolume)
	s.EffectsVolume, _ = common.ForceRange(s.EffectsVolume, MinVolume, MaxVolume)
	if s.Keys == nil {
		s.Keys = make(map[string]string)
	}
	for action, key := range DefaultSettings().Keys {
		if s.Keys[action] == "" {
			s.Keys[action] = key
		}
	}
}
