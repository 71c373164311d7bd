package prefabs

import (
	"fmt"

	"github.com/milk9111/kzzzt/levels"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is game.yaml: window and level settings.
type GameSpec struct {
	Title        string  `yaml:"title"`
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	TileSize     float64 `yaml:"tile_size"`
	Palette      string  `yaml:"palette"`
	FirstLevel   string  `yaml:"first_level"`
	SaveApp      string  `yaml:"save_app"`
}

func LoadGameSpec() (GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return GameSpec{}, err
	}
	if spec.TileSize <= 0 {
		spec.TileSize = 16
	}
	if spec.ScreenWidth <= 0 || spec.ScreenHeight <= 0 {
		spec.ScreenWidth, spec.ScreenHeight = 640, 360
	}
	return spec, nil
}

// EntityBuildSpec is one prefab: a name, its tags and a bag of component
// specs keyed by component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Tags       []string       `yaml:"tags"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type BodyComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type DebugComponentSpec struct {
	Color levels.Color `yaml:"color"`
}

type TriggerZoneComponentSpec struct {
	Switch string   `yaml:"switch"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Tags   []string `yaml:"tags"`
}

type ManualSwitchComponentSpec struct {
	Switch string `yaml:"switch"`
	On     bool   `yaml:"on"`
}

// ListenerComponentSpec names the switches a listener aggregates. Names are
// resolved against the entity's own switches first, then the level's.
type ListenerComponentSpec struct {
	Name                 string   `yaml:"name"`
	Switches             []string `yaml:"switches"`
	Mode                 string   `yaml:"mode"`
	ListenToDeactivation bool     `yaml:"listen_to_deactivation"`
	FlipActivation       bool     `yaml:"flip_activation"`
	Disabled             bool     `yaml:"disabled"`
}

type CheckpointComponentSpec struct {
	Index int    `yaml:"index"`
	Alert string `yaml:"alert"`
}

type OrbiterComponentSpec struct {
	Group   string  `yaml:"group"`
	Radius  float64 `yaml:"radius"`
	Speed   float64 `yaml:"speed"`
	Angle   float64 `yaml:"angle"`
	Enabled bool    `yaml:"enabled"`
}

type OrbitToggleComponentSpec struct {
	Group   string `yaml:"group"`
	OnMode  string `yaml:"on_mode"`
	OffMode string `yaml:"off_mode"`
	Reverse bool   `yaml:"reverse"`
}

type DestroyOutsideComponentSpec struct {
	Tags  []string `yaml:"tags"`
	Delay float64  `yaml:"delay"`
}

type CameraComponentSpec struct {
	Zoom float64 `yaml:"zoom"`
}

type CameraRelativeComponentSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	RatioX  float64 `yaml:"ratio_x"`
	RatioY  float64 `yaml:"ratio_y"`
}

// StateMachineComponentSpec points at an fsm spec file in this package.
type StateMachineComponentSpec struct {
	FSM    string `yaml:"fsm"`
	Paused bool   `yaml:"paused"`
}
