package prefabs

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
	"github.com/milk9111/kzzzt/fsm"
	"github.com/milk9111/kzzzt/levels"
	"github.com/milk9111/kzzzt/trigger"
	"gopkg.in/yaml.v3"
)

var ErrUnknownComponent = errors.New("prefabs: unknown component")

// componentOrder is the order components are attached in. Switches come
// before the listener so it can find them by name.
var componentOrder = []string{
	"body",
	"mover",
	"debug",
	"trigger_zone",
	"manual_switch",
	"listener",
	"complete_level",
	"checkpoint",
	"orbiter",
	"orbit_toggle",
	"destroy_outside",
	"camera",
	"camera_relative",
	"state_machine",
}

type BuilderOption func(*Builder)

func WithLogger(logger *log.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithDisplay sets where text actions of spawned state machines go.
func WithDisplay(fn func(text string)) BuilderOption {
	return func(b *Builder) {
		b.display = fn
	}
}

// WithLoader replaces Load for prefab and fsm specs.
func WithLoader(fn func(name string) ([]byte, error)) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.load = fn
		}
	}
}

// Builder turns prefab specs into entities. It remembers every switch and
// listener it created so listeners can be wired to switches on other
// entities once a whole level is spawned.
type Builder struct {
	TileSize float64

	logger  *log.Logger
	display func(string)
	load    func(string) ([]byte, error)

	specs     map[string]EntityBuildSpec
	switches  []*trigger.Switch
	listeners []*trigger.Listener
}

func NewBuilder(tileSize float64, opts ...BuilderOption) *Builder {
	if tileSize <= 0 {
		tileSize = 1
	}
	b := &Builder{
		TileSize: tileSize,
		logger:   log.Default(),
		load:     Load,
		specs:    make(map[string]EntityBuildSpec),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Spec returns the named prefab, loading it on first use.
func (b *Builder) Spec(name string) (EntityBuildSpec, error) {
	clean := cleanPrefabPath(name)
	if spec, ok := b.specs[clean]; ok {
		return spec, nil
	}
	data, err := b.load(clean)
	if err != nil {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: load %s: %w", clean, err)
	}
	var spec EntityBuildSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", clean, err)
	}
	if spec.Name == "" {
		spec.Name = prefabBase(clean)
	}
	b.specs[clean] = spec
	return spec, nil
}

// Forget drops a cached prefab so the next Spawn reads it again.
func (b *Builder) Forget(name string) {
	delete(b.specs, cleanPrefabPath(name))
}

// Reset forgets the switches and listeners of the previous level.
func (b *Builder) Reset() {
	b.switches = nil
	b.listeners = nil
}

// Spawn builds the named prefab at world position (x, y).
func (b *Builder) Spawn(w *ecs.World, name string, x, y float64) (ecs.Entity, error) {
	spec, err := b.Spec(name)
	if err != nil {
		return 0, err
	}
	return b.SpawnSpec(w, spec, x, y)
}

// SpawnSpec builds spec at (x, y). A failed build leaves nothing behind.
func (b *Builder) SpawnSpec(w *ecs.World, spec EntityBuildSpec, x, y float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("prefabs: nil world")
	}
	for key := range spec.Components {
		if !slices.Contains(componentOrder, key) {
			return 0, fmt.Errorf("%w: %s in %s", ErrUnknownComponent, key, spec.Name)
		}
	}

	e := ecs.CreateEntity(w)
	created := len(b.switches)
	listeners := len(b.listeners)
	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		b.switches = b.switches[:created]
		b.listeners = b.listeners[:listeners]
		return 0, fmt.Errorf("prefabs: build %s: %w", spec.Name, err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.PrefabComponent.Kind(), &component.Prefab{Name: spec.Name}); err != nil {
		return fail(err)
	}
	if len(spec.Tags) > 0 {
		if err := ecs.Add(w, e, component.TagsComponent.Kind(), &component.Tags{Names: slices.Clone(spec.Tags)}); err != nil {
			return fail(err)
		}
		if slices.Contains(spec.Tags, "player") {
			if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
				return fail(err)
			}
		}
	}

	for _, key := range componentOrder {
		raw, ok := spec.Components[key]
		if !ok {
			continue
		}
		if err := b.attach(w, e, spec.Name, key, raw, x, y); err != nil {
			return fail(fmt.Errorf("%s: %w", key, err))
		}
	}
	return e, nil
}

// BuildLevel spawns every placement of plan, one tile per TileSize world
// units, and then wires listeners across entities. Prefabs that fail to
// build are logged and skipped; their errors are joined into the result.
func (b *Builder) BuildLevel(w *ecs.World, plan *levels.Plan) ([]ecs.Entity, error) {
	if plan == nil {
		return nil, fmt.Errorf("prefabs: nil plan")
	}
	var (
		out  []ecs.Entity
		errs []error
	)
	for _, p := range plan.Placements {
		e, err := b.Spawn(w, p.Prefab, float64(p.X)*b.TileSize, float64(p.Y)*b.TileSize)
		if err != nil {
			b.logger.Printf("prefabs: %s at (%d, %d): %v", p.Prefab, p.X, p.Y, err)
			errs = append(errs, err)
			continue
		}
		out = append(out, e)
	}
	b.ResolveListeners()
	return out, errors.Join(errs...)
}

// ResolveListeners fills the empty switch slots of every listener built so
// far from the switches built so far, matching by name.
func (b *Builder) ResolveListeners() {
	for _, l := range b.listeners {
		l.Validate(b.switches...)
	}
}

// Switch returns the first switch built with name.
func (b *Builder) Switch(name string) (*trigger.Switch, bool) {
	for _, sw := range b.switches {
		if sw.Name == name {
			return sw, true
		}
	}
	return nil, false
}

func (b *Builder) attach(w *ecs.World, e ecs.Entity, prefab, key string, raw any, x, y float64) error {
	switch key {
	case "body":
		s, err := DecodeComponentSpec[BodyComponentSpec](raw)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{W: s.Width, H: s.Height})

	case "mover":
		if err := ecs.Add(w, e, component.PlayerInputComponent.Kind(), &component.PlayerInput{}); err != nil {
			return err
		}
		return ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{StartX: x, StartY: y})

	case "debug":
		s, err := DecodeComponentSpec[DebugComponentSpec](raw)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.DebugShapeComponent.Kind(), &component.DebugShape{Color: s.Color.NRGBA})

	case "trigger_zone":
		s, err := DecodeComponentSpec[TriggerZoneComponentSpec](raw)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.TriggerZoneComponent.Kind(), &component.TriggerZone{
			Switch: b.newSwitch(s.Switch, prefab),
			W:      s.Width,
			H:      s.Height,
			Tags:   slices.Clone(s.Tags),
		})

	case "manual_switch":
		s, err := DecodeComponentSpec[ManualSwitchComponentSpec](raw)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.ManualSwitchComponent.Kind(), &component.ManualSwitch{
			Switch: b.newSwitch(s.Switch, prefab),
			On:     s.On,
		})

	case "listener":
		s, err := DecodeComponentSpec[ListenerComponentSpec](raw)
		if err != nil {
			return err
		}
		mode, err := trigger.ParseListenMode(s.Mode)
		if err != nil {
			return err
		}
		name := s.Name
		if name == "" {
			name = prefab
		}
		l := trigger.NewListener(name, trigger.Config{
			Switches:             make([]*trigger.Switch, len(s.Switches)),
			Names:                slices.Clone(s.Switches),
			Mode:                 mode,
			ListenToDeactivation: s.ListenToDeactivation,
			FlipActivation:       s.FlipActivation,
		}, nil)
		b.listeners = append(b.listeners, l)
		return ecs.Add(w, e, component.TriggerListenerComponent.Kind(), &component.TriggerListener{Listener: l, Disabled: s.Disabled})

	case "complete_level":
		return ecs.Add(w, e, component.CompleteLevelOnTriggerComponent.Kind(), &component.CompleteLevelOnTrigger{})

	case "checkpoint":
		s, err := DecodeComponentSpec[CheckpointComponentSpec](raw)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{Index: s.Index, Alert: s.Alert})

	case "orbiter":
		s, err := DecodeComponentSpec[OrbiterComponentSpec](raw)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.OrbiterComponent.Kind(), &component.Orbiter{
			Group:   s.Group,
			CenterX: x,
			CenterY: y,
			Radius:  s.Radius * b.TileSize,
			Speed:   s.Speed,
			Angle:   s.Angle,
			Enabled: s.Enabled,
		})

	case "orbit_toggle":
		s, err := DecodeComponentSpec[OrbitToggleComponentSpec](raw)
		if err != nil {
			return err
		}
		on, err := component.ParseTriggerMode(s.OnMode)
		if err != nil {
			return err
		}
		off, err := component.ParseTriggerMode(s.OffMode)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.OrbitToggleComponent.Kind(), &component.OrbitToggle{Group: s.Group, OnMode: on, OffMode: off, Reverse: s.Reverse})

	case "destroy_outside":
		s, err := DecodeComponentSpec[DestroyOutsideComponentSpec](raw)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.DestroyOutsideComponent.Kind(), &component.DestroyOutside{Tags: slices.Clone(s.Tags), Delay: s.Delay, Timer: s.Delay})

	case "camera":
		s, err := DecodeComponentSpec[CameraComponentSpec](raw)
		if err != nil {
			return err
		}
		if s.Zoom <= 0 {
			s.Zoom = 1
		}
		if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
			return err
		}
		return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{X: x, Y: y, Zoom: s.Zoom})

	case "camera_relative":
		s, err := DecodeComponentSpec[CameraRelativeComponentSpec](raw)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.CameraRelativeComponent.Kind(), &component.CameraRelative{
			OffsetX: x + s.OffsetX,
			OffsetY: y + s.OffsetY,
			RatioX:  s.RatioX,
			RatioY:  s.RatioY,
		})

	case "state_machine":
		s, err := DecodeComponentSpec[StateMachineComponentSpec](raw)
		if err != nil {
			return err
		}
		m, err := b.compileFSM(s.FSM)
		if err != nil {
			return err
		}
		return ecs.Add(w, e, component.StateMachineComponent.Kind(), &component.StateMachine{Machine: m, Paused: s.Paused})
	}
	return fmt.Errorf("%w: %s", ErrUnknownComponent, key)
}

func (b *Builder) newSwitch(name, fallback string) *trigger.Switch {
	if name == "" {
		name = fallback
	}
	sw := trigger.NewSwitch(name)
	b.switches = append(b.switches, sw)
	return sw
}

func (b *Builder) compileFSM(name string) (*fsm.Machine, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: state machine without fsm file", fsm.ErrInvalidSpec)
	}
	data, err := b.load(cleanPrefabPath(name))
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := fsm.ParseSpec(data)
	if err != nil {
		return nil, err
	}
	return fsm.Compile(spec, fsm.CompileOptions{
		LoadScript: LoadScript,
		Display:    b.display,
		Logger:     b.logger,
	})
}
