package fsm

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("fsm: invalid spec")

// Spec is the YAML form of a machine.
//
//	name: intro_sign
//	initial: idle
//	states:
//	  idle:
//	    - wait: {seconds: 0.5, event: show}
//	  showing:
//	    - text: {text: "Hello", duration: 2, event: done}
//	transitions:
//	  idle: {show: showing}
//	  showing: {done: idle}
type Spec struct {
	Name        string                       `yaml:"name"`
	Initial     string                       `yaml:"initial"`
	States      map[string][]ActionSpec      `yaml:"states"`
	Transitions map[string]map[string]string `yaml:"transitions"`
}

// ActionSpec describes one action. Exactly one field must be set.
type ActionSpec struct {
	Text   *TextSpec `yaml:"text,omitempty"`
	Wait   *WaitSpec `yaml:"wait,omitempty"`
	Emit   string    `yaml:"emit,omitempty"`
	Script string    `yaml:"script,omitempty"`
}

type TextSpec struct {
	Text     string  `yaml:"text"`
	Duration float64 `yaml:"duration"`
	Event    string  `yaml:"event"`
}

type WaitSpec struct {
	Seconds float64 `yaml:"seconds"`
	Event   string  `yaml:"event"`
}

// CompileOptions supplies what the spec refers to by name.
type CompileOptions struct {
	// LoadScript returns the source of a script action. Required only when
	// the spec uses scripts.
	LoadScript func(name string) ([]byte, error)
	// Display receives the text of every TextAction.
	Display    func(text string)
	Logger     *log.Logger
	Options    []Option
}

func ParseSpec(data []byte) (Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("fsm: unmarshal spec: %w", err)
	}
	return spec, nil
}

// Compile builds a machine from spec. States are added in name order so the
// result does not depend on map iteration; Initial picks the start state.
func Compile(spec Spec, opts CompileOptions) (*Machine, error) {
	if len(spec.States) == 0 {
		return nil, fmt.Errorf("%w: %s has no states", ErrInvalidSpec, spec.Name)
	}

	machineOpts := append([]Option(nil), opts.Options...)
	if opts.Logger != nil {
		machineOpts = append(machineOpts, WithLogger(opts.Logger))
	}
	m := NewMachine(spec.Name, machineOpts...)

	names := make([]string, 0, len(spec.States))
	for name := range spec.States {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		state := m.AddState(name)
		for i, as := range spec.States[name] {
			action, err := compileAction(state, as, opts)
			if err != nil {
				return nil, fmt.Errorf("fsm: %s state %s action %d: %w", spec.Name, name, i, err)
			}
			state.AddAction(action)
		}
	}

	if spec.Initial != "" {
		if err := m.SetInitial(spec.Initial); err != nil {
			return nil, fmt.Errorf("fsm: %s initial: %w", spec.Name, err)
		}
	}

	for from, events := range spec.Transitions {
		for event, to := range events {
			if err := m.AddTransition(from, event, to); err != nil {
				return nil, fmt.Errorf("fsm: %s transition %s --%s-->: %w", spec.Name, from, event, err)
			}
		}
	}

	return m, nil
}

func compileAction(state *State, as ActionSpec, opts CompileOptions) (Action, error) {
	set := 0
	if as.Text != nil {
		set++
	}
	if as.Wait != nil {
		set++
	}
	if as.Emit != "" {
		set++
	}
	if as.Script != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: action must set exactly one of text, wait, emit, script", ErrInvalidSpec)
	}

	switch {
	case as.Text != nil:
		a := NewTextAction(state)
		a.Init(as.Text.Text, as.Text.Duration, as.Text.Event)
		a.Display = opts.Display
		return a, nil
	case as.Wait != nil:
		return NewWaitAction(state, as.Wait.Seconds, as.Wait.Event), nil
	case as.Emit != "":
		return NewEmitAction(state, as.Emit), nil
	default:
		if opts.LoadScript == nil {
			return nil, fmt.Errorf("%w: script %s needs a script loader", ErrInvalidSpec, as.Script)
		}
		src, err := opts.LoadScript(as.Script)
		if err != nil {
			return nil, fmt.Errorf("load script %s: %w", as.Script, err)
		}
		a, err := NewScriptAction(state, as.Script, src, opts.Logger)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}
