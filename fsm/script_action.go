package fsm

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// scriptDispatch is appended to every action script. Scripts define
// onEnter(engine, state), update(engine, state) and onExit(engine, state).
const scriptDispatch = `
if __phase == "enter" {
	onEnter(__engine, __state)
} else if __phase == "update" {
	update(__engine, __state)
} else if __phase == "exit" {
	onExit(__engine, __state)
}
`

// ScriptAction runs a tengo script's lifecycle functions as an action. The
// script gets an engine map with emit(event), log(msg...), dt and elapsed,
// and a state map that persists across phases.
type ScriptAction struct {
	owner    Owner
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	elapsed  float64
	logger   *log.Logger
}

// NewScriptAction compiles src. path is only used in error messages.
func NewScriptAction(owner Owner, path string, src []byte, logger *log.Logger) (*ScriptAction, error) {
	if logger == nil {
		logger = log.Default()
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("fsm: compile script %s: %w", path, err)
	}

	return &ScriptAction{
		owner:    owner,
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		logger:   logger,
	}, nil
}

func (a *ScriptAction) OnEnter() {
	a.elapsed = 0
	a.run("enter", 0)
}

func (a *ScriptAction) OnUpdate(dt float64) {
	a.elapsed += dt
	a.run("update", dt)
}

func (a *ScriptAction) OnExit() {
	a.run("exit", 0)
}

// State exposes the script's persistent state map.
func (a *ScriptAction) State() map[string]any {
	if a == nil || a.state == nil {
		return nil
	}
	out := make(map[string]any, len(a.state.Value))
	for k, v := range a.state.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

func (a *ScriptAction) run(phase string, dt float64) {
	if a == nil || a.compiled == nil {
		return
	}
	if err := a.runPhase(phase, dt); err != nil {
		a.logger.Printf("fsm: script %s %s error: %v", a.path, phase, err)
	}
}

func (a *ScriptAction) runPhase(phase string, dt float64) error {
	if err := a.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := a.compiled.Set("__engine", a.engine(dt)); err != nil {
		return err
	}
	if err := a.compiled.Set("__state", a.state); err != nil {
		return err
	}
	return a.compiled.Run()
}

func (a *ScriptAction) engine(dt float64) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"dt":      &tengo.Float{Value: dt},
		"elapsed": &tengo.Float{Value: a.elapsed},
	}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a.owner == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		a.owner.SendEvent(name)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		a.logger.Printf("fsm: script %s: %s", a.path, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
