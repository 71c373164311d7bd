package fsm

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrUnknownState = errors.New("fsm: unknown state")
	ErrNoStates     = errors.New("fsm: machine has no states")
)

// maxTransitionsPerPass stops a chain of states that finish on entry from
// looping forever.
const maxTransitionsPerPass = 64

// Machine owns states and the transition table. Events sent while a state
// is entering or updating are queued and resolved right after that pass.
type Machine struct {
	Name string

	states      map[string]*State
	order       []string
	transitions map[string]map[string]string
	initial     string
	current     *State
	pending     []string
	started     bool
	resolving   bool
	passDepth   int

	onEvent      func(event string)
	onTransition func(from, event, to string)
	logger       *log.Logger
}

type Option func(*Machine)

func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithEventObserver is called for every event the machine receives,
// whether or not it causes a transition.
func WithEventObserver(fn func(event string)) Option {
	return func(m *Machine) {
		m.onEvent = fn
	}
}

func WithTransitionObserver(fn func(from, event, to string)) Option {
	return func(m *Machine) {
		m.onTransition = fn
	}
}

func NewMachine(name string, opts ...Option) *Machine {
	m := &Machine{
		Name:        name,
		states:      make(map[string]*State),
		transitions: make(map[string]map[string]string),
		logger:      log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// AddState returns the state called name, creating it if needed. The first
// state added is the initial state unless SetInitial says otherwise.
func (m *Machine) AddState(name string) *State {
	if s, ok := m.states[name]; ok {
		return s
	}
	s := &State{Name: name, machine: m}
	m.states[name] = s
	m.order = append(m.order, name)
	if m.initial == "" {
		m.initial = name
	}
	return s
}

func (m *Machine) State(name string) (*State, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.states[name]
	return s, ok
}

func (m *Machine) States() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.order...)
}

func (m *Machine) SetInitial(name string) error {
	if _, ok := m.states[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	m.initial = name
	return nil
}

// AddTransition makes event move the machine from one state to another.
func (m *Machine) AddTransition(from, event, to string) error {
	if _, ok := m.states[from]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, from)
	}
	if _, ok := m.states[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, to)
	}
	if m.transitions[from] == nil {
		m.transitions[from] = make(map[string]string)
	}
	m.transitions[from][event] = to
	return nil
}

// Start enters the initial state. Calling it again is a no-op.
func (m *Machine) Start() error {
	if m == nil {
		return ErrNoStates
	}
	if m.started {
		return nil
	}
	s, ok := m.states[m.initial]
	if !ok {
		return ErrNoStates
	}
	m.started = true
	m.current = s
	m.runPass(s.enter)
	m.resolve()
	return nil
}

// Update ticks the current state's actions by dt seconds, starting the
// machine first if needed.
func (m *Machine) Update(dt float64) {
	if m == nil {
		return
	}
	if !m.started {
		if err := m.Start(); err != nil {
			m.logger.Printf("fsm: %s: %v", m.Name, err)
			return
		}
	}
	if m.current == nil {
		return
	}
	cur := m.current
	m.runPass(func() { cur.update(dt) })
	m.resolve()
}

// Stop exits the current state. The machine can be started again.
func (m *Machine) Stop() {
	if m == nil || !m.started {
		return
	}
	if m.current != nil {
		m.runPass(m.current.exit)
	}
	m.current = nil
	m.pending = nil
	m.started = false
}

// SendEvent queues event. Outside of an enter, update or exit pass it is
// handled immediately.
func (m *Machine) SendEvent(event string) {
	if m == nil || event == "" {
		return
	}
	m.pending = append(m.pending, event)
	if m.started && m.passDepth == 0 {
		m.resolve()
	}
}

func (m *Machine) Current() string {
	if m == nil || m.current == nil {
		return ""
	}
	return m.current.Name
}

func (m *Machine) Started() bool {
	return m != nil && m.started
}

func (m *Machine) runPass(fn func()) {
	m.passDepth++
	defer func() { m.passDepth-- }()
	fn()
}

func (m *Machine) resolve() {
	if m.resolving {
		return
	}
	m.resolving = true
	defer func() { m.resolving = false }()

	steps := 0
	for len(m.pending) > 0 && m.current != nil {
		event := m.pending[0]
		m.pending = m.pending[1:]
		if m.onEvent != nil {
			m.onEvent(event)
		}

		next, ok := m.transitions[m.current.Name][event]
		if !ok || next == m.current.Name {
			continue
		}

		steps++
		if steps > maxTransitionsPerPass {
			m.logger.Printf("fsm: %s: more than %d transitions in one pass, dropping %d queued events", m.Name, maxTransitionsPerPass, len(m.pending)+1)
			m.pending = nil
			return
		}

		from := m.current
		m.runPass(from.exit)
		m.current = m.states[next]
		if m.onTransition != nil {
			m.onTransition(from.Name, event, next)
		}
		m.runPass(m.current.enter)
	}
}
