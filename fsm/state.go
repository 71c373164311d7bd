package fsm

// State is a named group of actions. It forwards events raised by its
// actions to the machine that owns it; it holds no transitions itself.
type State struct {
	Name string

	actions []Action
	machine *Machine
	phase   Phase
}

// AddAction appends a to the state's actions. Actions run in the order
// they were added.
func (s *State) AddAction(a Action) {
	if s == nil || a == nil {
		return
	}
	s.actions = append(s.actions, a)
}

func (s *State) Actions() []Action {
	if s == nil {
		return nil
	}
	return s.actions
}

func (s *State) Phase() Phase {
	if s == nil {
		return NotStarted
	}
	return s.phase
}

// SendEvent asks the owning machine to handle event once the current
// enter or update pass is done.
func (s *State) SendEvent(event string) {
	if s == nil || s.machine == nil {
		return
	}
	s.machine.SendEvent(event)
}

func (s *State) enter() {
	s.phase = Entered
	for _, a := range s.actions {
		a.OnEnter()
	}
}

func (s *State) update(dt float64) {
	if s.phase != Entered && s.phase != Updating {
		return
	}
	s.phase = Updating
	for _, a := range s.actions {
		a.OnUpdate(dt)
	}
}

func (s *State) exit() {
	for _, a := range s.actions {
		a.OnExit()
	}
	s.phase = Exited
}
