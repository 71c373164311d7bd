package trigger

// Switch is a boolean sensor with one-tick edge outputs. Whatever owns the
// raw condition (an overlap test, a script, a manual flag) calls Set exactly
// once per tick; listeners only read it.
type Switch struct {
	Name string

	activated                 bool
	activatedOnCurrentFrame   bool
	deactivatedOnCurrentFrame bool
}

func NewSwitch(name string) *Switch {
	return &Switch{Name: name}
}

// Set records this tick's raw state and derives the edge flags from the
// previous tick's state.
func (s *Switch) Set(raw bool) {
	if s == nil {
		return
	}
	prev := s.activated
	s.activated = raw
	s.activatedOnCurrentFrame = raw && !prev
	s.deactivatedOnCurrentFrame = !raw && prev
}

// Reset returns the switch to the unset state without producing an edge.
func (s *Switch) Reset() {
	if s == nil {
		return
	}
	*s = Switch{Name: s.Name}
}

func (s *Switch) IsActivated() bool {
	return s != nil && s.activated
}

func (s *Switch) ActivatedOnCurrentFrame() bool {
	return s != nil && s.activatedOnCurrentFrame
}

func (s *Switch) DeactivatedOnCurrentFrame() bool {
	return s != nil && s.deactivatedOnCurrentFrame
}
