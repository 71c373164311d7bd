package trigger

// UpdateHook is the per-frame behavior of a listener's owner. It runs after
// the listener's runner has polled for the frame.
type UpdateHook func(l *Listener)

// Listener owns at most one Runner at a time. The runner is started when
// the listener is registered and discarded when it is unregistered, so no
// aggregation state survives a disable/enable cycle. While registered, the
// accessors and Pause start a runner again if an earlier managed update
// stopped it.
type Listener struct {
	Name   string
	Config Config
	// Hook is optional. A listener without one stops its runner on the
	// first managed update, since nobody will read it.
	Hook   UpdateHook

	runner   *Runner
	registry *Registry
}

func NewListener(name string, cfg Config, hook UpdateHook) *Listener {
	return &Listener{Name: name, Config: cfg, Hook: hook}
}

// Start returns the live runner, creating a fresh one if there is none.
func (l *Listener) Start() *Runner {
	if l == nil {
		return nil
	}
	if l.runner == nil {
		l.runner = newRunner(l)
	}
	return l.runner
}

// Stop stops and discards the current runner, if any.
func (l *Listener) Stop() {
	if l == nil {
		return
	}
	l.runner.Stop()
	l.runner = nil
}

// live returns the runner, restarting it when the listener is registered but
// its runner was stopped.
func (l *Listener) live() *Runner {
	if l.runner == nil && l.registry.Registered(l) {
		return l.Start()
	}
	return l.runner
}

// Runner returns the live runner without creating one.
func (l *Listener) Runner() (*Runner, bool) {
	if l == nil || l.runner == nil {
		return nil, false
	}
	return l.runner, true
}

// Listening reports whether a runner exists and is not paused.
func (l *Listener) Listening() bool {
	return l != nil && l.runner != nil && !l.runner.Paused()
}

// Enable registers the listener with reg, which starts its runner.
func (l *Listener) Enable(reg *Registry) {
	reg.Register(l)
}

// Disable unregisters the listener from reg, which discards its runner.
func (l *Listener) Disable(reg *Registry) {
	reg.Unregister(l)
}

// ManagedUpdate is called by the registry once per frame.
func (l *Listener) ManagedUpdate() {
	if l == nil {
		return
	}
	if l.Hook == nil {
		if l.Listening() {
			l.Stop()
		}
		return
	}
	l.Hook(l)
}

// Validate repairs the listener's config, resolving empty slots by name
// against the owner's switches.
func (l *Listener) Validate(available ...*Switch) {
	if l == nil {
		return
	}
	l.Config.Validate(available...)
}

func (l *Listener) IsActivated() bool {
	if l == nil {
		return false
	}
	return l.live().IsActivated()
}

func (l *Listener) ActivatedOnCurrentFrame() bool {
	if l == nil {
		return false
	}
	return l.live().ActivatedOnCurrentFrame()
}

func (l *Listener) DeactivatedOnCurrentFrame() bool {
	if l == nil {
		return false
	}
	return l.live().DeactivatedOnCurrentFrame()
}

// Pause suspends polling for seconds after the current poll. It fails with
// ErrNotRunning when the listener has no runner and is not registered.
func (l *Listener) Pause(seconds float64) error {
	if seconds <= 0 {
		return ErrInvalidPause
	}
	if l == nil {
		return ErrNotRunning
	}
	rn := l.live()
	if rn == nil {
		return ErrNotRunning
	}
	return rn.Pause(seconds)
}
