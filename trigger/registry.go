package trigger

import "log"

// Registry drives every registered listener. The frame driver owns one and
// calls DriveFrame once per frame.
type Registry struct {
	listeners []*Listener
	members   map[*Listener]struct{}
	now       float64
	logger    *log.Logger
}

type Option func(*Registry)

// WithLogger routes registry diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		members: make(map[*Listener]struct{}),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds l and starts its runner. It reports whether l was newly
// added; registering twice is a no-op.
func (r *Registry) Register(l *Listener) bool {
	if r == nil || l == nil {
		return false
	}
	if _, ok := r.members[l]; ok {
		return false
	}
	r.members[l] = struct{}{}
	r.listeners = append(r.listeners, l)
	l.registry = r
	l.Start()
	return true
}

// Unregister removes l and discards its runner.
func (r *Registry) Unregister(l *Listener) bool {
	if r == nil || l == nil {
		return false
	}
	if _, ok := r.members[l]; !ok {
		return false
	}
	delete(r.members, l)
	for i, existing := range r.listeners {
		if existing == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			break
		}
	}
	if l.registry == r {
		l.registry = nil
	}
	l.Stop()
	return true
}

func (r *Registry) Registered(l *Listener) bool {
	if r == nil || l == nil {
		return false
	}
	_, ok := r.members[l]
	return ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.listeners)
}

// Now is the registry clock in seconds: the sum of every dt driven so far.
func (r *Registry) Now() float64 {
	if r == nil {
		return 0
	}
	return r.now
}

// DriveFrame advances the clock by dt seconds and lets every registered
// listener's runner poll. Only then does it run each listener's managed
// update in registration order, so every hook sees this frame's results.
// Listeners unregistered by an earlier hook in the same frame are skipped.
func (r *Registry) DriveFrame(dt float64) {
	if r == nil {
		return
	}
	if dt > 0 {
		r.now += dt
	}

	snapshot := append([]*Listener(nil), r.listeners...)
	for _, l := range snapshot {
		if rn, ok := l.Runner(); ok {
			rn.Tick(r.now)
		}
	}
	for _, l := range snapshot {
		if !r.Registered(l) {
			continue
		}
		hadRunner := l.runner != nil
		l.ManagedUpdate()
		if hadRunner && l.Hook == nil && l.runner == nil {
			r.logger.Printf("trigger: listener %q has no update hook, runner stopped", l.Name)
		}
	}
}
