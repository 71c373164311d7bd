package fsm

// WaitAction reports event after seconds have elapsed in its state.
type WaitAction struct {
	owner    Owner
	seconds  float64
	left     float64
	event    string
	finished bool
}

func NewWaitAction(owner Owner, seconds float64, event string) *WaitAction {
	return &WaitAction{owner: owner, seconds: seconds, left: seconds, event: event}
}

func (a *WaitAction) OnEnter() {
	a.left = a.seconds
	a.finished = false
	if a.left <= 0 {
		a.finish()
	}
}

func (a *WaitAction) OnUpdate(dt float64) {
	if a.finished {
		return
	}
	a.left -= dt
	if a.left <= 0 {
		a.finish()
	}
}

func (a *WaitAction) OnExit() {}

func (a *WaitAction) finish() {
	a.finished = true
	if a.event != "" && a.owner != nil {
		a.owner.SendEvent(a.event)
	}
}

// EmitAction reports event as soon as its state is entered.
type EmitAction struct {
	owner Owner
	event string
}

func NewEmitAction(owner Owner, event string) *EmitAction {
	return &EmitAction{owner: owner, event: event}
}

func (a *EmitAction) OnEnter() {
	if a.event != "" && a.owner != nil {
		a.owner.SendEvent(a.event)
	}
}

func (a *EmitAction) OnUpdate(float64) {}

func (a *EmitAction) OnExit() {}
