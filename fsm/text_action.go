package fsm

// TextAction shows a line of text for a while, then reports finishEvent to
// its owner. A non-positive duration finishes on entry. The timer rewinds on
// each finish, so an action whose state is not left reports again every
// duration seconds.
type TextAction struct {
	owner Owner

	text           string
	duration       float64
	cachedDuration float64
	finishEvent    string
	finished       bool

	// Display receives the text on every tick it is shown. Nil discards it.
	Display func(text string)
}

func NewTextAction(owner Owner) *TextAction {
	return &TextAction{owner: owner}
}

// Init sets the action's parameters. duration is also remembered as the
// value the timer resets to after each finish.
func (a *TextAction) Init(text string, duration float64, finishEvent string) {
	a.text = text
	a.duration = duration
	a.cachedDuration = duration
	a.finishEvent = finishEvent
	a.finished = false
}

func (a *TextAction) OnEnter() {
	a.finished = false
	if a.duration <= 0 {
		a.Finish()
	}
}

func (a *TextAction) OnUpdate(dt float64) {
	a.duration -= dt
	if a.duration <= 0 {
		a.Finish()
		return
	}
	if a.Display != nil {
		a.Display(a.text)
	}
}

func (a *TextAction) OnExit() {}

// Finish reports the finish event, if any, and rewinds the timer.
func (a *TextAction) Finish() {
	if a.finishEvent != "" && a.owner != nil {
		a.owner.SendEvent(a.finishEvent)
	}
	a.duration = a.cachedDuration
	a.finished = true
}

func (a *TextAction) Text() string { return a.text }

// Remaining is the time left before the action finishes.
func (a *TextAction) Remaining() float64 { return a.duration }

// Finished reports whether the action has finished at least once since the
// last entry.
func (a *TextAction) Finished() bool { return a.finished }
