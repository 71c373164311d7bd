package fsm

// Action is a unit of behavior owned by a State. The owning state calls
// OnEnter once when it is entered, OnUpdate every tick while it is current,
// and OnExit when it is left.
type Action interface {
	OnEnter()
	OnUpdate(dt float64)
	OnExit()
}

// Owner is what an action reports completion events to. *State implements it.
type Owner interface {
	SendEvent(event string)
}

// Phase is the lifecycle position of a state.
type Phase int

const (
	NotStarted Phase = iota
	Entered
	Updating
	Exited
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Entered:
		return "entered"
	case Updating:
		return "updating"
	case Exited:
		return "exited"
	}
	return "unknown"
}
