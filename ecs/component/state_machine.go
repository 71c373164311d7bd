package component

import "github.com/milk9111/kzzzt/fsm"

type StateMachine struct {
	Machine *fsm.Machine
	// Paused machines are not ticked.
	Paused  bool
}

var StateMachineComponent = NewComponent[StateMachine]()
