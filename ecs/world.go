package ecs

import "github.com/milk9111/kzzzt/ecs/component"

// World owns entities, their components, the frame clock and the event
// queue systems publish to.
type World struct {
	generations []generation
	alive       []bool
	free        []entityID
	live        int

	stores map[component.ComponentID]*SparseSet
	events EventQueue

	dt      float64
	elapsed float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// Advance moves the world clock forward by dt seconds. Systems read the
// frame's step through DeltaTime.
func (w *World) Advance(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.dt = dt
	w.elapsed += dt
}

func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

func (w *World) Elapsed() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) entityFor(id entityID) Entity {
	return makeEntity(id, w.generations[id-1])
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s := w.stores[id]
	if s == nil && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity, reusing a freed slot when possible.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	var id entityID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.generations = append(w.generations, 0)
		w.alive = append(w.alive, false)
		id = entityID(len(w.generations))
	}
	w.alive[id-1] = true
	w.live++
	return w.entityFor(id)
}

// DestroyEntity removes every component of e and retires its handle.
func DestroyEntity(w *World, e Entity) bool {
	if !IsAlive(w, e) {
		return false
	}
	id := e.id()
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.alive[id-1] = false
	w.generations[id-1]++
	w.free = append(w.free, id)
	w.live--
	return true
}

func IsAlive(w *World, e Entity) bool {
	if w == nil || !e.Valid() {
		return false
	}
	id := e.id()
	if int(id) > len(w.generations) {
		return false
	}
	return w.alive[id-1] && w.generations[id-1] == e.generation()
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.live)
	for i, ok := range w.alive {
		if ok {
			out = append(out, w.entityFor(entityID(i+1)))
		}
	}
	return out
}
