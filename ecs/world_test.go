package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/kzzzt/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("destroying twice should return false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestRecycledSlotRejectsStaleHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("recycled handle must differ from the stale one")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("components must not survive destruction")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()
	hi := component.NewComponent[int]()
	hs := component.NewComponent[string]()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "int_on_e1",
			setup: func() error { return Add(w, e1, hi.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hi.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if Has(w, e2, hi.Kind()) {
					t.Fatalf("e2 should not have the int component")
				}
			},
			teardown: func() bool { return Remove(w, e1, hi.Kind()) },
		},
		{
			name: "string_on_both",
			setup: func() error {
				if err := Add(w, e1, hs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, hs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, hs.Kind()) || !Has(w, e2, hs.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, hs.Kind()) && !Remove(w, e1, hs.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	var zero component.ComponentKind[int]

	if err := Add(w, e, zero, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add(w, e, component.NewComponentKind[int](), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEachVariants(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, intPtr(3))
	_ = Add(w, e2, kc, intPtr(4))
	_ = Add(w, e2, kd, intPtr(5))
	_ = Add(w, e3, kb, intPtr(6))

	var one []Entity
	ForEach(w, ka, func(e Entity, _ *int) { one = append(one, e) })
	set := toSet(one)
	if _, ok := set[e1]; !ok || len(set) != 2 {
		t.Fatalf("expected e1 and e2, got %v", one)
	}

	var two, three, four []Entity
	ForEach2(w, ka, kb, func(e Entity, _, _ *int) { two = append(two, e) })
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { three = append(three, e) })
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { four = append(four, e) })
	for name, got := range map[string][]Entity{"2": two, "3": three, "4": four} {
		if len(got) != 1 || got[0] != e2 {
			t.Fatalf("ForEach%s: expected only e2, got %v", name, got)
		}
	}

	DestroyEntity(w, e2)
	four = nil
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { four = append(four, e) })
	if len(four) != 0 {
		t.Fatalf("expected empty result after destroy, got %v", four)
	}
}

func TestForEachToleratesDestroyDuringWalk(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	for i := 0; i < 4; i++ {
		_ = Add(w, CreateEntity(w), k, intPtr(i))
	}

	visited := 0
	ForEach(w, k, func(e Entity, v *int) {
		visited++
		for _, other := range Entities(w) {
			if other != e {
				DestroyEntity(w, other)
			}
		}
	})
	if visited != 1 {
		t.Fatalf("destroyed entities should be skipped, visited %d", visited)
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[string]()
	if _, ok := First(w, k); ok {
		t.Fatalf("expected no entity")
	}
	e := CreateEntity(w)
	_ = Add(w, e, k, stringPtr("camera"))
	got, ok := First(w, k)
	if !ok || got != e {
		t.Fatalf("expected %v, got %v ok=%v", e, got, ok)
	}
}

type countingSystem struct {
	calls int
	dt    float64
}

func (s *countingSystem) Update(w *World) {
	s.calls++
	s.dt = w.DeltaTime()
	w.Events().Push(Event{Type: EventAlert})
}

func TestSchedulerStepAdvancesClock(t *testing.T) {
	w := NewWorld()
	sys := &countingSystem{}
	sched := NewScheduler(sys, nil)

	sched.Step(w, 0.5)
	sched.Step(w, -1)

	if sys.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", sys.calls)
	}
	if sys.dt != 0 || w.Elapsed() != 0.5 {
		t.Fatalf("negative steps should clamp to 0, dt=%v elapsed=%v", sys.dt, w.Elapsed())
	}
	if len(sched.Systems()) != 1 {
		t.Fatalf("nil systems should be dropped")
	}
	if got := w.Events().Drain(); len(got) != 2 || w.Events().Len() != 0 {
		t.Fatalf("expected two drained events, got %v", got)
	}
}
