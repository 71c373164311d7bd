package component

import "slices"

// Tags lists the gameplay tags of an entity, such as "player" or "crate".
// Trigger zones match bodies by tag.
type Tags struct {
	Names []string
}

func (t *Tags) Has(name string) bool {
	return t != nil && slices.Contains(t.Names, name)
}

// HasAny reports whether any of names is present. An empty names list
// matches nothing.
func (t *Tags) HasAny(names []string) bool {
	for _, n := range names {
		if t.Has(n) {
			return true
		}
	}
	return false
}

var TagsComponent = NewComponent[Tags]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
