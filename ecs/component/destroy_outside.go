package component

// DefaultOutsideDelay is three frames at 60 ticks per second.
const DefaultOutsideDelay = 3.0 / 60.0

// DestroyOutside removes the entity once it has spent Delay seconds outside
// every trigger zone tagged with one of Tags.
type DestroyOutside struct {
	Tags  []string
	Delay float64
	Timer float64
}

var DestroyOutsideComponent = NewComponent[DestroyOutside]()
