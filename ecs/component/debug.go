package component

import "image/color"

// DebugShape is drawn as a filled box the size of the entity's body.
type DebugShape struct {
	Color color.NRGBA
}

var DebugShapeComponent = NewComponent[DebugShape]()

// Prefab records which prefab an entity was built from.
type Prefab struct {
	Name string
}

var PrefabComponent = NewComponent[Prefab]()
