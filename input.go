package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/kzzzt/ecs/component"
	"github.com/milk9111/kzzzt/menu"
	"github.com/milk9111/kzzzt/save"
)

// keyBindings maps menu actions ("up", "select", ...) to keys.
type keyBindings map[string]ebiten.Key

// bindKeys parses the saved bindings. Unknown key names fall back to the
// default binding for that action.
func bindKeys(keys map[string]string) keyBindings {
	defaults := save.DefaultSettings().Keys
	out := make(keyBindings, len(defaults))
	for action, fallback := range defaults {
		name := keys[action]
		if name == "" {
			name = fallback
		}
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			log.Printf("input: bad key %q for %s: %v", name, action, err)
			if err := k.UnmarshalText([]byte(fallback)); err != nil {
				continue
			}
		}
		out[action] = k
	}
	return out
}

func (b keyBindings) pressed(action string) bool {
	k, ok := b[action]
	return ok && inpututil.IsKeyJustPressed(k)
}

func (b keyBindings) held(action string) bool {
	k, ok := b[action]
	return ok && ebiten.IsKeyPressed(k)
}

func (b keyBindings) menuInput() menu.Input {
	return menu.Input{
		Up:        b.pressed("up"),
		Down:      b.pressed("down"),
		Left:      b.pressed("left"),
		Right:     b.pressed("right"),
		Select:    b.pressed("select"),
		Cancel:    b.pressed("cancel"),
		Pause:     b.pressed("pause"),
		Erase:     inpututil.IsKeyJustPressed(ebiten.KeyDelete),
		LeftHeld:  b.held("left"),
		RightHeld: b.held("right"),
	}
}

// playerInput fills in from the bound arrows plus A/D and Space.
func (b keyBindings) playerInput(in *component.PlayerInput) {
	var moveX float64
	if b.held("left") || ebiten.IsKeyPressed(ebiten.KeyA) {
		moveX -= 1
	}
	if b.held("right") || ebiten.IsKeyPressed(ebiten.KeyD) {
		moveX += 1
	}
	in.MoveX = moveX
	if b.pressed("up") || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.JumpPressed = true
	}
}
