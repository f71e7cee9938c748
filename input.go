package tilebatch

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the per-frame control state consumed by the game loop.
type Input struct {
	Player   Direction // held player movement directions
	Camera   Direction // held camera pan directions
	Recenter bool      // scroll the camera back to the player
	Debug    bool      // toggle debug stats
	// Screenshot is a label for a capture of this frame; empty for none.
	Screenshot string
	Quit       bool
}

// InputSource produces one Input per frame.
type InputSource interface {
	Poll() Input
}

// KeyBinding maps a key to a direction.
type KeyBinding struct {
	Key ebiten.Key
	Dir Direction
}

// KeyboardInput reads Ebitengine keyboard state.
type KeyboardInput struct {
	PlayerKeys  []KeyBinding
	CameraKeys  []KeyBinding
	RecenterKey ebiten.Key
	DebugKey    ebiten.Key
	ShotKey     ebiten.Key
	QuitKey     ebiten.Key

	// pressed and justPressed are swapped out in tests.
	pressed     func(ebiten.Key) bool
	justPressed func(ebiten.Key) bool
}

// NewKeyboardInput binds WASD to the player, the arrow keys to the camera,
// C to recenter, F3 to debug stats, F12 to screenshot and Escape to quit.
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		PlayerKeys: []KeyBinding{
			{Key: ebiten.KeyW, Dir: DirUp},
			{Key: ebiten.KeyS, Dir: DirDown},
			{Key: ebiten.KeyA, Dir: DirLeft},
			{Key: ebiten.KeyD, Dir: DirRight},
		},
		CameraKeys: []KeyBinding{
			{Key: ebiten.KeyArrowUp, Dir: DirUp},
			{Key: ebiten.KeyArrowDown, Dir: DirDown},
			{Key: ebiten.KeyArrowLeft, Dir: DirLeft},
			{Key: ebiten.KeyArrowRight, Dir: DirRight},
		},
		RecenterKey: ebiten.KeyC,
		DebugKey:    ebiten.KeyF3,
		ShotKey:     ebiten.KeyF12,
		QuitKey:     ebiten.KeyEscape,
		pressed:     ebiten.IsKeyPressed,
		justPressed: inpututil.IsKeyJustPressed,
	}
}

// Poll implements InputSource.
func (k *KeyboardInput) Poll() Input {
	in := Input{
		Player:   heldDirections(k.PlayerKeys, k.pressed),
		Camera:   heldDirections(k.CameraKeys, k.pressed),
		Recenter: k.justPressed(k.RecenterKey),
		Debug:    k.justPressed(k.DebugKey),
		Quit:     k.justPressed(k.QuitKey),
	}
	if k.justPressed(k.ShotKey) {
		in.Screenshot = "key"
	}
	return in
}

func heldDirections(binds []KeyBinding, pressed func(ebiten.Key) bool) Direction {
	var d Direction
	for _, b := range binds {
		if pressed(b.Key) {
			d |= b.Dir
		}
	}
	return d
}
