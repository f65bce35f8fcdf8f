// Package input describes one frame of sampled user input and the debounced
// toggles driven by it. Sampling itself is done by a Source; the raylib one
// lives in the platform package.
package input

// Action is a debug command bound to a key and, where available, a gamepad
// button.
type Action int

const (
	NextLevel          Action = iota // F1, right bumper
	ToggleOrthographic               // numpad 1, d-pad left
	ToggleSplitScreen                // numpad 2, d-pad down
	ToggleWireframe                  // numpad 3, d-pad up
	ToggleHUD                        // numpad 7
	ToggleScene                      // numpad 8
	ToggleCursor                     // F2
	NumActions
)

var actionNames = [NumActions]string{
	NextLevel:          "next level",
	ToggleOrthographic: "orthographic",
	ToggleSplitScreen:  "split screen",
	ToggleWireframe:    "wireframe",
	ToggleHUD:          "hud",
	ToggleScene:        "scene",
	ToggleCursor:       "cursor",
}

func (a Action) String() string {
	if a < 0 || a >= NumActions {
		return "unknown"
	}
	return actionNames[a]
}

// Frame is the input sampled for one frame. Keys read 0 or 1. Stick Y axes
// are positive forward/up, triggers range 0..1 and mouse deltas are pixels.
type Frame struct {
	Forward, Backward       float32 // W, S
	StrafeLeft, StrafeRight float32 // A, D
	Ascend, Descend         float32 // space, left shift
	RollLeft, RollRight     float32 // Q and gamepad west, E and gamepad east

	LeftStickX, LeftStickY    float32
	RightStickX, RightStickY  float32
	LeftTrigger, RightTrigger float32

	MouseDX, MouseDY float32

	Held [NumActions]bool
}

// Source samples input once per frame.
type Source interface {
	Poll() Frame
}
