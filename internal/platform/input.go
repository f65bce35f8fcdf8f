package platform

import (
	"levelrenderer/internal/input"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const stickDeadzone = 0.15

var actionKeys = [input.NumActions]int32{
	input.NextLevel:          rl.KeyF1,
	input.ToggleOrthographic: rl.KeyKp1,
	input.ToggleSplitScreen:  rl.KeyKp2,
	input.ToggleWireframe:    rl.KeyKp3,
	input.ToggleHUD:          rl.KeyKp7,
	input.ToggleScene:        rl.KeyKp8,
	input.ToggleCursor:       rl.KeyF2,
}

// -1 means no gamepad binding.
var actionButtons = [input.NumActions]int32{
	input.NextLevel:          rl.GamepadButtonRightTrigger1,
	input.ToggleOrthographic: rl.GamepadButtonLeftFaceLeft,
	input.ToggleSplitScreen:  rl.GamepadButtonLeftFaceDown,
	input.ToggleWireframe:    rl.GamepadButtonLeftFaceUp,
	input.ToggleHUD:          -1,
	input.ToggleScene:        -1,
	input.ToggleCursor:       -1,
}

// Poller samples keyboard, mouse and the first gamepad.
type Poller struct {
	Gamepad int32
}

func key(k int32) float32 {
	if rl.IsKeyDown(k) {
		return 1
	}
	return 0
}

func deadzone(v float32) float32 {
	if math32.Abs(v) < stickDeadzone {
		return 0
	}
	return v
}

func (p *Poller) Poll() input.Frame {
	f := input.Frame{
		Forward:     key(rl.KeyW),
		Backward:    key(rl.KeyS),
		StrafeLeft:  key(rl.KeyA),
		StrafeRight: key(rl.KeyD),
		Ascend:      key(rl.KeySpace),
		Descend:     key(rl.KeyLeftShift),
		RollLeft:    key(rl.KeyQ),
		RollRight:   key(rl.KeyE),
	}
	md := rl.GetMouseDelta()
	f.MouseDX, f.MouseDY = md.X, md.Y
	for a, k := range actionKeys {
		f.Held[a] = rl.IsKeyDown(k)
	}

	gp := p.Gamepad
	if !rl.IsGamepadAvailable(gp) {
		return f
	}
	// raylib's stick Y axes point down; triggers rest at -1.
	f.LeftStickX = deadzone(rl.GetGamepadAxisMovement(gp, rl.GamepadAxisLeftX))
	f.LeftStickY = -deadzone(rl.GetGamepadAxisMovement(gp, rl.GamepadAxisLeftY))
	f.RightStickX = deadzone(rl.GetGamepadAxisMovement(gp, rl.GamepadAxisRightX))
	f.RightStickY = -deadzone(rl.GetGamepadAxisMovement(gp, rl.GamepadAxisRightY))
	f.LeftTrigger = trigger(rl.GetGamepadAxisMovement(gp, rl.GamepadAxisLeftTrigger))
	f.RightTrigger = trigger(rl.GetGamepadAxisMovement(gp, rl.GamepadAxisRightTrigger))
	if rl.IsGamepadButtonDown(gp, rl.GamepadButtonRightFaceLeft) {
		f.RollLeft++
	}
	if rl.IsGamepadButtonDown(gp, rl.GamepadButtonRightFaceRight) {
		f.RollRight++
	}
	for a, b := range actionButtons {
		if b >= 0 && rl.IsGamepadButtonDown(gp, b) {
			f.Held[a] = true
		}
	}
	return f
}

func trigger(v float32) float32 {
	t := (v + 1) / 2
	if t < stickDeadzone {
		return 0
	}
	return math32.Min(t, 1)
}
