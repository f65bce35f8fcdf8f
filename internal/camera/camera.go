package camera

import (
	"levelrenderer/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// FreeCamera is a fly camera stored as its world matrix. Forward is -Z.
type FreeCamera struct {
	World           mgl32.Mat4
	FOVDegrees      float32
	MoveSpeed       float32 // Units per second
	LookSensitivity float32
	StickTurnSpeed  float32 // Radians per second at full stick
}

func New(world mgl32.Mat4) *FreeCamera {
	return &FreeCamera{
		World:           world,
		FOVDegrees:      65,
		MoveSpeed:       4,
		LookSensitivity: 0.05,
		StickTurnSpeed:  3.14,
	}
}

// Reset places the camera, typically at a level's CAMERA transform.
func (c *FreeCamera) Reset(world mgl32.Mat4) {
	c.World = world
}

// Update applies one frame of input. width and height are the viewport size
// in pixels and scale the mouse look.
func (c *FreeCamera) Update(f input.Frame, dt float32, width, height int) {
	step := c.MoveSpeed * dt

	// Up/down is along world Y whatever the orientation
	totalY := f.Ascend - f.Descend + f.RightTrigger - f.LeftTrigger
	c.World = mgl32.Translate3D(0, totalY*step, 0).Mul4(c.World)

	// Walk and strafe along the camera's own axes
	totalZ := f.Forward - f.Backward + f.LeftStickY
	totalX := f.StrafeRight - f.StrafeLeft + f.LeftStickX
	c.World = c.World.Mul4(mgl32.Translate3D(totalX*step, 0, -totalZ*step))

	// Mouse and right stick look
	w := float32(max(width, 1))
	h := float32(max(height, 1))
	pitch := c.FOVDegrees*f.MouseDY/h - f.RightStickY*c.StickTurnSpeed*dt
	yaw := c.FOVDegrees*(w/h)*f.MouseDX/w + f.RightStickX*c.StickTurnSpeed*dt
	roll := f.RollLeft - f.RollRight

	// Positive pitch looks down and positive yaw turns right.
	s := c.LookSensitivity
	c.World = c.World.
		Mul4(mgl32.HomogRotate3DX(-pitch * s)).
		Mul4(mgl32.HomogRotate3DY(-yaw * s)).
		Mul4(mgl32.HomogRotate3DZ(roll * s))
}

// Position is the camera's world-space position.
func (c *FreeCamera) Position() mgl32.Vec3 {
	return c.World.Col(3).Vec3()
}

// Forward is the direction the camera looks in.
func (c *FreeCamera) Forward() mgl32.Vec3 {
	return c.World.Col(2).Vec3().Mul(-1)
}

// View is the inverse of the camera's world matrix.
func (c *FreeCamera) View() mgl32.Mat4 {
	return c.World.Inv()
}
