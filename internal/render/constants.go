package render

import (
	"levelrenderer/internal/level"

	"github.com/go-gl/mathgl/mgl32"
)

// SceneConstants is uploaded once per frame.
type SceneConstants struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	LightDirection mgl32.Vec4
	LightColor     mgl32.Vec4
	CameraPosition mgl32.Vec4
	SunAmbient     mgl32.Vec4
}

// MeshConstants is uploaded before every draw.
type MeshConstants struct {
	World    mgl32.Mat4
	Material level.Attributes
}

// SpriteConstants places a unit quad: PosScale is (x, y, scale x, scale y)
// in normalized device coordinates, RotationDepth is (radians, depth).
type SpriteConstants struct {
	PosScale      mgl32.Vec4
	RotationDepth mgl32.Vec2
}

// Modes is the debug pipeline state.
type Modes struct {
	Wireframe    bool
	Orthographic bool
	SplitScreen  bool
	Show3D       bool
	Show2D       bool
}
