package render

import (
	"levelrenderer/internal/hud"
	"levelrenderer/internal/level"
)

type Viewport struct {
	X, Y, Width, Height int
}

// DrawCall draws IndexCount indices of level mesh Mesh, starting at
// StartIndex in the level index array, offset by BaseVertex. Devices that
// upload one GPU mesh per level mesh, like the raylib one, key on Mesh alone;
// the range then always matches the whole uploaded mesh.
type DrawCall struct {
	Mesh       int
	IndexCount int
	StartIndex int
	BaseVertex int
}

// SpriteDraw is one textured quad of the 2D layer. A zero Source uses the
// whole texture and an empty Scissor disables clipping.
type SpriteDraw struct {
	Texture   int
	Source    hud.Rect
	Constants SpriteConstants
	Scissor   hud.Rect // window pixels
}

// Device is the graphics API the renderer drives.
type Device interface {
	Size() (width, height int)

	// UploadLevel replaces the device's geometry with lvl's. On error the
	// previous geometry is kept.
	UploadLevel(lvl *level.Level) error
	ReleaseLevel()

	SetViewport(vp Viewport)
	SetWireframe(on bool)
	BeginScene(sc *SceneConstants)
	DrawIndexed(call DrawCall, mc *MeshConstants)
	EndScene()

	Begin2D()
	DrawSprite(s *SpriteDraw)
	End2D()
}
