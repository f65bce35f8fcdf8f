package render

import (
	"fmt"

	"levelrenderer/internal/hud"
	"levelrenderer/internal/level"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Options struct {
	FOVDegrees     float32
	Near, Far      float32
	OrthoExtent    float32 // half height of the orthographic view
	LightDirection mgl32.Vec3
	LightColor     mgl32.Vec4
	Ambient        mgl32.Vec4
	FrustumCulling bool
	FontTexture    int
}

func DefaultOptions() Options {
	return Options{
		FOVDegrees:     65,
		Near:           0.1,
		Far:            100,
		OrthoExtent:    5,
		LightDirection: mgl32.Vec3{-1, -1, -2},
		LightColor:     mgl32.Vec4{229.0 / 255, 229.0 / 255, 1, 1},
		Ambient:        mgl32.Vec4{63.75 / 255, 63.75 / 255, 89.25 / 255, 0},
		FrustumCulling: true,
		FontTexture:    6,
	}
}

// FrameStats counts the work of the last Render call.
type FrameStats struct {
	Viewports int
	Objects   int
	Culled    int
	Draws     int
}

type Renderer struct {
	Modes Modes
	Scene SceneConstants

	dev          Device
	opts         Options
	aspect       float32
	perspective  mgl32.Mat4
	orthographic mgl32.Mat4

	level  *level.Level
	hud    *hud.HUD
	texts  []*hud.Text
	stats  FrameStats
	sprite SpriteDraw
}

func New(dev Device, opts Options) *Renderer {
	r := &Renderer{
		Modes: Modes{Show3D: true, Show2D: true},
		dev:   dev,
		opts:  opts,
	}
	r.Scene = SceneConstants{
		View:           mgl32.Ident4(),
		LightDirection: opts.LightDirection.Normalize().Vec4(0),
		LightColor:     opts.LightColor,
		CameraPosition: mgl32.Vec4{0, 0, 0, 1},
		SunAmbient:     opts.Ambient,
	}
	r.Resize(dev.Size())
	return r
}

// SetLevel uploads lvl in place of the current level. When the upload fails
// the current level stays loaded and keeps drawing. The level's first light
// sets the sun direction; levels without one use Options.LightDirection.
func (r *Renderer) SetLevel(lvl *level.Level) error {
	if err := r.dev.UploadLevel(lvl); err != nil {
		return fmt.Errorf("upload level %s: %w", lvl.Path, err)
	}
	r.level = lvl
	dir, ok := lvl.Light()
	if !ok {
		dir = r.opts.LightDirection.Normalize()
	}
	r.Scene.LightDirection = dir.Vec4(0)
	return nil
}

func (r *Renderer) Level() *level.Level { return r.level }

// SetHUD sets the sprites and texts drawn by Render2D.
func (r *Renderer) SetHUD(h *hud.HUD, texts ...*hud.Text) {
	r.hud = h
	r.texts = texts
}

func (r *Renderer) SetCamera(view mgl32.Mat4, position mgl32.Vec3) {
	r.Scene.View = view
	r.Scene.CameraPosition = position.Vec4(1)
}

// Resize rebuilds both projections for a window of the given size.
func (r *Renderer) Resize(width, height int) {
	r.aspect = float32(max(width, 1)) / float32(max(height, 1))
	r.perspective = mgl32.Perspective(mgl32.DegToRad(r.opts.FOVDegrees), r.aspect, r.opts.Near, r.opts.Far)
	h := r.opts.OrthoExtent
	w := h * r.aspect
	r.orthographic = mgl32.Ortho(-w, w, -h, h, r.opts.Near, r.opts.Far)
}

func (r *Renderer) Aspect() float32 { return r.aspect }

// Projection returns the projection for the current modes.
func (r *Renderer) Projection() mgl32.Mat4 {
	if r.Modes.Orthographic {
		return r.orthographic
	}
	return r.perspective
}

func (r *Renderer) Stats() FrameStats { return r.stats }

// Render draws the level into the full window, or into its left and right
// halves in split-screen mode.
func (r *Renderer) Render() {
	r.stats = FrameStats{}
	if !r.Modes.Show3D || r.level == nil {
		return
	}

	r.dev.SetWireframe(r.Modes.Wireframe)
	r.Scene.Projection = r.Projection()

	w, h := r.dev.Size()
	viewports := []Viewport{{Width: w, Height: h}}
	if r.Modes.SplitScreen {
		half := w / 2
		viewports = []Viewport{
			{Width: half, Height: h},
			{X: half, Width: w - half, Height: h},
		}
	}

	var frustum *Frustum
	if r.opts.FrustumCulling {
		f := ExtractFrustum(r.Scene.Projection.Mul4(r.Scene.View))
		frustum = &f
	}

	r.dev.BeginScene(&r.Scene)
	for _, vp := range viewports {
		r.dev.SetViewport(vp)
		r.drawLevel(frustum)
		r.stats.Viewports++
	}
	r.dev.EndScene()
	r.dev.SetWireframe(false)
}

func (r *Renderer) drawLevel(frustum *Frustum) {
	lvl := r.level
	var mc MeshConstants
	for _, obj := range lvl.Objects {
		model := &lvl.Models[obj.ModelIndex]
		world := lvl.Transforms[obj.TransformIndex]
		r.stats.Objects++

		if frustum != nil {
			s := model.Bounds.Transform(world)
			if !frustum.ContainsSphere(s.Center, s.Radius) {
				r.stats.Culled++
				continue
			}
		}

		mc.World = world
		for j := 0; j < model.MeshCount; j++ {
			meshIndex := model.MeshStart + j
			mesh := &lvl.Meshes[meshIndex]
			mc.Material = lvl.MeshMaterial(model, j).Attributes
			r.dev.DrawIndexed(DrawCall{
				Mesh:       meshIndex,
				IndexCount: int(mesh.IndexCount),
				StartIndex: int(mesh.IndexOffset) + model.IndexStart,
				BaseVertex: model.VertexStart,
			}, &mc)
			r.stats.Draws++
		}
	}
}

// Render2D draws the HUD sprites far to near, then every text.
func (r *Renderer) Render2D() {
	if !r.Modes.Show2D {
		return
	}
	w, h := r.dev.Size()
	r.dev.SetViewport(Viewport{Width: w, Height: h})
	r.dev.Begin2D()

	if r.hud != nil {
		sx, sy := r.hud.ScissorScale(w, h)
		for i := range r.hud.Sprites {
			sp := &r.hud.Sprites[i]
			r.sprite = SpriteDraw{
				Texture: sp.Texture,
				Constants: SpriteConstants{
					PosScale:      mgl32.Vec4{sp.Pos.X(), sp.Pos.Y(), sp.Scale.X(), sp.Scale.Y()},
					RotationDepth: mgl32.Vec2{sp.Rotation, sp.Depth},
				},
				Scissor: sp.Scissor.Scale(sx, sy),
			}
			r.dev.DrawSprite(&r.sprite)
		}
	}

	for _, t := range r.texts {
		r.drawText(t, w, h)
	}
	r.dev.End2D()
}

// drawText emits one sprite per glyph, each placed the way the text's own
// scale, rotation and position would move that glyph's quad.
func (r *Renderer) drawText(t *hud.Text, w, h int) {
	sin, cos := math32.Sincos(t.Rotation)
	for _, q := range t.Layout(w, h) {
		cx, cy := q.Center.X()*t.Scale.X(), q.Center.Y()*t.Scale.Y()
		r.sprite = SpriteDraw{
			Texture: r.opts.FontTexture,
			Source:  q.Source,
			Constants: SpriteConstants{
				PosScale: mgl32.Vec4{
					t.Pos.X() + cx*cos - cy*sin,
					t.Pos.Y() + cx*sin + cy*cos,
					q.Half.X() * t.Scale.X(),
					q.Half.Y() * t.Scale.Y(),
				},
				RotationDepth: mgl32.Vec2{t.Rotation, t.Depth},
			},
		}
		r.dev.DrawSprite(&r.sprite)
	}
}

// Close releases the current level's geometry.
func (r *Renderer) Close() {
	if r.level != nil {
		r.dev.ReleaseLevel()
		r.level = nil
	}
}
