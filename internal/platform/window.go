// Package platform binds the renderer to raylib: the window, input polling,
// the graphics device and the debug overlay.
package platform

import (
	"levelrenderer/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Window struct{}

// OpenWindow creates the window and its OpenGL context. Everything else in
// this package needs the context, so call it first.
func OpenWindow(cfg config.Window) *Window {
	var flags uint32 = rl.FlagMsaa4xHint | rl.FlagVsyncHint
	if cfg.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetTargetFPS(int32(cfg.TargetFPS))
	return &Window{}
}

func (w *Window) ShouldClose() bool { return rl.WindowShouldClose() }

func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (w *Window) Resized() bool { return rl.IsWindowResized() }

func (w *Window) FrameTime() float32 { return rl.GetFrameTime() }

func (w *Window) BeginFrame(clear [4]float32) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.ColorFromNormalized(rl.Vector4{X: clear[0], Y: clear[1], Z: clear[2], W: clear[3]}))
}

func (w *Window) EndFrame() { rl.EndDrawing() }

func (w *Window) SetCursorCaptured(captured bool) {
	if captured {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

func (w *Window) Close() { rl.CloseWindow() }
