package game

import (
	"errors"

	"levelrenderer/internal/input"
	"levelrenderer/internal/level"
	"levelrenderer/internal/render"
)

type fakeWindow struct {
	width, height int
	resizeOn      map[int]bool
	closeAfter    int

	frame    int
	begun    [][4]float32
	ended    int
	captured []bool
}

func (w *fakeWindow) ShouldClose() bool { return w.frame >= w.closeAfter }
func (w *fakeWindow) Size() (int, int) { return w.width, w.height }
func (w *fakeWindow) Resized() bool { return w.resizeOn[w.frame] }
func (w *fakeWindow) FrameTime() float32 { return 1.0 / 60 }
func (w *fakeWindow) BeginFrame(c [4]float32) { w.begun = append(w.begun, c) }
func (w *fakeWindow) EndFrame() {
	w.ended++
	w.frame++
}

func (w *fakeWindow) SetCursorCaptured(on bool) { w.captured = append(w.captured, on) }

type fakeAudio struct {
	cues, music int
}

func (a *fakeAudio) RestartCue() { a.cues++ }
func (a *fakeAudio) EnsureMusic() { a.music++ }

// scriptedInput returns frames in order, then empty frames.
type scriptedInput struct {
	frames []input.Frame
	polled int
}

func (s *scriptedInput) Poll() input.Frame {
	defer func() { s.polled++ }()
	if s.polled < len(s.frames) {
		return s.frames[s.polled]
	}
	return input.Frame{}
}

type fakeOverlay struct {
	infos []OverlayInfo
	check func(m *render.Modes)
}

func (o *fakeOverlay) Draw(m *render.Modes, info OverlayInfo) {
	o.infos = append(o.infos, info)
	if o.check != nil {
		o.check(m)
	}
}

type fakeDevice struct {
	width, height int
	failUpload    int // 1-based upload attempt that fails, 0 for none
	attempts      int
	holding       bool
	uploads       int
	releases      int
	draws         int
	sprites       int
}

var errUpload = errors.New("upload failed")

func (d *fakeDevice) Size() (int, int) { return d.width, d.height }
func (d *fakeDevice) UploadLevel(*level.Level) error {
	d.attempts++
	if d.attempts == d.failUpload {
		return errUpload
	}
	if d.holding {
		d.releases++
	}
	d.holding = true
	d.uploads++
	return nil
}

func (d *fakeDevice) ReleaseLevel() {
	if d.holding {
		d.releases++
	}
	d.holding = false
}
func (d *fakeDevice) SetViewport(render.Viewport) {}
func (d *fakeDevice) SetWireframe(bool) {}
func (d *fakeDevice) BeginScene(*render.SceneConstants) {}
func (d *fakeDevice) DrawIndexed(render.DrawCall, *render.MeshConstants) { d.draws++ }
func (d *fakeDevice) EndScene() {}
func (d *fakeDevice) Begin2D() {}
func (d *fakeDevice) DrawSprite(*render.SpriteDraw) { d.sprites++ }
func (d *fakeDevice) End2D() {}
