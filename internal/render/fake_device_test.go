package render

import (
	"errors"

	"levelrenderer/internal/level"
)

type drawRecord struct {
	Call DrawCall
	MC   MeshConstants
}

// fakeDevice records what the renderer asks of it.
type fakeDevice struct {
	width, height int
	uploadErr     error

	current   *level.Level
	uploads   []*level.Level
	releases  int
	viewports []Viewport
	wireframe []bool
	scenes    []SceneConstants
	draws     []drawRecord
	sprites   []SpriteDraw
	begin2D   int
	end2D     int
	ended     int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{width: 800, height: 600}
}

func (d *fakeDevice) Size() (int, int) { return d.width, d.height }

func (d *fakeDevice) UploadLevel(lvl *level.Level) error {
	if d.uploadErr != nil {
		return d.uploadErr
	}
	if d.current != nil {
		d.releases++
	}
	d.current = lvl
	d.uploads = append(d.uploads, lvl)
	return nil
}

func (d *fakeDevice) ReleaseLevel() {
	if d.current != nil {
		d.releases++
	}
	d.current = nil
}
func (d *fakeDevice) SetViewport(vp Viewport) { d.viewports = append(d.viewports, vp) }
func (d *fakeDevice) SetWireframe(on bool) { d.wireframe = append(d.wireframe, on) }
func (d *fakeDevice) BeginScene(sc *SceneConstants) { d.scenes = append(d.scenes, *sc) }
func (d *fakeDevice) EndScene() { d.ended++ }
func (d *fakeDevice) Begin2D() { d.begin2D++ }
func (d *fakeDevice) End2D() { d.end2D++ }

func (d *fakeDevice) DrawIndexed(call DrawCall, mc *MeshConstants) {
	d.draws = append(d.draws, drawRecord{Call: call, MC: *mc})
}

func (d *fakeDevice) DrawSprite(s *SpriteDraw) { d.sprites = append(d.sprites, *s) }

var errUpload = errors.New("upload failed")
