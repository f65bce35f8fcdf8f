package game

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"levelrenderer/internal/config"
	"levelrenderer/internal/hud"
	"levelrenderer/internal/input"
	"levelrenderer/internal/level"
	"levelrenderer/internal/render"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const cameraBlock = "CAMERA\nCamera\n" +
	"<Matrix 4x4 (1, 0, 0, 0)\n(0, 1, 0, -5)\n(0, 0, 1, 2)\n(0, 0, 0, 1)>\n"

func meshBlock(name string) string {
	return "MESH\n" + name + "\n" +
		"<Matrix 4x4 (1, 0, 0, 0)\n(0, 1, 0, 3)\n(0, 0, 1, 0)\n(0, 0, 0, 1)>\n"
}

func boxModel() *level.H2B {
	return &level.H2B{
		Version: 1,
		Vertices: []level.Vertex{
			{Pos: mgl32.Vec3{0, 0, 0}},
			{Pos: mgl32.Vec3{1, 0, 0}},
			{Pos: mgl32.Vec3{0, 1, 0}},
		},
		Indices:   []uint32{0, 1, 2},
		Materials: []level.Material{{Name: "m", Attributes: level.Attributes{D: 1}}},
		Batches:   []level.Batch{{IndexCount: 3}},
		Meshes:    []level.Mesh{{Name: "Box", IndexCount: 3}},
	}
}

type harness struct {
	app     *App
	win     *fakeWindow
	audio   *fakeAudio
	input   *scriptedInput
	overlay *fakeOverlay
	dev     *fakeDevice
	logs    *bytes.Buffer
}

// newHarness writes the given level sources next to a Box model and builds
// an App over fakes.
func newHarness(t *testing.T, levels ...string) *harness {
	t.Helper()
	dir := t.TempDir()
	models := filepath.Join(dir, "models")
	if err := os.Mkdir(models, 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join(models, "Box.h2b"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := boxModel().WriteTo(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := config.Default()
	cfg.Paths.Levels = nil
	for i, src := range levels {
		path := filepath.Join(dir, "level"+string(rune('A'+i))+".txt")
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
		cfg.Paths.Levels = append(cfg.Paths.Levels, path)
	}

	h := &harness{
		win:     &fakeWindow{width: 800, height: 600, closeAfter: 1 << 30},
		audio:   &fakeAudio{},
		input:   &scriptedInput{},
		overlay: &fakeOverlay{},
		dev:     &fakeDevice{width: 800, height: 600},
		logs:    &bytes.Buffer{},
	}
	logger := log.New(h.logs, "", 0)
	font := &hud.Font{Glyphs: map[rune]hud.Glyph{
		'1': {Width: 8, Height: 8, Advance: 8},
		'2': {Width: 8, Height: 8, Advance: 8},
	}}
	h.app = New(&cfg, Deps{
		Window:  h.win,
		Device:  h.dev,
		Input:   h.input,
		Audio:   h.audio,
		Overlay: h.overlay,
		Loader:  &level.Loader{ModelDir: models, Log: logger},
		HUD:     &hud.HUD{Sprites: []hud.Sprite{{Name: "back", Scale: mgl32.Vec2{1, 1}}}},
		Font:    font,
		Log:     logger,
	})
	return h
}

func held(actions ...input.Action) input.Frame {
	var f input.Frame
	for _, a := range actions {
		f.Held[a] = true
	}
	return f
}

func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.app.Update()
		h.app.Draw()
	}
}

func TestStartLoadsFirstLevel(t *testing.T) {
	h := newHarness(t, meshBlock("Box.001")+cameraBlock, meshBlock("Box"))
	if err := h.app.Start(0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if h.dev.uploads != 1 || h.app.LevelIndex() != 0 {
		t.Errorf("Expected level 0 uploaded once, got %d uploads at index %d", h.dev.uploads, h.app.LevelIndex())
	}
	if h.audio.cues != 1 || h.audio.music != 1 {
		t.Errorf("Expected one cue and music started, got %d and %d", h.audio.cues, h.audio.music)
	}
	if len(h.win.captured) != 1 || !h.win.captured[0] {
		t.Errorf("Expected cursor captured, got %v", h.win.captured)
	}
	if pos := h.app.Camera().Position(); pos.Sub(mgl32.Vec3{0, 2, 5}).Len() > 1e-5 {
		t.Errorf("Expected camera from the level at (0, 2, 5), got %v", pos)
	}
	if h.app.levelText.String() != "1" {
		t.Errorf("Expected level text 1, got %q", h.app.levelText.String())
	}
}

func TestStartRejectsBadIndex(t *testing.T) {
	h := newHarness(t, meshBlock("Box"))
	if err := h.app.Start(3); err == nil {
		t.Error("Expected an error for index 3")
	}
}

func TestStartFailsOnEmptyLevel(t *testing.T) {
	h := newHarness(t, meshBlock("Missing"))
	if err := h.app.Start(0); err == nil || !strings.Contains(err.Error(), "load level 0") {
		t.Errorf("Expected load error, got %v", err)
	}
}

func TestNextLevelCyclesAndDebounces(t *testing.T) {
	h := newHarness(t, meshBlock("Box")+cameraBlock, meshBlock("Box.002"))
	if err := h.app.Start(0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 31; i++ {
		h.input.frames = append(h.input.frames, held(input.NextLevel))
	}
	h.frames(31)

	// Flips on frames 0 and 30: level 1, then back to level 0.
	if h.dev.uploads != 3 || h.dev.releases != 2 {
		t.Errorf("Expected 3 uploads and 2 releases, got %d and %d", h.dev.uploads, h.dev.releases)
	}
	if h.app.LevelIndex() != 0 {
		t.Errorf("Expected to wrap to level 0, got %d", h.app.LevelIndex())
	}
	if h.audio.cues != 3 {
		t.Errorf("Expected the cue restarted per load, got %d", h.audio.cues)
	}
	if h.audio.music != 32 {
		t.Errorf("Expected music kept alive every frame, got %d", h.audio.music)
	}
	if !strings.Contains(h.logs.String(), "has no camera") {
		t.Errorf("Expected camera-less level to be logged, got:\n%s", h.logs.String())
	}
}

func TestNextLevelFailureKeepsCurrent(t *testing.T) {
	h := newHarness(t, meshBlock("Box"), meshBlock("Ghost"))
	if err := h.app.Start(0); err != nil {
		t.Fatal(err)
	}
	before := h.app.Renderer().Level()
	h.input.frames = []input.Frame{held(input.NextLevel)}
	h.frames(1)

	if h.app.Renderer().Level() != before {
		t.Error("Expected the current level to stay loaded")
	}
	if !strings.Contains(h.logs.String(), "no drawable objects") {
		t.Errorf("Expected the failure to be logged, got:\n%s", h.logs.String())
	}
}

func TestUploadFailureKeepsCurrentLevel(t *testing.T) {
	h := newHarness(t, meshBlock("Box"), meshBlock("Box.002"))
	h.dev.failUpload = 2
	if err := h.app.Start(0); err != nil {
		t.Fatal(err)
	}
	before := h.app.Renderer().Level()
	h.input.frames = []input.Frame{held(input.NextLevel)}
	h.frames(1)

	if got := h.app.Renderer().Level(); got != before {
		t.Errorf("Expected the current level to stay loaded, got %v", got)
	}
	if h.dev.releases != 0 {
		t.Errorf("Expected nothing released, got %d releases", h.dev.releases)
	}
	if h.dev.draws != 1 {
		t.Errorf("Expected the current level drawn, got %d draws", h.dev.draws)
	}
	if !strings.Contains(h.logs.String(), "upload failed") {
		t.Errorf("Expected the failure to be logged, got:\n%s", h.logs.String())
	}
}

func TestToggles(t *testing.T) {
	h := newHarness(t, meshBlock("Box"))
	if err := h.app.Start(0); err != nil {
		t.Fatal(err)
	}
	h.input.frames = []input.Frame{
		held(input.ToggleWireframe, input.ToggleOrthographic, input.ToggleSplitScreen, input.ToggleHUD, input.ToggleScene),
		held(input.ToggleWireframe),
	}
	h.frames(2)

	m := h.app.Renderer().Modes
	if !m.Wireframe || !m.Orthographic || !m.SplitScreen || m.Show2D || m.Show3D {
		t.Errorf("Expected every mode flipped exactly once, got %+v", m)
	}
	if h.dev.draws != 0 || h.dev.sprites != 0 {
		t.Errorf("Expected nothing drawn with both layers hidden, got %d draws and %d sprites", h.dev.draws, h.dev.sprites)
	}
}

func TestCursorReleaseIgnoresMouse(t *testing.T) {
	h := newHarness(t, meshBlock("Box"))
	if err := h.app.Start(0); err != nil {
		t.Fatal(err)
	}
	release := held(input.ToggleCursor)
	release.MouseDX = 200
	h.input.frames = []input.Frame{release}
	h.frames(1)

	if len(h.win.captured) != 2 || h.win.captured[1] {
		t.Errorf("Expected cursor released, got %v", h.win.captured)
	}
	if fwd := h.app.Camera().Forward(); fwd.Sub(mgl32.Vec3{0, 0, -1}).Len() > 1e-5 {
		t.Errorf("Expected mouse look ignored, forward %v", fwd)
	}
	if !h.overlay.infos[0].Interact {
		t.Error("Expected overlay to be interactive")
	}
}

func TestResizeNudgesClearColor(t *testing.T) {
	h := newHarness(t, meshBlock("Box"))
	if err := h.app.Start(0); err != nil {
		t.Fatal(err)
	}
	h.win.resizeOn = map[int]bool{1: true}
	h.win.width, h.win.height = 1000, 500
	h.frames(2)

	blue := h.app.ClearColor()[2]
	if want := float32(25)/255 + 0.01; math32.Abs(blue-want) > 1e-6 {
		t.Errorf("Expected blue %v, got %v", want, blue)
	}
	if h.win.begun[0][2] != float32(25)/255 {
		t.Errorf("Expected the first frame cleared with the configured colour, got %v", h.win.begun[0])
	}
	if h.app.Renderer().Aspect() != 2 {
		t.Errorf("Expected aspect 2 after resize, got %v", h.app.Renderer().Aspect())
	}
}

func TestRunDrawsUntilClosed(t *testing.T) {
	h := newHarness(t, meshBlock("Box"), meshBlock("Box.001"))
	if err := h.app.Start(1); err != nil {
		t.Fatal(err)
	}
	h.win.closeAfter = 3
	h.app.Run()

	if h.win.ended != 3 || len(h.overlay.infos) != 3 {
		t.Errorf("Expected 3 frames with overlay, got %d and %d", h.win.ended, len(h.overlay.infos))
	}
	info := h.overlay.infos[2]
	if info.LevelNum != 2 || info.Levels != 2 || !strings.HasSuffix(info.Level, "levelB.txt") {
		t.Errorf("Unexpected overlay info %+v", info)
	}
	if info.Stats.Draws != 1 {
		t.Errorf("Expected 1 draw, got %d", info.Stats.Draws)
	}
	// One HUD sprite plus the "2" glyph; "Level" has no glyphs in the test font.
	if h.dev.sprites != 6 {
		t.Errorf("Expected 2 sprites per frame, got %d total", h.dev.sprites)
	}
	if h.dev.releases != 1 {
		t.Errorf("Expected the level released on exit, got %d", h.dev.releases)
	}
}

func TestOverlayCanChangeModes(t *testing.T) {
	h := newHarness(t, meshBlock("Box"))
	if err := h.app.Start(0); err != nil {
		t.Fatal(err)
	}
	h.overlay.check = func(m *render.Modes) { m.Wireframe = true }
	h.frames(1)
	if !h.app.Renderer().Modes.Wireframe {
		t.Error("Expected the overlay to switch wireframe on")
	}
}
