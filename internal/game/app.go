package game

import (
	"fmt"
	"log"
	"strconv"

	"levelrenderer/internal/camera"
	"levelrenderer/internal/config"
	"levelrenderer/internal/hud"
	"levelrenderer/internal/input"
	"levelrenderer/internal/level"
	"levelrenderer/internal/render"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Window is the OS window and frame pacing.
type Window interface {
	ShouldClose() bool
	Size() (width, height int)
	Resized() bool
	FrameTime() float32
	BeginFrame(clear [4]float32)
	EndFrame()
	SetCursorCaptured(captured bool)
}

// Audio plays the level loading cue and the background music.
type Audio interface {
	RestartCue()
	EnsureMusic()
}

// OverlayInfo is what the debug overlay shows besides the modes.
type OverlayInfo struct {
	Level      string
	LevelNum   int
	Levels     int
	Stats      render.FrameStats
	LevelStats level.Stats
	Interact   bool // cursor released, widgets clickable
	CameraPos  mgl32.Vec3
}

// Overlay draws the debug panel and may change the modes through its widgets.
type Overlay interface {
	Draw(modes *render.Modes, info OverlayInfo)
}

type Deps struct {
	Window  Window
	Device  render.Device
	Input   input.Source
	Audio   Audio
	Overlay Overlay
	Loader  *level.Loader
	HUD     *hud.HUD
	Font    *hud.Font
	Log     *log.Logger
}

type App struct {
	cfg      *config.Config
	win      Window
	input    input.Source
	audio    Audio
	overlay  Overlay
	loader   *level.Loader
	renderer *render.Renderer
	camera   *camera.FreeCamera
	toggles  *input.Toggles

	levelIndex int
	clear      [4]float32
	captured   bool
	label      *hud.Text
	levelText  *hud.Text
	logger     *log.Logger
}

func New(cfg *config.Config, d Deps) *App {
	a := &App{
		cfg:      cfg,
		win:      d.Window,
		input:    d.Input,
		audio:    d.Audio,
		overlay:  d.Overlay,
		loader:   d.Loader,
		toggles:  input.NewToggles(cfg.Debug.ToggleCooldownFrames),
		captured: true,
		logger:   d.Log,
	}
	if a.logger == nil {
		a.logger = log.Default()
	}
	for i, c := range cfg.Window.ClearColor {
		a.clear[i] = float32(c) / 255
	}

	opts := render.Options{
		FOVDegrees:     cfg.Camera.FOVDegrees,
		Near:           cfg.Camera.Near,
		Far:            cfg.Camera.Far,
		OrthoExtent:    cfg.Camera.OrthoExtent,
		LightDirection: mgl32.Vec3(cfg.Lighting.Direction),
		LightColor:     mgl32.Vec4(cfg.Lighting.Color),
		Ambient:        mgl32.Vec4(cfg.Lighting.Ambient),
		FrustumCulling: cfg.Debug.FrustumCulling,
		FontTexture:    cfg.Paths.FontTexture,
	}
	a.renderer = render.New(d.Device, opts)

	a.camera = camera.New(mgl32.Ident4())
	a.camera.FOVDegrees = cfg.Camera.FOVDegrees
	a.camera.MoveSpeed = cfg.Camera.MoveSpeed
	a.camera.LookSensitivity = cfg.Camera.LookSensitivity
	a.camera.StickTurnSpeed = cfg.Camera.StickTurnSpeed

	h := d.HUD
	if h == nil {
		h = &hud.HUD{}
	}
	a.label = hud.NewText(d.Font, "Level")
	a.label.Pos = mgl32.Vec2{0, -0.82}
	a.label.Scale = mgl32.Vec2{0.5, 0.5}
	a.label.Depth = 0.01
	a.levelText = hud.NewText(d.Font, "")
	a.levelText.Pos = mgl32.Vec2{0, -0.88}
	a.levelText.Scale = mgl32.Vec2{0.5, 0.5}
	a.levelText.Depth = 0.01
	if d.Font != nil {
		a.renderer.SetHUD(h, a.label, a.levelText)
	} else {
		a.renderer.SetHUD(h)
	}
	return a
}

func (a *App) Renderer() *render.Renderer { return a.renderer }
func (a *App) Camera() *camera.FreeCamera { return a.camera }
func (a *App) LevelIndex() int { return a.levelIndex }

// Start loads the level at index and starts the music.
func (a *App) Start(index int) error {
	if index < 0 || index >= len(a.cfg.Paths.Levels) {
		return fmt.Errorf("level index %d out of range [0, %d)", index, len(a.cfg.Paths.Levels))
	}
	if err := a.LoadLevel(index); err != nil {
		return err
	}
	a.win.SetCursorCaptured(a.captured)
	a.audio.EnsureMusic()
	return nil
}

// LoadLevel replaces the current level with level index of the configured
// list. On failure the current level stays loaded.
func (a *App) LoadLevel(index int) error {
	path := a.cfg.Paths.Levels[index]
	lvl, err := a.loader.Load(path)
	if err != nil {
		return fmt.Errorf("load level %d: %w", index, err)
	}
	if err := a.renderer.SetLevel(lvl); err != nil {
		return err
	}
	a.levelIndex = index
	cam, ok := lvl.Camera()
	a.camera.Reset(cam)
	if !ok {
		a.logger.Printf("Level: %s has no camera, starting at the origin", path)
	}
	a.levelText.SetText(strconv.Itoa(index + 1))
	a.audio.RestartCue()
	return nil
}

// Update runs one frame of input handling.
func (a *App) Update() {
	frame := a.input.Poll()
	flipped := a.toggles.Update(frame)
	modes := &a.renderer.Modes
	if flipped[input.ToggleWireframe] {
		modes.Wireframe = !modes.Wireframe
	}
	if flipped[input.ToggleOrthographic] {
		modes.Orthographic = !modes.Orthographic
	}
	if flipped[input.ToggleSplitScreen] {
		modes.SplitScreen = !modes.SplitScreen
	}
	if flipped[input.ToggleHUD] {
		modes.Show2D = !modes.Show2D
	}
	if flipped[input.ToggleScene] {
		modes.Show3D = !modes.Show3D
	}
	if flipped[input.ToggleCursor] {
		a.captured = !a.captured
		a.win.SetCursorCaptured(a.captured)
	}
	if flipped[input.NextLevel] {
		next := (a.levelIndex + 1) % len(a.cfg.Paths.Levels)
		if err := a.LoadLevel(next); err != nil {
			a.logger.Printf("Level: %v", err)
			a.levelIndex = next
		}
	}

	w, h := a.win.Size()
	if a.win.Resized() {
		a.clear[2] = math32.Min(a.clear[2]+0.01, 1)
		a.renderer.Resize(w, h)
	}

	if !a.captured {
		frame.MouseDX, frame.MouseDY = 0, 0
	}
	a.camera.Update(frame, a.win.FrameTime(), w, h)
	a.renderer.SetCamera(a.camera.View(), a.camera.Position())
	a.audio.EnsureMusic()
}

// Draw renders one frame.
func (a *App) Draw() {
	a.win.BeginFrame(a.clear)
	a.renderer.Render()
	a.renderer.Render2D()
	if a.cfg.Debug.Overlay && a.overlay != nil {
		lvl := a.renderer.Level()
		info := OverlayInfo{
			LevelNum:  a.levelIndex + 1,
			Levels:    len(a.cfg.Paths.Levels),
			Stats:     a.renderer.Stats(),
			Interact:  !a.captured,
			CameraPos: a.camera.Position(),
		}
		if lvl != nil {
			info.Level = lvl.Path
			info.LevelStats = lvl.Stats()
		}
		a.overlay.Draw(&a.renderer.Modes, info)
	}
	a.win.EndFrame()
}

// Run loops until the window is closed.
func (a *App) Run() {
	for !a.win.ShouldClose() {
		a.Update()
		a.Draw()
	}
	a.renderer.Close()
}

// ClearColor is the current background colour.
func (a *App) ClearColor() [4]float32 { return a.clear }
