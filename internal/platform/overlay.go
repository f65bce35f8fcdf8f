package platform

import (
	"fmt"

	"levelrenderer/internal/game"
	"levelrenderer/internal/render"

	"github.com/dustin/go-humanize"
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorPanel  = rl.NewColor(24, 24, 32, 210)
	colorBorder = rl.NewColor(50, 50, 65, 255)
	colorAccent = rl.NewColor(108, 99, 255, 255)
	colorText   = rl.NewColor(220, 220, 230, 255)
	colorDim    = rl.NewColor(140, 140, 160, 255)
)

const (
	overlayX     = 10
	overlayY     = 10
	overlayW     = 240
	overlayH     = 250
	overlayRow   = 22
	overlayText  = 15
	checkboxSize = 14
)

// Overlay is the debug panel. Its checkboxes only react while the cursor is
// released; otherwise it just reports the modes.
type Overlay struct {
	styled bool
}

func (o *Overlay) style() {
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorPanel))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, overlayText)
	o.styled = true
}

func (o *Overlay) Draw(modes *render.Modes, info game.OverlayInfo) {
	if !o.styled {
		o.style()
	}

	rl.DrawRectangle(overlayX, overlayY, overlayW, overlayH, colorPanel)
	rl.DrawRectangleLines(overlayX, overlayY, overlayW, overlayH, colorBorder)

	x, y := int32(overlayX+10), int32(overlayY+8)
	rl.DrawText(fmt.Sprintf("Level %d/%d  %d FPS", info.LevelNum, info.Levels, rl.GetFPS()), x, y, overlayText, colorText)
	y += overlayRow
	rl.DrawText(info.Level, x, y, 10, colorDim)
	y += overlayRow - 6

	toggles := []struct {
		label string
		value *bool
	}{
		{"Wireframe [3]", &modes.Wireframe},
		{"Orthographic [1]", &modes.Orthographic},
		{"Split screen [2]", &modes.SplitScreen},
		{"Show HUD [7]", &modes.Show2D},
		{"Show scene [8]", &modes.Show3D},
	}
	for _, t := range toggles {
		bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: checkboxSize, Height: checkboxSize}
		if info.Interact {
			*t.value = gui.CheckBox(bounds, t.label, *t.value)
		} else {
			state := "off"
			if *t.value {
				state = "on"
			}
			rl.DrawText(fmt.Sprintf("%s: %s", t.label, state), x, y, overlayText, colorText)
		}
		y += overlayRow
	}

	s := info.Stats
	rl.DrawText(fmt.Sprintf("Draws %d  Culled %d/%d", s.Draws, s.Culled, s.Objects), x, y, overlayText, colorDim)
	y += overlayRow
	lv := info.LevelStats
	rl.DrawText(fmt.Sprintf("%s verts  %s", humanize.Comma(int64(lv.Vertices)), humanize.Bytes(lv.Bytes)), x, y, overlayText, colorDim)
	y += overlayRow
	p := info.CameraPos
	rl.DrawText(fmt.Sprintf("Camera %.1f %.1f %.1f", p.X(), p.Y(), p.Z()), x, y, overlayText, colorDim)
	if !info.Interact {
		rl.DrawText("F2 to release the cursor", x, y+overlayRow, 10, colorDim)
	}
}
