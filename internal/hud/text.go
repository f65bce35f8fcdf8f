package hud

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Quad is one laid-out glyph. Center and Half are in normalized device
// coordinates relative to the text's position, before its scale.
type Quad struct {
	Source Rect // atlas pixels
	Center mgl32.Vec2
	Half   mgl32.Vec2
}

// Text is a string drawn with a bitmap font, centred on Pos.
type Text struct {
	Font     *Font
	Pos      mgl32.Vec2
	Scale    mgl32.Vec2
	Rotation float32
	Depth    float32

	text   string
	quads  []Quad
	screen [2]int
	dirty  bool
}

func NewText(font *Font, s string) *Text {
	return &Text{Font: font, Scale: mgl32.Vec2{1, 1}, text: s, dirty: true}
}

func (t *Text) String() string { return t.text }

// SetText changes the string. The layout is redone on the next Layout call
// only when the string actually changed.
func (t *Text) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.dirty = true
}

// Layout returns the glyph quads for a screen of the given size. Characters
// missing from the font are skipped.
func (t *Text) Layout(width, height int) []Quad {
	if !t.dirty && t.screen == [2]int{width, height} {
		return t.quads
	}
	t.quads = t.quads[:0]
	t.screen = [2]int{width, height}
	t.dirty = false
	if t.Font == nil || width <= 0 || height <= 0 {
		return t.quads
	}

	type box struct {
		g              Glyph
		x0, y0, x1, y1 float32
	}
	var boxes []box
	var pen float32
	top, bottom := math32.Inf(1), math32.Inf(-1)
	for _, ch := range t.text {
		g, ok := t.Font.Glyphs[ch]
		if !ok {
			continue
		}
		b := box{g: g, x0: pen - g.OriginX, y0: -g.OriginY}
		b.x1, b.y1 = b.x0+g.Width, b.y0+g.Height
		boxes = append(boxes, b)
		top = math32.Min(top, b.y0)
		bottom = math32.Max(bottom, b.y1)
		pen += g.Advance
	}
	if len(boxes) == 0 {
		return t.quads
	}

	// Centre horizontally on the pen advance and vertically on the ink.
	dx, dy := -pen/2, -(top+bottom)/2
	sx, sy := 2/float32(width), 2/float32(height)
	for _, b := range boxes {
		t.quads = append(t.quads, Quad{
			Source: Rect{X: b.g.X, Y: b.g.Y, W: b.g.Width, H: b.g.Height},
			Center: mgl32.Vec2{((b.x0+b.x1)/2 + dx) * sx, -((b.y0+b.y1)/2 + dy) * sy},
			Half:   mgl32.Vec2{b.g.Width / 2 * sx, b.g.Height / 2 * sy},
		})
	}
	return t.quads
}
