// Package hud loads the 2D overlay: sprites described by a HUD XML file and
// bitmap-font text laid out into textured quads.
package hud

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect is an axis-aligned rectangle, Y down.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Scale returns r with both position and size scaled.
func (r Rect) Scale(sx, sy float32) Rect {
	return Rect{X: r.X * sx, Y: r.Y * sy, W: r.W * sx, H: r.H * sy}
}

// Sprite is one HUD element: a textured quad covering Pos ± Scale in
// normalized device coordinates, clipped to Scissor (HUD design pixels).
type Sprite struct {
	Name     string
	Pos      mgl32.Vec2
	Scale    mgl32.Vec2
	Rotation float32 // Radians
	Depth    float32
	Scissor  Rect
	Texture  int
}

// HUD is a parsed HUD document. Width and Height are the design size the
// scissor rectangles are expressed in; Sprites are sorted far to near.
type HUD struct {
	Name          string
	Width, Height float32
	Sprites       []Sprite
}

type hudXML struct {
	XMLName  xml.Name     `xml:"hud"`
	Name     string       `xml:"name,attr"`
	Width    float32      `xml:"width,attr"`
	Height   float32      `xml:"height,attr"`
	Elements []elementXML `xml:"element"`
}

// sr_x/sr_y and sr_w/sr_h are the scissor's min and max corners.
type elementXML struct {
	Name      string  `xml:"name,attr"`
	PosX      float32 `xml:"pos_x,attr"`
	PosY      float32 `xml:"pos_y,attr"`
	ScaleX    float32 `xml:"scale_x,attr"`
	ScaleY    float32 `xml:"scale_y,attr"`
	Rotation  float32 `xml:"rotation,attr"`
	Depth     float32 `xml:"depth,attr"`
	MinX      float32 `xml:"sr_x,attr"`
	MinY      float32 `xml:"sr_y,attr"`
	MaxX      float32 `xml:"sr_w,attr"`
	MaxY      float32 `xml:"sr_h,attr"`
	TextureID int     `xml:"textureID,attr"`
}

func Load(path string) (*HUD, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hud: %w", err)
	}
	defer f.Close()
	h, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("hud %s: %w", path, err)
	}
	return h, nil
}

// Parse decodes a HUD document and sorts its sprites from the deepest to
// the nearest, keeping file order between equal depths.
func Parse(r io.Reader) (*HUD, error) {
	var doc hudXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	h := &HUD{Name: doc.Name, Width: doc.Width, Height: doc.Height}
	for _, e := range doc.Elements {
		h.Sprites = append(h.Sprites, Sprite{
			Name:     e.Name,
			Pos:      mgl32.Vec2{e.PosX, e.PosY},
			Scale:    mgl32.Vec2{e.ScaleX, e.ScaleY},
			Rotation: e.Rotation,
			Depth:    e.Depth,
			Scissor:  Rect{X: e.MinX, Y: e.MinY, W: e.MaxX - e.MinX, H: e.MaxY - e.MinY},
			Texture:  e.TextureID,
		})
	}
	slices.SortStableFunc(h.Sprites, func(a, b Sprite) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		}
		return 0
	})
	return h, nil
}

// ScissorScale maps design pixels to a window of the given size.
func (h *HUD) ScissorScale(width, height int) (float32, float32) {
	if h.Width <= 0 || h.Height <= 0 {
		return 1, 1
	}
	return float32(width) / h.Width, float32(height) / h.Height
}
