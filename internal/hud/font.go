package hud

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Glyph is one character of a bitmap font atlas, in atlas pixels.
type Glyph struct {
	X, Y, Width, Height float32
	OriginX, OriginY    float32
	Advance             float32
}

type Font struct {
	Name          string
	Size          float32
	Width, Height float32 // atlas size in pixels
	Glyphs        map[rune]Glyph
}

type fontXML struct {
	XMLName    xml.Name       `xml:"font"`
	Name       string         `xml:"name,attr"`
	Size       float32        `xml:"size,attr"`
	Width      float32        `xml:"width,attr"`
	Height     float32        `xml:"height,attr"`
	Characters []characterXML `xml:"character"`
}

type characterXML struct {
	Text    string  `xml:"text,attr"`
	X       float32 `xml:"x,attr"`
	Y       float32 `xml:"y,attr"`
	Width   float32 `xml:"width,attr"`
	Height  float32 `xml:"height,attr"`
	OriginX float32 `xml:"origin-x,attr"`
	OriginY float32 `xml:"origin-y,attr"`
	Advance float32 `xml:"advance,attr"`
}

func LoadFont(path string) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open font: %w", err)
	}
	defer f.Close()
	font, err := ParseFont(f)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return font, nil
}

func ParseFont(r io.Reader) (*Font, error) {
	var doc fontXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	font := &Font{
		Name:   doc.Name,
		Size:   doc.Size,
		Width:  doc.Width,
		Height: doc.Height,
		Glyphs: make(map[rune]Glyph, len(doc.Characters)),
	}
	for _, c := range doc.Characters {
		ch, n := utf8.DecodeRuneInString(c.Text)
		if n == 0 || n != len(c.Text) {
			return nil, fmt.Errorf("character %q is not a single rune", c.Text)
		}
		font.Glyphs[ch] = Glyph{
			X: c.X, Y: c.Y, Width: c.Width, Height: c.Height,
			OriginX: c.OriginX, OriginY: c.OriginY,
			Advance: c.Advance,
		}
	}
	return font, nil
}
