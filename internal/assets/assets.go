package assets

import (
	"log"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Manager caches GPU textures by path
type Manager struct {
	textures map[string]rl.Texture2D
}

func New() *Manager {
	return &Manager{
		textures: make(map[string]rl.Texture2D),
	}
}

// LoadTexture returns the texture at path, loading it on first use. The
// second result is false when the file could not be loaded.
func (m *Manager) LoadTexture(path string) (rl.Texture2D, bool) {
	if texture, exists := m.textures[path]; exists {
		return texture, true
	}

	texture := rl.LoadTexture(path)
	if !rl.IsTextureValid(texture) {
		log.Printf("Assets: failed to load texture %s", filepath.ToSlash(path))
		return texture, false
	}
	rl.SetTextureFilter(texture, rl.FilterBilinear)
	m.textures[path] = texture
	return texture, true
}

// LoadTextures loads every path in order. Failed entries stay zero so the
// slice can still be indexed by texture ID.
func (m *Manager) LoadTextures(paths []string) []rl.Texture2D {
	out := make([]rl.Texture2D, len(paths))
	for i, p := range paths {
		if tex, ok := m.LoadTexture(p); ok {
			out[i] = tex
		}
	}
	return out
}

// Unload releases every cached texture
func (m *Manager) Unload() {
	for path, texture := range m.textures {
		rl.UnloadTexture(texture)
		delete(m.textures, path)
	}
}
