package render

import (
	"errors"
	"fmt"
	"os"
)

var ErrShaderCompile = errors.New("render: shader failed to compile")

// ShaderSources is the GLSL text of the level shader program.
type ShaderSources struct {
	Vertex   string
	Fragment string
}

// LoadShaderSources reads both shader files. Either one missing is an error.
func LoadShaderSources(vertexPath, fragmentPath string) (ShaderSources, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return ShaderSources{}, fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return ShaderSources{}, fmt.Errorf("read fragment shader: %w", err)
	}
	return ShaderSources{Vertex: string(vs), Fragment: string(fs)}, nil
}
