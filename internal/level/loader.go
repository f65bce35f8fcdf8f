package level

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"
)

var ErrEmptyLevel = errors.New("level: no drawable objects")

// Loader reads level text files and the H2B models they reference.
type Loader struct {
	// ModelDir is searched for <model>.h2b and <model>.h2b.zst.
	ModelDir string
	// Log receives one line per loading event. Nil uses the standard logger.
	Log *log.Logger
}

func (l *Loader) logf(format string, args ...any) {
	if l.Log != nil {
		l.Log.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Load reads the level at path. Objects whose model cannot be loaded are
// logged and skipped.
func (l *Loader) Load(path string) (*Level, error) {
	l.logf("Level: loading %s", path)
	rc, err := openFile(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	entries, err := ParseLevelFile(rc, l.logf)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}

	lvl := &Level{Path: path}
	models := make(map[string]int) // model name -> index, -1 when unavailable
	for _, e := range entries {
		switch e.Kind {
		case KindCamera:
			lvl.Cameras = append(lvl.Cameras, Named{Name: e.Name, Transform: e.Matrix})
			continue
		case KindLight:
			lvl.Lights = append(lvl.Lights, Named{Name: e.Name, Transform: e.Matrix})
			continue
		}

		name := ModelName(e.Name)
		mi, seen := models[name]
		if !seen {
			mi = l.addModel(lvl, name)
			models[name] = mi
		}
		if mi < 0 {
			l.logf("Level: skipping object %s (model %s unavailable)", e.Name, name)
			continue
		}
		lvl.Transforms = append(lvl.Transforms, e.Matrix)
		lvl.Objects = append(lvl.Objects, Object{
			Name:           e.Name,
			ModelIndex:     mi,
			TransformIndex: len(lvl.Transforms) - 1,
		})
	}

	if len(lvl.Objects) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyLevel)
	}
	st := lvl.Stats()
	l.logf("Level: loaded %s: %d objects, %d models, %d meshes, %d materials, %s geometry",
		filepath.Base(path), st.Objects, st.Models, st.Meshes, st.Materials, humanize.Bytes(st.Bytes))
	return lvl, nil
}

// addModel appends the geometry of the named model to lvl and returns its
// index, or -1 when the model file is missing or malformed.
func (l *Loader) addModel(lvl *Level, name string) int {
	file, err := l.findModel(name)
	if err != nil {
		l.logf("Level: model %s not found: %v", name, err)
		return -1
	}
	rc, err := openFile(file)
	if err != nil {
		l.logf("Level: open model %s: %v", file, err)
		return -1
	}
	h, err := ParseH2B(rc)
	rc.Close()
	if err != nil {
		l.logf("Level: read model %s: %v", file, err)
		return -1
	}
	h.ToRightHanded()

	m := Model{
		Name:          name,
		File:          file,
		VertexStart:   len(lvl.Vertices),
		VertexCount:   len(h.Vertices),
		IndexStart:    len(lvl.Indices),
		IndexCount:    len(h.Indices),
		MaterialStart: len(lvl.Materials),
		MaterialCount: len(h.Materials),
		MeshStart:     len(lvl.Meshes),
		MeshCount:     len(h.Meshes),
		Bounds:        boundsOf(h.Vertices),
	}
	lvl.Vertices = append(lvl.Vertices, h.Vertices...)
	lvl.Indices = append(lvl.Indices, h.Indices...)
	lvl.Materials = append(lvl.Materials, h.Materials...)
	lvl.Meshes = append(lvl.Meshes, h.Meshes...)
	lvl.Models = append(lvl.Models, m)
	l.logf("Level: model %s: %d vertices, %d indices, %d meshes", name, m.VertexCount, m.IndexCount, m.MeshCount)
	return len(lvl.Models) - 1
}

func (l *Loader) findModel(name string) (string, error) {
	base := filepath.Join(l.ModelDir, name+".h2b")
	for _, p := range []string{base, base + ".zst"} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %w", base, os.ErrNotExist)
}

// ModelName returns the model an object uses: its name up to the first dot.
func ModelName(object string) string {
	name, _, _ := strings.Cut(object, ".")
	return name
}

type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// openFile opens path, decompressing on the fly when it ends in .zst.
func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zstd %s: %w", path, err)
	}
	return &zstdFile{Decoder: dec, f: f}, nil
}
