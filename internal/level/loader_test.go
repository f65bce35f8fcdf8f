package level

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
)

func meshBlock(name string, x, y, z float32) string {
	return "MESH\n" + name + "\n" +
		"<Matrix 4x4 (1, 0, 0, " + ftoa(x) + ")\n" +
		"            (0, 1, 0, " + ftoa(y) + ")\n" +
		"            (0, 0, 1, " + ftoa(z) + ")\n" +
		"            (0, 0, 0, 1)>\n"
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestLoader(t *testing.T) (*Loader, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	models := filepath.Join(dir, "models")
	if err := os.Mkdir(models, 0755); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	return &Loader{ModelDir: models, Log: log.New(&logs, "", 0)}, dir, &logs
}

func TestLoadSharesModelsAndSkipsMissing(t *testing.T) {
	l, dir, logs := newTestLoader(t)
	writeFile(t, filepath.Join(l.ModelDir, "Rock.h2b"), encodeH2B(t, triangleModel()))
	writeFile(t, filepath.Join(l.ModelDir, "Tree.h2b.zst"), compress(t, encodeH2B(t, triangleModel())))

	src := meshBlock("Rock.001", 0, 0, 0) +
		meshBlock("Rock.002", 5, 0, 0) +
		meshBlock("Ghost.001", 0, 0, 0) +
		meshBlock("Tree", 0, 3, 0) +
		"CAMERA\nCamera\n<Matrix 4x4 (1, 0, 0, 0)\n(0, 1, 0, 0)\n(0, 0, 1, 1)\n(0, 0, 0, 1)>\n"
	path := filepath.Join(dir, "level.txt")
	writeFile(t, path, []byte(src))

	lvl, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(lvl.Objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(lvl.Objects))
	}
	if len(lvl.Models) != 2 {
		t.Fatalf("Expected 2 models, got %d", len(lvl.Models))
	}
	if lvl.Objects[0].ModelIndex != lvl.Objects[1].ModelIndex {
		t.Errorf("Expected Rock objects to share a model, got %d and %d", lvl.Objects[0].ModelIndex, lvl.Objects[1].ModelIndex)
	}
	if lvl.Objects[2].Name != "Tree" || lvl.Objects[2].ModelIndex != 1 {
		t.Errorf("Expected Tree to use model 1, got %+v", lvl.Objects[2])
	}
	if len(lvl.Vertices) != 6 || len(lvl.Indices) != 12 || len(lvl.Meshes) != 4 || len(lvl.Materials) != 4 {
		t.Errorf("Expected 6/12/4/4 vertices/indices/meshes/materials, got %d/%d/%d/%d",
			len(lvl.Vertices), len(lvl.Indices), len(lvl.Meshes), len(lvl.Materials))
	}

	tree := lvl.Models[1]
	if tree.VertexStart != 3 || tree.IndexStart != 6 || tree.MeshStart != 2 || tree.MaterialStart != 2 {
		t.Errorf("Expected tree ranges starting at 3/6/2/2, got %+v", tree)
	}
	if mat := lvl.MeshMaterial(&tree, 1); mat.Name != "moss" {
		t.Errorf("Expected moss on tree mesh 1, got %s", mat.Name)
	}
	if lvl.Vertices[0].Pos[2] != -1 {
		t.Errorf("Expected converted z -1, got %v", lvl.Vertices[0].Pos[2])
	}

	if pos := lvl.Transforms[lvl.Objects[1].TransformIndex].Col(3).Vec3(); !near3(pos, mgl32.Vec3{5, 0, 0}) {
		t.Errorf("Expected Rock.002 at (5, 0, 0), got %v", pos)
	}
	if cam, ok := lvl.Camera(); !ok || !near3(cam.Col(3).Vec3(), mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected camera at (0, 1, 0), got %v (%v)", cam.Col(3), ok)
	}

	st := lvl.Stats()
	if st.Bytes != 6*36+12*4 {
		t.Errorf("Expected %d geometry bytes, got %d", 6*36+12*4, st.Bytes)
	}
	if !strings.Contains(logs.String(), "Ghost") {
		t.Errorf("Expected the missing model to be logged, got:\n%s", logs.String())
	}
}

func TestLoadCompressedLevel(t *testing.T) {
	l, dir, _ := newTestLoader(t)
	writeFile(t, filepath.Join(l.ModelDir, "Rock.h2b"), encodeH2B(t, triangleModel()))
	path := filepath.Join(dir, "level.txt.zst")
	writeFile(t, path, compress(t, []byte(meshBlock("Rock", 1, 2, 3))))

	lvl, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(lvl.Objects) != 1 {
		t.Errorf("Expected 1 object, got %d", len(lvl.Objects))
	}
	if _, ok := lvl.Camera(); ok {
		t.Error("Expected no camera")
	}
}

func TestLoadEmptyLevel(t *testing.T) {
	l, dir, _ := newTestLoader(t)
	path := filepath.Join(dir, "level.txt")
	writeFile(t, path, []byte(meshBlock("Missing", 0, 0, 0)))

	_, err := l.Load(path)
	if !errors.Is(err, ErrEmptyLevel) {
		t.Errorf("Expected ErrEmptyLevel, got %v", err)
	}
}

func TestLoadMissingLevel(t *testing.T) {
	l, dir, _ := newTestLoader(t)
	_, err := l.Load(filepath.Join(dir, "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadBadModelIsSkipped(t *testing.T) {
	l, dir, logs := newTestLoader(t)
	writeFile(t, filepath.Join(l.ModelDir, "Rock.h2b"), []byte("garbage"))
	writeFile(t, filepath.Join(l.ModelDir, "Tree.h2b"), encodeH2B(t, triangleModel()))
	path := filepath.Join(dir, "level.txt")
	writeFile(t, path, []byte(meshBlock("Rock", 0, 0, 0)+meshBlock("Tree", 0, 0, 0)))

	lvl, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(lvl.Objects) != 1 || lvl.Objects[0].Name != "Tree" {
		t.Errorf("Expected only Tree, got %+v", lvl.Objects)
	}
	if !strings.Contains(logs.String(), "malformed h2b") {
		t.Errorf("Expected the bad model to be logged, got:\n%s", logs.String())
	}
}

func TestLoadShippedLevels(t *testing.T) {
	var logs bytes.Buffer
	l := &Loader{ModelDir: filepath.Join("..", "..", "assets", "models"), Log: log.New(&logs, "", 0)}

	lvl, err := l.Load(filepath.Join("..", "..", "assets", "levels", "GameLevel.txt"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st := lvl.Stats(); st.Objects != 11 || st.Models != 3 {
		t.Errorf("Expected 11 objects of 3 models, got %d of %d", st.Objects, st.Models)
	}
	if _, ok := lvl.Camera(); !ok {
		t.Error("Expected a camera")
	}
	want := mgl32.Vec3{-1, -1, -2}.Normalize()
	if dir, ok := lvl.Light(); !ok || dir.Sub(want).Len() > 1e-3 {
		t.Errorf("Expected the sun to shine along %v, got %v (%v)", want, dir, ok)
	}

	lvl, err = l.Load(filepath.Join("..", "..", "assets", "levels", "GameLevelTest.txt"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(lvl.Objects) != 14 {
		t.Errorf("Expected 14 objects, got %d", len(lvl.Objects))
	}
	if !strings.Contains(logs.String(), "model Statue not found") {
		t.Errorf("Expected the missing statue to be logged, got %q", logs.String())
	}
}
