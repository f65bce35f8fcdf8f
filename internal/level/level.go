// Package level holds a loaded level in data-oriented form: every model's
// geometry is appended to shared vertex, index, material and mesh arrays, and
// the objects placed in the level refer to models and transforms by index.
package level

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the H2B vertex layout: position, texture coordinate and normal.
type Vertex struct {
	Pos    mgl32.Vec3
	UVW    mgl32.Vec3
	Normal mgl32.Vec3
}

// Attributes is the H2B material attribute block (OBJ/MTL style).
type Attributes struct {
	Kd        mgl32.Vec3 // diffuse
	D         float32    // dissolve
	Ks        mgl32.Vec3 // specular
	Ns        float32    // specular exponent
	Ka        mgl32.Vec3 // ambient
	Sharpness float32
	Tf        mgl32.Vec3 // transmission filter
	Ni        float32    // optical density
	Ke        mgl32.Vec3 // emissive
	Illum     uint32
}

// MaterialMaps names the texture maps of a material. Empty means unset.
type MaterialMaps struct {
	Kd, Ks, Ka, Ke, Ns, D, Disp, Decal, Bump string
}

type Material struct {
	Name  string
	Attributes
	Maps MaterialMaps
}

// Mesh is a named index range of a model. IndexOffset is relative to the
// owning model's first index and MaterialIndex to its first material.
type Mesh struct {
	Name          string
	IndexCount    uint32
	IndexOffset   uint32
	MaterialIndex uint32
}

// Model is one distinct H2B file's slice of the shared level arrays.
type Model struct {
	Name          string
	File          string
	VertexStart   int
	VertexCount   int
	IndexStart    int
	IndexCount    int
	MaterialStart int
	MaterialCount int
	MeshStart     int
	MeshCount     int
	Bounds        Sphere
}

// Object is one placement of a model in the level.
type Object struct {
	Name           string
	ModelIndex     int
	TransformIndex int
}

// Named is a named transform, used for cameras and lights.
type Named struct {
	Name      string
	Transform mgl32.Mat4
}

type Level struct {
	Path       string
	Vertices   []Vertex
	Indices    []uint32
	Materials  []Material
	Meshes     []Mesh
	Models     []Model
	Transforms []mgl32.Mat4
	Objects    []Object
	Cameras    []Named
	Lights     []Named
}

type Stats struct {
	Objects   int
	Models    int
	Meshes    int
	Materials int
	Vertices  int
	Indices   int
	Bytes     uint64
}

func (l *Level) Stats() Stats {
	return Stats{
		Objects:   len(l.Objects),
		Models:    len(l.Models),
		Meshes:    len(l.Meshes),
		Materials: len(l.Materials),
		Vertices:  len(l.Vertices),
		Indices:   len(l.Indices),
		Bytes: uint64(len(l.Vertices))*uint64(unsafe.Sizeof(Vertex{})) +
			uint64(len(l.Indices))*4,
	}
}

// MeshMaterial returns the material drawn with mesh j of model m. It follows
// the mesh's own MaterialIndex rather than pairing mesh j with material j,
// so models whose meshes reuse or reorder materials draw correctly.
func (l *Level) MeshMaterial(m *Model, j int) *Material {
	mesh := &l.Meshes[m.MeshStart+j]
	return &l.Materials[m.MaterialStart+int(mesh.MaterialIndex)]
}

// Light returns the direction the first light in the level shines along:
// its local -Z axis in Blender terms, which is -Y after conversion.
func (l *Level) Light() (mgl32.Vec3, bool) {
	if len(l.Lights) == 0 {
		return mgl32.Vec3{}, false
	}
	dir := l.Lights[0].Transform.Col(1).Vec3().Mul(-1)
	if dir.Len() == 0 {
		return mgl32.Vec3{}, false
	}
	return dir.Normalize(), true
}

// Camera returns the first camera placed in the level, if any.
func (l *Level) Camera() (mgl32.Mat4, bool) {
	if len(l.Cameras) == 0 {
		return mgl32.Ident4(), false
	}
	return l.Cameras[0].Transform, true
}
