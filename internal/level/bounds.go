package level

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// boundsOf returns a sphere around the vertices, centred on their bounding box.
func boundsOf(verts []Vertex) Sphere {
	if len(verts) == 0 {
		return Sphere{}
	}
	lo, hi := verts[0].Pos, verts[0].Pos
	for _, v := range verts[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math32.Min(lo[i], v.Pos[i])
			hi[i] = math32.Max(hi[i], v.Pos[i])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	var r2 float32
	for _, v := range verts {
		d := v.Pos.Sub(center)
		r2 = math32.Max(r2, d.Dot(d))
	}
	return Sphere{Center: center, Radius: math32.Sqrt(r2)}
}

// Transform returns the sphere moved into the space of m. The radius grows
// with the largest axis scale of m so the result still encloses the geometry.
func (s Sphere) Transform(m mgl32.Mat4) Sphere {
	c := m.Mul4x1(s.Center.Vec4(1)).Vec3()
	scale := math32.Max(m.Col(0).Vec3().Len(), math32.Max(m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()))
	return Sphere{Center: c, Radius: s.Radius * scale}
}
