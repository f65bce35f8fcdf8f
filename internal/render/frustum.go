package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// ExtractFrustum extracts frustum planes from a projection*view matrix
// Uses the Gribb/Hartmann method for plane extraction
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	var f Frustum
	f.planes[0] = planeFrom(r3.Add(r0)) // Left: row4 + row1
	f.planes[1] = planeFrom(r3.Sub(r0)) // Right: row4 - row1
	f.planes[2] = planeFrom(r3.Add(r1)) // Bottom: row4 + row2
	f.planes[3] = planeFrom(r3.Sub(r1)) // Top: row4 - row2
	f.planes[4] = planeFrom(r3.Add(r2)) // Near: row4 + row3
	f.planes[5] = planeFrom(r3.Sub(r2)) // Far: row4 - row3
	return f
}

// planeFrom builds a normalized plane from its equation coefficients
func planeFrom(v mgl32.Vec4) Plane {
	n := v.Vec3()
	length := math32.Sqrt(n.Dot(n))
	if length == 0 {
		return Plane{Normal: n, Distance: v[3]}
	}
	return Plane{Normal: n.Mul(1 / length), Distance: v[3] / length}
}

// Planes returns the left, right, bottom, top, near and far planes.
func (f *Frustum) Planes() [6]Plane { return f.planes }

// ContainsSphere tests if a sphere is inside or intersects the frustum
// Returns true if the sphere should be rendered
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for i := 0; i < 6; i++ {
		// If sphere is completely behind any plane, it's outside
		if f.planes[i].Normal.Dot(center)+f.planes[i].Distance < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point mgl32.Vec3) bool {
	for i := 0; i < 6; i++ {
		if f.planes[i].Normal.Dot(point)+f.planes[i].Distance < 0 {
			return false
		}
	}
	return true
}
