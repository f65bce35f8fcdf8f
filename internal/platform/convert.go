package platform

import (
	"github.com/go-gl/mathgl/mgl32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// toMatrix converts a column-major mgl32 matrix to raylib's layout, where
// Mn is also the n-th element in column-major order.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func vec3(v mgl32.Vec3) []float32 { return []float32{v[0], v[1], v[2]} }

func vec4(v mgl32.Vec4) []float32 { return []float32{v[0], v[1], v[2], v[3]} }
