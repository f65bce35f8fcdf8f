package platform

import (
	"fmt"
	"log"
	"runtime"

	"levelrenderer/internal/hud"
	"levelrenderer/internal/level"
	"levelrenderer/internal/render"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type materialLocs struct {
	kd, d, ks, ns, ka, sharpness, tf, ni, ke int32
}

// Device draws through raylib. Each level mesh becomes its own GPU mesh so
// draws can go through rl.DrawMesh with the level shader bound.
type Device struct {
	shader   rl.Shader
	material rl.Material
	textures []rl.Texture2D
	meshes   []rl.Mesh

	lightDirection, lightColor, sunAmbient, cameraPosition int32
	mat                                                    materialLocs

	wireframe bool
	scissored bool
}

// NewDevice compiles the level shader. textures are indexed by sprite
// texture id; zero entries are skipped when drawn.
func NewDevice(src render.ShaderSources, textures []rl.Texture2D) (*Device, error) {
	shader := rl.LoadShaderFromMemory(src.Vertex, src.Fragment)
	if !rl.IsShaderValid(shader) {
		return nil, render.ErrShaderCompile
	}
	d := &Device{
		shader:   shader,
		textures: textures,
	}
	d.lightDirection = rl.GetShaderLocation(shader, "lightDirection")
	d.lightColor = rl.GetShaderLocation(shader, "lightColor")
	d.sunAmbient = rl.GetShaderLocation(shader, "sunAmbient")
	d.cameraPosition = rl.GetShaderLocation(shader, "cameraPosition")
	d.mat = materialLocs{
		kd:        rl.GetShaderLocation(shader, "material.Kd"),
		d:         rl.GetShaderLocation(shader, "material.d"),
		ks:        rl.GetShaderLocation(shader, "material.Ks"),
		ns:        rl.GetShaderLocation(shader, "material.Ns"),
		ka:        rl.GetShaderLocation(shader, "material.Ka"),
		sharpness: rl.GetShaderLocation(shader, "material.sharpness"),
		tf:        rl.GetShaderLocation(shader, "material.Tf"),
		ni:        rl.GetShaderLocation(shader, "material.Ni"),
		ke:        rl.GetShaderLocation(shader, "material.Ke"),
	}
	d.material = rl.LoadMaterialDefault()
	d.material.Shader = shader
	return d, nil
}

func (d *Device) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// UploadLevel builds every GPU mesh of lvl before releasing the current
// ones, so a failed upload leaves the level on screen untouched.
func (d *Device) UploadLevel(lvl *level.Level) error {
	meshes := make([]rl.Mesh, 0, len(lvl.Meshes))
	for i := range lvl.Models {
		model := &lvl.Models[i]
		for j := 0; j < model.MeshCount; j++ {
			mesh := &lvl.Meshes[model.MeshStart+j]
			m, err := uploadMesh(lvl, model, mesh)
			if err != nil {
				unloadMeshes(meshes)
				return fmt.Errorf("model %s: %w", model.Name, err)
			}
			meshes = append(meshes, m)
		}
	}
	unloadMeshes(d.meshes)
	d.meshes = meshes
	log.Printf("Device: uploaded %d meshes", len(meshes))
	return nil
}

// unloadMeshes frees the GPU buffers of every uploaded mesh. Placeholders
// for empty meshes own nothing.
func unloadMeshes(meshes []rl.Mesh) {
	for i := range meshes {
		if meshes[i].VaoID != 0 {
			rl.UnloadMesh(&meshes[i])
		}
	}
}

// uploadMesh copies one mesh into GPU buffers. An empty mesh yields a zero
// placeholder so GPU meshes stay aligned with level mesh indices.
func uploadMesh(lvl *level.Level, model *level.Model, mesh *level.Mesh) (rl.Mesh, error) {
	start := model.IndexStart + int(mesh.IndexOffset)
	src := lvl.Indices[start : start+int(mesh.IndexCount)]
	if len(src) == 0 {
		return rl.Mesh{}, nil
	}

	order, indices := render.Index16(src, uint32(model.VertexStart))
	positions := make([]float32, 0, len(order)*3)
	texcoords := make([]float32, 0, len(order)*2)
	normals := make([]float32, 0, len(order)*3)
	for _, g := range order {
		v := &lvl.Vertices[g]
		positions = append(positions, v.Pos[0], v.Pos[1], v.Pos[2])
		texcoords = append(texcoords, v.UVW[0], v.UVW[1])
		normals = append(normals, v.Normal[0], v.Normal[1], v.Normal[2])
	}

	var pin runtime.Pinner
	defer pin.Unpin()
	m := rl.Mesh{
		VertexCount:   int32(len(order)),
		TriangleCount: int32(len(src) / 3),
		Vertices:      &positions[0],
		Texcoords:     &texcoords[0],
		Normals:       &normals[0],
	}
	pin.Pin(m.Vertices)
	pin.Pin(m.Texcoords)
	pin.Pin(m.Normals)
	if indices != nil {
		m.Indices = &indices[0]
		pin.Pin(m.Indices)
	}
	rl.UploadMesh(&m, false)

	// The buffers live on the GPU now; raylib must not free Go memory.
	m.Vertices, m.Texcoords, m.Normals, m.Indices = nil, nil, nil, nil
	if m.VaoID == 0 {
		return rl.Mesh{}, fmt.Errorf("mesh %s: vertex array not created", mesh.Name)
	}
	return m, nil
}

func (d *Device) ReleaseLevel() {
	unloadMeshes(d.meshes)
	d.meshes = nil
}

func (d *Device) SetViewport(vp render.Viewport) {
	rl.DrawRenderBatchActive()
	rl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
}

func (d *Device) SetWireframe(on bool) {
	if on == d.wireframe {
		return
	}
	d.wireframe = on
	rl.DrawRenderBatchActive()
	if on {
		rl.EnableWireMode()
		rl.DisableBackfaceCulling()
	} else {
		rl.DisableWireMode()
		rl.EnableBackfaceCulling()
	}
}

// BeginScene enters raylib's 3D mode and replaces its matrices with the
// scene's own, so DrawMesh feeds them to matView and matProjection.
func (d *Device) BeginScene(sc *render.SceneConstants) {
	rl.BeginMode3D(rl.Camera3D{
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       65,
		Projection: rl.CameraPerspective,
	})
	rl.SetMatrixProjection(toMatrix(sc.Projection))
	rl.SetMatrixModelview(toMatrix(sc.View))

	rl.SetShaderValue(d.shader, d.lightDirection, vec4(sc.LightDirection), rl.ShaderUniformVec4)
	rl.SetShaderValue(d.shader, d.lightColor, vec4(sc.LightColor), rl.ShaderUniformVec4)
	rl.SetShaderValue(d.shader, d.sunAmbient, vec4(sc.SunAmbient), rl.ShaderUniformVec4)
	rl.SetShaderValue(d.shader, d.cameraPosition, vec4(sc.CameraPosition), rl.ShaderUniformVec4)
}

func (d *Device) DrawIndexed(call render.DrawCall, mc *render.MeshConstants) {
	if call.Mesh < 0 || call.Mesh >= len(d.meshes) || d.meshes[call.Mesh].VaoID == 0 {
		return
	}
	a := &mc.Material
	rl.SetShaderValue(d.shader, d.mat.kd, vec3(a.Kd), rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, d.mat.d, []float32{a.D}, rl.ShaderUniformFloat)
	rl.SetShaderValue(d.shader, d.mat.ks, vec3(a.Ks), rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, d.mat.ns, []float32{a.Ns}, rl.ShaderUniformFloat)
	rl.SetShaderValue(d.shader, d.mat.ka, vec3(a.Ka), rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, d.mat.sharpness, []float32{a.Sharpness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(d.shader, d.mat.tf, vec3(a.Tf), rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, d.mat.ni, []float32{a.Ni}, rl.ShaderUniformFloat)
	rl.SetShaderValue(d.shader, d.mat.ke, vec3(a.Ke), rl.ShaderUniformVec3)
	rl.DrawMesh(d.meshes[call.Mesh], d.material, toMatrix(mc.World))
}

func (d *Device) EndScene() {
	rl.EndMode3D()
	rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))
}

func (d *Device) Begin2D() {
	rl.BeginBlendMode(rl.BlendAlpha)
}

// DrawSprite maps the sprite's normalized device rectangle to window pixels.
// Device space is y-up, so the rotation flips sign on raylib's screen.
func (d *Device) DrawSprite(s *render.SpriteDraw) {
	if s.Texture < 0 || s.Texture >= len(d.textures) || d.textures[s.Texture].ID == 0 {
		return
	}
	tex := d.textures[s.Texture]
	w, h := d.Size()
	fw, fh := float32(w), float32(h)

	ps := s.Constants.PosScale
	cx := (ps[0] + 1) / 2 * fw
	cy := (1 - ps[1]) / 2 * fh
	hw := math32.Abs(ps[2]) * fw / 2
	hh := math32.Abs(ps[3]) * fh / 2

	source := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	if !s.Source.Empty() {
		source = rl.NewRectangle(s.Source.X, s.Source.Y, s.Source.W, s.Source.H)
	}
	if ps[2] < 0 {
		source.Width = -source.Width
	}
	if ps[3] < 0 {
		source.Height = -source.Height
	}

	d.scissor(s.Scissor)
	rl.DrawTexturePro(tex, source,
		rl.NewRectangle(cx, cy, hw*2, hh*2),
		rl.NewVector2(hw, hh),
		-s.Constants.RotationDepth[0]*rl.Rad2deg,
		rl.White)
}

func (d *Device) scissor(r hud.Rect) {
	if r.Empty() {
		if d.scissored {
			rl.EndScissorMode()
			d.scissored = false
		}
		return
	}
	if d.scissored {
		rl.EndScissorMode()
	}
	rl.BeginScissorMode(int32(r.X), int32(r.Y), int32(r.W), int32(r.H))
	d.scissored = true
}

func (d *Device) End2D() {
	d.scissor(hud.Rect{})
	rl.EndBlendMode()
}

// Close frees the GPU meshes and the shader. Textures belong to the caller.
func (d *Device) Close() {
	d.ReleaseLevel()
	rl.UnloadMaterial(d.material)
}
