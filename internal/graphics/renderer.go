package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"grid-viewer/internal/camera"
	"grid-viewer/internal/scene"
)

// batchBuffers is the GPU side of one instanced batch. Instance colors live in a small
// RGBA texture the instanced shader reads with texelFetch(gl_InstanceID).
type batchBuffers struct {
	transforms []rl.Matrix
	colors     *scene.ColorTexture
	colorTex   rl.Texture2D
}

// Renderer draws a scene into an offscreen target on each tick. Present blits the last
// target every display frame, so a capped tick rate does not flicker on swap.
// GPU copies of geometry and textures are created on first draw and freed when the
// scene resource is disposed.
type Renderer struct {
	log *zap.Logger

	target    rl.RenderTexture2D
	hasTarget bool

	lambert     rl.Material
	instanced   rl.Material
	defaultTex  rl.Texture2D
	emissiveLoc int32
	instEmitLoc int32
	instUseLoc  int32

	meshes   map[*scene.BoxGeometry]rl.Mesh
	textures map[*scene.Texture]rl.Texture2D
	batches  map[*scene.InstancedMesh]*batchBuffers
}

// NewRenderer loads the shaders. Call after the window exists.
func NewRenderer(log *zap.Logger) *Renderer {
	r := &Renderer{
		log:      log,
		meshes:   make(map[*scene.BoxGeometry]rl.Mesh),
		textures: make(map[*scene.Texture]rl.Texture2D),
		batches:  make(map[*scene.InstancedMesh]*batchBuffers),
	}
	r.lambert = rl.LoadMaterialDefault()
	if albedo := r.lambert.GetMap(rl.MapAlbedo); albedo != nil {
		r.defaultTex = albedo.Texture
	}
	if s := loadLambertShader(); rl.IsShaderValid(s) {
		r.lambert.Shader = s
	} else {
		log.Warn("lambert shader failed to load; using raylib default")
	}
	r.instanced = rl.LoadMaterialDefault()
	if s := loadInstancedShader(); rl.IsShaderValid(s) {
		r.instanced.Shader = s
	} else {
		log.Warn("instanced shader failed to load; using raylib default")
	}
	r.emissiveLoc = rl.GetShaderLocation(r.lambert.Shader, "emissive")
	r.instEmitLoc = rl.GetShaderLocation(r.instanced.Shader, "emissive")
	r.instUseLoc = rl.GetShaderLocation(r.instanced.Shader, "useInstanceColor")
	return r
}

// SetSize recreates the offscreen target at the new drawable size.
func (r *Renderer) SetSize(width, height int) {
	if r.hasTarget {
		rl.UnloadRenderTexture(r.target)
		r.hasTarget = false
	}
	if width <= 0 || height <= 0 {
		return
	}
	r.target = rl.LoadRenderTexture(int32(width), int32(height))
	r.hasTarget = true
}

// Render draws s as seen by cam into the offscreen target.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Orthographic) {
	if !r.hasTarget {
		return
	}
	l := gatherLights(s)
	setLightUniforms(r.lambert.Shader, l)
	setLightUniforms(r.instanced.Shader, l)

	rl.BeginTextureMode(r.target)
	rl.ClearBackground(toColor(s.Background))
	rl.BeginMode3D(toCamera(cam))
	r.drawNode(s)
	rl.EnableBackfaceCulling()
	rl.EndMode3D()
	rl.EndTextureMode()
}

// Present draws the last rendered frame to the screen. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Present() {
	if !r.hasTarget {
		return
	}
	tex := r.target.Texture
	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	rl.DrawTextureRec(tex, src, rl.NewVector2(0, 0), rl.White)
}

// Close frees every GPU resource the renderer still holds.
func (r *Renderer) Close() {
	for im, b := range r.batches {
		b.release()
		delete(r.batches, im)
	}
	for g, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, g)
	}
	for t, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, t)
	}
	if r.hasTarget {
		rl.UnloadRenderTexture(r.target)
		r.hasTarget = false
	}
	rl.UnloadShader(r.lambert.Shader)
	rl.UnloadShader(r.instanced.Shader)
}

func (r *Renderer) drawNode(obj scene.Object) {
	n := obj.Base()
	if !n.Visible {
		return
	}
	switch o := obj.(type) {
	case *scene.Mesh:
		r.drawMesh(o)
	case *scene.InstancedMesh:
		r.drawInstanced(o)
	}
	for _, c := range n.Children() {
		r.drawNode(c)
	}
}

func (r *Renderer) drawMesh(m *scene.Mesh) {
	if m.Geometry == nil || m.Material == nil {
		return
	}
	mesh := r.mesh(m.Geometry)
	r.applyMaterial(&r.lambert, r.emissiveLoc, m.Material)
	rl.DrawMesh(mesh, r.lambert, toMatrix(m.WorldMatrix()))
}

func (r *Renderer) drawInstanced(im *scene.InstancedMesh) {
	if im.Geometry == nil || im.Material == nil || im.Count() == 0 {
		return
	}
	mesh := r.mesh(im.Geometry)
	b := r.batch(im)

	world := im.WorldMatrix()
	for i, m := range im.Matrices() {
		b.transforms[i] = toMatrix(world.Mul4(m))
	}

	use := float32(0)
	colorTex := r.defaultTex
	if ic := im.InstanceColors(); ic != nil {
		b.ensureColorTexture(ic.Len())
		if b.colors.Sync(ic) {
			rl.UpdateTexture(b.colorTex, b.colors.Pixels)
		}
		use = 1
		colorTex = b.colorTex
	}
	if r.instUseLoc >= 0 {
		rl.SetShaderValue(r.instanced.Shader, r.instUseLoc, []float32{use}, rl.ShaderUniformFloat)
	}
	r.applyMaterial(&r.instanced, r.instEmitLoc, im.Material)
	rl.SetMaterialTexture(&r.instanced, rl.MapMetalness, colorTex)
	rl.DrawMeshInstanced(mesh, r.instanced, b.transforms, im.Count())
}

// applyMaterial sets albedo color, emissive, texture and face culling for one draw.
func (r *Renderer) applyMaterial(mtl *rl.Material, emissiveLoc int32, m *scene.Material) {
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = toColor(m.Color)
	}
	if emissiveLoc >= 0 {
		e := [3]float32{m.Emissive.R, m.Emissive.G, m.Emissive.B}
		rl.SetShaderValueV(mtl.Shader, emissiveLoc, e[:], rl.ShaderUniformVec3, 1)
	}
	tex := r.defaultTex
	if m.Map != nil {
		tex = r.texture(m.Map)
	}
	rl.SetMaterialTexture(mtl, rl.MapAlbedo, tex)
	if m.Side == scene.DoubleSide {
		rl.DisableBackfaceCulling()
	} else {
		rl.EnableBackfaceCulling()
	}
}

// mesh returns the uploaded mesh for g, uploading it on first use.
func (r *Renderer) mesh(g *scene.BoxGeometry) rl.Mesh {
	if m, ok := r.meshes[g]; ok {
		return m
	}
	m := rl.GenMeshCube(g.Width, g.Height, g.Depth)
	r.meshes[g] = m
	g.OnDispose(func() {
		m := r.meshes[g]
		rl.UnloadMesh(&m)
		delete(r.meshes, g)
	})
	return m
}

// texture returns the uploaded texture for t, loading it on first use.
func (r *Renderer) texture(t *scene.Texture) rl.Texture2D {
	if tex, ok := r.textures[t]; ok {
		return tex
	}
	tex := rl.LoadTexture(t.Path)
	if !rl.IsTextureValid(tex) {
		r.log.Warn("texture failed to load", zap.String("path", t.Path))
		return r.defaultTex
	}
	r.textures[t] = tex
	t.OnDispose(func() {
		rl.UnloadTexture(r.textures[t])
		delete(r.textures, t)
	})
	return tex
}

// batch returns the GPU buffers for im, freed together with its geometry.
func (r *Renderer) batch(im *scene.InstancedMesh) *batchBuffers {
	if b, ok := r.batches[im]; ok {
		return b
	}
	b := &batchBuffers{transforms: make([]rl.Matrix, im.Count())}
	r.batches[im] = b
	im.Geometry.OnDispose(func() {
		b.release()
		delete(r.batches, im)
	})
	return b
}

// ensureColorTexture creates the color texture on first use. Its content is filled by
// the first ColorTexture.Sync.
func (b *batchBuffers) ensureColorTexture(n int) {
	if b.colors != nil {
		return
	}
	b.colors = scene.NewColorTexture(n)
	img := rl.GenImageColor(b.colors.Width, b.colors.Height, rl.Blank)
	b.colorTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(b.colorTex, rl.FilterPoint)
}

func (b *batchBuffers) release() {
	if b.colors != nil {
		rl.UnloadTexture(b.colorTex)
		b.colors = nil
	}
}

// gatherLights sums the ambient and hemisphere lights in s.
func gatherLights(s *scene.Scene) lights {
	l := lights{direction: [3]float32{0, 1, 0}}
	scene.Walk(s, func(obj scene.Object) {
		switch o := obj.(type) {
		case *scene.AmbientLight:
			for i, v := range rgb(o.Color) {
				l.ambient[i] += v * o.Intensity
			}
		case *scene.HemisphereLight:
			l.sky = scale3(rgb(o.SkyColor), o.Intensity)
			l.ground = scale3(rgb(o.GroundColor), o.Intensity)
			if d := o.WorldMatrix().Col(3).Vec3(); d.Len() > 0 {
				d = d.Normalize()
				l.direction = [3]float32{d.X(), d.Y(), d.Z()}
			}
		}
	})
	return l
}

func rgb(c scene.Color) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

func toColor(c scene.Color) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.NewColor(r, g, b, a)
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// toCamera maps the orthographic camera onto raylib's. Fovy is the visible height in
// world units for CameraOrthographic.
func toCamera(cam *camera.Orthographic) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(cam.Position),
		Target:     toVector3(cam.Target),
		Up:         toVector3(cam.SafeUp()),
		Fovy:       cam.ViewHeight(),
		Projection: rl.CameraOrthographic,
	}
}

// toMatrix converts a column-major mgl32 matrix. Both index elements as col*4+row.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}
