package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// loadLambertShader returns the shader for single meshes: ambient + hemisphere diffuse with an
// emissive term. Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLambertShader() rl.Shader {
	return rl.LoadShaderFromMemory(lambertVS, lambertFS)
}

// loadInstancedShader returns the Lambert shader for DrawMeshInstanced. raylib binds the
// four instance matrix columns starting at the MatrixModel location, so that slot must
// point at the instanceTransform attribute. Instance colors come from the texture bound
// as the metalness map (texture1).
func loadInstancedShader() rl.Shader {
	s := rl.LoadShaderFromMemory(instancedVS, lambertFS)
	if !rl.IsShaderValid(s) {
		return s
	}
	s.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(s, "instanceTransform"))
	s.UpdateLocation(rl.ShaderLocMapMetalness, rl.GetShaderLocation(s, "texture1"))
	return s
}

const (
	lambertVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec2 fragTexCoord;
out vec3 fragNormal;
out vec3 fragColor;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  fragColor = vec3(1.0);
  gl_Position = matProjection * matView * worldPos;
}
`
	instancedVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in mat4 instanceTransform;
uniform mat4 mvp;
uniform float useInstanceColor;
uniform sampler2D texture1;
out vec2 fragTexCoord;
out vec3 fragNormal;
out vec3 fragColor;
void main() {
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(instanceTransform) * vertexNormal;
  fragColor = vec3(1.0);
  if (useInstanceColor > 0.5) {
    int w = textureSize(texture1, 0).x;
    fragColor = texelFetch(texture1, ivec2(gl_InstanceID % w, gl_InstanceID / w), 0).rgb;
  }
  gl_Position = mvp * instanceTransform * vec4(vertexPosition, 1.0);
}
`
	// lambertFS: albedo texture * colDiffuse * per-vertex color, lit by ambient + hemisphere.
	// Back faces flip the normal so double-sided materials shade both sides.
	lambertFS = `#version 330
in vec2 fragTexCoord;
in vec3 fragNormal;
in vec3 fragColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 emissive;
uniform vec3 ambientLight;
uniform vec3 skyColor;
uniform vec3 groundColor;
uniform vec3 hemiDirection;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) N = -N;
  float w = 0.5 * dot(N, hemiDirection) + 0.5;
  vec3 irradiance = ambientLight + mix(groundColor, skyColor, w);
  vec3 base = tint.rgb * fragColor;
  finalColor = vec4(base * irradiance + emissive, tint.a);
}
`
)

// lights is the per-frame lighting state gathered from the scene.
type lights struct {
	ambient   [3]float32
	sky       [3]float32
	ground    [3]float32
	direction [3]float32
}

// setLightUniforms uploads l to shader (cgo-safe: local arrays).
func setLightUniforms(shader rl.Shader, l lights) {
	if !rl.IsShaderValid(shader) {
		return
	}
	for _, u := range []struct {
		name string
		v    [3]float32
	}{
		{"ambientLight", l.ambient},
		{"skyColor", l.sky},
		{"groundColor", l.ground},
		{"hemiDirection", l.direction},
	} {
		v := u.v
		if loc := rl.GetShaderLocation(shader, u.name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
		}
	}
}
