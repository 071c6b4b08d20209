package shaders

import (
	"strings"

	"orrery/core"
)

type programSource struct {
	vertex   string
	fragment string
	attribs  []string
	uniforms []string
}

func attribIdent(name string) string  { return "a_" + name }
func uniformIdent(name string) string { return "u_" + name }

// Source returns the GLSL pair for v
func Source(v Variant) (vertex, fragment string, ok bool) {
	src, ok := sources[v]
	return src.vertex, src.fragment, ok
}

// Declared returns the semantic attributes and uniforms of v
func Declared(v Variant) (attribs, uniforms []string) {
	src := sources[v]
	return src.attribs, src.uniforms
}

var sources = map[Variant]programSource{
	UnlitTextured: {
		vertex:   unlitTexturedVertexShader,
		fragment: unlitTexturedFragmentShader,
		attribs:  []string{Position, TexCoord},
		uniforms: []string{MVP, Texture},
	},
	UnlitColored: {
		vertex:   unlitColoredVertexShader,
		fragment: unlitColoredFragmentShader,
		attribs:  []string{Position},
		uniforms: []string{MVP, Color},
	},
	PhongTextured: {
		vertex:   phongVertexShader,
		fragment: phongFragmentShader,
		attribs:  []string{Position, Normal, TexCoord},
		uniforms: []string{MVP, ModelView, NormalMat, LightPos, CameraPos, Texture},
	},
	AnimatedWave: {
		vertex:   waveVertexShader(),
		fragment: waveFragmentShader,
		attribs:  []string{Position, Normal},
		uniforms: []string{MVP, Time},
	},
	OverlayRect: {
		vertex:   overlayVertexShader,
		fragment: overlayFragmentShader,
		uniforms: []string{Offset, RectSize, ScreenSize, Color},
	},
}

// The overlay draws a 4 vertex strip from an empty VAO, corners come from
// gl_VertexID
const overlayVertexShader = `#version 410 core

const vec2 corners[4] = vec2[](
    vec2(0.0, 0.0),
    vec2(1.0, 0.0),
    vec2(0.0, 1.0),
    vec2(1.0, 1.0)
);

uniform vec2 u_offset;
uniform vec2 u_size;
uniform vec2 u_screenSize;

void main() {
    vec2 pixelPos = u_offset + corners[gl_VertexID] * u_size;
    vec2 ndcPos = (pixelPos / u_screenSize) * 2.0 - 1.0;
    ndcPos.y = -ndcPos.y; // Flip Y for top-left origin
    gl_Position = vec4(ndcPos, 0.0, 1.0);
}
`

const overlayFragmentShader = `#version 410 core

uniform vec4 u_color;

out vec4 outColor;

void main() {
    outColor = u_color;
}
`

const unlitTexturedVertexShader = `#version 410 core

in vec3 a_position;
in vec2 a_texCoord;

uniform mat4 u_mvpMatrix;

out vec2 v_texCoord;

void main() {
    v_texCoord = a_texCoord;
    gl_Position = u_mvpMatrix * vec4(a_position, 1.0);
}
`

const unlitTexturedFragmentShader = `#version 410 core

in vec2 v_texCoord;

uniform sampler2D u_texture;

out vec4 outColor;

void main() {
    outColor = texture(u_texture, v_texCoord);
}
`

const unlitColoredVertexShader = `#version 410 core

in vec3 a_position;

uniform mat4 u_mvpMatrix;

void main() {
    gl_Position = u_mvpMatrix * vec4(a_position, 1.0);
}
`

const unlitColoredFragmentShader = `#version 410 core

uniform vec4 u_color;

out vec4 outColor;

void main() {
    outColor = u_color;
}
`

// Lighting happens in view space
const phongVertexShader = `#version 410 core

in vec3 a_position;
in vec3 a_normal;
in vec2 a_texCoord;

uniform mat4 u_mvpMatrix;
uniform mat4 u_modelViewMatrix;
uniform mat4 u_normalMatrix;

out vec3 v_position;
out vec3 v_normal;
out vec2 v_texCoord;

void main() {
    v_position = vec3(u_modelViewMatrix * vec4(a_position, 1.0));
    v_normal = normalize(mat3(u_normalMatrix) * a_normal);
    v_texCoord = a_texCoord;
    gl_Position = u_mvpMatrix * vec4(a_position, 1.0);
}
`

const phongFragmentShader = `#version 410 core

in vec3 v_position;
in vec3 v_normal;
in vec2 v_texCoord;

uniform vec3 u_lightPos;
uniform vec3 u_cameraPos;
uniform sampler2D u_texture;

out vec4 outColor;

const float ambientStrength = 0.1;
const float diffuseStrength = 1.0;
const float specularStrength = 1.0;
const float shininess = 64.0;

void main() {
    vec4 texel = texture(u_texture, v_texCoord);

    vec3 normal = normalize(v_normal);
    vec3 lightDir = normalize(u_lightPos - v_position);
    vec3 viewDir = normalize(u_cameraPos - v_position);
    vec3 reflectDir = reflect(-lightDir, normal);

    float diff = max(dot(normal, lightDir), 0.0) * diffuseStrength;
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), shininess) * specularStrength;

    // texture modulates the diffuse term only
    vec3 color = vec3(ambientStrength) + diff * texel.rgb + vec3(spec);
    outColor = vec4(color, texel.a);
}
`

// waveVertexShader displaces the sphere with the same travelling waves
// core.WaveHeight evaluates on the CPU
func waveVertexShader() string {
	terms := make([]string, len(core.WaterWaves))
	for i, w := range core.WaterWaves {
		terms[i] = w.GLSL("a_position", "u_time")
	}

	return `#version 410 core

in vec3 a_position;
in vec3 a_normal;

uniform mat4 u_mvpMatrix;
uniform float u_time;

out vec3 v_normal;
out vec3 v_position;

void main() {
    float waveHeight = ` + strings.Join(terms, " +\n        ") + `;

    vec3 position = a_position;
    position.y += waveHeight;

    v_normal = a_normal;
    v_position = position;
    gl_Position = u_mvpMatrix * vec4(position, 1.0);
}
`
}

const waveFragmentShader = `#version 410 core

in vec3 v_normal;
in vec3 v_position;

uniform float u_time;

out vec4 outColor;

const vec3 lightDir = normalize(vec3(0.5, 1.0, 0.3));
const vec3 lightColor = vec3(1.0, 1.0, 1.0);
const vec3 waterColor = vec3(0.0, 0.3, 0.6);

void main() {
    vec3 normal = normalize(v_normal);
    vec3 viewDir = normalize(-v_position);

    float diff = max(dot(normal, lightDir), 0.0);
    vec3 diffuse = waterColor * diff;

    vec3 reflectDir = reflect(-lightDir, normal);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), 32.0);
    vec3 specular = lightColor * spec * 0.5;

    // depth tint rides on the displaced height
    float depthEffect = 0.05 * sin(v_position.y * 15.0 + u_time * 0.5);
    vec3 depthWaterColor = waterColor + vec3(0.0, depthEffect, depthEffect * 0.6);

    outColor = vec4(mix(depthWaterColor, diffuse, diff) + specular, 1.0);
}
`
