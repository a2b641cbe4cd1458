package shader

// LitVertex transforms positions and normals into world space.
const LitVertex = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
}
`

// LitFragment shades a flat color with one directional light. Back faces
// are lit with the flipped normal so open level geometry reads from both
// sides.
const LitFragment = `
#version 410 core

in vec3 vNormal;

uniform vec3 uColor;
uniform vec3 uLightDir;
uniform vec3 uLightColor;
uniform float uAmbient;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	float diffuse = max(dot(n, normalize(uLightDir)), 0.0);
	float k = min(uAmbient + (1.0 - uAmbient) * diffuse, 1.0);
	FragColor = vec4(uColor * uLightColor * k, 1.0);
}
`
