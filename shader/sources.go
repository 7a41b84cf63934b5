package shader

// Embedded fallbacks for the fullscreen warp pair. The on-disk assets under
// assets/shaders carry the same sources and take precedence when present.

const vertexShaderSource = `#version 110
attribute vec2 vPosition;
varying vec2 vUV;
void main() {
    vUV = vPosition * 0.5 + 0.5;
    gl_Position = vec4(vPosition, 0.0, 1.0);
}
`

// Dome alignment pattern: concentric rings and radial spokes inside the
// unit circle, black outside. Used to line up the projector before a real
// warp shader is dropped into the shader directory.
const fragmentShaderSource = `#version 110
varying vec2 vUV;

#define PI 3.14159265358979

void main() {
    vec2 p = vUV * 2.0 - 1.0;
    float r = length(p);
    float a = atan(p.y, p.x);

    float ring  = step(0.92, fract(r * 10.0));
    float spoke = step(0.96, fract(a * 24.0 / (2.0 * PI)));
    float inside = 1.0 - step(1.0, r);

    vec3 c = vec3(max(ring, spoke)) * inside;
    gl_FragColor = vec4(c, 1.0);
}
`

func defaultSource(name string) string {
	switch name {
	case VertexAsset:
		return vertexShaderSource
	case FragmentAsset:
		return fragmentShaderSource
	}
	return ""
}
