package viewer

// Shader sources for presenting the resolved frame

// Vertex shader for the fullscreen quad
const presentVertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
}
`

// Fragment shader: the frame is already gamma corrected, so it is copied
// through. The border tint marks a camera that is still moving.
const presentFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D frameTexture;
uniform float moving;

void main() {
    vec4 color = texture(frameTexture, TexCoord);

    vec2 edge = min(TexCoord, 1.0 - TexCoord);
    float border = step(min(edge.x, edge.y), 0.004) * moving;

    FragColor = vec4(mix(color.rgb, vec3(0.9, 0.6, 0.1), border), 1.0);
}
`
