// Package assets carries the default shaders and texture inside the binary.
package assets

import "embed"

//go:embed shaders/vertex.txt shaders/fragment.txt gfx/uv_check.png
var FS embed.FS

// Paths of the embedded files, relative to FS.
const (
	VertexShader   = "shaders/vertex.txt"
	FragmentShader = "shaders/fragment.txt"
	Texture        = "gfx/uv_check.png"
)
