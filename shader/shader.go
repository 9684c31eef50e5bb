package shader

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gocube/gpu"
)

// Uniform names used by the cube shaders.
const (
	UniformModel      = "model"
	UniformProjection = "projection"
	UniformTexture    = "imageTexture"
)

// Program is a linked vertex + fragment program.
type Program struct {
	dev       gpu.Device
	program   gpu.Handle
	locations map[string]int32
}

// Compile builds a program from the two sources. On failure every shader
// object created along the way is released and the *gpu.CompileError is
// returned.
func Compile(dev gpu.Device, vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := dev.CompileShader(gpu.StageVertex, vertexSource)
	if err != nil {
		return nil, err
	}
	fragmentShader, err := dev.CompileShader(gpu.StageFragment, fragmentSource)
	if err != nil {
		dev.DeleteShader(vertexShader)
		return nil, err
	}

	program, err := dev.LinkProgram(vertexShader, fragmentShader)
	dev.DeleteShader(vertexShader)
	dev.DeleteShader(fragmentShader)
	if err != nil {
		return nil, err
	}

	log.Printf("Linked shader program %d", program)
	return &Program{
		dev:       dev,
		program:   program,
		locations: make(map[string]int32),
	}, nil
}

// Activate makes the program current for draws and uniform uploads.
func (p *Program) Activate() {
	p.dev.UseProgram(p.program)
}

// location resolves name once. Unknown uniforms cache as -1.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.dev.UniformLocation(p.program, name)
	if loc < 0 {
		log.Printf("Warning: uniform %q not found in program %d", name, p.program)
	}
	p.locations[name] = loc
	return loc
}

// SetUniformMatrix uploads m to name. The program must be active.
func (p *Program) SetUniformMatrix(name string, m mgl32.Mat4) {
	loc := p.location(name)
	if loc < 0 {
		return
	}
	arr := [16]float32(m)
	p.dev.UniformMatrix4(loc, &arr)
}

// SetUniformInt uploads v to name; used to point a sampler at a texture unit.
func (p *Program) SetUniformInt(name string, v int32) {
	loc := p.location(name)
	if loc < 0 {
		return
	}
	p.dev.Uniform1i(loc, v)
}

// Destroy is safe on a nil or already destroyed Program.
func (p *Program) Destroy() {
	if p == nil || p.program == 0 {
		return
	}
	p.dev.DeleteProgram(p.program)
	p.program = 0
}

// LoadSources reads the vertex and fragment stage sources from fsys.
func LoadSources(fsys fs.FS, vertexPath, fragmentPath string) (vertex, fragment string, err error) {
	vs, err := fs.ReadFile(fsys, vertexPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read vertex shader: %w", err)
	}
	fsrc, err := fs.ReadFile(fsys, fragmentPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read fragment shader: %w", err)
	}
	return string(vs), string(fsrc), nil
}
