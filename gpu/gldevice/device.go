package gldevice

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gocube/gpu"
)

// gl.Init must only run once per process.
var glInitOnce sync.Once

// Device issues gpu.Device calls against the OpenGL 4.1 core profile.
type Device struct{}

func New() *Device {
	return &Device{}
}

func (d *Device) Init() error {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	return nil
}

func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Enable(c gpu.Capability) {
	switch c {
	case gpu.DepthTest:
		gl.Enable(gl.DEPTH_TEST)
	case gpu.Blend:
		gl.Enable(gl.BLEND)
	}
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (d *Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.DepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) NewVertexArray() (gpu.Handle, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("glGenVertexArrays returned no name (error 0x%x)", gl.GetError())
	}
	return gpu.Handle(vao), nil
}

func (d *Device) BindVertexArray(h gpu.Handle) {
	gl.BindVertexArray(uint32(h))
}

func (d *Device) DeleteVertexArray(h gpu.Handle) {
	vao := uint32(h)
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) NewBuffer() (gpu.Handle, error) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, fmt.Errorf("glGenBuffers returned no name (error 0x%x)", gl.GetError())
	}
	return gpu.Handle(vbo), nil
}

func (d *Device) BindArrayBuffer(h gpu.Handle) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
}

func (d *Device) BufferData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) VertexAttrib(index uint32, size, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (d *Device) DeleteBuffer(h gpu.Handle) {
	vbo := uint32(h)
	gl.DeleteBuffers(1, &vbo)
}

func (d *Device) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (d *Device) NewTexture() (gpu.Handle, error) {
	var tex uint32
	gl.GenTextures(1, &tex)
	if tex == 0 {
		return 0, fmt.Errorf("glGenTextures returned no name (error 0x%x)", gl.GetError())
	}
	return gpu.Handle(tex), nil
}

func (d *Device) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *Device) BindTexture2D(h gpu.Handle) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}

func (d *Device) TexParameter(p gpu.TexParam, v gpu.TexValue) {
	gl.TexParameteri(gl.TEXTURE_2D, texParam(p), texValue(v))
}

func (d *Device) TexImage2D(width, height int32, pixels []byte) {
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
}

func (d *Device) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (d *Device) DeleteTexture(h gpu.Handle) {
	tex := uint32(h)
	gl.DeleteTextures(1, &tex)
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (gpu.Handle, error) {
	var shaderType uint32
	switch stage {
	case gpu.StageVertex:
		shaderType = gl.VERTEX_SHADER
	case gpu.StageFragment:
		shaderType = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("cannot compile a %s stage", stage)
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, &gpu.CompileError{Stage: stage, Log: strings.TrimRight(logText, "\x00")}
	}
	return gpu.Handle(shader), nil
}

func (d *Device) DeleteShader(h gpu.Handle) {
	gl.DeleteShader(uint32(h))
}

func (d *Device) LinkProgram(vertex, fragment gpu.Handle) (gpu.Handle, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &gpu.CompileError{Stage: gpu.StageLink, Log: strings.TrimRight(log, "\x00")}
	}
	gl.DetachShader(program, uint32(vertex))
	gl.DetachShader(program, uint32(fragment))
	return gpu.Handle(program), nil
}

func (d *Device) UseProgram(h gpu.Handle) {
	gl.UseProgram(uint32(h))
}

func (d *Device) UniformLocation(program gpu.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

// UniformMatrix4 uploads m untransposed; mgl32 matrices are already column-major.
func (d *Device) UniformMatrix4(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Device) DeleteProgram(h gpu.Handle) {
	gl.DeleteProgram(uint32(h))
}

func blendFactor(f gpu.BlendFactor) uint32 {
	switch f {
	case gpu.SrcAlpha:
		return gl.SRC_ALPHA
	case gpu.OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gpu.One:
		return gl.ONE
	default:
		return gl.ZERO
	}
}

func texParam(p gpu.TexParam) uint32 {
	switch p {
	case gpu.WrapS:
		return gl.TEXTURE_WRAP_S
	case gpu.WrapT:
		return gl.TEXTURE_WRAP_T
	case gpu.MinFilter:
		return gl.TEXTURE_MIN_FILTER
	default:
		return gl.TEXTURE_MAG_FILTER
	}
}

func texValue(v gpu.TexValue) int32 {
	switch v {
	case gpu.Repeat:
		return gl.REPEAT
	case gpu.ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gpu.Nearest:
		return gl.NEAREST
	case gpu.LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}
