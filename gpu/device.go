// Package gpu defines the GL-shaped surface every component draws through.
// The enums are owned here so packages above it never import cgo bindings.
package gpu

import "fmt"

// Handle is an opaque object name issued by the driver. Zero is never a live handle.
type Handle uint32

// Capability is a server-side feature toggled with Enable.
type Capability int

const (
	DepthTest Capability = iota
	Blend
)

// BlendFactor is a source or destination factor for BlendFunc.
type BlendFactor int

const (
	SrcAlpha BlendFactor = iota
	OneMinusSrcAlpha
	One
	Zero
)

// ClearMask selects the buffers Clear resets.
type ClearMask int

const (
	ColorBuffer ClearMask = 1 << iota
	DepthBuffer
)

// TexParam names a 2D texture parameter.
type TexParam int

const (
	WrapS TexParam = iota
	WrapT
	MinFilter
	MagFilter
)

// TexValue is a wrap mode or filter assigned to a TexParam.
type TexValue int

const (
	Repeat TexValue = iota
	ClampToEdge
	Nearest
	Linear
	LinearMipmapLinear
)

// Stage identifies a step in building a program.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageLink
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// CompileError reports a shader stage that failed to compile, or a failed link.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("failed to link program: %s", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// Device is the set of GL calls the renderer makes. All methods must be called
// from the thread that owns the current context.
type Device interface {
	// Init loads the function pointers for the current context.
	Init() error
	Version() string

	ClearColor(r, g, b, a float32)
	Enable(c Capability)
	BlendFunc(src, dst BlendFactor)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)

	NewVertexArray() (Handle, error)
	BindVertexArray(h Handle)
	DeleteVertexArray(h Handle)
	NewBuffer() (Handle, error)
	BindArrayBuffer(h Handle)
	// BufferData uploads data as STATIC_DRAW into the bound array buffer.
	BufferData(data []float32)
	// VertexAttrib enables attribute index and points it at size floats,
	// offset bytes into each stride-byte vertex.
	VertexAttrib(index uint32, size, stride int32, offset int)
	DeleteBuffer(h Handle)
	DrawTriangles(first, count int32)

	NewTexture() (Handle, error)
	ActiveTexture(unit uint32)
	BindTexture2D(h Handle)
	TexParameter(p TexParam, v TexValue)
	// TexImage2D uploads RGBA8 pixels into level 0 of the bound texture.
	TexImage2D(width, height int32, pixels []byte)
	GenerateMipmap()
	DeleteTexture(h Handle)

	// CompileShader returns a *CompileError when the driver rejects the source.
	CompileShader(stage Stage, source string) (Handle, error)
	DeleteShader(h Handle)
	// LinkProgram returns a *CompileError with StageLink on failure. The
	// program handle is released by the device if linking fails.
	LinkProgram(vertex, fragment Handle) (Handle, error)
	UseProgram(h Handle)
	UniformLocation(program Handle, name string) int32
	UniformMatrix4(location int32, m *[16]float32)
	Uniform1i(location int32, v int32)
	DeleteProgram(h Handle)
}
