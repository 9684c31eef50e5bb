// Package gputest provides an in-memory gpu.Device that hands out handles,
// tracks which are still alive, and records the calls made against it.
package gputest

import (
	"fmt"
	"sort"

	"github.com/richinsley/gocube/gpu"
)

// Kind classifies a handle.
type Kind string

const (
	KindVertexArray Kind = "vertex-array"
	KindBuffer      Kind = "buffer"
	KindTexture     Kind = "texture"
	KindShader      Kind = "shader"
	KindProgram     Kind = "program"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Device is a gpu.Device with no driver behind it. The zero value is not
// usable; call New.
type Device struct {
	// FailStage, when set, makes that compile or link step fail.
	FailStage *gpu.Stage
	// FailAlloc makes the matching New* call return an error.
	FailAlloc Kind
	// FailInit makes Init return an error.
	FailInit bool

	next    gpu.Handle
	live    map[gpu.Handle]Kind
	created map[Kind]int
	deleted map[Kind]int
	faults  []string
	calls   []Call

	boundVAO     gpu.Handle
	boundBuffer  gpu.Handle
	boundTexture gpu.Handle
	program      gpu.Handle
	uniforms     map[gpu.Handle]map[string]int32
	matrices     map[int32][16]float32
	ints         map[int32]int32
	buffers      map[gpu.Handle][]float32
	textures     map[gpu.Handle][]byte
	draws        int
}

func New() *Device {
	return &Device{
		live:     make(map[gpu.Handle]Kind),
		created:  make(map[Kind]int),
		deleted:  make(map[Kind]int),
		uniforms: make(map[gpu.Handle]map[string]int32),
		matrices: make(map[int32][16]float32),
		ints:     make(map[int32]int32),
		buffers:  make(map[gpu.Handle][]float32),
		textures: make(map[gpu.Handle][]byte),
	}
}

// Fail returns a pointer to s, for FailStage.
func Fail(s gpu.Stage) *gpu.Stage {
	return &s
}

func (d *Device) record(name string, args ...any) {
	d.calls = append(d.calls, Call{Name: name, Args: args})
}

func (d *Device) alloc(kind Kind) (gpu.Handle, error) {
	if d.FailAlloc == kind {
		return 0, fmt.Errorf("gputest: %s allocation refused", kind)
	}
	d.next++
	d.live[d.next] = kind
	d.created[kind]++
	return d.next, nil
}

func (d *Device) release(kind Kind, h gpu.Handle) {
	got, ok := d.live[h]
	switch {
	case h == 0:
		d.faults = append(d.faults, fmt.Sprintf("delete of zero %s handle", kind))
	case !ok:
		d.faults = append(d.faults, fmt.Sprintf("delete of dead or unknown %s handle %d", kind, h))
	case got != kind:
		d.faults = append(d.faults, fmt.Sprintf("handle %d is a %s, deleted as %s", h, got, kind))
	default:
		delete(d.live, h)
		d.deleted[kind]++
	}
}

func (d *Device) use(kind Kind, h gpu.Handle, what string) {
	if h == 0 {
		return
	}
	if got, ok := d.live[h]; !ok || got != kind {
		d.faults = append(d.faults, fmt.Sprintf("%s on dead or foreign handle %d", what, h))
	}
}

func (d *Device) Init() error {
	d.record("Init")
	if d.FailInit {
		return fmt.Errorf("gputest: init refused")
	}
	return nil
}

func (d *Device) Version() string { return "gputest" }

func (d *Device) ClearColor(r, g, b, a float32) { d.record("ClearColor", r, g, b, a) }

func (d *Device) Enable(c gpu.Capability) { d.record("Enable", c) }

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) { d.record("BlendFunc", src, dst) }

func (d *Device) Clear(mask gpu.ClearMask) { d.record("Clear", mask) }

func (d *Device) Viewport(x, y, width, height int32) { d.record("Viewport", x, y, width, height) }

func (d *Device) NewVertexArray() (gpu.Handle, error) {
	d.record("NewVertexArray")
	return d.alloc(KindVertexArray)
}

func (d *Device) BindVertexArray(h gpu.Handle) {
	d.record("BindVertexArray", h)
	d.use(KindVertexArray, h, "BindVertexArray")
	d.boundVAO = h
}

func (d *Device) DeleteVertexArray(h gpu.Handle) {
	d.record("DeleteVertexArray", h)
	d.release(KindVertexArray, h)
	if d.boundVAO == h {
		d.boundVAO = 0
	}
}

func (d *Device) NewBuffer() (gpu.Handle, error) {
	d.record("NewBuffer")
	return d.alloc(KindBuffer)
}

func (d *Device) BindArrayBuffer(h gpu.Handle) {
	d.record("BindArrayBuffer", h)
	d.use(KindBuffer, h, "BindArrayBuffer")
	d.boundBuffer = h
}

func (d *Device) BufferData(data []float32) {
	d.record("BufferData", len(data))
	if d.boundBuffer == 0 {
		d.faults = append(d.faults, "BufferData with no bound buffer")
		return
	}
	d.buffers[d.boundBuffer] = append([]float32(nil), data...)
}

func (d *Device) VertexAttrib(index uint32, size, stride int32, offset int) {
	d.record("VertexAttrib", index, size, stride, offset)
	if d.boundVAO == 0 {
		d.faults = append(d.faults, "VertexAttrib with no bound vertex array")
	}
}

func (d *Device) DeleteBuffer(h gpu.Handle) {
	d.record("DeleteBuffer", h)
	d.release(KindBuffer, h)
	if d.boundBuffer == h {
		d.boundBuffer = 0
	}
}

func (d *Device) DrawTriangles(first, count int32) {
	d.record("DrawTriangles", first, count)
	if d.boundVAO == 0 || d.program == 0 {
		d.faults = append(d.faults, "DrawTriangles without a bound vertex array and program")
	}
	d.draws++
}

func (d *Device) NewTexture() (gpu.Handle, error) {
	d.record("NewTexture")
	return d.alloc(KindTexture)
}

func (d *Device) ActiveTexture(unit uint32) { d.record("ActiveTexture", unit) }

func (d *Device) BindTexture2D(h gpu.Handle) {
	d.record("BindTexture2D", h)
	d.use(KindTexture, h, "BindTexture2D")
	d.boundTexture = h
}

func (d *Device) TexParameter(p gpu.TexParam, v gpu.TexValue) {
	d.record("TexParameter", p, v)
	if d.boundTexture == 0 {
		d.faults = append(d.faults, "TexParameter with no bound texture")
	}
}

func (d *Device) TexImage2D(width, height int32, pixels []byte) {
	d.record("TexImage2D", width, height, len(pixels))
	if d.boundTexture == 0 {
		d.faults = append(d.faults, "TexImage2D with no bound texture")
		return
	}
	d.textures[d.boundTexture] = append([]byte(nil), pixels...)
}

func (d *Device) GenerateMipmap() { d.record("GenerateMipmap") }

func (d *Device) DeleteTexture(h gpu.Handle) {
	d.record("DeleteTexture", h)
	d.release(KindTexture, h)
	if d.boundTexture == h {
		d.boundTexture = 0
	}
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (gpu.Handle, error) {
	d.record("CompileShader", stage)
	if d.FailStage != nil && *d.FailStage == stage {
		return 0, &gpu.CompileError{Stage: stage, Log: "0:1(1): error: syntax error"}
	}
	return d.alloc(KindShader)
}

func (d *Device) DeleteShader(h gpu.Handle) {
	d.record("DeleteShader", h)
	d.release(KindShader, h)
}

func (d *Device) LinkProgram(vertex, fragment gpu.Handle) (gpu.Handle, error) {
	d.record("LinkProgram", vertex, fragment)
	d.use(KindShader, vertex, "LinkProgram")
	d.use(KindShader, fragment, "LinkProgram")
	if d.FailStage != nil && *d.FailStage == gpu.StageLink {
		return 0, &gpu.CompileError{Stage: gpu.StageLink, Log: "error: vertex output not consumed"}
	}
	h, err := d.alloc(KindProgram)
	if err != nil {
		return 0, err
	}
	d.uniforms[h] = map[string]int32{"model": 0, "projection": 1, "imageTexture": 2}
	return h, nil
}

func (d *Device) UseProgram(h gpu.Handle) {
	d.record("UseProgram", h)
	d.use(KindProgram, h, "UseProgram")
	d.program = h
}

func (d *Device) UniformLocation(program gpu.Handle, name string) int32 {
	d.record("UniformLocation", program, name)
	if loc, ok := d.uniforms[program][name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UniformMatrix4(location int32, m *[16]float32) {
	d.record("UniformMatrix4", location)
	if d.program == 0 {
		d.faults = append(d.faults, "UniformMatrix4 with no current program")
	}
	d.matrices[location] = *m
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.record("Uniform1i", location, v)
	d.ints[location] = v
}

func (d *Device) DeleteProgram(h gpu.Handle) {
	d.record("DeleteProgram", h)
	d.release(KindProgram, h)
	if d.program == h {
		d.program = 0
	}
}

// Live returns the number of handles not yet deleted.
func (d *Device) Live() int {
	return len(d.live)
}

// LiveKinds lists the kinds of the handles still alive, sorted.
func (d *Device) LiveKinds() []Kind {
	kinds := make([]Kind, 0, len(d.live))
	for _, k := range d.live {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// IsLive reports whether h has been created and not deleted.
func (d *Device) IsLive(h gpu.Handle) bool {
	_, ok := d.live[h]
	return ok
}

func (d *Device) Created(k Kind) int { return d.created[k] }
func (d *Device) Deleted(k Kind) int { return d.deleted[k] }

// Faults lists misuse observed so far: double deletes, draws without state, and so on.
func (d *Device) Faults() []string { return d.faults }

func (d *Device) Calls() []Call { return d.calls }

// CallNames returns the names of the recorded calls, in order.
func (d *Device) CallNames() []string {
	names := make([]string, len(d.calls))
	for i, c := range d.calls {
		names[i] = c.Name
	}
	return names
}

// Find returns the recorded calls with the given name.
func (d *Device) Find(name string) []Call {
	var out []Call
	for _, c := range d.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops the call log, keeping handle state.
func (d *Device) Reset() {
	d.calls = nil
}

// Matrix returns the last matrix uploaded to location.
func (d *Device) Matrix(location int32) ([16]float32, bool) {
	m, ok := d.matrices[location]
	return m, ok
}

// Int returns the last integer uploaded to location.
func (d *Device) Int(location int32) (int32, bool) {
	v, ok := d.ints[location]
	return v, ok
}

// BufferContents returns what was uploaded into buffer h.
func (d *Device) BufferContents(h gpu.Handle) []float32 {
	return d.buffers[h]
}

// TextureContents returns the pixels last uploaded into texture h.
func (d *Device) TextureContents(h gpu.Handle) []byte {
	return d.textures[h]
}

func (d *Device) Draws() int { return d.draws }

// UniformLocationOf exposes the fixed locations the fake assigns to a program's uniforms.
func UniformLocationOf(name string) int32 {
	switch name {
	case "model":
		return 0
	case "projection":
		return 1
	case "imageTexture":
		return 2
	}
	return -1
}

var _ gpu.Device = (*Device)(nil)
