// Package geometry holds interleaved vertex data and the GPU buffer that owns it.
package geometry

import "fmt"

const (
	// PositionComponents and TexCoordComponents make up one interleaved vertex.
	PositionComponents = 3
	TexCoordComponents = 2
	// FloatsPerVertex is x, y, z, s, t.
	FloatsPerVertex = PositionComponents + TexCoordComponents

	floatSize = 4
	// Stride is the byte distance between consecutive vertices.
	Stride = FloatsPerVertex * floatSize
	// TexCoordOffset is the byte offset of s within a vertex.
	TexCoordOffset = PositionComponents * floatSize
)

// Descriptor is an immutable sequence of interleaved position and texture
// coordinate attributes.
type Descriptor struct {
	vertices []float32
}

// NewDescriptor copies raw into a Descriptor. The length of raw must be a
// positive multiple of FloatsPerVertex.
func NewDescriptor(raw []float32) (*Descriptor, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("vertex data is empty")
	}
	if len(raw)%FloatsPerVertex != 0 {
		return nil, fmt.Errorf("vertex data has %d floats, not a multiple of %d", len(raw), FloatsPerVertex)
	}
	return &Descriptor{vertices: append([]float32(nil), raw...)}, nil
}

// VertexCount is len(raw) / FloatsPerVertex.
func (d *Descriptor) VertexCount() int {
	return len(d.vertices) / FloatsPerVertex
}

// Floats returns a copy of the interleaved data.
func (d *Descriptor) Floats() []float32 {
	return append([]float32(nil), d.vertices...)
}

// Vertex returns the position and texture coordinate of vertex i.
func (d *Descriptor) Vertex(i int) (pos [3]float32, uv [2]float32) {
	v := d.vertices[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
	copy(pos[:], v[:PositionComponents])
	copy(uv[:], v[PositionComponents:])
	return pos, uv
}
