package geometry

import (
	"fmt"

	"github.com/richinsley/gocube/gpu"
)

// Buffer owns a vertex array and the vertex buffer behind it.
type Buffer struct {
	dev         gpu.Device
	vao         gpu.Handle
	vbo         gpu.Handle
	vertexCount int32
}

// Create uploads desc and describes its two attributes: location 0 is the
// position, location 1 the texture coordinate.
func Create(dev gpu.Device, desc *Descriptor) (*Buffer, error) {
	if desc == nil {
		return nil, fmt.Errorf("nil geometry descriptor")
	}

	vao, err := dev.NewVertexArray()
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex array: %w", err)
	}
	dev.BindVertexArray(vao)

	vbo, err := dev.NewBuffer()
	if err != nil {
		dev.BindVertexArray(0)
		dev.DeleteVertexArray(vao)
		return nil, fmt.Errorf("failed to create vertex buffer: %w", err)
	}
	dev.BindArrayBuffer(vbo)
	dev.BufferData(desc.vertices)

	dev.VertexAttrib(0, PositionComponents, Stride, 0)
	dev.VertexAttrib(1, TexCoordComponents, Stride, TexCoordOffset)

	return &Buffer{
		dev:         dev,
		vao:         vao,
		vbo:         vbo,
		vertexCount: int32(desc.VertexCount()),
	}, nil
}

func (b *Buffer) Bind() {
	b.dev.BindVertexArray(b.vao)
}

// Draw issues one triangle-list draw over every vertex. Bind must come first.
func (b *Buffer) Draw() {
	b.dev.DrawTriangles(0, b.vertexCount)
}

func (b *Buffer) VertexCount() int {
	return int(b.vertexCount)
}

// Destroy releases both handles. It is safe on a nil or already destroyed Buffer.
func (b *Buffer) Destroy() {
	if b == nil {
		return
	}
	if b.vao != 0 {
		b.dev.DeleteVertexArray(b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		b.dev.DeleteBuffer(b.vbo)
		b.vbo = 0
	}
}
