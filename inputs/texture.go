package inputs

import (
	"fmt"
	"image"
	"log"

	"github.com/richinsley/gocube/gpu"
)

// Texture is a 2D RGBA8 texture sampled from unit 0.
type Texture struct {
	dev       gpu.Device
	textureID gpu.Handle
	width     int
	height    int
}

// NewTexture uploads tightly packed straight-alpha RGBA8 pixels, top row first. Wrapping
// repeats on both axes; minification is nearest, magnification linear, and
// a mipmap chain is generated.
func NewTexture(dev gpu.Device, pixels []byte, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("texture %dx%d needs %d bytes of RGBA, got %d", width, height, width*height*4, len(pixels))
	}

	textureID, err := dev.NewTexture()
	if err != nil {
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}
	dev.BindTexture2D(textureID)

	dev.TexParameter(gpu.WrapS, gpu.Repeat)
	dev.TexParameter(gpu.WrapT, gpu.Repeat)
	dev.TexParameter(gpu.MinFilter, gpu.Nearest)
	dev.TexParameter(gpu.MagFilter, gpu.Linear)

	dev.TexImage2D(int32(width), int32(height), pixels)
	dev.GenerateMipmap()

	dev.BindTexture2D(0)

	log.Printf("Uploaded %dx%d texture", width, height)
	return &Texture{
		dev:       dev,
		textureID: textureID,
		width:     width,
		height:    height,
	}, nil
}

// NewTextureFromImage uploads img, which must be tightly packed.
func NewTextureFromImage(dev gpu.Device, img *image.NRGBA) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	size := img.Rect.Size()
	if img.Stride != size.X*4 {
		return nil, fmt.Errorf("image stride %d does not match width %d", img.Stride, size.X)
	}
	return NewTexture(dev, img.Pix[:size.X*size.Y*4], size.X, size.Y)
}

// Use binds the texture to unit 0.
func (t *Texture) Use() {
	t.dev.ActiveTexture(0)
	t.dev.BindTexture2D(t.textureID)
}

func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Destroy is safe on a nil or already destroyed Texture.
func (t *Texture) Destroy() {
	if t == nil || t.textureID == 0 {
		return
	}
	t.dev.DeleteTexture(t.textureID)
	t.textureID = 0
}
