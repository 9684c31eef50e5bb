// inputs/image.go
package inputs

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"io/fs"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes any registered format into straight (non-premultiplied)
// RGBA, so the pixels can be uploaded as RGBA8 and blended with SRC_ALPHA.
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return toNRGBA(img, format)
}

func toNRGBA(img image.Image, format string) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%s image has no pixels", format)
	}
	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) && nrgba.Stride == bounds.Dx()*4 {
		return nrgba, nil
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	return nrgba, nil
}

// LoadImage opens path in fsys and decodes it.
func LoadImage(fsys fs.FS, path string) (*image.NRGBA, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	nrgba, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return nrgba, nil
}
