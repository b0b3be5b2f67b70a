package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Decode decodes a background image. TGA is selected by extension since it
// has no magic number; everything else goes through the image registry.
func Decode(path string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// ToRGBA converts img to a tightly packed RGBA image at the origin. With flipY
// the rows are reversed so the first row in memory is the bottom of the
// picture, the order GL texture uploads expect.
func ToRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if flipY {
		row := make([]byte, rgba.Stride)
		h := b.Dy()
		for y := 0; y < h/2; y++ {
			top := rgba.Pix[y*rgba.Stride : (y+1)*rgba.Stride]
			bottom := rgba.Pix[(h-1-y)*rgba.Stride : (h-y)*rgba.Stride]
			copy(row, top)
			copy(top, bottom)
			copy(bottom, row)
		}
	}
	return rgba
}
