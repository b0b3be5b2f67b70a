// Package texture decodes the background image and loads it off the frame
// thread.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types accepted by DecodeTGA.
const (
	tgaTypeUncompressed = 2
	tgaTypeRLE          = 10
	tgaHeaderSize       = 18
)

var errTGATruncated = errors.New("TGA pixel data truncated")

// tgaWriter places decoded pixels in file order, honoring the origin bit.
type tgaWriter struct {
	img         *image.RGBA
	width       int
	height      int
	topToBottom bool
	next        int
}

func (w *tgaWriter) done() bool {
	return w.next >= w.width*w.height
}

func (w *tgaWriter) put(c color.RGBA) {
	x := w.next % w.width
	y := w.next / w.width
	if !w.topToBottom {
		y = w.height - 1 - y
	}
	w.img.SetRGBA(x, y, c)
	w.next++
}

// tgaPixel reads one BGR(A) pixel.
func tgaPixel(p []byte, bytesPerPixel int) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c
}

// DecodeTGA decodes a TGA image file into top-down RGBA rows.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color
// images at 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != tgaTypeUncompressed && imageType != tgaTypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA has empty size %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	w := &tgaWriter{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		topToBottom: descriptor&0x20 != 0, // bit 5: origin at top
	}
	bytesPerPixel := bpp / 8

	var err error
	if imageType == tgaTypeUncompressed {
		err = decodeTGARaw(w, data[offset:], bytesPerPixel)
	} else {
		err = decodeTGARLE(w, data[offset:], bytesPerPixel)
	}
	if err != nil {
		return nil, err
	}
	return w.img, nil
}

func decodeTGARaw(w *tgaWriter, pixels []byte, bytesPerPixel int) error {
	if len(pixels) < w.width*w.height*bytesPerPixel {
		return errTGATruncated
	}
	for i := 0; !w.done(); i += bytesPerPixel {
		w.put(tgaPixel(pixels[i:], bytesPerPixel))
	}
	return nil
}

// decodeTGARLE expands run-length packets: the high bit of each packet header
// selects a repeated pixel, the low seven bits hold count-1. A stream that
// ends early leaves the remaining pixels transparent black.
func decodeTGARLE(w *tgaWriter, pixels []byte, bytesPerPixel int) error {
	i := 0
	for !w.done() && i < len(pixels) {
		packet := pixels[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+bytesPerPixel > len(pixels) {
				break
			}
			c := tgaPixel(pixels[i:], bytesPerPixel)
			i += bytesPerPixel
			for n := 0; n < count && !w.done(); n++ {
				w.put(c)
			}
			continue
		}

		for n := 0; n < count && !w.done(); n++ {
			if i+bytesPerPixel > len(pixels) {
				return nil
			}
			w.put(tgaPixel(pixels[i:], bytesPerPixel))
			i += bytesPerPixel
		}
	}
	return nil
}
