package imaging

import (
	"image"
	"image/color"

	"github.com/ironsheep/grime/internal/errors"
)

// FromImage converts a standard library image to an Image with 8-bit
// channels. Alpha is ignored.
func FromImage(src image.Image) (*Image, error) {
	if src == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "source image is nil")
	}
	b := src.Bounds()
	pix := make([]Pixel, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			// Convert from 16-bit to 8-bit
			pix = append(pix, Pixel{R: int(r >> 8), G: int(g >> 8), B: int(bl >> 8)})
		}
	}
	return FromPixels(pix, b.Dx(), b.Dy(), DefaultMaxValue)
}

// ToNRGBA renders the image as an opaque 8-bit image. Channels are clamped
// and rescaled when the bound is not 255.
func (img *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.cols, img.rows))
	for r := 0; r < img.rows; r++ {
		for c := 0; c < img.cols; c++ {
			p := img.pix[r*img.cols+c]
			out.SetNRGBA(c, r, color.NRGBA{
				R: img.to8(p.R),
				G: img.to8(p.G),
				B: img.to8(p.B),
				A: 255,
			})
		}
	}
	return out
}

func (img *Image) to8(v int) uint8 {
	v = img.clamp(v)
	if img.maxValue == 255 {
		return uint8(v)
	}
	return uint8((v*255 + img.maxValue/2) / img.maxValue)
}
