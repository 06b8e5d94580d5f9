package imaging

import (
	"math"

	"github.com/ironsheep/grime/internal/errors"
)

// ApplyKernel convolves every channel of img with k.
//
// For output (i, j) with c = side/2:
//
//	sum = Σ k[di][dj] * src(i-c+di, j-c+dj)
//
// Source positions outside the image read as black (zero padding). Each
// channel is rounded and clamped to the image bound.
//
// # Errors
//
//   - INVALID_KERNEL if k is nil or malformed
func ApplyKernel(img *Image, k *Kernel) (*Image, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "image is nil")
	}

	c := k.side / 2
	pix := make([]Pixel, len(img.pix))
	for i := 0; i < img.rows; i++ {
		for j := 0; j < img.cols; j++ {
			var rSum, gSum, bSum float64
			for di := 0; di < k.side; di++ {
				si := i - c + di
				if si < 0 || si >= img.rows {
					continue
				}
				for dj := 0; dj < k.side; dj++ {
					sj := j - c + dj
					if sj < 0 || sj >= img.cols {
						continue
					}
					w := k.weights[di*k.side+dj]
					p := img.pix[si*img.cols+sj]
					rSum += w * float64(p.R)
					gSum += w * float64(p.G)
					bSum += w * float64(p.B)
				}
			}
			pix[i*img.cols+j] = Pixel{
				R: img.clamp(int(math.Round(rSum))),
				G: img.clamp(int(math.Round(gSum))),
				B: img.clamp(int(math.Round(bSum))),
			}
		}
	}
	return img.derive(pix), nil
}

// Blur applies BlurKernel.
func Blur(img *Image) (*Image, error) {
	return ApplyKernel(img, BlurKernel())
}

// Sharpen applies SharpenKernel.
func Sharpen(img *Image) (*Image, error) {
	return ApplyKernel(img, SharpenKernel())
}
