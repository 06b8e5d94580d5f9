package codec

import (
	imgcodec "github.com/disintegration/imaging"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

// MaxScale bounds the zoom factor accepted by Scale.
const MaxScale = 16

// Scale resizes img by factor using Lanczos resampling. A factor of 1
// returns img itself; any other factor yields an 8-bit image.
//
// # Errors
//
//   - INVALID_ARGUMENT if factor is not in (0, MaxScale] or the result
//     would have no pixels
func Scale(img *imaging.Image, factor float64) (*imaging.Image, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "image is nil")
	}
	if factor <= 0 || factor > MaxScale {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "scale must be in (0, %d], got %g", MaxScale, factor)
	}
	if factor == 1 {
		return img, nil
	}
	w := int(float64(img.Width()) * factor)
	h := int(float64(img.Height()) * factor)
	if w < 1 || h < 1 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"scale %g shrinks the %dx%d image to nothing", factor, img.Width(), img.Height())
	}
	return imaging.FromImage(imgcodec.Resize(img.ToNRGBA(), w, h, imgcodec.Lanczos))
}
