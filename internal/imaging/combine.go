package imaging

import (
	"github.com/ironsheep/grime/internal/errors"
)

var errNotGreyscaleInput = errors.New(errors.ErrCodeInvalidArgument, "combine inputs must be greyscale")

// CombineRGB rebuilds a color image from three single-channel images: the
// red channel of images[0], the green of images[1] and the blue of
// images[2]. The result takes the bound of images[0].
//
// # Errors
//
//   - INVALID_ARGUMENT unless exactly three non-nil images of equal size are given
//   - NOT_GREYSCALE if any input has a pixel whose channels differ; the
//     error also matches INVALID_ARGUMENT
func CombineRGB(images ...*Image) (*Image, error) {
	if len(images) != 3 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "need 3 images to combine, got %d", len(images))
	}
	for i, img := range images {
		if img == nil {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "image %d is nil", i)
		}
	}
	red, green, blue := images[0], images[1], images[2]
	for _, img := range images[1:] {
		if img.rows != red.rows || img.cols != red.cols {
			return nil, errors.New(errors.ErrCodeInvalidArgument,
				"images must be the same size: %dx%d vs %dx%d", red.cols, red.rows, img.cols, img.rows)
		}
	}
	names := [3]string{"red", "green", "blue"}
	for i, img := range images {
		for idx, p := range img.pix {
			if !p.IsGrey() {
				return nil, errors.Wrap(errors.ErrCodeNotGreyscale, errNotGreyscaleInput,
					"%s input is not greyscale at row %d col %d (%s)", names[i], idx/img.cols, idx%img.cols, p)
			}
		}
	}

	pix := make([]Pixel, len(red.pix))
	for i := range pix {
		pix[i] = Pixel{R: red.pix[i].R, G: green.pix[i].G, B: blue.pix[i].B}
	}
	return red.derive(pix), nil
}
