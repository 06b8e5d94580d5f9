package imaging

// Error diffusion weights (Floyd-Steinberg).
const (
	diffuseRight     = 7.0 / 16.0
	diffuseDownLeft  = 3.0 / 16.0
	diffuseDown      = 5.0 / 16.0
	diffuseDownRight = 1.0 / 16.0
)

// DitherResult is the outcome of error-diffusion dithering.
type DitherResult struct {
	Image *Image
	// Levels is the black (0) or white (MaxValue) level chosen for every
	// pixel before diffusion, row-major.
	Levels []int
	// Errors is the luma value minus its level, row-major.
	Errors []float64
}

// Dither reduces img to a black and white image with diffused error. See
// DitherDetailed.
func Dither(img *Image) *Image {
	return DitherDetailed(img).Image
}

// DitherDetailed binarizes the luma greyscale of img and diffuses the
// quantization error in two passes.
//
// The first pass sets every pixel independently: level 0 when its luma is
// below threshold, MaxValue otherwise, recording luma - level. Levels and
// errors are read-only from then on.
//
// The second pass starts the output from the levels and walks the interior
// pixels in row-major order. Each adds 7/16, 3/16, 5/16 and 1/16 of its
// recorded error to the right, down-left, down and down-right output cells,
// truncating toward zero and clamping on every write. Border pixels (first
// and last row and column) never propagate, though interior neighbors may
// write into them. Later writes see earlier ones, so contributions compound
// and the output is not strictly black and white.
//
// threshold is (MaxValue+1)/2, i.e. 128 for 8-bit images.
func DitherDetailed(img *Image) *DitherResult {
	grey, _ := ApplyTransform(img, LumaTransform())

	rows, cols := img.rows, img.cols
	threshold := (img.maxValue + 1) / 2

	levels := make([]int, len(grey.pix))
	errs := make([]float64, len(grey.pix))
	for i, p := range grey.pix {
		if p.R >= threshold {
			levels[i] = img.maxValue
		}
		errs[i] = float64(p.R - levels[i])
	}

	out := make([]int, len(levels))
	copy(out, levels)
	diffuse := func(r, c int, amount float64) {
		idx := r*cols + c
		out[idx] = img.clamp(int(amount + float64(out[idx])))
	}

	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			e := errs[r*cols+c]
			diffuse(r, c+1, diffuseRight*e)
			diffuse(r+1, c-1, diffuseDownLeft*e)
			diffuse(r+1, c, diffuseDown*e)
			diffuse(r+1, c+1, diffuseDownRight*e)
		}
	}

	pix := make([]Pixel, len(out))
	for i, v := range out {
		pix[i] = Grey(v)
	}
	return &DitherResult{Image: img.derive(pix), Levels: levels, Errors: errs}
}
