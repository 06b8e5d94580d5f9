package imaging

import (
	"math"

	"github.com/ironsheep/grime/internal/errors"
)

// ColorTransform is an immutable 3x3 linear map over (r, g, b).
type ColorTransform struct {
	m [3][3]float64
}

// NewColorTransform validates and copies a coefficient matrix.
//
// # Errors
//
//   - INVALID_TRANSFORM if the matrix is not exactly 3x3
func NewColorTransform(m [][]float64) (*ColorTransform, error) {
	if len(m) != 3 {
		return nil, errors.New(errors.ErrCodeInvalidTransform, "color transform has %d rows, want 3", len(m))
	}
	t := &ColorTransform{}
	for i, row := range m {
		if len(row) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidTransform,
				"color transform row %d has %d columns, want 3", i, len(row))
		}
		copy(t.m[i][:], row)
	}
	return t, nil
}

// Matrix returns a copy of the coefficients.
func (t *ColorTransform) Matrix() [3][3]float64 {
	return t.m
}

// LumaTransform maps every channel to the pixel's luma.
func LumaTransform() *ColorTransform {
	row := [3]float64{lumaRed, lumaGreen, lumaBlue}
	return &ColorTransform{m: [3][3]float64{row, row, row}}
}

// SepiaTransform is the classic sepia-tone matrix.
func SepiaTransform() *ColorTransform {
	return &ColorTransform{m: [3][3]float64{
		{0.393, 0.769, 0.189},
		{0.349, 0.686, 0.168},
		{0.272, 0.534, 0.131},
	}}
}

// ApplyTransform maps every pixel through t, rounding and clamping each
// output channel. Output at (i, j) depends only on input at (i, j).
//
// # Errors
//
//   - INVALID_TRANSFORM if t is nil
func ApplyTransform(img *Image, t *ColorTransform) (*Image, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidTransform, "color transform is nil")
	}
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "image is nil")
	}
	pix := make([]Pixel, len(img.pix))
	for i, p := range img.pix {
		pix[i] = t.apply(img, p)
	}
	return img.derive(pix), nil
}

func (t *ColorTransform) apply(img *Image, p Pixel) Pixel {
	in := [3]float64{float64(p.R), float64(p.G), float64(p.B)}
	var out [3]int
	for i := range out {
		v := t.m[i][0]*in[0] + t.m[i][1]*in[1] + t.m[i][2]*in[2]
		out[i] = img.clamp(int(math.Round(v)))
	}
	return Pixel{R: out[0], G: out[1], B: out[2]}
}

// Sepia applies SepiaTransform.
func Sepia(img *Image) (*Image, error) {
	return ApplyTransform(img, SepiaTransform())
}

// LumaGreyscale applies LumaTransform.
func LumaGreyscale(img *Image) (*Image, error) {
	return ApplyTransform(img, LumaTransform())
}
