package imaging

import (
	"math"

	"github.com/ironsheep/grime/internal/errors"
)

// DefaultMaxValue is the channel bound of images built without an explicit one.
const DefaultMaxValue = 255

// Image is an immutable rectangular grid of pixels with a channel bound.
//
// Pixels are stored row-major. Every operation returns a new Image; the grid
// is never written after construction, so an Image may be shared freely
// between goroutines.
type Image struct {
	rows, cols int
	maxValue   int
	pix        []Pixel
}

// New builds an image from a grid of rows with the default channel bound.
// The grid is copied.
//
// # Errors
//
//   - INVALID_SHAPE if the grid is empty, has an empty first row, or rows differ in length
func New(grid [][]Pixel) (*Image, error) {
	return NewWithMax(grid, DefaultMaxValue)
}

// NewWithMax is New with an explicit channel bound. Pixels are stored as
// given; values outside [0, maxValue] are not clamped here.
func NewWithMax(grid [][]Pixel, maxValue int) (*Image, error) {
	if len(grid) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidShape, "pixel grid is empty")
	}
	cols := len(grid[0])
	if cols == 0 {
		return nil, errors.New(errors.ErrCodeInvalidShape, "pixel grid has empty rows")
	}
	for i, row := range grid {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidShape,
				"pixel grid is not rectangular: row %d has %d pixels, want %d", i, len(row), cols)
		}
	}
	if maxValue <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidShape, "max channel value must be positive, got %d", maxValue)
	}

	pix := make([]Pixel, 0, len(grid)*cols)
	for _, row := range grid {
		pix = append(pix, row...)
	}
	return &Image{rows: len(grid), cols: cols, maxValue: maxValue, pix: pix}, nil
}

// FromPixels builds a width x height image from row-major pixels. This is the
// constructor used by decoders: values are trusted and not clamped.
func FromPixels(pixels []Pixel, width, height, maxValue int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidShape, "invalid dimensions %dx%d", width, height)
	}
	if width > math.MaxInt/height {
		return nil, errors.New(errors.ErrCodeInvalidShape, "dimensions %dx%d are too large", width, height)
	}
	if len(pixels) != width*height {
		return nil, errors.New(errors.ErrCodeInvalidShape,
			"got %d pixels, want %d for %dx%d", len(pixels), width*height, width, height)
	}
	if maxValue <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidShape, "max channel value must be positive, got %d", maxValue)
	}
	pix := make([]Pixel, len(pixels))
	copy(pix, pixels)
	return &Image{rows: height, cols: width, maxValue: maxValue, pix: pix}, nil
}

// derive wraps a freshly allocated grid with the same shape and bound as img.
func (img *Image) derive(pix []Pixel) *Image {
	return &Image{rows: img.rows, cols: img.cols, maxValue: img.maxValue, pix: pix}
}

// Size returns (rows, cols).
func (img *Image) Size() (rows, cols int) {
	return img.rows, img.cols
}

// Width returns the number of columns.
func (img *Image) Width() int { return img.cols }

// Height returns the number of rows.
func (img *Image) Height() int { return img.rows }

// MaxValue returns the channel bound.
func (img *Image) MaxValue() int { return img.maxValue }

// At returns the pixel at (row, col). It panics if the position is outside
// the image, like indexing a slice.
func (img *Image) At(row, col int) Pixel {
	return img.pix[row*img.cols+col]
}

// InBounds reports whether (row, col) lies inside the image.
func (img *Image) InBounds(row, col int) bool {
	return row >= 0 && row < img.rows && col >= 0 && col < img.cols
}

// Pixels returns a row-major copy of the grid.
func (img *Image) Pixels() []Pixel {
	out := make([]Pixel, len(img.pix))
	copy(out, img.pix)
	return out
}

// Grid returns a copy of the pixels as rows.
func (img *Image) Grid() [][]Pixel {
	grid := make([][]Pixel, img.rows)
	for r := range grid {
		grid[r] = make([]Pixel, img.cols)
		copy(grid[r], img.pix[r*img.cols:(r+1)*img.cols])
	}
	return grid
}

// Equal reports whether both images have the same shape, bound and pixels.
func (img *Image) Equal(other *Image) bool {
	if img == other {
		return true
	}
	if img == nil || other == nil {
		return false
	}
	if img.rows != other.rows || img.cols != other.cols || img.maxValue != other.maxValue {
		return false
	}
	for i := range img.pix {
		if img.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// clamp constrains a channel to [0, maxValue].
func (img *Image) clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > img.maxValue {
		return img.maxValue
	}
	return v
}

func (img *Image) clampPixel(p Pixel) Pixel {
	return Pixel{R: img.clamp(p.R), G: img.clamp(p.G), B: img.clamp(p.B)}
}

// FlipHorizontal mirrors the image left to right. A single-column image is
// returned unchanged (the same value).
func (img *Image) FlipHorizontal() *Image {
	if img.cols == 1 {
		return img
	}
	pix := make([]Pixel, len(img.pix))
	for r := 0; r < img.rows; r++ {
		base := r * img.cols
		for c := 0; c < img.cols; c++ {
			pix[base+c] = img.pix[base+img.cols-1-c]
		}
	}
	return img.derive(pix)
}

// FlipVertical mirrors the image top to bottom. A single-row image is
// returned unchanged (the same value).
func (img *Image) FlipVertical() *Image {
	if img.rows == 1 {
		return img
	}
	pix := make([]Pixel, len(img.pix))
	for r := 0; r < img.rows; r++ {
		copy(pix[r*img.cols:(r+1)*img.cols], img.pix[(img.rows-1-r)*img.cols:(img.rows-r)*img.cols])
	}
	return img.derive(pix)
}

// Brighten adds delta to every channel and clamps. Negative delta darkens.
func (img *Image) Brighten(delta int) *Image {
	pix := make([]Pixel, len(img.pix))
	for i, p := range img.pix {
		pix[i] = img.clampPixel(p.Add(Grey(delta)))
	}
	return img.derive(pix)
}

// Greyscale replaces every pixel by a grey pixel holding the scalar selected
// by c.
//
// # Errors
//
//   - UNKNOWN_COMPONENT if c is not one of the declared components
func (img *Image) Greyscale(c Component) (*Image, error) {
	pix := make([]Pixel, len(img.pix))
	for i, p := range img.pix {
		v, err := c.Extract(p)
		if err != nil {
			return nil, err
		}
		pix[i] = Grey(img.clamp(v))
	}
	return img.derive(pix), nil
}

// SplitRGB returns the red, green and blue component images, in that order.
func (img *Image) SplitRGB() [3]*Image {
	var out [3]*Image
	for i, c := range []Component{RedComponent, GreenComponent, BlueComponent} {
		// Channel components never fail to extract.
		out[i], _ = img.Greyscale(c)
	}
	return out
}
