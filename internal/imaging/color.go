package imaging

import (
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/grime/internal/errors"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult describes one pixel in several representations.
type ColorResult struct {
	Row       int      `json:"row"`
	Col       int      `json:"col"`
	Hex       string   `json:"hex"` // "#RRGGBB" of the 8-bit rendition
	RGB       Pixel    `json:"rgb"` // channels at the image's own bound
	HSL       HSLColor `json:"hsl"`
	Value     int      `json:"value"`
	Intensity int      `json:"intensity"`
	Luma      int      `json:"luma"`
}

// SampleColor reports the pixel at (row, col).
//
// # Errors
//
//   - INVALID_ARGUMENT if (row, col) is outside the image
func SampleColor(img *Image, row, col int) (*ColorResult, error) {
	if !img.InBounds(row, col) {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"position (%d,%d) outside %dx%d image", row, col, img.rows, img.cols)
	}
	p := img.At(row, col)
	c := img.colorful(p)
	h, s, l := c.Hsl()

	return &ColorResult{
		Row:       row,
		Col:       col,
		Hex:       strings.ToUpper(c.Hex()),
		RGB:       p,
		HSL:       HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		Value:     p.Value(),
		Intensity: p.Intensity(),
		Luma:      p.Luma(),
	}, nil
}

// colorful converts p to a go-colorful color with components in [0, 1].
func (img *Image) colorful(p Pixel) colorful.Color {
	m := float64(img.maxValue)
	return colorful.Color{
		R: float64(img.clamp(p.R)) / m,
		G: float64(img.clamp(p.G)) / m,
		B: float64(img.clamp(p.B)) / m,
	}
}

// ColorFrequency is one distinct color and its share of the image.
type ColorFrequency struct {
	Hex        string  `json:"hex"`
	RGB        Pixel   `json:"rgb"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // 0-100
}

// DominantColors returns up to count distinct colors of img, most frequent
// first. Ties are ordered by hex so the result is deterministic. Colors are
// counted exactly, which suits posterized output such as Mosaic.
func DominantColors(img *Image, count int) []ColorFrequency {
	counts := make(map[Pixel]int)
	for _, p := range img.pix {
		counts[p]++
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for p, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        strings.ToUpper(img.colorful(p).Hex()),
			RGB:        p,
			Count:      n,
			Percentage: float64(n) / float64(len(img.pix)) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Count != colors[j].Count {
			return colors[i].Count > colors[j].Count
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count > 0 && len(colors) > count {
		colors = colors[:count]
	}
	return colors
}
