package imaging

import (
	"github.com/anthonynsimon/bild/histogram"
)

// HistogramBins is the number of bins per channel.
const HistogramBins = 256

// HistogramResult holds per-channel pixel counts of the 8-bit rendition of
// an image. Index v counts the pixels whose channel equals v.
type HistogramResult struct {
	Red       []int `json:"red"`
	Green     []int `json:"green"`
	Blue      []int `json:"blue"`
	Intensity []int `json:"intensity"`
}

// Histogram counts channel values of img.
func Histogram(img *Image) *HistogramResult {
	rgba := histogram.NewRGBAHistogram(img.ToNRGBA())

	res := &HistogramResult{
		Red:       binsOf(rgba.R.Bins),
		Green:     binsOf(rgba.G.Bins),
		Blue:      binsOf(rgba.B.Bins),
		Intensity: make([]int, HistogramBins),
	}
	for _, p := range img.pix {
		q := Pixel{R: int(img.to8(p.R)), G: int(img.to8(p.G)), B: int(img.to8(p.B))}
		res.Intensity[q.Intensity()]++
	}
	return res
}

func binsOf(bins []int) []int {
	out := make([]int, HistogramBins)
	copy(out, bins)
	return out
}
