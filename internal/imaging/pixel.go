package imaging

import (
	"fmt"
	"math"
)

// Luma weights (ITU-R BT.709) used by Pixel.Luma and LumaTransform.
const (
	lumaRed   = 0.2126
	lumaGreen = 0.7152
	lumaBlue  = 0.0722
)

// Pixel is an immutable RGB color value.
//
// Channels are plain integers; they are bounded only when the owning Image
// clamps them to [0, maxChannelValue]. Pixels compare with ==.
type Pixel struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Grey returns a pixel with all three channels set to v.
func Grey(v int) Pixel {
	return Pixel{R: v, G: v, B: v}
}

// Value returns the largest of the three channels.
func (p Pixel) Value() int {
	return max(p.R, p.G, p.B)
}

// Intensity returns the rounded mean of the three channels.
func (p Pixel) Intensity() int {
	return int(math.Round(float64(p.R+p.G+p.B) / 3.0))
}

// Luma returns the rounded perceptual brightness 0.2126R + 0.7152G + 0.0722B.
func (p Pixel) Luma() int {
	return int(math.Round(lumaRed*float64(p.R) + lumaGreen*float64(p.G) + lumaBlue*float64(p.B)))
}

// IsGrey reports whether all three channels are equal.
func (p Pixel) IsGrey() bool {
	return p.R == p.G && p.G == p.B
}

// Add returns the channel-wise sum of p and q, unclamped.
func (p Pixel) Add(q Pixel) Pixel {
	return Pixel{R: p.R + q.R, G: p.G + q.G, B: p.B + q.B}
}

// String formats the pixel as "R:r G:g B:b".
func (p Pixel) String() string {
	return fmt.Sprintf("R:%d G:%d B:%d", p.R, p.G, p.B)
}
