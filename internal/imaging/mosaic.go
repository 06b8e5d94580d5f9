package imaging

import (
	"math/rand/v2"

	"github.com/ironsheep/grime/internal/errors"
)

// DefaultMosaicSeed is the fixed PRNG seed that makes Mosaic reproducible.
const DefaultMosaicSeed uint64 = 200

// seedPoint is a cluster center; x is a column and y a row.
type seedPoint struct {
	x, y int
}

// Mosaic posterizes img into numSeeds regions using DefaultMosaicSeed.
func Mosaic(img *Image, numSeeds int) (*Image, error) {
	return MosaicWithSeed(img, numSeeds, DefaultMosaicSeed)
}

// MosaicWithSeed posterizes img into at most numSeeds regions.
//
// Seeds are drawn uniformly from the image with a PRNG seeded by rngSeed
// (duplicates allowed, though only the first at a location can win). Every pixel joins the seed at the smallest
// Euclidean distance; ties go to the seed generated first. Each pixel is
// then painted with the truncated per-channel mean of its cluster. Equal
// inputs always give equal outputs.
//
// Cost is O(width * height * numSeeds), and at most width*height seeds are
// held in memory.
//
// # Errors
//
//   - INVALID_SEED_COUNT if numSeeds <= 0
func MosaicWithSeed(img *Image, numSeeds int, rngSeed uint64) (*Image, error) {
	if numSeeds <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSeedCount, "seed count must be positive, got %d", numSeeds)
	}
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "image is nil")
	}

	seeds := generateSeeds(numSeeds, img.cols, img.rows, rngSeed)

	type cluster struct {
		r, g, b, n int
	}
	clusters := make([]cluster, len(seeds))
	assign := make([]int, len(img.pix))

	for row := 0; row < img.rows; row++ {
		for col := 0; col < img.cols; col++ {
			idx := row*img.cols + col
			k := nearestSeed(col, row, seeds)
			assign[idx] = k
			p := img.pix[idx]
			clusters[k].r += p.R
			clusters[k].g += p.G
			clusters[k].b += p.B
			clusters[k].n++
		}
	}

	means := make([]Pixel, len(clusters))
	for k, cl := range clusters {
		if cl.n == 0 {
			continue
		}
		means[k] = img.clampPixel(Pixel{R: cl.r / cl.n, G: cl.g / cl.n, B: cl.b / cl.n})
	}

	pix := make([]Pixel, len(img.pix))
	for i, k := range assign {
		pix[i] = means[k]
	}
	return img.derive(pix), nil
}

// generateSeeds draws up to n seeds and keeps the first at each location. A
// repeat can never be strictly nearer than its earlier twin, so dropping it
// leaves every assignment unchanged. Drawing stops once every pixel holds a
// seed, which bounds the result by width*height however large n is.
func generateSeeds(n, width, height int, rngSeed uint64) []seedPoint {
	rng := rand.New(rand.NewPCG(rngSeed, rngSeed))
	cells := width * height
	taken := make([]bool, cells)
	seeds := make([]seedPoint, 0, min(n, cells))
	for i := 0; i < n && len(seeds) < cells; i++ {
		p := seedPoint{x: rng.IntN(width), y: rng.IntN(height)}
		if taken[p.y*width+p.x] {
			continue
		}
		taken[p.y*width+p.x] = true
		seeds = append(seeds, p)
	}
	return seeds
}

// nearestSeed returns the index of the closest seed to (x, y). Squared
// distances order the same as Euclidean ones, and the strict comparison keeps
// the earliest seed on ties.
func nearestSeed(x, y int, seeds []seedPoint) int {
	best := 0
	bestDist := -1
	for i, s := range seeds {
		dx, dy := s.x-x, s.y-y
		d := dx*dx + dy*dy
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
