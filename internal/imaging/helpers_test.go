package imaging

import (
	"testing"
)

// mustImage builds an image from rows of pixels or fails the test.
func mustImage(t *testing.T, grid [][]Pixel) *Image {
	t.Helper()
	img, err := New(grid)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

// solidImage builds a rows x cols image filled with p.
func solidImage(t *testing.T, rows, cols int, p Pixel) *Image {
	t.Helper()
	grid := make([][]Pixel, rows)
	for r := range grid {
		grid[r] = make([]Pixel, cols)
		for c := range grid[r] {
			grid[r][c] = p
		}
	}
	return mustImage(t, grid)
}

// gradientImage builds an image whose channels vary with position so that
// flips and filters have something to move around.
func gradientImage(t *testing.T, rows, cols int) *Image {
	t.Helper()
	grid := make([][]Pixel, rows)
	for r := range grid {
		grid[r] = make([]Pixel, cols)
		for c := range grid[r] {
			grid[r][c] = Pixel{
				R: (r*37 + c*11) % 256,
				G: (r*5 + c*53) % 256,
				B: (r*97 + c*3 + 17) % 256,
			}
		}
	}
	return mustImage(t, grid)
}
