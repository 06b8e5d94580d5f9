package imaging

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDither_SolidImages(t *testing.T) {
	tests := []struct {
		name string
		in   Pixel
		want Pixel
	}{
		{"black", Grey(0), Grey(0)},
		{"white", Grey(255), Grey(255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dither(solidImage(t, 4, 4, tt.in))
			for i, p := range got.Pixels() {
				if p != tt.want {
					t.Fatalf("pixel %d: got %v, want %v", i, p, tt.want)
				}
			}
		})
	}
}

func greyGrid(t *testing.T, values [][]int) *Image {
	t.Helper()
	grid := make([][]Pixel, len(values))
	for r, row := range values {
		grid[r] = make([]Pixel, len(row))
		for c, v := range row {
			grid[r][c] = Grey(v)
		}
	}
	return mustImage(t, grid)
}

func TestDither_DiffusesRecordedError(t *testing.T) {
	tests := []struct {
		name string
		in   [][]int
		want [][]int
	}{
		{
			name: "flat grey",
			in: [][]int{
				{100, 100, 100, 100},
				{100, 100, 100, 100},
				{100, 100, 100, 100},
				{100, 100, 100, 100},
			},
			want: [][]int{
				{0, 0, 0, 0},
				{0, 0, 43, 43},
				{18, 49, 80, 49},
				{18, 49, 37, 6},
			},
		},
		{
			name: "mixed",
			in: [][]int{
				{100, 200, 30, 250},
				{60, 140, 90, 180},
				{10, 220, 127, 128},
				{255, 0, 50, 100},
			},
			want: [][]int{
				{0, 255, 0, 255},
				{0, 255, 0, 255},
				{0, 235, 12, 255},
				{248, 23, 39, 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dither(greyGrid(t, tt.in))
			want := greyGrid(t, tt.want)
			if diff := cmp.Diff(want.Grid(), got.Grid()); diff != "" {
				t.Errorf("Dither mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDither_LevelsAndErrors(t *testing.T) {
	img := greyGrid(t, [][]int{
		{100, 200, 30},
		{60, 140, 127},
		{128, 0, 255},
	})

	res := DitherDetailed(img)
	wantLevels := []int{0, 255, 0, 0, 255, 0, 255, 0, 255}
	if diff := cmp.Diff(wantLevels, res.Levels); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}
	wantErrors := []float64{100, -55, 30, 60, -115, 127, -127, 0, 0}
	if diff := cmp.Diff(wantErrors, res.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDither_BordersDoNotPropagate(t *testing.T) {
	// A 2x2 image has no interior pixels, so it is a plain threshold.
	img := mustImage(t, [][]Pixel{
		{Grey(127), Grey(127)},
		{Grey(127), Grey(128)},
	})
	want := [][]Pixel{
		{Grey(0), Grey(0)},
		{Grey(0), Grey(255)},
	}
	if diff := cmp.Diff(want, Dither(img).Grid()); diff != "" {
		t.Errorf("Dither mismatch (-want +got):\n%s", diff)
	}
}

func TestDither_UsesLuma(t *testing.T) {
	// Pure green is bright (luma 182), pure blue is dark (luma 18).
	img := mustImage(t, [][]Pixel{{{0, 255, 0}, {0, 0, 255}}})
	got := Dither(img)
	if got.At(0, 0) != Grey(255) || got.At(0, 1) != Grey(0) {
		t.Errorf("got %v and %v, want white then black", got.At(0, 0), got.At(0, 1))
	}
}

func TestDither_DoesNotModifyInput(t *testing.T) {
	img := gradientImage(t, 5, 5)
	before := img.Grid()
	Dither(img)
	if diff := cmp.Diff(before, img.Grid()); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}
