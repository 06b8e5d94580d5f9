package ops

import (
	"testing"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

func testImage(t *testing.T) *imaging.Image {
	t.Helper()
	img, err := imaging.New([][]imaging.Pixel{
		{{R: 10, G: 20, B: 30}, {R: 40, G: 50, B: 60}, {R: 70, G: 80, B: 90}},
		{{R: 200, G: 100, B: 0}, {R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}},
		{{R: 5, G: 5, B: 5}, {R: 128, G: 64, B: 32}, {R: 1, G: 2, B: 3}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

func TestParseOp(t *testing.T) {
	tests := []struct {
		name string
		want Op
	}{
		{"flip-h", FlipHorizontal},
		{"horizontal-flip", FlipHorizontal},
		{"flip-v", FlipVertical},
		{"vertical-flip", FlipVertical},
		{"Brighten", Brighten},
		{"greyscale", Greyscale},
		{"rgb-split", Split},
		{"rgb-combine", Combine},
		{"blur", Blur},
		{"sharpen", Sharpen},
		{"sepia", Sepia},
		{"dither", Dither},
		{" mosaic ", Mosaic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOp(tt.name)
			if err != nil {
				t.Fatalf("ParseOp failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ParseOp("emboss"); !errors.Is(err, errors.ErrCodeUnknownOperation) {
		t.Errorf("emboss: got %v, want UNKNOWN_OPERATION", err)
	}
}

func TestOp_StringRoundTrip(t *testing.T) {
	for _, op := range All {
		got, err := ParseOp(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOp(%q) = %v, %v", op.String(), got, err)
		}
	}
}

func TestApply_MatchesEngine(t *testing.T) {
	img := testImage(t)
	luma := imaging.LumaComponent

	blurred, _ := imaging.Blur(img)
	sharpened, _ := imaging.Sharpen(img)
	sepia, _ := imaging.Sepia(img)
	greyLuma, _ := imaging.LumaGreyscale(img)
	greyComp, _ := img.Greyscale(luma)
	mosaic, _ := imaging.Mosaic(img, 4)

	tests := []struct {
		op   Op
		args Args
		want *imaging.Image
	}{
		{FlipHorizontal, Args{}, img.FlipHorizontal()},
		{FlipVertical, Args{}, img.FlipVertical()},
		{Brighten, Args{Delta: 30}, img.Brighten(30)},
		{Greyscale, Args{}, greyLuma},
		{Greyscale, Args{Component: &luma}, greyComp},
		{Blur, Args{}, blurred},
		{Sharpen, Args{}, sharpened},
		{Sepia, Args{}, sepia},
		{Dither, Args{}, imaging.Dither(img)},
		{Mosaic, Args{Seeds: 4}, mosaic},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, err := Apply(tt.op, []*imaging.Image{img}, tt.args)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("got %d results, want 1", len(got))
			}
			if !got[0].Equal(tt.want) {
				t.Error("result differs from the engine operation")
			}
		})
	}
}

func TestApply_SplitThenCombine(t *testing.T) {
	img := testImage(t)
	parts, err := Apply(Split, []*imaging.Image{img}, Args{})
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(parts) != Split.Outputs() {
		t.Fatalf("got %d parts, want %d", len(parts), Split.Outputs())
	}
	out, err := Apply(Combine, parts, Args{})
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}
	if !out[0].Equal(img) {
		t.Error("split then combine should restore the image")
	}
}

func TestApply_Errors(t *testing.T) {
	img := testImage(t)
	bad := imaging.Component(42)

	tests := []struct {
		name   string
		op     Op
		images []*imaging.Image
		args   Args
		code   errors.Code
	}{
		{"unknown op", Op(99), []*imaging.Image{img}, Args{}, errors.ErrCodeUnknownOperation},
		{"no images", Blur, nil, Args{}, errors.ErrCodeInvalidArgument},
		{"nil image", Blur, []*imaging.Image{nil}, Args{}, errors.ErrCodeInvalidArgument},
		{"combine with one", Combine, []*imaging.Image{img}, Args{}, errors.ErrCodeInvalidArgument},
		{"combine colour input", Combine, []*imaging.Image{img, img, img}, Args{}, errors.ErrCodeNotGreyscale},
		{"mosaic without seeds", Mosaic, []*imaging.Image{img}, Args{}, errors.ErrCodeInvalidSeedCount},
		{"unknown component", Greyscale, []*imaging.Image{img}, Args{Component: &bad}, errors.ErrCodeUnknownComponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(tt.op, tt.images, tt.args)
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestApply_MosaicSeedIsReproducible(t *testing.T) {
	grid := make([][]imaging.Pixel, 12)
	for r := range grid {
		grid[r] = make([]imaging.Pixel, 12)
		for c := range grid[r] {
			grid[r][c] = imaging.Grey(r*12 + c)
		}
	}
	img, err := imaging.New(grid)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a, err := Apply(Mosaic, []*imaging.Image{img}, Args{Seeds: 6, MosaicSeed: 1})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	again, err := Apply(Mosaic, []*imaging.Image{img}, Args{Seeds: 6, MosaicSeed: 1})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !a[0].Equal(again[0]) {
		t.Error("same PRNG seed should give the same mosaic")
	}
}
