// Package ops dispatches named image operations to the imaging engine.
package ops

import (
	"strings"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

// Op is an image operation.
type Op int

// The closed set of operations.
const (
	FlipHorizontal Op = iota
	FlipVertical
	Brighten
	Greyscale
	Split
	Combine
	Blur
	Sharpen
	Sepia
	Dither
	Mosaic
)

// All lists every operation in declaration order.
var All = []Op{
	FlipHorizontal, FlipVertical, Brighten, Greyscale, Split, Combine,
	Blur, Sharpen, Sepia, Dither, Mosaic,
}

// ParseOp maps an operation name to an Op. Script spellings are accepted
// alongside the short names: "horizontal-flip" for "flip-h",
// "rgb-split" for "split" and so on.
func ParseOp(name string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flip-h", "horizontal-flip":
		return FlipHorizontal, nil
	case "flip-v", "vertical-flip":
		return FlipVertical, nil
	case "brighten":
		return Brighten, nil
	case "greyscale", "grayscale":
		return Greyscale, nil
	case "split", "rgb-split":
		return Split, nil
	case "combine", "rgb-combine":
		return Combine, nil
	case "blur":
		return Blur, nil
	case "sharpen":
		return Sharpen, nil
	case "sepia":
		return Sepia, nil
	case "dither":
		return Dither, nil
	case "mosaic":
		return Mosaic, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownOperation, "unknown operation %q", name)
}

// String returns the short name of the operation.
func (o Op) String() string {
	switch o {
	case FlipHorizontal:
		return "flip-h"
	case FlipVertical:
		return "flip-v"
	case Brighten:
		return "brighten"
	case Greyscale:
		return "greyscale"
	case Split:
		return "split"
	case Combine:
		return "combine"
	case Blur:
		return "blur"
	case Sharpen:
		return "sharpen"
	case Sepia:
		return "sepia"
	case Dither:
		return "dither"
	case Mosaic:
		return "mosaic"
	}
	return "unknown"
}

// Inputs is the number of images the operation consumes.
func (o Op) Inputs() int {
	if o == Combine {
		return 3
	}
	return 1
}

// Outputs is the number of images the operation produces.
func (o Op) Outputs() int {
	if o == Split {
		return 3
	}
	return 1
}

// Args carries the scalar parameters of an operation. Fields an operation
// does not use are ignored.
type Args struct {
	// Delta is the brighten amount; negative darkens.
	Delta int
	// Component selects the greyscale scalar. Nil applies the luma
	// ColorTransform.
	Component *imaging.Component
	// Seeds is the mosaic seed count.
	Seeds int
	// MosaicSeed seeds the mosaic PRNG. Zero means imaging.DefaultMosaicSeed.
	MosaicSeed uint64
}

// Apply runs op over images and returns its results: three images for
// Split, one otherwise. Inputs are never modified.
//
// # Errors
//
//   - UNKNOWN_OPERATION if op is not one of the declared operations
//   - INVALID_ARGUMENT if the number of images does not match op.Inputs() or
//     an image is nil
//   - any error of the underlying imaging operation
func Apply(op Op, images []*imaging.Image, args Args) ([]*imaging.Image, error) {
	if op < FlipHorizontal || op > Mosaic {
		return nil, errors.New(errors.ErrCodeUnknownOperation, "unknown operation %d", int(op))
	}
	if len(images) != op.Inputs() {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"%s needs %d image(s), got %d", op, op.Inputs(), len(images))
	}
	for i, img := range images {
		if img == nil {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "%s: image %d is nil", op, i)
		}
	}
	src := images[0]

	var (
		out *imaging.Image
		err error
	)
	switch op {
	case FlipHorizontal:
		out = src.FlipHorizontal()
	case FlipVertical:
		out = src.FlipVertical()
	case Brighten:
		out = src.Brighten(args.Delta)
	case Greyscale:
		if args.Component == nil {
			out, err = imaging.LumaGreyscale(src)
		} else {
			out, err = src.Greyscale(*args.Component)
		}
	case Split:
		parts := src.SplitRGB()
		return parts[:], nil
	case Combine:
		out, err = imaging.CombineRGB(images...)
	case Blur:
		out, err = imaging.Blur(src)
	case Sharpen:
		out, err = imaging.Sharpen(src)
	case Sepia:
		out, err = imaging.Sepia(src)
	case Dither:
		out = imaging.Dither(src)
	case Mosaic:
		seed := args.MosaicSeed
		if seed == 0 {
			seed = imaging.DefaultMosaicSeed
		}
		out, err = imaging.MosaicWithSeed(src, args.Seeds, seed)
	}
	if err != nil {
		return nil, err
	}
	return []*imaging.Image{out}, nil
}
