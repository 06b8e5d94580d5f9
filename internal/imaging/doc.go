// Package imaging provides the immutable pixel and image model and the
// transformation engines that derive new images from it.
//
// An Image is a rectangular, row-major grid of Pixels plus a maximum channel
// value (255 by default). Images are never modified after construction:
// flips, brightening, greyscale extraction, convolution, color transforms,
// dithering, mosaic posterization and RGB split/combine all return a newly
// allocated Image.
//
// # Coordinate System
//
// Positions are (row, col), 0-based, with (0,0) at the top-left. Mosaic seeds
// are generated as (x, y) = (col, row).
//
// # Clamping
//
// Every channel produced by an operation is clamped to [0, MaxValue()].
// Overflow is not an error; it saturates.
//
// # Engines
//
//   - ApplyKernel: square odd-sized convolution with zero padding (Blur, Sharpen presets)
//   - ApplyTransform: 3x3 per-pixel color matrix (LumaGreyscale, Sepia presets)
//   - Dither: luma threshold with Floyd-Steinberg style error diffusion
//   - Mosaic: deterministic seed clustering with per-cluster mean color
//   - CombineRGB / (*Image).SplitRGB: channel separation and reassembly
//   - (*Image).Crop / RegionRect: sub-images, such as a quadrant to zoom into
//
// # Thread Safety
//
// Images and Pixels are values that are only ever read, so they may be shared
// across goroutines without synchronization. All operations are synchronous.
//
// # Error Handling
//
// Validation failures are returned as *errors.Error values carrying one of
// the codes in the internal/errors package (INVALID_SHAPE, INVALID_KERNEL,
// INVALID_TRANSFORM, UNKNOWN_COMPONENT, INVALID_SEED_COUNT, INVALID_ARGUMENT,
// NOT_GREYSCALE).
package imaging
