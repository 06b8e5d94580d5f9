// Package codec reads and writes images.
//
// The plain-text P3 format is implemented here bit-exactly; PNG, JPEG and
// BMP go through the raster libraries. Every failure is an INVALID_ARGUMENT
// error carrying a diagnostic message.
package codec

import (
	"path/filepath"
	"strings"

	"github.com/ironsheep/grime/internal/errors"
)

// Format is a supported file format.
type Format int

// The closed set of formats.
const (
	FormatPPM Format = iota
	FormatPNG
	FormatJPEG
	FormatBMP
)

// Formats lists every format in declaration order.
var Formats = []Format{FormatPPM, FormatPNG, FormatJPEG, FormatBMP}

// ParseFormat maps a format name or file extension ("png", ".jpg") to a
// Format. Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unsupported image format %q", name)
}

// FormatFromPath returns the format named by the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "file %q has no extension", path)
	}
	return ParseFormat(ext)
}

// String returns the canonical lower-case name.
func (f Format) String() string {
	switch f {
	case FormatPPM:
		return "ppm"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	}
	return "unknown"
}

// MimeType returns the media type of the format.
func (f Format) MimeType() string {
	switch f {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatBMP:
		return "image/bmp"
	}
	return "application/octet-stream"
}
