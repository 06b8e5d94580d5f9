package codec

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	imgcodec "github.com/disintegration/imaging"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

// DefaultJPEGQuality is used when a Codec has no quality set.
const DefaultJPEGQuality = 95

// Codec converts images to and from bytes and files.
//
// The zero value is ready to use.
type Codec struct {
	// JPEGQuality is the JPEG encoder quality, 1-100. Zero means DefaultJPEGQuality.
	JPEGQuality int
}

// New returns a Codec with the given JPEG quality.
func New(jpegQuality int) *Codec {
	return &Codec{JPEGQuality: jpegQuality}
}

func (c *Codec) quality() int {
	if c == nil || c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		return DefaultJPEGQuality
	}
	return c.JPEGQuality
}

// Decode parses an image from memory. Plain-text P3 data is recognized by
// its magic tag; anything else is decoded as PNG, JPEG, BMP or GIF.
func (c *Codec) Decode(data []byte) (*imaging.Image, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "the image data is empty")
	}
	if isPPM(data) {
		return DecodePPM(bytes.NewReader(data))
	}
	src, err := imgcodec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to decode image")
	}
	return imaging.FromImage(src)
}

// Encode serializes img in format f.
func (c *Codec) Encode(img *imaging.Image, f Format) ([]byte, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "image is nil")
	}
	var buf bytes.Buffer
	switch f {
	case FormatPPM:
		if err := EncodePPM(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatPNG:
		err := imgcodec.Encode(&buf, img.ToNRGBA(), imgcodec.PNG)
		return encoded(&buf, f, err)
	case FormatJPEG:
		err := imgcodec.Encode(&buf, img.ToNRGBA(), imgcodec.JPEG, imgcodec.JPEGQuality(c.quality()))
		return encoded(&buf, f, err)
	case FormatBMP:
		err := imgcodec.Encode(&buf, img.ToNRGBA(), imgcodec.BMP)
		return encoded(&buf, f, err)
	}
	return nil, errors.New(errors.ErrCodeInvalidArgument, "unsupported image format %d", int(f))
}

func encoded(buf *bytes.Buffer, f Format, err error) ([]byte, error) {
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to encode %s", f)
	}
	return buf.Bytes(), nil
}

// LoadFile reads an image from disk.
//
// Checks run in order: the path is non-empty, its extension names a
// supported format, the file exists, the file is non-empty, and finally the
// contents parse. The extension decides the decoder.
func (c *Codec) LoadFile(path string) (*imaging.Image, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "the file path is empty")
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "the file does not exist: %s", path)
	}
	if stat.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "%s is a directory", path)
	}
	if stat.Size() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "the file is empty: %s", path)
	}

	if f == FormatPPM {
		fh, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to open %s", path)
		}
		defer fh.Close()
		img, err := DecodePPM(fh)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return img, nil
	}

	src, err := imgio.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to decode %s", path)
	}
	return imaging.FromImage(src)
}

// SaveFile writes img to path in the format named by its extension. The
// parent directory must already exist.
func (c *Codec) SaveFile(img *imaging.Image, path string) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "image is nil")
	}
	if path == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "the file path is empty")
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return errors.New(errors.ErrCodeInvalidArgument, "folder does not exist: %s", dir)
	}

	var encoder imgio.Encoder
	switch f {
	case FormatPPM:
		return c.savePPM(img, path)
	case FormatPNG:
		encoder = imgio.PNGEncoder()
	case FormatJPEG:
		encoder = imgio.JPEGEncoder(c.quality())
	case FormatBMP:
		encoder = imgio.BMPEncoder()
	}
	if err := imgio.Save(path, img.ToNRGBA(), encoder); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to save %s", path)
	}
	return nil
}

func (c *Codec) savePPM(img *imaging.Image, path string) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "the file is not found at path: %s", path)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeInvalidArgument, cerr, "failed to close %s", path)
		}
	}()
	return EncodePPM(fh, img)
}
