package codec

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
)

// ppmMagic is the tag that opens every plain-text image.
const ppmMagic = "P3"

// ppmWriteMax is the maximum channel value written in every header.
const ppmWriteMax = 255

// DecodePPM parses a plain-text P3 image.
//
// Lines whose first character is '#' are discarded before tokenizing. The
// remaining whitespace-separated fields are the magic tag, width, height,
// maximum channel value and then width*height r g b triples in row-major
// order. Channel values are trusted and not clamped. Fields after the last
// triple are ignored.
func DecodePPM(r io.Reader) (*imaging.Image, error) {
	tokens, err := ppmTokens(r)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "the file is empty")
	}
	if tokens[0] != ppmMagic {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"invalid PPM file: plain RAW file should begin with %s, got %q", ppmMagic, tokens[0])
	}

	next := 1
	readInt := func(what string) (int, error) {
		if next >= len(tokens) {
			return 0, errors.New(errors.ErrCodeInvalidArgument, "truncated PPM data: missing %s", what)
		}
		v, err := strconv.Atoi(tokens[next])
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid %s %q", what, tokens[next])
		}
		next++
		return v, nil
	}

	width, err := readInt("width")
	if err != nil {
		return nil, err
	}
	height, err := readInt("height")
	if err != nil {
		return nil, err
	}
	maxValue, err := readInt("max channel value")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "invalid PPM dimensions %dx%d", width, height)
	}
	if maxValue <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "invalid PPM max channel value %d", maxValue)
	}
	// Dividing keeps width*height from overflowing on crafted headers.
	if remaining := len(tokens) - next; width > remaining/3/height {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"truncated PPM data: got %d channel values for %dx%d pixels", remaining, width, height)
	}

	pix := make([]imaging.Pixel, width*height)
	for i := range pix {
		red, err := readInt("red channel")
		if err != nil {
			return nil, err
		}
		green, err := readInt("green channel")
		if err != nil {
			return nil, err
		}
		blue, err := readInt("blue channel")
		if err != nil {
			return nil, err
		}
		pix[i] = imaging.Pixel{R: red, G: green, B: blue}
	}

	img, err := imaging.FromPixels(pix, width, height, maxValue)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid PPM image")
	}
	return img, nil
}

// ppmTokens splits the non-comment lines of r into fields.
func ppmTokens(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var tokens []string
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 && line[0] != '#' {
			tokens = append(tokens, strings.Fields(line)...)
		}
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to read PPM data")
		}
	}
}

// EncodePPM writes img as plain-text P3.
//
// The layout is "P3\n", "width height\n", "255\n", then one line per row in
// which every channel value is followed by a single space. The header always
// declares 255; channel values are written as stored.
func EncodePPM(w io.Writer, img *imaging.Image) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "image is nil")
	}
	bw := bufio.NewWriter(w)

	bw.WriteString(ppmMagic)
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(img.Width()))
	bw.WriteByte(' ')
	bw.WriteString(strconv.Itoa(img.Height()))
	bw.WriteByte('\n')
	bw.WriteString(strconv.Itoa(ppmWriteMax))
	bw.WriteByte('\n')

	for r := 0; r < img.Height(); r++ {
		for c := 0; c < img.Width(); c++ {
			p := img.At(r, c)
			for _, v := range [3]int{p.R, p.G, p.B} {
				bw.WriteString(strconv.Itoa(v))
				bw.WriteByte(' ')
			}
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to write PPM data")
	}
	return nil
}

// isPPM reports whether data looks like a plain-text image: the first
// non-comment field is the magic tag.
func isPPM(data []byte) bool {
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		fields := bytes.Fields(line)
		if len(fields) == 0 {
			continue
		}
		return string(fields[0]) == ppmMagic
	}
	return false
}
