package imaging

import (
	"github.com/ironsheep/grime/internal/errors"
)

// Rect is a pixel rectangle. Top and Left are inclusive, Bottom and Right
// exclusive.
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Regions lists the names accepted by RegionRect.
var Regions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// Crop returns the part of img inside r.
//
// # Errors
//
//   - INVALID_ARGUMENT if r is empty or reaches outside the image
func (img *Image) Crop(r Rect) (*Image, error) {
	if r.Top < 0 || r.Left < 0 || r.Bottom > img.rows || r.Right > img.cols {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"crop region (%d,%d)-(%d,%d) outside %dx%d image", r.Top, r.Left, r.Bottom, r.Right, img.rows, img.cols)
	}
	if r.Top >= r.Bottom || r.Left >= r.Right {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"invalid crop region: top must be < bottom, left must be < right")
	}

	w := r.Right - r.Left
	pix := make([]Pixel, 0, (r.Bottom-r.Top)*w)
	for row := r.Top; row < r.Bottom; row++ {
		start := row*img.cols + r.Left
		pix = append(pix, img.pix[start:start+w]...)
	}
	return &Image{rows: r.Bottom - r.Top, cols: w, maxValue: img.maxValue, pix: pix}, nil
}

// RegionRect returns the rectangle of a named region of img, such as
// "top-left" or "center" (the middle half in each direction).
func RegionRect(img *Image, region string) (Rect, error) {
	h, w := img.rows, img.cols
	midRow, midCol := h/2, w/2

	switch region {
	case "top-left":
		return Rect{0, 0, midRow, midCol}, nil
	case "top-right":
		return Rect{0, midCol, midRow, w}, nil
	case "bottom-left":
		return Rect{midRow, 0, h, midCol}, nil
	case "bottom-right":
		return Rect{midRow, midCol, h, w}, nil
	case "top-half":
		return Rect{0, 0, midRow, w}, nil
	case "bottom-half":
		return Rect{midRow, 0, h, w}, nil
	case "left-half":
		return Rect{0, 0, h, midCol}, nil
	case "right-half":
		return Rect{0, midCol, h, w}, nil
	case "center":
		qRow, qCol := h/4, w/4
		return Rect{qRow, qCol, h - qRow, w - qCol}, nil
	}
	return Rect{}, errors.New(errors.ErrCodeInvalidArgument, "unknown region %q", region)
}
