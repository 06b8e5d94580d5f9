package imaging

// ImageInfo contains metadata about a stored image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// MaxValue is the channel upper bound the image clamps to.
	MaxValue int `json:"max_value"`

	// Greyscale reports whether every pixel has equal channels.
	Greyscale bool `json:"greyscale"`

	// MeanIntensity is the rounded mean of per-pixel intensities.
	MeanIntensity int `json:"mean_intensity"`
}

// Info returns metadata about img.
func Info(img *Image) *ImageInfo {
	grey := true
	sum := 0
	for _, p := range img.pix {
		if grey && !p.IsGrey() {
			grey = false
		}
		sum += p.Intensity()
	}
	n := len(img.pix)
	return &ImageInfo{
		Width:         img.cols,
		Height:        img.rows,
		MaxValue:      img.maxValue,
		Greyscale:     grey,
		MeanIntensity: (sum + n/2) / n,
	}
}
