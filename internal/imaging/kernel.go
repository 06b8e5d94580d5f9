package imaging

import (
	"github.com/ironsheep/grime/internal/errors"
)

// Kernel is an immutable square matrix of weights with an odd side length,
// applied to images by ApplyKernel.
type Kernel struct {
	side    int
	weights []float64
}

// NewKernel validates and copies a weight matrix.
//
// # Errors
//
//   - INVALID_KERNEL if the matrix is empty, has an even side, or any row
//     length differs from the number of rows
func NewKernel(weights [][]float64) (*Kernel, error) {
	side := len(weights)
	if side == 0 {
		return nil, errors.New(errors.ErrCodeInvalidKernel, "kernel is empty")
	}
	if side%2 == 0 {
		return nil, errors.New(errors.ErrCodeInvalidKernel, "kernel side %d is even", side)
	}
	flat := make([]float64, 0, side*side)
	for i, row := range weights {
		if len(row) != side {
			return nil, errors.New(errors.ErrCodeInvalidKernel,
				"kernel is not square: row %d has %d weights, want %d", i, len(row), side)
		}
		flat = append(flat, row...)
	}
	return &Kernel{side: side, weights: flat}, nil
}

// Side returns the side length.
func (k *Kernel) Side() int { return k.side }

// At returns the weight at (i, j).
func (k *Kernel) At(i, j int) float64 {
	return k.weights[i*k.side+j]
}

// validate re-checks the invariants NewKernel establishes. A nil or zero
// Kernel fails.
func (k *Kernel) validate() error {
	if k == nil {
		return errors.New(errors.ErrCodeInvalidKernel, "kernel is nil")
	}
	if k.side <= 0 || k.side%2 == 0 || len(k.weights) != k.side*k.side {
		return errors.New(errors.ErrCodeInvalidKernel, "kernel is malformed")
	}
	return nil
}

func mustKernel(weights [][]float64) *Kernel {
	k, err := NewKernel(weights)
	if err != nil {
		panic(err)
	}
	return k
}

// BlurKernel returns the 3x3 Gaussian-like blur preset (weights sum to 1):
//
//	1/16 1/8 1/16
//	1/8  1/4 1/8
//	1/16 1/8 1/16
func BlurKernel() *Kernel {
	return mustKernel([][]float64{
		{0.0625, 0.125, 0.0625},
		{0.125, 0.25, 0.125},
		{0.0625, 0.125, 0.0625},
	})
}

// SharpenKernel returns the 5x5 sharpen preset (weights sum to 1).
func SharpenKernel() *Kernel {
	return mustKernel([][]float64{
		{-0.125, -0.125, -0.125, -0.125, -0.125},
		{-0.125, 0.25, 0.25, 0.25, -0.125},
		{-0.125, 0.25, 1.0, 0.25, -0.125},
		{-0.125, 0.25, 0.25, 0.25, -0.125},
		{-0.125, -0.125, -0.125, -0.125, -0.125},
	})
}

// IdentityKernel returns a side x side kernel with all weight at the center.
// side must be odd and positive.
func IdentityKernel(side int) (*Kernel, error) {
	if side <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidKernel, "kernel side must be positive, got %d", side)
	}
	w := make([][]float64, side)
	for i := range w {
		w[i] = make([]float64, side)
	}
	w[side/2][side/2] = 1
	return NewKernel(w)
}
