// Package boardfind locates the internal grid lines of a chessboard in a
// screenshot. It works on grayscale intensity matrices and follows a fixed
// pipeline: directional gradients, 1D Hough-style projections of the gradient
// sign products, and selection of the seven consistently spaced internal
// lines per axis.
package boardfind

import (
	"image"
	"image/color"
)

// Matrix is a dense grayscale raster stored in row-major order with
// intensities in the [0, 255] range. All transforms in this package treat
// their inputs as read-only and return new matrices.
type Matrix struct {
	// Rows and Cols are the matrix dimensions in pixels
	Rows int
	Cols int

	// Data holds Rows*Cols intensity values in row-major order
	Data []float64
}

// NewMatrix creates a zero-filled matrix of the given dimensions
func NewMatrix(rows, cols int) Matrix {
	return Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// At returns the intensity at row r, column c
func (m Matrix) At(r, c int) float64 {
	return m.Data[r*m.Cols+c]
}

// Set stores the intensity at row r, column c
func (m Matrix) Set(r, c int, v float64) {
	m.Data[r*m.Cols+c] = v
}

// Clone returns an independent copy of the matrix
func (m Matrix) Clone() Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	copy(out.Data, m.Data)
	return out
}

// FromImage converts an image to a grayscale intensity matrix using the
// standard luma weighting
func FromImage(img image.Image) Matrix {
	bounds := img.Bounds()
	out := NewMatrix(bounds.Dy(), bounds.Dx())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			out.Set(y-bounds.Min.Y, x-bounds.Min.X, float64(gray.Y))
		}
	}

	return out
}

// ToImage converts the matrix back to an 8-bit grayscale image, clamping
// values to the [0, 255] range. Used for tile export and debug output.
func (m Matrix) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Cols, m.Rows))

	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			img.SetGray(c, r, color.Gray{Y: uint8(clamp(m.At(r, c), 0, 255))})
		}
	}

	return img
}

// PadEdge returns a copy of the matrix grown by the given margins on each
// side, with the new border pixels replicating the nearest edge pixel
func (m Matrix) PadEdge(top, bottom, left, right int) Matrix {
	out := NewMatrix(m.Rows+top+bottom, m.Cols+left+right)

	for r := 0; r < out.Rows; r++ {
		// Clamp back into the source extent
		sr := clampInt(r-top, 0, m.Rows-1)
		for c := 0; c < out.Cols; c++ {
			sc := clampInt(c-left, 0, m.Cols-1)
			out.Set(r, c, m.At(sr, sc))
		}
	}

	return out
}

// Crop returns a copy of the half-open region [r0, r1) x [c0, c1)
func (m Matrix) Crop(r0, r1, c0, c1 int) Matrix {
	out := NewMatrix(r1-r0, c1-c0)

	for r := r0; r < r1; r++ {
		copy(out.Data[(r-r0)*out.Cols:(r-r0+1)*out.Cols], m.Data[r*m.Cols+c0:r*m.Cols+c1])
	}

	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
