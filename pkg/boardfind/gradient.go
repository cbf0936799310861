package boardfind

// Kernel is a small square convolution kernel
type Kernel [][]float64

// Chessboard lines are axis aligned, so two fixed directional kernels are
// enough. Each one responds with opposite signs on the light-to-dark and
// dark-to-light transitions that alternate along a chessboard edge.
var (
	kernelGradientX = Kernel{
		{-1, 0, 1},
		{-1, 0, 1},
		{-1, 0, 1},
	}
	kernelGradientY = Kernel{
		{-1, -1, -1},
		{0, 0, 0},
		{1, 1, 1},
	}
)

// Convolve applies the kernel to the matrix and returns a result of the same
// size. Samples outside the matrix are treated as zero.
func Convolve(m Matrix, k Kernel) Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	kh := len(k)
	kw := len(k[0])
	// Anchor the kernel at its center
	oy := kh / 2
	ox := kw / 2

	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			var sum float64
			for ky := 0; ky < kh; ky++ {
				sr := r + ky - oy
				if sr < 0 || sr >= m.Rows {
					continue
				}
				for kx := 0; kx < kw; kx++ {
					sc := c + kx - ox
					if sc < 0 || sc >= m.Cols {
						continue
					}
					sum += k[ky][kx] * m.At(sr, sc)
				}
			}
			out.Set(r, c, sum)
		}
	}

	return out
}

// GradientX computes the horizontal intensity gradient of the matrix.
// Vertical chessboard lines show up as columns of large-magnitude values
// whose sign alternates between adjacent squares.
func GradientX(m Matrix) Matrix {
	return Convolve(m, kernelGradientX)
}

// GradientY computes the vertical intensity gradient of the matrix
func GradientY(m Matrix) Matrix {
	return Convolve(m, kernelGradientY)
}
