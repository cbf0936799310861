package boardfind

// Binary morphology on {0, 1} valued matrices, built on the same convolution
// as the gradients. A convolution with an all-ones structuring element counts
// the set neighbors, and clipping the count recovers the morphological
// result: any neighbor set for dilation, all neighbors set for erosion.

func onesKernel(size int) Kernel {
	k := make(Kernel, size)
	for i := range k {
		k[i] = make([]float64, size)
		for j := range k[i] {
			k[i][j] = 1
		}
	}
	return k
}

func clipMatrix(m Matrix, lo, hi float64) Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i, v := range m.Data {
		out.Data[i] = clamp(v, lo, hi)
	}
	return out
}

func subMatrix(a, b Matrix) Matrix {
	out := NewMatrix(a.Rows, a.Cols)
	for i := range a.Data {
		out.Data[i] = a.Data[i] - b.Data[i]
	}
	return out
}

func addScalar(m Matrix, s float64) Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i, v := range m.Data {
		out.Data[i] = v + s
	}
	return out
}

// Dilate sets a pixel when any pixel under the size x size neighborhood is
// set. A neighbor count of n maps through clip(n, 1, 2) - 1 to exactly 0 or 1.
func Dilate(m Matrix, size int) Matrix {
	conv := Convolve(m, onesKernel(size))
	return addScalar(clipMatrix(conv, 1, 2), -1)
}

// Erode sets a pixel only when every pixel under the size x size neighborhood
// is set
func Erode(m Matrix, size int) Matrix {
	full := float64(size * size)
	conv := Convolve(m, onesKernel(size))
	return addScalar(clipMatrix(conv, full-1, full), -(full - 1))
}

// Opening erodes then dilates, removing isolated set pixels
func Opening(m Matrix, size int) Matrix {
	return Dilate(Erode(m, size), size)
}

// Closing dilates then erodes, filling isolated holes
func Closing(m Matrix, size int) Matrix {
	return Erode(Dilate(m, size), size)
}

// Skeleton thins set regions to their residue under a single erosion step:
// eroded pixels that an opening of the eroded matrix does not restore
func Skeleton(m Matrix, size int) Matrix {
	eroded := Erode(m, size)
	return clipMatrix(subMatrix(eroded, Opening(eroded, size)), 0, 1)
}
