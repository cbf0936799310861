package boardfind

import "math"

const (
	// requiredInteriorLines is the number of internal grid lines per axis;
	// eight squares share seven internal boundaries.
	requiredInteriorLines = 7

	// requiredMatchingGaps is how many consecutive consistent gaps confirm
	// a run of requiredInteriorLines lines (the first gap of the run only
	// establishes the reference spacing).
	requiredMatchingGaps = requiredInteriorLines - 2

	// gapTolerance is the pixel slack allowed between a gap and the run's
	// reference spacing before the run is considered broken
	gapTolerance = 5

	// Gaussian window applied to the binarized response curve before peak
	// thinning, so that clusters of adjacent super-threshold columns merge
	// into a single peak.
	gaussWindowWidth = 21
	gaussWindowSigma = 4.0
)

// gaussianWindow returns a discrete Gaussian window normalized to unit sum
func gaussianWindow(width int, sigma float64) []float64 {
	w := make([]float64, width)
	center := float64(width-1) / 2

	var sum float64
	for i := range w {
		d := (float64(i) - center) / sigma
		w[i] = math.Exp(-0.5 * d * d)
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}

	return w
}

// convolveSame convolves the signal with the window, returning a result of
// the signal's length. Samples outside the signal are treated as zero.
func convolveSame(signal, window []float64) []float64 {
	out := make([]float64, len(signal))
	half := len(window) / 2

	for i := range signal {
		var sum float64
		for k, wv := range window {
			j := i + k - half
			if j < 0 || j >= len(signal) {
				continue
			}
			sum += wv * signal[j]
		}
		out[i] = sum
	}

	return out
}

// skeletonize1D thins each local plateau of the curve to a single sample,
// favoring the rightmost sample of a flat run. The forward pass zeroes any
// sample not strictly greater than its right neighbor in the original curve;
// the reverse pass zeroes what survives with a larger left neighbor.
func skeletonize1D(arr []float64) []float64 {
	out := append([]float64(nil), arr...)

	for i := 0; i < len(out)-1; i++ {
		if arr[i] <= out[i+1] {
			out[i] = 0
		}
	}
	for i := len(out) - 1; i > 0; i-- {
		if out[i-1] > out[i] {
			out[i] = 0
		}
	}

	return out
}

// selectLines reduces a response curve to candidate line positions: binarize
// at the threshold, smooth with the Gaussian window, and keep the thinned
// peak positions
func selectLines(curve []float64, threshold float64) []int {
	binary := make([]float64, len(curve))
	for i, v := range curve {
		if v > threshold {
			binary[i] = 1
		}
	}

	blurred := convolveSame(binary, gaussianWindow(gaussWindowWidth, gaussWindowSigma))
	skel := skeletonize1D(blurred)

	var lines []int
	for i, v := range skel {
		if v != 0 {
			lines = append(lines, i)
		}
	}

	return lines
}

// pruneLines reduces a candidate set to the first run of seven consistently
// spaced lines. The walk tracks a reference gap; each gap within tolerance of
// the reference extends the run, and a gap outside it restarts the run there
// with the new gap as reference. If no full run exists the input is returned
// unchanged so the caller can reject it by length.
func pruneLines(lines []int) []int {
	ref := 0
	cnt := 0
	start := 0

	for i := 1; i < len(lines); i++ {
		gap := lines[i] - lines[i-1]
		if abs(gap-ref) < gapTolerance {
			cnt++
			if cnt == requiredMatchingGaps {
				return lines[start : i+1]
			}
		} else {
			cnt = 0
			ref = gap
			start = i - 1
		}
	}

	return lines
}

// checkMatch reports whether the line set ends on exactly the run of
// consistent gaps that a seven-line grid produces
func checkMatch(lines []int) bool {
	ref := 0
	cnt := 0

	for i := 1; i < len(lines); i++ {
		gap := lines[i] - lines[i-1]
		if abs(gap-ref) < gapTolerance {
			cnt++
		} else {
			cnt = 0
			ref = gap
		}
	}

	return cnt == requiredMatchingGaps
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
