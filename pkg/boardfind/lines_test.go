package boardfind

import (
	"math"
	"testing"
)

// TestGaussianWindow verifies normalization and symmetry of the smoothing
// window
func TestGaussianWindow(t *testing.T) {
	w := gaussianWindow(gaussWindowWidth, gaussWindowSigma)

	if len(w) != gaussWindowWidth {
		t.Fatalf("Expected window of width %d, got %d", gaussWindowWidth, len(w))
	}

	var sum float64
	for _, v := range w {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("Expected unit sum, got %f", sum)
	}

	for i := 0; i < len(w)/2; i++ {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
			t.Errorf("Expected symmetric window, w[%d]=%g w[%d]=%g", i, w[i], len(w)-1-i, w[len(w)-1-i])
		}
	}

	center := len(w) / 2
	for i, v := range w {
		if v > w[center] {
			t.Errorf("Expected peak at center, w[%d]=%g exceeds w[%d]=%g", i, v, center, w[center])
		}
	}
}

// TestSkeletonize1DFavorsRight verifies that a flat plateau thins to its
// rightmost sample
func TestSkeletonize1DFavorsRight(t *testing.T) {
	arr := []float64{0, 1, 1, 0}
	out := skeletonize1D(arr)

	want := []float64{0, 0, 1, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, out)
			break
		}
	}
}

// TestSkeletonize1DSinglePeak verifies that an isolated peak survives intact
func TestSkeletonize1DSinglePeak(t *testing.T) {
	arr := []float64{0, 0.2, 0.9, 0.3, 0}
	out := skeletonize1D(arr)

	for i, v := range out {
		if i == 2 {
			if v != 0.9 {
				t.Errorf("Expected peak value 0.9 at index 2, got %f", v)
			}
		} else if v != 0 {
			t.Errorf("Expected zero at index %d, got %f", i, v)
		}
	}
}

// TestSelectLinesFindsPeaks verifies the binarize-blur-thin chain on a curve
// with two well-separated peaks
func TestSelectLinesFindsPeaks(t *testing.T) {
	curve := make([]float64, 200)
	curve[60] = 10
	curve[140] = 10

	lines := selectLines(curve, 5)

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != 60 || lines[1] != 140 {
		t.Errorf("Expected lines at 60 and 140, got %v", lines)
	}
}

// TestPruneLinesKeepsConsistentRun verifies that a noisy candidate set prunes
// to the evenly spaced run of seven
func TestPruneLinesKeepsConsistentRun(t *testing.T) {
	// Two stray candidates in front of a clean 50px grid
	lines := []int{3, 11, 50, 100, 150, 200, 250, 300, 350}

	pruned := pruneLines(lines)

	want := []int{50, 100, 150, 200, 250, 300, 350}
	if len(pruned) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(pruned), pruned)
	}
	for i := range want {
		if pruned[i] != want[i] {
			t.Errorf("Expected line %d at %d, got %d", i, want[i], pruned[i])
		}
	}
}

// TestPruneLinesNoRunReturnsInput verifies that an inconsistent set passes
// through unchanged so the caller can reject it by length
func TestPruneLinesNoRunReturnsInput(t *testing.T) {
	lines := []int{10, 25, 70, 90, 160, 180, 260}

	pruned := pruneLines(lines)

	if len(pruned) != len(lines) {
		t.Fatalf("Expected input returned unchanged, got %v", pruned)
	}
	for i := range lines {
		if pruned[i] != lines[i] {
			t.Errorf("Expected line %d at %d, got %d", i, lines[i], pruned[i])
		}
	}
}

// TestCheckMatchJitterTolerance verifies the 5px gap tolerance: per-line
// jitter up to 4px keeps the grid matching, 6px or more breaks it
func TestCheckMatchJitterTolerance(t *testing.T) {
	exact := []int{50, 100, 150, 200, 250, 300, 350}
	if !checkMatch(exact) {
		t.Errorf("Expected exact grid to match")
	}

	// Every gap within 4px of the 50px reference gap
	jittered := []int{50, 100, 146, 196, 244, 290, 336}
	if !checkMatch(jittered) {
		t.Errorf("Expected grid with 4px gap jitter to match")
	}

	// A 6px gap deviation restarts the run
	broken := []int{50, 100, 156, 200, 250, 300, 350}
	if checkMatch(broken) {
		t.Errorf("Expected grid with 6px gap deviation to fail")
	}

	// Too few lines never accumulate a full run
	short := []int{50, 100, 150, 200, 250}
	if checkMatch(short) {
		t.Errorf("Expected five-line set to fail")
	}
}
