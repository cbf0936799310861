package boardfind

import (
	"testing"
)

// buildCheckerboard creates a synthetic board image with the given square
// size in pixels and two intensity levels
func buildCheckerboard(rows, cols, square int, dark, light float64) Matrix {
	m := NewMatrix(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if ((r/square)+(c/square))%2 == 0 {
				m.Set(r, c, dark)
			} else {
				m.Set(r, c, light)
			}
		}
	}
	return m
}

// TestDetectCheckerboard verifies the full pipeline on a clean 400x400
// checkerboard with 50px squares: both axes must yield the seven internal
// lines at multiples of 50
func TestDetectCheckerboard(t *testing.T) {
	m := buildCheckerboard(400, 400, 50, 50, 200)

	det := NewDetector().Detect(m)

	if !det.Match {
		t.Fatalf("Expected checkerboard to match, got lines x=%v y=%v", det.LinesX, det.LinesY)
	}

	want := []int{50, 100, 150, 200, 250, 300, 350}
	for i, w := range want {
		if det.LinesX[i] != w {
			t.Errorf("Expected vertical line %d at %d, got %d", i, w, det.LinesX[i])
		}
		if det.LinesY[i] != w {
			t.Errorf("Expected horizontal line %d at %d, got %d", i, w, det.LinesY[i])
		}
	}
}

// TestDetectRectangularPixels verifies detection when squares are not
// square in pixels, as happens with slightly anisotropic crops
func TestDetectRectangularPixels(t *testing.T) {
	m := NewMatrix(320, 400)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			if ((r/40)+(c/50))%2 == 0 {
				m.Set(r, c, 30)
			} else {
				m.Set(r, c, 220)
			}
		}
	}

	det := NewDetector().Detect(m)

	if !det.Match {
		t.Fatalf("Expected rectangular board to match, got lines x=%v y=%v", det.LinesX, det.LinesY)
	}
	if det.LinesX[0] != 50 || det.LinesX[6] != 350 {
		t.Errorf("Expected vertical lines from 50 to 350, got %v", det.LinesX)
	}
	if det.LinesY[0] != 40 || det.LinesY[6] != 280 {
		t.Errorf("Expected horizontal lines from 40 to 280, got %v", det.LinesY)
	}
}

// buildGridBoard creates a board whose cell boundaries sit at the given row
// and column positions rather than on a uniform pitch
func buildGridBoard(rows, cols int, linesY, linesX []int, dark, light float64) Matrix {
	cellIndex := func(lines []int, v int) int {
		n := 0
		for _, l := range lines {
			if v >= l {
				n++
			}
		}
		return n
	}

	m := NewMatrix(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if (cellIndex(linesY, r)+cellIndex(linesX, c))%2 == 0 {
				m.Set(r, c, dark)
			} else {
				m.Set(r, c, light)
			}
		}
	}
	return m
}

// TestDetectPerturbedGrid verifies end to end that boundaries displaced by up
// to 4px from a uniform pitch still match, and that the detected lines land
// on the true boundaries
func TestDetectPerturbedGrid(t *testing.T) {
	linesX := []int{50, 100, 146, 196, 244, 290, 336}
	linesY := []int{50, 100, 150, 200, 250, 300, 350}
	m := buildGridBoard(400, 400, linesY, linesX, 50, 200)

	det := NewDetector().Detect(m)

	if !det.Match {
		t.Fatalf("Expected perturbed grid to match, got lines x=%v y=%v", det.LinesX, det.LinesY)
	}
	for i := range linesX {
		if det.LinesX[i] != linesX[i] {
			t.Errorf("Expected vertical line %d at %d, got %d", i, linesX[i], det.LinesX[i])
		}
		if det.LinesY[i] != linesY[i] {
			t.Errorf("Expected horizontal line %d at %d, got %d", i, linesY[i], det.LinesY[i])
		}
	}
}

// TestDetectOverlyPerturbedGridFails verifies that a 6px boundary
// displacement breaks the gap consistency and the board is rejected
func TestDetectOverlyPerturbedGridFails(t *testing.T) {
	linesX := []int{50, 100, 156, 200, 250, 300, 350}
	linesY := []int{50, 100, 150, 200, 250, 300, 350}
	m := buildGridBoard(400, 400, linesY, linesX, 50, 200)

	det := NewDetector().Detect(m)

	if det.Match {
		t.Errorf("Expected displaced grid not to match, got lines x=%v y=%v", det.LinesX, det.LinesY)
	}
}

// TestDetectUniformImage verifies that a featureless image reports no match
// rather than an error
func TestDetectUniformImage(t *testing.T) {
	m := NewMatrix(200, 200)
	for i := range m.Data {
		m.Data[i] = 128
	}

	det := NewDetector().Detect(m)

	if det.Match {
		t.Errorf("Expected uniform image not to match, got lines x=%v y=%v", det.LinesX, det.LinesY)
	}
}

// TestDetectCoarseGridFails verifies that a grid with too few internal lines
// is rejected
func TestDetectCoarseGridFails(t *testing.T) {
	// 100px squares give only three internal lines per axis
	m := buildCheckerboard(400, 400, 100, 50, 200)

	det := NewDetector().Detect(m)

	if det.Match {
		t.Errorf("Expected coarse grid not to match, got lines x=%v y=%v", det.LinesX, det.LinesY)
	}
}

// TestDetectRetryRelaxesThreshold verifies the single retry pass: a
// threshold fraction above the peak response finds nothing on the first
// pass, and the scaled-down retry recovers the grid
func TestDetectRetryRelaxesThreshold(t *testing.T) {
	m := buildCheckerboard(400, 400, 50, 50, 200)

	d := &Detector{ThresholdFraction: 1.01, RetryScaleFactor: 0.9}
	det := d.Detect(m)

	if !det.Match {
		t.Fatalf("Expected retry pass to match, got lines x=%v y=%v", det.LinesX, det.LinesY)
	}

	// Without the retry the same threshold finds nothing
	strict := &Detector{ThresholdFraction: 1.01, RetryScaleFactor: 1.0}
	det = strict.Detect(m)
	if det.Match {
		t.Errorf("Expected over-threshold detection to fail without retry relaxation")
	}
}

// TestSelectGridLengthCheck verifies that six lines never match even when
// evenly spaced
func TestSelectGridLengthCheck(t *testing.T) {
	curve := make([]float64, 400)
	for i := 50; i <= 300; i += 50 {
		curve[i] = 10
	}

	det := selectGrid(curve, curve, 5, 5)

	if det.Match {
		t.Errorf("Expected six-line grid not to match, got %v", det.LinesX)
	}
	if len(det.LinesX) != 6 {
		t.Errorf("Expected 6 candidate lines, got %v", det.LinesX)
	}
}
