package boardfind

// Default detector tuning. The acceptance threshold sits at 3/5 of the
// strongest response; a failed pass is retried once with the threshold scaled
// down to catch boards with slightly weaker line contrast.
const (
	DefaultThresholdFraction = 0.6
	DefaultRetryScaleFactor  = 0.9
)

// Detection holds the located grid lines of one image. LinesX are column
// indices of vertical lines, LinesY are row indices of horizontal lines, both
// ascending. Match reports whether both axes produced exactly seven
// consistently spaced lines; when it is false the line slices hold whatever
// candidates survived pruning and must not be sliced into tiles.
type Detection struct {
	LinesX []int
	LinesY []int
	Match  bool
}

// Detector finds chessboard grid lines in grayscale images. The zero value is
// not usable; construct with NewDetector.
type Detector struct {
	// ThresholdFraction is the fraction of the peak Hough response used as
	// the line acceptance threshold
	ThresholdFraction float64

	// RetryScaleFactor scales the thresholds down for the single retry
	// pass after a failed match
	RetryScaleFactor float64
}

// NewDetector creates a detector with the default tuning
func NewDetector() *Detector {
	return &Detector{
		ThresholdFraction: DefaultThresholdFraction,
		RetryScaleFactor:  DefaultRetryScaleFactor,
	}
}

// Detect runs the full line detection pipeline on a grayscale image matrix.
// A failed detection is an expected outcome reported through the Match flag,
// not an error.
func (d *Detector) Detect(m Matrix) Detection {
	hx := HoughX(GradientX(m))
	hy := HoughY(GradientY(m))

	tx := responseThreshold(hx, d.ThresholdFraction)
	ty := responseThreshold(hy, d.ThresholdFraction)

	det := selectGrid(hx, hy, tx, ty)
	if !det.Match {
		// One more try with relaxed thresholds
		det = selectGrid(hx, hy, tx*d.RetryScaleFactor, ty*d.RetryScaleFactor)
	}

	return det
}

// selectGrid runs line selection on both axes at the given thresholds and
// checks the seven-line grid condition
func selectGrid(hx, hy []float64, tx, ty float64) Detection {
	linesX := pruneLines(selectLines(hx, tx))
	linesY := pruneLines(selectLines(hy, ty))

	match := len(linesX) == requiredInteriorLines &&
		len(linesY) == requiredInteriorLines &&
		checkMatch(linesX) && checkMatch(linesY)

	return Detection{
		LinesX: linesX,
		LinesY: linesY,
		Match:  match,
	}
}
