package boardfind

import "gonum.org/v1/gonum/floats"

// The grid lines are known to be axis aligned, so instead of a full 2D Hough
// parameter space two 1D projections are enough. Internal chessboard lines
// alternate gradient sign along their length, so the product of the summed
// positive part and the summed negative part peaks exactly on those lines and
// stays near zero on one-sided edges such as the board border.

// HoughX projects a horizontal gradient onto the column axis. The result has
// one value per column; peaks mark candidate vertical lines.
func HoughX(dx Matrix) []float64 {
	curve := make([]float64, dx.Cols)

	for c := 0; c < dx.Cols; c++ {
		var pos, neg float64
		for r := 0; r < dx.Rows; r++ {
			v := dx.At(r, c)
			pos += clamp(v, 0, 255)
			neg += -clamp(v, -255, 0)
		}
		curve[c] = pos * neg / float64(dx.Rows*dx.Rows)
	}

	return curve
}

// HoughY projects a vertical gradient onto the row axis. The result has one
// value per row; peaks mark candidate horizontal lines.
func HoughY(dy Matrix) []float64 {
	curve := make([]float64, dy.Rows)

	for r := 0; r < dy.Rows; r++ {
		var pos, neg float64
		for c := 0; c < dy.Cols; c++ {
			v := dy.At(r, c)
			pos += clamp(v, 0, 255)
			neg += -clamp(v, -255, 0)
		}
		curve[r] = pos * neg / float64(dy.Cols*dy.Cols)
	}

	return curve
}

// responseThreshold places the line acceptance level at a fraction of the
// strongest response in the curve
func responseThreshold(curve []float64, fraction float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	return floats.Max(curve) * fraction
}
