// Package tiles splits a detected chessboard into its 64 squares and saves
// them as fixed-size training tiles.
package tiles

import (
	"fmt"
	"math"

	"github.com/corentings/chess/v2"
	"gonum.org/v1/gonum/stat"

	"chesstiles/pkg/boardfind"
)

// Stack holds the 64 square images of one board, all of the same StepY x
// StepX shape. Tiles are indexed (7-row)*8 + col with row 0 at the top of the
// image, so for a white-oriented board index 0 is a1 (bottom-left cell) and
// index 63 is h8 (top-right cell).
type Stack struct {
	Tiles [64]boardfind.Matrix

	// StepX and StepY are the square size in pixels, the rounded mean gap
	// of the detected lines per axis
	StepX int
	StepY int
}

// SquareName returns the algebraic square name for a tile index
func SquareName(index int) string {
	sq := chess.NewSquare(chess.FileA+chess.File(index%8), chess.Rank1+chess.Rank(index/8))
	return sq.String()
}

// Slice cuts the source image into 64 equally sized square tiles using the
// seven detected internal lines per axis. The outer board boundary is
// synthesized one mean step beyond the first and last internal lines; where
// it overhangs the image, or where rounding leaves a cell short of the step
// size, the missing pixels are filled by edge replication. Interior cells a
// pixel over the step size are clamped instead.
func Slice(m boardfind.Matrix, linesX, linesY []int) (*Stack, error) {
	if len(linesX) != 7 || len(linesY) != 7 {
		return nil, fmt.Errorf("malformed line set: need 7 lines per axis, got %d x and %d y", len(linesX), len(linesY))
	}

	stepX := meanStep(linesX)
	stepY := meanStep(linesY)

	// Pad the source where the synthesized boundary overhangs it
	var padLX, padRX, padLY, padRY int
	if linesX[0]-stepX < 0 {
		padLX = stepX - linesX[0]
	}
	if linesX[6]+stepX > m.Cols-1 {
		padRX = linesX[6] + stepX - m.Cols
	}
	if linesY[0]-stepY < 0 {
		padLY = stepY - linesY[0]
	}
	if linesY[6]+stepY > m.Rows-1 {
		padRY = linesY[6] + stepY - m.Rows
	}
	padded := m.PadEdge(padLY, padRY, padLX, padRX)

	// Nine boundaries per axis, shifted into the padded frame and then
	// rebased onto the cropped board region
	setsX := boundaries(linesX, stepX, padLX)
	setsY := boundaries(linesY, stepY, padLY)

	board := padded.Crop(setsY[0], setsY[8], setsX[0], setsX[8])
	rebase(setsX)
	rebase(setsY)

	stack := &Stack{StepX: stepX, StepY: stepY}

	for col := 0; col < 8; col++ {
		x1, x2, cellPadLX, cellPadRX := cellSpan(setsX, col, stepX)
		for row := 0; row < 8; row++ {
			y1, y2, cellPadLY, cellPadRY := cellSpan(setsY, row, stepY)

			tile := board.Crop(y1, y2, x1, x2)
			if cellPadLX+cellPadRX+cellPadLY+cellPadRY > 0 {
				tile = tile.PadEdge(cellPadLY, cellPadRY, cellPadLX, cellPadRX)
			}

			stack.Tiles[(7-row)*8+col] = tile
		}
	}

	return stack, nil
}

// meanStep is the rounded mean gap between consecutive lines
func meanStep(lines []int) int {
	gaps := make([]float64, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		gaps[i-1] = float64(lines[i] - lines[i-1])
	}
	return int(math.Round(stat.Mean(gaps, nil)))
}

// boundaries extends the seven internal lines with the synthesized outer
// boundary one step beyond each end, shifted right by the left padding
func boundaries(lines []int, step, padLeft int) []int {
	sets := make([]int, 9)
	sets[0] = lines[0] - step + padLeft
	for i, l := range lines {
		sets[i+1] = l + padLeft
	}
	sets[8] = lines[6] + step + padLeft
	return sets
}

// rebase shifts the boundaries so the first one becomes zero
func rebase(sets []int) {
	first := sets[0]
	for i := range sets {
		sets[i] -= first
	}
}

// cellSpan resolves the pixel span of one cell to exactly step pixels. Spans
// a pixel over the step shrink toward the board interior; spans under it
// report edge padding instead, on the outer side of the cell.
func cellSpan(sets []int, i, step int) (lo, hi, padLo, padHi int) {
	lo = sets[i]
	hi = sets[i+1]

	switch {
	case hi-lo > step:
		if i == 7 {
			lo = hi - step
		} else {
			hi = lo + step
		}
	case hi-lo < step:
		if i == 7 {
			padHi = step - (hi - lo)
		} else {
			padLo = step - (hi - lo)
		}
	}

	return lo, hi, padLo, padHi
}
