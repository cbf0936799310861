// Package fen generates and manipulates FEN piece placements for training
// data. Placements are the board field of a FEN string only; side to move,
// castling rights and clocks are irrelevant to tile labeling. Generated
// placements sample the piece space uniformly and are not required to be
// legal chess positions.
package fen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/corentings/chess/v2"
)

// DefaultCharset are the symbols a square can hold in a generated placement:
// '1' for an empty square plus the twelve piece letters
const DefaultCharset = "1KQRBNPkqrbnp"

// DefaultEditorURLTemplate renders a placement on the lichess board editor
const DefaultEditorURLTemplate = "https://lichess.org/editor/%s"

// RandomPlacement returns a placement with each of the 64 squares drawn
// uniformly from the charset, as 8 groups of 8 symbols joined by '/'. An
// empty charset falls back to DefaultCharset.
func RandomPlacement(rng *rand.Rand, charset string) string {
	if charset == "" {
		charset = DefaultCharset
	}

	var b strings.Builder
	for rank := 0; rank < 8; rank++ {
		if rank > 0 {
			b.WriteByte('/')
		}
		for file := 0; file < 8; file++ {
			b.WriteByte(charset[rng.Intn(len(charset))])
		}
	}

	return b.String()
}

// Collapse folds runs of '1' into their count digit, producing the canonical
// FEN board field ("11111111" becomes "8")
func Collapse(placement string) string {
	var b strings.Builder
	run := 0

	flush := func() {
		if run > 0 {
			b.WriteByte(byte('0' + run))
			run = 0
		}
	}

	for i := 0; i < len(placement); i++ {
		switch c := placement[i]; c {
		case '1':
			run++
		case '/':
			flush()
			b.WriteByte(c)
		default:
			flush()
			b.WriteByte(c)
		}
	}
	flush()

	return b.String()
}

// Expand is the inverse of Collapse: every empty-count digit becomes that
// many '1' symbols, so each rank group is exactly 8 symbols long
func Expand(placement string) (string, error) {
	groups := strings.Split(placement, "/")
	if len(groups) != 8 {
		return "", fmt.Errorf("placement has %d ranks, want 8", len(groups))
	}

	out := make([]string, 8)
	for gi, group := range groups {
		var b strings.Builder
		for i := 0; i < len(group); i++ {
			c := group[i]
			if c >= '1' && c <= '8' {
				b.WriteString(strings.Repeat("1", int(c-'0')))
			} else {
				b.WriteByte(c)
			}
		}
		if b.Len() != 8 {
			return "", fmt.Errorf("rank %d expands to %d squares, want 8", 8-gi, b.Len())
		}
		out[gi] = b.String()
	}

	return strings.Join(out, "/"), nil
}

// Validate checks that the placement describes exactly 8 ranks of 8 squares
// over the known piece symbols
func Validate(placement string) error {
	expanded, err := Expand(placement)
	if err != nil {
		return err
	}

	for i := 0; i < len(expanded); i++ {
		c := expanded[i]
		if c == '/' {
			continue
		}
		if !strings.ContainsRune(DefaultCharset, rune(c)) {
			return fmt.Errorf("invalid piece symbol %q", c)
		}
	}

	return nil
}

// Game builds a chess game from the placement, assuming white to move with
// no castling rights. Useful for downstream consumers that want to reason
// about the position rather than the raster.
func Game(placement string) (*chess.Game, error) {
	fenOpt, err := chess.FEN(Collapse(placement) + " w - - 0 1")
	if err != nil {
		return nil, fmt.Errorf("error parsing placement: %w", err)
	}
	return chess.NewGame(fenOpt), nil
}

// LabelAt returns the symbol occupying the tile at the given stack index,
// where index 0 is a1 and index 63 is h8. The first rank group of a
// placement is rank 8.
func LabelAt(placement string, index int) (byte, error) {
	if index < 0 || index > 63 {
		return 0, fmt.Errorf("tile index %d out of range", index)
	}

	expanded, err := Expand(placement)
	if err != nil {
		return 0, err
	}

	groups := strings.Split(expanded, "/")
	rank := index/8 + 1
	file := index % 8

	return groups[8-rank][file], nil
}

// EditorURL returns the lichess editor URL that renders the placement
func EditorURL(placement string) string {
	return fmt.Sprintf(DefaultEditorURLTemplate, placement)
}

// ToFileName encodes a placement for use in a file name by replacing the
// rank separators with dashes
func ToFileName(placement string) string {
	return strings.ReplaceAll(placement, "/", "-")
}

// FromFileName is the inverse of ToFileName
func FromFileName(name string) string {
	return strings.ReplaceAll(name, "-", "/")
}
