package models

import (
	"image"
)

// Board represents a single board screenshot with metadata
type Board struct {
	// Image is the cropped board raster
	Image image.Image

	// Index is the position of this board in the generated sequence
	Index int

	// Filename is the screenshot file the board was loaded from or saved to
	Filename string

	// Placement is the FEN board field encoded in the filename, empty when
	// the source image carries no label
	Placement string
}

// TileRecord describes one saved training tile
type TileRecord struct {
	// Square is the algebraic square name, a1 through h8
	Square string

	// Label is the FEN symbol occupying the square, 0 when unlabeled
	Label byte

	// Path is where the tile image was written
	Path string
}

// Result summarizes the processing of one board image
type Result struct {
	// Board is the processed screenshot
	Board Board

	// Matched reports whether the grid was found and the board sliced
	Matched bool

	// Tiles holds one record per saved tile when Matched is true
	Tiles []TileRecord

	// Err holds the failure when processing aborted before detection
	Err error
}
