package tiles

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// DefaultTileSize is the canonical training tile edge length in pixels
const DefaultTileSize = 32

// Save writes all 64 tiles of the stack into dir as PNG files resized to
// size x size pixels, named <base>_<square>.png (for example
// lichess0007_a8.png)
func (s *Stack) Save(dir, base string, size int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating tile directory: %w", err)
	}

	for i := range s.Tiles {
		resized := resizeGray(s.Tiles[i].ToImage(), size, size)
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, SquareName(i)))

		if err := writePNG(path, resized); err != nil {
			return fmt.Errorf("error saving tile %s: %w", SquareName(i), err)
		}
	}

	return nil
}

// resizeGray scales a grayscale image to the given dimensions with bilinear
// interpolation
func resizeGray(src *image.Gray, width, height int) *image.Gray {
	if src.Bounds().Dx() == width && src.Bounds().Dy() == height {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
