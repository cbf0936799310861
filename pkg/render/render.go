// Package render captures board screenshots for the dataset generator. A
// Renderer loads a URL in a browser, waits for the page to settle, and
// returns the pixels of a fixed page region.
package render

import (
	"context"
	"image"
	"image/draw"
	"time"
)

// DefaultCropRegion is the pixel region of the lichess editor page that
// contains the board at the default viewport size
var DefaultCropRegion = image.Rect(218, 141, 737, 658)

const (
	// DefaultViewportWidth and DefaultViewportHeight size the emulated
	// browser window; the crop region assumes this layout
	DefaultViewportWidth  = 1024
	DefaultViewportHeight = 768

	// DefaultWait gives the page time to render the board before capture
	DefaultWait = 2 * time.Second
)

// Renderer renders a URL and returns the pixels of the given page region.
// An empty region returns the full viewport.
type Renderer interface {
	Render(ctx context.Context, url string, region image.Rectangle, wait time.Duration) (image.Image, error)
}

// effectiveWait substitutes the default settle time for non-positive waits
func effectiveWait(wait time.Duration) time.Duration {
	if wait <= 0 {
		return DefaultWait
	}
	return wait
}

// cropImage extracts a copy-free view of the region when the decoded image
// supports it, copying otherwise
func cropImage(img image.Image, region image.Rectangle) image.Image {
	region = region.Intersect(img.Bounds())

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(region)
	}

	dst := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	draw.Draw(dst, dst.Bounds(), img, region.Min, draw.Src)
	return dst
}
