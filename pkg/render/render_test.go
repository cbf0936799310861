package render

import (
	"image"
	"image/color"
	"testing"
	"time"
)

// TestCropImage verifies region extraction, including clipping to the image
// bounds
func TestCropImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	src.Set(30, 20, color.RGBA{R: 255, A: 255})

	cropped := cropImage(src, image.Rect(30, 20, 60, 50))

	bounds := cropped.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 30 {
		t.Fatalf("Expected 30x30 crop, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	r, _, _, _ := cropped.At(bounds.Min.X, bounds.Min.Y).RGBA()
	if r == 0 {
		t.Errorf("Expected marked pixel at crop origin")
	}

	// Regions larger than the image clip to its bounds
	clipped := cropImage(src, image.Rect(90, 70, 200, 200))
	if clipped.Bounds().Dx() != 10 || clipped.Bounds().Dy() != 10 {
		t.Errorf("Expected clipped 10x10 crop, got %dx%d",
			clipped.Bounds().Dx(), clipped.Bounds().Dy())
	}
}

// TestDefaultCropRegion verifies the board region of the default editor
// layout
func TestDefaultCropRegion(t *testing.T) {
	if DefaultCropRegion.Dx() != 519 || DefaultCropRegion.Dy() != 517 {
		t.Errorf("Unexpected default crop size %dx%d",
			DefaultCropRegion.Dx(), DefaultCropRegion.Dy())
	}
}

// TestNewChromeRenderer verifies that configured viewport dimensions reach
// the renderer and that non-positive values fall back to the defaults
func TestNewChromeRenderer(t *testing.T) {
	r := NewChromeRenderer(0, 0)
	if r.ViewportWidth != DefaultViewportWidth || r.ViewportHeight != DefaultViewportHeight {
		t.Errorf("Unexpected default viewport %dx%d", r.ViewportWidth, r.ViewportHeight)
	}

	r = NewChromeRenderer(1440, 900)
	if r.ViewportWidth != 1440 || r.ViewportHeight != 900 {
		t.Errorf("Expected 1440x900 viewport, got %dx%d", r.ViewportWidth, r.ViewportHeight)
	}
}

// TestEffectiveWait verifies the fallback settle time for unset waits
func TestEffectiveWait(t *testing.T) {
	if got := effectiveWait(0); got != DefaultWait {
		t.Errorf("Expected default wait %v for zero, got %v", DefaultWait, got)
	}
	if got := effectiveWait(500 * time.Millisecond); got != 500*time.Millisecond {
		t.Errorf("Expected explicit wait to pass through, got %v", got)
	}
}
