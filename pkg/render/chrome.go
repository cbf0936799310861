package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeRenderer implements Renderer with a headless Chrome instance driven
// over the DevTools protocol. Each Render call runs in its own browser
// context so failed page loads cannot poison later captures.
type ChromeRenderer struct {
	// ViewportWidth and ViewportHeight size the emulated window
	ViewportWidth  int
	ViewportHeight int
}

// NewChromeRenderer creates a renderer with the given viewport, falling back
// to the default dimensions for non-positive values
func NewChromeRenderer(viewportWidth, viewportHeight int) *ChromeRenderer {
	if viewportWidth <= 0 {
		viewportWidth = DefaultViewportWidth
	}
	if viewportHeight <= 0 {
		viewportHeight = DefaultViewportHeight
	}
	return &ChromeRenderer{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

// Render loads the URL, waits for the page to settle, captures the viewport
// and crops it to the requested region
func (r *ChromeRenderer) Render(ctx context.Context, url string, region image.Rectangle, wait time.Duration) (image.Image, error) {
	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var buf []byte
	err := chromedp.Run(cctx,
		chromedp.EmulateViewport(int64(r.ViewportWidth), int64(r.ViewportHeight)),
		chromedp.Navigate(url),
		chromedp.Sleep(effectiveWait(wait)),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("error capturing %s: %w", url, err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("error decoding screenshot: %w", err)
	}

	if region.Empty() {
		return img, nil
	}
	return cropImage(img, region), nil
}
