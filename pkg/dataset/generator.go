// Package dataset builds labeled chessboard tile datasets. It renders random
// board placements on a website board editor, detects the board grid in the
// screenshots, slices each board into 64 tiles and saves them with the piece
// labels recovered from the placement encoded in the screenshot filename.
package dataset

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"chesstiles/internal/models"
	"chesstiles/pkg/boardfind"
	"chesstiles/pkg/config"
	"chesstiles/pkg/fen"
	"chesstiles/pkg/render"
	"chesstiles/pkg/tiles"
)

// Params holds the dataset generation parameters. These control the random
// board generation, the screenshot capture, the grid detection and the tile
// output.
type Params struct {
	// OutputDir is where screenshots and tiles are written
	OutputDir string

	// Count is how many random boards to generate
	Count int

	// Charset is the symbol set random placements draw from
	Charset string

	// URLTemplate renders a placement into a board page URL
	URLTemplate string

	// NumCores specifies how many images to process in parallel
	NumCores int

	// TileSize is the edge length of saved tiles in pixels
	TileSize int

	// ThresholdFraction and RetryScaleFactor tune the grid detector
	ThresholdFraction float64
	RetryScaleFactor  float64

	// MaxImageDimension triggers a downscale of inputs larger than this
	// on either side; DownscaleTarget is the longer-side size they are
	// reduced to
	MaxImageDimension int
	DownscaleTarget   int

	// CropRegion is the page region holding the board
	CropRegion image.Rectangle

	// RenderWait is how long to let the page settle before capture
	RenderWait time.Duration

	// Seed initializes the placement generator; zero seeds from the clock
	Seed int64

	// SaveIntermediaryResults determines whether to save intermediary
	// processing results
	SaveIntermediaryResults bool

	// IntermediaryDir is the directory where intermediary results are saved
	IntermediaryDir string

	// Verbose controls the level of logging output
	Verbose bool
}

// ParamsFromConfig maps the application configuration onto generation
// parameters for the given output directory
func ParamsFromConfig(cfg *config.Config, outputDir string) *Params {
	return &Params{
		OutputDir:         outputDir,
		Count:             cfg.Generator.Count,
		Charset:           cfg.Generator.Charset,
		URLTemplate:       cfg.Generator.URLTemplate,
		NumCores:          cfg.Generator.NumCores,
		TileSize:          cfg.Output.TileSize,
		ThresholdFraction: cfg.Detection.ThresholdFraction,
		RetryScaleFactor:  cfg.Detection.RetryScaleFactor,
		MaxImageDimension: cfg.Detection.MaxImageDimension,
		DownscaleTarget:   cfg.Detection.DownscaleTarget,
		CropRegion: image.Rect(cfg.Render.Crop.Left, cfg.Render.Crop.Top,
			cfg.Render.Crop.Right, cfg.Render.Crop.Bottom),
		RenderWait:              time.Duration(cfg.Render.WaitMillis) * time.Millisecond,
		SaveIntermediaryResults: cfg.Output.SaveIntermediaryResults,
		IntermediaryDir:         cfg.Output.IntermediaryDir,
		Verbose:                 cfg.Output.Verbose,
	}
}

// Generator runs the dataset pipeline:
// 1. Generating random placements and capturing board screenshots
// 2. Detecting the board grid in each screenshot
// 3. Slicing matched boards into 64 tiles
// 4. Saving labeled tiles for training
type Generator struct {
	// params stores the generation configuration
	params *Params

	// renderer captures board screenshots; nil disables the render step
	// so ProcessFolder can run on existing screenshots
	renderer render.Renderer

	// detector locates the board grid
	detector *boardfind.Detector
}

// NewGenerator creates a generator instance with the provided parameters
func NewGenerator(params *Params, renderer render.Renderer) *Generator {
	detector := boardfind.NewDetector()
	if params.ThresholdFraction > 0 {
		detector.ThresholdFraction = params.ThresholdFraction
	}
	if params.RetryScaleFactor > 0 {
		detector.RetryScaleFactor = params.RetryScaleFactor
	}

	return &Generator{
		params:   params,
		renderer: renderer,
		detector: detector,
	}
}

// Generate runs the complete pipeline: capture Count random board
// screenshots into the output directory, then process them into labeled
// tiles. Failed captures and unmatched boards are skipped, not fatal.
func (g *Generator) Generate(ctx context.Context) ([]models.Result, error) {
	if g.renderer == nil {
		return nil, fmt.Errorf("no renderer configured")
	}
	if err := os.MkdirAll(g.params.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %v", err)
	}

	seed := g.params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Step 1: Render random board screenshots
	fmt.Println("Step 1: Capturing random board screenshots...")
	captured := 0
	for i := 0; i < g.params.Count; i++ {
		placement := fen.RandomPlacement(rng, g.params.Charset)
		url := fmt.Sprintf(g.params.URLTemplate, placement)

		if g.params.Verbose {
			fmt.Printf("#%d : %s\n", i, placement)
		}

		img, err := g.renderer.Render(ctx, url, g.params.CropRegion, g.params.RenderWait)
		if err != nil {
			fmt.Printf("Warning: Failed to capture board %d: %v\n", i, err)
			continue
		}

		name := fmt.Sprintf("lichess%04d__%s.png", i, fen.ToFileName(placement))
		if err := savePNG(filepath.Join(g.params.OutputDir, name), img); err != nil {
			fmt.Printf("Warning: Failed to save board %d: %v\n", i, err)
			continue
		}
		captured++
	}
	fmt.Printf("Captured %d of %d boards\n", captured, g.params.Count)

	// Step 2: Slice the captured screenshots into labeled tiles
	return g.ProcessFolder(g.params.OutputDir)
}

// ProcessFolder detects and slices every board screenshot in the directory,
// saving the tiles of each matched board under <OutputDir>/tiles/<base>/.
// Boards are processed in parallel across NumCores workers.
func (g *Generator) ProcessFolder(inputDir string) ([]models.Result, error) {
	// Create intermediary directory if needed
	if g.params.SaveIntermediaryResults {
		if err := os.MkdirAll(g.params.IntermediaryDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create intermediary directory: %v", err)
		}
	}

	fmt.Println("Step 2: Detecting and slicing boards...")
	files, err := listImages(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list input images: %v", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no board images found in %s", inputDir)
	}

	numWorkers := g.params.NumCores
	if numWorkers < 1 {
		numWorkers = 1
	}

	taskChan := make(chan models.Board)
	resultChan := make(chan models.Result)

	for w := 0; w < numWorkers; w++ {
		go func() {
			for board := range taskChan {
				resultChan <- g.processBoard(board)
			}
		}()
	}

	go func() {
		for i, file := range files {
			placement := placementFromFilename(file)
			taskChan <- models.Board{
				Index:     i,
				Filename:  filepath.Join(inputDir, file),
				Placement: placement,
			}
		}
		close(taskChan)
	}()

	// Collect results
	results := make([]models.Result, 0, len(files))
	matched := 0
	for completed := 0; completed < len(files); completed++ {
		res := <-resultChan
		results = append(results, res)

		if res.Err != nil {
			fmt.Printf("\nWarning: Failed to process %s: %v\n", res.Board.Filename, res.Err)
		} else if res.Matched {
			matched++
		}

		progress := float64(completed+1) / float64(len(files)) * 100
		fmt.Printf("\rProcessing boards: %.1f%% complete", progress)
	}
	fmt.Println() // New line after progress

	sort.Slice(results, func(i, j int) bool {
		return results[i].Board.Index < results[j].Board.Index
	})

	fmt.Printf("Matched %d of %d boards\n", matched, len(files))
	return results, nil
}

// processBoard runs detection and slicing for a single screenshot
func (g *Generator) processBoard(board models.Board) models.Result {
	res := models.Result{Board: board}

	img, err := loadImage(board.Filename)
	if err != nil {
		res.Err = fmt.Errorf("failed to load board image: %v", err)
		return res
	}
	img = g.downscaleIfOversized(img)
	board.Image = img
	res.Board = board

	m := boardfind.FromImage(img)
	if g.params.SaveIntermediaryResults {
		g.saveIntermediaryResult("01_grayscale", m, board.Index)
		g.saveIntermediaryResult("02_gradient_x", boardfind.GradientX(m), board.Index)
		g.saveIntermediaryResult("03_gradient_y", boardfind.GradientY(m), board.Index)
	}

	det := g.detector.Detect(m)
	if !det.Match {
		return res
	}

	stack, err := tiles.Slice(m, det.LinesX, det.LinesY)
	if err != nil {
		res.Err = fmt.Errorf("failed to slice board: %v", err)
		return res
	}
	res.Matched = true

	base := strings.TrimSuffix(filepath.Base(board.Filename), filepath.Ext(board.Filename))
	tileDir := filepath.Join(g.params.OutputDir, "tiles", base)

	tileSize := g.params.TileSize
	if tileSize <= 0 {
		tileSize = tiles.DefaultTileSize
	}
	if err := stack.Save(tileDir, base, tileSize); err != nil {
		res.Err = fmt.Errorf("failed to save tiles: %v", err)
		return res
	}

	res.Tiles = make([]models.TileRecord, 64)
	for i := range stack.Tiles {
		square := tiles.SquareName(i)
		rec := models.TileRecord{
			Square: square,
			Path:   filepath.Join(tileDir, fmt.Sprintf("%s_%s.png", base, square)),
		}
		if board.Placement != "" {
			if label, err := fen.LabelAt(board.Placement, i); err == nil {
				rec.Label = label
			}
		}
		res.Tiles[i] = rec
	}

	return res
}

// downscaleIfOversized reduces images larger than MaxImageDimension on either
// side to DownscaleTarget pixels on the longer side, preserving aspect ratio
func (g *Generator) downscaleIfOversized(img image.Image) image.Image {
	maxDim := g.params.MaxImageDimension
	target := g.params.DownscaleTarget
	if maxDim <= 0 || target <= 0 {
		return img
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	ratio := float64(target) / float64(w)
	if h > w {
		ratio = float64(target) / float64(h)
	}
	if g.params.Verbose {
		fmt.Printf("Image too big (%d x %d), reducing by factor of %.2g\n", w, h, 1/ratio)
	}

	dst := image.NewRGBA(image.Rect(0, 0,
		int(math.Round(float64(w)*ratio)), int(math.Round(float64(h)*ratio))))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// saveIntermediaryResult writes a debug image for one processing stage
func (g *Generator) saveIntermediaryResult(stage string, m boardfind.Matrix, index int) {
	dir := filepath.Join(g.params.IntermediaryDir, stage)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Warning: Failed to create stage directory %s: %v\n", dir, err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("board_%04d.png", index))
	if err := savePNG(path, m.ToImage()); err != nil {
		fmt.Printf("Warning: Failed to save %s stage for board %d: %v\n", stage, index, err)
	}
}

// placementFromFilename recovers the FEN board field from a dataset filename
// of the form <prefix>__<placement-with-dashes>.<ext>, returning "" when the
// name carries no placement
func placementFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.Index(base, "__")
	if idx < 0 {
		return ""
	}

	placement := fen.FromFileName(base[idx+2:])
	if fen.Validate(placement) != nil {
		return ""
	}
	return placement
}

// listImages returns the image filenames in the directory in lexical order,
// skipping anything already sliced into the tiles subdirectory
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// loadImage decodes a PNG, JPEG or GIF image from disk
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
