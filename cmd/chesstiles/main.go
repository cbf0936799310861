package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"chesstiles/internal/models"
	"chesstiles/pkg/config"
	"chesstiles/pkg/dataset"
	"chesstiles/pkg/render"
)

func main() {
	// Parse command line arguments
	inputDir := flag.String("input", "", "Directory of existing board screenshots to slice (skips capture)")
	outputDir := flag.String("output", "train_gen_lichess", "Directory for captured screenshots and tiles")
	count := flag.Int("count", 0, "Number of random boards to generate (0 = use config value)")
	numCores := flag.Int("cores", 0, "Number of boards to process in parallel (0 = use config value)")
	seed := flag.Int64("seed", 0, "Random seed for placement generation (0 = time-based)")
	configPath := flag.String("config", "chesstiles.yaml", "Path to YAML configuration file")
	initConfig := flag.Bool("init-config", false, "Write the default configuration file and exit")
	saveIntermediary := flag.Bool("save-intermediary", false, "Save intermediary results during processing")
	flag.Parse()

	if *initConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Wrote default configuration to %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Command line flags override the configuration
	if *count > 0 {
		cfg.Generator.Count = *count
	}
	if *numCores > 0 {
		cfg.Generator.NumCores = *numCores
	}
	if *saveIntermediary {
		cfg.Output.SaveIntermediaryResults = true
	}

	fmt.Println("================================")
	fmt.Println("CHESSTILES - CHESSBOARD TILE DATASET GENERATOR")
	fmt.Println("Random board screenshots sliced into labeled training tiles")
	fmt.Println("================================")

	params := dataset.ParamsFromConfig(cfg, *outputDir)
	params.Seed = *seed

	startTime := time.Now()

	var results []models.Result
	if *inputDir != "" {
		// Tileset mode: slice existing screenshots
		fmt.Printf("Slicing existing screenshots from: %s\n", *inputDir)
		generator := dataset.NewGenerator(params, nil)
		results, err = generator.ProcessFolder(*inputDir)
	} else {
		// Generate mode: capture random boards, then slice them
		fmt.Printf("Generating %d random boards into: %s\n", cfg.Generator.Count, *outputDir)
		renderer := render.NewChromeRenderer(cfg.Render.ViewportWidth, cfg.Render.ViewportHeight)
		generator := dataset.NewGenerator(params, renderer)
		results, err = generator.Generate(context.Background())
	}
	if err != nil {
		log.Fatalf("Dataset generation failed: %v", err)
	}
	processingTime := time.Since(startTime)

	matched := 0
	labeled := 0
	for _, res := range results {
		if !res.Matched {
			continue
		}
		matched++
		for _, tile := range res.Tiles {
			if tile.Label != 0 {
				labeled++
			}
		}
	}

	fmt.Printf("\nDataset generation completed in %.2f seconds!\n", processingTime.Seconds())
	fmt.Printf("Boards processed: %d\n", len(results))
	fmt.Printf("Boards matched:   %d\n", matched)
	fmt.Printf("Tiles saved:      %d (%d labeled)\n", matched*64, labeled)
	fmt.Printf("Output directory: %s\n", *outputDir)

	if cfg.Output.SaveIntermediaryResults {
		fmt.Println("\nIntermediary results saved to:")
		fmt.Printf("%s\n", cfg.Output.IntermediaryDir)
		fmt.Println("The following stages were saved:")
		fmt.Println("- 01_grayscale: Grayscale board images as seen by the detector")
		fmt.Println("- 02_gradient_x: Horizontal gradient responses")
		fmt.Println("- 03_gradient_y: Vertical gradient responses")
	}

	if *numCores > 0 {
		fmt.Printf("\nUsed %d cores for processing\n", *numCores)
	}
}
