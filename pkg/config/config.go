// Package config provides configuration loading and management for
// chesstiles. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Detection parameters
	Detection struct {
		// ThresholdFraction is the fraction of the peak Hough response
		// used as the line acceptance threshold
		ThresholdFraction float64 `yaml:"thresholdFraction"`

		// RetryScaleFactor scales the threshold down for the single
		// retry after a failed detection
		RetryScaleFactor float64 `yaml:"retryScaleFactor"`

		// MaxImageDimension triggers a downscale of inputs larger than
		// this on either side before detection
		MaxImageDimension int `yaml:"maxImageDimension"`

		// DownscaleTarget is the longer-side size oversized inputs are
		// reduced to
		DownscaleTarget int `yaml:"downscaleTarget"`
	} `yaml:"detection"`

	// Render parameters for the screenshot capture
	Render struct {
		// ViewportWidth and ViewportHeight size the emulated browser
		ViewportWidth  int `yaml:"viewportWidth"`
		ViewportHeight int `yaml:"viewportHeight"`

		// WaitMillis is how long to let the page settle before capture
		WaitMillis int `yaml:"waitMillis"`

		// Crop is the page region holding the board, as left, top,
		// right, bottom pixel offsets
		Crop struct {
			Left   int `yaml:"left"`
			Top    int `yaml:"top"`
			Right  int `yaml:"right"`
			Bottom int `yaml:"bottom"`
		} `yaml:"crop"`
	} `yaml:"render"`

	// Generator parameters for random dataset creation
	Generator struct {
		// Count is how many random boards to generate
		Count int `yaml:"count"`

		// Charset is the symbol set random placements draw from
		Charset string `yaml:"charset"`

		// URLTemplate renders a placement into a board page URL
		URLTemplate string `yaml:"urlTemplate"`

		// NumCores specifies how many images to process in parallel
		NumCores int `yaml:"numCores"`
	} `yaml:"generator"`

	// Output parameters
	Output struct {
		// TileSize is the edge length of saved training tiles in pixels
		TileSize int `yaml:"tileSize"`

		// SaveIntermediaryResults determines whether to save
		// intermediary processing results
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// IntermediaryDir is where intermediary results are written
		IntermediaryDir string `yaml:"intermediaryDir"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default detection parameters
	cfg.Detection.ThresholdFraction = 0.6
	cfg.Detection.RetryScaleFactor = 0.9
	cfg.Detection.MaxImageDimension = 2000
	cfg.Detection.DownscaleTarget = 500

	// Set default render parameters
	cfg.Render.ViewportWidth = 1024
	cfg.Render.ViewportHeight = 768
	cfg.Render.WaitMillis = 2000
	cfg.Render.Crop.Left = 218
	cfg.Render.Crop.Top = 141
	cfg.Render.Crop.Right = 737
	cfg.Render.Crop.Bottom = 658

	// Set default generator parameters
	cfg.Generator.Count = 100
	cfg.Generator.Charset = "1KQRBNPkqrbnp"
	cfg.Generator.URLTemplate = "https://lichess.org/editor/%s"
	cfg.Generator.NumCores = runtime.NumCPU() // Use all available cores by default

	// Set default output parameters
	cfg.Output.TileSize = 32
	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.IntermediaryDir = "intermediary_results"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
