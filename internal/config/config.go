// Package config holds the runtime configuration, loaded from an
// optional YAML file layered over defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Publishers are imprint names stripped from spine edges.
	Publishers []string `yaml:"publishers"`
	// ArtifactTokens are recurring OCR garbage tokens to delete.
	ArtifactTokens []string `yaml:"artifact_tokens"`
	// CompoundOverrides force specific splits for glued words the
	// dictionary segmentation cannot recover.
	CompoundOverrides map[string]string `yaml:"compound_overrides"`

	// Detector picks the text detector: "tesseract" or "gemini".
	Detector    string `yaml:"detector"`
	OCRLanguage string `yaml:"ocr_language"`
	GeminiModel string `yaml:"gemini_model"`

	// Providers orders the metadata catalogs to query.
	Providers []string `yaml:"providers"`

	// ListPath is where the reading lists are stored.
	ListPath string `yaml:"list_path"`
}

// Default returns the configuration tuned for French paperbacks.
func Default() Config {
	return Config{
		Publishers: []string{
			"POCKET", "POINTS", "FOLIO", "EE", "RIVAGES", "POCHE",
			"FAYARD", "GALLIMARD", "GRASSET", "SEUIL", "ACTES SUD",
			"MINUIT", "FLAMMARION",
		},
		ArtifactTokens: []string{"QOTIE", "ISBN", "SE"},
		Detector:       "tesseract",
		OCRLanguage:    "fra",
		GeminiModel:    "gemini-2.0-flash",
		Providers:      []string{"openlibrary", "googlebooks"},
		ListPath:       "library.json",
	}
}

// Load overlays the YAML file at path onto the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
