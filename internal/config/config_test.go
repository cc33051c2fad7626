package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Detector != "tesseract" || cfg.OCRLanguage != "fra" {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(cfg.Publishers) == 0 {
		t.Error("default publishers empty")
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
detector: gemini
list_path: /tmp/books.json
compound_overrides:
  labeauteduciel: La beauté du ciel
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Detector != "gemini" {
		t.Errorf("detector = %q", cfg.Detector)
	}
	if cfg.ListPath != "/tmp/books.json" {
		t.Errorf("list path = %q", cfg.ListPath)
	}
	if cfg.CompoundOverrides["labeauteduciel"] != "La beauté du ciel" {
		t.Errorf("overrides = %v", cfg.CompoundOverrides)
	}
	// Fields absent from the file keep their defaults.
	if cfg.OCRLanguage != "fra" {
		t.Errorf("ocr language = %q, want default", cfg.OCRLanguage)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
