package cmd

import (
	"context"
	"fmt"

	"github.com/shelfscan/shelfscan/internal/config"
	"github.com/shelfscan/shelfscan/internal/detect"
	"github.com/shelfscan/shelfscan/internal/dictionary"
	"github.com/shelfscan/shelfscan/internal/library"
	"github.com/shelfscan/shelfscan/internal/scanner"
	"github.com/shelfscan/shelfscan/internal/search"
	"github.com/shelfscan/shelfscan/internal/textproc"
)

// app bundles the wired components the subcommands share.
type app struct {
	cfg     config.Config
	library *library.Library
	scanner *scanner.Scanner
	search  *search.Orchestrator
}

func buildApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	dict := dictionary.Load()
	cleaner := textproc.NewCleaner(cfg.Publishers, cfg.ArtifactTokens)
	composer := textproc.NewComposer(dict, textproc.WithOverrides(cfg.CompoundOverrides))
	extractor := textproc.NewExtractor(cleaner, composer)

	var detector detect.Detector
	switch cfg.Detector {
	case "tesseract":
		detector = detect.NewTesseractDetector(cfg.OCRLanguage)
	case "gemini":
		detector = detect.NewGeminiDetector(cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown detector %q (supported: tesseract, gemini)", cfg.Detector)
	}

	providers := make([]search.Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		switch name {
		case "openlibrary":
			providers = append(providers, search.NewOpenLibrary())
		case "googlebooks":
			providers = append(providers, search.NewGoogleBooks())
		default:
			return nil, fmt.Errorf("unknown search provider %q", name)
		}
	}
	orchestrator := search.NewOrchestrator(providers...)

	lib, err := library.Open(ctx, library.NewFileStore(cfg.ListPath))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		library: lib,
		scanner: scanner.New(detector, extractor, orchestrator, lib),
		search:  orchestrator,
	}, nil
}
