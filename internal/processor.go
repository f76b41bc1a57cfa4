package internal

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rm-hull/pixel-expander/internal/raster"
)

const outputPrefix = "expanded_"

var supportedExtensions = []string{".png", ".jpg", ".jpeg"}

type ProcessorConfig struct {
	Config
	InputDir  string
	OutputDir string
	// SkipExisting leaves inputs alone when their output file is already present.
	SkipExisting bool
}

// Report summarises one pass over the input directory.
type Report struct {
	Processed int
	Skipped   int
	Errors    []error
}

// FileError records why a single input file could not be expanded.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("error processing %s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

type Processor struct {
	cfg    ProcessorConfig
	stages []raster.PipelineStage
}

func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.InputDir == "" || cfg.OutputDir == "" {
		return nil, errors.New("input and output directories must both be set")
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}
	return &Processor{
		cfg:    cfg,
		stages: cfg.Pipeline(),
	}, nil
}

func IsSupportedImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func OutputName(name string) string {
	return outputPrefix + name
}

// Run expands every supported image in the input directory, one at a time,
// in name order. A file that fails is logged and recorded in the report; it
// never stops the rest of the batch. The returned error is only set when the
// input directory itself cannot be read.
func (p *Processor) Run() (Report, error) {
	var report Report
	startTime := time.Now()

	entries, err := os.ReadDir(p.cfg.InputDir)
	if err != nil {
		return report, fmt.Errorf("failed to read input directory %s: %w", p.cfg.InputDir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !IsSupportedImage(name) {
			continue
		}

		skipped, err := p.processFile(name)
		switch {
		case err != nil:
			log.Printf("Error processing %s: %v", name, err)
			report.Errors = append(report.Errors, &FileError{Name: name, Err: err})
		case skipped:
			report.Skipped++
		default:
			report.Processed++
		}
	}

	log.Printf("Batch of %s finished in %s (processed=%d, skipped=%d, errors=%d)",
		p.cfg.InputDir, time.Since(startTime), report.Processed, report.Skipped, len(report.Errors))
	return report, nil
}

func (p *Processor) processFile(name string) (bool, error) {
	inPath := filepath.Join(p.cfg.InputDir, name)
	outPath := filepath.Join(p.cfg.OutputDir, OutputName(name))

	// if the output already exists, skip processing
	if p.cfg.SkipExisting {
		if _, err := os.Stat(outPath); err == nil {
			return true, nil
		} else if !os.IsNotExist(err) {
			return false, err
		}
	}

	enc, err := raster.EncoderFor(outPath, p.cfg.JpegQuality)
	if err != nil {
		return false, err
	}

	img, err := raster.Open(inPath, p.cfg.HeaderCheck())
	if err != nil {
		return false, err
	}

	if err := img.Pipeline(p.stages...); err != nil {
		return false, fmt.Errorf("failed to process image pipeline: %w", err)
	}

	if err := raster.WriteFile(outPath, img, enc); err != nil {
		return false, err
	}

	log.Printf("Processed and saved: %s", outPath)
	return false, nil
}
