package internal

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/rm-hull/pixel-expander/internal/raster"
)

type SingleFileConfig struct {
	Config
	Input       string
	Output      string
	PreviewPath string
	FrameDelay  float64
}

// ExpandFile expands one image from a local path or URL and writes it to the
// configured output. Any failure is returned as-is for the caller to treat
// as fatal.
func ExpandFile(cfg SingleFileConfig, fetcher Fetcher) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.PreviewPath != "" {
		if err := raster.CheckFrameDelay(cfg.FrameDelay); err != nil {
			return err
		}
	}

	enc, err := raster.EncoderFor(cfg.Output, cfg.JpegQuality)
	if err != nil {
		return err
	}

	img, err := load(cfg.Input, fetcher, cfg.HeaderCheck())
	if err != nil {
		return err
	}
	original := img.Img

	if err := img.Pipeline(cfg.Pipeline()...); err != nil {
		return fmt.Errorf("failed to process image pipeline: %w", err)
	}

	if err := raster.WriteFile(cfg.Output, img, enc); err != nil {
		return err
	}
	log.Printf("Processed and saved: %s (%dx%d)", cfg.Output, img.Bounds.Dx(), img.Bounds.Dy())

	if cfg.PreviewPath != "" {
		if err := writePreview(cfg.PreviewPath, original, img.Img, cfg.FrameDelay); err != nil {
			return err
		}
		log.Printf("Preview saved: %s", cfg.PreviewPath)
	}
	return nil
}

func load(input string, fetcher Fetcher, check raster.HeaderCheck) (*raster.Image, error) {
	if !IsRemote(input) {
		return raster.Open(input, check)
	}

	body, err := fetcher.Fetch(input)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = body.Close()
	}()

	img, err := raster.Decode(body, check)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", input, err)
	}
	return img, nil
}

func writePreview(path string, original, expanded image.Image, frameDelay float64) error {
	data, err := raster.Preview(original, expanded, frameDelay)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preview %s: %w", path, err)
	}
	return nil
}
