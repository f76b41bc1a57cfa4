package internal

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/rm-hull/pixel-expander/internal/raster"
	"github.com/rm-hull/pixel-expander/internal/raster/stage"
)

const (
	DefaultFactor      = 2
	DefaultMaxPixels   = 100_000_000
	DefaultJpegQuality = 75
)

// Config holds the settings shared by every way of running an expansion.
type Config struct {
	Factor      int
	MaxPixels   int
	JpegQuality int
	BlurSigma   float64
}

func DefaultConfig() Config {
	return Config{
		Factor:      EnvInt("EXPANDER_FACTOR", DefaultFactor),
		MaxPixels:   EnvInt("EXPANDER_MAX_PIXELS", DefaultMaxPixels),
		JpegQuality: EnvInt("EXPANDER_JPEG_QUALITY", DefaultJpegQuality),
		BlurSigma:   EnvFloat("EXPANDER_BLUR_SIGMA", 0),
	}
}

func (c Config) Validate() error {
	if c.Factor < 0 {
		return fmt.Errorf("expansion factor must be zero or more, got %d", c.Factor)
	}
	if c.MaxPixels < 0 {
		return errors.New("max pixels must be zero (unlimited) or more")
	}
	if c.JpegQuality < 1 || c.JpegQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100, got %d", c.JpegQuality)
	}
	if c.BlurSigma < 0 {
		return errors.New("blur sigma must not be negative")
	}
	return nil
}

func (c Config) expandStage() *stage.ExpandStage {
	return &stage.ExpandStage{Factor: c.Factor, MaxPixels: c.MaxPixels}
}

func (c Config) Pipeline() []raster.PipelineStage {
	stages := []raster.PipelineStage{c.expandStage()}
	if c.BlurSigma > 0 {
		stages = append(stages, &stage.GaussianBlurStage{Sigma: c.BlurSigma})
	}
	return stages
}

// HeaderCheck turns away images whose declared size would break MaxPixels
// once expanded, before their pixels are decoded.
func (c Config) HeaderCheck() raster.HeaderCheck {
	return c.expandStage().CheckHeader
}

func EnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func EnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: ignoring %s=%q, not an integer (using %d)", key, value, fallback)
		return fallback
	}
	return n
}

func EnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("WARNING: ignoring %s=%q, not a number (using %g)", key, value, fallback)
		return fallback
	}
	return f
}
