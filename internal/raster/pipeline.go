package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("expanded image exceeds pixel limit")
)

type Image struct {
	Img    image.Image
	Bounds image.Rectangle
	Format string
}

type PipelineStage interface {
	Process(img *Image) error
}

// HeaderCheck inspects the dimensions an image declares in its header. It
// runs before any pixel data is decoded, so an oversized image can be turned
// away without allocating it.
type HeaderCheck func(cfg image.Config) error

func Decode(r io.Reader, checks ...HeaderCheck) (*Image, error) {
	if len(checks) > 0 {
		var header bytes.Buffer
		cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
		if err != nil {
			return nil, err
		}
		for _, check := range checks {
			if err := check(cfg); err != nil {
				return nil, err
			}
		}
		r = io.MultiReader(&header, r)
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return &Image{
		Img:    img,
		Bounds: img.Bounds(),
		Format: format,
	}, nil
}

func Open(path string, checks ...HeaderCheck) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := Decode(f, checks...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func (p *Image) Encode(w io.Writer, enc imgio.Encoder) error {
	return enc(w, p.Img)
}

func (p *Image) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}

// EncoderFor picks an encoder from the extension of path.
func EncoderFor(path string, jpegQuality int) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(jpegQuality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// WriteFile encodes img to a temporary file next to path and renames it into
// place, so a failed write never leaves a truncated image behind.
func WriteFile(path string, img *Image, enc imgio.Encoder) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "expand-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := img.Encode(tmpFile, enc); err != nil {
		return fmt.Errorf("failed to write image to temporary file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false
	return nil
}
