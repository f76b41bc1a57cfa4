package stage

import (
	"fmt"
	"image"

	"github.com/rm-hull/pixel-expander/internal/expander"
	"github.com/rm-hull/pixel-expander/internal/raster"
)

type ExpandStage struct {
	Factor    int
	MaxPixels int
}

// CheckSize refuses a w x h source whose expanded size would exceed
// MaxPixels. A zero MaxPixels means no limit.
func (s *ExpandStage) CheckSize(w, h int) error {
	if s.MaxPixels <= 0 || w < 1 || h < 1 || s.Factor < 0 {
		return nil
	}
	if count, ok := expander.ExpandedPixels(w, h, s.Factor); !ok || count > s.MaxPixels {
		return fmt.Errorf("%w: %dx%d expanded by %d exceeds %d pixels",
			raster.ErrTooLarge, w, h, s.Factor, s.MaxPixels)
	}
	return nil
}

// CheckHeader applies CheckSize to the dimensions declared in an image header.
func (s *ExpandStage) CheckHeader(cfg image.Config) error {
	return s.CheckSize(cfg.Width, cfg.Height)
}

// Process inserts Factor linearly blended pixels between each pair of
// neighbouring pixels. Any alpha channel is discarded and the result is opaque.
func (s *ExpandStage) Process(p *raster.Image) error {
	if err := s.CheckSize(p.Bounds.Dx(), p.Bounds.Dy()); err != nil {
		return err
	}

	grid, err := expander.FromImage(p.Img)
	if err != nil {
		return err
	}

	expanded, err := expander.Expand(grid, s.Factor)
	if err != nil {
		return err
	}

	p.Img = expanded.Image()
	p.Bounds = p.Img.Bounds()
	return nil
}
