package stage

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/rm-hull/pixel-expander/internal/raster"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process applies a Gaussian blur to the image using the specified Sigma value.
// Higher Sigma values result in a more pronounced blur effect. A Sigma of zero or less leaves the image alone.
func (s *GaussianBlurStage) Process(p *raster.Image) error {
	if s.Sigma <= 0 {
		return nil
	}
	p.Img = blur.Gaussian(p.Img, s.Sigma)
	p.Bounds = p.Img.Bounds()
	return nil
}
