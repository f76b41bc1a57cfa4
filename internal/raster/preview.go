package raster

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/kettek/apng"
	"golang.org/x/image/draw"
)

// MaxFrameDelay is the longest frame delay, in seconds, that fits the APNG
// millisecond delay numerator.
const MaxFrameDelay = 65.535

func CheckFrameDelay(frameDelay float64) error {
	if !(frameDelay > 0 && frameDelay <= MaxFrameDelay) {
		return fmt.Errorf("frame delay must be above 0 and at most %gs, got %g", MaxFrameDelay, frameDelay)
	}
	return nil
}

// Preview renders an animated PNG that flips between the original, scaled up
// with nearest-neighbour sampling to the expanded size, and the expanded image.
func Preview(original, expanded image.Image, frameDelay float64) ([]byte, error) {
	if err := CheckFrameDelay(frameDelay); err != nil {
		return nil, err
	}

	bounds := expanded.Bounds()
	scaled := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), original, original.Bounds(), draw.Src, nil)

	frames := []image.Image{scaled, expanded}
	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	for i, img := range frames {
		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(math.Round(frameDelay * 1000)),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
