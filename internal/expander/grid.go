package expander

import (
	"errors"
	"image"
	"image/color"
)

var ErrEmptyGrid = errors.New("grid must be at least 1x1 pixels")

// Color is a single RGB pixel value.
type Color [3]uint8

// Grid is a row-major 2D array of colors, origin at the top-left.
type Grid struct {
	Width  int
	Height int
	Pix    []Color
}

func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, ErrEmptyGrid
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}, nil
}

func (g *Grid) At(x, y int) Color {
	return g.Pix[y*g.Width+x]
}

func (g *Grid) Set(x, y int, c Color) {
	g.Pix[y*g.Width+x] = c
}

func (g *Grid) Row(y int) []Color {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

func (g *Grid) empty() bool {
	return g == nil || g.Width < 1 || g.Height < 1 || len(g.Pix) < g.Width*g.Height
}

// FromImage copies img into a new grid. Channels are taken from the
// non-premultiplied color of each pixel and alpha is dropped.
func FromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	g, err := NewGrid(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < g.Height; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := g.Row(y)
			for x := range row {
				i := off + x*4
				row[x] = Color{src.Pix[i], src.Pix[i+1], src.Pix[i+2]}
			}
		}
		return g, nil
	}

	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		for x := range row {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			row[x] = Color{c.R, c.G, c.B}
		}
	}
	return g, nil
}

// Image renders the grid as a fully opaque NRGBA image.
func (g *Grid) Image() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, c := range g.Pix {
		out.Pix[i*4+0] = c[0]
		out.Pix[i*4+1] = c[1]
		out.Pix[i*4+2] = c[2]
		out.Pix[i*4+3] = 0xff
	}
	return out
}

func (g *Grid) Clone() *Grid {
	pix := make([]Color, len(g.Pix))
	copy(pix, g.Pix)
	return &Grid{Width: g.Width, Height: g.Height, Pix: pix}
}
