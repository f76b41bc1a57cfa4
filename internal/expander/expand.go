package expander

import (
	"errors"
	"math"
)

var ErrNegativeFactor = errors.New("expansion factor must not be negative")

// Blend returns the per-channel linear blend of c1 towards c2 at factor f.
// Channel values are truncated, not rounded, so results lean towards c1.
func Blend(c1, c2 Color, f float64) Color {
	var out Color
	for i := range out {
		p1 := float64(c1[i])
		p2 := float64(c2[i])
		out[i] = uint8(int(p1 + (p2-p1)*f))
	}
	return out
}

// ExpandedSize returns the dimensions of a w x h grid expanded by n.
func ExpandedSize(w, h, n int) (int, int) {
	return w + (w-1)*n, h + (h-1)*n
}

// ExpandedPixels returns the number of pixels in a w x h grid expanded by n.
// ok is false when the count does not fit in an int.
func ExpandedPixels(w, h, n int) (count int, ok bool) {
	if w < 1 || h < 1 || n < 0 {
		return 0, false
	}
	ew, okW := mulAdd(w-1, n, w)
	eh, okH := mulAdd(h-1, n, h)
	if !okW || !okH {
		return 0, false
	}
	if ew != 0 && eh > math.MaxInt/ew {
		return 0, false
	}
	return ew * eh, true
}

// mulAdd returns a*b+c for non-negative operands.
func mulAdd(a, b, c int) (int, bool) {
	if a != 0 && b > (math.MaxInt-c)/a {
		return 0, false
	}
	return a*b + c, true
}

// Expand inserts n linearly interpolated pixels between every pair of
// adjacent pixels of g, along both axes. The source pixel at (x, y) lands
// unchanged at (x*(n+1), y*(n+1)); the pixels between are blended from the
// surrounding originals. The last column gets no horizontal fill, the last
// row no vertical fill, and neither gets a diagonal fill.
//
// g is never modified; the result is always a new grid.
func Expand(g *Grid, n int) (*Grid, error) {
	if g.empty() {
		return nil, ErrEmptyGrid
	}
	if n < 0 {
		return nil, ErrNegativeFactor
	}
	if n == 0 {
		return g.Clone(), nil
	}

	width, height := ExpandedSize(g.Width, g.Height, n)
	out, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	step := n + 1
	factors := make([]float64, step)
	for i := range factors {
		factors[i] = float64(i) / float64(step)
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			ox, oy := x*step, y*step
			p := g.At(x, y)
			out.Set(ox, oy, p)

			hasRight := x < g.Width-1
			hasBelow := y < g.Height-1

			if hasRight {
				right := g.At(x+1, y)
				for i := 1; i <= n; i++ {
					out.Set(ox+i, oy, Blend(p, right, factors[i]))
				}
			}

			if hasBelow {
				below := g.At(x, y+1)
				for i := 1; i <= n; i++ {
					out.Set(ox, oy+i, Blend(p, below, factors[i]))
				}
			}

			if hasRight && hasBelow {
				right := g.At(x+1, y)
				below := g.At(x, y+1)
				diag := g.At(x+1, y+1)
				for i := 1; i <= n; i++ {
					top := Blend(p, right, factors[i])
					bottom := Blend(below, diag, factors[i])
					for j := 1; j <= n; j++ {
						out.Set(ox+i, oy+j, Blend(top, bottom, factors[j]))
					}
				}
			}
		}
	}

	return out, nil
}
