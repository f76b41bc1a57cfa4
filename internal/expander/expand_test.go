package expander

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridOf(t *testing.T, width, height int, pix ...Color) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	require.NoError(t, err)
	require.Len(t, pix, width*height)
	copy(g.Pix, pix)
	return g
}

func patterned(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, Color{uint8(x * 37 % 256), uint8(y * 91 % 256), uint8((x + y) * 13 % 256)})
		}
	}
	return g
}

func TestBlend(t *testing.T) {
	black := Color{0, 0, 0}
	grey := Color{100, 100, 100}

	t.Run("zero factor returns first color", func(t *testing.T) {
		c1 := Color{12, 200, 7}
		c2 := Color{250, 3, 99}
		assert.Equal(t, c1, Blend(c1, c2, 0))
	})

	t.Run("truncates towards first color", func(t *testing.T) {
		assert.Equal(t, Color{33, 33, 33}, Blend(black, grey, 1.0/3))
		assert.Equal(t, Color{66, 66, 66}, Blend(black, grey, 2.0/3))
		// 100 - 100/3 = 66.66..., truncated
		assert.Equal(t, Color{66, 66, 66}, Blend(grey, black, 1.0/3))
	})

	t.Run("never reaches second color below one", func(t *testing.T) {
		for n := 1; n <= 50; n++ {
			f := float64(n) / float64(n+1)
			assert.NotEqual(t, grey, Blend(black, grey, f), "n=%d", n)
		}
	})

	t.Run("monotonic in factor", func(t *testing.T) {
		n := 9
		prev := Blend(black, grey, 0)
		for i := 1; i <= n; i++ {
			c := Blend(black, grey, float64(i)/float64(n+1))
			for ch := range c {
				assert.GreaterOrEqual(t, c[ch], prev[ch])
			}
			prev = c
		}
	})

	t.Run("channels are independent", func(t *testing.T) {
		assert.Equal(t, Color{50, 127, 200}, Blend(Color{0, 255, 200}, Color{100, 0, 200}, 0.5))
	})
}

func TestExpandedSize(t *testing.T) {
	for _, tc := range []struct {
		w, h, n int
		ew, eh  int
	}{
		{1, 1, 0, 1, 1},
		{1, 1, 5, 1, 1},
		{2, 2, 1, 3, 3},
		{3, 2, 2, 7, 4},
		{10, 1, 3, 37, 1},
	} {
		w, h := ExpandedSize(tc.w, tc.h, tc.n)
		assert.Equal(t, tc.ew, w)
		assert.Equal(t, tc.eh, h)
	}
}

func TestExpandedPixels(t *testing.T) {
	count, ok := ExpandedPixels(3, 2, 2)
	assert.True(t, ok)
	assert.Equal(t, 28, count)

	_, ok = ExpandedPixels(0, 2, 2)
	assert.False(t, ok)

	_, ok = ExpandedPixels(2, 2, -1)
	assert.False(t, ok)

	_, ok = ExpandedPixels(1<<20, 1<<20, math.MaxInt/2)
	assert.False(t, ok)
}

func TestExpand(t *testing.T) {
	t.Run("rejects empty grid", func(t *testing.T) {
		_, err := Expand(nil, 1)
		assert.ErrorIs(t, err, ErrEmptyGrid)

		_, err = Expand(&Grid{Width: 0, Height: 3}, 1)
		assert.ErrorIs(t, err, ErrEmptyGrid)

		_, err = Expand(&Grid{Width: 2, Height: 2, Pix: make([]Color, 3)}, 1)
		assert.ErrorIs(t, err, ErrEmptyGrid)
	})

	t.Run("rejects negative factor", func(t *testing.T) {
		_, err := Expand(patterned(t, 2, 2), -1)
		assert.ErrorIs(t, err, ErrNegativeFactor)
	})

	t.Run("zero factor is a copy", func(t *testing.T) {
		g := patterned(t, 4, 3)
		out, err := Expand(g, 0)
		require.NoError(t, err)
		assert.Equal(t, g, out)

		out.Set(0, 0, Color{1, 2, 3})
		assert.NotEqual(t, g.At(0, 0), out.At(0, 0), "result must not alias the input")
	})

	t.Run("dimensions", func(t *testing.T) {
		for _, size := range [][2]int{{1, 1}, {1, 4}, {4, 1}, {3, 5}, {8, 8}} {
			for n := 0; n <= 4; n++ {
				out, err := Expand(patterned(t, size[0], size[1]), n)
				require.NoError(t, err)
				assert.Equal(t, size[0]+(size[0]-1)*n, out.Width)
				assert.Equal(t, size[1]+(size[1]-1)*n, out.Height)
				assert.Len(t, out.Pix, out.Width*out.Height)
			}
		}
	})

	t.Run("originals are preserved", func(t *testing.T) {
		g := patterned(t, 5, 4)
		for n := 0; n <= 3; n++ {
			out, err := Expand(g, n)
			require.NoError(t, err)
			for y := 0; y < g.Height; y++ {
				for x := 0; x < g.Width; x++ {
					assert.Equal(t, g.At(x, y), out.At(x*(n+1), y*(n+1)), "n=%d (%d,%d)", n, x, y)
				}
			}
		}
	})

	t.Run("input is untouched", func(t *testing.T) {
		g := patterned(t, 3, 3)
		before := g.Clone()
		_, err := Expand(g, 2)
		require.NoError(t, err)
		assert.Equal(t, before, g)
	})

	t.Run("diagonal is two-stage blend", func(t *testing.T) {
		g := gridOf(t, 2, 2,
			Color{0, 0, 0}, Color{100, 0, 0},
			Color{0, 100, 0}, Color{100, 100, 0},
		)
		out, err := Expand(g, 1)
		require.NoError(t, err)

		assert.Equal(t, Color{50, 0, 0}, out.At(1, 0))
		assert.Equal(t, Color{0, 50, 0}, out.At(0, 1))
		assert.Equal(t, Color{50, 50, 0}, out.At(1, 1))
		assert.Equal(t, Color{100, 50, 0}, out.At(2, 1))
		assert.Equal(t, Color{50, 100, 0}, out.At(1, 2))
	})

	t.Run("diagonal truncates each stage", func(t *testing.T) {
		g := gridOf(t, 2, 2,
			Color{0, 0, 0}, Color{10, 0, 0},
			Color{0, 0, 0}, Color{20, 0, 0},
		)
		out, err := Expand(g, 2)
		require.NoError(t, err)

		// top = int(10/3) = 3, bottom = int(20/3) = 6, then int(3 + 3*(1/3)) = 4
		assert.Equal(t, Color{4, 0, 0}, out.At(1, 1))
		// top = int(20/3) = 6, bottom = int(40/3) = 13, then int(6 + 7*(2/3)) = 10
		assert.Equal(t, Color{10, 0, 0}, out.At(2, 2))
	})

	t.Run("single row only gets horizontal fill", func(t *testing.T) {
		g := gridOf(t, 3, 1, Color{0, 0, 0}, Color{90, 90, 90}, Color{0, 0, 0})
		out, err := Expand(g, 2)
		require.NoError(t, err)
		require.Equal(t, 7, out.Width)
		require.Equal(t, 1, out.Height)
		assert.Equal(t, []Color{
			{0, 0, 0}, {30, 30, 30}, {60, 60, 60},
			{90, 90, 90}, {60, 60, 60}, {30, 30, 30},
			{0, 0, 0},
		}, out.Pix)
	})

	t.Run("single column only gets vertical fill", func(t *testing.T) {
		g := gridOf(t, 1, 2, Color{0, 0, 0}, Color{0, 0, 40})
		out, err := Expand(g, 3)
		require.NoError(t, err)
		require.Equal(t, 1, out.Width)
		assert.Equal(t, []Color{{0, 0, 0}, {0, 0, 10}, {0, 0, 20}, {0, 0, 30}, {0, 0, 40}}, out.Pix)
	})

	t.Run("last row and column come from edge fills only", func(t *testing.T) {
		g := gridOf(t, 2, 2,
			Color{0, 0, 0}, Color{0, 0, 0},
			Color{0, 0, 0}, Color{200, 200, 200},
		)
		out, err := Expand(g, 1)
		require.NoError(t, err)

		// right edge is the vertical blend of the last column
		assert.Equal(t, Color{100, 100, 100}, out.At(2, 1))
		// bottom edge is the horizontal blend of the last row
		assert.Equal(t, Color{100, 100, 100}, out.At(1, 2))
		// interior diagonal: top = 0, bottom = 100, then 50
		assert.Equal(t, Color{50, 50, 50}, out.At(1, 1))
	})

	t.Run("uniform grid stays uniform", func(t *testing.T) {
		c := Color{17, 170, 255}
		g := gridOf(t, 3, 3, c, c, c, c, c, c, c, c, c)
		out, err := Expand(g, 4)
		require.NoError(t, err)
		for _, p := range out.Pix {
			assert.Equal(t, c, p)
		}
	})
}

func BenchmarkExpand(b *testing.B) {
	g, _ := NewGrid(256, 256)
	for i := range g.Pix {
		g.Pix[i] = Color{uint8(i), uint8(i >> 8), uint8(i >> 3)}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Expand(g, 2)
	}
}
