package pixel

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadShape(t *testing.T) {
	for _, c := range []struct{ w, h, ch int }{
		{0, 1, 3}, {1, 0, 3}, {-1, 4, 3}, {4, 4, 0}, {4, 4, 5},
		{math.MaxInt, math.MaxInt, 4}, {1 << 16, 1 << 16, 1}, {MaxSamples, 2, 1}, {1 << 17, 1 << 17, 3},
	} {
		_, err := New(c.w, c.h, c.ch)
		assert.Truef(t, errors.Is(err, ErrBadShape), "%dx%dx%d", c.w, c.h, c.ch)
	}
}

func TestPixelAccess(t *testing.T) {
	b, err := New(3, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 9, b.Stride)

	b.SetPixel(2, 1, Color{1, 2, 3})
	assert.Equal(t, []uint8{1, 2, 3}, b.Pixel(2, 1))
	assert.Equal(t, []uint8{1, 2, 3}, b.Pix[15:18])

	// short colors zero the remaining channels
	b.SetPixel(2, 1, Color{7})
	assert.Equal(t, []uint8{7, 0, 0}, b.Pixel(2, 1))

	assert.Panics(t, func() { b.Pixel(3, 0) })
	assert.Panics(t, func() { b.SetPixel(0, -1, Color{1}) })
}

func TestFillAndClone(t *testing.T) {
	b, err := New(4, 3, 3)
	require.NoError(t, err)
	b.Fill(Color{10, 20, 30})

	c := b.Clone()
	c.SetPixel(0, 0, Color{0, 0, 0})
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, []uint8{10, 20, 30}, b.Pixel(x, y))
		}
	}
	assert.True(t, b.SameShape(c))
}

func TestImageInterface(t *testing.T) {
	b, err := New(2, 2, 3)
	require.NoError(t, err)
	b.SetPixel(1, 0, Color{200, 100, 50})

	var img image.Image = b
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 200, G: 100, B: 50, A: 0xff}, img.At(1, 0))
	assert.Equal(t, color.RGBA{}, img.At(5, 5))
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 2, 5, 4))
	src.Set(3, 3, color.RGBA{R: 9, G: 8, B: 7, A: 0xff})

	b, err := FromImage(src, 3)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 3, Height: 2}, b.Size())
	assert.Equal(t, []uint8{9, 8, 7}, b.Pixel(1, 1))

	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(1, 0, color.Gray{Y: 77})
	g, err := FromImage(gray, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{77}, g.Pixel(1, 0))

	rgb, err := FromImage(gray, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint8{77, 77, 77}, rgb.Pixel(1, 0))
}

func TestSamples(t *testing.T) {
	n, ok := Samples(3, 2, 4)
	assert.True(t, ok)
	assert.Equal(t, 24, n)

	_, ok = Samples(MaxSamples, 1, 2)
	assert.False(t, ok)
	_, ok = Samples(math.MaxInt/2, 3, 1)
	assert.False(t, ok)
	_, ok = Samples(0, 3, 1)
	assert.False(t, ok)
}

func TestFromImageUnpremultipliesRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 10, A: 0x80})
	src.SetRGBA(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 0x05})
	src.SetRGBA(2, 0, color.RGBA{R: 90, G: 80, B: 70, A: 0xff})

	b, err := FromImage(src, 3)
	require.NoError(t, err)
	for x := 0; x < 4; x++ {
		want := color.NRGBAModel.Convert(src.At(x, 0)).(color.NRGBA)
		assert.Equalf(t, []uint8{want.R, want.G, want.B}, b.Pixel(x, 0), "x=%d", x)
	}
	assert.Equal(t, []uint8{199, 99, 19}, b.Pixel(0, 0))
}

func TestRotate90(t *testing.T) {
	b, err := New(3, 2, 1)
	require.NoError(t, err)
	// 0 1 2
	// 3 4 5
	for i := range b.Pix {
		b.Pix[i] = uint8(i)
	}

	cw := b.Rotate90(true)
	assert.Equal(t, Size{Width: 2, Height: 3}, cw.Size())
	// 3 0
	// 4 1
	// 5 2
	assert.Equal(t, []uint8{3, 0, 4, 1, 5, 2}, cw.Pix)

	ccw := b.Rotate90(false)
	// 2 5
	// 1 4
	// 0 3
	assert.Equal(t, []uint8{2, 5, 1, 4, 0, 3}, ccw.Pix)

	assert.Equal(t, b.Pix, cw.Rotate90(false).Pix)
}

func TestPadLeft(t *testing.T) {
	b, err := New(2, 2, 1)
	require.NoError(t, err)
	b.Fill(Color{5})

	p := b.PadLeft(3, Color{1})
	assert.Equal(t, Size{Width: 5, Height: 2}, p.Size())
	assert.Equal(t, []uint8{1, 1, 1, 5, 5, 1, 1, 1, 5, 5}, p.Pix)

	same := b.PadLeft(0, Color{1})
	assert.Equal(t, b.Pix, same.Pix)
}

func TestWrapRows(t *testing.T) {
	b, err := New(2, 3, 1)
	require.NoError(t, err)
	copy(b.Pix, []uint8{1, 1, 2, 2, 3, 3})

	w := b.WrapRows()
	assert.Equal(t, Size{Width: 2, Height: 5}, w.Size())
	assert.Equal(t, []uint8{3, 3, 1, 1, 2, 2, 3, 3, 1, 1}, w.Pix)
}
