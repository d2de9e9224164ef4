package render

import (
	"context"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainbow-disk/pkg/ov"
	"rainbow-disk/pkg/pixel"
	"rainbow-disk/pkg/rainbow"
	"rainbow-disk/pkg/remap"
	"rainbow-disk/pkg/utils"
	"rainbow-disk/pkg/video"
)

type frames struct {
	imgs  []image.Image
	count int
	pos   int
}

func (f *frames) Next() (image.Image, error) {
	if f.pos >= len(f.imgs) {
		return nil, io.EOF
	}
	f.pos++
	return f.imgs[f.pos-1], nil
}

func (f *frames) Skip(n int) (int, error) {
	if left := len(f.imgs) - f.pos; n > left {
		f.pos = len(f.imgs)
		return left, io.EOF
	}
	f.pos += n
	return n, nil
}

func (f *frames) FrameCount() int { return f.count }

func solid(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
	}
	return img
}

func source(n, h int) *frames {
	f := &frames{count: n}
	for i := 0; i < n; i++ {
		f.imgs = append(f.imgs, solid(4, h, uint8(i*10)))
	}
	return f
}

func renderer(t *testing.T, mod func(*ov.RenderOptions)) *Renderer {
	t.Helper()
	opts := ov.Default()
	opts.Columns = 5
	opts.Fill = "#010203"
	if mod != nil {
		mod(&opts)
	}
	r, err := New(opts)
	require.NoError(t, err)
	return r
}

func TestRender(t *testing.T) {
	out, err := renderer(t, nil).Render(context.Background(), source(10, 6))
	require.NoError(t, err)

	assert.Equal(t, pixel.Size{Width: 5, Height: 6}, out.Strip.Size())
	assert.Equal(t, pixel.Size{Width: 10, Height: 10}, out.Disk.Size())
	assert.Equal(t, remap.Point{X: 5, Y: 5}, out.Params.Center)
	assert.Equal(t, 5.0, out.Params.MaxRadius)
	assert.Equal(t, remap.Inverse, out.Params.Direction)
	assert.False(t, out.Result.Truncated)

	// the center samples the first frame, radius 4 the fifth sampled one
	assert.Equal(t, []uint8{0, 0, 0}, out.Disk.Pixel(5, 5))
	assert.Equal(t, []uint8{80, 80, 80}, out.Disk.Pixel(9, 5))
	// corners lie outside the disk
	assert.Equal(t, []uint8{1, 2, 3}, out.Disk.Pixel(0, 0))
}

func TestRenderPadLeavesHole(t *testing.T) {
	r := renderer(t, func(o *ov.RenderOptions) { o.Pad = 2 })
	out, err := r.Render(context.Background(), source(10, 6))
	require.NoError(t, err)

	assert.Equal(t, pixel.Size{Width: 7, Height: 6}, out.Polar.Size())
	assert.Equal(t, pixel.Size{Width: 14, Height: 14}, out.Disk.Size())
	assert.Equal(t, []uint8{1, 2, 3}, out.Disk.Pixel(7, 7))
	assert.Equal(t, []uint8{80, 80, 80}, out.Disk.Pixel(13, 7))
}

func TestRenderRotate(t *testing.T) {
	r := renderer(t, func(o *ov.RenderOptions) {
		o.Rotate = true
		o.Size = 20
		o.MaxRadius = 8
	})
	out, err := r.Render(context.Background(), source(10, 6))
	require.NoError(t, err)

	assert.Equal(t, pixel.Size{Width: 6, Height: 5}, out.Polar.Size())
	assert.Equal(t, pixel.Size{Width: 20, Height: 20}, out.Disk.Size())
	assert.Equal(t, 8.0, out.Params.MaxRadius)
}

func TestRenderTruncated(t *testing.T) {
	out, err := renderer(t, nil).Render(context.Background(), source(3, 6))
	require.NoError(t, err)
	assert.True(t, out.Result.Truncated)
	assert.Equal(t, []uint8{1, 2, 3}, out.Strip.Pixel(4, 0))

	strict := renderer(t, func(o *ov.RenderOptions) { o.Strict = true })
	_, err = strict.Render(context.Background(), source(3, 6))
	assert.ErrorIs(t, err, rainbow.ErrTruncated)
}

func TestNewRejectsBadOptions(t *testing.T) {
	for name, mod := range map[string]func(*ov.RenderOptions){
		"fill":          func(o *ov.RenderOptions) { o.Fill = "nope" },
		"scaling":       func(o *ov.RenderOptions) { o.Scaling = "cubic" },
		"interpolation": func(o *ov.RenderOptions) { o.Interpolation = "lanczos" },
		"border":        func(o *ov.RenderOptions) { o.Border = "wrap" },
		"pad":           func(o *ov.RenderOptions) { o.Pad = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			opts := ov.Default()
			mod(&opts)
			_, err := New(opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}

	r := renderer(t, func(o *ov.RenderOptions) { o.Columns = 0 })
	_, err := r.Render(context.Background(), source(3, 6))
	assert.ErrorIs(t, err, ErrInvalidOptions)

	r = renderer(t, func(o *ov.RenderOptions) { o.Scaling = "log"; o.MaxRadius = 0.5 })
	_, err = r.Render(context.Background(), source(3, 6))
	assert.ErrorIs(t, err, remap.ErrInvalidParameters)
}

func TestPolar(t *testing.T) {
	img, err := pixel.New(8, 8, 3)
	require.NoError(t, err)
	img.Fill(pixel.Color{10, 20, 30})

	r := renderer(t, func(o *ov.RenderOptions) { o.Size = 8 })
	out, p, err := r.Polar(img)
	require.NoError(t, err)
	assert.Equal(t, pixel.Size{Width: 8, Height: 25}, out.Size())
	assert.Equal(t, remap.Forward, p.Direction)
	assert.Equal(t, remap.Point{X: 4, Y: 4}, p.Center)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			require.Equal(t, []uint8{10, 20, 30}, out.Pixel(x, y))
		}
	}
}

func TestOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	clip := filepath.Join(dir, "clip.avi")
	w, err := video.NewWriter(clip, 8, 6, 25)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, w.AddImage(solid(8, 6, uint8(i*20)), video.DefaultQuality))
	}
	require.NoError(t, w.Close())

	out, err := renderer(t, nil).Open(context.Background(), clip)
	require.NoError(t, err)
	assert.Equal(t, 9, out.Result.Frames)
	c := color.GrayModel.Convert(out.Strip.At(2, 3)).(color.Gray)
	assert.InDelta(t, 80, float64(c.Y), 8)

	stripFile, diskFile := filepath.Join(dir, "rainbow.png"), filepath.Join(dir, "disk.png")
	require.NoError(t, out.Save(stripFile, diskFile, ov.DefaultQuality))
	img, err := utils.DecodeImageFile(diskFile)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())

	_, err = renderer(t, nil).Open(context.Background(), filepath.Join(dir, "missing.avi"))
	assert.Error(t, err)
}
