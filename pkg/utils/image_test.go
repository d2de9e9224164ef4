package utils

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeByExtension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{R: 200, G: 10, B: 30, A: 0xff})

	dir := t.TempDir()
	for _, name := range []string{"a.png", "a.bmp", "a.tiff"} {
		file := filepath.Join(dir, name)
		require.NoError(t, EncodeImageFile(img, file, DefaultJPEGQuality))

		out, err := DecodeImageFile(file)
		require.NoError(t, err, name)
		assert.Equal(t, img.Bounds(), out.Bounds(), name)
		r, g, b, _ := out.At(1, 1).RGBA()
		assert.Equal(t, []uint32{200, 10, 30}, []uint32{r >> 8, g >> 8, b >> 8}, name)
	}

	file := filepath.Join(dir, "a.jpg")
	require.NoError(t, EncodeImageFile(img, file, DefaultJPEGQuality))
	out, err := DecodeImageFile(file)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), out.Bounds())

	assert.Error(t, EncodeImageFile(img, filepath.Join(dir, "a.gif"), 90))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("x-1.JPG"))
	assert.True(t, IsImageFile("disk.tif"))
	assert.False(t, IsImageFile("info.json"))
	assert.False(t, IsImageFile("video.avi"))
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 100))
	assert.Equal(t, image.Rect(0, 0, 200, 50), Thumbnail(img, 200).Bounds())

	tall := image.NewRGBA(image.Rect(0, 0, 100, 400))
	assert.Equal(t, image.Rect(0, 0, 25, 100), Thumbnail(tall, 100).Bounds())

	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, small, Thumbnail(small, 100))
}
