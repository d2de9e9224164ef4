package video

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainbow-disk/pkg/utils"
)

func gray(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
	}
	return img
}

func lum(t *testing.T, img image.Image) float64 {
	t.Helper()
	c := color.GrayModel.Convert(img.At(img.Bounds().Dx()/2, img.Bounds().Dy()/2)).(color.Gray)
	return float64(c.Y)
}

func writeAVI(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.avi")
	w, err := NewWriter(path, 16, 8, 25)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, w.AddImage(gray(16, 8, uint8(i*40)), DefaultQuality))
	}
	assert.Equal(t, n, w.Count())
	require.NoError(t, w.Close())
	return path
}

func TestWriterRejectsMismatchedFrames(t *testing.T) {
	w, err := NewWriter(filepath.Join(t.TempDir(), "x.avi"), 16, 8, 25)
	require.NoError(t, err)
	defer w.Close()
	assert.Error(t, w.AddImage(gray(8, 8, 0), DefaultQuality))

	_, err = NewWriter(filepath.Join(t.TempDir(), "y.avi"), 0, 8, 25)
	assert.Error(t, err)
}

func TestReaderRoundTrip(t *testing.T) {
	path := writeAVI(t, 5)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 5, r.FrameCount())
	assert.Equal(t, uint32(16), r.Header.Width)
	assert.Equal(t, uint32(8), r.Header.Height)
	assert.Equal(t, uint32(40000), r.Header.MicroSecPerFrame)

	for i := 0; i < 5; i++ {
		img, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
		assert.InDelta(t, float64(i*40), lum(t, img), 8)
	}
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderSkip(t *testing.T) {
	r, err := Open(writeAVI(t, 6))
	require.NoError(t, err)
	defer r.Close()

	n, err := r.Skip(2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	img, err := r.Next()
	require.NoError(t, err)
	assert.InDelta(t, 80, lum(t, img), 8)

	_, err = r.Skip(2)
	require.NoError(t, err)
	img, err = r.Next()
	require.NoError(t, err)
	assert.InDelta(t, 200, lum(t, img), 8)

	n, err = r.Skip(1)
	assert.Equal(t, io.EOF, err)
	assert.Zero(t, n)
}

func TestReaderSkipPastEnd(t *testing.T) {
	r, err := Open(writeAVI(t, 3))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)
	n, err := r.Skip(5)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 2, n)
}

func TestReaderRejectsNonAVI(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("definitely not a riff file")))
	assert.True(t, errors.Is(err, ErrNotAVI))

	// RIFF AVI without a movi list
	hdr := []byte("RIFF\x04\x00\x00\x00AVI ")
	_, err = NewReader(bytes.NewReader(hdr))
	assert.True(t, errors.Is(err, ErrNoStream))

	_, err = Open(filepath.Join(t.TempDir(), "missing.avi"))
	assert.Error(t, err)
}

func TestDirSourceOrdersByFrameNumber(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"plant-10.jpg", "plant-2.png", "plant-1.jpg", "notes.txt"} {
		file := filepath.Join(dir, name)
		if !utils.IsImageFile(name) {
			require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
			continue
		}
		require.NoError(t, utils.EncodeImageFile(gray(4, 4, uint8(50*(i+1))), file, DefaultQuality))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o700))

	src, err := OpenDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"plant-1.jpg", "plant-2.png", "plant-10.jpg"}, src.Files())
	assert.Equal(t, 3, src.FrameCount())

	img, err := src.Next()
	require.NoError(t, err)
	assert.InDelta(t, 150, lum(t, img), 8)

	_, err = src.Skip(1)
	require.NoError(t, err)
	img, err = src.Next()
	require.NoError(t, err)
	assert.InDelta(t, 50, lum(t, img), 8)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
	n, err := src.Skip(1)
	assert.Equal(t, io.EOF, err)
	assert.Zero(t, n)
}

func TestOpenSource(t *testing.T) {
	s, err := OpenSource(writeAVI(t, 2))
	require.NoError(t, err)
	assert.IsType(t, &Reader{}, s)
	require.NoError(t, s.Close())

	s, err = OpenSource(t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &DirSource{}, s)
	assert.Zero(t, s.FrameCount())

	_, err = OpenSource(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWriterCloseTwice(t *testing.T) {
	w, err := NewWriter(filepath.Join(t.TempDir(), "x.avi"), 4, 4, 25)
	require.NoError(t, err)
	require.NoError(t, w.AddImage(gray(4, 4, 10), DefaultQuality))
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
