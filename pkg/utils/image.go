package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

const DefaultJPEGQuality = 95

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

func IsImageFile(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func DecodeImageFile(file string) (image.Image, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}

	return img, nil
}

func EncodeJPEG(img image.Image, dst io.Writer, quality int) error {
	return jpeg.Encode(dst, img, &jpeg.Options{Quality: quality})
}

// EncodeImage writes img in the format named by ext (".png", ".jpg", ...).
func EncodeImage(img image.Image, dst io.Writer, ext string, quality int) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return EncodeJPEG(img, dst, quality)
	case ".png":
		return png.Encode(dst, img)
	case ".bmp":
		return bmp.Encode(dst, img)
	case ".tif", ".tiff":
		return tiff.Encode(dst, img, &tiff.Options{Compression: tiff.Deflate})
	}

	return fmt.Errorf("unsupported image format %q", ext)
}

// EncodeImageFile writes img to file, picking the format from its extension.
func EncodeImageFile(img image.Image, file string, quality int) error {
	ext := filepath.Ext(file)
	if !IsImageFile(file) {
		return fmt.Errorf("unsupported image format %q", ext)
	}
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0660)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeImage(img, f, ext, quality)
}

// Thumbnail scales img to fit in a maxSide square, keeping its aspect.
func Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return img
	}
	w, h := maxSide, b.Dy()*maxSide/b.Dx()
	if b.Dy() > b.Dx() {
		w, h = b.Dx()*maxSide/b.Dy(), maxSide
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	return dst
}
