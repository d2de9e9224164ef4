package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

const MaxChannels = 4

// MaxSamples bounds Width*Height*Channels of a single buffer.
const MaxSamples = 1<<31 - 1

var ErrBadShape = errors.New("pixel: invalid shape")

// Color holds one sample per channel. Missing channels read as zero.
type Color []uint8

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Buffer is a packed, row-major pixel grid.
type Buffer struct {
	// Pix holds the samples. The pixel at (x, y) starts at
	// Pix[y*Stride + x*Channels].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride   int
	Width    int
	Height   int
	Channels int
}

func New(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 || channels <= 0 || channels > MaxChannels {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrBadShape, width, height, channels)
	}
	n, ok := Samples(width, height, channels)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%dx%d exceeds %d samples", ErrBadShape, width, height, channels, MaxSamples)
	}

	return &Buffer{
		Pix:      make([]uint8, n),
		Stride:   width * channels,
		Width:    width,
		Height:   height,
		Channels: channels,
	}, nil
}

// Samples returns width*height*per for positive arguments, or false when
// the product overflows or exceeds MaxSamples.
func Samples(width, height, per int) (int, bool) {
	if width <= 0 || height <= 0 || per <= 0 {
		return 0, false
	}
	if width > MaxSamples/height {
		return 0, false
	}
	n := width * height
	if n > MaxSamples/per {
		return 0, false
	}
	return n * per, true
}

func (b *Buffer) Size() Size {
	return Size{Width: b.Width, Height: b.Height}
}

func (b *Buffer) SameShape(o *Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height && b.Channels == o.Channels
}

func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Offset returns the index of the first sample of (x, y) in Pix.
func (b *Buffer) Offset(x, y int) int {
	if !b.In(x, y) {
		panic(fmt.Sprintf("pixel: (%d,%d) out of range %dx%d", x, y, b.Width, b.Height))
	}
	return y*b.Stride + x*b.Channels
}

// Pixel returns the samples of (x, y). The slice aliases Pix.
func (b *Buffer) Pixel(x, y int) []uint8 {
	i := b.Offset(x, y)
	return b.Pix[i : i+b.Channels : i+b.Channels]
}

func (b *Buffer) SetPixel(x, y int, c Color) {
	i := b.Offset(x, y)
	for ch := 0; ch < b.Channels; ch++ {
		b.Pix[i+ch] = c.channel(ch)
	}
}

// Row returns the samples of row y. The slice aliases Pix.
func (b *Buffer) Row(y int) []uint8 {
	i := b.Offset(0, y)
	return b.Pix[i : i+b.Width*b.Channels]
}

func (b *Buffer) Fill(c Color) {
	if b.Width == 0 || b.Height == 0 {
		return
	}
	row := b.Row(0)
	for x := 0; x < b.Width; x++ {
		for ch := 0; ch < b.Channels; ch++ {
			row[x*b.Channels+ch] = c.channel(ch)
		}
	}
	for y := 1; y < b.Height; y++ {
		copy(b.Row(y), row)
	}
}

func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{
		Pix:      pix,
		Stride:   b.Stride,
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
	}
}

func (c Color) channel(i int) uint8 {
	if i < len(c) {
		return c[i]
	}
	return 0
}

func (b *Buffer) ColorModel() color.Model {
	switch b.Channels {
	case 1:
		return color.GrayModel
	case 4:
		return color.NRGBAModel
	default:
		return color.RGBAModel
	}
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) At(x, y int) color.Color {
	if !b.In(x, y) {
		return color.RGBA{}
	}
	s := b.Pixel(x, y)
	switch b.Channels {
	case 1:
		return color.Gray{Y: s[0]}
	case 2:
		return color.RGBA{R: s[0], G: s[1], A: 0xff}
	case 3:
		return color.RGBA{R: s[0], G: s[1], B: s[2], A: 0xff}
	default:
		return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
	}
}

// FromImage copies img into a new buffer with the given channel count
// (1 = gray, 3 = RGB, 4 = RGBA).
func FromImage(img image.Image, channels int) (*Buffer, error) {
	r := img.Bounds()
	b, err := New(r.Dx(), r.Dy(), channels)
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *Buffer:
		if src.Channels == channels {
			copy(b.Pix, src.Pix)
			return b, nil
		}
	case *image.RGBA:
		if channels == 3 {
			for y := 0; y < b.Height; y++ {
				i := src.PixOffset(r.Min.X, r.Min.Y+y)
				in := src.Pix[i : i+b.Width*4]
				out := b.Row(y)
				for x, j := 0, 0; x < b.Width; x, j = x+1, j+4 {
					out[x*3] = unpremul(in[j], in[j+3])
					out[x*3+1] = unpremul(in[j+1], in[j+3])
					out[x*3+2] = unpremul(in[j+2], in[j+3])
				}
			}
			return b, nil
		}
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			b.SetPixel(x, y, colorOf(img.At(r.Min.X+x, r.Min.Y+y), channels))
		}
	}

	return b, nil
}

// unpremul matches color.NRGBAModel for an 8-bit premultiplied sample.
func unpremul(v, a uint8) uint8 {
	switch a {
	case 0xff:
		return v
	case 0:
		return 0
	}
	v16 := uint32(v) * 0x101
	a16 := uint32(a) * 0x101
	return uint8((v16 * 0xffff / a16) >> 8)
}

func colorOf(c color.Color, channels int) Color {
	if channels == 1 {
		g := color.GrayModel.Convert(c).(color.Gray)
		return Color{g.Y}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}[:channels]
}
