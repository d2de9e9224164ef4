package remap

import (
	"fmt"
	"math"
	"unsafe"

	"rainbow-disk/pkg/pixel"
)

// Sampling selects how Remap reads the source.
type Sampling struct {
	Interpolation Interpolation
	Border        BorderPolicy
	Fill          pixel.Color
}

// Catmull-Rom.
const cubicA = -0.5

// Remap returns a new buffer of the map's size where each pixel is the
// source sampled at the mapped coordinate. With BorderTransparent the
// untouched pixels stay zero; use RemapInto to control their value.
func Remap(src *pixel.Buffer, m *Map, s Sampling) (*pixel.Buffer, error) {
	if src == nil || m == nil || !m.valid() {
		return nil, fmt.Errorf("%w: missing or malformed map", ErrShapeMismatch)
	}
	dst, err := pixel.New(m.Width, m.Height, src.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	if err = RemapInto(dst, src, m, s); err != nil {
		return nil, err
	}

	return dst, nil
}

// RemapInto samples src into dst, which must have the map's size and the
// source's channel count. Nothing is written unless every check passes.
//
// Coordinates inside [0,w)x[0,h) are always sampled, with kernel taps
// clamped to the edge. Coordinates outside are left to the border policy.
func RemapInto(dst, src *pixel.Buffer, m *Map, s Sampling) error {
	if dst == nil || src == nil || m == nil || !m.valid() {
		return fmt.Errorf("%w: missing or malformed map", ErrShapeMismatch)
	}
	if dst.Width != m.Width || dst.Height != m.Height {
		return fmt.Errorf("%w: map %s, destination %s", ErrShapeMismatch, m.Size(), dst.Size())
	}
	if dst.Channels != src.Channels {
		return fmt.Errorf("%w: source has %d channels, destination %d", ErrShapeMismatch, src.Channels, dst.Channels)
	}
	if len(src.Pix) != src.Height*src.Stride || src.Width <= 0 || src.Height <= 0 {
		return fmt.Errorf("%w: malformed source %s", ErrShapeMismatch, src.Size())
	}
	if overlaps(dst.Pix, src.Pix) {
		return fmt.Errorf("%w: destination overlaps source", ErrInvalidParameters)
	}

	var sample sampler
	switch s.Interpolation {
	case Nearest:
		sample = sampleNearest
	case Bilinear:
		sample = sampleBilinear
	case Bicubic:
		sample = sampleBicubic
	default:
		return fmt.Errorf("%w: unknown interpolation %s", ErrInvalidParameters, s.Interpolation)
	}
	switch s.Border {
	case BorderConstant, BorderTransparent:
	default:
		return fmt.Errorf("%w: border %s is not a per-pixel policy", ErrInvalidParameters, s.Border)
	}

	fill := make([]uint8, dst.Channels)
	for ch := range fill {
		if ch < len(s.Fill) {
			fill[ch] = s.Fill[ch]
		}
	}
	w, h := float64(src.Width), float64(src.Height)

	parallelRows(m.Height, m.Width, func(start, end int) {
		var acc [pixel.MaxChannels]float64
		for y := start; y < end; y++ {
			row := y * m.Width
			out := dst.Row(y)
			for x := 0; x < m.Width; x++ {
				sx, sy := m.X[row+x], m.Y[row+x]
				px := out[x*dst.Channels : (x+1)*dst.Channels]
				if !(sx >= 0 && sx < w && sy >= 0 && sy < h) {
					if s.Border == BorderConstant {
						copy(px, fill)
					}
					continue
				}
				sample(src, sx, sy, acc[:src.Channels])
				for ch, v := range acc[:src.Channels] {
					px[ch] = clamp8(v)
				}
			}
		}
	})

	return nil
}

// sampler writes the interpolated channels of src at (x, y) into out.
// (x, y) is always inside the source.
type sampler func(src *pixel.Buffer, x, y float64, out []float64)

func sampleNearest(src *pixel.Buffer, x, y float64, out []float64) {
	ix := clampIndex(int(math.Floor(x+0.5)), src.Width)
	iy := clampIndex(int(math.Floor(y+0.5)), src.Height)
	for ch, v := range src.Pixel(ix, iy) {
		out[ch] = float64(v)
	}
}

func sampleBilinear(src *pixel.Buffer, x, y float64, out []float64) {
	x0, y0 := int(x), int(y)
	fx, fy := x-float64(x0), y-float64(y0)
	x1 := clampIndex(x0+1, src.Width)
	y1 := clampIndex(y0+1, src.Height)

	p00, p10 := src.Pixel(x0, y0), src.Pixel(x1, y0)
	p01, p11 := src.Pixel(x0, y1), src.Pixel(x1, y1)
	for ch := range out {
		top := float64(p00[ch])*(1-fx) + float64(p10[ch])*fx
		bottom := float64(p01[ch])*(1-fx) + float64(p11[ch])*fx
		out[ch] = top*(1-fy) + bottom*fy
	}
}

func sampleBicubic(src *pixel.Buffer, x, y float64, out []float64) {
	x0, y0 := int(x), int(y)
	wx := cubicWeights(x - float64(x0))
	wy := cubicWeights(y - float64(y0))

	for ch := range out {
		out[ch] = 0
	}
	for j := 0; j < 4; j++ {
		sy := clampIndex(y0-1+j, src.Height)
		for i := 0; i < 4; i++ {
			sx := clampIndex(x0-1+i, src.Width)
			wgt := wx[i] * wy[j]
			for ch, v := range src.Pixel(sx, sy) {
				out[ch] += wgt * float64(v)
			}
		}
	}
}

// cubicWeights returns the four tap weights for a sample at fraction f
// past the second tap.
func cubicWeights(f float64) [4]float64 {
	return [4]float64{
		cubic(1 + f),
		cubic(f),
		cubic(1 - f),
		cubic(2 - f),
	}
}

func cubic(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t <= 1:
		return ((cubicA+2)*t-(cubicA+3))*t*t + 1
	case t < 2:
		return ((cubicA*t-5*cubicA)*t+8*cubicA)*t - 4*cubicA
	}
	return 0
}

// overlaps reports whether a and b share any element of memory.
func overlaps(a, b []uint8) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	pa := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	pb := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return pa < pb+uintptr(len(b)) && pb < pa+uintptr(len(a))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clamp8(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
