// Package remap resamples pixel buffers between Cartesian and (log-)polar
// coordinate spaces.
//
// A warp runs in two steps. BuildMap computes, for every destination
// pixel, the fractional source coordinate it samples. Remap then reads the
// source at those coordinates with the selected interpolation kernel and
// applies the border policy to coordinates that fall outside the source.
package remap

import (
	"errors"
	"fmt"
	"math"

	"rainbow-disk/pkg/pixel"
)

var (
	// ErrInvalidParameters is returned for a non-positive radius, a
	// degenerate logarithm domain or non-positive destination dimensions.
	ErrInvalidParameters = errors.New("remap: invalid parameters")
	// ErrShapeMismatch is returned when a coordinate map, source and
	// destination disagree on shape or channel count.
	ErrShapeMismatch = errors.New("remap: shape mismatch")
)

// MaxPixels bounds the destination and map size of a single warp. A map
// costs 16 bytes per pixel.
const MaxPixels = 1 << 27

type Scaling int

const (
	Linear Scaling = iota
	Log
)

func (s Scaling) String() string {
	switch s {
	case Linear:
		return "linear"
	case Log:
		return "log"
	}
	return fmt.Sprintf("Scaling(%d)", int(s))
}

type Direction int

const (
	// Forward samples a Cartesian source along rays to build a polar buffer.
	Forward Direction = iota
	// Inverse samples a polar buffer to rebuild a Cartesian disk.
	Inverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

type Interpolation int

const (
	Nearest Interpolation = iota
	Bilinear
	Bicubic
)

func (i Interpolation) String() string {
	switch i {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Bicubic:
		return "bicubic"
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

type BorderPolicy int

const (
	// BorderConstant writes the fill color for out-of-range coordinates.
	BorderConstant BorderPolicy = iota
	// BorderTransparent leaves the destination pixel untouched.
	BorderTransparent
	// BorderWrap is not evaluated per pixel. It marks the row padding
	// applied once to the source of an Inverse warp.
	BorderWrap
)

func (b BorderPolicy) String() string {
	switch b {
	case BorderConstant:
		return "constant"
	case BorderTransparent:
		return "transparent"
	case BorderWrap:
		return "wrap"
	}
	return fmt.Sprintf("BorderPolicy(%d)", int(b))
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Params configures one warp. It is copied by value and never mutated by
// the package.
type Params struct {
	Center    Point
	MaxRadius float64
	// Size is the destination size. For Forward warps a non-positive size
	// is derived from MaxRadius, see Resolve.
	Size      pixel.Size
	Scaling   Scaling
	Direction Direction

	Interpolation Interpolation
	Border        BorderPolicy
	Fill          pixel.Color
}

// Sampling returns the resampler half of p.
func (p Params) Sampling() Sampling {
	return Sampling{
		Interpolation: p.Interpolation,
		Border:        p.Border,
		Fill:          p.Fill,
	}
}

// Resolve derives a missing Forward destination size and validates p.
//
// With both dimensions unset the size keeps the bounding circle's area:
// width = round(MaxRadius), height = round(MaxRadius*π). With only the
// height unset it becomes round(width*π). Sizes above MaxPixels are
// rejected.
func (p Params) Resolve() (Params, error) {
	if math.IsNaN(p.MaxRadius) || math.IsInf(p.MaxRadius, 0) || p.MaxRadius <= 0 {
		return p, fmt.Errorf("%w: max radius %v must be > 0", ErrInvalidParameters, p.MaxRadius)
	}
	if p.Scaling == Log && p.MaxRadius <= 1 {
		return p, fmt.Errorf("%w: log scaling needs max radius > 1, got %v", ErrInvalidParameters, p.MaxRadius)
	}
	if !finite(p.Center.X) || !finite(p.Center.Y) {
		return p, fmt.Errorf("%w: center %v is not finite", ErrInvalidParameters, p.Center)
	}
	switch p.Scaling {
	case Linear, Log:
	default:
		return p, fmt.Errorf("%w: unknown scaling %s", ErrInvalidParameters, p.Scaling)
	}
	switch p.Interpolation {
	case Nearest, Bilinear, Bicubic:
	default:
		return p, fmt.Errorf("%w: unknown interpolation %s", ErrInvalidParameters, p.Interpolation)
	}
	switch p.Border {
	case BorderConstant, BorderTransparent:
	default:
		return p, fmt.Errorf("%w: border %s is not a per-pixel policy", ErrInvalidParameters, p.Border)
	}

	switch p.Direction {
	case Forward:
		w, h := float64(p.Size.Width), float64(p.Size.Height)
		if p.Size.Width <= 0 && p.Size.Height <= 0 {
			w, h = math.Round(p.MaxRadius), math.Round(p.MaxRadius*math.Pi)
		} else if p.Size.Height <= 0 {
			h = math.Round(w * math.Pi)
		}
		if w*h > MaxPixels {
			return p, fmt.Errorf("%w: derived size %.0fx%.0f exceeds %d pixels", ErrInvalidParameters, w, h, MaxPixels)
		}
		p.Size = pixel.Size{Width: int(w), Height: int(h)}
	case Inverse:
	default:
		return p, fmt.Errorf("%w: unknown direction %s", ErrInvalidParameters, p.Direction)
	}

	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return p, fmt.Errorf("%w: destination size %s", ErrInvalidParameters, p.Size)
	}
	if n, ok := pixel.Samples(p.Size.Width, p.Size.Height, 1); !ok || n > MaxPixels {
		return p, fmt.Errorf("%w: destination size %s exceeds %d pixels", ErrInvalidParameters, p.Size, MaxPixels)
	}

	return p, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
