package remap

import (
	"fmt"
	"math"

	"rainbow-disk/pkg/pixel"
)

// Map holds one fractional source coordinate per destination pixel.
// The coordinate of destination (x, y) is (X[y*Width+x], Y[y*Width+x]).
type Map struct {
	Width  int
	Height int
	X      []float64
	Y      []float64
}

func NewMap(size pixel.Size) (*Map, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: map size %s", ErrInvalidParameters, size)
	}
	n, ok := pixel.Samples(size.Width, size.Height, 1)
	if !ok || n > MaxPixels {
		return nil, fmt.Errorf("%w: map size %s exceeds %d pixels", ErrInvalidParameters, size, MaxPixels)
	}
	return &Map{
		Width:  size.Width,
		Height: size.Height,
		X:      make([]float64, n),
		Y:      make([]float64, n),
	}, nil
}

func (m *Map) Size() pixel.Size {
	return pixel.Size{Width: m.Width, Height: m.Height}
}

// At returns the source coordinate sampled by destination (x, y).
func (m *Map) At(x, y int) (float64, float64) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		panic(fmt.Sprintf("remap: map index (%d,%d) out of range %dx%d", x, y, m.Width, m.Height))
	}
	i := y*m.Width + x
	return m.X[i], m.Y[i]
}

func (m *Map) valid() bool {
	n := m.Width * m.Height
	return m.Width > 0 && m.Height > 0 && len(m.X) == n && len(m.Y) == n
}

// radialScale is the per-column radial step: the radius gained per column
// for Linear, the log-radius gained per column for Log.
//
// Log uses ln(maxRadius+1) so that ForwardRadius(width) lands on maxRadius
// while ForwardRadius(0) stays at 0.
func radialScale(s Scaling, maxRadius float64, width int) float64 {
	if s == Log {
		return math.Log(maxRadius+1) / float64(width)
	}
	return maxRadius / float64(width)
}

// ForwardRadius returns the source radius sampled by polar column rho of a
// polar buffer that is width columns wide.
func ForwardRadius(s Scaling, maxRadius float64, width int, rho float64) float64 {
	k := radialScale(s, maxRadius, width)
	if s == Log {
		return math.Exp(rho*k) - 1
	}
	return rho * k
}

// InverseRadius returns the polar column holding Cartesian radius r. It is
// the inverse of ForwardRadius.
func InverseRadius(s Scaling, maxRadius float64, width int, r float64) float64 {
	k := radialScale(s, maxRadius, width)
	if s == Log {
		return math.Log(r+1) / k
	}
	return r / k
}

// BuildMap computes the coordinate map of a warp. p must have been
// resolved; src is the size of the unpadded source buffer.
//
// Forward: destination rows index angle, columns index radius, and the
// map points into the Cartesian source.
//
// Inverse: the map points into the source after WrapRows, hence the one
// row offset on Y.
func BuildMap(p Params, src pixel.Size) (*Map, error) {
	if src.Width <= 0 || src.Height <= 0 {
		return nil, fmt.Errorf("%w: source size %s", ErrInvalidParameters, src)
	}
	m, err := NewMap(p.Size)
	if err != nil {
		return nil, err
	}

	switch p.Direction {
	case Forward:
		buildForward(m, p)
	case Inverse:
		buildInverse(m, p, src)
	default:
		return nil, fmt.Errorf("%w: unknown direction %s", ErrInvalidParameters, p.Direction)
	}

	return m, nil
}

func buildForward(m *Map, p Params) {
	radius := make([]float64, m.Width)
	for rho := range radius {
		radius[rho] = ForwardRadius(p.Scaling, p.MaxRadius, m.Width, float64(rho))
	}
	angleStep := 2 * math.Pi / float64(m.Height)

	parallelRows(m.Height, m.Width, func(start, end int) {
		for phi := start; phi < end; phi++ {
			sin, cos := math.Sincos(float64(phi) * angleStep)
			row := phi * m.Width
			for rho, r := range radius {
				m.X[row+rho] = p.Center.X + r*cos
				m.Y[row+rho] = p.Center.Y + r*sin
			}
		}
	})
}

func buildInverse(m *Map, p Params, src pixel.Size) {
	angleStep := 2 * math.Pi / float64(src.Height)
	k := radialScale(p.Scaling, p.MaxRadius, src.Width)

	parallelRows(m.Height, m.Width, func(start, end int) {
		for y := start; y < end; y++ {
			dy := float64(y) - p.Center.Y
			row := y * m.Width
			for x := 0; x < m.Width; x++ {
				dx := float64(x) - p.Center.X
				r := math.Hypot(dx, dy)
				a := math.Atan2(dy, dx)
				if a < 0 {
					a += 2 * math.Pi
				}
				if p.Scaling == Log {
					r = math.Log(r + 1)
				}
				m.X[row+x] = r / k
				m.Y[row+x] = a/angleStep + 1
			}
		}
	})
}
