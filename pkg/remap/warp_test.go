package remap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainbow-disk/pkg/pixel"
)

func roundTrip(t *testing.T, src *pixel.Buffer, s Scaling, interp Interpolation, polar pixel.Size) *pixel.Buffer {
	t.Helper()
	center := Point{X: float64(src.Width) / 2, Y: float64(src.Height) / 2}
	maxRadius := float64(src.Width) / 2

	strip, err := Warp(src, Params{
		Center:        center,
		MaxRadius:     maxRadius,
		Size:          polar,
		Scaling:       s,
		Direction:     Forward,
		Interpolation: interp,
	})
	require.NoError(t, err)
	require.Equal(t, polar, strip.Size())

	disk, err := Warp(strip, Params{
		Center:        center,
		MaxRadius:     maxRadius,
		Size:          src.Size(),
		Scaling:       s,
		Direction:     Inverse,
		Interpolation: interp,
		Fill:          pixel.Color{255, 0, 255},
	})
	require.NoError(t, err)
	require.Equal(t, src.Size(), disk.Size())

	return disk
}

func TestRoundTripConstant(t *testing.T) {
	src := constant(t, 32, 32, pixel.Color{10, 20, 30})
	for _, s := range []Scaling{Linear, Log} {
		for _, interp := range []Interpolation{Nearest, Bilinear, Bicubic} {
			disk := roundTrip(t, src, s, interp, pixel.Size{Width: 64, Height: 200})
			for y := 0; y < 32; y++ {
				for x := 0; x < 32; x++ {
					if math.Hypot(float64(x)-16, float64(y)-16) >= 15 {
						continue
					}
					assert.Equalf(t, []uint8{10, 20, 30}, disk.Pixel(x, y), "%s/%s at (%d,%d)", s, interp, x, y)
				}
			}
		}
	}
}

func TestRoundTripOutsideDiskIsFilled(t *testing.T) {
	src := constant(t, 32, 32, pixel.Color{10, 20, 30})
	disk := roundTrip(t, src, Linear, Bilinear, pixel.Size{Width: 64, Height: 200})
	for _, p := range [][2]int{{0, 0}, {31, 0}, {0, 31}, {31, 31}} {
		assert.Equal(t, []uint8{255, 0, 255}, disk.Pixel(p[0], p[1]))
	}
}

func TestRoundTripGradient(t *testing.T) {
	src, err := pixel.New(32, 32, 1)
	require.NoError(t, err)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			src.SetPixel(x, y, pixel.Color{uint8(4*x + 2*y)})
		}
	}

	disk := roundTrip(t, src, Linear, Bilinear, pixel.Size{Width: 64, Height: 200})
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if math.Hypot(float64(x)-16, float64(y)-16) >= 12 {
				continue
			}
			want := float64(src.Pixel(x, y)[0])
			got := float64(disk.Pixel(x, y)[0])
			assert.InDeltaf(t, want, got, 2, "(%d,%d)", x, y)
		}
	}
}

func TestInverseWrapsAngleSeam(t *testing.T) {
	// one ring per row: the top and bottom rows of the strip meet at
	// angle 0, and the seam must blend them instead of hitting the border
	strip, err := pixel.New(8, 4, 1)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			strip.SetPixel(x, y, pixel.Color{uint8(40 * (y + 1))})
		}
	}

	disk, err := Warp(strip, Params{
		Center:        Point{X: 8, Y: 8},
		MaxRadius:     8,
		Size:          pixel.Size{Width: 17, Height: 17},
		Direction:     Inverse,
		Interpolation: Bilinear,
		Fill:          pixel.Color{1},
	})
	require.NoError(t, err)

	// (12, 7) sits just below angle 2π: atan2(-1, 4) + 2π
	a := math.Atan2(-1, 4) + 2*math.Pi
	f := a/(math.Pi/2) - 3
	want := 160*(1-f) + 40*f
	assert.InDelta(t, want, float64(disk.Pixel(12, 7)[0]), 0.5)
	// angle 0 exactly reads the first row
	assert.Equal(t, uint8(40), disk.Pixel(12, 8)[0])
}

func TestWarpTransparentPrefillsWithFill(t *testing.T) {
	strip := constant(t, 4, 8, pixel.Color{100, 100, 100})
	disk, err := Warp(strip, Params{
		Center:    Point{X: 5, Y: 5},
		MaxRadius: 4,
		Size:      pixel.Size{Width: 11, Height: 11},
		Direction: Inverse,
		Border:    BorderTransparent,
		Fill:      pixel.Color{0, 0, 200},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 200}, disk.Pixel(0, 0))
	assert.Equal(t, []uint8{100, 100, 100}, disk.Pixel(5, 5))
}

func TestWarpLargeBufferUsesAllRows(t *testing.T) {
	src := constant(t, 256, 256, pixel.Color{7, 8, 9})
	dst, err := Warp(src, Params{
		Center:        Point{X: 128, Y: 128},
		MaxRadius:     120,
		Size:          pixel.Size{Width: 128, Height: 400},
		Interpolation: Bilinear,
	})
	require.NoError(t, err)
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			require.Equal(t, []uint8{7, 8, 9}, dst.Pixel(x, y))
		}
	}
}

func TestWarpDerivesForwardSize(t *testing.T) {
	src := constant(t, 20, 20, pixel.Color{3})
	dst, err := Warp(src, Params{Center: Point{X: 10, Y: 10}, MaxRadius: 9})
	require.NoError(t, err)
	assert.Equal(t, pixel.Size{Width: 9, Height: 28}, dst.Size())
}
