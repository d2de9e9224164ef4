//go:build !linux

package camera

import (
	"context"
	"errors"
	"image"
)

var ErrUnsupported = errors.New("camera: V4L2 capture needs linux")

type Camera struct{}

func Open(ctx context.Context, devName string, opts Options) (*Camera, error) {
	return nil, ErrUnsupported
}

func (c *Camera) FrameCount() int             { return 0 }
func (c *Camera) Next() (image.Image, error) { return nil, ErrUnsupported }
func (c *Camera) NextJPEG() ([]byte, error)  { return nil, ErrUnsupported }
func (c *Camera) Skip(n int) (int, error)    { return 0, ErrUnsupported }
func (c *Camera) Close() error               { return nil }
