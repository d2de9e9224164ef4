//go:build linux

package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"
	"go.uber.org/zap"

	"rainbow-disk/pkg/utils"
)

// Camera streams JPEG frames from a V4L2 device as a frame source. It
// stops after Frames frames so the rainbow builder can spread its columns
// over a known total.
type Camera struct {
	devName string
	opts    Options

	lock   sync.Mutex
	cancel context.CancelFunc
	camera *device.Device
	frames <-chan []byte

	read   int
	logger *zap.SugaredLogger
}

func Open(ctx context.Context, devName string, opts Options) (*Camera, error) {
	opts = opts.withDefaults()
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("camera: frame limit must be > 0")
	}
	camera, err := device.Open(
		devName,
		device.WithBufferSize(2),
		device.WithPixFormat(v4l2.PixFormat{
			PixelFormat: v4l2.PixelFmtJPEG,
			Width:       uint32(opts.Width),
			Height:      uint32(opts.Height),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("camera: open %s: %w", devName, err)
	}

	c := &Camera{
		devName: devName,
		opts:    opts,
		camera:  camera,
		logger:  utils.GetLogger(),
	}
	c.logger.Infof("start camera %s in %d*%d", devName, opts.Width, opts.Height)

	newCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	if err = camera.Start(newCtx); err != nil {
		cancel()
		_ = camera.Close()
		return nil, fmt.Errorf("camera: start: %w", err)
	}
	c.frames = camera.GetOutput()

	return c, nil
}

func (c *Camera) FrameCount() int {
	return c.opts.Frames
}

func (c *Camera) Next() (image.Image, error) {
	data, err := c.next()
	if err != nil {
		return nil, err
	}

	return utils.DecodeImage(data)
}

func (c *Camera) Skip(n int) (int, error) {
	for i := 0; i < n; i++ {
		if _, err := c.next(); err != nil {
			return i, err
		}
	}

	return n, nil
}

func (c *Camera) next() ([]byte, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.camera == nil || c.read >= c.opts.Frames {
		return nil, io.EOF
	}

	timer := time.NewTimer(c.opts.Timeout)
	defer timer.Stop()
	select {
	case frame, ok := <-c.frames:
		if !ok {
			return nil, io.EOF
		}
		c.read++
		cp := make([]byte, len(frame))
		copy(cp, frame)
		return cp, nil
	case <-timer.C:
		return nil, errors.New("camera: frame timeout")
	}
}

func (c *Camera) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.camera != nil {
		err := c.camera.Close()
		c.camera = nil
		return err
	}
	return nil
}

// NextJPEG returns the next frame as the JPEG the device produced.
func (c *Camera) NextJPEG() ([]byte, error) {
	return c.next()
}
