package camera

import "time"

const (
	DefaultDevice = "/dev/video0"
	DefaultFPS    = 15
	DefaultWidth  = 1280
	DefaultHeight = 720
)

type Options struct {
	Width  int
	Height int
	// FPS is the rate recorded into AVI headers; the device runs at its
	// own rate for the chosen format.
	FPS int
	// Frames is the number of frames the camera yields before io.EOF.
	Frames  int
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = DefaultWidth, DefaultHeight
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	return o
}
