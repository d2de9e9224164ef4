package video

import (
	"bytes"
	"fmt"
	"image"

	"github.com/icza/mjpeg"

	"rainbow-disk/pkg/utils"
)

const DefaultQuality = 90

// Writer appends JPEG frames to an MJPEG AVI file.
type Writer struct {
	width  int
	height int
	fps    int

	cnt    int
	aw     mjpeg.AviWriter
	buf    bytes.Buffer
	closed bool
}

func NewWriter(path string, width, height, fps int) (*Writer, error) {
	if width <= 0 || height <= 0 || fps <= 0 {
		return nil, fmt.Errorf("video: invalid writer geometry %dx%d@%d", width, height, fps)
	}
	aw, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, err
	}

	return &Writer{
		width:  width,
		height: height,
		fps:    fps,
		aw:     aw,
	}, nil
}

// Add appends an already JPEG-encoded frame.
func (w *Writer) Add(frame []byte) error {
	err := w.aw.AddFrame(frame)
	if err != nil {
		return err
	}
	w.cnt++

	return nil
}

// AddImage encodes img as JPEG and appends it. Frames must match the
// writer's geometry.
func (w *Writer) AddImage(img image.Image, quality int) error {
	if b := img.Bounds(); b.Dx() != w.width || b.Dy() != w.height {
		return fmt.Errorf("video: frame %dx%d does not match %dx%d", b.Dx(), b.Dy(), w.width, w.height)
	}
	w.buf.Reset()
	if err := utils.EncodeJPEG(img, &w.buf, quality); err != nil {
		return err
	}

	return w.Add(w.buf.Bytes())
}

// Close finalizes the file. Later calls are no-ops.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.aw.Close()
}

func (w *Writer) Count() int {
	return w.cnt
}
