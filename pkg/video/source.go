package video

import (
	"image"
	"os"
)

// Source is a closable frame stream.
type Source interface {
	Next() (image.Image, error)
	Skip(n int) (int, error)
	FrameCount() int
	Close() error
}

// OpenSource opens path as an image directory or an MJPEG AVI file.
func OpenSource(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return OpenDir(path)
	}

	return Open(path)
}
