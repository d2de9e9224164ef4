package video

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"rainbow-disk/pkg/utils"
)

var (
	ErrNotAVI   = errors.New("video: not a RIFF AVI file")
	ErrNoStream = errors.New("video: no movi list")
)

// MainHeader is the part of the AVI "avih" chunk the reader uses.
type MainHeader struct {
	MicroSecPerFrame uint32
	TotalFrames      uint32
	Width            uint32
	Height           uint32
}

// Reader decodes the video chunks of an MJPEG AVI file in order.
type Reader struct {
	r      io.ReadSeeker
	closer io.Closer

	Header MainHeader

	pos     int64
	moviEnd int64
	buf     bytes.Buffer
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f

	return r, nil
}

// NewReader parses the RIFF header of rs and positions it on the first
// chunk of the movi list.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var riff [12]byte
	if _, err = io.ReadFull(rs, riff[:]); err != nil {
		return nil, ErrNotAVI
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "AVI " {
		return nil, ErrNotAVI
	}

	r := &Reader{r: rs, pos: 12}
	for r.pos+8 <= end {
		id, size, err := r.chunkHeader()
		if err != nil {
			return nil, err
		}
		if id != "LIST" {
			if err = r.skip(size + size&1); err != nil {
				return nil, err
			}
			continue
		}

		listType, err := r.fourCC()
		if err != nil {
			return nil, err
		}
		listEnd := r.pos + int64(size) - 4
		switch listType {
		case "hdrl":
			if err = r.readHeaderList(listEnd); err != nil {
				return nil, err
			}
		case "movi":
			// unfinished files carry a zero or stale list size
			if size < 4 || listEnd > end {
				listEnd = end
			}
			r.moviEnd = listEnd
			return r, nil
		default:
			if err = r.seek(listEnd + int64(size&1)); err != nil {
				return nil, err
			}
		}
	}

	return nil, ErrNoStream
}

func (r *Reader) readHeaderList(end int64) error {
	for r.pos+8 <= end {
		id, size, err := r.chunkHeader()
		if err != nil {
			return err
		}
		if id == "avih" && size >= 40 {
			var raw [40]byte
			if _, err = io.ReadFull(r.r, raw[:]); err != nil {
				return err
			}
			r.pos += 40
			r.Header = MainHeader{
				MicroSecPerFrame: binary.LittleEndian.Uint32(raw[0:4]),
				TotalFrames:      binary.LittleEndian.Uint32(raw[16:20]),
				Width:            binary.LittleEndian.Uint32(raw[32:36]),
				Height:           binary.LittleEndian.Uint32(raw[36:40]),
			}
			if err = r.skip(size - 40 + size&1); err != nil {
				return err
			}
			continue
		}
		// strl lists and anything else in hdrl are not needed
		if err = r.skip(size + size&1); err != nil {
			return err
		}
	}

	return r.seek(end)
}

// FrameCount returns the frame total from the AVI header.
func (r *Reader) FrameCount() int {
	return int(r.Header.TotalFrames)
}

// Next decodes the next video frame.
func (r *Reader) Next() (image.Image, error) {
	size, err := r.nextFrame()
	if err != nil {
		return nil, err
	}
	r.buf.Reset()
	if _, err = io.CopyN(&r.buf, r.r, int64(size)); err != nil {
		return nil, fmt.Errorf("video: read frame: %w", err)
	}
	r.pos += int64(size)
	if err = r.skip(size & 1); err != nil {
		return nil, err
	}

	return utils.DecodeImage(r.buf.Bytes())
}

// Skip drops the next n video frames without decoding them and returns
// how many were dropped.
func (r *Reader) Skip(n int) (int, error) {
	for i := 0; i < n; i++ {
		size, err := r.nextFrame()
		if err != nil {
			return i, err
		}
		if err = r.skip(size + size&1); err != nil {
			return i, err
		}
	}

	return n, nil
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// nextFrame advances to the next compressed video chunk ("##dc" or
// "##db") and returns its payload size, leaving the reader on the payload.
func (r *Reader) nextFrame() (uint32, error) {
	for {
		if r.pos+8 > r.moviEnd {
			return 0, io.EOF
		}
		id, size, err := r.chunkHeader()
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		if id == "LIST" {
			// "rec " groups; descend into them
			if _, err = r.fourCC(); err != nil {
				return 0, err
			}
			continue
		}
		if id[2:] == "dc" || id[2:] == "db" {
			if r.pos+int64(size) > r.moviEnd {
				return 0, io.EOF
			}
			return size, nil
		}
		if err = r.skip(size + size&1); err != nil {
			return 0, err
		}
	}
}

func (r *Reader) chunkHeader() (string, uint32, error) {
	var h [8]byte
	if _, err := io.ReadFull(r.r, h[:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", 0, err
	}
	r.pos += 8

	return string(h[0:4]), binary.LittleEndian.Uint32(h[4:8]), nil
}

func (r *Reader) fourCC() (string, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return "", err
	}
	r.pos += 4

	return string(b[:]), nil
}

func (r *Reader) skip(n uint32) error {
	if n == 0 {
		return nil
	}
	return r.seek(r.pos + int64(n))
}

func (r *Reader) seek(off int64) error {
	if _, err := r.r.Seek(off, io.SeekStart); err != nil {
		return err
	}
	r.pos = off

	return nil
}
