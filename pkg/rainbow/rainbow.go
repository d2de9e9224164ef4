package rainbow

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"go.uber.org/zap"

	"rainbow-disk/pkg/pixel"
	"rainbow-disk/pkg/utils"
)

const (
	DefaultChannels = 3
	ProgressEvery   = 100
)

var (
	// ErrTruncated reports that the source ran out of frames before every
	// column was filled. Builders never return it themselves; callers use
	// Result.Err to turn a truncated result into an error.
	ErrTruncated = errors.New("rainbow: source ended before the strip was filled")
	ErrFrameSize = errors.New("rainbow: frame height changed mid-stream")
	ErrNoFrames  = errors.New("rainbow: source has no frames")
)

// FrameSource yields decoded frames in order. Next and Skip return io.EOF
// once the stream is exhausted.
type FrameSource interface {
	Next() (image.Image, error)
	// Skip drops up to n frames without decoding them where possible and
	// returns how many it dropped.
	Skip(n int) (int, error)
	// FrameCount is the total number of frames, or 0 when unknown.
	FrameCount() int
}

type Result struct {
	Strip *pixel.Buffer
	// Filled is the number of columns that hold frame data.
	Filled    int
	Truncated bool
	// Frames is the number of frames read or skipped.
	Frames int
}

func (r *Result) Err() error {
	if r.Truncated {
		return fmt.Errorf("%w: %d of %d columns", ErrTruncated, r.Filled, r.Strip.Width)
	}
	return nil
}

type Builder struct {
	// Fill is written to columns that no frame reached.
	Fill     pixel.Color
	Channels int

	logger *zap.SugaredLogger
}

func NewBuilder(fill pixel.Color) *Builder {
	return &Builder{
		Fill:     fill,
		Channels: DefaultChannels,
		logger:   utils.GetLogger(),
	}
}

// Build samples width frames spread evenly over src and stacks their row
// means as the columns of a strip whose height is the frame height.
func (b *Builder) Build(ctx context.Context, src FrameSource, width int) (*Result, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: strip width %d", pixel.ErrBadShape, width)
	}
	total := src.FrameCount()

	first, err := src.Next()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoFrames
	}
	if err != nil {
		return nil, fmt.Errorf("read frame 0: %w", err)
	}

	height := first.Bounds().Dy()
	strip, err := pixel.New(width, height, b.channels())
	if err != nil {
		return nil, err
	}
	res := &Result{Strip: strip, Frames: 1}

	frame := first
	for col := 0; ; col++ {
		if frame.Bounds().Dy() != height {
			return nil, fmt.Errorf("%w: frame %d is %d rows, want %d", ErrFrameSize, res.Frames-1, frame.Bounds().Dy(), height)
		}
		writeColumn(strip, col, frame)
		res.Filled++
		if col == width-1 {
			break
		}

		if err = ctx.Err(); err != nil {
			return nil, err
		}
		skip := FramesToSkip(total, width, col)
		if skip > 0 {
			var skipped int
			skipped, err = src.Skip(skip)
			res.Frames += skipped
			b.progress(res.Frames, total, skipped)
		}
		if err == nil {
			frame, err = src.Next()
			if err == nil {
				res.Frames++
				b.progress(res.Frames, total, 1)
			}
		}
		if errors.Is(err, io.EOF) {
			res.Truncated = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read frame %d: %w", res.Frames-1, err)
		}
	}

	if res.Truncated {
		b.logger.Warnf("rainbow: source ended after %d frames, %d of %d columns filled", res.Frames, res.Filled, width)
		for col := res.Filled; col < width; col++ {
			for y := 0; y < height; y++ {
				strip.SetPixel(col, y, b.Fill)
			}
		}
	}

	return res, nil
}

func (b *Builder) channels() int {
	if b.Channels <= 0 {
		return DefaultChannels
	}
	return b.Channels
}

// progress logs every ProgressEvery frames read.
func (b *Builder) progress(frames, total, advanced int) {
	if frames/ProgressEvery == (frames-advanced)/ProgressEvery {
		return
	}
	if total > 0 {
		b.logger.Infof("%d/%d", frames, total)
	} else {
		b.logger.Infof("%d", frames)
	}
}

// FramesToSkip returns how many frames to drop after the frame sampled for
// column col so that width columns cover total frames evenly. Column i
// samples frame floor(i*total/width). It is 0 when total is unknown or
// smaller than width.
func FramesToSkip(total, width, col int) int {
	if total <= width || width <= 0 {
		return 0
	}
	cur := col * total / width
	next := (col + 1) * total / width
	return next - cur - 1
}
