package remap

import (
	"fmt"

	"rainbow-disk/pkg/pixel"
)

// Warp resolves p, builds the coordinate map and resamples src into a new
// buffer. Inverse warps sample a copy of src with one row of angle-wrap
// padding on each side.
//
// With BorderTransparent the destination starts out filled with p.Fill,
// so uncovered pixels keep the padding color.
func Warp(src *pixel.Buffer, p Params) (*pixel.Buffer, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrShapeMismatch)
	}
	p, err := p.Resolve()
	if err != nil {
		return nil, err
	}
	dst, err := pixel.New(p.Size.Width, p.Size.Height, src.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	if p.Border == BorderTransparent {
		dst.Fill(p.Fill)
	}
	if err = warpInto(dst, src, p); err != nil {
		return nil, err
	}

	return dst, nil
}

// WarpInto is Warp writing into a caller-owned destination, which must
// have the resolved destination size.
func WarpInto(dst, src *pixel.Buffer, p Params) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%w: nil buffer", ErrShapeMismatch)
	}
	p, err := p.Resolve()
	if err != nil {
		return err
	}
	if dst.Size() != p.Size {
		return fmt.Errorf("%w: destination %s, want %s", ErrShapeMismatch, dst.Size(), p.Size)
	}

	return warpInto(dst, src, p)
}

func warpInto(dst, src *pixel.Buffer, p Params) error {
	m, err := BuildMap(p, src.Size())
	if err != nil {
		return err
	}
	if p.Direction == Inverse {
		src = src.WrapRows()
	}

	return RemapInto(dst, src, m, p.Sampling())
}
