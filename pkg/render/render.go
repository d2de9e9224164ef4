package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"rainbow-disk/pkg/ov"
	"rainbow-disk/pkg/pixel"
	"rainbow-disk/pkg/rainbow"
	"rainbow-disk/pkg/remap"
	"rainbow-disk/pkg/utils"
	"rainbow-disk/pkg/utils/ps"
	"rainbow-disk/pkg/video"
)

var ErrInvalidOptions = errors.New("render: invalid options")

// bytes held per destination pixel besides the pixel itself: two float64
// map coordinates
const mapBytesPerPixel = 16

type Output struct {
	Result *rainbow.Result
	// Strip is the raw rainbow strip, Polar the rotated and padded copy
	// that was warped into Disk.
	Strip  *pixel.Buffer
	Polar  *pixel.Buffer
	Disk   *pixel.Buffer
	Params remap.Params
}

type Renderer struct {
	opts   ov.RenderOptions
	fill   pixel.Color
	params remap.Params

	logger *zap.SugaredLogger
}

// New parses the string fields of opts. Geometry is validated when a
// buffer is warped, since defaults depend on its size.
func New(opts ov.RenderOptions) (*Renderer, error) {
	fill, err := pixel.ParseColor(opts.Fill)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	scaling, err := remap.ParseScaling(opts.Scaling)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	interp, err := remap.ParseInterpolation(opts.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	border, err := remap.ParseBorder(opts.Border)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if opts.Pad < 0 || opts.Size < 0 || opts.MaxRadius < 0 {
		return nil, fmt.Errorf("%w: pad, size and max radius must not be negative", ErrInvalidOptions)
	}

	return &Renderer{
		opts: opts,
		fill: fill,
		params: remap.Params{
			Scaling:       scaling,
			Interpolation: interp,
			Border:        border,
			Fill:          fill,
		},
		logger: utils.GetLogger(),
	}, nil
}

func (r *Renderer) Options() ov.RenderOptions {
	return r.opts
}

// Open renders the video file or image directory at path.
func (r *Renderer) Open(ctx context.Context, path string) (*Output, error) {
	src, err := video.OpenSource(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	return r.Render(ctx, src)
}

// Render builds the rainbow strip of src and warps it into a disk.
func (r *Renderer) Render(ctx context.Context, src rainbow.FrameSource) (*Output, error) {
	res, err := r.Strip(ctx, src)
	if err != nil {
		return nil, err
	}
	out, err := r.Disk(res.Strip)
	if err != nil {
		return nil, err
	}
	out.Result = res

	return out, nil
}

// Strip builds the rainbow strip. A truncated strip is an error only in
// strict mode; otherwise the missing columns hold the fill color.
func (r *Renderer) Strip(ctx context.Context, src rainbow.FrameSource) (*rainbow.Result, error) {
	if r.opts.Columns <= 0 {
		return nil, fmt.Errorf("%w: columns %d", ErrInvalidOptions, r.opts.Columns)
	}
	res, err := rainbow.NewBuilder(r.fill).Build(ctx, src, r.opts.Columns)
	if err != nil {
		return nil, err
	}
	if r.opts.Strict {
		if err = res.Err(); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Prepare rotates strip when requested, then pads its left edge so the
// disk gets a hole of Pad pixels at its center.
func (r *Renderer) Prepare(strip *pixel.Buffer) *pixel.Buffer {
	if r.opts.Rotate {
		strip = strip.Rotate90(true)
	}
	if r.opts.Pad > 0 {
		strip = strip.PadLeft(r.opts.Pad, r.fill)
	}
	return strip
}

// DiskParams returns the inverse warp parameters for a prepared strip of
// the given size. The disk side defaults to twice the strip width so each
// strip column covers one pixel of radius.
func (r *Renderer) DiskParams(polar pixel.Size) remap.Params {
	p := r.params
	p.Direction = remap.Inverse

	side := r.opts.Size
	if side == 0 {
		side = 2 * polar.Width
	}
	p.Size = pixel.Size{Width: side, Height: side}
	p.MaxRadius = r.opts.MaxRadius
	if p.MaxRadius == 0 {
		p.MaxRadius = float64(side) / 2
	}
	p.Center = r.center(p.Size)

	return p
}

// Disk warps strip into a disk image.
func (r *Renderer) Disk(strip *pixel.Buffer) (*Output, error) {
	polar := r.Prepare(strip)
	p, err := r.DiskParams(polar.Size()).Resolve()
	if err != nil {
		return nil, err
	}

	need := uint64(p.Size.Width) * uint64(p.Size.Height) * uint64(polar.Channels+mapBytesPerPixel)
	r.logger.Infof("warping %s strip into %s disk, about %s", polar.Size(), p.Size, humanize.IBytes(need))
	if err = ps.CheckMemory(need); err != nil {
		return nil, err
	}

	disk, err := remap.Warp(polar, p)
	if err != nil {
		return nil, err
	}

	return &Output{Strip: strip, Polar: polar, Disk: disk, Params: p}, nil
}

// Polar unrolls img around the center into a polar strip: columns are
// radius, rows are angle.
func (r *Renderer) Polar(img *pixel.Buffer) (*pixel.Buffer, remap.Params, error) {
	p := r.params
	p.Direction = remap.Forward
	p.Size = pixel.Size{Width: r.opts.Size}
	p.MaxRadius = r.opts.MaxRadius
	if p.MaxRadius == 0 {
		p.MaxRadius = float64(min(img.Width, img.Height)) / 2
	}
	p.Center = r.center(img.Size())

	p, err := p.Resolve()
	if err != nil {
		return nil, p, err
	}
	out, err := remap.Warp(img, p)
	if err != nil {
		return nil, p, err
	}

	return out, p, nil
}

func (r *Renderer) center(size pixel.Size) remap.Point {
	c := remap.Point{X: float64(size.Width) / 2, Y: float64(size.Height) / 2}
	if r.opts.CenterX != nil {
		c.X = *r.opts.CenterX
	}
	if r.opts.CenterY != nil {
		c.Y = *r.opts.CenterY
	}
	return c
}

// Save writes the strip and disk images; an empty path skips that image.
func (o *Output) Save(stripFile, diskFile string, quality int) error {
	if stripFile != "" && o.Strip != nil {
		if err := utils.EncodeImageFile(o.Strip, stripFile, quality); err != nil {
			return fmt.Errorf("write strip: %w", err)
		}
	}
	if diskFile != "" && o.Disk != nil {
		if err := utils.EncodeImageFile(o.Disk, diskFile, quality); err != nil {
			return fmt.Errorf("write disk: %w", err)
		}
	}
	return nil
}
