package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rainbow-disk/pkg/camera"
	"rainbow-disk/pkg/ov"
	"rainbow-disk/pkg/video"
)

// renderFlags holds the flag values; only flags set on the command line
// override the config file.
type renderFlags struct {
	opts    ov.RenderOptions
	centerX float64
	centerY float64
}

func addStripFlags(cmd *cobra.Command, f *renderFlags) {
	d := ov.Default()
	cmd.Flags().IntVar(&f.opts.Columns, "columns", d.Columns, "number of frames sampled into the strip")
	cmd.Flags().BoolVar(&f.opts.Strict, "strict", false, "fail when the video ends before every column is filled")
	addFillFlag(cmd, f)
	addQualityFlag(cmd, f)
}

func addWarpFlags(cmd *cobra.Command, f *renderFlags) {
	d := ov.Default()
	cmd.Flags().IntVar(&f.opts.Size, "size", 0, "output size, 0 derives it from the input")
	cmd.Flags().Float64Var(&f.opts.MaxRadius, "max-radius", 0, "radius mapped to the last strip column, 0 for half the output")
	cmd.Flags().Float64Var(&f.centerX, "center-x", 0, "center x, defaults to the middle")
	cmd.Flags().Float64Var(&f.centerY, "center-y", 0, "center y, defaults to the middle")
	cmd.Flags().StringVar(&f.opts.Scaling, "scaling", d.Scaling, "radial scaling: linear or log")
	cmd.Flags().StringVar(&f.opts.Interpolation, "interpolation", d.Interpolation, "nearest, bilinear or bicubic")
	cmd.Flags().StringVar(&f.opts.Border, "border", d.Border, "outside pixels: constant (fill) or transparent")
	addFillFlag(cmd, f)
	addQualityFlag(cmd, f)
}

func addDiskFlags(cmd *cobra.Command, f *renderFlags) {
	cmd.Flags().IntVar(&f.opts.Pad, "pad", 0, "fill columns added at the disk center")
	cmd.Flags().BoolVar(&f.opts.Rotate, "rotate", false, "run time around the circle instead of outward")
	addWarpFlags(cmd, f)
}

func addFillFlag(cmd *cobra.Command, f *renderFlags) {
	if cmd.Flags().Lookup("fill") == nil {
		cmd.Flags().StringVar(&f.opts.Fill, "fill", ov.Default().Fill, "fill color: #rrggbb or r,g,b")
	}
}

func addQualityFlag(cmd *cobra.Command, f *renderFlags) {
	if cmd.Flags().Lookup("quality") == nil {
		cmd.Flags().IntVar(&f.opts.Quality, "quality", ov.DefaultQuality, "JPEG quality of jpg outputs")
	}
}

// resolve loads --config over the defaults and applies the flags the
// user set.
func (f *renderFlags) resolve(cmd *cobra.Command) (ov.RenderOptions, error) {
	opts := ov.Default()
	if cfgFile != "" {
		var err error
		if opts, err = ov.Load(cfgFile); err != nil {
			return opts, newExitCodeError(fmt.Errorf("could not load config: %w", err), ExitCodeInvalidArguments)
		}
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("columns", func() { opts.Columns = f.opts.Columns })
	set("strict", func() { opts.Strict = f.opts.Strict })
	set("pad", func() { opts.Pad = f.opts.Pad })
	set("rotate", func() { opts.Rotate = f.opts.Rotate })
	set("size", func() { opts.Size = f.opts.Size })
	set("max-radius", func() { opts.MaxRadius = f.opts.MaxRadius })
	set("center-x", func() { x := f.centerX; opts.CenterX = &x })
	set("center-y", func() { y := f.centerY; opts.CenterY = &y })
	set("scaling", func() { opts.Scaling = f.opts.Scaling })
	set("interpolation", func() { opts.Interpolation = f.opts.Interpolation })
	set("border", func() { opts.Border = f.opts.Border })
	set("fill", func() { opts.Fill = f.opts.Fill })
	set("quality", func() { opts.Quality = f.opts.Quality })

	return opts, nil
}

// sourceFlags selects between a file input and a live camera.
type sourceFlags struct {
	camera bool
	cam    camera.Options
}

func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().BoolVar(&f.camera, "camera", false, "treat the input as a V4L2 device and record --frames frames")
	cmd.Flags().IntVar(&f.cam.Frames, "frames", 0, "frames to record from the camera")
	cmd.Flags().IntVar(&f.cam.Width, "width", camera.DefaultWidth, "camera frame width")
	cmd.Flags().IntVar(&f.cam.Height, "height", camera.DefaultHeight, "camera frame height")
}

func (f *sourceFlags) open(ctx context.Context, input string) (video.Source, error) {
	if f.camera {
		c, err := camera.Open(ctx, input, f.cam)
		if err != nil {
			return nil, newExitCodeError(err, ExitCodeInvalidInput)
		}
		return c, nil
	}
	src, err := video.OpenSource(input)
	if err != nil {
		return nil, newExitCodeError(fmt.Errorf("could not open input %s: %w", input, err), ExitCodeInvalidInput)
	}
	return src, nil
}

func validFile(path string) error {
	_, err := os.Stat(path)
	return err
}

func inputArgs(n int, source *sourceFlags) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return newExitCodeError(err, ExitCodeInvalidArguments)
		}
		if source != nil && source.camera {
			return nil
		}
		if err := validFile(args[0]); err != nil {
			return newExitCodeError(fmt.Errorf("could not open input %s: %w", args[0], err), ExitCodeInvalidInput)
		}
		return nil
	}
}
