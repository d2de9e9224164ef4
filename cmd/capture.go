package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rainbow-disk/pkg/camera"
	"rainbow-disk/pkg/rainbow"
	"rainbow-disk/pkg/utils"
	"rainbow-disk/pkg/video"
)

func newCaptureCmd() *cobra.Command {
	opts := camera.Options{}

	cmd := &cobra.Command{
		Use:   "capture [output.avi]",
		Short: "Record frames from a V4L2 camera into an MJPEG AVI",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return newExitCodeError(err, ExitCodeInvalidArguments)
			}
			if opts.Frames <= 0 {
				return newExitCodeError(fmt.Errorf("--frames must be > 0"), ExitCodeInvalidArguments)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.GetLogger()
			devName, _ := cmd.Flags().GetString("device")

			c, err := camera.Open(cmd.Context(), devName, opts)
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidInput)
			}
			defer c.Close()

			w, err := video.NewWriter(args[0], opts.Width, opts.Height, opts.FPS)
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidOutput)
			}
			defer w.Close()

			for {
				frame, err := c.NextJPEG()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return newExitCodeError(err, ExitCodeInvalidInput)
				}
				if err = w.Add(frame); err != nil {
					return newExitCodeError(err, ExitCodeInvalidOutput)
				}
				if w.Count()%rainbow.ProgressEvery == 0 {
					logger.Infof("%d/%d", w.Count(), opts.Frames)
				}
			}
			if err = w.Close(); err != nil {
				return newExitCodeError(err, ExitCodeInvalidOutput)
			}
			logger.Infof("recorded %d frames into %s (%s)", w.Count(), args[0], fileSize(args[0]))

			return nil
		},
	}
	cmd.Flags().String("device", camera.DefaultDevice, "V4L2 device")
	cmd.Flags().IntVar(&opts.Frames, "frames", 0, "number of frames to record")
	cmd.Flags().IntVar(&opts.Width, "width", camera.DefaultWidth, "frame width")
	cmd.Flags().IntVar(&opts.Height, "height", camera.DefaultHeight, "frame height")
	cmd.Flags().IntVar(&opts.FPS, "fps", camera.DefaultFPS, "frame rate written to the AVI header")

	return cmd
}
