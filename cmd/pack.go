package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"rainbow-disk/pkg/rainbow"
	"rainbow-disk/pkg/utils"
	"rainbow-disk/pkg/video"
)

func newPackCmd() *cobra.Command {
	var (
		fps     int
		quality int
	)

	cmd := &cobra.Command{
		Use:   "pack [image-dir] [output.avi]",
		Short: "Pack a directory of images into an MJPEG AVI",
		Long:  "Pack orders the images by the frame number in their names. Every image must have the size of the first one.",
		Args:  inputArgs(2, nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.GetLogger()
			src, err := video.OpenDir(args[0])
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidInput)
			}
			total := src.FrameCount()
			if total == 0 {
				return newExitCodeError(fmt.Errorf("%s: %w", args[0], rainbow.ErrNoFrames), ExitCodeInvalidInput)
			}

			first, err := src.Next()
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidInput)
			}
			b := first.Bounds()
			w, err := video.NewWriter(args[1], b.Dx(), b.Dy(), fps)
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidOutput)
			}
			defer w.Close()

			for img := first; ; {
				if err = cmd.Context().Err(); err != nil {
					return err
				}
				if err = w.AddImage(img, quality); err != nil {
					return newExitCodeError(fmt.Errorf("frame %d: %w", w.Count(), err), ExitCodeInvalidInput)
				}
				if w.Count()%rainbow.ProgressEvery == 0 {
					logger.Infof("%d/%d", w.Count(), total)
				}
				img, err = src.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return newExitCodeError(err, ExitCodeInvalidInput)
				}
			}
			if err = w.Close(); err != nil {
				return newExitCodeError(err, ExitCodeInvalidOutput)
			}
			logger.Infof("packed %d frames into %s (%s)", w.Count(), args[1], fileSize(args[1]))

			return nil
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 25, "frame rate of the video")
	cmd.Flags().IntVar(&quality, "quality", video.DefaultQuality, "JPEG quality of the frames")

	return cmd
}

func fileSize(file string) string {
	info, err := os.Stat(file)
	if err != nil {
		return "?"
	}
	return humanize.IBytes(uint64(info.Size()))
}
