package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rainbow-disk/pkg/pixel"
	"rainbow-disk/pkg/rainbow"
	"rainbow-disk/pkg/render"
	"rainbow-disk/pkg/utils"
)

func newDiskCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "disk [strip] [output]",
		Short: "Warp a strip image into a disk",
		Long:  "Disk maps the columns of a strip image to radius and its rows to angle. Use it to re-render a saved strip with other warp options.",
		Args:  inputArgs(2, nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			r, err := render.New(opts)
			if err != nil {
				return withExitCode(err)
			}
			strip, err := loadBuffer(args[0])
			if err != nil {
				return err
			}

			out, err := r.Disk(strip)
			if err != nil {
				return withExitCode(err)
			}
			if err = utils.EncodeImageFile(out.Disk, args[1], opts.Quality); err != nil {
				return newExitCodeError(err, ExitCodeInvalidOutput)
			}
			utils.GetLogger().Infof("wrote %s (%s)", args[1], out.Disk.Size())

			return nil
		},
	}
	addDiskFlags(cmd, &flags)

	return cmd
}

func loadBuffer(file string) (*pixel.Buffer, error) {
	img, err := utils.DecodeImageFile(file)
	if err != nil {
		return nil, newExitCodeError(fmt.Errorf("could not decode %s: %w", file, err), ExitCodeInvalidInput)
	}
	buf, err := pixel.FromImage(img, rainbow.DefaultChannels)
	if err != nil {
		return nil, newExitCodeError(err, ExitCodeInvalidInput)
	}
	return buf, nil
}
