package cmd

import (
	"github.com/spf13/cobra"

	"rainbow-disk/pkg/render"
	"rainbow-disk/pkg/utils"
)

func newStripCmd() *cobra.Command {
	var (
		flags  renderFlags
		source sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "strip [input] [output]",
		Short: "Build the rainbow strip of a video",
		Long:  "Strip averages each sampled frame's rows into one column. The output is --columns wide and as tall as the frames.",
		Args:  inputArgs(2, &source),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			r, err := render.New(opts)
			if err != nil {
				return withExitCode(err)
			}
			src, err := source.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			res, err := r.Strip(cmd.Context(), src)
			if err != nil {
				return withExitCode(err)
			}
			if err = utils.EncodeImageFile(res.Strip, args[1], opts.Quality); err != nil {
				return newExitCodeError(err, ExitCodeInvalidOutput)
			}
			utils.GetLogger().Infof("wrote %s (%s) from %d frames", args[1], res.Strip.Size(), res.Frames)

			return nil
		},
	}
	addStripFlags(cmd, &flags)
	addSourceFlags(cmd, &source)

	return cmd
}
