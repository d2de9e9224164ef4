package cmd

import (
	"github.com/spf13/cobra"

	"rainbow-disk/pkg/render"
	"rainbow-disk/pkg/storage/consts"
	"rainbow-disk/pkg/utils"
)

func newRenderCmd() *cobra.Command {
	var (
		flags     renderFlags
		source    sourceFlags
		stripFile string
		diskFile  string
	)

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a video into a rainbow strip and a disk",
		Long: `Render samples --columns frames of an MJPEG AVI file or an image
directory into a rainbow strip and warps it into a disk. Both images are
written, by default to rainbow.png and disk.png.`,
		Args: inputArgs(1, &source),
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

			out, err := r.Render(cmd.Context(), src)
			if err != nil {
				return withExitCode(err)
			}
			if err = out.Save(stripFile, diskFile, opts.Quality); err != nil {
				return newExitCodeError(err, ExitCodeInvalidOutput)
			}
			utils.GetLogger().Infof("wrote %s (%s) and %s (%s)", stripFile, out.Strip.Size(), diskFile, out.Disk.Size())

			return nil
		},
	}
	addStripFlags(cmd, &flags)
	addDiskFlags(cmd, &flags)
	addSourceFlags(cmd, &source)
	cmd.Flags().StringVar(&stripFile, "strip", consts.DefaultStripFile, "strip output file")
	cmd.Flags().StringVar(&diskFile, "disk", consts.DefaultDiskFile, "disk output file")

	return cmd
}
