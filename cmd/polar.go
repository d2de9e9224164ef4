package cmd

import (
	"github.com/spf13/cobra"

	"rainbow-disk/pkg/render"
	"rainbow-disk/pkg/utils"
)

func newPolarCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "polar [image] [output]",
		Short: "Unroll an image around a center into polar form",
		Long: `Polar samples the image along rays from the center. Output columns are
radius, rows are angle; with --size 0 the output keeps the area of the
bounding circle.`,
		Args: inputArgs(2, nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			r, err := render.New(opts)
			if err != nil {
				return withExitCode(err)
			}
			img, err := loadBuffer(args[0])
			if err != nil {
				return err
			}

			out, p, err := r.Polar(img)
			if err != nil {
				return withExitCode(err)
			}
			if err = utils.EncodeImageFile(out, args[1], opts.Quality); err != nil {
				return newExitCodeError(err, ExitCodeInvalidOutput)
			}
			utils.GetLogger().Infof("wrote %s (%s), center %.1f,%.1f radius %.1f", args[1], out.Size(), p.Center.X, p.Center.Y, p.MaxRadius)

			return nil
		},
	}
	addWarpFlags(cmd, &flags)

	return cmd
}
