package cmd

import (
	"github.com/spf13/cobra"

	"rainbow-disk/pkg/server"
	"rainbow-disk/pkg/storage"
)

func newServeCmd() *cobra.Command {
	var (
		dir  string
		opts server.Options
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve render projects over HTTP",
		Long: `Serve exposes the projects under --dir through a JSON API: create a
project, upload its video, render it and download the strip, the disk or
thumbnails. The storage dir can also be exported over WebDAV on demand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stg, err := storage.New(dir)
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidArguments)
			}
			defer stg.Close()

			s, err := server.New(cmd.Context(), stg, opts)
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidArguments)
			}
			return s.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./rainbow-disk", "storage dir")
	cmd.Flags().IntVar(&opts.Port, "port", 9999, "ui port")
	cmd.Flags().IntVar(&opts.WebdavPort, "webdav-port", 9998, "webdav port")
	cmd.Flags().StringVar(&opts.Statics, "statics", "", "optional UI directory served at /")
	cmd.Flags().StringSliceVar(&opts.CorsOrigins, "cors-origin", nil, "allowed CORS origins, any when empty")

	return cmd
}
