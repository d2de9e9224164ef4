package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"rainbow-disk/pkg/utils"
)

var (
	cfgFile string
	verbose bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rainbow-disk",
		Short: "Turn a video into a rainbow strip and a polar disk",
		Long: `rainbow-disk averages every sampled video frame into one column of a
"rainbow" strip and warps that strip into a disk, time running outward
from the center. It can also unroll any image into polar form and serve
render projects over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				return utils.SetLevel("debug")
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "JSON file with render options, flags override it")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newRenderCmd(),
		newStripCmd(),
		newDiskCmd(),
		newPolarCmd(),
		newPackCmd(),
		newCaptureCmd(),
		newServeCmd(),
	)

	return rootCmd
}

// Execute executes the root command. SIGINT and SIGTERM cancel the
// command's context.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		utils.WatchSignal(ctx)
		cancel()
	}()

	rootCmd := newRootCmd()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}
