package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/govndb/vndb"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build information injected into main
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "govndb %s\n", version)
		fmt.Fprintf(out, "  built:   %s\n", buildTime)
		fmt.Fprintf(out, "  library: vndb %s\n", vndb.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
