package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time. Binaries installed with
// `go install module@vX.Y.Z` fall back to the module version.
var version = "(devel)"

func init() {
	if version != "(devel)" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and platform",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "soulsupport %s (%s/%s, %s)\n",
			version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}
