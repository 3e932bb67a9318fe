package cmd

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	u "github.com/cloudposse/driftwatch/pkg/utils"
	"github.com/cloudposse/driftwatch/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the CLI version",
	Long:    `This command prints the CLI version`,
	Example: "driftwatch version",
	Run: func(cmd *cobra.Command, args []string) {
		u.PrintMessageInColor(fmt.Sprintf("driftwatch %s\n", version.Version), color.New(color.FgCyan, color.Bold))
		u.PrintMessage(fmt.Sprintf("commit %s, built %s, %s/%s",
			version.Commit, version.Date, runtime.GOOS, runtime.GOARCH))
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
