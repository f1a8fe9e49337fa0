package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/purgetemp/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Display the version, build time, git commit and Go version of PurgeTemp.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Banner())
		fmt.Fprintln(cmd.OutOrStdout(), version.Details())
	},
}
