package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/purge"
)

// planCmd prints the stage folder chain
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the stage folders, newest first",
	Long: `Validate the settings and print the planned stage folders.
"+" marks the folder new files go to, "x" the folder purged next.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		exitCode = int(errcode.Of(err))
		return err
	}
	defer a.Shutdown()

	e := a.Executor()
	if err := e.ValidateGeneralSettings(); err != nil {
		exitCode = int(errcode.Of(err))
		return err
	}
	folders, err := e.CheckStageFolders()
	if err != nil {
		exitCode = int(errcode.Of(err))
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), purge.Describe(folders))
	exitCode = int(errcode.Success)
	return nil
}
