package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/purge"
)

// checkCmd evaluates the execution gate without rotating anything
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a purge would run now",
	Long: `Evaluate the skip token and the time since the last purge.
Nothing is created, moved or deleted. The exit status is the code the purge
would return when it is not allowed to run, 0 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		exitCode = int(errcode.Of(err))
		return err
	}
	defer a.Shutdown()

	state := a.Executor().CanExecutePurge()
	code := stateCode(state)
	fmt.Fprintf(cmd.OutOrStdout(), "%s (code %d)\n", state, int(code))
	exitCode = int(code)
	return nil
}

// stateCode maps a gate result to the code ExecutePurge returns for it.
func stateCode(state purge.ExecutionState) errcode.Code {
	switch state {
	case purge.CanExecute:
		return errcode.Success
	case purge.TimeSinceLastPurgeTooShort:
		return errcode.ExecutionTooFrequent
	case purge.SkippedByToken:
		return errcode.SkipTokenFound
	case purge.InvalidArguments:
		return errcode.InvalidArguments
	default:
		return errcode.UnknownError
	}
}
