package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
)

var scheduleCron string

// scheduleCmd runs purges periodically until interrupted
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run purges on a cron schedule",
	Long: `Run a purge on every activation of a cron expression until SIGINT or
SIGTERM. Settings are reloaded before every run. A run that is still busy
when the next activation fires makes that activation skip.

Expressions take 5 or 6 fields (optional seconds) or descriptors such as
"@every 6h" and "@daily". The default comes from schedule.cron.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "", "cron expression (overrides schedule.cron)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		exitCode = int(errcode.Of(err))
		return err
	}
	defer a.Shutdown()

	expression := scheduleCron
	if expression == "" {
		expression = a.Config().Schedule.Cron
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger().Info("purge schedule starting", logger.Field{Key: "schedule", Value: expression})
	if err := a.RunScheduled(ctx, expression); err != nil {
		exitCode = int(errcode.InvalidArguments)
		return err
	}
	a.Logger().Info("purge schedule stopped")
	exitCode = int(errcode.Success)
	return nil
}
