package app

import (
	"context"

	"github.com/aatumaykin/purgetemp/internal/cron"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
)

// RunScheduled runs a purge on every activation of expression until ctx is
// done. Runs never overlap.
func (a *App) RunScheduled(ctx context.Context, expression string) error {
	scheduler := cron.NewScheduler(a.logger)
	return scheduler.Run(ctx, expression, a.scheduledRun)
}

func (a *App) scheduledRun(ctx context.Context) errcode.Code {
	a.reload()
	return a.RunOnce(ctx)
}

// reload swaps in fresh settings. Collaborators built at startup (logs,
// notifiers) keep their configuration; a failed reload keeps the old settings.
func (a *App) reload() {
	if a.opts.Reload == nil {
		return
	}
	cfg, err := a.opts.Reload()
	if err != nil {
		a.logger.Error("settings reload failed, keeping previous settings", err)
		return
	}
	a.mu.Lock()
	a.config = cfg
	a.mu.Unlock()
	a.logger.Debug("settings reloaded", logger.Field{Key: "stage_root_folder", Value: cfg.AppSettings.StageRootFolder})
}
