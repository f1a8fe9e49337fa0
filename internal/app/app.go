// Package app wires the purge engine to its collaborators: the application
// log, the activity log, notifications, metrics and the scheduler.
package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/aatumaykin/purgetemp/internal/activity"
	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
	"github.com/aatumaykin/purgetemp/internal/metrics"
	"github.com/aatumaykin/purgetemp/internal/notify"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
	"github.com/aatumaykin/purgetemp/internal/purge"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "purgetemp"

// Options customizes an App. The zero value is ready for production use.
type Options struct {
	// Resolver anchors relative paths; the zero value uses the executable directory.
	Resolver pathutil.Resolver
	// Console receives activity lines when file logging is disabled.
	Console io.Writer
	// Logger replaces the logger built from the configuration.
	Logger *logger.Logger
	// TelegramBot replaces the client created from the configured token.
	TelegramBot notify.Bot
	// Reload is called before every scheduled run to pick up settings changes.
	Reload func() (*config.Config, error)
	Now    func() time.Time
}

// App holds the collaborators shared by all purge runs of one process.
type App struct {
	config    *config.Config
	opts      Options
	resolver  pathutil.Resolver
	protected []string

	logger   *logger.Logger
	activity activity.Sink
	notifier notify.Notifier
	metrics  *metrics.PrometheusMetrics
	closers  []io.Closer

	mu          sync.Mutex
	initialized bool
}

// New creates an App. Call Initialize before running purges.
func New(cfg *config.Config, opts Options) *App {
	resolver := opts.Resolver
	if resolver.BaseDir == "" {
		resolver = pathutil.NewResolver()
	}
	return &App{
		config:    cfg,
		opts:      opts,
		resolver:  resolver,
		protected: pathutil.DefaultProtectedPaths(),
	}
}

// Logger returns the application logger.
func (a *App) Logger() *logger.Logger {
	return a.logger
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config
}

// Metrics returns the run metrics.
func (a *App) Metrics() *metrics.PrometheusMetrics {
	return a.metrics
}

// Executor returns an executor for the current settings.
func (a *App) Executor() *purge.Executor {
	return purge.New(purge.Options{
		Settings:       a.Config().AppSettings,
		Logger:         a.logger,
		Activity:       a.activity,
		Notifier:       a.notifier,
		Metrics:        a.metrics,
		Resolver:       a.resolver,
		ProtectedPaths: a.protected,
		Now:            a.opts.Now,
	})
}

// RunOnce executes one purge and exports the metrics textfile. A cancelled
// ctx skips the run.
func (a *App) RunOnce(ctx context.Context) errcode.Code {
	if err := ctx.Err(); err != nil {
		a.logger.Warn("purge cancelled before start", logger.Field{Key: "error", Value: err.Error()})
		return errcode.UnknownError
	}
	code := a.Executor().ExecutePurge()
	a.writeMetrics()
	return code
}

func (a *App) writeMetrics() {
	s := a.Config().AppSettings
	if s.MetricsFile == "" || s.TempFolder == "" {
		return
	}
	path := a.resolver.Join(a.resolver.Resolve(s.TempFolder), s.MetricsFile)
	if err := a.metrics.WriteTextfile(path); err != nil {
		a.logger.Warn("metrics not written", logger.Field{Key: "path", Value: path}, logger.Field{Key: "error", Value: err.Error()})
	}
}
