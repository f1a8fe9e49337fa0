package app

import (
	"fmt"

	"github.com/aatumaykin/purgetemp/internal/app/builders"
	"github.com/aatumaykin/purgetemp/internal/logger"
	"github.com/aatumaykin/purgetemp/internal/metrics"
)

// Initialize builds the logger, the activity sink, the notifiers and the
// metrics registry.
func (a *App) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return fmt.Errorf("app already initialized")
	}

	// 1. Application log
	if a.opts.Logger != nil {
		a.logger = a.opts.Logger
	} else {
		log, err := builders.NewLoggerBuilder(a.config, a.resolver).Build()
		if err != nil {
			return err
		}
		a.logger = log
		a.closers = append(a.closers, log)
	}

	// 2. Activity log
	sink, closer, err := builders.NewActivityBuilder(a.config, a.resolver, a.opts.Console).Build()
	if err != nil {
		a.closeAll()
		return err
	}
	a.activity = sink
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	// 3. Notifications
	nb := builders.NewNotifyBuilder(a.config, a.logger, a.resolver)
	if a.opts.TelegramBot != nil {
		nb = nb.WithBot(a.opts.TelegramBot)
	}
	notifier, err := nb.Build()
	if err != nil {
		a.closeAll()
		return err
	}
	a.notifier = notifier

	// 4. Metrics
	a.metrics = metrics.New(MetricsNamespace)

	a.initialized = true
	a.logger.Debug("app initialized",
		logger.Field{Key: "base_dir", Value: a.resolver.BaseDir},
		logger.Field{Key: "protected_paths", Value: len(a.protected)})
	return nil
}
