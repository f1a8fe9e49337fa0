package builders

import (
	"fmt"
	"io"

	"github.com/aatumaykin/purgetemp/internal/activity"
	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
)

type ActivityBuilder struct {
	config   *config.Config
	resolver pathutil.Resolver
	console  io.Writer
}

// NewActivityBuilder creates a builder. console receives activity lines when
// file logging of individual files is disabled.
func NewActivityBuilder(cfg *config.Config, resolver pathutil.Resolver, console io.Writer) *ActivityBuilder {
	return &ActivityBuilder{config: cfg, resolver: resolver, console: console}
}

// Build returns the activity sink and, for file sinks, the closer of the file.
func (b *ActivityBuilder) Build() (activity.Sink, io.Closer, error) {
	s := b.config.AppSettings
	if !s.LogEnabled || !s.LogAllFiles {
		if b.console == nil {
			return activity.Discard{}, nil, nil
		}
		return activity.New(b.console), nil, nil
	}

	log, err := activity.Open(activity.FileConfig{
		Folder:       b.resolver.Resolve(s.LoggingFolder),
		MaxSizeBytes: s.LogRotationBytes,
		MaxBackups:   s.LogRotationVersions,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open activity log: %w", err)
	}
	return log, log, nil
}
