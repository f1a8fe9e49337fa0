// Package builders constructs the collaborators of a purge run from the
// loaded configuration.
package builders

import (
	"fmt"
	"path/filepath"

	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/constants"
	"github.com/aatumaykin/purgetemp/internal/logger"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
)

type LoggerBuilder struct {
	config   *config.Config
	resolver pathutil.Resolver
}

func NewLoggerBuilder(cfg *config.Config, resolver pathutil.Resolver) *LoggerBuilder {
	return &LoggerBuilder{config: cfg, resolver: resolver}
}

// Output returns where the application log goes: the rotating appLog.txt in
// the logging folder when logging is enabled, the configured fallback otherwise.
func (b *LoggerBuilder) Output() string {
	s := b.config.AppSettings
	if s.LogEnabled && s.LoggingFolder != "" {
		return filepath.Join(b.resolver.Resolve(s.LoggingFolder), constants.AppLogFileName)
	}
	return b.config.Logging.Output
}

func (b *LoggerBuilder) Build() (*logger.Logger, error) {
	s := b.config.AppSettings
	log, err := logger.New(logger.Config{
		Level:        b.config.Logging.Level,
		Format:       b.config.Logging.Format,
		Output:       b.Output(),
		MaxSizeBytes: s.LogRotationBytes,
		MaxBackups:   s.LogRotationVersions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
