package purge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/logger"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
	"github.com/aatumaykin/purgetemp/internal/stage"
	"github.com/aatumaykin/purgetemp/internal/timefmt"
)

// Gate decides whether a rotation may run now. It keeps no state between
// calls; the skip token and the timestamp token on disk are its only inputs.
type Gate struct {
	planner  *stage.Planner
	resolver pathutil.Resolver
	log      *logger.Logger
	now      func() time.Time
}

// NewGate creates a gate. A nil now uses time.Now.
func NewGate(planner *stage.Planner, resolver pathutil.Resolver, log *logger.Logger, now func() time.Time) *Gate {
	if log == nil {
		log = logger.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Gate{planner: planner, resolver: resolver, log: log, now: now}
}

// CanExecutePurge evaluates the skip token first, then the time since the
// last purge. Errors and panics never escape; they map to OtherErrors.
func (g *Gate) CanExecutePurge(s config.Settings) (state ExecutionState) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("execution gate panicked", fmt.Errorf("%v", r))
			state = OtherErrors
		}
	}()

	newest, err := g.planner.InitFolder(s)
	if err != nil || newest == "" {
		g.log.Warn("init stage folder cannot be resolved", logger.Field{Key: "error", Value: errString(err)})
		return InvalidArguments
	}
	skipToken := TokenPath(g.resolver, newest, s.SkipTokenFile)
	timestamp := TokenPath(g.resolver, g.resolver.Resolve(s.ConfigFolder), s.StagingTimestampFile)
	if skipToken == "" || timestamp == "" {
		g.log.Warn("token paths cannot be resolved",
			logger.Field{Key: "skip_token", Value: s.SkipTokenFile},
			logger.Field{Key: "timestamp_token", Value: s.StagingTimestampFile})
		return InvalidArguments
	}

	if info, err := os.Stat(skipToken); err == nil {
		if !info.IsDir() {
			g.log.Info("skip token found", logger.Field{Key: "path", Value: skipToken})
			return SkippedByToken
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		g.log.Error("failed to check skip token", err, logger.Field{Key: "path", Value: skipToken})
		return OtherErrors
	}

	content, err := os.ReadFile(timestamp)
	if errors.Is(err, fs.ErrNotExist) {
		g.log.Debug("no previous purge recorded", logger.Field{Key: "path", Value: timestamp})
		return CanExecute
	}
	if err != nil {
		g.log.Error("failed to read timestamp token", err, logger.Field{Key: "path", Value: timestamp})
		return OtherErrors
	}

	last, err := timefmt.Parse(s.TimeStampFormat, strings.TrimSpace(string(content)), time.Local)
	if err != nil {
		g.log.Warn("timestamp token cannot be parsed",
			logger.Field{Key: "path", Value: timestamp},
			logger.Field{Key: "format", Value: s.TimeStampFormat},
			logger.Field{Key: "error", Value: err.Error()})
		return InvalidArguments
	}

	// a token from the future counts as too recent; compared in seconds so
	// large delays cannot overflow a Duration
	elapsed := g.now().Sub(last)
	if elapsed < 0 || int64(elapsed/time.Second) < s.StagingDelaySeconds {
		g.log.Info("time since last purge is too short",
			logger.Field{Key: "last_purge", Value: last.Format(time.RFC3339)},
			logger.Field{Key: "elapsed_seconds", Value: int64(elapsed / time.Second)},
			logger.Field{Key: "delay_seconds", Value: s.StagingDelaySeconds})
		return TimeSinceLastPurgeTooShort
	}
	return CanExecute
}

// TokenPath joins a token file name onto folder. An empty name or folder
// yields "", which callers treat as unresolvable.
func TokenPath(r pathutil.Resolver, folder, name string) string {
	if strings.TrimSpace(folder) == "" || strings.TrimSpace(name) == "" {
		return ""
	}
	return r.Join(folder, name)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
