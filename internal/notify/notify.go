// Package notify delivers user-facing purge notifications.
package notify

import (
	"os"
	"path/filepath"

	"github.com/aatumaykin/purgetemp/internal/constants"
	"github.com/aatumaykin/purgetemp/internal/logger"
)

// Severity selects the notification icon and log level.
type Severity int

const (
	General Severity = iota
	OK
	Skip
	Error
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "ok"
	case Skip:
		return "skip"
	case Error:
		return "error"
	default:
		return "general"
	}
}

// Icon returns the bundled icon file name for s.
func (s Severity) Icon() string {
	switch s {
	case OK:
		return constants.IconOK
	case Skip:
		return constants.IconSkip
	case Error:
		return constants.IconError
	default:
		return constants.IconGeneral
	}
}

// Notifier shows a notification to the user. Delivery failures are handled
// by the implementation; a notification never fails a purge.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

// ResolveIcon returns logoFile when it exists on disk, otherwise the bundled
// icon for severity below resourcesDir.
func ResolveIcon(logoFile, resourcesDir string, severity Severity) string {
	if logoFile != "" {
		if info, err := os.Stat(logoFile); err == nil && !info.IsDir() {
			return logoFile
		}
	}
	return filepath.Join(resourcesDir, severity.Icon())
}

// Gated forwards to next only while enabled is set.
type Gated struct {
	Enabled bool
	Next    Notifier
}

func (g Gated) Notify(title, message string, severity Severity) {
	if !g.Enabled || g.Next == nil {
		return
	}
	g.Next.Notify(title, message, severity)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(title, message string, severity Severity) {
	for _, n := range m {
		n.Notify(title, message, severity)
	}
}

// Log writes notifications to the application log. Entries are always at
// info level; failures already have their own error entry from the caller.
type Log struct {
	Logger *logger.Logger
}

func (l Log) Notify(title, message string, severity Severity) {
	l.Logger.Info(message,
		logger.Field{Key: "title", Value: title},
		logger.Field{Key: "severity", Value: severity.String()})
}
