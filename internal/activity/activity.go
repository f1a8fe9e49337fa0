// Package activity writes the purge activity log: one line per purged or
// moved file plus aggregate lines for files beyond the reporting threshold.
package activity

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aatumaykin/purgetemp/internal/constants"
)

const timeLayout = "2006-01-02 15:04:05"

// Sink receives file level purge activity.
type Sink interface {
	ReportPurge(folder, file string)
	ReportMove(from, to, file string)
	ReportSkippedPurge(folder string, skipped int, allSkipped bool)
	ReportSkippedMove(from, to string, skipped int, allSkipped bool)
}

// Log is a line oriented Sink.
type Log struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	now    func() time.Time
}

// New returns a Log writing to w.
func New(w io.Writer) *Log {
	return &Log{w: w, now: time.Now}
}

// FileConfig describes the rotating activity log file.
type FileConfig struct {
	Folder       string
	MaxSizeBytes int64
	MaxBackups   int
}

// Open returns a Log writing to Folder/purgeLog.txt with size rotation.
func Open(cfg FileConfig) (*Log, error) {
	if err := os.MkdirAll(cfg.Folder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create activity log folder %s: %w", cfg.Folder, err)
	}
	maxSize := 1 << 30
	if cfg.MaxSizeBytes > 0 {
		maxSize = int((cfg.MaxSizeBytes + (1<<20 - 1)) >> 20)
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Folder, constants.PurgeLogFileName),
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}
	l := New(file)
	l.closer = file
	return l, nil
}

// Close closes the underlying file, if any.
func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Log) ReportPurge(folder, file string) {
	l.line("P\t%s\t%s", folder, file)
}

func (l *Log) ReportMove(from, to, file string) {
	l.line("M\t%s => %s\t%s", from, to, file)
}

func (l *Log) ReportSkippedPurge(folder string, skipped int, allSkipped bool) {
	l.line("P\t%s\t%s", folder, skippedText(skipped, allSkipped))
}

func (l *Log) ReportSkippedMove(from, to string, skipped int, allSkipped bool) {
	l.line("M\t%s => %s\t%s", from, to, skippedText(skipped, allSkipped))
}

func (l *Log) line(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	// activity logging must never break a rotation
	_, _ = fmt.Fprintf(l.w, "%s %s\n", l.now().Format(timeLayout), fmt.Sprintf(format, args...))
}

func skippedText(n int, allSkipped bool) string {
	switch {
	case allSkipped && n == 1:
		return "(1 file, not logged individually)"
	case allSkipped:
		return fmt.Sprintf("(all %d files skipped)", n)
	case n == 1:
		return "(skipped 1 more file)"
	default:
		return fmt.Sprintf("(skipped %d more files)", n)
	}
}

// Discard drops all activity.
type Discard struct{}

func (Discard) ReportPurge(string, string)                  {}
func (Discard) ReportMove(string, string, string)           {}
func (Discard) ReportSkippedPurge(string, int, bool)        {}
func (Discard) ReportSkippedMove(string, string, int, bool) {}
