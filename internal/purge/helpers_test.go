package purge

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/purgetemp/internal/activity"
	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/notify"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
)

type clock struct {
	t time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)}
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type skippedCall struct {
	from, to   string
	count      int
	allSkipped bool
}

type recordingSink struct {
	purged  []string
	moved   []string
	skipped []skippedCall
}

func (s *recordingSink) ReportPurge(folder, file string) {
	s.purged = append(s.purged, file)
}

func (s *recordingSink) ReportMove(from, to, file string) {
	s.moved = append(s.moved, file)
}

func (s *recordingSink) ReportSkippedPurge(folder string, skipped int, allSkipped bool) {
	s.skipped = append(s.skipped, skippedCall{from: folder, count: skipped, allSkipped: allSkipped})
}

func (s *recordingSink) ReportSkippedMove(from, to string, skipped int, allSkipped bool) {
	s.skipped = append(s.skipped, skippedCall{from: from, to: to, count: skipped, allSkipped: allSkipped})
}

// hookSink runs a callback before recording, letting tests change the
// filesystem in the middle of a rotation.
type hookSink struct {
	recordingSink
	onPurge func(folder, file string)
	onMove  func(from, to, file string)
}

func (s *hookSink) ReportPurge(folder, file string) {
	if s.onPurge != nil {
		s.onPurge(folder, file)
	}
	s.recordingSink.ReportPurge(folder, file)
}

func (s *hookSink) ReportMove(from, to, file string) {
	if s.onMove != nil {
		s.onMove(from, to, file)
	}
	s.recordingSink.ReportMove(from, to, file)
}

type notification struct {
	title    string
	severity notify.Severity
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (n *recordingNotifier) Notify(title, message string, severity notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notification{title: title, severity: severity})
}

func (n *recordingNotifier) last() notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return notification{}
	}
	return n.calls[len(n.calls)-1]
}

type recordingMetrics struct {
	codes  []errcode.Code
	files  map[string]int
	stages int
}

func (m *recordingMetrics) ObserveRun(code errcode.Code, _ time.Duration) {
	m.codes = append(m.codes, code)
}

func (m *recordingMetrics) AddFiles(action string, n int) {
	if m.files == nil {
		m.files = make(map[string]int)
	}
	m.files[action] += n
}

func (m *recordingMetrics) SetStageFolders(n int) { m.stages = n }

type fixture struct {
	root     string
	settings config.Settings
	clock    *clock
	sink     *recordingSink
	notifier *recordingNotifier
	metrics  *recordingMetrics
}

func newFixture(t *testing.T, versions int) *fixture {
	t.Helper()
	root := t.TempDir()

	s := config.DefaultSettings()
	s.StageVersions = versions
	s.StageRootFolder = filepath.Join(root, "stages")
	s.ConfigFolder = filepath.Join(root, "config")
	s.TempFolder = filepath.Join(root, "temp")
	s.LoggingFolder = filepath.Join(root, "log")
	s.StagingDelaySeconds = 10
	s.FileLogAmountThreshold = -1
	s.ShowPurgeMessage = true

	return &fixture{
		root:     root,
		settings: s,
		clock:    newClock(),
		sink:     &recordingSink{},
		notifier: &recordingNotifier{},
		metrics:  &recordingMetrics{},
	}
}

func (f *fixture) executor() *Executor {
	return f.executorWith(f.sink)
}

func (f *fixture) executorWith(sink activity.Sink) *Executor {
	return New(Options{
		Settings:       f.settings,
		Activity:       sink,
		Notifier:       f.notifier,
		Metrics:        f.metrics,
		Resolver:       pathutil.Resolver{BaseDir: f.root},
		ProtectedPaths: []string{pathutil.TestSystemPath},
		Now:            f.clock.now,
	})
}

func (f *fixture) stage(name string) string {
	return filepath.Join(f.settings.StageRootFolder, name)
}

func (f *fixture) timestampFile() string {
	return filepath.Join(f.settings.ConfigFolder, f.settings.StagingTimestampFile)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
