package purge

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/purgetemp/internal/constants"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/metrics"
	"github.com/aatumaykin/purgetemp/internal/notify"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
)

func TestExecutePurge_CreatesStageFolders(t *testing.T) {
	f := newFixture(t, 3)
	e := f.executor()

	code := e.ExecutePurge()
	require.Equal(t, errcode.Success, code)

	for _, name := range []string{"purge-temp-1", "purge-temp-2", "purge-temp-LAST"} {
		assert.DirExists(t, f.stage(name))
	}
	assert.DirExists(t, f.settings.ConfigFolder)
	assert.DirExists(t, f.settings.TempFolder)
	assert.NoDirExists(t, f.settings.LoggingFolder, "logging folder is only created when logging is enabled")

	assert.Equal(t, CanExecute, e.State())
	assert.Len(t, e.StageFolders(), 3)
	assert.Equal(t, notification{title: constants.TitleCompleted, severity: notify.OK}, f.notifier.last())
	assert.Equal(t, []errcode.Code{errcode.Success}, f.metrics.codes)
	assert.Equal(t, 3, f.metrics.stages)
}

func TestExecutePurge_WritesTimestamp(t *testing.T) {
	f := newFixture(t, 3)

	require.Equal(t, errcode.Success, f.executor().ExecutePurge())

	content, err := os.ReadFile(f.timestampFile())
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 12:00:00", string(content))
}

func TestExecutePurge_TooFrequent(t *testing.T) {
	f := newFixture(t, 3)
	e := f.executor()
	require.Equal(t, errcode.Success, e.ExecutePurge())

	file := filepath.Join(f.stage("purge-temp-1"), "keep.txt")
	writeFile(t, file, "keep")
	f.clock.advance(9 * time.Second)

	code := e.ExecutePurge()
	assert.Equal(t, errcode.ExecutionTooFrequent, code)
	assert.Equal(t, 1, int(code))
	assert.Equal(t, TimeSinceLastPurgeTooShort, e.State())
	assert.FileExists(t, file)
	assert.NoFileExists(t, filepath.Join(f.stage("purge-temp-2"), "keep.txt"))
	assert.Equal(t, notification{title: constants.TitleNotExecuted, severity: notify.Skip}, f.notifier.last())
}

func TestExecutePurge_VeryLongDelay(t *testing.T) {
	f := newFixture(t, 3)
	f.settings.StagingDelaySeconds = 1 << 40
	e := f.executor()
	require.Equal(t, errcode.Success, e.ExecutePurge())

	file := filepath.Join(f.stage("purge-temp-1"), "keep.txt")
	writeFile(t, file, "keep")
	f.clock.advance(time.Second)

	assert.Equal(t, errcode.ExecutionTooFrequent, e.ExecutePurge())
	assert.FileExists(t, file)
}

func TestExecutePurge_SkipToken(t *testing.T) {
	f := newFixture(t, 3)
	e := f.executor()
	require.Equal(t, errcode.Success, e.ExecutePurge())

	writeFile(t, filepath.Join(f.stage("purge-temp-1"), "SKIP.txt"), "")
	f.clock.advance(time.Hour)

	assert.Equal(t, SkippedByToken, e.CanExecutePurge())
	assert.Equal(t, errcode.SkipTokenFound, e.ExecutePurge())
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-1"), "SKIP.txt"))
}

func TestExecutePurge_TwoVersionLifecycle(t *testing.T) {
	f := newFixture(t, 2)
	e := f.executor()
	require.Equal(t, errcode.Success, e.ExecutePurge())

	newest, last := f.stage("purge-temp-1"), f.stage("purge-temp-LAST")
	writeFile(t, filepath.Join(newest, "report.pdf"), "data")

	f.clock.advance(11 * time.Second)
	require.Equal(t, errcode.Success, e.ExecutePurge())
	assert.FileExists(t, filepath.Join(last, "report.pdf"))
	assert.NoFileExists(t, filepath.Join(newest, "report.pdf"))
	assert.Equal(t, []string{"report.pdf"}, f.sink.moved)

	f.clock.advance(11 * time.Second)
	require.Equal(t, errcode.Success, e.ExecutePurge())
	assert.NoFileExists(t, filepath.Join(last, "report.pdf"))
	assert.Equal(t, []string{"report.pdf"}, f.sink.purged)

	entries, err := os.ReadDir(newest)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 1, f.metrics.files[metrics.ActionPurge])
	assert.Equal(t, 1, f.metrics.files[metrics.ActionMove])
}

func TestExecutePurge_ShiftsEveryStage(t *testing.T) {
	f := newFixture(t, 4)
	e := f.executor()
	require.Equal(t, errcode.Success, e.ExecutePurge())

	writeFile(t, filepath.Join(f.stage("purge-temp-1"), "one.txt"), "1")
	writeFile(t, filepath.Join(f.stage("purge-temp-2"), "two.txt"), "2")
	writeFile(t, filepath.Join(f.stage("purge-temp-3"), "three.txt"), "3")
	writeFile(t, filepath.Join(f.stage("purge-temp-LAST"), "last.txt"), "4")

	f.clock.advance(time.Minute)
	require.Equal(t, errcode.Success, e.ExecutePurge())

	assert.FileExists(t, filepath.Join(f.stage("purge-temp-2"), "one.txt"))
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-3"), "two.txt"))
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-LAST"), "three.txt"))
	assert.NoFileExists(t, filepath.Join(f.stage("purge-temp-LAST"), "last.txt"))
	assert.DirExists(t, f.stage("purge-temp-1"))
	assert.Equal(t, []string{"last.txt"}, f.sink.purged)
	assert.ElementsMatch(t, []string{"one.txt", "two.txt", "three.txt"}, f.sink.moved)
}

func TestExecutePurge_SingleStage(t *testing.T) {
	f := newFixture(t, 1)
	e := f.executor()
	require.Equal(t, errcode.Success, e.ExecutePurge())

	require.Len(t, e.StageFolders(), 1)
	newest := f.stage("purge-temp-1")
	assert.Equal(t, newest, e.StageFolders().Init())
	assert.NoDirExists(t, f.stage("purge-temp-LAST"))

	writeFile(t, filepath.Join(newest, "tmp.bin"), "x")
	f.clock.advance(time.Minute)
	require.Equal(t, errcode.Success, e.ExecutePurge())

	assert.DirExists(t, newest)
	assert.NoFileExists(t, filepath.Join(newest, "tmp.bin"))
	assert.Equal(t, []string{"tmp.bin"}, f.sink.purged)
}

func TestExecutePurge_RemoveEmptyStageFolders(t *testing.T) {
	f := newFixture(t, 3)
	f.settings.RemoveEmptyStageFolders = true
	e := f.executor()
	require.Equal(t, errcode.Success, e.ExecutePurge())

	writeFile(t, filepath.Join(f.stage("purge-temp-1"), "sub", "nested.txt"), "n")

	f.clock.advance(time.Minute)
	require.Equal(t, errcode.Success, e.ExecutePurge())

	assert.DirExists(t, f.stage("purge-temp-1"), "newest folder is always recreated")
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-2"), "sub", "nested.txt"),
		"a folder holding only subdirectories is kept")
	assert.NoDirExists(t, f.stage("purge-temp-LAST"), "a folder without files is removed")
}

func TestExecutePurge_ComposedReservedName(t *testing.T) {
	f := newFixture(t, 2)
	f.settings.StageNamePrefix = "NU"
	f.settings.StageVersionDelimiter = ""
	f.settings.StageLastNameSuffix = "L"

	code := f.executor().ExecutePurge()

	assert.Equal(t, errcode.StageFolderHasReservedFolderName, code)
	assert.Equal(t, errcode.CategoryInvalid, code.Category())
	assert.NoDirExists(t, f.settings.StageRootFolder)
}

func TestExecutePurge_StageFolderIsSystemDirectory(t *testing.T) {
	f := newFixture(t, 1)
	f.settings.StageRootFolder = filepath.Dir(pathutil.TestSystemPath)
	f.settings.StageNamePrefix = filepath.Base(pathutil.TestSystemPath)
	f.settings.AppendNumberOnFirstStage = false

	assert.Equal(t, errcode.StageFolderIsSystemDirectory, f.executor().ExecutePurge())
}

func TestExecutePurge_AdministrativeConflict(t *testing.T) {
	f := newFixture(t, 3)
	f.settings.TempFolder = f.stage("purge-temp-2")

	assert.Equal(t, errcode.AdministrativePathConflictsWithStagePath, f.executor().ExecutePurge())
}

func TestExecutePurge_AdministrativeFolderDiffersInCase(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("paths are case-insensitive on windows")
	}
	f := newFixture(t, 3)
	f.settings.TempFolder = f.stage("PURGE-TEMP-2")

	assert.Equal(t, errcode.Success, f.executor().ExecutePurge())
	assert.DirExists(t, f.stage("PURGE-TEMP-2"))
	assert.DirExists(t, f.stage("purge-temp-2"))
}

func TestExecutePurge_AdministrativeFolderCannotBeCreated(t *testing.T) {
	f := newFixture(t, 3)
	blocker := filepath.Join(f.root, "blocker")
	writeFile(t, blocker, "file")
	f.settings.ConfigFolder = filepath.Join(blocker, "config")

	assert.Equal(t, errcode.CouldNotCreateAdministrativeFolder, f.executor().ExecutePurge())
}

func TestExecutePurge_LoggingFolderCreatedWhenEnabled(t *testing.T) {
	f := newFixture(t, 3)
	f.settings.LogEnabled = true

	require.Equal(t, errcode.Success, f.executor().ExecutePurge())
	assert.DirExists(t, f.settings.LoggingFolder)
}

func TestExecutePurge_ValidationCodes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *fixture)
		want   errcode.Code
	}{
		{name: "no stages", mutate: func(f *fixture) { f.settings.StageVersions = 0 }, want: errcode.InvalidNumberOfStages},
		{name: "threshold below -1", mutate: func(f *fixture) { f.settings.FileLogAmountThreshold = -2 }, want: errcode.InvalidFileLogAmount},
		{name: "negative rotation bytes", mutate: func(f *fixture) { f.settings.LogRotationBytes = -1 }, want: errcode.InvalidLogRotationBytes},
		{name: "negative rotation versions", mutate: func(f *fixture) { f.settings.LogRotationVersions = -1 }, want: errcode.InvalidLogRotationVersions},
		{name: "invalid logo", mutate: func(f *fixture) { f.settings.PurgeMessageLogoFile = "logo?.png" }, want: errcode.InvalidPurgeMessageLogoFile},
		{name: "empty skip token", mutate: func(f *fixture) { f.settings.SkipTokenFile = "" }, want: errcode.InvalidSkipTokenFile},
		{name: "reserved skip token", mutate: func(f *fixture) { f.settings.SkipTokenFile = "CON" }, want: errcode.InvalidSkipTokenFile},
		{name: "skip token ending with a dot", mutate: func(f *fixture) { f.settings.SkipTokenFile = "skip." }, want: errcode.InvalidSkipTokenFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 3)
			tt.mutate(f)
			e := f.executor()

			assert.Equal(t, tt.want, e.ExecutePurge())
			assert.Equal(t, InvalidArguments, e.State())
			assert.NoDirExists(t, f.settings.StageRootFolder)
			assert.Equal(t, notification{title: constants.TitleValidationFailed, severity: notify.Error}, f.notifier.last())
		})
	}
}

func TestExecutePurge_LogoIgnoredWithoutMessages(t *testing.T) {
	f := newFixture(t, 3)
	f.settings.ShowPurgeMessage = false
	f.settings.PurgeMessageLogoFile = "logo?.png"

	assert.Equal(t, errcode.Success, f.executor().ExecutePurge())
	assert.Empty(t, f.notifier.calls)
}

func TestExecutePurge_UnparsableTimestamp(t *testing.T) {
	f := newFixture(t, 3)
	writeFile(t, f.timestampFile(), "not a time")
	e := f.executor()

	assert.Equal(t, errcode.InvalidArguments, e.ExecutePurge())
	assert.Equal(t, InvalidArguments, e.State())
	assert.NoDirExists(t, f.stage("purge-temp-1"))
}

func TestExecutePurge_UnreadableTimestamp(t *testing.T) {
	f := newFixture(t, 3)
	require.NoError(t, os.MkdirAll(f.timestampFile(), 0755))
	e := f.executor()

	assert.Equal(t, errcode.UnknownError, e.ExecutePurge())
	assert.Equal(t, OtherErrors, e.State())
	assert.Equal(t, notification{title: constants.TitleNotExecuted, severity: notify.Error}, f.notifier.last())
}

func TestExecutePurge_StageFolderCannotBeCreated(t *testing.T) {
	f := newFixture(t, 3)
	writeFile(t, f.stage("purge-temp-2"), "not a folder")

	code := f.executor().ExecutePurge()
	assert.Equal(t, errcode.CouldNotCreateNewStageFolder, code)
	assert.DirExists(t, f.stage("purge-temp-1"))
	assert.FileExists(t, f.stage("purge-temp-2"))
	assert.NoDirExists(t, f.stage("purge-temp-LAST"))
	assert.NoFileExists(t, f.timestampFile())
	assert.Equal(t, notification{title: constants.TitlePurgeError, severity: notify.Error}, f.notifier.last())
}

func TestExecutePurge_DeleteLastFailureAborts(t *testing.T) {
	f := newFixture(t, 3)
	writeFile(t, filepath.Join(f.stage("purge-temp-LAST"), "old.txt"), "old")
	writeFile(t, filepath.Join(f.stage("purge-temp-1"), "new.txt"), "new")

	e := f.executor()
	e.removeAll = func(string) error { return errors.New("device busy") }

	assert.Equal(t, errcode.CouldNotDeleteLastFolder, e.ExecutePurge())
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-LAST"), "old.txt"))
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-1"), "new.txt"))
	assert.Empty(t, f.sink.moved)
	assert.NoFileExists(t, f.timestampFile())
	assert.Equal(t, notification{title: constants.TitlePurgeError, severity: notify.Error}, f.notifier.last())
}

func TestExecutePurge_RenameFailureAborts(t *testing.T) {
	f := newFixture(t, 3)
	require.Equal(t, errcode.Success, f.executor().ExecutePurge())
	f.clock.advance(time.Minute)

	writeFile(t, filepath.Join(f.stage("purge-temp-1"), "new.txt"), "new")
	writeFile(t, filepath.Join(f.stage("purge-temp-2"), "mid.txt"), "mid")

	// occupy the target of the newest folder once the older shift is done
	sink := &hookSink{onMove: func(from, to, file string) {
		if from == f.stage("purge-temp-1") {
			writeFile(t, filepath.Join(to, "blocker.txt"), "x")
		}
	}}

	code := f.executorWith(sink).ExecutePurge()
	assert.Equal(t, errcode.CouldNotRenameStageFolder, code)
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-1"), "new.txt"))
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-LAST"), "mid.txt"))
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-2"), "blocker.txt"))
	assert.NoFileExists(t, filepath.Join(f.stage("purge-temp-2"), "new.txt"))

	content, err := os.ReadFile(f.timestampFile())
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 12:00:00", string(content))
	assert.Equal(t, notification{title: constants.TitlePurgeError, severity: notify.Error}, f.notifier.last())
}

func TestExecutePurge_TimestampWriteFailureKeepsRotation(t *testing.T) {
	f := newFixture(t, 2)
	writeFile(t, filepath.Join(f.stage("purge-temp-1"), "a.txt"), "a")

	sink := &hookSink{onMove: func(from, to, file string) {
		require.NoError(t, os.MkdirAll(f.timestampFile(), 0755))
	}}

	code := f.executorWith(sink).ExecutePurge()
	assert.Equal(t, errcode.CouldNotCreateLastPurgeToken, code)
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-LAST"), "a.txt"))
	assert.DirExists(t, f.stage("purge-temp-1"))
	assert.NoFileExists(t, filepath.Join(f.stage("purge-temp-1"), "a.txt"))
	assert.DirExists(t, f.timestampFile())
	assert.Equal(t, notification{title: constants.TitleIncomplete, severity: notify.Error}, f.notifier.last())
}

type panickingSink struct {
	recordingSink
}

func (p *panickingSink) ReportPurge(folder, file string) {
	panic("sink exploded")
}

func TestExecutePurge_RecoversFromPanic(t *testing.T) {
	f := newFixture(t, 2)
	e := New(Options{
		Settings:       f.settings,
		Activity:       &panickingSink{},
		Notifier:       f.notifier,
		Metrics:        f.metrics,
		Resolver:       pathutil.Resolver{BaseDir: f.root},
		ProtectedPaths: []string{pathutil.TestSystemPath},
		Now:            f.clock.now,
	})
	writeFile(t, filepath.Join(f.stage("purge-temp-LAST"), "boom.txt"), "x")

	var code errcode.Code
	require.NotPanics(t, func() { code = e.ExecutePurge() })
	assert.Equal(t, errcode.UnknownError, code)
	assert.Equal(t, notification{title: constants.TitlePurgeError, severity: notify.Error}, f.notifier.last())
	assert.FileExists(t, filepath.Join(f.stage("purge-temp-LAST"), "boom.txt"))
}

func TestExecutePurge_FileLogThreshold(t *testing.T) {
	f := newFixture(t, 2)
	f.settings.FileLogAmountThreshold = 1
	e := f.executor()
	require.Equal(t, errcode.Success, e.ExecutePurge())

	for _, name := range []string{"a", "b", "c"} {
		writeFile(t, filepath.Join(f.stage("purge-temp-1"), name), name)
	}
	f.clock.advance(time.Minute)
	require.Equal(t, errcode.Success, e.ExecutePurge())

	assert.Equal(t, []string{"a"}, f.sink.moved)
	require.Len(t, f.sink.skipped, 1)
	assert.Equal(t, 2, f.sink.skipped[0].count)
	assert.False(t, f.sink.skipped[0].allSkipped)
	assert.Equal(t, 3, f.metrics.files[metrics.ActionMove])
}

func TestDescribe(t *testing.T) {
	out := Describe([]string{"/a", "/b", "/c"})

	assert.Equal(t, "+ 1 /a\n  2 /b\nx 3 /c\n", out)
}
