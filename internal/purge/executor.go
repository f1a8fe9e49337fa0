// Package purge rotates the stage folder chain: it validates the settings,
// asks the execution gate for permission, reports the affected files, deletes
// the oldest stage, shifts the others and recreates the newest one.
package purge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aatumaykin/purgetemp/internal/activity"
	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/constants"
	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
	"github.com/aatumaykin/purgetemp/internal/metrics"
	"github.com/aatumaykin/purgetemp/internal/notify"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
	"github.com/aatumaykin/purgetemp/internal/stage"
	"github.com/aatumaykin/purgetemp/internal/timefmt"
)

// Recorder collects run metrics. *metrics.PrometheusMetrics implements it.
type Recorder interface {
	ObserveRun(code errcode.Code, duration time.Duration)
	AddFiles(action string, n int)
	SetStageFolders(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(errcode.Code, time.Duration) {}
func (nopRecorder) AddFiles(string, int)                   {}
func (nopRecorder) SetStageFolders(int)                    {}

// Options are the collaborators of an Executor. Only Settings is required.
type Options struct {
	Settings config.Settings
	Logger   *logger.Logger
	Activity activity.Sink
	// Notifier is only called when Settings.ShowPurgeMessage is set.
	Notifier notify.Notifier
	Metrics  Recorder
	// Resolver anchors relative paths; the zero value uses the executable directory.
	Resolver pathutil.Resolver
	// ProtectedPaths defaults to pathutil.DefaultProtectedPaths().
	ProtectedPaths []string
	Now            func() time.Time
}

// Executor runs purge rotations for one settings snapshot.
type Executor struct {
	settings  config.Settings
	base      *logger.Logger
	log       *logger.Logger
	notifier  notify.Notifier
	metrics   Recorder
	resolver  pathutil.Resolver
	validator *pathutil.Validator
	planner   *stage.Planner
	gate      *Gate
	reporter  *Reporter
	now       func() time.Time
	removeAll func(string) error

	state   ExecutionState
	folders stage.List
}

// New creates an executor.
func New(opts Options) *Executor {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	resolver := opts.Resolver
	if resolver.BaseDir == "" {
		resolver = pathutil.NewResolver()
	}
	protected := opts.ProtectedPaths
	if protected == nil {
		protected = pathutil.DefaultProtectedPaths()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	recorder := opts.Metrics
	if recorder == nil {
		recorder = nopRecorder{}
	}

	validator := pathutil.NewValidator(pathutil.ValidatorOptions{
		Logger:            log,
		Resolver:          resolver,
		ProtectedPaths:    protected,
		ProtectedPatterns: opts.Settings.ProtectedPaths,
	})
	planner := stage.NewPlanner(validator, resolver)

	return &Executor{
		settings:  opts.Settings,
		base:      log,
		log:       log,
		notifier:  notify.Gated{Enabled: opts.Settings.ShowPurgeMessage, Next: opts.Notifier},
		metrics:   recorder,
		resolver:  resolver,
		validator: validator,
		planner:   planner,
		gate:      NewGate(planner, resolver, log, now),
		reporter:  NewReporter(opts.Activity, opts.Settings.FileLogAmountThreshold),
		now:       now,
		removeAll: os.RemoveAll,
	}
}

// Settings returns the settings snapshot of the executor.
func (e *Executor) Settings() config.Settings {
	return e.settings
}

// State returns the gate result of the last ExecutePurge call.
func (e *Executor) State() ExecutionState {
	return e.state
}

// StageFolders returns the stage folders planned by the last ExecutePurge call.
func (e *Executor) StageFolders() stage.List {
	return e.folders
}

// CanExecutePurge evaluates the execution gate without touching any folder.
func (e *Executor) CanExecutePurge() ExecutionState {
	return e.gate.CanExecutePurge(e.settings)
}

// ValidateGeneralSettings checks the numeric ranges and the token file names.
func (e *Executor) ValidateGeneralSettings() error {
	s := e.settings
	switch {
	case s.StageVersions < 1:
		return errcode.New(errcode.InvalidNumberOfStages, "stage versions must be at least 1, got %d", s.StageVersions)
	case s.FileLogAmountThreshold < -1:
		return errcode.New(errcode.InvalidFileLogAmount, "file log amount threshold must be -1 or greater, got %d", s.FileLogAmountThreshold)
	case s.LogRotationBytes < 0:
		return errcode.New(errcode.InvalidLogRotationBytes, "log rotation bytes must not be negative, got %d", s.LogRotationBytes)
	case s.LogRotationVersions < 0:
		return errcode.New(errcode.InvalidLogRotationVersions, "log rotation versions must not be negative, got %d", s.LogRotationVersions)
	}

	if s.ShowPurgeMessage && s.PurgeMessageLogoFile != "" {
		if err := e.validator.IsValidFolderName(s.PurgeMessageLogoFile, true); err != nil {
			return errcode.Recode(err, errcode.InvalidPurgeMessageLogoFile)
		}
	}
	if err := e.validator.IsValidFolderName(s.SkipTokenFile, true); err != nil {
		return errcode.Recode(err, errcode.InvalidSkipTokenFile)
	}
	return nil
}

// MaintainAdministrativeFolders validates and creates the config, temp and,
// when logging is enabled, the logging folder.
func (e *Executor) MaintainAdministrativeFolders() error {
	folders, err := e.planner.Folders(e.settings)
	if err != nil {
		return err
	}

	admin := []string{e.settings.ConfigFolder, e.settings.TempFolder}
	if e.settings.LogEnabled {
		admin = append(admin, e.settings.LoggingFolder)
	}
	for _, token := range admin {
		path := e.resolver.Resolve(token)
		if err := e.validator.IsValidFolderName(path, true); err != nil {
			return err
		}
		if folders.Contains(path) {
			return errcode.New(errcode.AdministrativePathConflictsWithStagePath,
				"administrative folder %q is also a stage folder", path)
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return errcode.Wrap(err, errcode.CouldNotCreateAdministrativeFolder,
				"failed to create administrative folder %q", path)
		}
	}
	return nil
}

// CheckStageFolders plans the stage folders and validates every composed path.
func (e *Executor) CheckStageFolders() (stage.List, error) {
	folders, err := e.planner.Folders(e.settings)
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		err := e.validator.IsValidFolderName(folder, true)
		switch errcode.Of(err) {
		case errcode.Success:
		case errcode.PathIsSystemDirectory:
			return nil, errcode.Recode(err, errcode.StageFolderIsSystemDirectory)
		case errcode.ReservedNameAsFolderName:
			return nil, errcode.Recode(err, errcode.StageFolderHasReservedFolderName)
		default:
			return nil, err
		}
	}
	return folders, nil
}

// ExecutePurge runs one rotation and returns its result code. It never panics.
func (e *Executor) ExecutePurge() (code errcode.Code) {
	start := e.now()
	e.log = e.base.With(logger.Field{Key: "run_id", Value: uuid.NewString()})
	e.state = OtherErrors
	e.folders = nil

	defer func() {
		if r := recover(); r != nil {
			e.state = OtherErrors
			code = e.fail(errcode.New(errcode.UnknownError, "panic: %v", r),
				constants.TitlePurgeError, fmt.Sprintf(constants.MsgUnexpected, r))
		}
		e.metrics.ObserveRun(code, e.now().Sub(start))
		e.log.Info("purge finished",
			logger.Field{Key: "code", Value: int(code)},
			logger.Field{Key: "result", Value: code.String()},
			logger.Field{Key: "state", Value: e.state.String()})
	}()

	if err := e.ValidateGeneralSettings(); err != nil {
		e.state = InvalidArguments
		return e.fail(err, constants.TitleValidationFailed,
			fmt.Sprintf(constants.MsgValidationFailed, errcode.Of(err)))
	}
	if err := e.MaintainAdministrativeFolders(); err != nil {
		e.state = InvalidArguments
		return e.fail(err, constants.TitlePreparationFailed,
			fmt.Sprintf(constants.MsgPreparationFailed, errcode.Of(err)))
	}
	folders, err := e.CheckStageFolders()
	if err != nil {
		e.state = InvalidArguments
		return e.fail(err, constants.TitlePreparationFailed,
			fmt.Sprintf(constants.MsgStageListInvalid, errcode.Of(err)))
	}
	e.folders = folders
	e.metrics.SetStageFolders(len(folders))

	e.state = e.CanExecutePurge()
	switch e.state {
	case CanExecute:
	case TimeSinceLastPurgeTooShort:
		return e.skip(errcode.ExecutionTooFrequent, constants.MsgTooFrequent)
	case SkippedByToken:
		return e.skip(errcode.SkipTokenFound, fmt.Sprintf(constants.MsgSkipToken, e.settings.SkipTokenFile))
	case InvalidArguments:
		return e.fail(errcode.New(errcode.InvalidArguments, "execution gate rejected the arguments"),
			constants.TitleNotExecuted, constants.MsgGateInvalid)
	default:
		return e.fail(errcode.New(errcode.UnknownError, "execution gate failed"),
			constants.TitleNotExecuted, constants.MsgGateError)
	}

	return e.rotate(folders)
}

// rotate performs the filesystem part of a purge on folders, newest first.
func (e *Executor) rotate(folders stage.List) errcode.Code {
	for _, folder := range folders {
		if err := os.MkdirAll(folder, 0755); err != nil {
			code := errcode.CouldNotCreateNewStageFolder
			return e.fail(errcode.Wrap(err, code, "failed to create stage folder %q", folder),
				constants.TitlePurgeError, fmt.Sprintf(constants.MsgCreateStage, folder, code))
		}
	}

	// a folder may disappear between creation and rotation
	existing := make(stage.List, 0, len(folders))
	for _, folder := range folders {
		if isDir(folder) {
			existing = append(existing, folder)
		}
	}

	if len(existing) > 0 {
		last := existing.Last()
		n, err := e.reporter.ReportFolderContents(existing, last)
		if err != nil {
			return e.fail(err, constants.TitlePurgeError, fmt.Sprintf(constants.MsgReport, last))
		}
		if err := e.removeAll(last); err != nil {
			return e.fail(errcode.Wrap(err, errcode.CouldNotDeleteLastFolder, "failed to delete %q", last),
				constants.TitlePurgeError, fmt.Sprintf(constants.MsgDeleteLast, last))
		}
		e.metrics.AddFiles(metrics.ActionPurge, n)
		e.log.Info("last stage folder purged",
			logger.Field{Key: "folder", Value: last},
			logger.Field{Key: "files", Value: n})
	}

	for i := len(existing) - 2; i >= 0; i-- {
		from, to := existing[i], existing[i+1]
		n, err := e.reporter.ReportFolderContents(existing, from)
		if err != nil {
			return e.fail(err, constants.TitlePurgeError, fmt.Sprintf(constants.MsgReport, from))
		}
		if err := os.Rename(from, to); err != nil {
			return e.fail(errcode.Wrap(err, errcode.CouldNotRenameStageFolder, "failed to rename %q to %q", from, to),
				constants.TitlePurgeError, fmt.Sprintf(constants.MsgRename, from, to))
		}
		e.metrics.AddFiles(metrics.ActionMove, n)
		e.log.Debug("stage folder moved",
			logger.Field{Key: "from", Value: from},
			logger.Field{Key: "to", Value: to},
			logger.Field{Key: "files", Value: n})
	}

	if e.settings.RemoveEmptyStageFolders && len(existing) > 1 {
		e.removeEmpty(existing[1:])
	}

	newest := folders.Init()
	if err := os.MkdirAll(newest, 0755); err != nil {
		code := errcode.CouldNotCreateNewStageFolder
		return e.fail(errcode.Wrap(err, code, "failed to create init folder %q", newest),
			constants.TitlePurgeError, fmt.Sprintf(constants.MsgCreateInit, newest, code))
	}

	if err := e.writeTimestamp(); err != nil {
		return e.fail(err, constants.TitleIncomplete, fmt.Sprintf(constants.MsgTimestamp, errcode.Of(err)))
	}

	e.notifier.Notify(constants.TitleCompleted, constants.MsgCompleted, notify.OK)
	return errcode.Success
}

// removeEmpty deletes folders without files directly inside. Folders that
// still hold subdirectories cannot be removed and are kept.
func (e *Executor) removeEmpty(folders stage.List) {
	for _, folder := range folders {
		entries, err := os.ReadDir(folder)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				e.log.Warn("cannot inspect stage folder", logger.Field{Key: "folder", Value: folder}, logger.Field{Key: "error", Value: err.Error()})
			}
			continue
		}
		if countFiles(entries) > 0 {
			continue
		}
		if err := os.Remove(folder); err != nil {
			e.log.Warn("empty stage folder not removed",
				logger.Field{Key: "folder", Value: folder},
				logger.Field{Key: "error", Value: err.Error()})
			continue
		}
		e.log.Debug("empty stage folder removed", logger.Field{Key: "folder", Value: folder})
	}
}

func (e *Executor) writeTimestamp() error {
	path := TokenPath(e.resolver, e.resolver.Resolve(e.settings.ConfigFolder), e.settings.StagingTimestampFile)
	if path == "" {
		return errcode.New(errcode.CouldNotCreateLastPurgeToken, "timestamp token path cannot be resolved")
	}
	value := timefmt.Format(e.now().Local(), e.settings.TimeStampFormat)
	if err := os.WriteFile(path, []byte(value), 0644); err != nil {
		return errcode.Wrap(err, errcode.CouldNotCreateLastPurgeToken, "failed to write %q", path)
	}
	return nil
}

// fail logs err once, notifies the user and returns the code of err.
func (e *Executor) fail(err error, title, message string) errcode.Code {
	code := errcode.Of(err)
	e.log.Error(message, err,
		logger.Field{Key: "code", Value: int(code)},
		logger.Field{Key: "result", Value: code.String()})
	e.notifier.Notify(title, message, notify.Error)
	return code
}

// skip handles benign non-execution.
func (e *Executor) skip(code errcode.Code, message string) errcode.Code {
	e.log.Info(message, logger.Field{Key: "code", Value: int(code)})
	e.notifier.Notify(constants.TitleNotExecuted, message, notify.Skip)
	return code
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func countFiles(entries []fs.DirEntry) int {
	n := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			n++
		}
	}
	return n
}

// Describe returns a short human readable summary of folders for the CLI.
func Describe(folders stage.List) string {
	var b strings.Builder
	for i, folder := range folders {
		marker := " "
		switch {
		case i == 0:
			marker = "+"
		case i == len(folders)-1:
			marker = "x"
		}
		fmt.Fprintf(&b, "%s %d %s\n", marker, i+1, folder)
	}
	return b.String()
}
