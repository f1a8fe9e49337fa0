package pathutil

import (
	"runtime"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"
	"github.com/wasilibs/go-re2"

	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/logger"
)

var (
	// Portable set of characters that no supported filesystem accepts in a name.
	illegalNameChars = re2.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	// Device names reserved on Windows, rejected everywhere for portability.
	reservedName = re2.MustCompile(`(?i)^(CON|PRN|AUX|NUL|COM[1-9]|LPT[1-9])$`)
)

const pathSeparators = `/\`

// ValidatorOptions configures a Validator.
type ValidatorOptions struct {
	Logger   *logger.Logger
	Resolver Resolver
	// ProtectedPaths are compared exactly (after normalization), usually DefaultProtectedPaths().
	ProtectedPaths []string
	// ProtectedPatterns are wildcard patterns matched against the normalized absolute path.
	ProtectedPatterns []string
}

// Validator checks folder and file names and guards system directories.
type Validator struct {
	log       *logger.Logger
	resolver  Resolver
	protected map[string]struct{}
	patterns  []string
	foldCase  bool
}

// NewValidator builds a validator from opts.
func NewValidator(opts ValidatorOptions) *Validator {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	foldCase := runtime.GOOS == "windows"

	v := &Validator{
		log:       log,
		resolver:  opts.Resolver,
		protected: make(map[string]struct{}, len(opts.ProtectedPaths)),
		foldCase:  foldCase,
	}
	for _, p := range opts.ProtectedPaths {
		if p == "" {
			continue
		}
		v.protected[normalizePath(v.absolute(p), foldCase)] = struct{}{}
	}
	for _, p := range opts.ProtectedPatterns {
		if p = strings.TrimSpace(p); p != "" {
			v.patterns = append(v.patterns, normalizePath(p, foldCase))
		}
	}
	return v
}

// IsValidFolderName checks name against the naming rules and the system
// directory guard. warnOnly lowers the log severity of a failure; it never
// changes the returned code.
func (v *Validator) IsValidFolderName(name string, warnOnly bool) error {
	if code := nameCode(name); code != errcode.Success {
		err := errcode.New(code, "invalid folder name %q", name)
		v.report(err, name, warnOnly)
		return err
	}
	return v.CheckSystemRelevantFolder(name, !warnOnly)
}

// CheckSystemRelevantFolder fails with PathIsSystemDirectory when path
// resolves to a protected directory. logError selects error over warning
// severity for the log entry.
func (v *Validator) CheckSystemRelevantFolder(path string, logError bool) error {
	if strings.TrimSpace(path) == "" {
		err := errcode.New(errcode.EmptyFolderName, "path is empty")
		v.report(err, path, !logError)
		return err
	}

	normalized := normalizePath(v.absolute(path), v.foldCase)
	if _, ok := v.protected[normalized]; ok {
		err := errcode.New(errcode.PathIsSystemDirectory, "path %q is a system directory", path)
		v.report(err, path, !logError)
		return err
	}
	for _, pattern := range v.patterns {
		if wildcard.Match(pattern, normalized) {
			err := errcode.New(errcode.PathIsSystemDirectory, "path %q matches protected pattern %q", path, pattern)
			v.report(err, path, !logError)
			return err
		}
	}
	return nil
}

func (v *Validator) absolute(p string) string {
	if isAbs(p) {
		return p
	}
	if v.resolver.BaseDir == "" {
		return NewResolver().Resolve(p)
	}
	return v.resolver.Resolve(p)
}

func (v *Validator) report(err error, name string, warnOnly bool) {
	fields := []logger.Field{
		{Key: "name", Value: name},
		{Key: "code", Value: int(errcode.Of(err))},
	}
	if warnOnly {
		v.log.Warn(err.Error(), fields...)
		return
	}
	v.log.Error("path validation failed", err, fields...)
}

// nameCode applies the name rules to the last component of name.
func nameCode(name string) errcode.Code {
	trimmed := strings.TrimRight(name, pathSeparators)
	if strings.TrimSpace(trimmed) == "" {
		return errcode.EmptyFolderName
	}

	last := trimmed
	if i := strings.LastIndexAny(trimmed, pathSeparators); i >= 0 {
		last = trimmed[i+1:]
	}
	if illegalNameChars.MatchString(last) {
		return errcode.IllegalCharactersInFolderName
	}
	if reservedName.MatchString(last) {
		return errcode.ReservedNameAsFolderName
	}
	if strings.HasSuffix(name, " ") || strings.HasSuffix(name, ".") {
		return errcode.InvalidFolderNameSuffix
	}
	return errcode.Success
}

// componentCode applies the name rules to a single name component, where
// separators are illegal characters too.
func componentCode(component string) errcode.Code {
	if strings.TrimSpace(component) == "" {
		return errcode.EmptyFolderName
	}
	if illegalNameChars.MatchString(component) {
		return errcode.IllegalCharactersInFolderName
	}
	if reservedName.MatchString(component) {
		return errcode.ReservedNameAsFolderName
	}
	if strings.HasSuffix(component, " ") || strings.HasSuffix(component, ".") {
		return errcode.InvalidFolderNameSuffix
	}
	return errcode.Success
}
