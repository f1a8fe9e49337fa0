// Package pathutil resolves configured paths and guards stage folder names
// against filesystem and operating system constraints.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns configured path tokens into absolute paths.
// Relative tokens are anchored at BaseDir, which defaults to the directory
// of the running executable.
type Resolver struct {
	BaseDir string
}

// NewResolver returns a resolver anchored at the executable directory,
// falling back to the working directory when it cannot be determined.
func NewResolver() Resolver {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return Resolver{BaseDir: filepath.Dir(exe)}
	}
	wd, err := os.Getwd()
	if err != nil {
		return Resolver{BaseDir: "."}
	}
	return Resolver{BaseDir: wd}
}

// Resolve returns token as an absolute path. Empty tokens stay empty.
func (r Resolver) Resolve(token string) string {
	if token == "" {
		return ""
	}
	return r.Join(r.BaseDir, token)
}

// Join combines base and token:
//   - both empty: ""
//   - empty token: base
//   - absolute token: token
//   - otherwise base/token, cleaned
//
// A relative base is first anchored at BaseDir.
func (r Resolver) Join(base, token string) string {
	if base == "" && token == "" {
		return ""
	}
	if base != "" && !isAbs(base) && r.BaseDir != "" && base != r.BaseDir {
		base = filepath.Join(r.BaseDir, base)
	}
	if token == "" {
		return filepath.Clean(base)
	}
	if isAbs(token) {
		return filepath.Clean(token)
	}
	return filepath.Join(base, token)
}

// isAbs also treats rooted tokens ("/x", `\x`) as absolute so settings
// written for another platform are not silently nested under the base.
func isAbs(p string) bool {
	return filepath.IsAbs(p) || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`)
}
