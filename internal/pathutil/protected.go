package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TestSystemPath is always part of the protected set. It does not exist on a
// real system and lets tests exercise the system-directory guard safely.
var TestSystemPath = func() string {
	if runtime.GOOS == "windows" {
		return `C:\purge-temp-system-sentinel`
	}
	return "/purge-temp-system-sentinel"
}()

// DefaultProtectedPaths returns the operating system directories that must
// never be used as a stage or administrative folder. Compute it once per
// process and hand it to the validator.
func DefaultProtectedPaths() []string {
	var paths []string
	if runtime.GOOS == "windows" {
		paths = windowsProtectedPaths()
	} else {
		paths = []string{"/", "/bin", "/boot", "/dev", "/etc", "/lib", "/proc", "/sbin", "/sys", "/usr", "/var"}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, home)
	}
	return append(paths, TestSystemPath)
}

func windowsProtectedPaths() []string {
	var paths []string
	add := func(p string) {
		if p != "" {
			paths = append(paths, p)
		}
	}

	windir := os.Getenv("SystemRoot")
	if windir == "" {
		windir = os.Getenv("windir")
	}
	add(windir)
	if windir != "" {
		add(filepath.Join(windir, "System32"))
	}
	add(os.Getenv("ProgramFiles"))
	add(os.Getenv("ProgramFiles(x86)"))
	add(os.Getenv("CommonProgramFiles"))
	add(os.Getenv("USERPROFILE"))
	if public := os.Getenv("PUBLIC"); public != "" {
		add(filepath.Join(public, "Documents"))
		add(filepath.Join(public, "Desktop"))
	}
	return paths
}

// normalizePath produces the comparison form of an absolute path: NFC,
// cleaned, no trailing separator, lower case on case-insensitive systems.
func normalizePath(p string, foldCase bool) string {
	p = filepath.Clean(norm.NFC.String(p))
	if len(p) > 1 {
		p = strings.TrimRight(p, `/\`)
		if p == "" || strings.HasSuffix(p, ":") {
			p += string(filepath.Separator)
		}
	}
	if foldCase {
		p = strings.ToLower(p)
	}
	return p
}
