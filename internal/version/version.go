// Package version holds build metadata injected at link time.
package version

import (
	"fmt"
	"runtime"

	"github.com/aatumaykin/purgetemp/internal/constants"
)

const (
	// Name is the product name shown in banners.
	Name = "PurgeTemp"
	// Description is a one-line summary of the tool.
	Description = "Staged temp file clean-up: files age through a chain of stage folders before deletion"
	// RepositoryURL is the project home.
	RepositoryURL = "https://github.com/aatumaykin/purgetemp"
)

var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = runtime.Version()
)

func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// Banner returns the header printed above CLI help and version output.
func Banner() string {
	return fmt.Sprintf("%s v%s\n%s\n%s", Name, Version, Description, RepositoryURL)
}

// Details returns the multi-line build information.
func Details() string {
	return fmt.Sprintf("Version:    %s\nBuild time: %s\nGit commit: %s\nGo version: %s",
		Version, BuildTime, GitCommit, GoVersion)
}
