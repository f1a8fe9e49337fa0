package main

import (
	"os"

	"github.com/aatumaykin/purgetemp/internal/errcode"
	"github.com/aatumaykin/purgetemp/internal/version"
)

var (
	Version   string = "0.1.0-dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
	GoVersion string = ""
)

func init() {
	version.SetInfo(Version, BuildTime, GitCommit, GoVersion)
}

func main() {
	if err := rootCmd.Execute(); err != nil && exitCode == 0 {
		exitCode = int(errcode.InvalidArguments)
	}
	os.Exit(exitCode)
}
