package constants

// DefaultVersion is the default version of the application
const DefaultVersion = "0.1.0-dev"

// DefaultBuildTime is the default build time when not provided at build time
const DefaultBuildTime = "unknown"

// DefaultGitCommit is the default git commit hash when not provided at build time
const DefaultGitCommit = "unknown"

// Stage naming defaults, also used as sanitization fallbacks.
const (
	DefaultStageNamePrefix       = "purge-temp"
	DefaultStageVersionDelimiter = "-"
	DefaultStageLastNameSuffix   = "LAST"
)
