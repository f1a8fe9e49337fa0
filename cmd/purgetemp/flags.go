package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/aatumaykin/purgetemp/internal/config"
)

// settingFlag maps a command line flag onto a settings key.
type settingFlag struct {
	name  string
	short string
	key   string
	usage string
	bool  bool
}

var settingFlags = []settingFlag{
	{name: "stage-versions", short: "v", key: config.KeyStageVersions, usage: "number of stage folders"},
	{name: "stage-name-prefix", short: "p", key: config.KeyStageNamePrefix, usage: "stage folder name prefix"},
	{name: "stage-version-delimiter", short: "d", key: config.KeyStageVersionDelimiter, usage: "delimiter between prefix and stage number"},
	{name: "append-number-on-first-stage", short: "a", key: config.KeyAppendNumberOnFirstStage, usage: "append 1 to the newest stage folder name", bool: true},
	{name: "stage-last-name-suffix", short: "l", key: config.KeyStageLastNameSuffix, usage: "name suffix of the oldest stage folder"},
	{name: "stage-root-folder", short: "r", key: config.KeyStageRootFolder, usage: "folder holding the stage folders"},
	{name: "staging-delay-seconds", short: "t", key: config.KeyStagingDelaySeconds, usage: "minimum seconds between two purges"},
	{name: "skip-token-file", short: "k", key: config.KeySkipTokenFile, usage: "file name that skips the next purge when placed in the newest stage"},
	{name: "staging-timestamp-file", short: "g", key: config.KeyStagingTimestampFile, usage: "file in the config folder holding the last purge time"},
	{name: "timestamp-format", short: "y", key: config.KeyTimeStampFormat, usage: "format of the last purge time, e.g. yyyy-MM-dd HH:mm:ss"},
	{name: "file-log-amount-threshold", short: "q", key: config.KeyFileLogAmountThreshold, usage: "files logged individually per folder (-1 = all)"},
	{name: "remove-empty-stage-folders", short: "u", key: config.KeyRemoveEmptyStageFolders, usage: "remove stage folders without files after a purge", bool: true},
	{name: "config-folder", short: "c", key: config.KeyConfigFolder, usage: "administrative config folder"},
	{name: "temp-folder", short: "z", key: config.KeyTempFolder, usage: "administrative temp folder"},
	{name: "logging-folder", short: "f", key: config.KeyLoggingFolder, usage: "folder of the application and activity logs"},
	{name: "log-enabled", short: "e", key: config.KeyLogEnabled, usage: "write logs to the logging folder", bool: true},
	{name: "log-all-files", key: config.KeyLogAllFiles, usage: "write every purged or moved file to the activity log", bool: true},
	{name: "log-rotation-bytes", short: "b", key: config.KeyLogRotationBytes, usage: "log file size that triggers rotation (0 = unlimited)"},
	{name: "log-rotation-versions", short: "o", key: config.KeyLogRotationVersions, usage: "rotated log files to keep (0 = all)"},
	{name: "show-purge-message", short: "m", key: config.KeyShowPurgeMessage, usage: "send purge notifications", bool: true},
	{name: "purge-message-logo", short: "i", key: config.KeyPurgeMessageLogoFile, usage: "image shown with notifications"},
	{name: "protected-paths", key: config.KeyProtectedPaths, usage: "comma separated wildcard patterns of additional protected folders"},
	{name: "metrics-file", key: config.KeyMetricsFile, usage: "metrics textfile name in the temp folder (empty = disabled)"},
}

// registerSettingFlags adds one flag per setting. Values stay strings and
// are parsed by Settings.WithOverride, so flags and config keys share one parser.
func registerSettingFlags(fs *pflag.FlagSet) {
	for _, f := range settingFlags {
		fs.StringP(f.name, f.short, "", f.usage)
		if f.bool {
			fs.Lookup(f.name).NoOptDefVal = "true"
		}
	}
}

// applySettingFlags overrides s with every setting flag given on the command line.
func applySettingFlags(fs *pflag.FlagSet, s config.Settings) (config.Settings, error) {
	keys := make(map[string]string, len(settingFlags))
	for _, f := range settingFlags {
		keys[f.name] = f.key
	}

	var err error
	fs.Visit(func(flag *pflag.Flag) {
		key, ok := keys[flag.Name]
		if !ok || err != nil {
			return
		}
		s, err = s.WithOverride(key, flag.Value.String())
		if err != nil {
			err = fmt.Errorf("--%s: %w", flag.Name, err)
		}
	})
	return s, err
}
