package config

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyPrefix is the namespace of every setting key.
const KeyPrefix = "AppSettings:"

// Setting keys accepted by WithOverride.
const (
	KeyStageVersions            = KeyPrefix + "StageVersions"
	KeyStageNamePrefix          = KeyPrefix + "StageNamePrefix"
	KeyStageVersionDelimiter    = KeyPrefix + "StageVersionDelimiter"
	KeyAppendNumberOnFirstStage = KeyPrefix + "AppendNumberOnFirstStage"
	KeyStageLastNameSuffix      = KeyPrefix + "StageLastNameSuffix"
	KeyStageRootFolder          = KeyPrefix + "StageRootFolder"
	KeyStagingDelaySeconds      = KeyPrefix + "StagingDelaySeconds"
	KeySkipTokenFile            = KeyPrefix + "SkipTokenFile"
	KeyStagingTimestampFile     = KeyPrefix + "StagingTimestampFile"
	KeyTimeStampFormat          = KeyPrefix + "TimeStampFormat"
	KeyFileLogAmountThreshold   = KeyPrefix + "FileLogAmountThreshold"
	KeyRemoveEmptyStageFolders  = KeyPrefix + "RemoveEmptyStageFolders"
	KeyConfigFolder             = KeyPrefix + "ConfigFolder"
	KeyTempFolder               = KeyPrefix + "TempFolder"
	KeyLoggingFolder            = KeyPrefix + "LoggingFolder"
	KeyLogEnabled               = KeyPrefix + "LogEnabled"
	KeyLogAllFiles              = KeyPrefix + "LogAllFiles"
	KeyLogRotationBytes         = KeyPrefix + "LogRotationBytes"
	KeyLogRotationVersions      = KeyPrefix + "LogRotationVersions"
	KeyShowPurgeMessage         = KeyPrefix + "ShowPurgeMessage"
	KeyPurgeMessageLogoFile     = KeyPrefix + "PurgeMessageLogoFile"
	KeyProtectedPaths           = KeyPrefix + "ProtectedPaths"
	KeyMetricsFile              = KeyPrefix + "MetricsFile"
)

// WithOverride returns a copy of s with the setting named by key replaced by the
// parsed value. The "AppSettings:" prefix is optional and matching ignores case.
// ProtectedPaths takes a comma separated list.
func (s Settings) WithOverride(key, value string) (Settings, error) {
	name := key
	if len(name) >= len(KeyPrefix) && strings.EqualFold(name[:len(KeyPrefix)], KeyPrefix) {
		name = name[len(KeyPrefix):]
	}
	full := KeyPrefix + name
	orig := s

	var err error
	switch strings.ToLower(full) {
	case strings.ToLower(KeyStageVersions):
		s.StageVersions, err = parseInt(full, value)
	case strings.ToLower(KeyStageNamePrefix):
		s.StageNamePrefix = value
	case strings.ToLower(KeyStageVersionDelimiter):
		s.StageVersionDelimiter = value
	case strings.ToLower(KeyAppendNumberOnFirstStage):
		s.AppendNumberOnFirstStage, err = parseBool(full, value)
	case strings.ToLower(KeyStageLastNameSuffix):
		s.StageLastNameSuffix = value
	case strings.ToLower(KeyStageRootFolder):
		s.StageRootFolder = value
	case strings.ToLower(KeyStagingDelaySeconds):
		s.StagingDelaySeconds, err = parseInt64(full, value)
	case strings.ToLower(KeySkipTokenFile):
		s.SkipTokenFile = value
	case strings.ToLower(KeyStagingTimestampFile):
		s.StagingTimestampFile = value
	case strings.ToLower(KeyTimeStampFormat):
		s.TimeStampFormat = value
	case strings.ToLower(KeyFileLogAmountThreshold):
		s.FileLogAmountThreshold, err = parseInt(full, value)
	case strings.ToLower(KeyRemoveEmptyStageFolders):
		s.RemoveEmptyStageFolders, err = parseBool(full, value)
	case strings.ToLower(KeyConfigFolder):
		s.ConfigFolder = value
	case strings.ToLower(KeyTempFolder):
		s.TempFolder = value
	case strings.ToLower(KeyLoggingFolder):
		s.LoggingFolder = value
	case strings.ToLower(KeyLogEnabled):
		s.LogEnabled, err = parseBool(full, value)
	case strings.ToLower(KeyLogAllFiles):
		s.LogAllFiles, err = parseBool(full, value)
	case strings.ToLower(KeyLogRotationBytes):
		s.LogRotationBytes, err = parseInt64(full, value)
	case strings.ToLower(KeyLogRotationVersions):
		s.LogRotationVersions, err = parseInt(full, value)
	case strings.ToLower(KeyShowPurgeMessage):
		s.ShowPurgeMessage, err = parseBool(full, value)
	case strings.ToLower(KeyPurgeMessageLogoFile):
		s.PurgeMessageLogoFile = value
	case strings.ToLower(KeyProtectedPaths):
		s.ProtectedPaths = splitList(value)
	case strings.ToLower(KeyMetricsFile):
		s.MetricsFile = value
	default:
		return s, fmt.Errorf("unknown setting key: %s", key)
	}

	if err != nil {
		return orig, err
	}
	return s, nil
}

// WithOverrides applies every override and stops at the first failure.
func (s Settings) WithOverrides(overrides map[string]string) (Settings, error) {
	var err error
	for key, value := range overrides {
		if s, err = s.WithOverride(key, value); err != nil {
			return s, err
		}
	}
	return s, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: expected integer, got %q", key, value)
	}
	return n, nil
}

func parseInt64(key, value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: expected integer, got %q", key, value)
	}
	return n, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s: expected boolean, got %q", key, value)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
