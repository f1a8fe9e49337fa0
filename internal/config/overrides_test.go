package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithOverride(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s Settings)
	}{
		{KeyStageVersions, "42", func(t *testing.T, s Settings) { assert.Equal(t, 42, s.StageVersions) }},
		{KeyStageNamePrefix, "tmp", func(t *testing.T, s Settings) { assert.Equal(t, "tmp", s.StageNamePrefix) }},
		{KeyStageVersionDelimiter, "", func(t *testing.T, s Settings) { assert.Equal(t, "", s.StageVersionDelimiter) }},
		{KeyAppendNumberOnFirstStage, "false", func(t *testing.T, s Settings) { assert.False(t, s.AppendNumberOnFirstStage) }},
		{KeyStagingDelaySeconds, "0", func(t *testing.T, s Settings) { assert.Equal(t, int64(0), s.StagingDelaySeconds) }},
		{KeyFileLogAmountThreshold, "-1", func(t *testing.T, s Settings) { assert.Equal(t, -1, s.FileLogAmountThreshold) }},
		{KeyRemoveEmptyStageFolders, "true", func(t *testing.T, s Settings) { assert.True(t, s.RemoveEmptyStageFolders) }},
		{KeyLogRotationBytes, "2048", func(t *testing.T, s Settings) { assert.Equal(t, int64(2048), s.LogRotationBytes) }},
		{KeyShowPurgeMessage, "1", func(t *testing.T, s Settings) { assert.True(t, s.ShowPurgeMessage) }},
		{KeyProtectedPaths, "/srv/*, /data ,", func(t *testing.T, s Settings) {
			assert.Equal(t, []string{"/srv/*", "/data"}, s.ProtectedPaths)
		}},
		{"StageLastNameSuffix", "OLD", func(t *testing.T, s Settings) { assert.Equal(t, "OLD", s.StageLastNameSuffix) }},
		{"appsettings:stagerootfolder", "/x", func(t *testing.T, s Settings) { assert.Equal(t, "/x", s.StageRootFolder) }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			base := DefaultSettings()
			got, err := base.WithOverride(tt.key, tt.value)
			require.NoError(t, err)
			tt.check(t, got)
			assert.Equal(t, DefaultSettings(), base, "receiver must not change")
		})
	}
}

func TestWithOverride_Errors(t *testing.T) {
	base := DefaultSettings()

	_, err := base.WithOverride("AppSettings:Unknown", "1")
	assert.Error(t, err)

	got, err := base.WithOverride(KeyStageVersions, "four")
	assert.Error(t, err)
	assert.Equal(t, base, got)

	_, err = base.WithOverride(KeyLogEnabled, "maybe")
	assert.Error(t, err)
}

func TestWithOverrides(t *testing.T) {
	got, err := DefaultSettings().WithOverrides(map[string]string{
		KeyStageVersions: "2",
		KeyLogEnabled:    "true",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.StageVersions)
	assert.True(t, got.LogEnabled)
}
