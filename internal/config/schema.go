// Package config provides configuration loading and validation for purgetemp.
// It supports TOML and YAML configuration files (chosen by extension) with
// environment variable expansion, default values and validation.
//
// Configuration structure:
//   - [app_settings]: stage naming, timing, administrative folders, logging switches
//   - [logging]: application log level, format and fallback output
//   - [notify]: purge notifications (log or Telegram)
//   - [schedule]: cron expression for the schedule command
//
// Environment variables:
// String values can reference environment variables using ${VAR} or ${VAR:default}.
// For example: token = "${PURGETEMP_TELEGRAM_TOKEN}"
//
// Single settings can be overridden with "AppSettings:<Field>" keys, see Settings.WithOverride.
package config

// Config represents the main application configuration.
type Config struct {
	AppSettings Settings       `toml:"app_settings" yaml:"app_settings"`
	Logging     LoggingConfig  `toml:"logging" yaml:"logging"`
	Notify      NotifyConfig   `toml:"notify" yaml:"notify"`
	Schedule    ScheduleConfig `toml:"schedule" yaml:"schedule"`
}

// Settings - снимок настроек одного запуска purge.
// Значение неизменяемо во время ротации; WithOverride возвращает копию.
type Settings struct {
	StageVersions            int    `toml:"stage_versions" yaml:"stage_versions"`
	StageNamePrefix          string `toml:"stage_name_prefix" yaml:"stage_name_prefix"`
	StageVersionDelimiter    string `toml:"stage_version_delimiter" yaml:"stage_version_delimiter"`
	AppendNumberOnFirstStage bool   `toml:"append_number_on_first_stage" yaml:"append_number_on_first_stage"`
	StageLastNameSuffix      string `toml:"stage_last_name_suffix" yaml:"stage_last_name_suffix"`
	StageRootFolder          string `toml:"stage_root_folder" yaml:"stage_root_folder"`

	StagingDelaySeconds  int64  `toml:"staging_delay_seconds" yaml:"staging_delay_seconds"`
	SkipTokenFile        string `toml:"skip_token_file" yaml:"skip_token_file"`
	StagingTimestampFile string `toml:"staging_timestamp_file" yaml:"staging_timestamp_file"`
	TimeStampFormat      string `toml:"timestamp_format" yaml:"timestamp_format"`

	// FileLogAmountThreshold: -1 = логировать все файлы, 0 = ни одного
	FileLogAmountThreshold  int  `toml:"file_log_amount_threshold" yaml:"file_log_amount_threshold"`
	RemoveEmptyStageFolders bool `toml:"remove_empty_stage_folders" yaml:"remove_empty_stage_folders"`

	ConfigFolder  string `toml:"config_folder" yaml:"config_folder"`
	TempFolder    string `toml:"temp_folder" yaml:"temp_folder"`
	LoggingFolder string `toml:"logging_folder" yaml:"logging_folder"`

	LogEnabled          bool  `toml:"log_enabled" yaml:"log_enabled"`
	LogAllFiles         bool  `toml:"log_all_files" yaml:"log_all_files"`
	LogRotationBytes    int64 `toml:"log_rotation_bytes" yaml:"log_rotation_bytes"`
	LogRotationVersions int   `toml:"log_rotation_versions" yaml:"log_rotation_versions"`

	ShowPurgeMessage     bool   `toml:"show_purge_message" yaml:"show_purge_message"`
	PurgeMessageLogoFile string `toml:"purge_message_logo_file" yaml:"purge_message_logo_file"`

	// ProtectedPaths - дополнительные wildcard-шаблоны защищённых путей
	ProtectedPaths []string `toml:"protected_paths" yaml:"protected_paths"`
	MetricsFile    string   `toml:"metrics_file" yaml:"metrics_file"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// Output используется, когда app_settings.log_enabled = false
	Output string `toml:"output" yaml:"output"`
}

// NotifyConfig представляет конфигурацию уведомлений о purge
type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram" yaml:"telegram"`
}

// TelegramConfig представляет конфигурацию Telegram уведомлений
type TelegramConfig struct {
	Enabled            bool   `toml:"enabled" yaml:"enabled"`
	Token              string `toml:"token" yaml:"token"`
	ChatID             int64  `toml:"chat_id" yaml:"chat_id"`
	SendTimeoutSeconds int    `toml:"send_timeout_seconds" yaml:"send_timeout_seconds"`
	MaxAttempts        int    `toml:"max_attempts" yaml:"max_attempts"`
}

// ScheduleConfig представляет конфигурацию периодического запуска
type ScheduleConfig struct {
	Cron string `toml:"cron" yaml:"cron"`
}
