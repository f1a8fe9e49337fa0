package config

import "github.com/aatumaykin/purgetemp/internal/constants"

// DefaultSettings возвращает настройки purge по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		StageVersions:            4,
		StageNamePrefix:          constants.DefaultStageNamePrefix,
		StageVersionDelimiter:    constants.DefaultStageVersionDelimiter,
		AppendNumberOnFirstStage: true,
		StageLastNameSuffix:      constants.DefaultStageLastNameSuffix,
		StageRootFolder:          "./purge-temp",
		StagingDelaySeconds:      21600,
		SkipTokenFile:            "SKIP.txt",
		StagingTimestampFile:     "last-purge.txt",
		TimeStampFormat:          "yyyy-MM-dd HH:mm:ss",
		FileLogAmountThreshold:   1000,
		ConfigFolder:             "./config",
		TempFolder:               "./temp",
		LoggingFolder:            "./log",
		LogRotationBytes:         10 << 20,
		LogRotationVersions:      10,
		MetricsFile:              "purgetemp.prom",
	}
}

// Default возвращает полную конфигурацию по умолчанию.
// Файлы конфигурации декодируются поверх неё.
func Default() *Config {
	return &Config{
		AppSettings: DefaultSettings(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Notify: NotifyConfig{
			Telegram: TelegramConfig{
				SendTimeoutSeconds: 10,
				MaxAttempts:        3,
			},
		},
		Schedule: ScheduleConfig{
			Cron: "@every 6h",
		},
	}
}
