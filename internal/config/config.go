package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load загружает конфигурацию из TOML или YAML файла.
// Значения из файла накладываются на Default(); отсутствующие ключи сохраняют значения по умолчанию.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".toml", "":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse config file: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s (expected: .toml, .yaml, .yml)", filepath.Ext(path))
	}

	if err := expandEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault загружает конфигурацию, если путь задан, иначе возвращает Default().
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := expandEnvVars(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Validate проверяет валидность секций, не относящихся к ротации.
// Диапазоны настроек purge проверяются при запуске purge.
func (c *Config) Validate() []error {
	var errs []error

	// Проверка logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}
	if c.Logging.Output == "" {
		errs = append(errs, fmt.Errorf("logging.output is required"))
	}

	// Проверка обязательных путей
	for field, value := range map[string]string{
		"app_settings.stage_root_folder":      c.AppSettings.StageRootFolder,
		"app_settings.config_folder":          c.AppSettings.ConfigFolder,
		"app_settings.temp_folder":            c.AppSettings.TempFolder,
		"app_settings.staging_timestamp_file": c.AppSettings.StagingTimestampFile,
		"app_settings.timestamp_format":       c.AppSettings.TimeStampFormat,
	} {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", field))
		}
	}
	if c.AppSettings.LogEnabled && strings.TrimSpace(c.AppSettings.LoggingFolder) == "" {
		errs = append(errs, fmt.Errorf("app_settings.logging_folder is required when log_enabled is true"))
	}

	// Проверка Telegram уведомлений
	if c.Notify.Telegram.Enabled {
		if c.Notify.Telegram.Token == "" {
			errs = append(errs, fmt.Errorf("notify.telegram.token is required when telegram is enabled"))
		} else if err := validateTelegramToken(c.Notify.Telegram.Token); err != nil {
			errs = append(errs, err)
		}
		if c.Notify.Telegram.ChatID == 0 {
			errs = append(errs, fmt.Errorf("notify.telegram.chat_id is required when telegram is enabled"))
		}
		if c.Notify.Telegram.SendTimeoutSeconds < 0 {
			errs = append(errs, fmt.Errorf("notify.telegram.send_timeout_seconds cannot be negative"))
		}
	}

	return errs
}

// expandEnvVars расширяет переменные окружения в конфигурации
func expandEnvVars(c *Config) error {
	s := &c.AppSettings
	for _, field := range []*string{
		&s.StageRootFolder,
		&s.ConfigFolder,
		&s.TempFolder,
		&s.LoggingFolder,
		&s.PurgeMessageLogoFile,
		&c.Logging.Output,
	} {
		*field = expandHome(expandEnv(*field))
	}

	for i, p := range s.ProtectedPaths {
		s.ProtectedPaths[i] = expandHome(expandEnv(p))
	}

	// Telegram Token
	c.Notify.Telegram.Token = expandEnv(c.Notify.Telegram.Token)

	return nil
}

// expandEnv расширяет переменную окружения формата ${VAR:default}
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	rest := s[end+1:]
	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		if val := os.Getenv(parts[0]); val != "" {
			return val + rest
		}
		return parts[1] + rest
	}

	// Без значения по умолчанию
	return os.Getenv(content) + rest
}

// expandHome расширяет ~ в пути
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
