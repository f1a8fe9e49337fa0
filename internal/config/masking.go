package config

import (
	"strings"
)

// maskSecret маскирует секрет, оставляя только первые 4 и последние 4 символа
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	// Если секрет слишком короткий, маскируем полностью
	if len(secret) < 8 {
		return "***"
	}

	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

// maskTelegramToken маскирует Telegram токен, оставляя bot ID видимым
func maskTelegramToken(token string) string {
	botID, tokenPart, ok := splitTelegramToken(token)
	if !ok {
		return maskSecret(token)
	}
	return botID + ":" + maskSecret(tokenPart)
}

func splitTelegramToken(token string) (string, string, bool) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Masked возвращает копию конфигурации со скрытыми секретами (для `config show`).
func (c *Config) Masked() *Config {
	masked := *c
	masked.AppSettings.ProtectedPaths = append([]string(nil), c.AppSettings.ProtectedPaths...)
	masked.Notify.Telegram.Token = maskTelegramToken(c.Notify.Telegram.Token)
	return &masked
}
