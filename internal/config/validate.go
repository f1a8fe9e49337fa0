package config

import "fmt"

func validateTelegramToken(token string) error {
	botID, botToken, ok := splitTelegramToken(token)
	if !ok {
		return fmt.Errorf("notify.telegram.token has invalid format (expected format: <bot_id>:<token>, got: %s)", maskSecret(token))
	}

	if len(botID) < 3 || len(botID) > 15 {
		return fmt.Errorf("notify.telegram.token has invalid bot ID length (expected 3-15 digits, got %d digits)", len(botID))
	}

	// Check that bot ID contains only digits
	for _, r := range botID {
		if r < '0' || r > '9' {
			return fmt.Errorf("notify.telegram.token has invalid bot ID (expected digits only, got: %s)", botID)
		}
	}

	if len(botToken) < 10 || len(botToken) > 50 {
		return fmt.Errorf("notify.telegram.token has invalid token length (expected 10-50 characters, got %d)", len(botToken))
	}

	return nil
}
