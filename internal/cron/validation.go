package cron

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

func newParser() cron.Parser {
	return cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// ValidateExpression reports whether expression can be scheduled.
func ValidateExpression(expression string) error {
	return validateCronExpression(expression, newParser())
}

// validateCronExpression validates a cron expression using the cron parser
func validateCronExpression(expression string, parser cron.Parser) error {
	if strings.TrimSpace(expression) == "" {
		return fmt.Errorf("invalid cron expression: empty schedule")
	}
	if _, err := parser.Parse(expression); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
