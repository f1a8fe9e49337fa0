package notify

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mymmrac/telego"

	"github.com/aatumaykin/purgetemp/internal/logger"
	"github.com/aatumaykin/purgetemp/internal/retry"
)

// Bot is the part of the Telegram API used for notifications.
type Bot interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
	SendPhoto(ctx context.Context, params *telego.SendPhotoParams) (*telego.Message, error)
}

// TelegramConfig configures the Telegram notifier.
type TelegramConfig struct {
	ChatID       int64
	Timeout      time.Duration
	MaxAttempts  int
	LogoFile     string
	ResourcesDir string
}

// Telegram sends notifications to a chat, with the status icon as photo
// when one is available.
type Telegram struct {
	bot   Bot
	cfg   TelegramConfig
	log   *logger.Logger
	retry retry.Config
}

// NewTelegram creates a notifier from a bot token.
func NewTelegram(token string, cfg TelegramConfig, log *logger.Logger) (*Telegram, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	return NewTelegramWithBot(bot, cfg, log), nil
}

// NewTelegramWithBot creates a notifier around an existing bot client.
func NewTelegramWithBot(bot Bot, cfg TelegramConfig, log *logger.Logger) *Telegram {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Telegram{
		bot: bot,
		cfg: cfg,
		log: log,
		retry: retry.Config{
			MaxAttempts: cfg.MaxAttempts,
			Logger:      log,
		},
	}
}

func (t *Telegram) Notify(title, message string, severity Severity) {
	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.Timeout)
	defer cancel()

	text := fmt.Sprintf("%s\n%s", title, message)
	icon := ResolveIcon(t.cfg.LogoFile, t.cfg.ResourcesDir, severity)

	err := retry.Do(ctx, func() error {
		return t.send(ctx, text, icon)
	}, t.retry)
	if err != nil {
		t.log.Warn("telegram notification failed",
			logger.Field{Key: "title", Value: title},
			logger.Field{Key: "error", Value: err})
	}
}

func (t *Telegram) send(ctx context.Context, text, icon string) error {
	file, err := os.Open(icon)
	if err != nil {
		// no icon available, plain text is enough
		_, err = t.bot.SendMessage(ctx, &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: t.cfg.ChatID},
			Text:   text,
		})
		return err
	}
	defer file.Close()

	_, err = t.bot.SendPhoto(ctx, &telego.SendPhotoParams{
		ChatID:  telego.ChatID{ID: t.cfg.ChatID},
		Photo:   telego.InputFile{File: file},
		Caption: text,
	})
	return err
}
