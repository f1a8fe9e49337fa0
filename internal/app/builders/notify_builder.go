package builders

import (
	"time"

	"github.com/aatumaykin/purgetemp/internal/config"
	"github.com/aatumaykin/purgetemp/internal/constants"
	"github.com/aatumaykin/purgetemp/internal/logger"
	"github.com/aatumaykin/purgetemp/internal/notify"
	"github.com/aatumaykin/purgetemp/internal/pathutil"
)

type NotifyBuilder struct {
	config   *config.Config
	logger   *logger.Logger
	resolver pathutil.Resolver
	bot      notify.Bot
}

func NewNotifyBuilder(cfg *config.Config, log *logger.Logger, resolver pathutil.Resolver) *NotifyBuilder {
	return &NotifyBuilder{config: cfg, logger: log, resolver: resolver}
}

// WithBot replaces the Telegram client created from the token.
func (b *NotifyBuilder) WithBot(bot notify.Bot) *NotifyBuilder {
	b.bot = bot
	return b
}

// Build returns the log notifier, plus Telegram when it is enabled.
// The executor gates the result with show_purge_message.
func (b *NotifyBuilder) Build() (notify.Notifier, error) {
	notifiers := notify.Multi{notify.Log{Logger: b.logger}}

	tg := b.config.Notify.Telegram
	if !tg.Enabled {
		return notifiers, nil
	}

	cfg := notify.TelegramConfig{
		ChatID:       tg.ChatID,
		Timeout:      time.Duration(tg.SendTimeoutSeconds) * time.Second,
		MaxAttempts:  tg.MaxAttempts,
		LogoFile:     b.resolver.Resolve(b.config.AppSettings.PurgeMessageLogoFile),
		ResourcesDir: b.resolver.Resolve(constants.ResourcesFolder),
	}

	var telegram *notify.Telegram
	if b.bot != nil {
		telegram = notify.NewTelegramWithBot(b.bot, cfg, b.logger)
	} else {
		var err error
		telegram, err = notify.NewTelegram(tg.Token, cfg, b.logger)
		if err != nil {
			return nil, err
		}
	}
	b.logger.Info("telegram notifications enabled", logger.Field{Key: "chat_id", Value: tg.ChatID})
	return append(notifiers, telegram), nil
}
