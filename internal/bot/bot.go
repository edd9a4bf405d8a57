package bot

import (
	"context"

	"todolist-be/internal/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the long-polling transport around Handler.
type Bot struct {
	api         *tgbotapi.BotAPI
	handler     *Handler
	log         logger.ILogger
	pollTimeout int
}

func New(token string, pollTimeout int, handler *Handler, log logger.ILogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		handler:     handler,
		log:         log,
		pollTimeout: pollTimeout,
	}, nil
}

// Run polls for updates until ctx is cancelled. Handler errors never kill the
// loop: one bad command must not take the bot offline.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("bot", "starting long polling", map[string]interface{}{
		"username": b.api.Self.UserName,
	})

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	reply := b.handler.Handle(ctx, update.Message.From.ID, update.Message.Text)
	if reply == "" {
		return
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("bot", "failed to send reply", map[string]interface{}{
			"chat_id": update.Message.Chat.ID,
			"error":   err.Error(),
		})
	}
}
