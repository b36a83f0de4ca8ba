// Package telegram is a chat front end for slip analysis and odds tools.
package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/AC350144/ClutchCall/internal/retry"
	"github.com/AC350144/ClutchCall/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Analyzer runs a slip analysis
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) models.AnalyzeResponse
}

// sender is the part of the Bot API used for replies
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers slip and odds commands
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   sender
	analyzer Analyzer
	retry    *retry.Policy
	timeout  time.Duration
	log      logrus.FieldLogger
}

// NewBot connects to the Bot API. timeout bounds each analysis.
func NewBot(token string, analyzer Analyzer, maxRetries int, retryDelay, timeout time.Duration, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Bot{
		api:      api,
		sender:   api,
		analyzer: analyzer,
		retry:    retry.NewPolicy(maxRetries, retryDelay),
		timeout:  timeout,
		log:      log.WithField("bot", api.Self.UserName),
	}, nil
}

// Listen polls for updates and answers commands until ctx is cancelled
func (b *Bot) Listen(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.log.Info("listening for commands")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil && update.Message.IsCommand() {
				b.handleCommand(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	text := b.reply(ctx, msg.Command(), msg.CommandArguments())

	if err := b.send(ctx, msg.Chat.ID, text); err != nil {
		b.log.WithError(err).WithFields(logrus.Fields{
			"chat_id": msg.Chat.ID,
			"command": msg.Command(),
		}).Warn("reply failed")
	}
}

// send delivers a MarkdownV2 message, retrying on failure
func (b *Bot) send(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	return b.retry.Do(ctx, func() error {
		_, err := b.sender.Send(msg)
		return err
	})
}
