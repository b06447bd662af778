package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/marvin/internal/config"
	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/internal/service/dispatch"
	"github.com/sandevgo/marvin/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot        *tele.Bot
	cfg        *config.TelegramConfig
	dispatcher *dispatch.Dispatcher
	executor   core.Executor
	sender     *sender
	ownerID    int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	dispatcher *dispatch.Dispatcher,
	executor core.Executor,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		cfg:        cfg,
		dispatcher: dispatcher,
		executor:   executor,
		sender:     newSender(b),
		ownerID:    cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// Notify delivers scheduled alarm and reminder messages to the owner chat.
func (b *Bot) Notify(text string) {
	_, _ = b.bot.Send(&tele.User{ID: b.ownerID}, text)
}

func (b *Bot) handleMessage(c tele.Context) error {
	// Create a context for this request
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	action := b.dispatcher.ProcessTurn(ctx, c.Text())

	reply, err := b.executor.Execute(ctx, action)
	if err != nil {
		logger.Error().Err(err).Msg("turn execution failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	if reply == "" {
		reply = action.Text
	}
	if reply == "" {
		return nil
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}
