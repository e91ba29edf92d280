package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type Bot struct {
	tgBot    TelegramClient
	commands *CommandTable
	events   EventLogger
	pacer    *replyPacer
	config   Config
	username string // learned from GetMe in Start
}

func NewBot(config Config, commands *CommandTable, events EventLogger, clock Clock, tgClient TelegramClient) (*Bot, error) {
	if commands == nil {
		return nil, errors.New("command table is required")
	}
	if events == nil {
		events = stdEventLogger{}
	}

	return &Bot{
		tgBot:    tgClient,
		commands: commands,
		events:   events,
		pacer:    newReplyPacer(config.ReplyRatePerMinute, config.ReplyBurst, clock),
		config:   config,
	}, nil
}

// Start prepares the bot and blocks in long polling until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	me, err := b.tgBot.GetMe(ctx)
	if err != nil {
		ErrorLogger.Printf("Error fetching bot identity, @mentions will not be checked: %v", err)
	} else if me != nil {
		b.username = me.Username
		InfoLogger.Printf("Authorized as @%s", b.username)
	}

	if b.config.RegisterCommands {
		if err := b.registerCommands(ctx); err != nil {
			ErrorLogger.Printf("Error registering bot commands: %v", err)
		}
	}

	b.tgBot.Start(ctx)
}

// registerCommands publishes the visible commands as the Telegram command menu.
func (b *Bot) registerCommands(ctx context.Context) error {
	commands := b.commands.BotCommands()
	if len(commands) == 0 {
		return nil
	}

	if _, err := b.tgBot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		return fmt.Errorf("set my commands: %w", err)
	}
	InfoLogger.Printf("Registered %d bot commands", len(commands))
	return nil
}

func initTelegramBot(token string, workers int, handleUpdate bot.HandlerFunc, handleError bot.ErrorsHandler) (TelegramClient, error) {
	opts := []bot.Option{
		bot.WithDefaultHandler(handleUpdate),
		bot.WithErrorsHandler(handleError),
		bot.WithWorkers(workers),
	}

	tgBot, err := bot.New(token, opts...)
	if err != nil {
		return nil, err
	}

	return tgBot, nil
}

func (b *Bot) sendResponse(ctx context.Context, chatID int64, text string, businessConnectionID string) error {
	if !b.pacer.allow(chatID) {
		InfoLogger.Printf("Reply to chat %d dropped: per-chat send limit reached", chatID)
		return nil
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}

	if businessConnectionID != "" {
		params.BusinessConnectionID = businessConnectionID
	}

	_, err := b.tgBot.SendMessage(ctx, params)
	if err != nil {
		ErrorLogger.Printf("Error sending message to chat %d with BusinessConnectionID %s: %v",
			chatID, businessConnectionID, err)
		return err
	}
	return nil
}

// handlePollingError is the transport's error callback. It only logs.
func (b *Bot) handlePollingError(err error) {
	if err == nil {
		return
	}
	b.events.LogError(errorCode(err), err)
}

// errorCode maps a Telegram API error to a short, stable code for logs.
func errorCode(err error) string {
	var tooMany *bot.TooManyRequestsError
	switch {
	case errors.As(err, &tooMany), errors.Is(err, bot.ErrorTooManyRequests):
		return "TOO_MANY_REQUESTS"
	case errors.Is(err, bot.ErrorUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, bot.ErrorForbidden):
		return "FORBIDDEN"
	case errors.Is(err, bot.ErrorBadRequest):
		return "BAD_REQUEST"
	case errors.Is(err, bot.ErrorNotFound):
		return "NOT_FOUND"
	case errors.Is(err, bot.ErrorConflict):
		return "CONFLICT"
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// inboundMessage returns the message carried by update, if any.
func inboundMessage(update *models.Update) *models.Message {
	if update == nil {
		return nil
	}
	if update.Message != nil {
		return update.Message
	}
	return update.BusinessMessage
}
