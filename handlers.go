package main

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleUpdate is the transport's default handler. The *bot.Bot argument is
// unused; replies go through the injected TelegramClient.
func (b *Bot) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	message := inboundMessage(update)
	if message == nil {
		// No message to process
		return
	}

	// The whole update is logged, not just the fields used below.
	b.events.LogUpdate(update)

	// Stickers, photos and other non-text messages stop here.
	if !ValidateInput(message.Text, InputText) {
		return
	}

	// Extract businessConnectionID if available
	var businessConnectionID string
	if update.BusinessConnection != nil {
		businessConnectionID = update.BusinessConnection.ID
	} else if message.BusinessConnectionID != "" {
		businessConnectionID = message.BusinessConnectionID
	}

	b.dispatch(ctx, message, businessConnectionID)
}

// dispatch runs the command named in message, if any, and sends its reply.
// Plain text and unknown commands are ignored without a reply or a log line.
func (b *Bot) dispatch(ctx context.Context, message *models.Message, businessConnectionID string) {
	parsed, ok := parseCommand(message.Text)
	if !ok {
		return
	}

	// "/start@otherbot" in a group is addressed to someone else.
	if parsed.Mention != "" && b.username != "" && !strings.EqualFold(parsed.Mention, b.username) {
		return
	}

	cmd, ok := b.commands.Lookup(parsed.Name)
	if !ok {
		return
	}

	chatID := message.Chat.ID
	reply := b.runHandler(cmd, &CommandContext{
		ChatID:  chatID,
		Text:    message.Text,
		Command: parsed.Name,
		Args:    parsed.Args,
		Sender:  message.From,
	})
	if reply == "" {
		return
	}

	b.sendResponse(ctx, chatID, reply, businessConnectionID)
}

// runHandler calls the command handler, turning a panic into an empty reply.
func (b *Bot) runHandler(cmd Command, c *CommandContext) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			ErrorLogger.Printf("Panic in /%s handler for chat %d: %v\n%s", cmd.Name, c.ChatID, r, debug.Stack())
			reply = ""
		}
	}()
	return cmd.Handler(c)
}
