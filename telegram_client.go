// telegram_client.go
package main

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// TelegramClient is the part of the Telegram bot API the bot talks to.
// *bot.Bot satisfies it.
type TelegramClient interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
	GetMe(ctx context.Context) (*models.User, error)
	Start(ctx context.Context)
}

var _ TelegramClient = (*bot.Bot)(nil)
