// telegram_client_mock.go
package main

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/mock"
)

// MockTelegramClient is a mock implementation of TelegramClient for testing.
// A non-nil func field takes precedence over the recorded expectations.
type MockTelegramClient struct {
	mock.Mock
	SendMessageFunc   func(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SetMyCommandsFunc func(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
	GetMeFunc         func(ctx context.Context) (*models.User, error)
	StartFunc         func(ctx context.Context)
}

// SendMessage mocks sending a message.
func (m *MockTelegramClient) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	if msg, ok := args.Get(0).(*models.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

// SetMyCommands mocks publishing the command menu.
func (m *MockTelegramClient) SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error) {
	if m.SetMyCommandsFunc != nil {
		return m.SetMyCommandsFunc(ctx, params)
	}
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

// GetMe mocks fetching the bot's own user.
func (m *MockTelegramClient) GetMe(ctx context.Context) (*models.User, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc(ctx)
	}
	args := m.Called(ctx)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Start mocks starting the Telegram client.
func (m *MockTelegramClient) Start(ctx context.Context) {
	if m.StartFunc != nil {
		m.StartFunc(ctx)
		return
	}
	m.Called(ctx)
}
