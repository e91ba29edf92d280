package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewBot_RequiresCommandTable(t *testing.T) {
	_, err := NewBot(Config{}, nil, nil, RealClock{}, &MockTelegramClient{})
	assert.Error(t, err)
}

func TestNewBot_DefaultsToStdEventLogger(t *testing.T) {
	commands, err := defaultCommands()
	require.NoError(t, err)

	b, err := NewBot(Config{}, commands, nil, RealClock{}, &MockTelegramClient{})
	require.NoError(t, err)
	assert.IsType(t, stdEventLogger{}, b.events)
}

func TestBotStart(t *testing.T) {
	commands, err := defaultCommands()
	require.NoError(t, err)

	ctx := context.Background()
	tgClient := &MockTelegramClient{}
	tgClient.On("GetMe", ctx).Return(&models.User{ID: 1, IsBot: true, Username: "command_bot"}, nil).Once()
	tgClient.On("SetMyCommands", ctx, &bot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "Start the bot"},
			{Command: "help", Description: "Show this help message"},
		},
	}).Return(true, nil).Once()
	tgClient.On("Start", ctx).Return().Once()

	b, err := NewBot(Config{RegisterCommands: true}, commands, &recordingEventLogger{}, RealClock{}, tgClient)
	require.NoError(t, err)

	b.Start(ctx)

	tgClient.AssertExpectations(t)
	assert.Equal(t, "command_bot", b.username)
}

func TestBotStart_WithoutCommandRegistration(t *testing.T) {
	commands, err := defaultCommands()
	require.NoError(t, err)

	ctx := context.Background()
	tgClient := &MockTelegramClient{}
	tgClient.On("GetMe", ctx).Return(&models.User{Username: "command_bot"}, nil).Once()
	tgClient.On("Start", ctx).Return().Once()

	b, err := NewBot(Config{RegisterCommands: false}, commands, &recordingEventLogger{}, RealClock{}, tgClient)
	require.NoError(t, err)

	b.Start(ctx)

	tgClient.AssertExpectations(t)
	tgClient.AssertNotCalled(t, "SetMyCommands", mock.Anything, mock.Anything)
}

func TestBotStart_StartupCallsMayFail(t *testing.T) {
	commands, err := defaultCommands()
	require.NoError(t, err)

	started := false
	tgClient := &MockTelegramClient{
		GetMeFunc: func(ctx context.Context) (*models.User, error) {
			return nil, errors.New("getMe failed")
		},
		SetMyCommandsFunc: func(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error) {
			return false, fmt.Errorf("%w, too many commands", bot.ErrorBadRequest)
		},
		StartFunc: func(ctx context.Context) {
			started = true
		},
	}

	b, err := NewBot(Config{RegisterCommands: true}, commands, &recordingEventLogger{}, RealClock{}, tgClient)
	require.NoError(t, err)

	b.Start(context.Background())

	assert.True(t, started, "polling starts even when start-up calls fail")
	assert.Empty(t, b.username)
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "unauthorized", err: fmt.Errorf("%w, invalid token", bot.ErrorUnauthorized), want: "UNAUTHORIZED"},
		{name: "forbidden", err: fmt.Errorf("%w, bot was blocked", bot.ErrorForbidden), want: "FORBIDDEN"},
		{name: "bad request", err: fmt.Errorf("%w, chat not found", bot.ErrorBadRequest), want: "BAD_REQUEST"},
		{name: "not found", err: fmt.Errorf("%w, method", bot.ErrorNotFound), want: "NOT_FOUND"},
		{name: "conflict", err: fmt.Errorf("%w, other getUpdates", bot.ErrorConflict), want: "CONFLICT"},
		{name: "too many requests", err: &bot.TooManyRequestsError{Message: "slow down", RetryAfter: 3}, want: "TOO_MANY_REQUESTS"},
		{name: "timeout", err: fmt.Errorf("polling: %w", context.DeadlineExceeded), want: "TIMEOUT"},
		{name: "other", err: errors.New("connection reset"), want: "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err))
		})
	}
}

func TestHandlePollingError(t *testing.T) {
	commands, err := defaultCommands()
	require.NoError(t, err)

	events := &recordingEventLogger{}
	b, err := NewBot(Config{}, commands, events, NewMockClock(time.Now()), &MockTelegramClient{})
	require.NoError(t, err)

	pollErr := fmt.Errorf("%w, terminated by other getUpdates request", bot.ErrorConflict)
	b.handlePollingError(pollErr)
	b.handlePollingError(nil)

	require.Len(t, events.codes, 1)
	assert.Equal(t, "CONFLICT", events.codes[0])
	assert.ErrorIs(t, events.errs[0], bot.ErrorConflict)
}

func TestMultiEventLogger(t *testing.T) {
	first, second := &recordingEventLogger{}, &recordingEventLogger{}
	events := multiEventLogger{first, second}

	update := textUpdate(1, "hi")
	events.LogUpdate(update)
	events.LogError("UNKNOWN", errors.New("boom"))

	for _, r := range []*recordingEventLogger{first, second} {
		assert.Len(t, r.updates, 1)
		assert.Equal(t, []string{"UNKNOWN"}, r.codes)
	}
}

func TestStdEventLogger(t *testing.T) {
	// Writes to the package loggers; it only has to cope with any update.
	assert.NotPanics(t, func() {
		stdEventLogger{}.LogUpdate(textUpdate(1, "hello"))
		stdEventLogger{}.LogUpdate(&models.Update{ID: 2})
		stdEventLogger{}.LogError("UNKNOWN", errors.New("boom"))
	})
}
