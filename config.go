package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

// keyringTokenAccount is the keychain account holding the bot token.
const keyringTokenAccount = "telegram_token"

var ErrMissingToken = errors.New("telegram bot token is not configured")

type Config struct {
	TelegramToken      string `env:"TELEGRAM_BOT_TOKEN"`
	Workers            int    `env:"BOT_WORKERS" envDefault:"4"`
	ReplyRatePerMinute int    `env:"REPLY_RATE_PER_MINUTE" envDefault:"0"`
	ReplyBurst         int    `env:"REPLY_BURST" envDefault:"5"`
	RegisterCommands   bool   `env:"REGISTER_COMMANDS" envDefault:"true"`
	AuditDBPath        string `env:"AUDIT_DB_PATH"`
	HealthAddr         string `env:"HEALTH_ADDR"`
	KeyringService     string `env:"KEYRING_SERVICE" envDefault:"telegram-command-bot"`
}

// loadConfig reads envFile (if present) into the process environment, parses
// the configuration from it and resolves the bot token. Values already set in
// the environment take precedence over the file.
func loadConfig(envFile string) (Config, error) {
	var config Config

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("failed to parse environment: %w", err)
	}

	if config.TelegramToken == "" {
		token, err := tokenFromKeyring(config.KeyringService)
		if err != nil {
			return config, err
		}
		config.TelegramToken = token
	}

	if err := config.validate(); err != nil {
		return config, err
	}
	return config, nil
}

// tokenFromKeyring looks the token up in the OS keychain. A missing entry or
// an unavailable keychain both mean no token is configured.
func tokenFromKeyring(service string) (string, error) {
	if service == "" {
		return "", ErrMissingToken
	}

	token, err := keyring.Get(service, keyringTokenAccount)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			InfoLogger.Printf("Keychain lookup for %s failed: %v", service, err)
		}
		return "", ErrMissingToken
	}
	return token, nil
}

func (c Config) validate() error {
	if c.TelegramToken == "" {
		return ErrMissingToken
	}
	if c.Workers < 1 {
		return fmt.Errorf("BOT_WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.ReplyRatePerMinute < 0 {
		return fmt.Errorf("REPLY_RATE_PER_MINUTE must not be negative, got %d", c.ReplyRatePerMinute)
	}
	if c.ReplyBurst < 0 {
		return fmt.Errorf("REPLY_BURST must not be negative, got %d", c.ReplyBurst)
	}
	if c.ReplyRatePerMinute > 0 && c.ReplyBurst == 0 {
		return fmt.Errorf("REPLY_BURST must be at least 1 when REPLY_RATE_PER_MINUTE is set")
	}
	return nil
}
