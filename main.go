package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Initialize custom loggers
	initLoggers()

	InfoLogger.Println("Starting Telegram Command Bot")

	config, err := loadConfig(".env")
	if err != nil {
		ErrorLogger.Fatalf("Error loading configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	clock := RealClock{}

	var events EventLogger = stdEventLogger{}
	if config.AuditDBPath != "" {
		db, err := initDB(config.AuditDBPath)
		if err != nil {
			ErrorLogger.Fatalf("Error initializing audit database: %v", err)
		}
		events = multiEventLogger{events, newAuditEventLogger(db, clock)}
		InfoLogger.Printf("Auditing inbound messages to %s", config.AuditDBPath)
	}

	commands, err := defaultCommands()
	if err != nil {
		ErrorLogger.Fatalf("Error building command table: %v", err)
	}

	// Create Bot instance without TelegramClient initially
	b, err := NewBot(config, commands, events, clock, nil)
	if err != nil {
		ErrorLogger.Fatalf("Error creating bot: %v", err)
	}

	// Initialize TelegramClient with the bot's callbacks
	tgClient, err := initTelegramBot(config.TelegramToken, config.Workers, b.handleUpdate, b.handlePollingError)
	if err != nil {
		ErrorLogger.Fatalf("Error initializing Telegram client: %v", err)
	}
	b.tgBot = tgClient

	if config.HealthAddr != "" {
		health := newHealthServer(config.HealthAddr, clock)
		go func() {
			if err := health.Run(ctx); err != nil {
				ErrorLogger.Printf("Health endpoint stopped: %v", err)
			}
		}()
		InfoLogger.Printf("Health endpoint listening on %s", config.HealthAddr)
	}

	InfoLogger.Println("Starting long polling...")
	b.Start(ctx)

	InfoLogger.Println("Bot has stopped. Exiting application.")
}
