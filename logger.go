package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/go-telegram/bot/models"
)

// For log management, use journalctl commands:
//   - View logs: journalctl -u telegram-command-bot
//   - Follow logs: journalctl -u telegram-command-bot -f
//   - View errors: journalctl -u telegram-command-bot -p err

// Initialize loggers for informational and error messages.
var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
)

// initLoggers sets up separate loggers for stdout and stderr.
func initLoggers() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// EventLogger receives every inbound update and every transport error.
// Implementations must not fail the caller; problems are reported and dropped.
type EventLogger interface {
	LogUpdate(update *models.Update)
	LogError(code string, err error)
}

// stdEventLogger writes events to InfoLogger and ErrorLogger.
type stdEventLogger struct{}

func (stdEventLogger) LogUpdate(update *models.Update) {
	payload, err := json.Marshal(update)
	if err != nil {
		ErrorLogger.Printf("Error encoding update %d: %v", update.ID, err)
		return
	}
	InfoLogger.Printf("Received update: %s", payload)
}

func (stdEventLogger) LogError(code string, err error) {
	ErrorLogger.Printf("Polling error [%s]: %v", code, err)
}

// multiEventLogger fans events out to several sinks.
type multiEventLogger []EventLogger

func (m multiEventLogger) LogUpdate(update *models.Update) {
	for _, l := range m {
		l.LogUpdate(update)
	}
}

func (m multiEventLogger) LogError(code string, err error) {
	for _, l := range m {
		l.LogError(code, err)
	}
}
