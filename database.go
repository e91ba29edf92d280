package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func initDB(path string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&InboundRecord{}, &ErrorRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return db, nil
}

// auditEventLogger appends every event to the audit database.
// Nothing in the bot reads these rows back.
type auditEventLogger struct {
	db    *gorm.DB
	clock Clock
}

func newAuditEventLogger(db *gorm.DB, clock Clock) *auditEventLogger {
	return &auditEventLogger{db: db, clock: clock}
}

func (a *auditEventLogger) LogUpdate(update *models.Update) {
	payload, err := json.Marshal(update)
	if err != nil {
		ErrorLogger.Printf("Error encoding update %d for audit: %v", update.ID, err)
		return
	}

	record := InboundRecord{
		EventID:    uuid.New().String(),
		UpdateID:   update.ID,
		Payload:    string(payload),
		ReceivedAt: a.clock.Now(),
	}

	if message := inboundMessage(update); message != nil {
		record.ChatID = message.Chat.ID
		record.Text = message.Text
		record.BusinessConnectionID = message.BusinessConnectionID
		if message.From != nil {
			record.UserID = message.From.ID
			record.Username = message.From.Username
		}
	}

	if err := a.db.Create(&record).Error; err != nil {
		ErrorLogger.Printf("Error storing audit record for update %d: %v", update.ID, err)
	}
}

func (a *auditEventLogger) LogError(code string, err error) {
	record := ErrorRecord{
		EventID:    uuid.New().String(),
		Code:       code,
		Message:    err.Error(),
		OccurredAt: a.clock.Now(),
	}

	if dbErr := a.db.Create(&record).Error; dbErr != nil {
		ErrorLogger.Printf("Error storing audit error record: %v", dbErr)
	}
}
