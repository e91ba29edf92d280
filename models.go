package main

import (
	"time"

	"gorm.io/gorm"
)

// InboundRecord is one received update as written to the audit log.
type InboundRecord struct {
	gorm.Model
	EventID              string `gorm:"uniqueIndex"`
	UpdateID             int64  `gorm:"index"`
	ChatID               int64  `gorm:"index"`
	UserID               int64  `gorm:"index"`
	Username             string
	BusinessConnectionID string
	Text                 string    `gorm:"type:text"`
	Payload              string    `gorm:"type:text"` // raw update JSON
	ReceivedAt           time.Time `gorm:"index"`
}

// ErrorRecord is one transport error as written to the audit log.
type ErrorRecord struct {
	gorm.Model
	EventID    string    `gorm:"uniqueIndex"`
	Code       string    `gorm:"index"`
	Message    string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"index"`
}
