package models

import (
	"time"

	"gorm.io/gorm"
)

// SonificationRecord stores one completed pipeline run for the history
// endpoint. The composition itself is not persisted, only its fingerprint
// and headline numbers; replaying is cheap because the pipeline is
// deterministic.
type SonificationRecord struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	RequestID   string         `gorm:"index" json:"request_id"`
	UserID      string         `gorm:"index" json:"user_id"`
	Kind        string         `gorm:"not null;index" json:"kind"` // "code", "diff", "versions"
	Style       string         `gorm:"not null" json:"style"`
	Language    string         `json:"language"`
	ContentHash string         `gorm:"index" json:"content_hash"`
	SourceBytes int            `json:"source_bytes"`
	Complexity  int            `json:"complexity"`
	Tempo       int            `json:"tempo"`
	NoteCount   int            `json:"note_count"`
	Title       string         `json:"title"`
}
