// internal/model/flashcard.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlashcardSource tells whether a card was typed in by hand or accepted from
// an AI generation session.
type FlashcardSource string

const (
	SourceManual      FlashcardSource = "manual"
	SourceAIGenerated FlashcardSource = "ai_generated"
)

// Flashcard is a persisted front/back pair owned by exactly one user. Every
// read and write must filter by UserID; ownership is a security invariant,
// not a convenience filter.
type Flashcard struct {
	FlashcardID  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Front        string          `gorm:"not null" json:"front"`
	Back         string          `gorm:"not null" json:"back"`
	Source       FlashcardSource `gorm:"not null" json:"source"`
	GenerationID *uuid.UUID      `gorm:"type:uuid;index" json:"generation_id"` // nil for manual cards
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}

type CreateFlashcardRequest struct {
	Front string `json:"front" validate:"required,min=1,max=500"`
	Back  string `json:"back" validate:"required,min=1,max=2000"`
}

type UpdateFlashcardRequest struct {
	Front string `json:"front" validate:"required,min=1,max=500"`
	Back  string `json:"back" validate:"required,min=1,max=2000"`
}

// ListFlashcardsQuery holds the parsed query string of GET /flashcards.
type ListFlashcardsQuery struct {
	Page   int
	Limit  int
	Source string // "manual", "ai_generated", or empty for both
	Sort   string // created_at | updated_at
	Order  string // asc | desc
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type FlashcardList struct {
	Data       []*Flashcard `json:"data"`
	Pagination Pagination   `json:"pagination"`
}
