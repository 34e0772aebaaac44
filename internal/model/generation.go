// internal/model/generation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// GenerationSession records one text-to-proposals invocation. A session is
// finalized at most once: AcceptedCount stays NULL until the accept step sets
// it, and the conditional update that sets it is the exactly-once guard.
type GenerationSession struct {
	GenerationID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"generation_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	SourceText     string    `gorm:"not null" json:"-"`
	ModelUsed      string    `gorm:"not null" json:"model_used"`
	GeneratedCount int       `gorm:"not null" json:"generated_count"`
	AcceptedCount  *int      `json:"accepted_count"` // nil until finalized
	CreatedAt      time.Time `json:"created_at"`
}

func (GenerationSession) TableName() string {
	return "generation_sessions"
}

// Finalized reports whether the session has already been accepted.
func (s *GenerationSession) Finalized() bool {
	return s.AcceptedCount != nil
}

// FlashcardProposal is an AI-suggested front/back pair. It is transient: it
// only becomes a Flashcard row if the user accepts it.
type FlashcardProposal struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type CreateGenerationRequest struct {
	SourceText string `json:"source_text" validate:"required,min=1000,max=10000"`
}

type GenerationResponse struct {
	GenerationID        uuid.UUID           `json:"generation_id"`
	FlashcardsProposals []FlashcardProposal `json:"flashcards_proposals"`
	GeneratedCount      int                 `json:"generated_count"`
}

// AcceptFlashcard is one reviewed (possibly edited) proposal selected for
// persistence.
type AcceptFlashcard struct {
	Front string `json:"front" validate:"required,min=1,max=500"`
	Back  string `json:"back" validate:"required,min=1,max=2000"`
}

type AcceptGenerationRequest struct {
	Flashcards []AcceptFlashcard `json:"flashcards" validate:"required,min=1,dive"`
}

type AcceptGenerationResponse struct {
	Flashcards    []*Flashcard `json:"flashcards"`
	AcceptedCount int          `json:"accepted_count"`
}
