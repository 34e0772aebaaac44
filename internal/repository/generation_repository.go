//go:generate mockery --name GenerationRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mateusz-szafarz/10x-cards/internal/middleware"
	"github.com/mateusz-szafarz/10x-cards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerationRepository persists generation sessions. FindByID and Finalize
// are keyed by user id as well as session id so a foreign session behaves
// exactly like a missing one.
type GenerationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *model.GenerationSession) error
	FindByID(ctx context.Context, db *gorm.DB, userID, generationID uuid.UUID) (*model.GenerationSession, error)
	Finalize(ctx context.Context, tx *gorm.DB, userID, generationID uuid.UUID, acceptedCount int) (bool, error)
}

type gormGenerationRepository struct{}

func NewGormGenerationRepository() GenerationRepository {
	return &gormGenerationRepository{}
}

func (r *gormGenerationRepository) Create(ctx context.Context, tx *gorm.DB, session *model.GenerationSession) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(session)
	if result.Error != nil {
		logger.Error("Error creating generation session in DB",
			"error", result.Error,
			"user_id", session.UserID.String(),
		)
		return fmt.Errorf("gormGenerationRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormGenerationRepository) FindByID(ctx context.Context, db *gorm.DB, userID, generationID uuid.UUID) (*model.GenerationSession, error) {
	logger := middleware.GetLogger(ctx)
	var session model.GenerationSession
	result := db.WithContext(ctx).Where("user_id = ? AND generation_id = ?", userID, generationID).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding generation session in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"generation_id", generationID.String(),
		)
		return nil, fmt.Errorf("gormGenerationRepository.FindByID: %w", result.Error)
	}
	return &session, nil
}

// Finalize sets accepted_count on a session that has not been finalized yet.
// The `accepted_count IS NULL` predicate makes the check-and-set atomic: of
// two concurrent accepts only one can match the row. Returns false when no
// row matched (missing, foreign, or already finalized).
func (r *gormGenerationRepository) Finalize(ctx context.Context, tx *gorm.DB, userID, generationID uuid.UUID, acceptedCount int) (bool, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Model(&model.GenerationSession{}).
		Where("user_id = ? AND generation_id = ? AND accepted_count IS NULL", userID, generationID).
		Update("accepted_count", acceptedCount)
	if result.Error != nil {
		logger.Error("Error finalizing generation session in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"generation_id", generationID.String(),
		)
		return false, fmt.Errorf("gormGenerationRepository.Finalize: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
