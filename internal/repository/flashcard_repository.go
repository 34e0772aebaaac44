//go:generate mockery --name FlashcardRepository --output ./mocks --outpkg mocks --case=underscore
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

// FlashcardRepository persists flashcards. Every query filters by user id.
type FlashcardRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, flashcards []*model.Flashcard) error
	FindByID(ctx context.Context, db *gorm.DB, userID, flashcardID uuid.UUID) (*model.Flashcard, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, query *model.ListFlashcardsQuery) ([]*model.Flashcard, int64, error)
	Update(ctx context.Context, tx *gorm.DB, userID, flashcardID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, userID, flashcardID uuid.UUID) error
}

type gormFlashcardRepository struct{}

func NewGormFlashcardRepository() FlashcardRepository {
	return &gormFlashcardRepository{}
}

func (r *gormFlashcardRepository) CreateBatch(ctx context.Context, tx *gorm.DB, flashcards []*model.Flashcard) error {
	logger := middleware.GetLogger(ctx)
	if len(flashcards) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(flashcards)
	if result.Error != nil {
		logger.Error("Error creating flashcards in DB",
			"error", result.Error,
			"count", len(flashcards),
		)
		return fmt.Errorf("gormFlashcardRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormFlashcardRepository) FindByID(ctx context.Context, db *gorm.DB, userID, flashcardID uuid.UUID) (*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)
	var flashcard model.Flashcard
	result := db.WithContext(ctx).Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).First(&flashcard)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding flashcard by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"flashcard_id", flashcardID.String(),
		)
		return nil, fmt.Errorf("gormFlashcardRepository.FindByID: %w", result.Error)
	}
	return &flashcard, nil
}

func (r *gormFlashcardRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, query *model.ListFlashcardsQuery) ([]*model.Flashcard, int64, error) {
	logger := middleware.GetLogger(ctx)

	base := db.WithContext(ctx).Model(&model.Flashcard{}).Where("user_id = ?", userID)
	if query.Source != "" {
		base = base.Where("source = ?", query.Source)
	}

	var total int64
	if result := base.Count(&total); result.Error != nil {
		logger.Error("Error counting flashcards in DB", "error", result.Error, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormFlashcardRepository.FindByUser: %w", result.Error)
	}

	var flashcards []*model.Flashcard
	offset := (query.Page - 1) * query.Limit
	result := base.
		Order(fmt.Sprintf("%s %s", query.Sort, query.Order)).
		Limit(query.Limit).
		Offset(offset).
		Find(&flashcards)
	if result.Error != nil {
		logger.Error("Error listing flashcards in DB", "error", result.Error, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormFlashcardRepository.FindByUser: %w", result.Error)
	}
	return flashcards, total, nil
}

func (r *gormFlashcardRepository) Update(ctx context.Context, tx *gorm.DB, userID, flashcardID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).
		Model(&model.Flashcard{}).
		Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating flashcard in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"flashcard_id", flashcardID.String(),
		)
		return fmt.Errorf("gormFlashcardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormFlashcardRepository) Delete(ctx context.Context, tx *gorm.DB, userID, flashcardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).
		Delete(&model.Flashcard{})
	if result.Error != nil {
		logger.Error("Error deleting flashcard in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"flashcard_id", flashcardID.String(),
		)
		return fmt.Errorf("gormFlashcardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
