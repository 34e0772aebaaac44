// internal/service/flashcard_service.go
package service

import (
	"context"
	"errors"

	"github.com/mateusz-szafarz/10x-cards/internal/middleware"
	"github.com/mateusz-szafarz/10x-cards/internal/model"
	"github.com/mateusz-szafarz/10x-cards/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type FlashcardService interface {
	CreateFlashcard(ctx context.Context, userID uuid.UUID, req *model.CreateFlashcardRequest) (*model.Flashcard, error)
	GetFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) (*model.Flashcard, error)
	ListFlashcards(ctx context.Context, userID uuid.UUID, query *model.ListFlashcardsQuery) (*model.FlashcardList, error)
	UpdateFlashcard(ctx context.Context, userID, flashcardID uuid.UUID, req *model.UpdateFlashcardRequest) (*model.Flashcard, error)
	DeleteFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) error
}

type flashcardService struct {
	db       *gorm.DB
	cardRepo repository.FlashcardRepository
}

func NewFlashcardService(db *gorm.DB, cardRepo repository.FlashcardRepository) FlashcardService {
	return &flashcardService{db: db, cardRepo: cardRepo}
}

func (s *flashcardService) CreateFlashcard(ctx context.Context, userID uuid.UUID, req *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)

	flashcard := &model.Flashcard{
		FlashcardID:  uuid.New(),
		UserID:       userID,
		Front:        req.Front,
		Back:         req.Back,
		Source:       model.SourceManual,
		GenerationID: nil,
	}
	if err := s.cardRepo.CreateBatch(ctx, s.db, []*model.Flashcard{flashcard}); err != nil {
		logger.Error("Failed to create flashcard", "error", err)
		return nil, model.ErrInternalServer
	}
	return flashcard, nil
}

func (s *flashcardService) GetFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) (*model.Flashcard, error) {
	flashcard, err := s.cardRepo.FindByID(ctx, s.db, userID, flashcardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Flashcard not found.", "", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	return flashcard, nil
}

func (s *flashcardService) ListFlashcards(ctx context.Context, userID uuid.UUID, query *model.ListFlashcardsQuery) (*model.FlashcardList, error) {
	logger := middleware.GetLogger(ctx)

	normalizeListQuery(query)

	flashcards, total, err := s.cardRepo.FindByUser(ctx, s.db, userID, query)
	if err != nil {
		logger.Error("Failed to list flashcards", "error", err)
		return nil, model.ErrInternalServer
	}
	if flashcards == nil {
		flashcards = []*model.Flashcard{}
	}

	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	return &model.FlashcardList{
		Data: flashcards,
		Pagination: model.Pagination{
			Page:       query.Page,
			Limit:      query.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *flashcardService) UpdateFlashcard(ctx context.Context, userID, flashcardID uuid.UUID, req *model.UpdateFlashcardRequest) (*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)
	var updated *model.Flashcard

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"front": req.Front,
			"back":  req.Back,
		}
		if err := s.cardRepo.Update(ctx, tx, userID, flashcardID, updates); err != nil {
			return err
		}
		var err error
		updated, err = s.cardRepo.FindByID(ctx, tx, userID, flashcardID)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Flashcard not found.", "", model.ErrNotFound)
		}
		logger.Error("Transaction failed for UpdateFlashcard", "error", err)
		return nil, model.ErrInternalServer
	}
	return updated, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	err := s.cardRepo.Delete(ctx, s.db, userID, flashcardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "Flashcard not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete flashcard", "error", err)
		return model.ErrInternalServer
	}
	return nil
}

func normalizeListQuery(query *model.ListFlashcardsQuery) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = defaultPageLimit
	}
	if query.Limit > maxPageLimit {
		query.Limit = maxPageLimit
	}
	if query.Sort != "created_at" && query.Sort != "updated_at" {
		query.Sort = "created_at"
	}
	if query.Order != "asc" && query.Order != "desc" {
		query.Order = "desc"
	}
}
