// internal/service/generation_service.go
package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/mateusz-szafarz/10x-cards/internal/middleware"
	"github.com/mateusz-szafarz/10x-cards/internal/model"
	"github.com/mateusz-szafarz/10x-cards/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minSourceTextLen = 1000
	maxSourceTextLen = 10000

	minFrontLen = 1
	maxFrontLen = 500
	minBackLen  = 1
	maxBackLen  = 2000
)

// ProposalGenerator is the upstream model capability the orchestrator needs.
// The real OpenRouter client and the mock both satisfy it; which one is used
// is decided once at wiring time.
type ProposalGenerator interface {
	GenerateProposals(ctx context.Context, sourceText string) ([]model.FlashcardProposal, error)
	ModelName() string
}

type GenerationService interface {
	CreateGeneration(ctx context.Context, userID uuid.UUID, req *model.CreateGenerationRequest) (*model.GenerationResponse, error)
	AcceptGeneration(ctx context.Context, userID, generationID uuid.UUID, req *model.AcceptGenerationRequest) (*model.AcceptGenerationResponse, error)
}

type generationService struct {
	db        *gorm.DB
	generator ProposalGenerator
	genRepo   repository.GenerationRepository
	cardRepo  repository.FlashcardRepository
}

func NewGenerationService(db *gorm.DB, generator ProposalGenerator, genRepo repository.GenerationRepository, cardRepo repository.FlashcardRepository) GenerationService {
	return &generationService{
		db:        db,
		generator: generator,
		genRepo:   genRepo,
		cardRepo:  cardRepo,
	}
}

// CreateGeneration turns source text into flashcard proposals and records the
// generation session. Either both the model call and the persistence succeed,
// or the caller sees an error and must regenerate; proposals are never
// returned without a session row backing them.
func (s *generationService) CreateGeneration(ctx context.Context, userID uuid.UUID, req *model.CreateGenerationRequest) (*model.GenerationResponse, error) {
	logger := middleware.GetLogger(ctx)

	textLen := utf8.RuneCountInString(req.SourceText)
	if textLen < minSourceTextLen || textLen > maxSourceTextLen {
		return nil, model.NewAppError(
			"VALIDATION_ERROR",
			"Source text must be between 1000 and 10000 characters.",
			"source_text",
			model.ErrInvalidInput,
		)
	}

	proposals, err := s.generator.GenerateProposals(ctx, req.SourceText)
	if err != nil {
		logger.Error("Proposal generation failed", "error", err)
		return nil, model.NewAppError("INTERNAL_ERROR", "Failed to generate flashcards.", "", model.ErrInternalServer)
	}

	session := &model.GenerationSession{
		GenerationID:   uuid.New(),
		UserID:         userID,
		SourceText:     req.SourceText,
		ModelUsed:      s.generator.ModelName(),
		GeneratedCount: len(proposals),
	}
	if err := s.genRepo.Create(ctx, s.db, session); err != nil {
		logger.Error("Failed to save generation session", "error", err)
		return nil, model.NewAppError("INTERNAL_ERROR", "Failed to save generation session.", "", model.ErrInternalServer)
	}

	return &model.GenerationResponse{
		GenerationID:        session.GenerationID,
		FlashcardsProposals: proposals,
		GeneratedCount:      len(proposals),
	}, nil
}

// AcceptGeneration commits the reviewed proposals. The ownership check, the
// finalize and the flashcard inserts run in one transaction; the conditional
// update inside Finalize guarantees a session is accepted at most once even
// under concurrent or repeated requests.
func (s *generationService) AcceptGeneration(ctx context.Context, userID, generationID uuid.UUID, req *model.AcceptGenerationRequest) (*model.AcceptGenerationResponse, error) {
	logger := middleware.GetLogger(ctx)

	if err := validateAcceptBatch(req.Flashcards); err != nil {
		return nil, err
	}

	var created []*model.Flashcard

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		finalized, err := s.genRepo.Finalize(ctx, tx, userID, generationID, len(req.Flashcards))
		if err != nil {
			return model.ErrInternalServer
		}
		if !finalized {
			// No open session matched: either it does not exist for this
			// user, or it was already finalized. A foreign session reads the
			// same as a missing one so session ids cannot be enumerated.
			session, err := s.genRepo.FindByID(ctx, tx, userID, generationID)
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "Generation session not found.", "", model.ErrNotFound)
			}
			if err != nil {
				return model.ErrInternalServer
			}
			if session.Finalized() {
				return model.NewAppError("ALREADY_FINALIZED", "Generation session has already been finalized.", "", model.ErrConflict)
			}
			return model.ErrInternalServer
		}

		genID := generationID
		flashcards := make([]*model.Flashcard, 0, len(req.Flashcards))
		for _, f := range req.Flashcards {
			flashcards = append(flashcards, &model.Flashcard{
				FlashcardID:  uuid.New(),
				UserID:       userID,
				Front:        f.Front,
				Back:         f.Back,
				Source:       model.SourceAIGenerated,
				GenerationID: &genID,
			})
		}
		if err := s.cardRepo.CreateBatch(ctx, tx, flashcards); err != nil {
			return model.ErrInternalServer
		}

		created = flashcards
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Transaction failed for AcceptGeneration", "error", err,
			"generation_id", generationID.String())
		return nil, model.NewAppError("INTERNAL_ERROR", "Failed to save flashcards.", "", model.ErrInternalServer)
	}

	logger.Info("Generation session finalized",
		"generation_id", generationID.String(),
		"accepted_count", len(created),
	)
	return &model.AcceptGenerationResponse{
		Flashcards:    created,
		AcceptedCount: len(created),
	}, nil
}

// validateAcceptBatch rejects the whole batch on the first malformed item:
// acceptance is all-or-nothing.
func validateAcceptBatch(flashcards []model.AcceptFlashcard) error {
	if len(flashcards) == 0 {
		return model.NewAppError("VALIDATION_ERROR", "At least one flashcard must be selected.", "flashcards", model.ErrInvalidInput)
	}
	for _, f := range flashcards {
		frontLen := utf8.RuneCountInString(f.Front)
		if frontLen < minFrontLen || frontLen > maxFrontLen {
			return model.NewAppError("VALIDATION_ERROR", "Front must be between 1 and 500 characters.", "front", model.ErrInvalidInput)
		}
		backLen := utf8.RuneCountInString(f.Back)
		if backLen < minBackLen || backLen > maxBackLen {
			return model.NewAppError("VALIDATION_ERROR", "Back must be between 1 and 2000 characters.", "back", model.ErrInvalidInput)
		}
	}
	return nil
}
