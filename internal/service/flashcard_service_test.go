// internal/service/flashcard_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/mateusz-szafarz/10x-cards/internal/model"
	"github.com/mateusz-szafarz/10x-cards/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flashcardFixture(t *testing.T) (FlashcardService, uuid.UUID) {
	t.Helper()
	db := setupTestDB(t)
	return NewFlashcardService(db, repository.NewGormFlashcardRepository()), uuid.New()
}

func Test_flashcardService_CreateFlashcard(t *testing.T) {
	ctx := context.Background()
	svc, userID := flashcardFixture(t)

	card, err := svc.CreateFlashcard(ctx, userID, &model.CreateFlashcardRequest{Front: "Q?", Back: "A."})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, card.FlashcardID)
	assert.Equal(t, userID, card.UserID)
	assert.Equal(t, model.SourceManual, card.Source)
	assert.Nil(t, card.GenerationID)
}

func Test_flashcardService_GetFlashcard_Ownership(t *testing.T) {
	ctx := context.Background()
	svc, userID := flashcardFixture(t)

	card, err := svc.CreateFlashcard(ctx, userID, &model.CreateFlashcardRequest{Front: "Q?", Back: "A."})
	require.NoError(t, err)

	got, err := svc.GetFlashcard(ctx, userID, card.FlashcardID)
	require.NoError(t, err)
	assert.Equal(t, card.FlashcardID, got.FlashcardID)

	// Another user's lookup reads as not found, not forbidden.
	_, err = svc.GetFlashcard(ctx, uuid.New(), card.FlashcardID)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Detail.Code)
}

func Test_flashcardService_ListFlashcards(t *testing.T) {
	ctx := context.Background()
	svc, userID := flashcardFixture(t)

	for i := 0; i < 25; i++ {
		_, err := svc.CreateFlashcard(ctx, userID, &model.CreateFlashcardRequest{Front: "Q?", Back: "A."})
		require.NoError(t, err)
	}

	t.Run("defaults are applied", func(t *testing.T) {
		list, err := svc.ListFlashcards(ctx, userID, &model.ListFlashcardsQuery{})
		require.NoError(t, err)
		assert.Equal(t, 1, list.Pagination.Page)
		assert.Equal(t, 20, list.Pagination.Limit)
		assert.EqualValues(t, 25, list.Pagination.Total)
		assert.Equal(t, 2, list.Pagination.TotalPages)
		assert.Len(t, list.Data, 20)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		list, err := svc.ListFlashcards(ctx, userID, &model.ListFlashcardsQuery{Page: 2})
		require.NoError(t, err)
		assert.Len(t, list.Data, 5)
	})

	t.Run("limit is capped", func(t *testing.T) {
		list, err := svc.ListFlashcards(ctx, userID, &model.ListFlashcardsQuery{Limit: 1000})
		require.NoError(t, err)
		assert.Equal(t, 100, list.Pagination.Limit)
	})

	t.Run("source filter", func(t *testing.T) {
		list, err := svc.ListFlashcards(ctx, userID, &model.ListFlashcardsQuery{Source: string(model.SourceAIGenerated)})
		require.NoError(t, err)
		assert.EqualValues(t, 0, list.Pagination.Total)
		assert.Empty(t, list.Data)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		list, err := svc.ListFlashcards(ctx, uuid.New(), &model.ListFlashcardsQuery{})
		require.NoError(t, err)
		assert.EqualValues(t, 0, list.Pagination.Total)
	})
}

func Test_flashcardService_UpdateFlashcard(t *testing.T) {
	ctx := context.Background()
	svc, userID := flashcardFixture(t)

	card, err := svc.CreateFlashcard(ctx, userID, &model.CreateFlashcardRequest{Front: "Q?", Back: "A."})
	require.NoError(t, err)

	updated, err := svc.UpdateFlashcard(ctx, userID, card.FlashcardID, &model.UpdateFlashcardRequest{Front: "New Q?", Back: "New A."})

	require.NoError(t, err)
	assert.Equal(t, "New Q?", updated.Front)
	assert.Equal(t, "New A.", updated.Back)
}

func Test_flashcardService_UpdateFlashcard_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, userID := flashcardFixture(t)

	_, err := svc.UpdateFlashcard(ctx, userID, uuid.New(), &model.UpdateFlashcardRequest{Front: "Q?", Back: "A."})

	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Detail.Code)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_flashcardService_DeleteFlashcard(t *testing.T) {
	ctx := context.Background()
	svc, userID := flashcardFixture(t)

	card, err := svc.CreateFlashcard(ctx, userID, &model.CreateFlashcardRequest{Front: "Q?", Back: "A."})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFlashcard(ctx, userID, card.FlashcardID))

	_, err = svc.GetFlashcard(ctx, userID, card.FlashcardID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// A second delete reads as not found.
	err = svc.DeleteFlashcard(ctx, userID, card.FlashcardID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
