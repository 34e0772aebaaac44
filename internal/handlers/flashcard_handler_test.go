// internal/handlers/flashcard_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mateusz-szafarz/10x-cards/internal/model"
	"github.com/mateusz-szafarz/10x-cards/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func flashcardRouter(h *FlashcardHandler, userID *uuid.UUID) http.Handler {
	r := chi.NewRouter()
	if userID != nil {
		r.Use(withUser(*userID))
	}
	r.Post("/flashcards", h.PostFlashcard)
	r.Get("/flashcards", h.GetFlashcards)
	r.Get("/flashcards/{flashcard_id}", h.GetFlashcard)
	r.Put("/flashcards/{flashcard_id}", h.PutFlashcard)
	r.Delete("/flashcards/{flashcard_id}", h.DeleteFlashcard)
	return r
}

func TestFlashcardHandler_PostFlashcard(t *testing.T) {
	userID := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		card := &model.Flashcard{FlashcardID: uuid.New(), UserID: userID, Front: "Q?", Back: "A.", Source: model.SourceManual}
		svc.On("CreateFlashcard", mock.Anything, userID, mock.AnythingOfType("*model.CreateFlashcardRequest")).
			Return(card, nil).Once()
		handler := NewFlashcardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/flashcards", strings.NewReader(`{"front":"Q?","back":"A."}`))
		rec := httptest.NewRecorder()
		flashcardRouter(handler, &userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp model.Flashcard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, card.FlashcardID, resp.FlashcardID)
		assert.Equal(t, model.SourceManual, resp.Source)
	})

	t.Run("front too long fails validation", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		handler := NewFlashcardHandler(svc, testLogger())

		body := `{"front":"` + strings.Repeat("x", 501) + `","back":"A."}`
		req := httptest.NewRequest(http.MethodPost, "/flashcards", strings.NewReader(body))
		rec := httptest.NewRecorder()
		flashcardRouter(handler, &userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec.Body)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		svc.AssertNotCalled(t, "CreateFlashcard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing identity", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		handler := NewFlashcardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/flashcards", strings.NewReader(`{"front":"Q?","back":"A."}`))
		rec := httptest.NewRecorder()
		flashcardRouter(handler, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestFlashcardHandler_GetFlashcards(t *testing.T) {
	userID := uuid.New()

	t.Run("query parameters are forwarded", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		svc.On("ListFlashcards", mock.Anything, userID, mock.MatchedBy(func(q *model.ListFlashcardsQuery) bool {
			return q.Page == 2 && q.Limit == 10 && q.Source == "ai_generated" && q.Sort == "updated_at" && q.Order == "asc"
		})).Return(&model.FlashcardList{
			Data:       []*model.Flashcard{},
			Pagination: model.Pagination{Page: 2, Limit: 10},
		}, nil).Once()
		handler := NewFlashcardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/flashcards?page=2&limit=10&source=ai_generated&sort=updated_at&order=asc", nil)
		rec := httptest.NewRecorder()
		flashcardRouter(handler, &userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-numeric page is rejected", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		handler := NewFlashcardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/flashcards?page=abc", nil)
		rec := httptest.NewRecorder()
		flashcardRouter(handler, &userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec.Body)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("unknown source is rejected", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		handler := NewFlashcardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/flashcards?source=imported", nil)
		rec := httptest.NewRecorder()
		flashcardRouter(handler, &userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFlashcardHandler_GetFlashcard(t *testing.T) {
	userID := uuid.New()
	flashcardID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		svc.On("GetFlashcard", mock.Anything, userID, flashcardID).
			Return(&model.Flashcard{FlashcardID: flashcardID, Front: "Q?", Back: "A."}, nil).Once()
		handler := NewFlashcardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/flashcards/"+flashcardID.String(), nil)
		rec := httptest.NewRecorder()
		flashcardRouter(handler, &userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		svc.On("GetFlashcard", mock.Anything, userID, flashcardID).
			Return(nil, model.NewAppError("NOT_FOUND", "Flashcard not found.", "", model.ErrNotFound)).Once()
		handler := NewFlashcardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/flashcards/"+flashcardID.String(), nil)
		rec := httptest.NewRecorder()
		flashcardRouter(handler, &userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := mocks.NewFlashcardService(t)
		handler := NewFlashcardHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/flashcards/nope", nil)
		rec := httptest.NewRecorder()
		flashcardRouter(handler, &userID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFlashcardHandler_DeleteFlashcard(t *testing.T) {
	userID := uuid.New()
	flashcardID := uuid.New()

	svc := mocks.NewFlashcardService(t)
	svc.On("DeleteFlashcard", mock.Anything, userID, flashcardID).Return(nil).Once()
	handler := NewFlashcardHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/flashcards/"+flashcardID.String(), nil)
	rec := httptest.NewRecorder()
	flashcardRouter(handler, &userID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
