// internal/handlers/generation_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withUser injects an authenticated user the way the JWT middleware does.
func withUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func generationRouter(h *GenerationHandler, userID *uuid.UUID) http.Handler {
	r := chi.NewRouter()
	if userID != nil {
		r.Use(withUser(*userID))
	}
	r.Post("/generations", h.PostGeneration)
	r.Post("/generations/{generation_id}/accept", h.PostAcceptGeneration)
	return r
}

func decodeErrorResponse(t *testing.T, body *bytes.Buffer) model.APIErrorResponse {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp
}

func TestGenerationHandler_PostGeneration(t *testing.T) {
	userID := uuid.New()
	generationID := uuid.New()
	validText := strings.Repeat("a", 1500)

	tests := []struct {
		name       string
		body       string
		authorized bool
		setupMock  func(svc *mocks.GenerationService)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       fmt.Sprintf(`{"source_text":%q}`, validText),
			authorized: true,
			setupMock: func(svc *mocks.GenerationService) {
				svc.On("CreateGeneration", mock.Anything, userID, mock.AnythingOfType("*model.CreateGenerationRequest")).
					Return(&model.GenerationResponse{
						GenerationID:        generationID,
						FlashcardsProposals: []model.FlashcardProposal{{Front: "Q?", Back: "A."}},
						GeneratedCount:      1,
					}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing identity",
			body:       fmt.Sprintf(`{"source_text":%q}`, validText),
			authorized: false,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "malformed JSON body",
			body:       `{"source_text": `,
			authorized: true,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:       "source text too short fails validation before the service",
			body:       `{"source_text":"too short"}`,
			authorized: true,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "generation failure maps to 500",
			body:       fmt.Sprintf(`{"source_text":%q}`, validText),
			authorized: true,
			setupMock: func(svc *mocks.GenerationService) {
				svc.On("CreateGeneration", mock.Anything, userID, mock.AnythingOfType("*model.CreateGenerationRequest")).
					Return(nil, model.NewAppError("INTERNAL_ERROR", "Failed to generate flashcards.", "", model.ErrInternalServer)).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewGenerationService(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			handler := NewGenerationHandler(svc, testLogger())

			var uid *uuid.UUID
			if tt.authorized {
				uid = &userID
			}
			req := httptest.NewRequest(http.MethodPost, "/generations", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			generationRouter(handler, uid).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				resp := decodeErrorResponse(t, rec.Body)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			}
			if tt.wantStatus == http.StatusCreated {
				var resp model.GenerationResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, generationID, resp.GenerationID)
				assert.Equal(t, 1, resp.GeneratedCount)
			}
		})
	}
}

func TestGenerationHandler_PostAcceptGeneration(t *testing.T) {
	userID := uuid.New()
	generationID := uuid.New()
	validBody := `{"flashcards":[{"front":"Q?","back":"A."}]}`

	tests := []struct {
		name       string
		target     string
		body       string
		authorized bool
		setupMock  func(svc *mocks.GenerationService)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "accepted",
			target:     "/generations/" + generationID.String() + "/accept",
			body:       validBody,
			authorized: true,
			setupMock: func(svc *mocks.GenerationService) {
				svc.On("AcceptGeneration", mock.Anything, userID, generationID, mock.AnythingOfType("*model.AcceptGenerationRequest")).
					Return(&model.AcceptGenerationResponse{
						Flashcards:    []*model.Flashcard{{FlashcardID: uuid.New(), Front: "Q?", Back: "A."}},
						AcceptedCount: 1,
					}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			// The id must be rejected before authentication or body parsing.
			name:       "malformed generation id",
			target:     "/generations/not-a-uuid/accept",
			body:       validBody,
			authorized: true,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "missing identity",
			target:     "/generations/" + generationID.String() + "/accept",
			body:       validBody,
			authorized: false,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "malformed JSON body",
			target:     "/generations/" + generationID.String() + "/accept",
			body:       `{"flashcards": [`,
			authorized: true,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:       "unknown session maps to 404",
			target:     "/generations/" + generationID.String() + "/accept",
			body:       validBody,
			authorized: true,
			setupMock: func(svc *mocks.GenerationService) {
				svc.On("AcceptGeneration", mock.Anything, userID, generationID, mock.AnythingOfType("*model.AcceptGenerationRequest")).
					Return(nil, model.NewAppError("NOT_FOUND", "Generation session not found.", "", model.ErrNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "finalized session maps to 409",
			target:     "/generations/" + generationID.String() + "/accept",
			body:       validBody,
			authorized: true,
			setupMock: func(svc *mocks.GenerationService) {
				svc.On("AcceptGeneration", mock.Anything, userID, generationID, mock.AnythingOfType("*model.AcceptGenerationRequest")).
					Return(nil, model.NewAppError("ALREADY_FINALIZED", "Generation session has already been finalized.", "", model.ErrConflict)).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_FINALIZED",
		},
		{
			name:       "empty batch maps to 400",
			target:     "/generations/" + generationID.String() + "/accept",
			body:       `{"flashcards":[]}`,
			authorized: true,
			setupMock: func(svc *mocks.GenerationService) {
				svc.On("AcceptGeneration", mock.Anything, userID, generationID, mock.AnythingOfType("*model.AcceptGenerationRequest")).
					Return(nil, model.NewAppError("VALIDATION_ERROR", "At least one flashcard must be selected.", "flashcards", model.ErrInvalidInput)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewGenerationService(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			handler := NewGenerationHandler(svc, testLogger())

			var uid *uuid.UUID
			if tt.authorized {
				uid = &userID
			}
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			generationRouter(handler, uid).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				resp := decodeErrorResponse(t, rec.Body)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			}
		})
	}
}
