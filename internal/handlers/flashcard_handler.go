// internal/handlers/flashcard_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mateusz-szafarz/10x-cards/internal/middleware"
	"github.com/mateusz-szafarz/10x-cards/internal/model"
	"github.com/mateusz-szafarz/10x-cards/internal/service"
	"github.com/mateusz-szafarz/10x-cards/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type FlashcardHandler struct {
	service service.FlashcardService
	logger  *slog.Logger
}

func NewFlashcardHandler(s service.FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		service: s,
		logger:  logger,
	}
}

// PostFlashcard creates a single manual flashcard.
func (h *FlashcardHandler) PostFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostFlashcard"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.CreateFlashcardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			webutil.HandleError(w, logger, webutil.NewValidationError(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	flashcard, err := h.service.CreateFlashcard(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating flashcard in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcard created", slog.String("flashcard_id", flashcard.FlashcardID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, flashcard, logger)
}

// GetFlashcards lists the caller's flashcards with pagination and filters.
func (h *FlashcardHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFlashcards"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	query, err := parseListQuery(r)
	if err != nil {
		logger.Warn("Invalid list query", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	list, err := h.service.ListFlashcards(r.Context(), userID, query)
	if err != nil {
		logger.Error("Error listing flashcards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, list, logger)
}

// GetFlashcard retrieves a single flashcard owned by the caller.
func (h *FlashcardHandler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFlashcard"))

	userID, flashcardID, ok := h.identityAndID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", flashcardID.String()),
	)

	flashcard, err := h.service.GetFlashcard(r.Context(), userID, flashcardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Flashcard not found")
		} else {
			logger.Error("Error getting flashcard from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, flashcard, logger)
}

// PutFlashcard replaces the front and back of a flashcard.
func (h *FlashcardHandler) PutFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutFlashcard"))

	userID, flashcardID, ok := h.identityAndID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", flashcardID.String()),
	)

	var req model.UpdateFlashcardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			webutil.HandleError(w, logger, webutil.NewValidationError(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	flashcard, err := h.service.UpdateFlashcard(r.Context(), userID, flashcardID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Flashcard not found for update")
		} else {
			logger.Error("Error updating flashcard in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcard updated")
	webutil.RespondWithJSON(w, http.StatusOK, flashcard, logger)
}

// DeleteFlashcard soft-deletes a flashcard owned by the caller.
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteFlashcard"))

	userID, flashcardID, ok := h.identityAndID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", flashcardID.String()),
	)

	if err := h.service.DeleteFlashcard(r.Context(), userID, flashcardID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Flashcard not found for delete")
		} else {
			logger.Error("Error deleting flashcard in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcard deleted")
	w.WriteHeader(http.StatusNoContent)
}

// identityAndID extracts the authenticated user and parses the flashcard_id
// path parameter. On failure it writes the error response and returns ok=false.
func (h *FlashcardHandler) identityAndID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, uuid.Nil, false
	}

	flashcardIDStr := chi.URLParam(r, "flashcard_id")
	flashcardID, err := uuid.Parse(flashcardIDStr)
	if err != nil {
		logger.Warn("Invalid flashcard ID format in URL", slog.String("flashcard_id_str", flashcardIDStr))
		appErr := model.NewAppError("VALIDATION_ERROR", "flashcard_id is not a valid UUID.", "flashcard_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, flashcardID, true
}

func parseListQuery(r *http.Request) (*model.ListFlashcardsQuery, error) {
	q := r.URL.Query()
	query := &model.ListFlashcardsQuery{
		Source: q.Get("source"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, model.NewAppError("VALIDATION_ERROR", "page must be a positive integer.", "page", model.ErrInvalidInput)
		}
		query.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return nil, model.NewAppError("VALIDATION_ERROR", "limit must be a positive integer.", "limit", model.ErrInvalidInput)
		}
		query.Limit = limit
	}
	if query.Source != "" &&
		query.Source != string(model.SourceManual) &&
		query.Source != string(model.SourceAIGenerated) {
		return nil, model.NewAppError("VALIDATION_ERROR", "source must be manual or ai_generated.", "source", model.ErrInvalidInput)
	}

	return query, nil
}
