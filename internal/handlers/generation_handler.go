// internal/handlers/generation_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mateusz-szafarz/10x-cards/internal/middleware"
	"github.com/mateusz-szafarz/10x-cards/internal/model"
	"github.com/mateusz-szafarz/10x-cards/internal/service"
	"github.com/mateusz-szafarz/10x-cards/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type GenerationHandler struct {
	service service.GenerationService
	logger  *slog.Logger
}

func NewGenerationHandler(s service.GenerationService, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationHandler{
		service: s,
		logger:  logger,
	}
}

// PostGeneration creates a generation session from source text and returns
// the proposals for review.
func (h *GenerationHandler) PostGeneration(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostGeneration"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.CreateGenerationRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationError(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	resp, err := h.service.CreateGeneration(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating generation in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Generation created",
		slog.String("generation_id", resp.GenerationID.String()),
		slog.Int("generated_count", resp.GeneratedCount),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

// PostAcceptGeneration finalizes a generation session with the reviewed
// flashcards. The path id is parsed before anything else so a malformed id
// never reaches the database.
func (h *GenerationHandler) PostAcceptGeneration(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostAcceptGeneration"))

	generationIDStr := chi.URLParam(r, "generation_id")
	generationID, err := uuid.Parse(generationIDStr)
	if err != nil {
		logger.Warn("Invalid generation ID format in URL", slog.String("generation_id_str", generationIDStr))
		appErr := model.NewAppError("VALIDATION_ERROR", "generation_id is not a valid UUID.", "generation_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("generation_id", generationID.String()))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.AcceptGenerationRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.AcceptGeneration(r.Context(), userID, generationID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) {
			logger.Info("Accept rejected by service", slog.Any("error", err))
		} else {
			logger.Error("Error accepting generation in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Generation accepted", slog.Int("accepted_count", resp.AcceptedCount))
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}
