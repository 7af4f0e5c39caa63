package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/artin-ai/onboarding-backend/internal/entity"
	"github.com/artin-ai/onboarding-backend/internal/pkg/formatter"
	"github.com/artin-ai/onboarding-backend/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase  ConversationUsecase
	renderer PromptRenderer
}

func NewHandler(usecase ConversationUsecase, renderer PromptRenderer) *Handler {
	return &Handler{
		usecase:  usecase,
		renderer: renderer,
	}
}

// StartConversation handles POST /conversation - begin the wizard
func (h *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartConversation")

	conv, err := h.usecase.Start(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "conversation created",
		zap.String("conversation_id", conv.ID),
	)

	conv, q, err := h.usecase.Get(ctx, conv.ID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toConversationDTO(conv, q, h.renderer))
}

// GetConversation handles GET /conversation/{id} - current wizard state
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("conversation_id", conversationID),
		zap.String("action", "GetConversation"),
	)

	conv, q, err := h.usecase.Get(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toConversationDTO(conv, q, h.renderer))
}

// SubmitAnswer handles POST /conversation/{id}/answer - answer the current question
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("conversation_id", conversationID),
		zap.String("action", "SubmitAnswer"),
	)

	var req entity.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if _, err := h.usecase.SubmitAnswer(ctx, conversationID, req); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	conv, q, err := h.usecase.Get(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toConversationDTO(conv, q, h.renderer))
}

// RetrySubmission handles POST /conversation/{id}/retry - retry webhook submission
func (h *Handler) RetrySubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("conversation_id", conversationID),
		zap.String("action", "RetrySubmission"),
	)

	conv, err := h.usecase.Retry(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toConversationDTO(conv, nil, h.renderer))
}

// GetProfile handles GET /conversation/{id}/profile - collected profile summary
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("conversation_id", conversationID),
		zap.String("action", "GetProfile"),
	)

	profile, err := h.usecase.Profile(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}

// ExportProfile handles GET /conversation/{id}/profile/export?format= - download profile
func (h *Handler) ExportProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")
	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	ctx = logger.AddFields(ctx,
		zap.String("conversation_id", conversationID),
		zap.String("action", "ExportProfile"),
		zap.String("format", string(format)),
	)

	profile, err := h.usecase.Profile(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	factory := formatter.NewFactory()
	fmtr, err := factory.Create(format)
	if err != nil {
		ctxzap.Error(ctx, "format not implemented", zap.Error(err))
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	formatted, err := fmtr.Format(profile)
	if err != nil {
		ctxzap.Error(ctx, "failed to format profile", zap.Error(err))
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format profile", err)
		return
	}

	ctxzap.Info(ctx, "profile exported")
	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"profile-%s%s\"", conversationID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(formatted)
}

// DiscardConversation handles DELETE /conversation/{id} - leave the wizard
func (h *Handler) DiscardConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("conversation_id", conversationID),
		zap.String("action", "DiscardConversation"),
	)

	if err := h.usecase.Discard(ctx, conversationID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "conversation discarded")
	w.WriteHeader(http.StatusNoContent)
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrConversationNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "conversation not found", err)
	case errors.Is(err, entity.ErrEmptyAnswer),
		errors.Is(err, entity.ErrUnknownChoice),
		errors.Is(err, entity.ErrTooManyValues),
		errors.Is(err, entity.ErrValueNotAllowed):
		h.respondError(ctx, w, http.StatusUnprocessableEntity, "answer rejected", err)
	case errors.Is(err, entity.ErrNotAwaitingInput),
		errors.Is(err, entity.ErrConversationComplete),
		errors.Is(err, entity.ErrConversationNotComplete):
		h.respondError(ctx, w, http.StatusConflict, "invalid conversation state", err)
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
