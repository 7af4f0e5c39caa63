package onboarding

import (
	"encoding/json"
	"net/http"

	"github.com/artin-ai/onboarding-backend/internal/entity"
	"github.com/artin-ai/onboarding-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Handler implements the submission relay: it accepts the wizard's
// flat questionId -> answer object and forwards it verbatim to the
// configured webhook, translating the result into {code, text}.
type Handler struct {
	webhookConn WebhookConnector
}

func NewHandler(webhookConn WebhookConnector) *Handler {
	return &Handler{
		webhookConn: webhookConn,
	}
}

// Submit handles POST /onboarding - relay collected answers to the webhook
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RelaySubmit")

	var answers map[string]string
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		ctxzap.Error(ctx, "failed to decode relay payload", zap.Error(err))
		h.respond(w, entity.RelayResponse{
			Code: http.StatusBadRequest,
			Text: "invalid request body",
		})
		return
	}

	ctxzap.Info(ctx, "relaying onboarding submission",
		zap.Int("answer_count", len(answers)),
	)

	// The connector already folds every failure mode into a usable
	// {code, text}; the HTTP status mirrors the code.
	resp, _ := h.webhookConn.Submit(ctx, answers)
	h.respond(w, resp)
}

func (h *Handler) respond(w http.ResponseWriter, resp entity.RelayResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	json.NewEncoder(w).Encode(resp)
}
