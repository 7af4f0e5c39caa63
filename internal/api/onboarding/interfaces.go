package onboarding

import (
	"context"

	"github.com/artin-ai/onboarding-backend/internal/entity"
)

// WebhookConnector forwards an answer map to the configured downstream
// webhook and reports the translated outcome.
type WebhookConnector interface {
	Submit(ctx context.Context, answers map[string]string) (entity.RelayResponse, error)
}
