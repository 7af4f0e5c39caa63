package webhook

import (
	"context"
	"net/http"

	"github.com/artin-ai/onboarding-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector accepts every submission without calling anything.
// Used with ENABLE_MOCKS for local development.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Submit(ctx context.Context, answers map[string]string) (entity.RelayResponse, error) {
	ctxzap.Info(ctx, "[MOCK] forwarding answers to webhook",
		zap.Int("answer_count", len(answers)),
	)

	return entity.RelayResponse{
		Code: http.StatusOK,
		Text: MsgSubmitSuccess,
	}, nil
}
