package webhook

import (
	"context"
	"errors"
	"net/http"

	"github.com/artin-ai/onboarding-backend/internal/config"
	"github.com/artin-ai/onboarding-backend/internal/entity"
	"github.com/artin-ai/onboarding-backend/internal/integration/common"
	pkghttp "github.com/artin-ai/onboarding-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// User-facing relay messages, mirrored to the wizard front end verbatim.
const (
	MsgSubmitSuccess       = "Your data is successfully submitted"
	MsgWebhookNotSet       = "Webhook URL is not configured"
	MsgWebhookRejected     = "Failed to submit data to webhook"
	MsgSubmitInternalError = "An error occurred while submitting your data"
)

// Connector forwards completed answer maps to the configured downstream
// webhook. It performs no validation or transformation of the payload,
// only forwarding plus status translation.
type Connector struct {
	config    config.WebhookConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.WebhookConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Submit forwards the answer map unmodified and translates the outcome
// into the {code, text} envelope the wizard expects. The returned
// RelayResponse is always usable; err is non-nil only alongside a
// non-200 code.
func (c *Connector) Submit(ctx context.Context, answers map[string]string) (entity.RelayResponse, error) {
	if c.config.SubmitURL == "" {
		ctxzap.Warn(ctx, "webhook submit URL is not configured")
		return entity.RelayResponse{
			Code: http.StatusInternalServerError,
			Text: MsgWebhookNotSet,
		}, entity.ErrWebhookNotConfigured
	}

	ctxzap.Debug(ctx, "forwarding answers to webhook",
		zap.String("webhook_url", c.config.SubmitURL),
		zap.Int("answer_count", len(answers)),
	)

	err := c.connector.DoRequestWithRetry(
		ctx,
		http.MethodPost,
		"",
		answers,
		nil,
		c.config.Retry.ToRetryOptions(),
		pkghttp.WithURL(c.config.SubmitURL),
	)
	if err != nil {
		var httpErr *pkghttp.HTTPError
		if errors.As(err, &httpErr) {
			ctxzap.Error(ctx, "webhook rejected submission",
				zap.Int("status", httpErr.StatusCode),
				zap.Error(err),
			)
			return entity.RelayResponse{
				Code: httpErr.StatusCode,
				Text: MsgWebhookRejected,
			}, err
		}

		ctxzap.Error(ctx, "failed to reach webhook", zap.Error(err))
		return entity.RelayResponse{
			Code: http.StatusInternalServerError,
			Text: MsgSubmitInternalError,
		}, err
	}

	ctxzap.Info(ctx, "answers forwarded to webhook successfully",
		zap.Int("answer_count", len(answers)),
	)
	return entity.RelayResponse{
		Code: http.StatusOK,
		Text: MsgSubmitSuccess,
	}, nil
}
