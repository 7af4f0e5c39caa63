package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/artin-ai/onboarding-backend/internal/config"
	"github.com/artin-ai/onboarding-backend/internal/entity"
	pkgRetry "github.com/artin-ai/onboarding-backend/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConnector(submitURL string) *Connector {
	cfg := config.WebhookConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           5 * time.Second,
			KeepAlive:             30 * time.Second,
			IdleConnTimeout:       30 * time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
		},
		SubmitURL: submitURL,
		Retry: pkgRetry.RetryConfig{
			Attempts: 1,
			Delay:    time.Millisecond,
			MaxDelay: time.Millisecond,
		},
	}
	return NewConnector(cfg, zap.NewNop())
}

func TestConnector_Submit_ForwardsAnswersVerbatim(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	answers := map[string]string{
		"clientName":  "Ana",
		"companyName": "Acme",
	}

	resp, err := testConnector(server.URL).Submit(context.Background(), answers)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, MsgSubmitSuccess, resp.Text)
	assert.Equal(t, answers, received)
}

func TestConnector_Submit_URLNotConfigured(t *testing.T) {
	resp, err := testConnector("").Submit(context.Background(), map[string]string{"a": "b"})
	assert.ErrorIs(t, err, entity.ErrWebhookNotConfigured)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, MsgWebhookNotSet, resp.Text)
}

func TestConnector_Submit_MirrorsDownstreamStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusBadGateway} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		resp, err := testConnector(server.URL).Submit(context.Background(), map[string]string{"a": "b"})
		assert.Error(t, err)
		assert.Equal(t, status, resp.Code, "status %d", status)
		assert.Equal(t, MsgWebhookRejected, resp.Text)

		server.Close()
	}
}

func TestConnector_Submit_UnreachableWebhook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens on this URL anymore

	resp, err := testConnector(server.URL).Submit(context.Background(), map[string]string{"a": "b"})
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, MsgSubmitInternalError, resp.Text)
}

func TestConnector_Submit_RetriesNetworkFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.WebhookConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           5 * time.Second,
			KeepAlive:             30 * time.Second,
			IdleConnTimeout:       30 * time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
		},
		SubmitURL: server.URL,
		Retry: pkgRetry.RetryConfig{
			Attempts: 3,
			Delay:    time.Millisecond,
			MaxDelay: time.Millisecond,
		},
	}

	resp, err := NewConnector(cfg, zap.NewNop()).Submit(context.Background(), map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)

	// A healthy webhook is hit exactly once even with retries enabled.
	assert.Equal(t, int32(1), calls.Load())
}

func TestMockConnector_Submit(t *testing.T) {
	mock := NewMockConnector(zap.NewNop())

	resp, err := mock.Submit(context.Background(), map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, MsgSubmitSuccess, resp.Text)
}
