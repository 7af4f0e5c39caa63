package onboarding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/artin-ai/onboarding-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConnector struct {
	got  map[string]string
	resp entity.RelayResponse
	err  error
}

func (s *stubConnector) Submit(_ context.Context, answers map[string]string) (entity.RelayResponse, error) {
	s.got = answers
	return s.resp, s.err
}

func doSubmit(t *testing.T, conn WebhookConnector, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/onboarding", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(conn).Submit(rec, req)
	return rec
}

func decodeRelay(t *testing.T, rec *httptest.ResponseRecorder) entity.RelayResponse {
	t.Helper()
	var resp entity.RelayResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSubmit_Success(t *testing.T) {
	conn := &stubConnector{
		resp: entity.RelayResponse{Code: http.StatusOK, Text: "Your data is successfully submitted"},
	}

	rec := doSubmit(t, conn, `{"clientName":"Ana","companyName":"Acme"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeRelay(t, rec)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Your data is successfully submitted", resp.Text)

	assert.Equal(t, map[string]string{"clientName": "Ana", "companyName": "Acme"}, conn.got)
}

func TestSubmit_StatusMirrorsEnvelopeCode(t *testing.T) {
	conn := &stubConnector{
		resp: entity.RelayResponse{Code: http.StatusBadGateway, Text: "Failed to submit data to webhook"},
		err:  assert.AnError,
	}

	rec := doSubmit(t, conn, `{"a":"b"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeRelay(t, rec)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Equal(t, "Failed to submit data to webhook", resp.Text)
}

func TestSubmit_WebhookNotConfigured(t *testing.T) {
	conn := &stubConnector{
		resp: entity.RelayResponse{Code: http.StatusInternalServerError, Text: "Webhook URL is not configured"},
		err:  entity.ErrWebhookNotConfigured,
	}

	rec := doSubmit(t, conn, `{"a":"b"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeRelay(t, rec)
	assert.Equal(t, "Webhook URL is not configured", resp.Text)
}

func TestSubmit_InvalidBody(t *testing.T) {
	conn := &stubConnector{}

	rec := doSubmit(t, conn, `{"not":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeRelay(t, rec)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Nil(t, conn.got)
}
