package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

func TestResendClient_Send(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	client := NewResendClient(srv.URL, "re_test", "reports@flowhive.io", "Flowhive")
	res, err := client.Send(context.Background(), domain.EmailMessage{
		To:      []string{"boss@example.com"},
		Subject: "Weekly Activity Report - 2024-03-04 to 2024-03-10",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "email-123", res.ID)
	assert.Equal(t, "Flowhive <reports@flowhive.io>", got.From)
	assert.Equal(t, []string{"boss@example.com"}, got.To)
}

func TestResendClient_SendErrorCarriesProviderMessage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
	}))
	defer srv.Close()

	client := NewResendClient(srv.URL, "re_test", "reports@flowhive.io", "")
	_, err := client.Send(context.Background(), domain.EmailMessage{To: []string{"x"}, Subject: "s", HTML: "h"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.Equal(t, "Invalid to field", apperrors.Message(err))
	assert.Equal(t, 1, calls)
}

func TestResendClient_NoRecipients(t *testing.T) {
	client := NewResendClient("http://127.0.0.1:0", "k", "a@b.c", "")
	_, err := client.Send(context.Background(), domain.EmailMessage{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
