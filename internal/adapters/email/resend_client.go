// Package email sends transactional email through the Resend HTTP API.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

const defaultTimeout = 30 * time.Second

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// ResendClient implements gateways.EmailSender. It never retries: a failed send
// is reported to the caller, which decides whether it is fatal.
type ResendClient struct {
	httpClient *resty.Client
	from       string
}

var _ gateways.EmailSender = (*ResendClient)(nil)

// NewResendClient builds a client for baseURL (normally https://api.resend.com).
func NewResendClient(baseURL, apiKey, fromEmail, fromName string) *ResendClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultTimeout).
		SetRetryCount(0).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	return &ResendClient{httpClient: client, from: from}
}

func (c *ResendClient) Send(ctx context.Context, msg domain.EmailMessage) (*domain.SendResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if len(msg.To) == 0 {
		return nil, apperrors.NewValidationFailedError("email has no recipients")
	}

	var result resendResponse
	var apiErr resendError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(resendRequest{From: c.from, To: msg.To, Subject: msg.Subject, HTML: msg.HTML}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		logger.Error("Resend API call failed", slog.String("error", err.Error()))
		return nil, apperrors.NewTransportError(err.Error(), err)
	}
	if resp.IsError() {
		message := apiErr.Message
		if message == "" {
			message = fmt.Sprintf("email provider returned status %d", resp.StatusCode())
		}
		logger.Error("Resend API returned error",
			slog.Int("status_code", resp.StatusCode()),
			slog.String("name", apiErr.Name),
			slog.String("msg", message),
		)
		return nil, apperrors.NewTransportError(message, nil)
	}

	logger.Info("Email sent", slog.String("email_id", result.ID), slog.Int("recipients", len(msg.To)))
	return &domain.SendResult{ID: result.ID, Message: "Email sent successfully"}, nil
}
