// Package companies reads the customer company list from the external directory API.
package companies

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// Client fetches companies with a single GET against a fixed URL.
type Client struct {
	httpClient *resty.Client
	url        string
}

var _ gateways.CompanyDirectory = (*Client)(nil)

func NewClient(url string) *Client {
	return &Client{
		httpClient: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("Accept", "application/json"),
		url: url,
	}
}

// ListCompanies returns the upstream payload as-is. Any upstream failure is reported as
// service unavailable.
func (c *Client) ListCompanies(ctx context.Context) ([]map[string]any, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	var companies []map[string]any
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&companies).
		Get(c.url)
	if err != nil {
		logger.Error("Companies API request failed", slog.String("error", err.Error()))
		return nil, apperrors.NewServiceUnavailableError(
			fmt.Sprintf("Failed to fetch companies from external API: %s", err.Error()), err)
	}
	if resp.IsError() {
		logger.Error("Companies API returned an error", slog.Int("status_code", resp.StatusCode()))
		return nil, apperrors.NewServiceUnavailableError(
			fmt.Sprintf("Failed to fetch companies from external API: %s", resp.Status()), nil)
	}
	if companies == nil {
		companies = []map[string]any{}
	}
	return companies, nil
}
