package services

import (
	"context"
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a JWT for the user and returns it with its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ParseAccessToken validates a token string and returns the user ID it was issued for.
	ParseAccessToken(ctx context.Context, token string) (string, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// PasswordResetSvc defines the forgot/reset password flow.
type PasswordResetSvc interface {
	// RequestPasswordReset issues a reset token and emails it when the address is known.
	// Unknown addresses are not reported to the caller.
	RequestPasswordReset(ctx context.Context, email string) error
	// ResetPassword sets a new password for the holder of a valid token.
	ResetPassword(ctx context.Context, token, newPassword string) error
}
