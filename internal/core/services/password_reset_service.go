package services

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

const passwordResetSubject = "Reset Your Flowhive Password"

var passwordResetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Reset your password</h2>
  <p>Hi {{.Name}},</p>
  <p>We received a request to reset your Flowhive password. Click the button below to choose a new one.</p>
  <p><a href="{{.Link}}" style="background:#2563eb;color:#ffffff;padding:10px 18px;border-radius:6px;text-decoration:none;">Reset Password</a></p>
  <p>This link expires in {{.Expiry}}. If you did not request a reset, you can ignore this email.</p>
</body>
</html>`))

type passwordResetService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryWithTx
	email       gateways.EmailSender
	frontendURL string
	expiry      time.Duration
	now         func() time.Time
}

// NewPasswordResetService wires the forgot/reset password flow.
func NewPasswordResetService(userRepo portsrepo.UserRepositoryWithTx, email gateways.EmailSender, frontendURL string, expiry time.Duration) portssvc.PasswordResetSvc {
	return &passwordResetService{
		userRepo:    userRepo,
		email:       email,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		expiry:      expiry,
		now:         time.Now,
	}
}

var _ portssvc.PasswordResetSvc = (*passwordResetService)(nil)

// RequestPasswordReset never reveals whether the address is registered. Email failures are logged.
func (s *passwordResetService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, hash, err := utils.NewResetToken()
	if err != nil {
		return apperrors.NewAppError(500, "Failed to generate reset token", err)
	}
	if err := s.userRepo.SetResetToken(ctx, user.UserID, hash, s.now().UTC().Add(s.expiry)); err != nil {
		s.LogError(ctx, err, "Failed to store reset token", slog.String("user_id", user.UserID))
		return err
	}

	html, err := s.renderEmail(user, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to render password reset email")
		return nil
	}
	if _, err := s.email.Send(ctx, domain.EmailMessage{To: []string{user.Email}, Subject: passwordResetSubject, HTML: html}); err != nil {
		s.LogError(ctx, err, "Failed to send password reset email", slog.String("user_id", user.UserID))
	}
	return nil
}

func (s *passwordResetService) renderEmail(user *domain.User, token string) (string, error) {
	var buf bytes.Buffer
	err := passwordResetTemplate.Execute(&buf, map[string]string{
		"Name":   user.DisplayName(),
		"Link":   s.frontendURL + "/reset-password?token=" + url.QueryEscape(token),
		"Expiry": s.expiry.String(),
	})
	return buf.String(), err
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < utils.MinPasswordLength {
		return apperrors.NewValidationFailedError("Password must be at least 8 characters")
	}
	user, err := s.userRepo.FindUserByResetTokenHash(ctx, utils.HashResetToken(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(400, "Invalid or expired reset token", apperrors.ErrResetTokenInvalid)
		}
		return err
	}
	if user.ResetTokenExpires == nil || s.now().After(*user.ResetTokenExpires) {
		_ = s.userRepo.ClearResetToken(ctx, user.UserID)
		return apperrors.NewAppError(400, "Invalid or expired reset token", apperrors.ErrResetTokenExpired)
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewAppError(500, "Failed to reset password", err)
	}
	user.HashedPassword = hashed
	user.UpdatedAt = s.now().UTC()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", user.UserID))
		return err
	}
	if err := s.userRepo.ClearResetToken(ctx, user.UserID); err != nil {
		s.LogError(ctx, err, "Failed to clear reset token", slog.String("user_id", user.UserID))
		return err
	}
	s.LogInfo(ctx, "Password reset completed", slog.String("user_id", user.UserID))
	return nil
}
