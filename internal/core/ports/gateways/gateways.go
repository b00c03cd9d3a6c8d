// Package gateways declares the outbound ports the core talks to: email transport,
// file storage, the companies directory and the realtime hub.
package gateways

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// EmailSender delivers one HTML email. Implementations do not retry.
type EmailSender interface {
	Send(ctx context.Context, msg domain.EmailMessage) (*domain.SendResult, error)
}

// FileStore persists uploaded files. folder groups related uploads.
type FileStore interface {
	Save(ctx context.Context, folder string, upload domain.Upload) (*domain.StoredFile, error)
	Delete(ctx context.Context, publicID string, resourceType domain.ResourceType) error
}

// CompanyDirectory lists customer companies from the external directory.
type CompanyDirectory interface {
	ListCompanies(ctx context.Context) ([]map[string]any, error)
}

// WorkspaceNotifier publishes realtime events to a workspace's connected clients.
type WorkspaceNotifier interface {
	Publish(ctx context.Context, event domain.RealtimeEvent) error
}
