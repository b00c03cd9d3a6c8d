// Package storage provides gateways.FileStore implementations: a local disk
// store for activity photos and a Cloudinary store for minute attachments.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// LocalStore writes uploads under a root directory. Public IDs are paths relative to the root,
// served under URLPrefix.
type LocalStore struct {
	root      string
	urlPrefix string
	maxSize   int64
}

var _ gateways.FileStore = (*LocalStore)(nil)

func NewLocalStore(root, urlPrefix string, maxSize int64) *LocalStore {
	return &LocalStore{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/"), maxSize: maxSize}
}

// Save stores the upload as {root}/{folder}/{uuid}{ext}. Uploads over the size limit are
// rejected with ErrTooLarge and leave no file behind.
func (s *LocalStore) Save(ctx context.Context, folder string, upload domain.Upload) (*domain.StoredFile, error) {
	dir := filepath.Join(s.root, filepath.Clean("/" + folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewAppError(500, "failed to create upload directory", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(upload.FileName))
	fullPath := filepath.Join(dir, name)
	f, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create upload file", err)
	}

	reader := upload.Content
	if s.maxSize > 0 {
		reader = io.LimitReader(upload.Content, s.maxSize+1)
	}
	written, copyErr := io.Copy(f, reader)
	closeErr := f.Close()
	if copyErr == nil && s.maxSize > 0 && written > s.maxSize {
		copyErr = apperrors.NewTooLargeError(fmt.Sprintf("File too large. Maximum size is %dMB", s.maxSize/(1024*1024)))
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(fullPath)
		var appErr *apperrors.AppError
		if errors.As(copyErr, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.NewAppError(500, "failed to write upload", copyErr)
	}

	publicID := path.Join(strings.Trim(filepath.ToSlash(folder), "/"), name)
	middleware.GetLoggerFromCtx(ctx).Debug("Stored upload locally", slog.String("path", fullPath), slog.Int64("size", written))
	return &domain.StoredFile{
		PublicID:     publicID,
		URL:          s.urlPrefix + "/" + publicID,
		Path:         fullPath,
		ResourceType: domain.ResourceTypeFor(upload.ContentType),
		Size:         written,
	}, nil
}

// Delete removes a stored file given its public ID or the URL returned by Save.
// Missing files are not an error.
func (s *LocalStore) Delete(ctx context.Context, publicID string, _ domain.ResourceType) error {
	if s.urlPrefix != "" && strings.HasPrefix(publicID, s.urlPrefix+"/") {
		publicID = strings.TrimPrefix(publicID, s.urlPrefix+"/")
	}
	fullPath := filepath.Join(s.root, filepath.Clean("/"+publicID))
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to delete stored file", slog.String("path", fullPath), slog.String("error", err.Error()))
		return apperrors.NewAppError(500, "failed to delete file", err)
	}
	return nil
}
