package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

const cloudinaryBaseURL = "https://api.cloudinary.com/v1_1"

type cloudinaryUploadResponse struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	Bytes        int64  `json:"bytes"`
	ResourceType string `json:"resource_type"`
}

type cloudinaryDestroyResponse struct {
	Result string `json:"result"`
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CloudinaryStore uploads files with signed requests to the Cloudinary upload API.
type CloudinaryStore struct {
	httpClient *resty.Client
	apiKey     string
	apiSecret  string
	now        func() time.Time
}

var _ gateways.FileStore = (*CloudinaryStore)(nil)

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) *CloudinaryStore {
	return newCloudinaryStore(cloudinaryBaseURL+"/"+cloudName, apiKey, apiSecret)
}

func newCloudinaryStore(baseURL, apiKey, apiSecret string) *CloudinaryStore {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		SetHeader("Accept", "application/json")
	return &CloudinaryStore{httpClient: client, apiKey: apiKey, apiSecret: apiSecret, now: time.Now}
}

// sign computes the Cloudinary request signature: the parameters sorted by name,
// joined as k=v pairs with '&', with the API secret appended, SHA-1 hex encoded.
func (s *CloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}

func (s *CloudinaryStore) signedForm(params map[string]string) map[string]string {
	params["timestamp"] = strconv.FormatInt(s.now().Unix(), 10)
	form := map[string]string{"api_key": s.apiKey, "signature": s.sign(params)}
	for k, v := range params {
		form[k] = v
	}
	return form
}

func (s *CloudinaryStore) Save(ctx context.Context, folder string, upload domain.Upload) (*domain.StoredFile, error) {
	resourceType := domain.ResourceTypeFor(upload.ContentType)
	var result cloudinaryUploadResponse
	var apiErr cloudinaryError
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetFormData(s.signedForm(map[string]string{"folder": folder})).
		SetFileReader("file", upload.FileName, upload.Content).
		SetResult(&result).
		SetError(&apiErr).
		Post("/" + string(resourceType) + "/upload")
	if err != nil {
		return nil, apperrors.NewTransportError("Failed to upload file", err)
	}
	if resp.IsError() {
		middleware.GetLoggerFromCtx(ctx).Error("Cloudinary upload failed",
			slog.Int("status_code", resp.StatusCode()), slog.String("msg", apiErr.Error.Message))
		return nil, apperrors.NewTransportError(fmt.Sprintf("Failed to upload file: %s", apiErr.Error.Message), nil)
	}

	if result.ResourceType != "" {
		resourceType = domain.ResourceType(result.ResourceType)
	}
	return &domain.StoredFile{
		PublicID:     result.PublicID,
		URL:          result.SecureURL,
		ResourceType: resourceType,
		Size:         result.Bytes,
	}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string, resourceType domain.ResourceType) error {
	if resourceType == "" {
		resourceType = domain.ResourceRaw
	}
	var result cloudinaryDestroyResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetFormData(s.signedForm(map[string]string{"public_id": publicID})).
		SetResult(&result).
		Post("/" + string(resourceType) + "/destroy")
	if err != nil {
		return apperrors.NewTransportError("Failed to delete file", err)
	}
	if resp.IsError() || (result.Result != "ok" && result.Result != "not found") {
		return apperrors.NewTransportError(fmt.Sprintf("Failed to delete file: %s", resp.Status()), nil)
	}
	return nil
}
