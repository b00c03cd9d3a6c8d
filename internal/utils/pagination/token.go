package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeActivityCursor creates an opaque page token from an activity cursor.
func EncodeActivityCursor(c domain.ActivityCursor) string {
	return EncodeMultiFieldToken(
		c.ActivityDate.Format(domain.DateLayout),
		strconv.Itoa(c.StartTime.Seconds()),
		c.CreatedAt.Format(timeFormat),
	)
}

// DecodeActivityCursor parses a token produced by EncodeActivityCursor.
func DecodeActivityCursor(token string) (*domain.ActivityCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}

	activityDate, err := domain.ParseDate(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (activity date parse): %w", err)
	}

	secs, err := strconv.Atoi(parts[1])
	if err != nil || secs < 0 || secs >= 24*60*60 {
		return nil, fmt.Errorf("invalid pagination token format (start time parse)")
	}

	createdAt, err := time.Parse(timeFormat, parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return &domain.ActivityCursor{
		ActivityDate: activityDate,
		StartTime:    domain.TimeOfDayFromSeconds(secs),
		CreatedAt:    createdAt,
	}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
