package dto

import (
	"fmt"
	"time"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

func parseDate(field, value string) (time.Time, error) {
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalTime(field string, value *string) (*domain.TimeOfDay, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(*value)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("%s must be a time in HH:MM or HH:MM:SS format", field))
	}
	return &t, nil
}

// ParseDateRange validates a pair of required YYYY-MM-DD bounds.
func ParseDateRange(from, to string) (domain.DateRange, error) {
	f, err := parseDate("date_from", from)
	if err != nil {
		return domain.DateRange{}, err
	}
	t, err := parseDate("date_to", to)
	if err != nil {
		return domain.DateRange{}, err
	}
	if t.Before(f) {
		return domain.DateRange{}, apperrors.NewValidationFailedError("date_to must not be before date_from")
	}
	return domain.DateRange{From: f, To: t}, nil
}

func formatTime(t *domain.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
