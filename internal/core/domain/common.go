package domain

import "time"

// Timestamps holds creation and modification times shared by persisted entities.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateLayout is the calendar-date wire format used across the API and reports.
const DateLayout = "2006-01-02"

// TruncateToDate drops the time-of-day component, keeping the result in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// StringPtr returns nil for empty strings.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
