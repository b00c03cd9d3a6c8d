package mapping

import (
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
)

const microsPerSecond = 1_000_000

// ToModelTimestamps converts domain Timestamps to model Timestamps
func ToModelTimestamps(d domain.Timestamps) models.Timestamps {
	return models.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

// ToDomainTimestamps converts model Timestamps to domain Timestamps
func ToDomainTimestamps(m models.Timestamps) domain.Timestamps {
	return domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// ToPgTime converts an optional time of day to a TIME column value.
func ToPgTime(t *domain.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(t.Seconds()) * microsPerSecond, Valid: true}
}

// ToDomainTimeOfDay converts a TIME column value, truncating sub-second precision.
func ToDomainTimeOfDay(t pgtype.Time) *domain.TimeOfDay {
	if !t.Valid {
		return nil
	}
	tod := domain.TimeOfDayFromSeconds(int(t.Microseconds / microsPerSecond))
	return &tod
}
