package pgsql

import (
	"context"
	"fmt"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	"github.com/flowhive/flowhive_backend/internal/models"
	"github.com/flowhive/flowhive_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMeetingMinuteRepository struct {
	BaseRepository
}

func newPgxMeetingMinuteRepository(pool *pgxpool.Pool) portsrepo.MeetingMinuteRepositoryWithTx {
	return &PgxMeetingMinuteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MeetingMinuteRepositoryWithTx = (*PgxMeetingMinuteRepository)(nil)

const minuteColumns = `
	mm.minute_id, mm.workspace_id, mm.title, mm.meeting_date, mm.meeting_time_start, mm.meeting_time_end,
	mm.location, mm.attendees, mm.agenda, mm.discussions, mm.decisions, mm.created_by, mm.updated_by,
	mm.created_at, mm.updated_at,
	u.username AS creator_username, u.email AS creator_email, u.full_name AS creator_full_name`

const attachmentSelectQuery = `
SELECT attachment_id, meeting_minute_id, storage_public_id, url, resource_type, file_name, file_size,
	mime_type, uploaded_by, uploaded_at
FROM minute_attachments
`

const actionItemSelectQuery = `
SELECT item_id, meeting_minute_id, description, assigned_to, due_date, status, created_at, completed_at
FROM minute_action_items
`

func (r *PgxMeetingMinuteRepository) FindMinuteByID(ctx context.Context, minuteID string) (*domain.MeetingMinute, error) {
	query := `SELECT ` + minuteColumns + `
		FROM meeting_minutes mm
		LEFT JOIN users u ON u.user_id = mm.created_by
		WHERE mm.minute_id = $1`
	rows, err := r.Pool.Query(ctx, query, minuteID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query meeting minutes", err)
	}
	defer rows.Close()
	ms, err := collect[models.MeetingMinute](rows, "failed to collect meeting minutes")
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	minute := mapping.ToDomainMeetingMinute(ms[0])

	if minute.Attachments, err = r.listAttachments(ctx, r.Pool, minuteID); err != nil {
		return nil, err
	}
	if minute.ActionItems, err = r.listActionItems(ctx, minuteID); err != nil {
		return nil, err
	}
	return &minute, nil
}

func (r *PgxMeetingMinuteRepository) ListMinutes(ctx context.Context, filter domain.MeetingMinuteFilter) ([]domain.MeetingMinuteSummary, error) {
	q := &whereBuilder{}
	q.add("mm.workspace_id = ?", filter.WorkspaceID)
	if filter.DateFrom != nil {
		q.add("mm.meeting_date >= ?", domain.TruncateToDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		q.add("mm.meeting_date <= ?", domain.TruncateToDate(*filter.DateTo))
	}
	if filter.Search != nil && *filter.Search != "" {
		q.add("(mm.title ILIKE ? OR COALESCE(mm.agenda, '') ILIKE ? OR COALESCE(mm.discussions, '') ILIKE ?)",
			"%"+*filter.Search+"%", "%"+*filter.Search+"%", "%"+*filter.Search+"%")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + minuteColumns + `,
			(SELECT COUNT(*) FROM minute_attachments a WHERE a.meeting_minute_id = mm.minute_id)::int AS attachment_count,
			(SELECT COUNT(*) FROM minute_action_items i WHERE i.meeting_minute_id = mm.minute_id)::int AS action_item_count
		FROM meeting_minutes mm
		LEFT JOIN users u ON u.user_id = mm.created_by
		` + q.where() + fmt.Sprintf(`ORDER BY mm.meeting_date DESC, mm.created_at DESC LIMIT $%d OFFSET $%d`, len(q.args)+1, len(q.args)+2)
	args := append(q.args, limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query meeting minutes", err)
	}
	defer rows.Close()
	ms, err := collect[models.MeetingMinuteSummary](rows, "failed to collect meeting minutes")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainMeetingMinuteSummaries(ms), nil
}

// SaveMinute inserts the minutes and any initial action items in one transaction.
func (r *PgxMeetingMinuteRepository) SaveMinute(ctx context.Context, m domain.MeetingMinute) error {
	attendees, err := mapping.AttendeesJSON(m.Attendees)
	if err != nil {
		return apperrors.NewValidationFailedError("invalid attendees")
	}
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO meeting_minutes (
				minute_id, workspace_id, title, meeting_date, meeting_time_start, meeting_time_end, location,
				attendees, agenda, discussions, decisions, created_by, updated_by, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
		`
		_, err := tx.Exec(ctx, query,
			m.MinuteID, m.WorkspaceID, m.Title, m.MeetingDate,
			mapping.ToPgTime(m.MeetingTimeStart), mapping.ToPgTime(m.MeetingTimeEnd), m.Location,
			string(attendees), m.Agenda, m.Discussions, m.Decisions, m.CreatedBy, m.UpdatedBy, m.CreatedAt, m.UpdatedAt,
		)
		if err != nil {
			return translateWriteError(err, "meeting minutes already exist", "workspace does not exist", "failed to save meeting minutes")
		}
		for _, item := range m.ActionItems {
			if err := insertActionItem(ctx, tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxMeetingMinuteRepository) UpdateMinute(ctx context.Context, m domain.MeetingMinute) error {
	attendees, err := mapping.AttendeesJSON(m.Attendees)
	if err != nil {
		return apperrors.NewValidationFailedError("invalid attendees")
	}
	query := `
		UPDATE meeting_minutes
		SET title = $1, meeting_date = $2, meeting_time_start = $3, meeting_time_end = $4, location = $5,
			attendees = $6, agenda = $7, discussions = $8, decisions = $9, updated_by = $10, updated_at = $11
		WHERE minute_id = $12;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title, m.MeetingDate, mapping.ToPgTime(m.MeetingTimeStart), mapping.ToPgTime(m.MeetingTimeEnd), m.Location,
		string(attendees), m.Agenda, m.Discussions, m.Decisions, m.UpdatedBy, m.UpdatedAt, m.MinuteID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update meeting minutes", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteMinute removes the minutes (children cascade) and returns the attachments for storage cleanup.
func (r *PgxMeetingMinuteRepository) DeleteMinute(ctx context.Context, minuteID string) ([]domain.MinuteAttachment, error) {
	var attachments []domain.MinuteAttachment
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		if attachments, err = r.listAttachments(ctx, tx, minuteID); err != nil {
			return err
		}
		return deleteByPolicy(ctx, tx, domain.EntityMeetingMinute, "meeting_minutes", "minute_id", minuteID)
	})
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *PgxMeetingMinuteRepository) listAttachments(ctx context.Context, q querier, minuteID string) ([]domain.MinuteAttachment, error) {
	rows, err := q.Query(ctx, attachmentSelectQuery+`WHERE meeting_minute_id = $1 ORDER BY uploaded_at ASC`, minuteID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query minute attachments", err)
	}
	defer rows.Close()
	ms, err := collect[models.MinuteAttachment](rows, "failed to collect minute attachments")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainMinuteAttachmentSlice(ms), nil
}

func (r *PgxMeetingMinuteRepository) listActionItems(ctx context.Context, minuteID string) ([]domain.MinuteActionItem, error) {
	rows, err := r.Pool.Query(ctx, actionItemSelectQuery+`WHERE meeting_minute_id = $1 ORDER BY created_at ASC`, minuteID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query action items", err)
	}
	defer rows.Close()
	ms, err := collect[models.MinuteActionItem](rows, "failed to collect action items")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainMinuteActionItemSlice(ms), nil
}

func (r *PgxMeetingMinuteRepository) SaveAttachment(ctx context.Context, a domain.MinuteAttachment) error {
	query := `
		INSERT INTO minute_attachments (
			attachment_id, meeting_minute_id, storage_public_id, url, resource_type, file_name, file_size,
			mime_type, uploaded_by, uploaded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		a.AttachmentID, a.MeetingMinuteID, a.StoragePublicID, a.URL, string(a.ResourceType), a.FileName, a.FileSize,
		a.MimeType, a.UploadedBy, a.UploadedAt,
	)
	if err != nil {
		return translateWriteError(err, "attachment already exists", "meeting minutes do not exist", "failed to save attachment")
	}
	return nil
}

func (r *PgxMeetingMinuteRepository) FindAttachmentByID(ctx context.Context, minuteID, attachmentID string) (*domain.MinuteAttachment, error) {
	rows, err := r.Pool.Query(ctx, attachmentSelectQuery+`WHERE meeting_minute_id = $1 AND attachment_id = $2`, minuteID, attachmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attachment", err)
	}
	defer rows.Close()
	ms, err := collect[models.MinuteAttachment](rows, "failed to collect attachment")
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	a := mapping.ToDomainMinuteAttachment(ms[0])
	return &a, nil
}

func (r *PgxMeetingMinuteRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	return deleteByPolicy(ctx, r.Pool, domain.EntityMinuteAttachment, "minute_attachments", "attachment_id", attachmentID)
}

func insertActionItem(ctx context.Context, q execer, item domain.MinuteActionItem) error {
	query := `
		INSERT INTO minute_action_items (
			item_id, meeting_minute_id, description, assigned_to, due_date, status, created_at, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := q.Exec(ctx, query,
		item.ItemID, item.MeetingMinuteID, item.Description, item.AssignedTo, item.DueDate,
		string(item.Status), item.CreatedAt, item.CompletedAt,
	)
	if err != nil {
		return translateWriteError(err, "action item already exists", "meeting minutes do not exist", "failed to save action item")
	}
	return nil
}

func (r *PgxMeetingMinuteRepository) SaveActionItem(ctx context.Context, item domain.MinuteActionItem) error {
	return insertActionItem(ctx, r.Pool, item)
}

func (r *PgxMeetingMinuteRepository) FindActionItemByID(ctx context.Context, minuteID, itemID string) (*domain.MinuteActionItem, error) {
	rows, err := r.Pool.Query(ctx, actionItemSelectQuery+`WHERE meeting_minute_id = $1 AND item_id = $2`, minuteID, itemID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query action item", err)
	}
	defer rows.Close()
	ms, err := collect[models.MinuteActionItem](rows, "failed to collect action item")
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	item := mapping.ToDomainMinuteActionItem(ms[0])
	return &item, nil
}

func (r *PgxMeetingMinuteRepository) UpdateActionItem(ctx context.Context, item domain.MinuteActionItem) error {
	query := `
		UPDATE minute_action_items
		SET description = $1, assigned_to = $2, due_date = $3, status = $4, completed_at = $5
		WHERE item_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		item.Description, item.AssignedTo, item.DueDate, string(item.Status), item.CompletedAt, item.ItemID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update action item", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMeetingMinuteRepository) DeleteActionItem(ctx context.Context, itemID string) error {
	return deleteByPolicy(ctx, r.Pool, domain.EntityMinuteActionItem, "minute_action_items", "item_id", itemID)
}
