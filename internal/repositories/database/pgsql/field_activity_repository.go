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

type PgxFieldActivityRepository struct {
	BaseRepository
}

func newPgxFieldActivityRepository(pool *pgxpool.Pool) portsrepo.FieldActivityRepositoryWithTx {
	return &PgxFieldActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FieldActivityRepositoryWithTx = (*PgxFieldActivityRepository)(nil)

const activitySelectQuery = `
SELECT
	fa.activity_id, fa.workspace_id, fa.support_staff_id, fa.activity_date, fa.start_time, fa.end_time,
	fa.title, fa.customer_id, fa.customer_name, fa.location_type, fa.location, fa.task_category_id,
	fa.task_description, fa.remarks, fa.customer_rep, fa.status, fa.created_by, fa.updated_by,
	fa.created_at, fa.updated_at,
	u.username AS staff_username, u.email AS staff_email, u.full_name AS staff_full_name,
	c.name AS category_name, c.title AS category_title, c.color AS category_color,
	c.icon AS category_icon, c.required_role AS category_required_role
FROM field_activities fa
LEFT JOIN users u ON u.user_id = fa.support_staff_id
LEFT JOIN task_categories c ON c.category_id = fa.task_category_id
`

const photoSelectQuery = `
SELECT photo_id, field_activity_id, file_path, file_name, file_size, mime_type, uploaded_by, uploaded_at
FROM field_activity_photos
`

// buildActivityListQuery renders the filter into SQL. Exposed to tests in this package.
func buildActivityListQuery(f domain.FieldActivityFilter) (string, []any) {
	q := &whereBuilder{}
	q.add("fa.workspace_id = ?", f.WorkspaceID)
	if f.DateFrom != nil {
		q.add("fa.activity_date >= ?", domain.TruncateToDate(*f.DateFrom))
	}
	if f.DateTo != nil {
		q.add("fa.activity_date <= ?", domain.TruncateToDate(*f.DateTo))
	}
	if f.SupportStaffID != nil {
		q.add("fa.support_staff_id = ?", *f.SupportStaffID)
	}
	if f.TaskCategoryID != nil {
		q.add("fa.task_category_id = ?", *f.TaskCategoryID)
	}
	if f.CustomerID != nil {
		q.add("fa.customer_id = ?", *f.CustomerID)
	}
	if f.CustomerName != nil {
		q.add("fa.customer_name ILIKE ?", "%"+*f.CustomerName+"%")
	}
	if f.Search != nil {
		q.add("fa.task_description ILIKE ?", "%"+*f.Search+"%")
	}
	if f.Status != nil {
		q.add("fa.status = ?", string(*f.Status))
	}
	if f.LocationType != nil {
		q.add("fa.location_type = ?", string(*f.LocationType))
	}
	if f.VisibleRoles != nil {
		roles := make([]string, len(f.VisibleRoles))
		for i, r := range f.VisibleRoles {
			roles[i] = string(r)
		}
		q.add("(fa.task_category_id IS NULL OR c.required_role = ANY(?))", roles)
	}

	order := "ORDER BY fa.activity_date DESC, COALESCE(fa.start_time, '00:00'::time) DESC, fa.created_at DESC\n"
	if f.Order == domain.OrderChronological {
		order = "ORDER BY fa.activity_date ASC, COALESCE(fa.start_time, '00:00'::time) ASC, fa.created_at ASC\n"
	} else if f.After != nil {
		q.add("(fa.activity_date, COALESCE(fa.start_time, '00:00'::time), fa.created_at) < (?, ?, ?)",
			f.After.ActivityDate, mapping.ToPgTime(&f.After.StartTime), f.After.CreatedAt)
	}

	query := activitySelectQuery + q.where() + order
	if f.Limit > 0 {
		q.args = append(q.args, f.Limit)
		query += fmt.Sprintf("LIMIT $%d", len(q.args))
	}
	return query, q.args
}

func (r *PgxFieldActivityRepository) getActivities(ctx context.Context, query string, args ...any) ([]domain.FieldActivity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query field activities", err)
	}
	defer rows.Close()
	ms, err := collect[models.FieldActivity](rows, "failed to collect field activity rows")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainFieldActivitySlice(ms), nil
}

func (r *PgxFieldActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.FieldActivity, error) {
	activities, err := r.getActivities(ctx, activitySelectQuery+`WHERE fa.activity_id = $1`, activityID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, apperrors.ErrNotFound
	}
	activity := activities[0]
	photos, err := r.listPhotos(ctx, r.Pool, activityID)
	if err != nil {
		return nil, err
	}
	activity.Photos = photos
	return &activity, nil
}

func (r *PgxFieldActivityRepository) ListActivities(ctx context.Context, filter domain.FieldActivityFilter) ([]domain.FieldActivity, error) {
	query, args := buildActivityListQuery(filter)
	return r.getActivities(ctx, query, args...)
}

func (r *PgxFieldActivityRepository) SaveActivity(ctx context.Context, a domain.FieldActivity) error {
	query := `
		INSERT INTO field_activities (
			activity_id, workspace_id, support_staff_id, activity_date, start_time, end_time, title,
			customer_id, customer_name, location_type, location, task_category_id, task_description,
			remarks, customer_rep, status, created_by, updated_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		a.ActivityID, a.WorkspaceID, a.SupportStaffID, a.ActivityDate,
		mapping.ToPgTime(a.StartTime), mapping.ToPgTime(a.EndTime), a.Title,
		a.CustomerID, a.CustomerName, string(a.LocationType), a.Location, a.TaskCategoryID, a.TaskDescription,
		a.Remarks, a.CustomerRep, string(a.Status), a.CreatedBy, a.UpdatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "field activity "+a.ActivityID+" already exists",
			"support staff or task category does not exist", "failed to save field activity")
	}
	return nil
}

func (r *PgxFieldActivityRepository) UpdateActivity(ctx context.Context, a domain.FieldActivity) error {
	query := `
		UPDATE field_activities
		SET support_staff_id = $1, activity_date = $2, start_time = $3, end_time = $4, title = $5,
			customer_id = $6, customer_name = $7, location_type = $8, location = $9, task_category_id = $10,
			task_description = $11, remarks = $12, customer_rep = $13, status = $14, updated_by = $15,
			updated_at = $16
		WHERE activity_id = $17;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		a.SupportStaffID, a.ActivityDate, mapping.ToPgTime(a.StartTime), mapping.ToPgTime(a.EndTime), a.Title,
		a.CustomerID, a.CustomerName, string(a.LocationType), a.Location, a.TaskCategoryID,
		a.TaskDescription, a.Remarks, a.CustomerRep, string(a.Status), a.UpdatedBy,
		a.UpdatedAt, a.ActivityID,
	)
	if err != nil {
		return translateWriteError(err, "field activity conflict", "support staff or task category does not exist", "failed to update field activity")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteActivity removes the activity (photo rows cascade) and returns its photos so the
// caller can delete the files.
func (r *PgxFieldActivityRepository) DeleteActivity(ctx context.Context, activityID string) ([]domain.FieldActivityPhoto, error) {
	var photos []domain.FieldActivityPhoto
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		photos, err = r.listPhotos(ctx, tx, activityID)
		if err != nil {
			return err
		}
		return deleteByPolicy(ctx, tx, domain.EntityFieldActivity, "field_activities", "activity_id", activityID)
	})
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PgxFieldActivityRepository) listPhotos(ctx context.Context, q querier, activityID string) ([]domain.FieldActivityPhoto, error) {
	rows, err := q.Query(ctx, photoSelectQuery+`WHERE field_activity_id = $1 ORDER BY uploaded_at ASC`, activityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity photos", err)
	}
	defer rows.Close()
	ms, err := collect[models.FieldActivityPhoto](rows, "failed to collect activity photos")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainFieldActivityPhotoSlice(ms), nil
}

func (r *PgxFieldActivityRepository) SavePhoto(ctx context.Context, photo domain.FieldActivityPhoto) error {
	m := mapping.ToModelFieldActivityPhoto(photo)
	query := `
		INSERT INTO field_activity_photos (
			photo_id, field_activity_id, file_path, file_name, file_size, mime_type, uploaded_by, uploaded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PhotoID, m.FieldActivityID, m.FilePath, m.FileName, m.FileSize, m.MimeType, m.UploadedBy, m.UploadedAt,
	)
	if err != nil {
		return translateWriteError(err, "photo already exists", "field activity does not exist", "failed to save activity photo")
	}
	return nil
}

func (r *PgxFieldActivityRepository) FindPhotoByID(ctx context.Context, activityID, photoID string) (*domain.FieldActivityPhoto, error) {
	rows, err := r.Pool.Query(ctx, photoSelectQuery+`WHERE field_activity_id = $1 AND photo_id = $2`, activityID, photoID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity photo", err)
	}
	defer rows.Close()
	ms, err := collect[models.FieldActivityPhoto](rows, "failed to collect activity photo")
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	photo := mapping.ToDomainFieldActivityPhoto(ms[0])
	return &photo, nil
}

func (r *PgxFieldActivityRepository) DeletePhoto(ctx context.Context, photoID string) error {
	return deleteByPolicy(ctx, r.Pool, domain.EntityFieldActivityPhoto, "field_activity_photos", "photo_id", photoID)
}
