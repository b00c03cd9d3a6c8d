package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// FieldActivity is a field_activities row joined with its assignee and category.
// The staff_* and category_* columns come from the joins.
type FieldActivity struct {
	ActivityID      string      `db:"activity_id"`
	WorkspaceID     string      `db:"workspace_id"`
	SupportStaffID  string      `db:"support_staff_id"`
	ActivityDate    time.Time   `db:"activity_date"`
	StartTime       pgtype.Time `db:"start_time"`
	EndTime         pgtype.Time `db:"end_time"`
	Title           string      `db:"title"`
	CustomerID      *string     `db:"customer_id"`
	CustomerName    string      `db:"customer_name"`
	LocationType    string      `db:"location_type"`
	Location        string      `db:"location"`
	TaskCategoryID  *string     `db:"task_category_id"`
	TaskDescription *string     `db:"task_description"`
	Remarks         *string     `db:"remarks"`
	CustomerRep     *string     `db:"customer_rep"`
	Status          string      `db:"status"`
	CreatedBy       string      `db:"created_by"`
	UpdatedBy       *string     `db:"updated_by"`
	Timestamps

	StaffUsername        *string `db:"staff_username"`
	StaffEmail           *string `db:"staff_email"`
	StaffFullName        *string `db:"staff_full_name"`
	CategoryName         *string `db:"category_name"`
	CategoryTitle        *string `db:"category_title"`
	CategoryColor        *string `db:"category_color"`
	CategoryIcon         *string `db:"category_icon"`
	CategoryRequiredRole *string `db:"category_required_role"`
}

type FieldActivityPhoto struct {
	PhotoID         string    `db:"photo_id"`
	FieldActivityID string    `db:"field_activity_id"`
	FilePath        string    `db:"file_path"`
	FileName        string    `db:"file_name"`
	FileSize        int64     `db:"file_size"`
	MimeType        string    `db:"mime_type"`
	UploadedBy      string    `db:"uploaded_by"`
	UploadedAt      time.Time `db:"uploaded_at"`
}
