package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ActivityStatus is the lifecycle state of a field activity.
type ActivityStatus string

const (
	StatusPending    ActivityStatus = "PENDING"
	StatusInProgress ActivityStatus = "IN_PROGRESS"
	StatusCompleted  ActivityStatus = "COMPLETED"
)

func (s ActivityStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// LocationType separates billable on-site work from office work.
type LocationType string

const (
	LocationOffice LocationType = "OFFICE"
	LocationOnSite LocationType = "ON_SITE"
)

func (l LocationType) IsValid() bool {
	return l == LocationOffice || l == LocationOnSite
}

// IsBillable reports whether hours at this location count as billable.
func (l LocationType) IsBillable() bool {
	return l == LocationOnSite
}

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time without a date, stored as seconds since midnight.
type TimeOfDay struct {
	secs int
}

// NewTimeOfDay builds a TimeOfDay, rejecting out of range components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day out of range: %02d:%02d:%02d", hour, minute, second)
	}
	return TimeOfDay{secs: hour*3600 + minute*60 + second}, nil
}

// TimeOfDayFromSeconds wraps a seconds-since-midnight value.
func TimeOfDayFromSeconds(secs int) TimeOfDay {
	secs %= secondsPerDay
	if secs < 0 {
		secs += secondsPerDay
	}
	return TimeOfDay{secs: secs}
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM or HH:MM:SS", s)
}

func (t TimeOfDay) Seconds() int { return t.secs }
func (t TimeOfDay) Hour() int    { return t.secs / 3600 }
func (t TimeOfDay) Minute() int  { return (t.secs % 3600) / 60 }
func (t TimeOfDay) Second() int  { return t.secs % 60 }

// String renders HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Short renders HH:MM.
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Before reports whether t is strictly earlier than o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.secs < o.secs }

// DurationHours returns the elapsed hours between start and end rounded to two decimals.
// An end earlier than start is read as crossing midnight. Missing endpoints yield 0.
func DurationHours(start, end *TimeOfDay) float64 {
	return DurationHoursDecimal(start, end).InexactFloat64()
}

// DurationHoursDecimal is DurationHours without the float conversion, for summing.
func DurationHoursDecimal(start, end *TimeOfDay) decimal.Decimal {
	if start == nil || end == nil {
		return decimal.Zero
	}
	secs := end.secs - start.secs
	if secs < 0 {
		secs += secondsPerDay
	}
	return decimal.NewFromInt(int64(secs)).Div(decimal.NewFromInt(3600)).Round(2)
}

// FieldActivity is a single logged field visit or office task.
type FieldActivity struct {
	ActivityID      string
	WorkspaceID     string
	SupportStaffID  string
	ActivityDate    time.Time
	StartTime       *TimeOfDay
	EndTime         *TimeOfDay
	Title           string
	CustomerID      *string
	CustomerName    string
	LocationType    LocationType
	Location        string
	TaskCategoryID  *string
	TaskDescription *string
	Remarks         *string
	CustomerRep     *string
	Status          ActivityStatus
	CreatedBy       string
	UpdatedBy       *string
	Timestamps

	// Loaded relations, populated by list and get queries.
	SupportStaff *UserRef
	TaskCategory *CategoryRef
	Photos       []FieldActivityPhoto
}

// DurationHours is the rounded duration of the activity.
func (a FieldActivity) DurationHours() float64 {
	return DurationHours(a.StartTime, a.EndTime)
}

// StaffName returns the assignee's display name when the relation is loaded.
func (a FieldActivity) StaffName() string {
	if a.SupportStaff == nil {
		return ""
	}
	return a.SupportStaff.DisplayName()
}

// CategoryTitle returns the category title, or "" when uncategorized or not loaded.
func (a FieldActivity) CategoryTitle() string {
	if a.TaskCategory == nil {
		return ""
	}
	return a.TaskCategory.Title
}

// VisibleTo applies the category role gate. Uncategorized activities are visible to everyone.
func (a FieldActivity) VisibleTo(role Role) bool {
	if a.TaskCategory == nil {
		return true
	}
	return role.AtLeast(a.TaskCategory.RequiredRole)
}

// Validate checks required fields and the completion invariant.
func (a FieldActivity) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return apperrors.NewValidationFailedError("title is required")
	}
	if strings.TrimSpace(a.CustomerName) == "" {
		return apperrors.NewValidationFailedError("customer_name is required")
	}
	if a.ActivityDate.IsZero() {
		return apperrors.NewValidationFailedError("activity_date is required")
	}
	if !a.LocationType.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid location_type %q", a.LocationType))
	}
	if !a.Status.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid status %q", a.Status))
	}
	if a.Status == StatusCompleted {
		if a.StartTime == nil || a.EndTime == nil {
			return apperrors.NewValidationFailedError("start_time and end_time are required for completed activities")
		}
		if a.TaskDescription == nil || strings.TrimSpace(*a.TaskDescription) == "" {
			return apperrors.NewValidationFailedError("task_description is required for completed activities")
		}
	}
	return nil
}

// FieldActivityUpdate carries a partial update. Nil fields are left unchanged.
type FieldActivityUpdate struct {
	SupportStaffID  *string
	ActivityDate    *time.Time
	StartTime       *TimeOfDay
	EndTime         *TimeOfDay
	Title           *string
	CustomerID      *string
	CustomerName    *string
	LocationType    *LocationType
	Location        *string
	TaskCategoryID  *string
	TaskDescription *string
	Remarks         *string
	CustomerRep     *string
	Status          *ActivityStatus
}

// ApplyTo returns a copy of a with the update's non-nil fields applied.
func (u FieldActivityUpdate) ApplyTo(a FieldActivity) FieldActivity {
	if u.SupportStaffID != nil {
		a.SupportStaffID = *u.SupportStaffID
	}
	if u.ActivityDate != nil {
		a.ActivityDate = TruncateToDate(*u.ActivityDate)
	}
	if u.StartTime != nil {
		a.StartTime = u.StartTime
	}
	if u.EndTime != nil {
		a.EndTime = u.EndTime
	}
	if u.Title != nil {
		a.Title = *u.Title
	}
	if u.CustomerID != nil {
		a.CustomerID = u.CustomerID
	}
	if u.CustomerName != nil {
		a.CustomerName = *u.CustomerName
	}
	if u.LocationType != nil {
		a.LocationType = *u.LocationType
	}
	if u.Location != nil {
		a.Location = *u.Location
	}
	if u.TaskCategoryID != nil {
		a.TaskCategoryID = u.TaskCategoryID
		if a.TaskCategory != nil && a.TaskCategory.CategoryID != *u.TaskCategoryID {
			a.TaskCategory = nil
		}
	}
	if u.TaskDescription != nil {
		a.TaskDescription = u.TaskDescription
	}
	if u.Remarks != nil {
		a.Remarks = u.Remarks
	}
	if u.CustomerRep != nil {
		a.CustomerRep = u.CustomerRep
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	return a
}

// ActivityOrder selects the sort order of activity listings.
type ActivityOrder int

const (
	// OrderNewestFirst sorts by date then start time, both descending.
	OrderNewestFirst ActivityOrder = iota
	// OrderChronological sorts by date then start time, both ascending.
	OrderChronological
)

// FieldActivityFilter narrows activity queries. Zero values mean "no filter".
type FieldActivityFilter struct {
	WorkspaceID    string
	DateFrom       *time.Time
	DateTo         *time.Time
	SupportStaffID *string
	TaskCategoryID *string
	CustomerID     *string
	CustomerName   *string
	Search         *string
	Status         *ActivityStatus
	LocationType   *LocationType
	// VisibleRoles restricts categorized activities to categories requiring one of these roles.
	// Nil disables the gate.
	VisibleRoles []Role
	Order        ActivityOrder
	Limit        int
	// After is a keyset cursor for OrderNewestFirst listings.
	After *ActivityCursor
}

// ActivityCursor marks the last row of a page. A missing start time sorts as midnight.
type ActivityCursor struct {
	ActivityDate time.Time
	StartTime    TimeOfDay
	CreatedAt    time.Time
}

// CursorFor returns the cursor positioned at a.
func CursorFor(a FieldActivity) ActivityCursor {
	c := ActivityCursor{ActivityDate: a.ActivityDate, CreatedAt: a.CreatedAt}
	if a.StartTime != nil {
		c.StartTime = *a.StartTime
	}
	return c
}

// FieldActivityPhoto is an image attached to an activity and stored on local disk.
type FieldActivityPhoto struct {
	PhotoID         string
	FieldActivityID string
	FilePath        string
	FileName        string
	FileSize        int64
	MimeType        string
	UploadedBy      string
	UploadedAt      time.Time
}

// AllowedPhotoTypes lists the image content types accepted for activity photos.
var AllowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}
