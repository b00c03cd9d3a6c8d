package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// CreateFieldActivityRequest defines data for logging a field activity.
// SupportStaffID defaults to the caller when omitted.
type CreateFieldActivityRequest struct {
	SupportStaffID  *string               `json:"support_staff_id"`
	ActivityDate    string                `json:"activity_date" binding:"required,isodate"`
	StartTime       *string               `json:"start_time" binding:"omitempty,timeofday"`
	EndTime         *string               `json:"end_time" binding:"omitempty,timeofday"`
	Title           string                `json:"title" binding:"required,max=255"`
	CustomerID      *string               `json:"customer_id"`
	CustomerName    string                `json:"customer_name" binding:"required,max=255"`
	LocationType    domain.LocationType   `json:"location_type" binding:"omitempty,oneof=OFFICE ON_SITE"`
	Location        string                `json:"location" binding:"max=255"`
	TaskCategoryID  *string               `json:"task_category_id"`
	TaskDescription *string               `json:"task_description"`
	Remarks         *string               `json:"remarks"`
	CustomerRep     *string               `json:"customer_rep"`
	Status          domain.ActivityStatus `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// ToDomain converts the request into an unsaved activity with defaults applied.
func (r CreateFieldActivityRequest) ToDomain() (domain.FieldActivity, error) {
	date, err := parseDate("activity_date", r.ActivityDate)
	if err != nil {
		return domain.FieldActivity{}, err
	}
	start, err := parseOptionalTime("start_time", r.StartTime)
	if err != nil {
		return domain.FieldActivity{}, err
	}
	end, err := parseOptionalTime("end_time", r.EndTime)
	if err != nil {
		return domain.FieldActivity{}, err
	}

	a := domain.FieldActivity{
		ActivityDate:    date,
		StartTime:       start,
		EndTime:         end,
		Title:           r.Title,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		LocationType:    r.LocationType,
		Location:        r.Location,
		TaskCategoryID:  r.TaskCategoryID,
		TaskDescription: r.TaskDescription,
		Remarks:         r.Remarks,
		CustomerRep:     r.CustomerRep,
		Status:          r.Status,
	}
	if r.SupportStaffID != nil {
		a.SupportStaffID = *r.SupportStaffID
	}
	if a.LocationType == "" {
		a.LocationType = domain.LocationOnSite
	}
	if a.Status == "" {
		a.Status = domain.StatusCompleted
	}
	return a, nil
}

// UpdateFieldActivityRequest defines a partial activity update.
type UpdateFieldActivityRequest struct {
	SupportStaffID  *string                `json:"support_staff_id"`
	ActivityDate    *string                `json:"activity_date" binding:"omitempty,isodate"`
	StartTime       *string                `json:"start_time" binding:"omitempty,timeofday"`
	EndTime         *string                `json:"end_time" binding:"omitempty,timeofday"`
	Title           *string                `json:"title" binding:"omitempty,max=255"`
	CustomerID      *string                `json:"customer_id"`
	CustomerName    *string                `json:"customer_name" binding:"omitempty,max=255"`
	LocationType    *domain.LocationType   `json:"location_type" binding:"omitempty,oneof=OFFICE ON_SITE"`
	Location        *string                `json:"location" binding:"omitempty,max=255"`
	TaskCategoryID  *string                `json:"task_category_id"`
	TaskDescription *string                `json:"task_description"`
	Remarks         *string                `json:"remarks"`
	CustomerRep     *string                `json:"customer_rep"`
	Status          *domain.ActivityStatus `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

func (r UpdateFieldActivityRequest) ToDomain() (domain.FieldActivityUpdate, error) {
	date, err := parseOptionalDate("activity_date", r.ActivityDate)
	if err != nil {
		return domain.FieldActivityUpdate{}, err
	}
	start, err := parseOptionalTime("start_time", r.StartTime)
	if err != nil {
		return domain.FieldActivityUpdate{}, err
	}
	end, err := parseOptionalTime("end_time", r.EndTime)
	if err != nil {
		return domain.FieldActivityUpdate{}, err
	}
	return domain.FieldActivityUpdate{
		SupportStaffID:  r.SupportStaffID,
		ActivityDate:    date,
		StartTime:       start,
		EndTime:         end,
		Title:           r.Title,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		LocationType:    r.LocationType,
		Location:        r.Location,
		TaskCategoryID:  r.TaskCategoryID,
		TaskDescription: r.TaskDescription,
		Remarks:         r.Remarks,
		CustomerRep:     r.CustomerRep,
		Status:          r.Status,
	}, nil
}

// ListFieldActivitiesParams defines query parameters for activity listings.
type ListFieldActivitiesParams struct {
	DateFrom       *string `form:"date_from"`
	DateTo         *string `form:"date_to"`
	SupportStaffID *string `form:"support_staff_id"`
	TaskCategoryID *string `form:"task_category_id"`
	CustomerID     *string `form:"customer_id"`
	CustomerName   *string `form:"customer_name"`
	Search         *string `form:"search"`
	Status         *string `form:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	LocationType   *string `form:"location_type" binding:"omitempty,oneof=OFFICE ON_SITE"`
	Limit          int     `form:"limit,default=100" binding:"min=1,max=500"`
	PageToken      *string `form:"page_token"`
}

// ToFilter converts query parameters into a repository filter. Visibility and cursor are set by the service.
func (p ListFieldActivitiesParams) ToFilter(workspaceID string) (domain.FieldActivityFilter, error) {
	from, err := parseOptionalDate("date_from", p.DateFrom)
	if err != nil {
		return domain.FieldActivityFilter{}, err
	}
	to, err := parseOptionalDate("date_to", p.DateTo)
	if err != nil {
		return domain.FieldActivityFilter{}, err
	}
	f := domain.FieldActivityFilter{
		WorkspaceID:    workspaceID,
		DateFrom:       from,
		DateTo:         to,
		SupportStaffID: emptyToNil(p.SupportStaffID),
		TaskCategoryID: emptyToNil(p.TaskCategoryID),
		CustomerID:     emptyToNil(p.CustomerID),
		CustomerName:   emptyToNil(p.CustomerName),
		Search:         emptyToNil(p.Search),
		Limit:          p.Limit,
	}
	if p.Status != nil && *p.Status != "" {
		s := domain.ActivityStatus(*p.Status)
		f.Status = &s
	}
	if p.LocationType != nil && *p.LocationType != "" {
		l := domain.LocationType(*p.LocationType)
		f.LocationType = &l
	}
	return f, nil
}

// AnalyticsDateParams bounds analytics queries.
type AnalyticsDateParams struct {
	DateFrom *string `form:"date_from"`
	DateTo   *string `form:"date_to"`
}

func (p AnalyticsDateParams) Parse() (from, to *time.Time, err error) {
	if from, err = parseOptionalDate("date_from", p.DateFrom); err != nil {
		return nil, nil, err
	}
	if to, err = parseOptionalDate("date_to", p.DateTo); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// FieldActivityPhotoResponse describes an activity photo.
type FieldActivityPhotoResponse struct {
	ID              string    `json:"id"`
	FieldActivityID string    `json:"field_activity_id"`
	FilePath        string    `json:"file_path"`
	FileName        string    `json:"file_name"`
	FileSize        int64     `json:"file_size"`
	MimeType        string    `json:"mime_type"`
	UploadedBy      string    `json:"uploaded_by"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

func ToFieldActivityPhotoResponse(p *domain.FieldActivityPhoto) FieldActivityPhotoResponse {
	return FieldActivityPhotoResponse{
		ID:              p.PhotoID,
		FieldActivityID: p.FieldActivityID,
		FilePath:        p.FilePath,
		FileName:        p.FileName,
		FileSize:        p.FileSize,
		MimeType:        p.MimeType,
		UploadedBy:      p.UploadedBy,
		UploadedAt:      p.UploadedAt,
	}
}

// FieldActivityResponse defines the data returned for an activity.
type FieldActivityResponse struct {
	ID              string                       `json:"id"`
	WorkspaceID     string                       `json:"workspace_id"`
	SupportStaffID  string                       `json:"support_staff_id"`
	ActivityDate    string                       `json:"activity_date"`
	StartTime       *string                      `json:"start_time"`
	EndTime         *string                      `json:"end_time"`
	DurationHours   float64                      `json:"duration_hours"`
	Title           string                       `json:"title"`
	CustomerID      *string                      `json:"customer_id"`
	CustomerName    string                       `json:"customer_name"`
	LocationType    domain.LocationType          `json:"location_type"`
	Location        string                       `json:"location"`
	TaskCategoryID  *string                      `json:"task_category_id"`
	TaskDescription *string                      `json:"task_description"`
	Remarks         *string                      `json:"remarks"`
	CustomerRep     *string                      `json:"customer_rep"`
	Status          domain.ActivityStatus        `json:"status"`
	CreatedBy       string                       `json:"created_by"`
	UpdatedBy       *string                      `json:"updated_by"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
	SupportStaff    *UserRefResponse             `json:"support_staff,omitempty"`
	TaskCategory    *CategoryRefResponse         `json:"task_category,omitempty"`
	Photos          []FieldActivityPhotoResponse `json:"photos"`
}

func ToFieldActivityResponse(a *domain.FieldActivity) FieldActivityResponse {
	photos := make([]FieldActivityPhotoResponse, len(a.Photos))
	for i := range a.Photos {
		photos[i] = ToFieldActivityPhotoResponse(&a.Photos[i])
	}
	return FieldActivityResponse{
		ID:              a.ActivityID,
		WorkspaceID:     a.WorkspaceID,
		SupportStaffID:  a.SupportStaffID,
		ActivityDate:    a.ActivityDate.Format(domain.DateLayout),
		StartTime:       formatTime(a.StartTime),
		EndTime:         formatTime(a.EndTime),
		DurationHours:   a.DurationHours(),
		Title:           a.Title,
		CustomerID:      a.CustomerID,
		CustomerName:    a.CustomerName,
		LocationType:    a.LocationType,
		Location:        a.Location,
		TaskCategoryID:  a.TaskCategoryID,
		TaskDescription: a.TaskDescription,
		Remarks:         a.Remarks,
		CustomerRep:     a.CustomerRep,
		Status:          a.Status,
		CreatedBy:       a.CreatedBy,
		UpdatedBy:       a.UpdatedBy,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		SupportStaff:    toUserRefResponse(a.SupportStaff),
		TaskCategory:    toCategoryRefResponse(a.TaskCategory),
		Photos:          photos,
	}
}

// ListFieldActivitiesResponse wraps a page of activities.
type ListFieldActivitiesResponse struct {
	Activities    []FieldActivityResponse `json:"activities"`
	NextPageToken *string                 `json:"next_page_token"`
}

func ToListFieldActivitiesResponse(activities []domain.FieldActivity, nextToken *string) ListFieldActivitiesResponse {
	list := make([]FieldActivityResponse, len(activities))
	for i := range activities {
		list[i] = ToFieldActivityResponse(&activities[i])
	}
	return ListFieldActivitiesResponse{Activities: list, NextPageToken: nextToken}
}
