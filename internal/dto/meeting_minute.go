package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// AttendeeDTO is a meeting participant, optionally linked to a user.
type AttendeeDTO struct {
	ID   *string `json:"id,omitempty"`
	Name string  `json:"name" binding:"required"`
}

func toDomainAttendees(in []AttendeeDTO) []domain.Attendee {
	out := make([]domain.Attendee, len(in))
	for i, a := range in {
		out[i] = domain.Attendee{ID: a.ID, Name: a.Name}
	}
	return out
}

func toAttendeeDTOs(in []domain.Attendee) []AttendeeDTO {
	out := make([]AttendeeDTO, len(in))
	for i, a := range in {
		out[i] = AttendeeDTO{ID: a.ID, Name: a.Name}
	}
	return out
}

// CreateActionItemRequest defines a follow-up item.
type CreateActionItemRequest struct {
	Description string                   `json:"description" binding:"required"`
	AssignedTo  *string                  `json:"assigned_to"`
	DueDate     *string                  `json:"due_date"`
	Status      *domain.ActionItemStatus `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
}

func (r CreateActionItemRequest) ToDomain() (domain.MinuteActionItem, error) {
	due, err := parseOptionalDate("due_date", r.DueDate)
	if err != nil {
		return domain.MinuteActionItem{}, err
	}
	item := domain.MinuteActionItem{
		Description: r.Description,
		AssignedTo:  emptyToNil(r.AssignedTo),
		DueDate:     due,
		Status:      domain.ActionPending,
	}
	if r.Status != nil {
		item.Status = *r.Status
	}
	return item, nil
}

// UpdateActionItemRequest defines a partial action item update.
type UpdateActionItemRequest struct {
	Description *string                  `json:"description"`
	AssignedTo  *string                  `json:"assigned_to"`
	DueDate     *string                  `json:"due_date"`
	Status      *domain.ActionItemStatus `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
}

func (r UpdateActionItemRequest) ToDomain() (domain.ActionItemUpdate, error) {
	due, err := parseOptionalDate("due_date", r.DueDate)
	if err != nil {
		return domain.ActionItemUpdate{}, err
	}
	return domain.ActionItemUpdate{
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
		DueDate:     due,
		Status:      r.Status,
	}, nil
}

// CreateMeetingMinuteRequest defines data for recording meeting minutes.
type CreateMeetingMinuteRequest struct {
	Title            string                    `json:"title" binding:"required,max=255"`
	MeetingDate      string                    `json:"meeting_date" binding:"required"`
	MeetingTimeStart *string                   `json:"meeting_time_start"`
	MeetingTimeEnd   *string                   `json:"meeting_time_end"`
	Location         *string                   `json:"location"`
	Attendees        []AttendeeDTO             `json:"attendees" binding:"dive"`
	Agenda           *string                   `json:"agenda"`
	Discussions      *string                   `json:"discussions"`
	Decisions        *string                   `json:"decisions"`
	ActionItems      []CreateActionItemRequest `json:"action_items" binding:"dive"`
}

// ToDomain converts the request into unsaved minutes with their initial action items.
func (r CreateMeetingMinuteRequest) ToDomain() (domain.MeetingMinute, error) {
	date, err := parseDate("meeting_date", r.MeetingDate)
	if err != nil {
		return domain.MeetingMinute{}, err
	}
	start, err := parseOptionalTime("meeting_time_start", r.MeetingTimeStart)
	if err != nil {
		return domain.MeetingMinute{}, err
	}
	end, err := parseOptionalTime("meeting_time_end", r.MeetingTimeEnd)
	if err != nil {
		return domain.MeetingMinute{}, err
	}
	items := make([]domain.MinuteActionItem, 0, len(r.ActionItems))
	for _, ai := range r.ActionItems {
		item, err := ai.ToDomain()
		if err != nil {
			return domain.MeetingMinute{}, err
		}
		items = append(items, item)
	}
	return domain.MeetingMinute{
		Title:            r.Title,
		MeetingDate:      date,
		MeetingTimeStart: start,
		MeetingTimeEnd:   end,
		Location:         r.Location,
		Attendees:        toDomainAttendees(r.Attendees),
		Agenda:           r.Agenda,
		Discussions:      r.Discussions,
		Decisions:        r.Decisions,
		ActionItems:      items,
	}, nil
}

// UpdateMeetingMinuteRequest defines a partial minutes update.
type UpdateMeetingMinuteRequest struct {
	Title            *string        `json:"title" binding:"omitempty,max=255"`
	MeetingDate      *string        `json:"meeting_date"`
	MeetingTimeStart *string        `json:"meeting_time_start"`
	MeetingTimeEnd   *string        `json:"meeting_time_end"`
	Location         *string        `json:"location"`
	Attendees        *[]AttendeeDTO `json:"attendees"`
	Agenda           *string        `json:"agenda"`
	Discussions      *string        `json:"discussions"`
	Decisions        *string        `json:"decisions"`
}

func (r UpdateMeetingMinuteRequest) ToDomain() (domain.MeetingMinuteUpdate, error) {
	date, err := parseOptionalDate("meeting_date", r.MeetingDate)
	if err != nil {
		return domain.MeetingMinuteUpdate{}, err
	}
	start, err := parseOptionalTime("meeting_time_start", r.MeetingTimeStart)
	if err != nil {
		return domain.MeetingMinuteUpdate{}, err
	}
	end, err := parseOptionalTime("meeting_time_end", r.MeetingTimeEnd)
	if err != nil {
		return domain.MeetingMinuteUpdate{}, err
	}
	u := domain.MeetingMinuteUpdate{
		Title:            r.Title,
		MeetingDate:      date,
		MeetingTimeStart: start,
		MeetingTimeEnd:   end,
		Location:         r.Location,
		Agenda:           r.Agenda,
		Discussions:      r.Discussions,
		Decisions:        r.Decisions,
	}
	if r.Attendees != nil {
		attendees := toDomainAttendees(*r.Attendees)
		u.Attendees = &attendees
	}
	return u, nil
}

// ListMeetingMinutesParams defines query parameters for minutes listings.
type ListMeetingMinutesParams struct {
	DateFrom *string `form:"date_from"`
	DateTo   *string `form:"date_to"`
	Search   *string `form:"search"`
	Skip     int     `form:"skip,default=0" binding:"min=0"`
	Limit    int     `form:"limit,default=100" binding:"min=1,max=500"`
}

func (p ListMeetingMinutesParams) ToFilter(workspaceID string) (domain.MeetingMinuteFilter, error) {
	from, err := parseOptionalDate("date_from", p.DateFrom)
	if err != nil {
		return domain.MeetingMinuteFilter{}, err
	}
	to, err := parseOptionalDate("date_to", p.DateTo)
	if err != nil {
		return domain.MeetingMinuteFilter{}, err
	}
	return domain.MeetingMinuteFilter{
		WorkspaceID: workspaceID,
		DateFrom:    from,
		DateTo:      to,
		Search:      emptyToNil(p.Search),
		Limit:       p.Limit,
		Offset:      p.Skip,
	}, nil
}

type AttachmentResponse struct {
	ID              string              `json:"id"`
	MeetingMinuteID string              `json:"meeting_minute_id"`
	URL             string              `json:"url"`
	ResourceType    domain.ResourceType `json:"resource_type"`
	FileName        string              `json:"file_name"`
	FileSize        int64               `json:"file_size"`
	MimeType        string              `json:"mime_type"`
	UploadedBy      string              `json:"uploaded_by"`
	UploadedAt      time.Time           `json:"uploaded_at"`
}

func ToAttachmentResponse(a *domain.MinuteAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:              a.AttachmentID,
		MeetingMinuteID: a.MeetingMinuteID,
		URL:             a.URL,
		ResourceType:    a.ResourceType,
		FileName:        a.FileName,
		FileSize:        a.FileSize,
		MimeType:        a.MimeType,
		UploadedBy:      a.UploadedBy,
		UploadedAt:      a.UploadedAt,
	}
}

type ActionItemResponse struct {
	ID              string                  `json:"id"`
	MeetingMinuteID string                  `json:"meeting_minute_id"`
	Description     string                  `json:"description"`
	AssignedTo      *string                 `json:"assigned_to"`
	DueDate         *string                 `json:"due_date"`
	Status          domain.ActionItemStatus `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
	CompletedAt     *time.Time              `json:"completed_at"`
}

func ToActionItemResponse(i *domain.MinuteActionItem) ActionItemResponse {
	return ActionItemResponse{
		ID:              i.ItemID,
		MeetingMinuteID: i.MeetingMinuteID,
		Description:     i.Description,
		AssignedTo:      i.AssignedTo,
		DueDate:         formatDate(i.DueDate),
		Status:          i.Status,
		CreatedAt:       i.CreatedAt,
		CompletedAt:     i.CompletedAt,
	}
}

type MeetingMinuteResponse struct {
	ID               string               `json:"id"`
	WorkspaceID      string               `json:"workspace_id"`
	Title            string               `json:"title"`
	MeetingDate      string               `json:"meeting_date"`
	MeetingTimeStart *string              `json:"meeting_time_start"`
	MeetingTimeEnd   *string              `json:"meeting_time_end"`
	Location         *string              `json:"location"`
	Attendees        []AttendeeDTO        `json:"attendees"`
	Agenda           *string              `json:"agenda"`
	Discussions      *string              `json:"discussions"`
	Decisions        *string              `json:"decisions"`
	CreatedBy        string               `json:"created_by"`
	UpdatedBy        *string              `json:"updated_by"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Creator          *UserRefResponse     `json:"creator,omitempty"`
	Attachments      []AttachmentResponse `json:"attachments"`
	ActionItems      []ActionItemResponse `json:"action_items"`
}

func ToMeetingMinuteResponse(m *domain.MeetingMinute) MeetingMinuteResponse {
	attachments := make([]AttachmentResponse, len(m.Attachments))
	for i := range m.Attachments {
		attachments[i] = ToAttachmentResponse(&m.Attachments[i])
	}
	items := make([]ActionItemResponse, len(m.ActionItems))
	for i := range m.ActionItems {
		items[i] = ToActionItemResponse(&m.ActionItems[i])
	}
	return MeetingMinuteResponse{
		ID:               m.MinuteID,
		WorkspaceID:      m.WorkspaceID,
		Title:            m.Title,
		MeetingDate:      m.MeetingDate.Format(domain.DateLayout),
		MeetingTimeStart: formatTime(m.MeetingTimeStart),
		MeetingTimeEnd:   formatTime(m.MeetingTimeEnd),
		Location:         m.Location,
		Attendees:        toAttendeeDTOs(m.Attendees),
		Agenda:           m.Agenda,
		Discussions:      m.Discussions,
		Decisions:        m.Decisions,
		CreatedBy:        m.CreatedBy,
		UpdatedBy:        m.UpdatedBy,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		Creator:          toUserRefResponse(m.Creator),
		Attachments:      attachments,
		ActionItems:      items,
	}
}

// MeetingMinuteSummaryResponse is a list row.
type MeetingMinuteSummaryResponse struct {
	ID              string           `json:"id"`
	WorkspaceID     string           `json:"workspace_id"`
	Title           string           `json:"title"`
	MeetingDate     string           `json:"meeting_date"`
	Location        *string          `json:"location"`
	AttendeeCount   int              `json:"attendee_count"`
	AttachmentCount int              `json:"attachment_count"`
	ActionItemCount int              `json:"action_item_count"`
	CreatedBy       string           `json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"`
	Creator         *UserRefResponse `json:"creator,omitempty"`
}

func ToMeetingMinuteSummaryResponses(in []domain.MeetingMinuteSummary) []MeetingMinuteSummaryResponse {
	out := make([]MeetingMinuteSummaryResponse, len(in))
	for i, m := range in {
		out[i] = MeetingMinuteSummaryResponse{
			ID:              m.MinuteID,
			WorkspaceID:     m.WorkspaceID,
			Title:           m.Title,
			MeetingDate:     m.MeetingDate.Format(domain.DateLayout),
			Location:        m.Location,
			AttendeeCount:   len(m.Attendees),
			AttachmentCount: m.AttachmentCount,
			ActionItemCount: m.ActionItemCount,
			CreatedBy:       m.CreatedBy,
			CreatedAt:       m.CreatedAt,
			Creator:         toUserRefResponse(m.Creator),
		}
	}
	return out
}
