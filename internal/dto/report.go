package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// SendReportRequest asks for a report over a date range to be emailed.
// Recipients are required in bulk mode and ignored in individual mode.
type SendReportRequest struct {
	DateFrom   string                  `json:"date_from" binding:"required,isodate"`
	DateTo     string                  `json:"date_to" binding:"required,isodate"`
	Mode       domain.DistributionMode `json:"mode" binding:"omitempty,oneof=bulk individual"`
	Recipients []string                `json:"recipients" binding:"omitempty,dive,email"`
}

// ReportRangeParams are the query parameters of the preview and export endpoints.
type ReportRangeParams struct {
	DateFrom string `form:"date_from" binding:"required"`
	DateTo   string `form:"date_to" binding:"required"`
}

type BulkReportResponse struct {
	Message string  `json:"message"`
	EmailID *string `json:"email_id"`
}

func ToBulkReportResponse(r *domain.BulkResult) BulkReportResponse {
	return BulkReportResponse{Message: r.Message, EmailID: domain.StringPtr(r.EmailID)}
}

type IndividualReportResponse struct {
	Message     string   `json:"message"`
	SentCount   int      `json:"sent_count"`
	FailedCount int      `json:"failed_count"`
	Errors      []string `json:"errors"`
}

// ToIndividualReportResponse keeps errors null when there were none.
func ToIndividualReportResponse(r *domain.IndividualResult) IndividualReportResponse {
	resp := IndividualReportResponse{
		Message:     r.Message,
		SentCount:   r.SentCount,
		FailedCount: r.FailedCount,
	}
	if len(r.Errors) > 0 {
		resp.Errors = r.Errors
	}
	return resp
}

type WeeklyRunResponse struct {
	DateFrom            string    `json:"date_from"`
	DateTo              string    `json:"date_to"`
	StartedAt           time.Time `json:"started_at"`
	WorkspacesProcessed int       `json:"workspaces_processed"`
	WorkspacesSkipped   int       `json:"workspaces_skipped"`
	WorkspacesFailed    int       `json:"workspaces_failed"`
}

func ToWeeklyRunResponse(s *domain.WeeklyRunSummary) WeeklyRunResponse {
	return WeeklyRunResponse{
		DateFrom:            s.Range.FromString(),
		DateTo:              s.Range.ToString(),
		StartedAt:           s.StartedAt,
		WorkspacesProcessed: s.WorkspacesProcessed,
		WorkspacesSkipped:   s.WorkspacesSkipped,
		WorkspacesFailed:    s.WorkspacesFailed,
	}
}

// ToDistributionResponse returns the response body for whichever mode ran.
func ToDistributionResponse(r *domain.DistributionResult) any {
	if r.Mode == domain.DistributionBulk && r.Bulk != nil {
		return ToBulkReportResponse(r.Bulk)
	}
	if r.Individual != nil {
		return ToIndividualReportResponse(r.Individual)
	}
	return MessageResponse{Message: "No report sent"}
}
