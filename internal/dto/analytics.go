package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

type StaffActivityCountResponse struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	ActivityCount int    `json:"activity_count"`
}

type CustomerVisitCountResponse struct {
	CustomerName string `json:"customer_name"`
	VisitCount   int    `json:"visit_count"`
}

type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// OverviewResponse is the workspace dashboard summary.
type OverviewResponse struct {
	TotalActivities      int                          `json:"total_activities"`
	TotalHours           float64                      `json:"total_hours"`
	ThisWeek             int                          `json:"this_week"`
	ThisMonth            int                          `json:"this_month"`
	TopStaff             []StaffActivityCountResponse `json:"top_staff"`
	CategoryDistribution []CategoryCountResponse      `json:"category_distribution"`
	TopCustomers         []CustomerVisitCountResponse `json:"top_customers"`
	UniqueCustomers      int                          `json:"unique_customers"`
	BillableHours        float64                      `json:"billable_hours"`
	NonBillableHours     float64                      `json:"non_billable_hours"`
	BillableVisits       int                          `json:"billable_visits"`
	OfficeActivities     int                          `json:"office_activities"`
	BillingRate          float64                      `json:"billing_rate"`
}

func toStaffCounts(in []domain.StaffActivityCount) []StaffActivityCountResponse {
	out := make([]StaffActivityCountResponse, len(in))
	for i, s := range in {
		out[i] = StaffActivityCountResponse{UserID: s.UserID, Name: s.Name, ActivityCount: s.ActivityCount}
	}
	return out
}

func toCategoryCounts(in []domain.CategoryCount) []CategoryCountResponse {
	out := make([]CategoryCountResponse, len(in))
	for i, c := range in {
		out[i] = CategoryCountResponse{Category: c.Category, Count: c.Count}
	}
	return out
}

func ToOverviewResponse(o domain.ActivityOverview) OverviewResponse {
	customers := make([]CustomerVisitCountResponse, len(o.TopCustomers))
	for i, c := range o.TopCustomers {
		customers[i] = CustomerVisitCountResponse{CustomerName: c.CustomerName, VisitCount: c.VisitCount}
	}
	return OverviewResponse{
		TotalActivities:      o.TotalActivities,
		TotalHours:           o.TotalHours,
		ThisWeek:             o.ThisWeek,
		ThisMonth:            o.ThisMonth,
		TopStaff:             toStaffCounts(o.TopStaff),
		CategoryDistribution: toCategoryCounts(o.CategoryDistribution),
		TopCustomers:         customers,
		UniqueCustomers:      o.UniqueCustomers,
		BillableHours:        o.BillableHours,
		NonBillableHours:     o.NonBillableHours,
		BillableVisits:       o.BillableVisits,
		OfficeActivities:     o.OfficeActivities,
		BillingRate:          o.BillingRate,
	}
}

// TopCustomersParams defines query parameters for the top customers ranking.
type TopCustomersParams struct {
	Limit    int     `form:"limit,default=10" binding:"min=1,max=100"`
	DateFrom *string `form:"date_from"`
}

// From returns the parsed lower bound, nil when unset.
func (p TopCustomersParams) From() (*time.Time, error) {
	return parseOptionalDate("date_from", p.DateFrom)
}

type TopCustomerResponse struct {
	CustomerID    string  `json:"customer_id"`
	CustomerName  string  `json:"customer_name"`
	ActivityCount int     `json:"activity_count"`
	TotalHours    float64 `json:"total_hours"`
}

func ToTopCustomerResponses(in []domain.TopCustomer) []TopCustomerResponse {
	out := make([]TopCustomerResponse, len(in))
	for i, c := range in {
		out[i] = TopCustomerResponse{
			CustomerID:    c.CustomerID,
			CustomerName:  c.CustomerName,
			ActivityCount: c.ActivityCount,
			TotalHours:    c.TotalHours,
		}
	}
	return out
}

type TimelineEntryResponse struct {
	ID       string                `json:"id"`
	Date     string                `json:"date"`
	Title    string                `json:"title"`
	Category *string               `json:"category"`
	Hours    float64               `json:"hours"`
	Status   domain.ActivityStatus `json:"status"`
}

type CustomerTimelineResponse struct {
	CustomerID       string                  `json:"customer_id"`
	CustomerName     string                  `json:"customer_name"`
	LastVisit        string                  `json:"last_visit"`
	FirstVisit       string                  `json:"first_visit"`
	TotalVisits      int                     `json:"total_visits"`
	TotalHours       float64                 `json:"total_hours"`
	RecentActivities []TimelineEntryResponse `json:"recent_activities"`
}

func ToCustomerTimelineResponse(t *domain.CustomerTimeline) CustomerTimelineResponse {
	recent := make([]TimelineEntryResponse, len(t.RecentActivities))
	for i, e := range t.RecentActivities {
		recent[i] = TimelineEntryResponse{
			ID:       e.ActivityID,
			Date:     e.Date.Format(domain.DateLayout),
			Title:    e.Title,
			Category: e.Category,
			Hours:    e.Hours,
			Status:   e.Status,
		}
	}
	return CustomerTimelineResponse{
		CustomerID:       t.CustomerID,
		CustomerName:     t.CustomerName,
		LastVisit:        t.LastVisit.Format(domain.DateLayout),
		FirstVisit:       t.FirstVisit.Format(domain.DateLayout),
		TotalVisits:      t.TotalVisits,
		TotalHours:       t.TotalHours,
		RecentActivities: recent,
	}
}

// HealthCheckParams defines query parameters for the customer health check.
// DaysThreshold stays nil when the parameter is absent.
type HealthCheckParams struct {
	DaysThreshold *int `form:"days_threshold" binding:"omitempty,min=0,max=365"`
}

type CustomerHealthResponse struct {
	CustomerID     string              `json:"customer_id"`
	CustomerName   string              `json:"customer_name"`
	LastVisit      string              `json:"last_visit"`
	DaysSinceVisit int                 `json:"days_since_visit"`
	TotalVisits    int                 `json:"total_visits"`
	Status         domain.HealthStatus `json:"status"`
}

func ToCustomerHealthResponses(in []domain.CustomerHealth) []CustomerHealthResponse {
	out := make([]CustomerHealthResponse, len(in))
	for i, h := range in {
		out[i] = CustomerHealthResponse{
			CustomerID:     h.CustomerID,
			CustomerName:   h.CustomerName,
			LastVisit:      h.LastVisit.Format(domain.DateLayout),
			DaysSinceVisit: h.DaysSinceVisit,
			TotalVisits:    h.TotalVisits,
			Status:         h.Status,
		}
	}
	return out
}

type VisitFrequencyResponse struct {
	CustomerID           string                   `json:"customer_id"`
	CustomerName         string                   `json:"customer_name"`
	TotalVisits          int                      `json:"total_visits"`
	AvgDaysBetweenVisits float64                  `json:"avg_days_between_visits"`
	FrequencyCategory    domain.FrequencyCategory `json:"frequency_category"`
}

func ToVisitFrequencyResponses(in []domain.VisitFrequency) []VisitFrequencyResponse {
	out := make([]VisitFrequencyResponse, len(in))
	for i, v := range in {
		out[i] = VisitFrequencyResponse{
			CustomerID:           v.CustomerID,
			CustomerName:         v.CustomerName,
			TotalVisits:          v.TotalVisits,
			AvgDaysBetweenVisits: v.AvgDaysBetweenVisits,
			FrequencyCategory:    v.FrequencyCategory,
		}
	}
	return out
}

// WorkspaceActivityStatsResponse is the manager-level activity breakdown.
type WorkspaceActivityStatsResponse struct {
	TotalActivities      int                          `json:"total_activities"`
	HoursByStaff         []StaffActivityCountResponse `json:"hours_by_staff"`
	ActivitiesByCategory []CategoryCountResponse      `json:"activities_by_category"`
}

func ToWorkspaceActivityStatsResponse(s domain.WorkspaceActivityStats) WorkspaceActivityStatsResponse {
	return WorkspaceActivityStatsResponse{
		TotalActivities:      s.TotalActivities,
		HoursByStaff:         toStaffCounts(s.HoursByStaff),
		ActivitiesByCategory: toCategoryCounts(s.ActivitiesByCategory),
	}
}
