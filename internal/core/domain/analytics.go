package domain

import "time"

// UncategorizedLabel is the distribution bucket for activities without a category.
const UncategorizedLabel = "Uncategorized"

// StaffActivityCount is one entry of a per-staff ranking.
type StaffActivityCount struct {
	UserID        string
	Name          string
	ActivityCount int
}

// CustomerVisitCount is one entry of the overview's customer ranking, keyed by name.
type CustomerVisitCount struct {
	CustomerName string
	VisitCount   int
}

// CategoryCount pairs a category title with its activity count.
type CategoryCount struct {
	Category string
	Count    int
}

// ActivityOverview is the workspace dashboard summary.
type ActivityOverview struct {
	TotalActivities      int
	TotalHours           float64
	ThisWeek             int
	ThisMonth            int
	TopStaff             []StaffActivityCount
	CategoryDistribution []CategoryCount
	TopCustomers         []CustomerVisitCount
	UniqueCustomers      int
	BillableHours        float64
	NonBillableHours     float64
	BillableVisits       int
	OfficeActivities     int
	BillingRate          float64
}

// TopCustomer ranks customers (by external id) by activity count.
type TopCustomer struct {
	CustomerID    string
	CustomerName  string
	ActivityCount int
	TotalHours    float64
}

// TimelineEntry is a recent activity in a customer timeline.
type TimelineEntry struct {
	ActivityID string
	Date       time.Time
	Title      string
	Category   *string
	Hours      float64
	Status     ActivityStatus
}

// CustomerTimeline summarises every visit to one customer.
type CustomerTimeline struct {
	CustomerID       string
	CustomerName     string
	LastVisit        time.Time
	FirstVisit       time.Time
	TotalVisits      int
	TotalHours       float64
	RecentActivities []TimelineEntry
}

// HealthStatus classifies how recently a customer was visited.
type HealthStatus string

const (
	HealthHealthy HealthStatus = "healthy"
	HealthAtRisk  HealthStatus = "at_risk"
)

// DefaultHealthThresholdDays is the default at-risk threshold.
const DefaultHealthThresholdDays = 30

// CustomerHealth is one row of the health check.
type CustomerHealth struct {
	CustomerID     string
	CustomerName   string
	LastVisit      time.Time
	DaysSinceVisit int
	TotalVisits    int
	Status         HealthStatus
}

// FrequencyCategory buckets an average visit gap.
type FrequencyCategory string

const (
	FrequencyWeekly     FrequencyCategory = "weekly"
	FrequencyBiweekly   FrequencyCategory = "biweekly"
	FrequencyMonthly    FrequencyCategory = "monthly"
	FrequencyQuarterly  FrequencyCategory = "quarterly"
	FrequencyInfrequent FrequencyCategory = "infrequent"
)

// CategorizeFrequency maps an average gap in days to its bucket.
func CategorizeFrequency(avgDays float64) FrequencyCategory {
	switch {
	case avgDays <= 7:
		return FrequencyWeekly
	case avgDays <= 14:
		return FrequencyBiweekly
	case avgDays <= 31:
		return FrequencyMonthly
	case avgDays <= 90:
		return FrequencyQuarterly
	default:
		return FrequencyInfrequent
	}
}

// VisitFrequency is one row of the visit-frequency analysis.
type VisitFrequency struct {
	CustomerID           string
	CustomerName         string
	TotalVisits          int
	AvgDaysBetweenVisits float64
	FrequencyCategory    FrequencyCategory
}

// WorkspaceActivityStats is the manager-level breakdown of a workspace's activities.
type WorkspaceActivityStats struct {
	TotalActivities      int
	HoursByStaff         []StaffActivityCount
	ActivitiesByCategory []CategoryCount
}
