package domain

import "time"

// DateRange is an inclusive calendar range.
type DateRange struct {
	From time.Time
	To   time.Time
}

// FromString and ToString render the bounds as YYYY-MM-DD.
func (r DateRange) FromString() string { return r.From.Format(DateLayout) }
func (r DateRange) ToString() string   { return r.To.Format(DateLayout) }

// Contains reports whether d falls inside the range, ignoring time of day.
func (r DateRange) Contains(d time.Time) bool {
	d = TruncateToDate(d)
	return !d.Before(TruncateToDate(r.From)) && !d.After(TruncateToDate(r.To))
}

// ReportActivity is the per-activity line rendered in reports.
type ReportActivity struct {
	ActivityID      string
	Title           string
	ActivityDate    time.Time
	StartTime       *TimeOfDay
	EndTime         *TimeOfDay
	DurationHours   float64
	CustomerName    string
	Location        string
	TaskDescription *string
	Remarks         *string
	CustomerRep     *string
}

// StaffBucket groups a staff member's activities for a report.
type StaffBucket struct {
	StaffID    string
	StaffName  string
	Activities []ReportActivity
	TotalHours float64
}

// ReportSummary totals a report.
type ReportSummary struct {
	TotalActivities int
	TotalHours      float64
	UniqueCustomers int
	UniqueStaff     int
}

// ActivityReport is the aggregated input of the report composer.
type ActivityReport struct {
	WorkspaceID string
	Range       DateRange
	Summary     ReportSummary
	Staff       []StaffBucket
}

// BucketFor returns the bucket for staffID, if any.
func (r ActivityReport) BucketFor(staffID string) (StaffBucket, bool) {
	for _, b := range r.Staff {
		if b.StaffID == staffID {
			return b, true
		}
	}
	return StaffBucket{}, false
}

// DistributionMode selects bulk or per-member report delivery.
type DistributionMode string

const (
	DistributionBulk       DistributionMode = "bulk"
	DistributionIndividual DistributionMode = "individual"
)

// EmailMessage is one outbound email.
type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
}

// SendResult is the transport's acknowledgement.
type SendResult struct {
	ID      string
	Message string
}

// BulkResult is the outcome of a bulk send.
type BulkResult struct {
	Message string
	EmailID string
}

// IndividualResult is the outcome of a per-member fan-out.
type IndividualResult struct {
	Message     string
	SentCount   int
	FailedCount int
	Errors      []string
}

// DistributionResult holds the outcome of whichever mode ran.
type DistributionResult struct {
	Mode       DistributionMode
	Bulk       *BulkResult
	Individual *IndividualResult
}

// WeeklyRunSummary reports what a weekly trigger run did.
type WeeklyRunSummary struct {
	Range               DateRange
	StartedAt           time.Time
	WorkspacesProcessed int
	WorkspacesSkipped   int
	WorkspacesFailed    int
}

// LastCompletedWeek returns Monday to Sunday of the week before the one containing now.
func LastCompletedWeek(now time.Time) DateRange {
	today := TruncateToDate(now)
	sinceMonday := (int(today.Weekday()) + 6) % 7
	lastMonday := today.AddDate(0, 0, -(sinceMonday + 7))
	return DateRange{From: lastMonday, To: lastMonday.AddDate(0, 0, 6)}
}

// WorkspaceActivityCount is a workspace with its activity count for a period.
type WorkspaceActivityCount struct {
	WorkspaceID   string
	WorkspaceName string
	ActivityCount int
}
