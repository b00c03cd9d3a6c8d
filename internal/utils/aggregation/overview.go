package aggregation

import (
	"sort"
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

const (
	overviewTopStaff     = 5
	overviewTopCustomers = 6
)

// StartOfWeek returns Monday 00:00 UTC of the week containing now.
func StartOfWeek(now time.Time) time.Time {
	today := domain.TruncateToDate(now.UTC())
	return today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
}

// StartOfMonth returns the first day of now's month, UTC.
func StartOfMonth(now time.Time) time.Time {
	y, m, _ := now.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// Overview computes the dashboard summary for a workspace's activities.
func Overview(activities []domain.FieldActivity, now time.Time) domain.ActivityOverview {
	weekStart := StartOfWeek(now)
	monthStart := StartOfMonth(now)

	out := domain.ActivityOverview{TotalActivities: len(activities)}
	customers := make(map[string]struct{})
	for _, a := range activities {
		d := domain.TruncateToDate(a.ActivityDate)
		if !d.Before(weekStart) {
			out.ThisWeek++
		}
		if !d.Before(monthStart) {
			out.ThisMonth++
		}
		if a.CustomerID != nil && *a.CustomerID != "" {
			customers[*a.CustomerID] = struct{}{}
		}
	}
	out.UniqueCustomers = len(customers)

	hours := SplitHours(activities)
	out.TotalHours = round2(hours.Total)
	out.BillableHours = round2(hours.Billable)
	out.NonBillableHours = round2(hours.NonBillable)
	out.BillableVisits = hours.BillableVisits
	out.OfficeActivities = hours.OfficeActivities
	out.BillingRate = BillingRate(hours.Billable, hours.Total)

	out.TopStaff = topN(StaffCounts(activities), overviewTopStaff)
	out.CategoryDistribution = CategoryDistribution(activities)
	out.TopCustomers = topCustomersByName(activities, overviewTopCustomers)
	return out
}

// StaffCounts counts activities per assignee in first-seen order.
func StaffCounts(activities []domain.FieldActivity) []domain.StaffActivityCount {
	idx := make(map[string]int)
	var out []domain.StaffActivityCount
	for _, a := range activities {
		i, ok := idx[a.SupportStaffID]
		if !ok {
			i = len(out)
			idx[a.SupportStaffID] = i
			name := a.StaffName()
			out = append(out, domain.StaffActivityCount{UserID: a.SupportStaffID, Name: name})
		}
		out[i].ActivityCount++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ActivityCount > out[j].ActivityCount })
	return out
}

func topN(in []domain.StaffActivityCount, n int) []domain.StaffActivityCount {
	if len(in) > n {
		return in[:n]
	}
	if in == nil {
		return []domain.StaffActivityCount{}
	}
	return in
}

// CategoryDistribution counts activities per category title. The uncategorized bucket
// is appended only when non-empty, so the counts always sum to len(activities).
func CategoryDistribution(activities []domain.FieldActivity) []domain.CategoryCount {
	idx := make(map[string]int)
	out := []domain.CategoryCount{}
	uncategorized := 0
	for _, a := range activities {
		if a.TaskCategoryID == nil {
			uncategorized++
			continue
		}
		title := a.CategoryTitle()
		if title == "" {
			title = *a.TaskCategoryID
		}
		i, ok := idx[title]
		if !ok {
			i = len(out)
			idx[title] = i
			out = append(out, domain.CategoryCount{Category: title})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if uncategorized > 0 {
		out = append(out, domain.CategoryCount{Category: domain.UncategorizedLabel, Count: uncategorized})
	}
	return out
}

func topCustomersByName(activities []domain.FieldActivity, n int) []domain.CustomerVisitCount {
	idx := make(map[string]int)
	out := []domain.CustomerVisitCount{}
	for _, a := range activities {
		i, ok := idx[a.CustomerName]
		if !ok {
			i = len(out)
			idx[a.CustomerName] = i
			out = append(out, domain.CustomerVisitCount{CustomerName: a.CustomerName})
		}
		out[i].VisitCount++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].VisitCount > out[j].VisitCount })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// WorkspaceStats is the manager breakdown of activity counts by staff and category.
func WorkspaceStats(activities []domain.FieldActivity) domain.WorkspaceActivityStats {
	byCategory := CategoryDistribution(activities)
	staff := StaffCounts(activities)
	if staff == nil {
		staff = []domain.StaffActivityCount{}
	}
	return domain.WorkspaceActivityStats{
		TotalActivities:      len(activities),
		HoursByStaff:         staff,
		ActivitiesByCategory: byCategory,
	}
}
