package aggregation

import (
	"sort"
	"time"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultTopCustomersLimit applies when the caller passes a non-positive limit.
	DefaultTopCustomersLimit = 10
	timelineRecent           = 5
)

// customerGroup collects one customer's activities, keyed by external customer id.
type customerGroup struct {
	id         string
	name       string
	nameDate   time.Time
	count      int
	hours      decimal.Decimal
	lastVisit  time.Time
	visitDates []time.Time
}

// groupByCustomerID buckets activities with a non-empty customer id in first-seen order.
// The group's display name is taken from its most recent activity.
func groupByCustomerID(activities []domain.FieldActivity) []*customerGroup {
	idx := make(map[string]*customerGroup)
	var out []*customerGroup
	for _, a := range activities {
		if a.CustomerID == nil || *a.CustomerID == "" {
			continue
		}
		g, ok := idx[*a.CustomerID]
		if !ok {
			g = &customerGroup{id: *a.CustomerID}
			idx[g.id] = g
			out = append(out, g)
		}
		d := domain.TruncateToDate(a.ActivityDate)
		if g.count == 0 || d.After(g.nameDate) {
			g.name = a.CustomerName
			g.nameDate = d
		}
		if d.After(g.lastVisit) {
			g.lastVisit = d
		}
		g.count++
		g.hours = g.hours.Add(domain.DurationHoursDecimal(a.StartTime, a.EndTime))
		g.visitDates = append(g.visitDates, d)
	}
	return out
}

// TopCustomers ranks customers by activity count, highest first.
func TopCustomers(activities []domain.FieldActivity, limit int) []domain.TopCustomer {
	if limit <= 0 {
		limit = DefaultTopCustomersLimit
	}
	groups := groupByCustomerID(activities)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })

	out := make([]domain.TopCustomer, 0, min(limit, len(groups)))
	for _, g := range groups {
		if len(out) == limit {
			break
		}
		out = append(out, domain.TopCustomer{
			CustomerID:    g.id,
			CustomerName:  g.name,
			ActivityCount: g.count,
			TotalHours:    round2(g.hours),
		})
	}
	return out
}

// CustomerTimeline summarises a single customer's activities. Input order does not matter.
func CustomerTimeline(customerID string, activities []domain.FieldActivity) (*domain.CustomerTimeline, error) {
	if len(activities) == 0 {
		return nil, apperrors.NewNotFoundError("No activities found for this customer")
	}
	sorted := make([]domain.FieldActivity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ActivityDate.After(sorted[j].ActivityDate)
	})

	recentN := min(timelineRecent, len(sorted))
	recent := make([]domain.TimelineEntry, 0, recentN)
	for _, a := range sorted[:recentN] {
		var category *string
		if title := a.CategoryTitle(); title != "" {
			category = &title
		}
		recent = append(recent, domain.TimelineEntry{
			ActivityID: a.ActivityID,
			Date:       domain.TruncateToDate(a.ActivityDate),
			Title:      a.Title,
			Category:   category,
			Hours:      a.DurationHours(),
			Status:     a.Status,
		})
	}

	return &domain.CustomerTimeline{
		CustomerID:       customerID,
		CustomerName:     sorted[0].CustomerName,
		LastVisit:        domain.TruncateToDate(sorted[0].ActivityDate),
		FirstVisit:       domain.TruncateToDate(sorted[len(sorted)-1].ActivityDate),
		TotalVisits:      len(sorted),
		TotalHours:       TotalHours(sorted),
		RecentActivities: recent,
	}, nil
}

// HealthCheck flags customers whose last visit is thresholdDays or more before today.
// Results are ordered by days since last visit, longest first.
// A zero threshold marks every customer at risk.
func HealthCheck(activities []domain.FieldActivity, thresholdDays int, today time.Time) []domain.CustomerHealth {
	today = domain.TruncateToDate(today)
	groups := groupByCustomerID(activities)

	out := make([]domain.CustomerHealth, 0, len(groups))
	for _, g := range groups {
		days := int(today.Sub(g.lastVisit).Hours() / 24)
		status := domain.HealthHealthy
		if days >= thresholdDays {
			status = domain.HealthAtRisk
		}
		out = append(out, domain.CustomerHealth{
			CustomerID:     g.id,
			CustomerName:   g.name,
			LastVisit:      g.lastVisit,
			DaysSinceVisit: days,
			TotalVisits:    g.count,
			Status:         status,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysSinceVisit > out[j].DaysSinceVisit })
	return out
}

// VisitFrequency averages the gap between consecutive visits for customers visited at least twice.
// Results are ordered by average gap, shortest first.
func VisitFrequency(activities []domain.FieldActivity) []domain.VisitFrequency {
	groups := groupByCustomerID(activities)
	out := make([]domain.VisitFrequency, 0, len(groups))
	for _, g := range groups {
		if len(g.visitDates) < 2 {
			continue
		}
		dates := make([]time.Time, len(g.visitDates))
		copy(dates, g.visitDates)
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		totalGap := 0
		for i := 1; i < len(dates); i++ {
			totalGap += int(dates[i].Sub(dates[i-1]).Hours() / 24)
		}
		// the bucket is chosen from the exact average; only the reported value is rounded
		avg := decimal.NewFromInt(int64(totalGap)).
			Div(decimal.NewFromInt(int64(len(dates) - 1)))

		out = append(out, domain.VisitFrequency{
			CustomerID:           g.id,
			CustomerName:         g.name,
			TotalVisits:          len(dates),
			AvgDaysBetweenVisits: avg.Round(1).InexactFloat64(),
			FrequencyCategory:    domain.CategorizeFrequency(avg.InexactFloat64()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgDaysBetweenVisits < out[j].AvgDaysBetweenVisits })
	return out
}
