package aggregation

import (
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildReport groups activities by assignee in first-seen order and totals the result.
// Callers pass activities already ordered by date then start time.
func BuildReport(workspaceID string, rng domain.DateRange, activities []domain.FieldActivity) domain.ActivityReport {
	idx := make(map[string]int)
	hours := make([]decimal.Decimal, 0)
	var buckets []domain.StaffBucket
	total := decimal.Zero

	for _, a := range activities {
		i, ok := idx[a.SupportStaffID]
		if !ok {
			i = len(buckets)
			idx[a.SupportStaffID] = i
			buckets = append(buckets, domain.StaffBucket{StaffID: a.SupportStaffID, StaffName: a.StaffName()})
			hours = append(hours, decimal.Zero)
		}
		d := domain.DurationHoursDecimal(a.StartTime, a.EndTime)
		hours[i] = hours[i].Add(d)
		total = total.Add(d)
		buckets[i].Activities = append(buckets[i].Activities, domain.ReportActivity{
			ActivityID:      a.ActivityID,
			Title:           a.Title,
			ActivityDate:    a.ActivityDate,
			StartTime:       a.StartTime,
			EndTime:         a.EndTime,
			DurationHours:   d.InexactFloat64(),
			CustomerName:    a.CustomerName,
			Location:        a.Location,
			TaskDescription: a.TaskDescription,
			Remarks:         a.Remarks,
			CustomerRep:     a.CustomerRep,
		})
	}
	for i := range buckets {
		buckets[i].TotalHours = round2(hours[i])
	}

	return domain.ActivityReport{
		WorkspaceID: workspaceID,
		Range:       rng,
		Staff:       buckets,
		Summary: domain.ReportSummary{
			TotalActivities: len(activities),
			TotalHours:      round2(total),
			UniqueCustomers: uniqueCustomerNames(buckets),
			UniqueStaff:     len(buckets),
		},
	}
}

// SingleStaffReport narrows a report to one bucket and recomputes its summary.
func SingleStaffReport(r domain.ActivityReport, bucket domain.StaffBucket) domain.ActivityReport {
	only := []domain.StaffBucket{bucket}
	return domain.ActivityReport{
		WorkspaceID: r.WorkspaceID,
		Range:       r.Range,
		Staff:       only,
		Summary: domain.ReportSummary{
			TotalActivities: len(bucket.Activities),
			TotalHours:      bucket.TotalHours,
			UniqueCustomers: uniqueCustomerNames(only),
			UniqueStaff:     1,
		},
	}
}

func uniqueCustomerNames(buckets []domain.StaffBucket) int {
	seen := make(map[string]struct{})
	for _, b := range buckets {
		for _, a := range b.Activities {
			seen[a.CustomerName] = struct{}{}
		}
	}
	return len(seen)
}
