package aggregation

import (
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// HoursBreakdown splits hours by billability.
type HoursBreakdown struct {
	Total            decimal.Decimal
	Billable         decimal.Decimal
	NonBillable      decimal.Decimal
	BillableVisits   int
	OfficeActivities int
}

// SplitHours totals durations, counting ON_SITE work as billable and everything else as office work.
func SplitHours(activities []domain.FieldActivity) HoursBreakdown {
	var b HoursBreakdown
	for _, a := range activities {
		h := domain.DurationHoursDecimal(a.StartTime, a.EndTime)
		b.Total = b.Total.Add(h)
		if a.LocationType.IsBillable() {
			b.Billable = b.Billable.Add(h)
			b.BillableVisits++
		} else {
			b.NonBillable = b.NonBillable.Add(h)
			b.OfficeActivities++
		}
	}
	return b
}

// BillingRate is billable/total as a percentage with one decimal. A zero total yields 0.
func BillingRate(billable, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return billable.Div(total).Mul(hundred).Round(1).InexactFloat64()
}

// TotalHours sums activity durations, rounded to two decimals.
func TotalHours(activities []domain.FieldActivity) float64 {
	total := decimal.Zero
	for _, a := range activities {
		total = total.Add(domain.DurationHoursDecimal(a.StartTime, a.EndTime))
	}
	return round2(total)
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
