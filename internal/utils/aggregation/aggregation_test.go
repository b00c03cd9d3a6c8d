package aggregation

import (
	"fmt"
	"testing"
	"time"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(s string) *domain.TimeOfDay {
	v, err := domain.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return &v
}

func strPtr(s string) *string { return &s }

type activityOpt func(*domain.FieldActivity)

func newActivity(id string, date time.Time, opts ...activityOpt) domain.FieldActivity {
	a := domain.FieldActivity{
		ActivityID:     id,
		WorkspaceID:    "ws-1",
		SupportStaffID: "u-1",
		ActivityDate:   date,
		Title:          "Visit " + id,
		CustomerName:   "Acme",
		LocationType:   domain.LocationOnSite,
		Status:         domain.StatusCompleted,
		SupportStaff:   &domain.UserRef{UserID: "u-1", Username: "alice", FullName: strPtr("Alice A")},
	}
	for _, o := range opts {
		o(&a)
	}
	return a
}

func hours(start, end string) activityOpt {
	return func(a *domain.FieldActivity) { a.StartTime, a.EndTime = clock(start), clock(end) }
}

func customer(id, name string) activityOpt {
	return func(a *domain.FieldActivity) {
		a.CustomerID = strPtr(id)
		a.CustomerName = name
	}
}

func staff(id, username string, fullName *string) activityOpt {
	return func(a *domain.FieldActivity) {
		a.SupportStaffID = id
		a.SupportStaff = &domain.UserRef{UserID: id, Username: username, FullName: fullName}
	}
}

func category(id, title string) activityOpt {
	return func(a *domain.FieldActivity) {
		a.TaskCategoryID = strPtr(id)
		a.TaskCategory = &domain.CategoryRef{CategoryID: id, Title: title, RequiredRole: domain.RoleTeamMember}
	}
}

func office() activityOpt {
	return func(a *domain.FieldActivity) { a.LocationType = domain.LocationOffice }
}

func TestOverview_AllOnSiteIsFullyBillable(t *testing.T) {
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4), hours("09:00", "11:30")),
		newActivity("2", day(2024, 3, 5), hours("09:00", "12:00")),
		newActivity("3", day(2024, 3, 6), hours("13:00", "15:00")),
	}

	o := Overview(activities, day(2024, 3, 7))

	assert.Equal(t, 3, o.TotalActivities)
	assert.Equal(t, 7.5, o.TotalHours)
	assert.Equal(t, 7.5, o.BillableHours)
	assert.Equal(t, 0.0, o.NonBillableHours)
	assert.Equal(t, 100.0, o.BillingRate)
	assert.Equal(t, 3, o.BillableVisits)
	assert.Equal(t, 0, o.OfficeActivities)
}

func TestOverview_ZeroHoursYieldsZeroRate(t *testing.T) {
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4)),
		newActivity("2", day(2024, 3, 4), office()),
	}
	o := Overview(activities, day(2024, 3, 7))
	assert.Equal(t, 0.0, o.TotalHours)
	assert.Equal(t, 0.0, o.BillingRate)

	empty := Overview(nil, day(2024, 3, 7))
	assert.Equal(t, 0, empty.TotalActivities)
	assert.Equal(t, 0.0, empty.BillingRate)
	assert.Empty(t, empty.TopStaff)
	assert.Empty(t, empty.CategoryDistribution)
}

func TestOverview_MixedBilling(t *testing.T) {
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4), hours("09:00", "12:00")),
		newActivity("2", day(2024, 3, 4), hours("13:00", "14:00"), office()),
	}
	o := Overview(activities, day(2024, 3, 7))
	assert.Equal(t, 3.0, o.BillableHours)
	assert.Equal(t, 1.0, o.NonBillableHours)
	assert.Equal(t, 75.0, o.BillingRate)
	assert.Equal(t, 1, o.OfficeActivities)
}

func TestOverview_WeekAndMonthWindows(t *testing.T) {
	now := time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC) // Thursday
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4)),  // Monday this week
		newActivity("2", day(2024, 3, 3)),  // Sunday last week, same month
		newActivity("3", day(2024, 2, 29)), // last month
		newActivity("4", day(2024, 3, 1)),  // first of month
	}
	o := Overview(activities, now)
	assert.Equal(t, 1, o.ThisWeek)
	assert.Equal(t, 3, o.ThisMonth)
}

func TestOverview_IsIdempotent(t *testing.T) {
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4), hours("09:00", "10:00"), customer("c1", "Acme"), category("k1", "Install")),
		newActivity("2", day(2024, 3, 5), hours("10:00", "12:15"), customer("c2", "Globex"), office()),
	}
	now := day(2024, 3, 7)
	assert.Equal(t, Overview(activities, now), Overview(activities, now))
}

func TestOverview_Rankings(t *testing.T) {
	bob := staff("u-2", "bob", nil)
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4), customer("c1", "Acme")),
		newActivity("2", day(2024, 3, 4), bob, customer("c2", "Globex")),
		newActivity("3", day(2024, 3, 4), bob, customer("c2", "Globex")),
		newActivity("4", day(2024, 3, 4), bob),
	}
	o := Overview(activities, day(2024, 3, 7))

	require.Len(t, o.TopStaff, 2)
	assert.Equal(t, domain.StaffActivityCount{UserID: "u-2", Name: "bob", ActivityCount: 3}, o.TopStaff[0])
	assert.Equal(t, "Alice A", o.TopStaff[1].Name)

	require.Len(t, o.TopCustomers, 2)
	assert.Equal(t, "Acme", o.TopCustomers[0].CustomerName)
	assert.Equal(t, 2, o.TopCustomers[0].VisitCount)
	assert.Equal(t, 2, o.UniqueCustomers)
}

func TestCategoryDistribution_SumsToTotal(t *testing.T) {
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4), category("k1", "Install")),
		newActivity("2", day(2024, 3, 4), category("k1", "Install")),
		newActivity("3", day(2024, 3, 4), category("k2", "Repair")),
		newActivity("4", day(2024, 3, 4)),
	}
	dist := CategoryDistribution(activities)

	sum := 0
	for _, c := range dist {
		sum += c.Count
	}
	assert.Equal(t, len(activities), sum)
	assert.Equal(t, domain.CategoryCount{Category: "Install", Count: 2}, dist[0])
	assert.Equal(t, domain.CategoryCount{Category: domain.UncategorizedLabel, Count: 1}, dist[len(dist)-1])

	noneUncategorized := CategoryDistribution(activities[:3])
	for _, c := range noneUncategorized {
		assert.NotEqual(t, domain.UncategorizedLabel, c.Category)
	}
}

func TestTopCustomers(t *testing.T) {
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 1), customer("c1", "Acme"), hours("09:00", "10:00")),
		newActivity("2", day(2024, 3, 2), customer("c2", "Globex"), hours("09:00", "10:30")),
		newActivity("3", day(2024, 3, 3), customer("c2", "Globex Ltd"), hours("09:00", "10:00")),
		newActivity("4", day(2024, 3, 3)), // no customer id
	}
	top := TopCustomers(activities, 0)
	require.Len(t, top, 2)
	assert.Equal(t, domain.TopCustomer{CustomerID: "c2", CustomerName: "Globex Ltd", ActivityCount: 2, TotalHours: 2.5}, top[0])
	assert.Equal(t, "c1", top[1].CustomerID)

	assert.Len(t, TopCustomers(activities, 1), 1)
}

func TestCustomerTimeline(t *testing.T) {
	var activities []domain.FieldActivity
	for i := 1; i <= 7; i++ {
		activities = append(activities, newActivity(string(rune('0'+i)), day(2024, 3, i), customer("c1", "Acme"), hours("09:00", "10:00")))
	}
	activities[6].TaskCategoryID = strPtr("k1")
	activities[6].TaskCategory = &domain.CategoryRef{CategoryID: "k1", Title: "Install"}

	tl, err := CustomerTimeline("c1", activities)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 7), tl.LastVisit)
	assert.Equal(t, day(2024, 3, 1), tl.FirstVisit)
	assert.Equal(t, 7, tl.TotalVisits)
	assert.Equal(t, 7.0, tl.TotalHours)
	require.Len(t, tl.RecentActivities, 5)
	assert.Equal(t, "7", tl.RecentActivities[0].ActivityID)
	require.NotNil(t, tl.RecentActivities[0].Category)
	assert.Equal(t, "Install", *tl.RecentActivities[0].Category)
	assert.Nil(t, tl.RecentActivities[1].Category)
}

func TestCustomerTimeline_NotFound(t *testing.T) {
	_, err := CustomerTimeline("c1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "No activities found for this customer", apperrors.Message(err))
}

func TestHealthCheck(t *testing.T) {
	today := day(2024, 3, 31)
	activities := []domain.FieldActivity{
		newActivity("1", today.AddDate(0, 0, -10), customer("A", "Alpha")),
		newActivity("2", today.AddDate(0, 0, -40), customer("B", "Beta")),
		newActivity("3", today.AddDate(0, 0, -50), customer("B", "Beta")),
	}
	rows := HealthCheck(activities, 30, today)

	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].CustomerID)
	assert.Equal(t, domain.HealthAtRisk, rows[0].Status)
	assert.Equal(t, 40, rows[0].DaysSinceVisit)
	assert.Equal(t, 2, rows[0].TotalVisits)
	assert.Equal(t, "A", rows[1].CustomerID)
	assert.Equal(t, domain.HealthHealthy, rows[1].Status)
	assert.Equal(t, 10, rows[1].DaysSinceVisit)
}

func TestHealthCheck_ThresholdBoundary(t *testing.T) {
	today := day(2024, 3, 31)
	rows := HealthCheck([]domain.FieldActivity{
		newActivity("1", today.AddDate(0, 0, -30), customer("A", "Alpha")),
	}, domain.DefaultHealthThresholdDays, today)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.HealthAtRisk, rows[0].Status, "a visit exactly threshold days ago is at risk")
}

func TestHealthCheck_ZeroThresholdFlagsEveryone(t *testing.T) {
	today := day(2024, 3, 31)
	rows := HealthCheck([]domain.FieldActivity{
		newActivity("1", today, customer("A", "Alpha")),
	}, 0, today)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].DaysSinceVisit)
	assert.Equal(t, domain.HealthAtRisk, rows[0].Status)
}

func TestVisitFrequency(t *testing.T) {
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 1, 1), customer("A", "Alpha")),
		newActivity("2", day(2024, 1, 8), customer("A", "Alpha")),
		newActivity("3", day(2024, 1, 22), customer("A", "Alpha")),
		newActivity("4", day(2024, 1, 1), customer("B", "Beta")),
		newActivity("5", day(2024, 1, 4), customer("B", "Beta")),
		newActivity("6", day(2024, 1, 1), customer("C", "Gamma")),
	}
	rows := VisitFrequency(activities)

	require.Len(t, rows, 2, "customers with a single visit are excluded")
	assert.Equal(t, "B", rows[0].CustomerID)
	assert.Equal(t, 3.0, rows[0].AvgDaysBetweenVisits)
	assert.Equal(t, domain.FrequencyWeekly, rows[0].FrequencyCategory)
	assert.Equal(t, "A", rows[1].CustomerID)
	assert.Equal(t, 10.5, rows[1].AvgDaysBetweenVisits)
	assert.Equal(t, domain.FrequencyBiweekly, rows[1].FrequencyCategory)
}

func TestVisitFrequency_BucketUsesUnroundedAverage(t *testing.T) {
	// 20 weekly gaps followed by one 8 day gap: 148/21 = 7.047 days, which rounds to 7.0
	visit := day(2024, 1, 1)
	activities := []domain.FieldActivity{newActivity("v0", visit, customer("A", "Alpha"))}
	for i := 1; i <= 21; i++ {
		gap := 7
		if i == 21 {
			gap = 8
		}
		visit = visit.AddDate(0, 0, gap)
		activities = append(activities, newActivity(fmt.Sprintf("v%d", i), visit, customer("A", "Alpha")))
	}

	rows := VisitFrequency(activities)

	require.Len(t, rows, 1)
	assert.Equal(t, 22, rows[0].TotalVisits)
	assert.Equal(t, 7.0, rows[0].AvgDaysBetweenVisits)
	assert.Equal(t, domain.FrequencyBiweekly, rows[0].FrequencyCategory)
}

func TestBuildReport(t *testing.T) {
	bob := staff("u-2", "bob", nil)
	rng := domain.DateRange{From: day(2024, 3, 4), To: day(2024, 3, 10)}
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4), hours("09:00", "10:00"), customer("c1", "Acme")),
		newActivity("2", day(2024, 3, 4), bob, hours("09:00", "11:00"), customer("c2", "Globex")),
		newActivity("3", day(2024, 3, 5), hours("22:00", "01:30"), customer("c1", "Acme")),
	}
	r := BuildReport("ws-1", rng, activities)

	require.Len(t, r.Staff, 2)
	assert.Equal(t, "Alice A", r.Staff[0].StaffName)
	assert.Len(t, r.Staff[0].Activities, 2)
	assert.Equal(t, 4.5, r.Staff[0].TotalHours)
	assert.Equal(t, 3.5, r.Staff[0].Activities[1].DurationHours)
	assert.Equal(t, "bob", r.Staff[1].StaffName)
	assert.Equal(t, domain.ReportSummary{TotalActivities: 3, TotalHours: 6.5, UniqueCustomers: 2, UniqueStaff: 2}, r.Summary)

	single := SingleStaffReport(r, r.Staff[1])
	assert.Equal(t, domain.ReportSummary{TotalActivities: 1, TotalHours: 2, UniqueCustomers: 1, UniqueStaff: 1}, single.Summary)
}

func TestWorkspaceStats(t *testing.T) {
	activities := []domain.FieldActivity{
		newActivity("1", day(2024, 3, 4), category("k1", "Install")),
		newActivity("2", day(2024, 3, 4), staff("u-2", "bob", nil)),
	}
	s := WorkspaceStats(activities)
	assert.Equal(t, 2, s.TotalActivities)
	assert.Len(t, s.HoursByStaff, 2)
	assert.Len(t, s.ActivitiesByCategory, 2)
}
