package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
)

// Stat fakes recording the windows they were queried with.

type fakeClientStats struct {
	total      int
	byStatus   []repository.StatusCount
	active     int
	registered int
	birthdays  []model.Client

	registeredSince time.Time
}

func (f *fakeClientStats) Count(context.Context) (int, error) { return f.total, nil }
func (f *fakeClientStats) CountByStatus(context.Context) ([]repository.StatusCount, error) {
	return f.byStatus, nil
}
func (f *fakeClientStats) CountByStatusValue(_ context.Context, status string) (int, error) {
	return f.active, nil
}
func (f *fakeClientStats) CountRegisteredSince(_ context.Context, since time.Time) (int, error) {
	f.registeredSince = since
	return f.registered, nil
}
func (f *fakeClientStats) BirthdaysInMonth(_ context.Context, month time.Month) ([]model.Client, error) {
	return f.birthdays, nil
}

type fakeOrderStats struct {
	total       int
	pending     int
	created     int
	pendingSum  float64
	paidSum     float64
	paidByDate  float64
	trends      []repository.EnrollmentTrend
	topCourseID uint64
	topCount    int

	paidSince time.Time
}

func (f *fakeOrderStats) Count(context.Context) (int, error) { return f.total, nil }
func (f *fakeOrderStats) CountByStatus(_ context.Context, status string) (int, error) {
	return f.pending, nil
}
func (f *fakeOrderStats) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	return f.created, nil
}
func (f *fakeOrderStats) SumAmountByStatus(_ context.Context, status string) (float64, error) {
	return f.pendingSum, nil
}
func (f *fakeOrderStats) SumPaidCreatedSince(_ context.Context, since time.Time) (float64, error) {
	f.paidSince = since
	return f.paidSum, nil
}
func (f *fakeOrderStats) SumPaidByPaidDateSince(_ context.Context, since time.Time) (float64, error) {
	return f.paidByDate, nil
}
func (f *fakeOrderStats) EnrollmentTrends(_ context.Context, since time.Time) ([]repository.EnrollmentTrend, error) {
	return f.trends, nil
}
func (f *fakeOrderStats) MostOrderedCourse(context.Context) (uint64, int, error) {
	return f.topCourseID, f.topCount, nil
}

type fakePaymentStats struct {
	completed float64
	byService []repository.ServiceRevenue

	completedSince time.Time
}

func (f *fakePaymentStats) SumCompletedSince(_ context.Context, since time.Time) (float64, error) {
	f.completedSince = since
	return f.completed, nil
}
func (f *fakePaymentStats) RevenueByServiceType(_ context.Context, since time.Time) ([]repository.ServiceRevenue, error) {
	return f.byService, nil
}

type fakeCourseStats struct {
	courses map[uint64]model.Course
	top     []model.Course
	avg     float64
	above   int
	total   int
	active  int
}

func (f *fakeCourseStats) GetByID(_ context.Context, id uint64) (model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return model.Course{}, repository.ErrServiceNotFound
	}
	return c, nil
}
func (f *fakeCourseStats) TopByEnrollment(_ context.Context, limit int) ([]model.Course, error) {
	return f.top, nil
}
func (f *fakeCourseStats) CompletionStats(_ context.Context, threshold float64) (float64, int, int, error) {
	return f.avg, f.above, f.total, nil
}
func (f *fakeCourseStats) CountActive(context.Context) (int, error) { return f.active, nil }

type fakeClassStats struct {
	ids      []uint64
	upcoming int
}

func (f *fakeClassStats) IDsByCourseName(_ context.Context, name string) ([]uint64, error) {
	return f.ids, nil
}
func (f *fakeClassStats) CountUpcoming(_ context.Context, now time.Time) (int, error) {
	return f.upcoming, nil
}

type fakeAttendanceStats struct {
	stats []repository.ClassStats

	queriedIDs []uint64
}

func (f *fakeAttendanceStats) StatsByClass(_ context.Context, classIDs []uint64) ([]repository.ClassStats, error) {
	f.queriedIDs = classIDs
	return f.stats, nil
}

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestAggregator() *Aggregator {
	return &Aggregator{
		Clients:    &fakeClientStats{},
		Orders:     &fakeOrderStats{},
		Payments:   &fakePaymentStats{},
		Courses:    &fakeCourseStats{},
		Classes:    &fakeClassStats{},
		Attendance: &fakeAttendanceStats{},
		Now:        func() time.Time { return fixedNow },
	}
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m), "payload: %s", s)
	return m
}

func TestRevenuePeriodWindows(t *testing.T) {
	a := newTestAggregator()
	payments := a.Payments.(*fakePaymentStats)
	payments.completed = 1500
	orders := a.Orders.(*fakeOrderStats)
	orders.pendingSum = 300

	out, err := a.Revenue(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), payments.completedSince)

	m := decode(t, out)
	assert.Equal(t, true, m["success"])
	assert.Equal(t, "week", m["period"])
	assert.EqualValues(t, 1500, m["total_revenue"])
	assert.EqualValues(t, 300, m["outstanding_payments"])
	dr := m["date_range"].(map[string]any)
	assert.Equal(t, "2025-06-08T12:00:00Z", dr["from"])
	assert.Equal(t, "2025-06-15T12:00:00Z", dr["to"])

	// unknown periods fall back to a 30-day month window
	out, err = a.Revenue(context.Background(), "fortnight")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), payments.completedSince)
	assert.Equal(t, "month", decode(t, out)["period"])

	_, err = a.Revenue(context.Background(), "quarter")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -90), payments.completedSince)
}

func TestClientInsights(t *testing.T) {
	a := newTestAggregator()
	bday := time.Date(1990, 6, 3, 0, 0, 0, 0, time.UTC)
	clients := a.Clients.(*fakeClientStats)
	clients.total = 12
	clients.byStatus = []repository.StatusCount{{Status: "active", Count: 10}, {Status: "inactive", Count: 2}}
	clients.registered = 4
	clients.birthdays = []model.Client{{ID: 5, Name: "June Kid", Email: "june@x.com", Birthday: &bday}}

	out, err := a.ClientInsights(context.Background())
	require.NoError(t, err)

	// registrations are counted from the first of the current month
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), clients.registeredSince)

	m := decode(t, out)
	assert.EqualValues(t, 12, m["total_clients"])
	assert.EqualValues(t, 4, m["new_clients_this_month"])
	rem := m["birthday_reminders"].(map[string]any)
	assert.EqualValues(t, 1, rem["count"])
	card := rem["clients"].([]any)[0].(map[string]any)
	assert.Equal(t, "5", card["_id"])
	assert.Equal(t, "1990-06-03T00:00:00Z", card["birthday"])
}

func TestServiceInsightsEmptyCompletionStats(t *testing.T) {
	a := newTestAggregator()
	out, err := a.ServiceInsights(context.Background())
	require.NoError(t, err)

	m := decode(t, out)
	// no active courses renders completion statistics as an empty object
	assert.Equal(t, map[string]any{}, m["completion_statistics"])
	assert.Equal(t, []any{}, m["top_courses"])
	assert.Equal(t, []any{}, m["enrollment_trends_30_days"])
}

func TestServiceInsightsCompletionStats(t *testing.T) {
	a := newTestAggregator()
	courses := a.Courses.(*fakeCourseStats)
	courses.avg, courses.above, courses.total = 84.5, 3, 5
	courses.top = []model.Course{{ID: 9, Name: "HIIT Bootcamp", Instructor: "Lisa Rodriguez", EnrollmentCount: 18, CompletionRate: 88, Price: 150, Category: "Cardio", CreatedDate: fixedNow}}

	out, err := a.ServiceInsights(context.Background())
	require.NoError(t, err)
	m := decode(t, out)
	stats := m["completion_statistics"].(map[string]any)
	assert.EqualValues(t, 84.5, stats["avg_completion_rate"])
	assert.EqualValues(t, 3, stats["courses_above_80_percent"])
	assert.EqualValues(t, 5, stats["total_courses"])
	top := m["top_courses"].([]any)[0].(map[string]any)
	assert.Equal(t, "9", top["_id"])
	assert.Equal(t, "HIIT Bootcamp", top["name"])
}

func TestAttendanceInsights(t *testing.T) {
	a := newTestAggregator()
	att := a.Attendance.(*fakeAttendanceStats)
	att.stats = []repository.ClassStats{
		{ClassID: 1, CourseName: "Yoga Beginner", Instructor: "Sarah Johnson", Schedule: fixedNow, TotalRegistered: 10, PresentCount: 7, LateCount: 2, AbsentCount: 1},
		{ClassID: 2, CourseName: "Yoga Beginner", Instructor: "Sarah Johnson", Schedule: fixedNow, TotalRegistered: 0},
	}

	out, err := a.AttendanceInsights(context.Background(), "")
	require.NoError(t, err)
	m := decode(t, out)
	details := m["class_details"].([]any)
	require.Len(t, details, 2)

	first := details[0].(map[string]any)
	assert.EqualValues(t, 90, first["attendance_percentage"])

	// zero registrations is a 0% row, not a division error
	second := details[1].(map[string]any)
	assert.EqualValues(t, 0, second["attendance_percentage"])

	sum := m["summary"].(map[string]any)
	assert.EqualValues(t, 2, sum["total_classes_analyzed"])
	assert.EqualValues(t, 45, sum["average_attendance_percentage"])
	assert.EqualValues(t, 1, sum["classes_with_80_plus_attendance"])
}

func TestAttendanceInsightsCourseFilterNotFound(t *testing.T) {
	a := newTestAggregator()
	out, err := a.AttendanceInsights(context.Background(), "Underwater Basket Weaving")
	require.NoError(t, err)
	m := decode(t, out)
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "No classes found for course: Underwater Basket Weaving", m["message"])
}

func TestAttendanceInsightsCourseFilterNarrowsQuery(t *testing.T) {
	a := newTestAggregator()
	classes := a.Classes.(*fakeClassStats)
	classes.ids = []uint64{4, 5}
	att := a.Attendance.(*fakeAttendanceStats)

	_, err := a.AttendanceInsights(context.Background(), "Yoga")
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 5}, att.queriedIDs)
}

func TestSummarySampleFallback(t *testing.T) {
	a := newTestAggregator()
	a.SampleData = true

	out, err := a.Summary(context.Background())
	require.NoError(t, err)
	m := decode(t, out)
	assert.Equal(t, true, m["success"])
	assert.Equal(t, "Sample data - database appears to be empty", m["note"])
	assert.Equal(t, "2025-06-15T12:00:00Z", m["generated_at"])

	overview := m["studio_overview"].(map[string]any)
	assert.EqualValues(t, 25, overview["total_clients"])
	assert.EqualValues(t, 92.0, overview["client_retention_rate"])
	courses := m["courses_and_classes"].(map[string]any)
	assert.Equal(t, "HIIT Training", courses["most_popular_course"])
}

func TestSummaryRealData(t *testing.T) {
	a := newTestAggregator()
	a.SampleData = true // must not trigger with data present

	clients := a.Clients.(*fakeClientStats)
	clients.total, clients.active, clients.registered = 40, 30, 6
	orders := a.Orders.(*fakeOrderStats)
	orders.total, orders.pending, orders.created = 80, 12, 20
	orders.paidSum = 2400
	orders.topCourseID, orders.topCount = 9, 14
	courses := a.Courses.(*fakeCourseStats)
	courses.active = 6
	courses.courses = map[uint64]model.Course{9: {ID: 9, Name: "HIIT Bootcamp"}}
	a.Classes.(*fakeClassStats).upcoming = 11

	out, err := a.Summary(context.Background())
	require.NoError(t, err)
	m := decode(t, out)
	assert.NotContains(t, m, "note")

	overview := m["studio_overview"].(map[string]any)
	assert.EqualValues(t, 40, overview["total_clients"])
	assert.EqualValues(t, 75, overview["client_retention_rate"])

	rev := m["orders_and_revenue"].(map[string]any)
	assert.EqualValues(t, 12, rev["active_orders"])
	assert.EqualValues(t, 2400, rev["monthly_revenue"])
	assert.EqualValues(t, 120, rev["average_order_value"])

	cc := m["courses_and_classes"].(map[string]any)
	assert.Equal(t, "HIIT Bootcamp", cc["most_popular_course"])
	assert.EqualValues(t, 11, cc["upcoming_classes"])
}

func TestSummaryNoOrdersForPopularCourse(t *testing.T) {
	a := newTestAggregator()
	a.Clients.(*fakeClientStats).total = 1

	out, err := a.Summary(context.Background())
	require.NoError(t, err)
	m := decode(t, out)
	cc := m["courses_and_classes"].(map[string]any)
	assert.Equal(t, "No data available", cc["most_popular_course"])
}

func TestSnapshots(t *testing.T) {
	a := newTestAggregator()
	orders := a.Orders.(*fakeOrderStats)
	orders.pendingSum = 500 // SumAmountByStatus serves both paid and pending in this fake
	orders.paidByDate = 1200
	clients := a.Clients.(*fakeClientStats)
	clients.byStatus = []repository.StatusCount{
		{Status: model.ClientActive, Count: 20},
		{Status: model.ClientInactive, Count: 4},
		{Status: model.ClientSuspended, Count: 1},
	}
	clients.registered = 3

	rs, err := a.RevenueMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1200.0, rs.MonthlyRevenue)
	assert.Equal(t, "2025-06", rs.Period)

	cs, err := a.ClientMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, cs.ActiveClients)
	assert.Equal(t, 4, cs.InactiveClients)
	assert.Equal(t, 1, cs.SuspendedClients)
	assert.Equal(t, 25, cs.TotalClients)
	assert.Equal(t, 3, cs.NewThisMonth)
}
