// Package analytics computes the reporting side of the studio: revenue,
// client, service and attendance insights plus the overall summary. All
// computations are read-only and idempotent, and results are rendered as
// JSON text so the agent runtimes can relay them verbatim.
package analytics

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
)

// completionThreshold is the completion-rate cutoff used when counting
// well-performing courses, and doubles as the attendance cutoff for
// high-attendance classes.
const completionThreshold = 80

type ClientStats interface {
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
	CountByStatusValue(ctx context.Context, status string) (int, error)
	CountRegisteredSince(ctx context.Context, since time.Time) (int, error)
	BirthdaysInMonth(ctx context.Context, month time.Month) ([]model.Client, error)
}

type OrderStats interface {
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	SumAmountByStatus(ctx context.Context, status string) (float64, error)
	SumPaidCreatedSince(ctx context.Context, since time.Time) (float64, error)
	SumPaidByPaidDateSince(ctx context.Context, since time.Time) (float64, error)
	EnrollmentTrends(ctx context.Context, since time.Time) ([]repository.EnrollmentTrend, error)
	MostOrderedCourse(ctx context.Context) (uint64, int, error)
}

type PaymentStats interface {
	SumCompletedSince(ctx context.Context, since time.Time) (float64, error)
	RevenueByServiceType(ctx context.Context, since time.Time) ([]repository.ServiceRevenue, error)
}

type CourseStats interface {
	GetByID(ctx context.Context, id uint64) (model.Course, error)
	TopByEnrollment(ctx context.Context, limit int) ([]model.Course, error)
	CompletionStats(ctx context.Context, threshold float64) (avg float64, above int, total int, err error)
	CountActive(ctx context.Context) (int, error)
}

type ClassStats interface {
	IDsByCourseName(ctx context.Context, name string) ([]uint64, error)
	CountUpcoming(ctx context.Context, now time.Time) (int, error)
}

type AttendanceStats interface {
	StatsByClass(ctx context.Context, classIDs []uint64) ([]repository.ClassStats, error)
}

// Aggregator wires the per-collection statistics sources together. Now is
// the clock used for every lookback window so tests can pin time, and
// SampleData enables the canned summary on an empty store.
type Aggregator struct {
	Clients    ClientStats
	Orders     OrderStats
	Payments   PaymentStats
	Courses    CourseStats
	Classes    ClassStats
	Attendance AttendanceStats

	Now        func() time.Time
	SampleData bool
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

// Revenue reports completed-payment revenue for the period (week, month or
// quarter; anything else falls back to month), the unwindowed pending
// backlog, and a per-service-type revenue split.
func (a *Aggregator) Revenue(ctx context.Context, period string) (string, error) {
	now := a.now()
	var start time.Time
	switch period {
	case "week":
		start = now.AddDate(0, 0, -7)
	case "quarter":
		start = now.AddDate(0, 0, -90)
	case "month":
		start = now.AddDate(0, 0, -30)
	default:
		period = "month"
		start = now.AddDate(0, 0, -30)
	}

	total, err := a.Payments.SumCompletedSince(ctx, start)
	if err != nil {
		return "", err
	}
	outstanding, err := a.Orders.SumAmountByStatus(ctx, model.OrderPending)
	if err != nil {
		return "", err
	}
	byService, err := a.Payments.RevenueByServiceType(ctx, start)
	if err != nil {
		return "", err
	}
	if byService == nil {
		byService = []repository.ServiceRevenue{}
	}

	type dateRange struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	return jsonText(struct {
		Success          bool                        `json:"success"`
		Period           string                      `json:"period"`
		DateRange        dateRange                   `json:"date_range"`
		TotalRevenue     float64                     `json:"total_revenue"`
		Outstanding      float64                     `json:"outstanding_payments"`
		RevenueByService []repository.ServiceRevenue `json:"revenue_by_service"`
	}{
		Success:          true,
		Period:           period,
		DateRange:        dateRange{From: formatTime(start), To: formatTime(now)},
		TotalRevenue:     total,
		Outstanding:      outstanding,
		RevenueByService: byService,
	}), nil
}

// birthdayReminder is the trimmed client card listed under birthday
// reminders.
type birthdayReminder struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
}

// ClientInsights reports the status breakdown, registrations since the
// first of the current month, and clients with a birthday in the current
// calendar month regardless of year.
func (a *Aggregator) ClientInsights(ctx context.Context) (string, error) {
	total, err := a.Clients.Count(ctx)
	if err != nil {
		return "", err
	}
	breakdown, err := a.Clients.CountByStatus(ctx)
	if err != nil {
		return "", err
	}
	if breakdown == nil {
		breakdown = []repository.StatusCount{}
	}

	now := a.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	newThisMonth, err := a.Clients.CountRegisteredSince(ctx, monthStart)
	if err != nil {
		return "", err
	}

	birthdays, err := a.Clients.BirthdaysInMonth(ctx, now.Month())
	if err != nil {
		return "", err
	}
	reminders := make([]birthdayReminder, 0, len(birthdays))
	for _, c := range birthdays {
		r := birthdayReminder{ID: formatID(c.ID), Name: c.Name, Email: c.Email}
		if c.Birthday != nil {
			r.Birthday = formatTime(*c.Birthday)
		}
		reminders = append(reminders, r)
	}

	return jsonText(struct {
		Success           bool                     `json:"success"`
		TotalClients      int                      `json:"total_clients"`
		StatusBreakdown   []repository.StatusCount `json:"client_status_breakdown"`
		NewThisMonth      int                      `json:"new_clients_this_month"`
		BirthdayReminders struct {
			Count   int                `json:"count"`
			Clients []birthdayReminder `json:"clients"`
		} `json:"birthday_reminders"`
	}{
		Success:         true,
		TotalClients:    total,
		StatusBreakdown: breakdown,
		NewThisMonth:    newThisMonth,
		BirthdayReminders: struct {
			Count   int                `json:"count"`
			Clients []birthdayReminder `json:"clients"`
		}{Count: len(reminders), Clients: reminders},
	}), nil
}

// topCourseView is the course card listed under top courses.
type topCourseView struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name"`
	Instructor      string  `json:"instructor"`
	EnrollmentCount int     `json:"enrollment_count"`
	CompletionRate  float64 `json:"completion_rate"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	CreatedDate     string  `json:"created_date"`
}

// ServiceInsights reports the top ten active courses by enrollment, the
// 30-day enrollment trend grouped by service, and aggregate completion
// statistics.
func (a *Aggregator) ServiceInsights(ctx context.Context) (string, error) {
	top, err := a.Courses.TopByEnrollment(ctx, 10)
	if err != nil {
		return "", err
	}
	topViews := make([]topCourseView, 0, len(top))
	for _, c := range top {
		topViews = append(topViews, topCourseView{
			ID:              formatID(c.ID),
			Name:            c.Name,
			Instructor:      c.Instructor,
			EnrollmentCount: c.EnrollmentCount,
			CompletionRate:  c.CompletionRate,
			Price:           c.Price,
			Category:        c.Category,
			CreatedDate:     formatTime(c.CreatedDate),
		})
	}

	trends, err := a.Orders.EnrollmentTrends(ctx, a.now().AddDate(0, 0, -30))
	if err != nil {
		return "", err
	}
	if trends == nil {
		trends = []repository.EnrollmentTrend{}
	}

	avg, above, totalCourses, err := a.Courses.CompletionStats(ctx, completionThreshold)
	if err != nil {
		return "", err
	}
	var completion any = struct{}{}
	if totalCourses > 0 {
		completion = struct {
			AvgCompletionRate float64 `json:"avg_completion_rate"`
			CoursesAbove80    int     `json:"courses_above_80_percent"`
			TotalCourses      int     `json:"total_courses"`
		}{avg, above, totalCourses}
	}

	return jsonText(struct {
		Success          bool                         `json:"success"`
		TopCourses       []topCourseView              `json:"top_courses"`
		EnrollmentTrends []repository.EnrollmentTrend `json:"enrollment_trends_30_days"`
		CompletionStats  any                          `json:"completion_statistics"`
	}{true, topViews, trends, completion}), nil
}

// classAttendanceView is the per-class row of the attendance report.
type classAttendanceView struct {
	ID                   string  `json:"_id"`
	CourseName           string  `json:"course_name"`
	Instructor           string  `json:"instructor"`
	Schedule             string  `json:"schedule"`
	TotalRegistered      int     `json:"total_registered"`
	PresentCount         int     `json:"present_count"`
	LateCount            int     `json:"late_count"`
	AbsentCount          int     `json:"absent_count"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// AttendanceInsights reports per-class attendance percentages, most recent
// schedule first, plus a studio-wide average. An optional course-name
// filter narrows the report to classes whose course name contains the term;
// a filter that matches no classes short-circuits with a not-found result.
func (a *Aggregator) AttendanceInsights(ctx context.Context, courseName string) (string, error) {
	var classIDs []uint64
	if courseName != "" {
		ids, err := a.Classes.IDsByCourseName(ctx, courseName)
		if err != nil {
			return "", err
		}
		if len(ids) == 0 {
			return failure("No classes found for course: " + courseName), nil
		}
		classIDs = ids
	}

	stats, err := a.Attendance.StatsByClass(ctx, classIDs)
	if err != nil {
		return "", err
	}

	details := make([]classAttendanceView, 0, len(stats))
	var sum float64
	var high int
	for _, s := range stats {
		pct := 0.0
		if s.TotalRegistered > 0 {
			pct = float64(s.PresentCount+s.LateCount) / float64(s.TotalRegistered) * 100
		}
		if pct >= completionThreshold {
			high++
		}
		sum += pct
		details = append(details, classAttendanceView{
			ID:                   formatID(s.ClassID),
			CourseName:           s.CourseName,
			Instructor:           s.Instructor,
			Schedule:             formatTime(s.Schedule),
			TotalRegistered:      s.TotalRegistered,
			PresentCount:         s.PresentCount,
			LateCount:            s.LateCount,
			AbsentCount:          s.AbsentCount,
			AttendancePercentage: pct,
		})
	}
	avg := 0.0
	if len(details) > 0 {
		avg = sum / float64(len(details))
	}

	type summary struct {
		TotalAnalyzed  int     `json:"total_classes_analyzed"`
		AvgPercentage  float64 `json:"average_attendance_percentage"`
		HighAttendance int     `json:"classes_with_80_plus_attendance"`
	}
	return jsonText(struct {
		Success     bool                  `json:"success"`
		QueryCourse string                `json:"query_course"`
		Summary     summary               `json:"summary"`
		Details     []classAttendanceView `json:"class_details"`
	}{
		Success:     true,
		QueryCourse: courseName,
		Summary:     summary{len(details), round2(avg), high},
		Details:     details,
	}), nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func jsonText(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "Database operation failed: " + err.Error()
	}
	return string(b)
}

func failure(msg string) string {
	b, _ := json.Marshal(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{false, msg})
	return string(b)
}
