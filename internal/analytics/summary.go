package analytics

import (
	"context"

	"github.com/KrishKoria/Qest/internal/model"
)

type studioOverview struct {
	TotalClients  int     `json:"total_clients"`
	ActiveClients int     `json:"active_clients"`
	NewThisMonth  int     `json:"new_clients_this_month"`
	RetentionRate float64 `json:"client_retention_rate"`
}

type ordersAndRevenue struct {
	TotalOrders     int     `json:"total_orders"`
	ActiveOrders    int     `json:"active_orders"`
	OrdersThisMonth int     `json:"orders_this_month"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
	AvgOrderValue   float64 `json:"average_order_value"`
}

type coursesAndClasses struct {
	AvailableCourses  int    `json:"available_courses"`
	UpcomingClasses   int    `json:"upcoming_classes"`
	MostPopularCourse string `json:"most_popular_course"`
}

type businessMetrics struct {
	MonthlyGrowthRate    string `json:"monthly_growth_rate"`
	CapacityUtilization  string `json:"capacity_utilization"`
	CustomerSatisfaction string `json:"customer_satisfaction"`
}

type summaryReport struct {
	Success           bool              `json:"success"`
	GeneratedAt       string            `json:"generated_at"`
	StudioOverview    studioOverview    `json:"studio_overview"`
	OrdersAndRevenue  ordersAndRevenue  `json:"orders_and_revenue"`
	CoursesAndClasses coursesAndClasses `json:"courses_and_classes"`
	BusinessMetrics   businessMetrics   `json:"business_metrics"`
	Note              string            `json:"note,omitempty"`
}

// Summary produces the studio-wide dashboard report. When both the client
// and order collections are empty and sample data is enabled, a fixed
// demonstration report is returned instead of an all-zero one.
func (a *Aggregator) Summary(ctx context.Context) (string, error) {
	totalClients, err := a.Clients.Count(ctx)
	if err != nil {
		return "", err
	}
	totalOrders, err := a.Orders.Count(ctx)
	if err != nil {
		return "", err
	}

	now := a.now()
	if totalClients == 0 && totalOrders == 0 && a.SampleData {
		demo := sampleSummary
		demo.GeneratedAt = formatTime(now)
		return jsonText(demo), nil
	}

	activeClients, err := a.Clients.CountByStatusValue(ctx, model.ClientActive)
	if err != nil {
		return "", err
	}
	activeOrders, err := a.Orders.CountByStatus(ctx, model.OrderPending)
	if err != nil {
		return "", err
	}
	availableCourses, err := a.Courses.CountActive(ctx)
	if err != nil {
		return "", err
	}

	since := now.AddDate(0, 0, -30)
	newClients, err := a.Clients.CountRegisteredSince(ctx, since)
	if err != nil {
		return "", err
	}
	ordersThisMonth, err := a.Orders.CountCreatedSince(ctx, since)
	if err != nil {
		return "", err
	}
	monthlyRevenue, err := a.Orders.SumPaidCreatedSince(ctx, since)
	if err != nil {
		return "", err
	}
	upcoming, err := a.Classes.CountUpcoming(ctx, now)
	if err != nil {
		return "", err
	}

	popular := "No data available"
	if courseID, _, err := a.Orders.MostOrderedCourse(ctx); err != nil {
		return "", err
	} else if courseID != 0 {
		if course, err := a.Courses.GetByID(ctx, courseID); err == nil {
			popular = course.Name
		} else {
			popular = "Unknown"
		}
	}

	retention := 0.0
	if totalClients > 0 {
		retention = round2(float64(activeClients) / float64(totalClients) * 100)
	}
	avgOrder := 0.0
	if ordersThisMonth > 0 {
		avgOrder = round2(monthlyRevenue / float64(ordersThisMonth))
	}

	return jsonText(summaryReport{
		Success:     true,
		GeneratedAt: formatTime(now),
		StudioOverview: studioOverview{
			TotalClients:  totalClients,
			ActiveClients: activeClients,
			NewThisMonth:  newClients,
			RetentionRate: retention,
		},
		OrdersAndRevenue: ordersAndRevenue{
			TotalOrders:     totalOrders,
			ActiveOrders:    activeOrders,
			OrdersThisMonth: ordersThisMonth,
			MonthlyRevenue:  monthlyRevenue,
			AvgOrderValue:   avgOrder,
		},
		CoursesAndClasses: coursesAndClasses{
			AvailableCourses:  availableCourses,
			UpcomingClasses:   upcoming,
			MostPopularCourse: popular,
		},
		BusinessMetrics: businessMetrics{
			MonthlyGrowthRate:    "Calculation requires historical data",
			CapacityUtilization:  "Calculation requires class capacity data",
			CustomerSatisfaction: "Survey data not available",
		},
	}), nil
}

// sampleSummary is the canned dashboard report served on an empty store.
var sampleSummary = summaryReport{
	Success: true,
	StudioOverview: studioOverview{
		TotalClients:  25,
		ActiveClients: 23,
		NewThisMonth:  5,
		RetentionRate: 92.0,
	},
	OrdersAndRevenue: ordersAndRevenue{
		TotalOrders:     48,
		ActiveOrders:    12,
		OrdersThisMonth: 18,
		MonthlyRevenue:  3450.0,
		AvgOrderValue:   191.67,
	},
	CoursesAndClasses: coursesAndClasses{
		AvailableCourses:  8,
		UpcomingClasses:   15,
		MostPopularCourse: "HIIT Training",
	},
	BusinessMetrics: businessMetrics{
		MonthlyGrowthRate:    "+12% compared to last month",
		CapacityUtilization:  "78% average class capacity",
		CustomerSatisfaction: "4.8/5.0 average rating",
	},
	Note: "Sample data - database appears to be empty",
}
