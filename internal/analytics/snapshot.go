package analytics

import (
	"context"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
)

// Snapshots are the compact structured variants of the reports served on
// the dashboard REST endpoints. Unlike the agent-facing reports they are
// returned as values, not JSON text, and the handler encodes them.

// RevenueSnapshot summarizes order revenue for the current calendar month.
type RevenueSnapshot struct {
	TotalRevenue        float64 `json:"total_revenue"`
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	OutstandingPayments float64 `json:"outstanding_payments"`
	Period              string  `json:"period"`
}

// RevenueMetrics computes the revenue snapshot. Monthly revenue is
// attributed by paid date, not order creation.
func (a *Aggregator) RevenueMetrics(ctx context.Context) (RevenueSnapshot, error) {
	var s RevenueSnapshot
	now := a.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	total, err := a.Orders.SumAmountByStatus(ctx, model.OrderPaid)
	if err != nil {
		return s, err
	}
	monthly, err := a.Orders.SumPaidByPaidDateSince(ctx, monthStart)
	if err != nil {
		return s, err
	}
	outstanding, err := a.Orders.SumAmountByStatus(ctx, model.OrderPending)
	if err != nil {
		return s, err
	}

	s.TotalRevenue = total
	s.MonthlyRevenue = monthly
	s.OutstandingPayments = outstanding
	s.Period = monthStart.Format("2006-01")
	return s, nil
}

// ClientSnapshot summarizes the client base by status.
type ClientSnapshot struct {
	ActiveClients    int `json:"active_clients"`
	InactiveClients  int `json:"inactive_clients"`
	SuspendedClients int `json:"suspended_clients"`
	NewThisMonth     int `json:"new_clients_this_month"`
	TotalClients     int `json:"total_clients"`
}

// ClientMetrics computes the client snapshot.
func (a *Aggregator) ClientMetrics(ctx context.Context) (ClientSnapshot, error) {
	var s ClientSnapshot
	breakdown, err := a.Clients.CountByStatus(ctx)
	if err != nil {
		return s, err
	}
	for _, b := range breakdown {
		switch b.Status {
		case model.ClientActive:
			s.ActiveClients = b.Count
		case model.ClientInactive:
			s.InactiveClients = b.Count
		case model.ClientSuspended:
			s.SuspendedClients = b.Count
		}
		s.TotalClients += b.Count
	}

	now := a.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	s.NewThisMonth, err = a.Clients.CountRegisteredSince(ctx, monthStart)
	return s, err
}
