// Package service orchestrates the studio's domain writes: client and
// order creation, payment processing and enquiry intake. Each operation is
// a short sequence of independent store calls followed by simulated
// external side effects; there is no wrapping transaction, and post-insert
// side effects can never fail the write that triggered them.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KrishKoria/Qest/internal/integration"
	"github.com/KrishKoria/Qest/internal/model"
)

type ClientStore interface {
	Create(ctx context.Context, c *model.Client) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Client, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (model.Client, error)
	SetEnrolledServices(ctx context.Context, id uint64, services []string, at time.Time) error
}

type OrderStore interface {
	Create(ctx context.Context, o *model.Order) (uint64, error)
	MarkPaid(ctx context.Context, id uint64, paidAt time.Time) error
}

type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) (uint64, error)
}

type CourseStore interface {
	FindByName(ctx context.Context, name string) (model.Course, error)
	IncrementEnrollment(ctx context.Context, id uint64) error
}

type ClassStore interface {
	FindByName(ctx context.Context, name string) (model.Class, error)
	IncrementEnrollment(ctx context.Context, id uint64) error
}

// Service bundles the stores and the external-integration simulator behind
// the four domain operations. TaxRate is the fraction of the order amount
// charged as tax.
type Service struct {
	Clients  ClientStore
	Orders   OrderStore
	Payments PaymentStore
	Courses  CourseStore
	Classes  ClassStore
	Sim      *integration.Simulator

	TaxRate float64
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) taxRate() float64 {
	if s.TaxRate > 0 {
		return s.TaxRate
	}
	return 0.10
}

// endOfDay clamps t to 23:59:59 of the same calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// marshalGateway stores the raw gateway response alongside the payment.
func marshalGateway(r integration.GatewayResult) string {
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}
