// Package integration simulates the studio's external collaborators: CRM
// and booking-system syncs, the payment gateway and the notification
// dispatcher. Every call is modeled as an independent succeed/fail draw
// with no retries, so the orchestrator above can treat these exactly like
// real adapters.
package integration

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/KrishKoria/Qest/internal/queue"
)

// OutcomeProvider decides whether a simulated external call succeeds.
// Production uses the random provider; tests inject a fixed one.
type OutcomeProvider interface {
	Succeed(rate float64) bool
}

// RandomOutcomes draws outcomes from math/rand at the configured rate.
type RandomOutcomes struct{}

func (RandomOutcomes) Succeed(rate float64) bool { return rand.Float64() < rate }

// FixedOutcomes always reports the same outcome. Intended for tests.
type FixedOutcomes bool

func (f FixedOutcomes) Succeed(float64) bool { return bool(f) }

// EventPublisher fans out notification events after dispatch. Failures are
// ignored by the simulator.
type EventPublisher func(ctx context.Context, event queue.NotificationEvent) error

// Simulator holds the simulated collaborator endpoints.
type Simulator struct {
	Outcomes    OutcomeProvider
	GatewayRate float64
	NotifyRate  float64
	Publish     EventPublisher
	Now         func() time.Time
}

// NewSimulator returns a simulator with the default 0.95 success rates and
// random outcomes.
func NewSimulator() *Simulator {
	return &Simulator{
		Outcomes:    RandomOutcomes{},
		GatewayRate: 0.95,
		NotifyRate:  0.95,
	}
}

func (s *Simulator) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// correlationID builds a synthetic id in the legacy prefix-plus-timestamp
// shape, with a short random suffix so ids stay unique within a second.
func (s *Simulator) correlationID(prefix string) string {
	return prefix + s.now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// SyncResult reports a CRM or booking-system sync.
type SyncResult struct {
	Success       bool   `json:"success"`
	CorrelationID string `json:"correlation_id"`
	Message       string `json:"message"`
}

// CRMSync simulates pushing an event to the external CRM. It always
// succeeds and returns a synthetic correlation id.
func (s *Simulator) CRMSync(eventType string, data map[string]any) SyncResult {
	log.Printf("[integration] CRM sync: event=%s data=%v", eventType, data)
	return SyncResult{
		Success:       true,
		CorrelationID: s.correlationID("CRM_"),
		Message:       "Successfully synced " + eventType + " with CRM",
	}
}

// BookingSync simulates pushing an event to the external booking system.
// It always succeeds and returns a synthetic correlation id.
func (s *Simulator) BookingSync(eventType string, data map[string]any) SyncResult {
	log.Printf("[integration] booking sync: event=%s data=%v", eventType, data)
	return SyncResult{
		Success:       true,
		CorrelationID: s.correlationID("BOOK_"),
		Message:       "Successfully synced " + eventType + " with booking system",
	}
}

// GatewayResult reports a payment-gateway capture attempt.
type GatewayResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	ResponseCode  string `json:"gateway_response_code"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// GatewayCapture simulates a payment capture. This is the only
// failure-bearing external call: success yields a transaction id and code
// "00", failure yields code "05" and a decline error. The caller decides
// whether any records are written.
func (s *Simulator) GatewayCapture(orderID string, amount float64, method string) GatewayResult {
	log.Printf("[integration] gateway capture: order=%s amount=%.2f method=%s", orderID, amount, method)
	if !s.Outcomes.Succeed(s.GatewayRate) {
		return GatewayResult{
			Success:      false,
			ResponseCode: "05",
			Error:        "Payment declined by bank",
		}
	}
	return GatewayResult{
		Success:       true,
		TransactionID: s.correlationID("TXN_"),
		ResponseCode:  "00",
		Message:       "Payment processed successfully",
	}
}
