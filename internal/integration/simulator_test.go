package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrishKoria/Qest/internal/queue"
)

func fixedSimulator(succeed bool) *Simulator {
	return &Simulator{
		Outcomes:    FixedOutcomes(succeed),
		GatewayRate: 0.95,
		NotifyRate:  0.95,
		Now:         func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestCRMSyncAlwaysSucceeds(t *testing.T) {
	s := fixedSimulator(false) // outcome provider is irrelevant for syncs

	res := s.CRMSync("new_client", map[string]any{"client_id": 1})
	assert.True(t, res.Success)
	assert.Equal(t, "Successfully synced new_client with CRM", res.Message)
	assert.Contains(t, res.CorrelationID, "CRM_20250615120000-")

	res = s.BookingSync("new_order", nil)
	assert.True(t, res.Success)
	assert.Equal(t, "Successfully synced new_order with booking system", res.Message)
	assert.Contains(t, res.CorrelationID, "BOOK_20250615120000-")
}

func TestGatewayCaptureSuccess(t *testing.T) {
	s := fixedSimulator(true)

	res := s.GatewayCapture("42", 120, "card")
	assert.True(t, res.Success)
	assert.Equal(t, "00", res.ResponseCode)
	assert.Equal(t, "Payment processed successfully", res.Message)
	assert.Contains(t, res.TransactionID, "TXN_")
	assert.Empty(t, res.Error)
}

func TestGatewayCaptureDecline(t *testing.T) {
	s := fixedSimulator(false)

	res := s.GatewayCapture("42", 120, "card")
	assert.False(t, res.Success)
	assert.Equal(t, "05", res.ResponseCode)
	assert.Equal(t, "Payment declined by bank", res.Error)
	assert.Empty(t, res.TransactionID)
}

func TestSendNotificationEmailKinds(t *testing.T) {
	var published []queue.NotificationEvent
	s := fixedSimulator(true)
	s.Publish = func(_ context.Context, ev queue.NotificationEvent) error {
		published = append(published, ev)
		return nil
	}

	res := s.SendNotification(context.Background(), NotifyWelcome, "a@x.com", "Alice", "come on in")
	assert.True(t, res.Success)
	assert.Equal(t, "Notification sent successfully to a@x.com", res.Message)
	assert.Equal(t, NotifyWelcome, res.Type)

	require.Len(t, published, 1)
	assert.Equal(t, "Welcome Alice! come on in", published[0].Message)
	assert.Equal(t, "a@x.com", published[0].RecipientEmail)
	assert.NotEmpty(t, published[0].EventID)
}

func TestSendNotificationEmailFailure(t *testing.T) {
	var published int
	s := fixedSimulator(false)
	s.Publish = func(context.Context, queue.NotificationEvent) error {
		published++
		return nil
	}

	res := s.SendNotification(context.Background(), NotifyOrderConfirmed, "a@x.com", "Alice", "order confirmed")
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to send notification", res.Message)
	assert.Zero(t, published, "failed dispatches must not fan out")
}

func TestSendNotificationStaffAlwaysSucceeds(t *testing.T) {
	s := fixedSimulator(false) // staff channel ignores the outcome draw

	res := s.SendNotification(context.Background(), NotifyStaff, "team@studio.com", "Team", "new enquiry assigned")
	assert.True(t, res.Success)
	assert.Equal(t, "Staff notification sent: new enquiry assigned", res.Message)
}

func TestSendNotificationUnknownKind(t *testing.T) {
	s := fixedSimulator(false)

	res := s.SendNotification(context.Background(), "postcard", "a@x.com", "Alice", "hi")
	assert.True(t, res.Success)
	assert.Equal(t, "Notification processed", res.Message)
}

func TestSendNotificationPublishFailureIgnored(t *testing.T) {
	s := fixedSimulator(true)
	s.Publish = func(context.Context, queue.NotificationEvent) error {
		return errors.New("broker down")
	}

	res := s.SendNotification(context.Background(), NotifyEnquiryAck, "a@x.com", "Alice", "thanks")
	assert.True(t, res.Success)
}
