package integration

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/KrishKoria/Qest/internal/queue"
)

// Notification kinds recognized by the dispatcher.
const (
	NotifyWelcome        = "welcome_email"
	NotifyOrderConfirmed = "order_confirmation"
	NotifyEnquiryAck     = "enquiry_acknowledgment"
	NotifyStaff          = "staff_notification"
)

// NotificationResult reports a dispatch attempt.
type NotificationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Type    string `json:"notification_type"`
}

// emailTemplates wraps the message in the per-kind salutation used for the
// simulated outbound email.
func emailTemplate(kind, name, message string) string {
	switch kind {
	case NotifyWelcome:
		return "Welcome " + name + "! " + message
	case NotifyOrderConfirmed:
		return "Hi " + name + ", " + message
	case NotifyEnquiryAck:
		return "Dear " + name + ", " + message
	}
	return message
}

// SendNotification simulates dispatching a notification. Email kinds
// succeed at the configured rate; staff notifications go through the
// internal channel and always succeed. On success the event is fanned out
// to the notification queue, but publish failures never affect the result:
// dispatch is fire-and-forget, at most once, no retry.
func (s *Simulator) SendNotification(ctx context.Context, kind, recipientEmail, recipientName, message string) NotificationResult {
	switch kind {
	case NotifyWelcome, NotifyOrderConfirmed, NotifyEnquiryAck:
		body := emailTemplate(kind, recipientName, message)
		log.Printf("[integration] sending email to %s template=%s", recipientEmail, kind)
		if !s.Outcomes.Succeed(s.NotifyRate) {
			return NotificationResult{Success: false, Message: "Failed to send notification", Type: kind}
		}
		s.fanOut(ctx, kind, recipientEmail, recipientName, body)
		return NotificationResult{
			Success: true,
			Message: "Notification sent successfully to " + recipientEmail,
			Type:    kind,
		}
	case NotifyStaff:
		log.Printf("[integration] staff notification to %s", recipientEmail)
		s.fanOut(ctx, kind, recipientEmail, recipientName, message)
		return NotificationResult{
			Success: true,
			Message: "Staff notification sent: " + message,
			Type:    kind,
		}
	}
	return NotificationResult{Success: true, Message: "Notification processed", Type: kind}
}

func (s *Simulator) fanOut(ctx context.Context, kind, email, name, message string) {
	if s.Publish == nil {
		return
	}
	ev := queue.NotificationEvent{
		EventID:        uuid.NewString(),
		Type:           kind,
		RecipientEmail: email,
		RecipientName:  name,
		Message:        message,
		SentAt:         s.now(),
	}
	// Best effort: a broker outage must not fail the triggering write.
	_ = s.Publish(ctx, ev)
}
