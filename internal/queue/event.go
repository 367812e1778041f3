// Package queue carries notification events over RabbitMQ. Delivery is
// best effort: publish failures are logged and dropped, matching the
// fire-and-forget contract of the notification simulator.
package queue

import "time"

// NotificationQueue is the queue notification events are published to and
// consumed from.
const NotificationQueue = "studio.notifications"

// NotificationEvent is the message emitted after a notification is
// dispatched. The consumer appends these to the audit log.
type NotificationEvent struct {
	EventID        string    `json:"event_id"`
	Type           string    `json:"type"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`
	Message        string    `json:"message"`
	SentAt         time.Time `json:"sent_at"`
}
