// Package model defines the persistent entities stored in the six record
// collections. Identifiers are native uint64 values internally and are
// rendered as opaque strings at every API boundary; timestamps are stored
// as UTC DATETIME values and rendered as RFC 3339 text.
package model

import "time"

// Client lifecycle statuses. A client is never deleted; suspensions and
// deactivations are expressed through this field.
const (
	ClientActive    = "active"
	ClientInactive  = "inactive"
	ClientSuspended = "suspended"
)

// Client is the root of the enrollment relationship. Email must be unique
// across the collection; the storage layer enforces this with a unique key.
type Client struct {
	ID               uint64            // primary key
	Name             string            // full name
	Email            string            // unique contact address
	Phone            string            // E.164-ish phone number
	Status           string            // active | inactive | suspended
	EnrolledServices []string          // ordered service names, appended on order creation
	RegistrationDate time.Time         // when the client joined
	Birthday         *time.Time        // optional, used for birthday reminders
	LastActivity     *time.Time        // bumped on writes touching the client
	Address          string            // optional
	EmergencyContact map[string]string // optional name/phone pairs
	Notes            string            // optional free text
}
