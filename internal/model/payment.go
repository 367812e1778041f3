package model

import "time"

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment methods accepted by the studio.
const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodOnline       = "online"
	MethodBankTransfer = "bank_transfer"
)

// Payment is owned by exactly one Order and is only created after the
// simulated gateway reports a successful capture.
type Payment struct {
	ID              uint64    // primary key
	OrderID         uint64    // ref Order
	Amount          float64   // captured amount, > 0
	PaymentDate     time.Time // capture time
	Method          string    // cash | card | online | bank_transfer
	Status          string    // pending | completed | failed | refunded
	TransactionID   string    // gateway transaction reference
	GatewayResponse string    // raw gateway response, JSON text
	Notes           string    // optional free text
}
