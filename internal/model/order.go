package model

import "time"

// Order lifecycle statuses. pending -> paid is driven by the payment flow;
// cancelled and refunded are terminal.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
)

// Service types an order can reference.
const (
	ServiceCourse = "course"
	ServiceClass  = "class"
)

// Order references a Client and a Course or Class. Amount falls back to the
// service price when the caller does not supply one; tax is computed at
// creation time as a fixed fraction of the amount.
type Order struct {
	ID              uint64     // primary key
	ClientID        uint64     // ref Client
	ServiceType     string     // "course" or "class"
	ServiceID       uint64     // ref Course or Class depending on ServiceType
	ServiceName     string     // denormalized service name
	Amount          float64    // gross amount, > 0
	Status          string     // pending | paid | cancelled | refunded
	CreatedDate     time.Time  // insertion time
	DueDate         *time.Time // end of creation day
	PaidDate        *time.Time // set when the order flips to paid
	DiscountApplied float64    // >= 0
	TaxAmount       float64    // >= 0, derived from Amount
	Notes           string     // optional free text
}
