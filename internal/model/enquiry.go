package model

import "time"

// Enquiry is a prospective-client request. Enquiries are not persisted in
// the record store; they are synced to the simulated CRM and routed to a
// staff member by keyword match on the enquiry type.
type Enquiry struct {
	Name                   string    // requester name
	Email                  string    // requester email
	Phone                  string    // requester phone
	EnquiryType            string    // free text, e.g. "yoga classes"
	Message                string    // free text
	PreferredContactMethod string    // defaults to "email"
	Status                 string    // always "new" at creation
	AssignedTo             string    // staff member resolved from the enquiry type
	CreatedDate            time.Time // creation time
}
