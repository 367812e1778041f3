package service

import (
	"context"
	"strings"

	"github.com/KrishKoria/Qest/internal/integration"
	"github.com/KrishKoria/Qest/internal/model"
)

// staffAssignment routes an enquiry keyword to a staff member. The table is
// ordered; the first keyword contained in the enquiry type wins.
type staffAssignment struct {
	keyword string
	staff   string
}

var staffAssignments = []staffAssignment{
	{"yoga", "Sarah Johnson"},
	{"pilates", "Mike Chen"},
	{"fitness", "Jessica Williams"},
	{"membership", "Alex Rodriguez"},
}

// defaultAssignee handles anything no keyword matches.
const defaultAssignee = "Customer Service Team"

// assignStaff resolves the staff member for an enquiry type by
// case-insensitive keyword containment.
func assignStaff(enquiryType string) string {
	lower := strings.ToLower(enquiryType)
	for _, a := range staffAssignments {
		if strings.Contains(lower, a.keyword) {
			return a.staff
		}
	}
	return defaultAssignee
}

// CreateEnquiryInput is the orchestrator-level enquiry intake request.
type CreateEnquiryInput struct {
	Name                   string
	Email                  string
	Phone                  string
	EnquiryType            string
	Message                string
	PreferredContactMethod string
}

// CreateEnquiryResult reports enquiry intake. Enquiries always succeed
// locally; there is no duplicate or existence check.
type CreateEnquiryResult struct {
	Success        bool
	Message        string
	Enquiry        model.Enquiry
	CRMIntegration integration.SyncResult
}

// CreateEnquiry records an enquiry, auto-assigns it to staff by keyword
// match on the enquiry type, syncs it to the CRM and dispatches the
// acknowledgment and staff notifications. Enquiries live in the CRM, not
// the record store.
func (s *Service) CreateEnquiry(ctx context.Context, in CreateEnquiryInput) (CreateEnquiryResult, error) {
	contactMethod := in.PreferredContactMethod
	if contactMethod == "" {
		contactMethod = "email"
	}
	enq := model.Enquiry{
		Name:                   in.Name,
		Email:                  in.Email,
		Phone:                  in.Phone,
		EnquiryType:            in.EnquiryType,
		Message:                in.Message,
		PreferredContactMethod: contactMethod,
		Status:                 "new",
		CreatedDate:            s.now(),
	}

	crm := s.Sim.CRMSync("new_enquiry", map[string]any{
		"name":         enq.Name,
		"email":        enq.Email,
		"phone":        enq.Phone,
		"enquiry_type": enq.EnquiryType,
		"message":      enq.Message,
	})
	enq.AssignedTo = assignStaff(in.EnquiryType)

	s.Sim.SendNotification(ctx, integration.NotifyEnquiryAck, in.Email, in.Name,
		"Thank you for your enquiry about "+in.EnquiryType+". We'll get back to you within 24 hours.")
	if enq.AssignedTo != "" {
		s.Sim.SendNotification(ctx, integration.NotifyStaff,
			enq.AssignedTo+"@studio.com", enq.AssignedTo,
			"New enquiry assigned: "+in.EnquiryType+" from "+in.Name+" ("+in.Email+")")
	}

	return CreateEnquiryResult{
		Success:        true,
		Message:        "Enquiry created successfully",
		Enquiry:        enq,
		CRMIntegration: crm,
	}, nil
}
