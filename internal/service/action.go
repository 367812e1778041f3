package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/KrishKoria/Qest/internal/integration"
)

// Action codes the text boundary dispatches on.
const (
	ActionCreateClient     = "create_client"
	ActionCreateOrder      = "create_order"
	ActionCreateEnquiry    = "create_enquiry"
	ActionProcessPayment   = "process_payment"
	ActionSendNotification = "send_notification"
)

// ActionArgs carries the union of parameters the actions accept. Unused
// fields are ignored by each action.
type ActionArgs struct {
	Name                   string
	Email                  string
	Phone                  string
	Birthday               *time.Time
	Address                string
	EmergencyContact       map[string]string
	Notes                  string
	ClientEmail            string
	ServiceType            string
	ServiceName            string
	Amount                 float64
	OrderID                string
	PaymentMethod          string
	EnquiryType            string
	Message                string
	PreferredContactMethod string
	NotificationType       string
	RecipientEmail         string
	RecipientName          string
}

// RunAction is the text boundary over the domain operations: it dispatches
// an action code and renders the outcome as JSON text, recovering storage
// faults into a failure message rather than propagating them. The agent
// runtimes relay the returned text verbatim.
func (s *Service) RunAction(ctx context.Context, action string, args ActionArgs) string {
	switch action {
	case ActionCreateClient:
		return s.runCreateClient(ctx, args)
	case ActionCreateOrder:
		return s.runCreateOrder(ctx, args)
	case ActionCreateEnquiry:
		return s.runCreateEnquiry(ctx, args)
	case ActionProcessPayment:
		return s.runProcessPayment(ctx, args)
	case ActionSendNotification:
		res := s.Sim.SendNotification(ctx, args.NotificationType, args.RecipientEmail, args.RecipientName, args.Message)
		return compact(res)
	}
	return "Unknown action: " + action
}

func (s *Service) runCreateClient(ctx context.Context, args ActionArgs) string {
	res, err := s.CreateClient(ctx, CreateClientInput{
		Name:             args.Name,
		Email:            args.Email,
		Phone:            args.Phone,
		Birthday:         args.Birthday,
		Address:          args.Address,
		EmergencyContact: args.EmergencyContact,
		Notes:            args.Notes,
	})
	if err != nil {
		return "External API operation failed: " + err.Error()
	}
	if !res.Success {
		return compact(struct {
			Success          bool   `json:"success"`
			Message          string `json:"message"`
			ExistingClientID string `json:"existing_client_id"`
		}{false, res.Message, formatID(res.ExistingClientID)})
	}
	return indented(struct {
		Success       bool   `json:"success"`
		Message       string `json:"message"`
		ClientID      string `json:"client_id"`
		ClientDetails struct {
			Name   string `json:"name"`
			Email  string `json:"email"`
			Phone  string `json:"phone"`
			Status string `json:"status"`
		} `json:"client_details"`
	}{
		Success:  true,
		Message:  res.Message,
		ClientID: formatID(res.ClientID),
		ClientDetails: struct {
			Name   string `json:"name"`
			Email  string `json:"email"`
			Phone  string `json:"phone"`
			Status string `json:"status"`
		}{res.Client.Name, res.Client.Email, res.Client.Phone, res.Client.Status},
	})
}

func (s *Service) runCreateOrder(ctx context.Context, args ActionArgs) string {
	res, err := s.CreateOrder(ctx, CreateOrderInput{
		ClientEmail: args.ClientEmail,
		ServiceType: args.ServiceType,
		ServiceName: args.ServiceName,
		Amount:      args.Amount,
		Notes:       args.Notes,
	})
	if err != nil {
		return "External API operation failed: " + err.Error()
	}
	if !res.Success {
		return compact(struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{false, res.Message})
	}
	type orderDetails struct {
		ClientName  string  `json:"client_name"`
		ClientEmail string  `json:"client_email"`
		ServiceType string  `json:"service_type"`
		ServiceName string  `json:"service_name"`
		Amount      float64 `json:"amount"`
		Status      string  `json:"status"`
		CreatedDate string  `json:"created_date"`
	}
	return indented(struct {
		Success      bool         `json:"success"`
		Message      string       `json:"message"`
		OrderID      string       `json:"order_id"`
		OrderDetails orderDetails `json:"order_details"`
	}{
		Success: true,
		Message: res.Message,
		OrderID: formatID(res.OrderID),
		OrderDetails: orderDetails{
			ClientName:  res.Client.Name,
			ClientEmail: args.ClientEmail,
			ServiceType: res.Order.ServiceType,
			ServiceName: res.Order.ServiceName,
			Amount:      res.Order.Amount,
			Status:      res.Order.Status,
			CreatedDate: res.Order.CreatedDate.UTC().Format(time.RFC3339),
		},
	})
}

func (s *Service) runProcessPayment(ctx context.Context, args ActionArgs) string {
	orderID, err := strconv.ParseUint(args.OrderID, 10, 64)
	if err != nil {
		return compact(struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{false, "Order not found"})
	}
	res, err := s.ProcessPayment(ctx, orderID, args.Amount, args.PaymentMethod)
	if err != nil {
		return "Payment processing failed: " + err.Error()
	}
	if !res.Success {
		return compact(struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Error   string `json:"error"`
		}{false, res.Message, res.Error})
	}
	return indented(struct {
		Success       bool    `json:"success"`
		Message       string  `json:"message"`
		PaymentID     string  `json:"payment_id"`
		TransactionID string  `json:"transaction_id"`
		Amount        float64 `json:"amount"`
	}{true, res.Message, formatID(res.PaymentID), res.TransactionID, res.Amount})
}

func (s *Service) runCreateEnquiry(ctx context.Context, args ActionArgs) string {
	res, err := s.CreateEnquiry(ctx, CreateEnquiryInput{
		Name:                   args.Name,
		Email:                  args.Email,
		Phone:                  args.Phone,
		EnquiryType:            args.EnquiryType,
		Message:                args.Message,
		PreferredContactMethod: args.PreferredContactMethod,
	})
	if err != nil {
		return "External API operation failed: " + err.Error()
	}
	type enquiryDetails struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		EnquiryType string `json:"enquiry_type"`
		Status      string `json:"status"`
		AssignedTo  string `json:"assigned_to"`
		CreatedDate string `json:"created_date"`
	}
	return indented(struct {
		Success        bool                   `json:"success"`
		Message        string                 `json:"message"`
		EnquiryDetails enquiryDetails         `json:"enquiry_details"`
		CRMIntegration integration.SyncResult `json:"crm_integration"`
	}{
		Success: true,
		Message: res.Message,
		EnquiryDetails: enquiryDetails{
			Name:        res.Enquiry.Name,
			Email:       res.Enquiry.Email,
			EnquiryType: res.Enquiry.EnquiryType,
			Status:      res.Enquiry.Status,
			AssignedTo:  res.Enquiry.AssignedTo,
			CreatedDate: res.Enquiry.CreatedDate.UTC().Format(time.RFC3339),
		},
		CRMIntegration: res.CRMIntegration,
	})
}

func formatID(id uint64) string { return strconv.FormatUint(id, 10) }

func compact(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func indented(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "External API operation failed: " + err.Error()
	}
	return string(b)
}
