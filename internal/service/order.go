package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/KrishKoria/Qest/internal/integration"
	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
)

// CreateOrderInput is the orchestrator-level order creation request. A zero
// Amount means "use the service's catalog price".
type CreateOrderInput struct {
	ClientEmail string
	ServiceType string
	ServiceName string
	Amount      float64
	Notes       string
}

// CreateOrderResult reports order creation.
type CreateOrderResult struct {
	Success bool
	Message string
	OrderID uint64
	Order   model.Order
	Client  model.Client
}

// CreateOrder resolves the client by email and the service by name, prices
// the order, inserts it and updates the enrollment bookkeeping on both the
// client and the service. Booking sync and the confirmation notification
// fire afterwards and cannot fail the order.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error) {
	client, err := s.Clients.GetByEmail(ctx, in.ClientEmail)
	if errors.Is(err, repository.ErrClientNotFound) {
		return CreateOrderResult{Message: "Client not found with email: " + in.ClientEmail}, nil
	}
	if err != nil {
		return CreateOrderResult{}, err
	}

	var (
		serviceID   uint64
		serviceName string
		price       float64
	)
	switch in.ServiceType {
	case model.ServiceCourse:
		course, err := s.Courses.FindByName(ctx, in.ServiceName)
		if errors.Is(err, repository.ErrServiceNotFound) {
			return CreateOrderResult{Message: "Service not found: " + in.ServiceName}, nil
		}
		if err != nil {
			return CreateOrderResult{}, err
		}
		serviceID, serviceName, price = course.ID, course.Name, course.Price
	default:
		class, err := s.Classes.FindByName(ctx, in.ServiceName)
		if errors.Is(err, repository.ErrServiceNotFound) {
			return CreateOrderResult{Message: "Service not found: " + in.ServiceName}, nil
		}
		if err != nil {
			return CreateOrderResult{}, err
		}
		// Classes carry no own price; orders against them need an explicit
		// amount unless the caller relies on the course price of zero.
		serviceID, serviceName = class.ID, class.CourseName
	}

	amount := in.Amount
	if amount == 0 {
		amount = price
		if amount == 0 {
			return CreateOrderResult{Message: "Service price not available and amount not specified"}, nil
		}
	}

	now := s.now()
	due := endOfDay(now)
	order := model.Order{
		ClientID:        client.ID,
		ServiceType:     in.ServiceType,
		ServiceID:       serviceID,
		ServiceName:     serviceName,
		Amount:          amount,
		Status:          model.OrderPending,
		CreatedDate:     now,
		DueDate:         &due,
		DiscountApplied: 0,
		TaxAmount:       amount * s.taxRate(),
		Notes:           in.Notes,
	}
	orderID, err := s.Orders.Create(ctx, &order)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if !contains(client.EnrolledServices, serviceName) {
		services := append(client.EnrolledServices, serviceName)
		if err := s.Clients.SetEnrolledServices(ctx, client.ID, services, now); err != nil {
			return CreateOrderResult{}, err
		}
		client.EnrolledServices = services
	}
	if in.ServiceType == model.ServiceCourse {
		err = s.Courses.IncrementEnrollment(ctx, serviceID)
	} else {
		err = s.Classes.IncrementEnrollment(ctx, serviceID)
	}
	if err != nil {
		return CreateOrderResult{}, err
	}

	s.Sim.BookingSync("new_order", map[string]any{
		"order_id":     orderID,
		"client_email": in.ClientEmail,
		"service_type": in.ServiceType,
		"service_name": serviceName,
		"amount":       amount,
	})
	s.Sim.SendNotification(ctx, integration.NotifyOrderConfirmed, in.ClientEmail, client.Name,
		fmt.Sprintf("Order confirmed for %s. Amount: $%.2f. Order ID: %d", serviceName, amount, orderID))

	return CreateOrderResult{
		Success: true,
		Message: "Order created successfully",
		OrderID: orderID,
		Order:   order,
		Client:  client,
	}, nil
}

// ProcessPaymentResult reports a payment attempt. On gateway decline,
// Success is false, Error carries the gateway message and nothing is
// written.
type ProcessPaymentResult struct {
	Success       bool
	Message       string
	PaymentID     uint64
	TransactionID string
	Amount        float64
	Error         string
}

// ProcessPayment runs the gateway capture first and only writes on
// success: a completed Payment record, then the order flipped to paid. A
// declined capture leaves the store untouched.
func (s *Service) ProcessPayment(ctx context.Context, orderID uint64, amount float64, method string) (ProcessPaymentResult, error) {
	capture := s.Sim.GatewayCapture(strconv.FormatUint(orderID, 10), amount, method)
	if !capture.Success {
		return ProcessPaymentResult{
			Success: false,
			Message: "Payment failed",
			Error:   capture.Error,
		}, nil
	}

	now := s.now()
	payment := model.Payment{
		OrderID:         orderID,
		Amount:          amount,
		PaymentDate:     now,
		Method:          method,
		Status:          model.PaymentCompleted,
		TransactionID:   capture.TransactionID,
		GatewayResponse: marshalGateway(capture),
	}
	paymentID, err := s.Payments.Create(ctx, &payment)
	if err != nil {
		return ProcessPaymentResult{}, err
	}
	if err := s.Orders.MarkPaid(ctx, orderID, now); err != nil {
		return ProcessPaymentResult{}, err
	}

	return ProcessPaymentResult{
		Success:       true,
		Message:       "Payment processed successfully",
		PaymentID:     paymentID,
		TransactionID: capture.TransactionID,
		Amount:        amount,
	}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
