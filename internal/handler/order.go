package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
	"github.com/KrishKoria/Qest/internal/service"
)

// OrderHandler serves order reads, order creation and payment processing.
type OrderHandler struct {
	Orders   *repository.OrderRepo
	Svc      *service.Service
	Validate *validator.Validate
}

func NewOrderHandler(r *repository.OrderRepo, s *service.Service, v *validator.Validate) *OrderHandler {
	return &OrderHandler{Orders: r, Svc: s, Validate: v}
}

type orderResp struct {
	ID              string  `json:"_id"`
	ClientID        string  `json:"client_id"`
	ServiceType     string  `json:"service_type"`
	ServiceID       string  `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	CreatedDate     string  `json:"created_date"`
	DueDate         string  `json:"due_date,omitempty"`
	PaidDate        string  `json:"paid_date,omitempty"`
	DiscountApplied float64 `json:"discount_applied"`
	TaxAmount       float64 `json:"tax_amount"`
	Notes           string  `json:"notes,omitempty"`
}

func toOrderResp(o model.Order) orderResp {
	r := orderResp{
		ID:              strconv.FormatUint(o.ID, 10),
		ClientID:        strconv.FormatUint(o.ClientID, 10),
		ServiceType:     o.ServiceType,
		ServiceID:       strconv.FormatUint(o.ServiceID, 10),
		ServiceName:     o.ServiceName,
		Amount:          o.Amount,
		Status:          o.Status,
		CreatedDate:     o.CreatedDate.UTC().Format(time.RFC3339),
		DiscountApplied: o.DiscountApplied,
		TaxAmount:       o.TaxAmount,
		Notes:           o.Notes,
	}
	if o.DueDate != nil {
		r.DueDate = o.DueDate.UTC().Format(time.RFC3339)
	}
	if o.PaidDate != nil {
		r.PaidDate = o.PaidDate.UTC().Format(time.RFC3339)
	}
	return r
}

// ListOrders returns orders filtered by optional client_id and status.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var clientID uint64
	if raw := c.QueryParam("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
		}
		clientID = id
	}

	limit := queryInt(c, "limit", 50)
	skip := queryInt(c, "skip", 0)
	orders, err := h.Orders.List(ctx, clientID, c.QueryParam("status"), limit, skip)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResp(o))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetOrder returns one order by id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toOrderResp(o))
}

type createOrderReq struct {
	ClientEmail string  `json:"client_email" validate:"required,email"`
	ServiceType string  `json:"service_type" validate:"required,oneof=course class"`
	ServiceName string  `json:"service_name" validate:"required,min=1"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Notes       string  `json:"notes"`
}

// CreateOrder creates an order for an existing client. The amount falls
// back to the catalog price for course orders.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Svc.CreateOrder(ctx, service.CreateOrderInput{
		ClientEmail: req.ClientEmail,
		ServiceType: req.ServiceType,
		ServiceName: req.ServiceName,
		Amount:      req.Amount,
		Notes:       req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if !res.Success {
		code := http.StatusBadRequest
		if strings.HasPrefix(res.Message, "Client not found") || strings.HasPrefix(res.Message, "Service not found") {
			code = http.StatusNotFound
		}
		return c.JSON(code, echo.Map{"error": res.Message})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  res.Message,
		"order_id": strconv.FormatUint(res.OrderID, 10),
		"order":    toOrderResp(res.Order),
	})
}

type processPaymentReq struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=card cash bank_transfer online"`
}

// ProcessPayment captures a payment for an order. A gateway decline leaves
// the order untouched and reports 402.
func (h *OrderHandler) ProcessPayment(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req processPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Svc.ProcessPayment(ctx, orderID, req.Amount, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if !res.Success {
		return c.JSON(http.StatusPaymentRequired, echo.Map{
			"error":  res.Message,
			"reason": res.Error,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        res.Message,
		"payment_id":     strconv.FormatUint(res.PaymentID, 10),
		"transaction_id": res.TransactionID,
		"amount":         req.Amount,
	})
}
