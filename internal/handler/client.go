package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
	"github.com/KrishKoria/Qest/internal/service"
)

// ClientHandler serves client reads and the client-creation write.
type ClientHandler struct {
	Clients  *repository.ClientRepo
	Svc      *service.Service
	Validate *validator.Validate
}

func NewClientHandler(r *repository.ClientRepo, s *service.Service, v *validator.Validate) *ClientHandler {
	return &ClientHandler{Clients: r, Svc: s, Validate: v}
}

// clientResp is the client record as exposed over the API: string id,
// RFC 3339 timestamps.
type clientResp struct {
	ID               string            `json:"_id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Status           string            `json:"status"`
	EnrolledServices []string          `json:"enrolled_services"`
	RegistrationDate string            `json:"registration_date"`
	Birthday         string            `json:"birthday,omitempty"`
	LastActivity     string            `json:"last_activity,omitempty"`
	Address          string            `json:"address,omitempty"`
	EmergencyContact map[string]string `json:"emergency_contact,omitempty"`
	Notes            string            `json:"notes,omitempty"`
}

func toClientResp(c model.Client) clientResp {
	services := c.EnrolledServices
	if services == nil {
		services = []string{}
	}
	r := clientResp{
		ID:               strconv.FormatUint(c.ID, 10),
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Status:           c.Status,
		EnrolledServices: services,
		RegistrationDate: c.RegistrationDate.UTC().Format(time.RFC3339),
		Address:          c.Address,
		EmergencyContact: c.EmergencyContact,
		Notes:            c.Notes,
	}
	if c.Birthday != nil {
		r.Birthday = c.Birthday.UTC().Format(time.RFC3339)
	}
	if c.LastActivity != nil {
		r.LastActivity = c.LastActivity.UTC().Format(time.RFC3339)
	}
	return r
}

// ListClients returns clients filtered by optional status, paginated with
// limit/skip.
func (h *ClientHandler) ListClients(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	limit := queryInt(c, "limit", 50)
	skip := queryInt(c, "skip", 0)
	clients, err := h.Clients.List(ctx, c.QueryParam("status"), limit, skip)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]clientResp, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResp(cl))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetClient returns one client by id.
func (h *ClientHandler) GetClient(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cl, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toClientResp(cl))
}

type createClientReq struct {
	Name             string            `json:"name" validate:"required,min=1,max=100"`
	Email            string            `json:"email" validate:"required,email"`
	Phone            string            `json:"phone" validate:"required,e164"`
	Birthday         *time.Time        `json:"birthday"`
	Address          string            `json:"address"`
	EmergencyContact map[string]string `json:"emergency_contact"`
	Notes            string            `json:"notes"`
}

// CreateClient creates a client through the orchestrator. A duplicate email
// or phone yields 409 with the existing client's id.
func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req createClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Svc.CreateClient(ctx, service.CreateClientInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Birthday:         req.Birthday,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Notes:            req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if !res.Success {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":              res.Message,
			"existing_client_id": strconv.FormatUint(res.ExistingClientID, 10),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":   res.Message,
		"client_id": strconv.FormatUint(res.ClientID, 10),
		"client":    toClientResp(res.Client),
	})
}

// queryInt parses an integer query parameter, falling back to def on
// absence or garbage.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
