package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/KrishKoria/Qest/internal/agent"
)

// AgentHandler serves the support and dashboard roles.
type AgentHandler struct {
	Runtime  *agent.Runtime
	Validate *validator.Validate
}

func NewAgentHandler(rt *agent.Runtime, v *validator.Validate) *AgentHandler {
	return &AgentHandler{Runtime: rt, Validate: v}
}

type queryReq struct {
	Query    string         `json:"query" validate:"required,min=1"`
	Language string         `json:"language"`
	Context  map[string]any `json:"context"`
}

// Support answers a support-role query. The support role may trigger
// domain writes through action phrases.
func (h *AgentHandler) Support(c echo.Context) error {
	return h.handle(c, h.Runtime.HandleSupport)
}

// Dashboard answers a dashboard-role query. The dashboard role is
// read-only.
func (h *AgentHandler) Dashboard(c echo.Context) error {
	return h.handle(c, h.Runtime.HandleDashboard)
}

func (h *AgentHandler) handle(c echo.Context, fn func(ctx context.Context, req agent.Request) agent.Response) error {
	var req queryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	resp := fn(ctx, agent.Request{Query: req.Query, Language: req.Language, Context: req.Context})
	return c.JSON(http.StatusOK, resp)
}
