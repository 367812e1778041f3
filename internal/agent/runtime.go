// Package agent is the orchestration runtime behind the support and
// dashboard roles. It takes free-text queries with optional key-value
// context, routes them onto the query executor or the domain actions, and
// relays the resulting JSON text back unchanged.
package agent

import (
	"context"
	"strings"
	"time"

	"github.com/KrishKoria/Qest/internal/query"
	"github.com/KrishKoria/Qest/internal/service"
)

// Request is the role-agnostic inbound query.
type Request struct {
	Query    string
	Language string
	Context  map[string]any
}

// Response echoes the request's language and context alongside the textual
// answer.
type Response struct {
	Response string         `json:"response"`
	Language string         `json:"language"`
	Context  map[string]any `json:"context,omitempty"`
}

// Runtime routes queries for both roles. The support role may perform
// domain writes; the dashboard role is read-only.
type Runtime struct {
	Exec *query.Executor
	Svc  *service.Service
}

// HandleSupport answers a support-role query. Queries with an explicit
// action verb dispatch a domain write; everything else is treated as a read
// operation descriptor.
func (r *Runtime) HandleSupport(ctx context.Context, req Request) Response {
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	if action, ok := resolveAction(req.Query); ok {
		out := r.Svc.RunAction(ctx, action, actionArgs(req.Context))
		return Response{Response: out, Language: lang, Context: req.Context}
	}
	out := r.Exec.Run(ctx, req.Query, queryParams(req.Context))
	return Response{Response: out, Language: lang, Context: req.Context}
}

// HandleDashboard answers a dashboard-role query. The dashboard role never
// writes; action verbs fall through to the read path and end up at the
// capability listing.
func (r *Runtime) HandleDashboard(ctx context.Context, req Request) Response {
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	out := r.Exec.Run(ctx, req.Query, queryParams(req.Context))
	return Response{Response: out, Language: lang, Context: req.Context}
}

// resolveAction maps an explicit action phrase onto an action code. The
// verbs are deliberately narrow so listing queries like "show clients"
// never trigger a write.
func resolveAction(q string) (string, bool) {
	lower := strings.ToLower(q)
	switch {
	case lower == service.ActionCreateClient,
		strings.Contains(lower, "create client"), strings.Contains(lower, "register client"),
		strings.Contains(lower, "new client"), strings.Contains(lower, "add client"):
		return service.ActionCreateClient, true
	case lower == service.ActionCreateOrder,
		strings.Contains(lower, "create order"), strings.Contains(lower, "place order"),
		strings.Contains(lower, "new order"), strings.Contains(lower, "book "):
		return service.ActionCreateOrder, true
	case lower == service.ActionProcessPayment,
		strings.Contains(lower, "process payment"), strings.Contains(lower, "pay order"),
		strings.Contains(lower, "charge "):
		return service.ActionProcessPayment, true
	case lower == service.ActionCreateEnquiry,
		strings.Contains(lower, "create enquiry"), strings.Contains(lower, "new enquiry"),
		strings.Contains(lower, "enquire about"):
		return service.ActionCreateEnquiry, true
	case lower == service.ActionSendNotification,
		strings.Contains(lower, "send notification"):
		return service.ActionSendNotification, true
	}
	return "", false
}

// queryParams lifts the loose key-value context into executor filters.
func queryParams(ctx map[string]any) query.Params {
	return query.Params{
		Status:          str(ctx, "status"),
		ClientID:        str(ctx, "client_id"),
		OrderID:         str(ctx, "order_id"),
		ClassID:         str(ctx, "class_id"),
		CourseID:        str(ctx, "course_id"),
		SearchTerm:      str(ctx, "search_term"),
		Instructor:      str(ctx, "instructor"),
		IncludeInactive: boolean(ctx, "include_inactive"),
		Period:          str(ctx, "period"),
		CourseName:      str(ctx, "course_name"),
		DateFrom:        timestamp(ctx, "date_from"),
		DateTo:          timestamp(ctx, "date_to"),
		Limit:           integer(ctx, "limit"),
		Skip:            integer(ctx, "skip"),
	}
}

// actionArgs lifts the loose key-value context into action parameters.
func actionArgs(ctx map[string]any) service.ActionArgs {
	return service.ActionArgs{
		Name:                   str(ctx, "name"),
		Email:                  str(ctx, "email"),
		Phone:                  str(ctx, "phone"),
		Birthday:               timestamp(ctx, "birthday"),
		Address:                str(ctx, "address"),
		EmergencyContact:       stringMap(ctx, "emergency_contact"),
		Notes:                  str(ctx, "notes"),
		ClientEmail:            str(ctx, "client_email"),
		ServiceType:            str(ctx, "service_type"),
		ServiceName:            str(ctx, "service_name"),
		Amount:                 float(ctx, "amount"),
		OrderID:                str(ctx, "order_id"),
		PaymentMethod:          str(ctx, "payment_method"),
		EnquiryType:            str(ctx, "enquiry_type"),
		Message:                str(ctx, "message"),
		PreferredContactMethod: str(ctx, "preferred_contact_method"),
		NotificationType:       str(ctx, "notification_type"),
		RecipientEmail:         str(ctx, "recipient_email"),
		RecipientName:          str(ctx, "recipient_name"),
	}
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func float(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func integer(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func boolean(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func timestamp(m map[string]any, key string) *time.Time {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if t, err = time.Parse("2006-01-02", s); err != nil {
			return nil
		}
	}
	return &t
}

func stringMap(m map[string]any, key string) map[string]string {
	raw, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
