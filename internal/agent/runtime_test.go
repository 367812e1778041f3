package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrishKoria/Qest/internal/integration"
	"github.com/KrishKoria/Qest/internal/query"
	"github.com/KrishKoria/Qest/internal/service"
)

func TestResolveAction(t *testing.T) {
	cases := []struct {
		in     string
		action string
		ok     bool
	}{
		{"create client for Bob", service.ActionCreateClient, true},
		{"Register Client", service.ActionCreateClient, true},
		{"please add client jane", service.ActionCreateClient, true},
		{"create_client", service.ActionCreateClient, true},
		{"place order for yoga", service.ActionCreateOrder, true},
		{"book a pilates class", service.ActionCreateOrder, true},
		{"process payment for order 7", service.ActionProcessPayment, true},
		{"charge the card", service.ActionProcessPayment, true},
		{"enquire about membership", service.ActionCreateEnquiry, true},
		{"send notification", service.ActionSendNotification, true},

		// listing language must stay on the read path
		{"show clients", "", false},
		{"get orders", "", false},
		{"revenue analytics", "", false},
		{"booking summary", "", false}, // "book " requires the trailing space
	}
	for _, tc := range cases {
		action, ok := resolveAction(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.action, action, "input %q", tc.in)
	}
}

func TestHandleSupportDispatchesAction(t *testing.T) {
	r := &Runtime{
		Exec: &query.Executor{},
		Svc: &service.Service{Sim: &integration.Simulator{
			Outcomes:    integration.FixedOutcomes(true),
			GatewayRate: 0.95,
			NotifyRate:  0.95,
		}},
	}

	resp := r.HandleSupport(context.Background(), Request{
		Query: "send notification",
		Context: map[string]any{
			"notification_type": integration.NotifyStaff,
			"recipient_email":   "team@studio.com",
			"recipient_name":    "Team",
			"message":           "shift swap approved",
		},
	})
	assert.Equal(t, "en", resp.Language)
	assert.Contains(t, resp.Response, "Staff notification sent: shift swap approved")
}

func TestHandleSupportFallsThroughToReads(t *testing.T) {
	r := &Runtime{Exec: &query.Executor{}}

	resp := r.HandleSupport(context.Background(), Request{
		Query:    "make me a sandwich",
		Language: "es",
	})
	assert.Equal(t, "es", resp.Language)
	assert.Contains(t, resp.Response, "Available query types:")
}

func TestHandleDashboardNeverWrites(t *testing.T) {
	// Svc is deliberately nil: any write dispatch would panic the test.
	r := &Runtime{Exec: &query.Executor{}}

	resp := r.HandleDashboard(context.Background(), Request{Query: "create client for Bob"})
	assert.Equal(t, "en", resp.Language)
	assert.Contains(t, resp.Response, "Available query types:")
}

func TestQueryParamsLifting(t *testing.T) {
	p := queryParams(map[string]any{
		"status":           "active",
		"client_id":        "12",
		"search_term":      "smith",
		"include_inactive": true,
		"period":           "week",
		"date_from":        "2025-06-01",
		"date_to":          "2025-06-15T12:00:00Z",
		"limit":            float64(25), // JSON numbers decode as float64
		"skip":             5,
	})

	assert.Equal(t, "active", p.Status)
	assert.Equal(t, "12", p.ClientID)
	assert.Equal(t, "smith", p.SearchTerm)
	assert.True(t, p.IncludeInactive)
	assert.Equal(t, "week", p.Period)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 5, p.Skip)

	require.NotNil(t, p.DateFrom)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *p.DateFrom)
	require.NotNil(t, p.DateTo)
	assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), *p.DateTo)
}

func TestQueryParamsIgnoresMalformedValues(t *testing.T) {
	p := queryParams(map[string]any{
		"client_id": 12, // non-string ids are dropped, not coerced
		"date_from": "last tuesday",
		"limit":     "many",
	})
	assert.Empty(t, p.ClientID)
	assert.Nil(t, p.DateFrom)
	assert.Zero(t, p.Limit)
}

func TestActionArgsLifting(t *testing.T) {
	args := actionArgs(map[string]any{
		"name":           "Alice Example",
		"email":          "alice@x.com",
		"amount":         49.5,
		"order_id":       "7",
		"payment_method": "card",
		"birthday":       "1990-06-03",
		"emergency_contact": map[string]any{
			"name":  "Bob Example",
			"phone": "+15550002",
			"age":   41, // non-string values are skipped
		},
	})

	assert.Equal(t, "Alice Example", args.Name)
	assert.Equal(t, "alice@x.com", args.Email)
	assert.Equal(t, 49.5, args.Amount)
	assert.Equal(t, "7", args.OrderID)
	assert.Equal(t, "card", args.PaymentMethod)
	require.NotNil(t, args.Birthday)
	assert.Equal(t, time.Date(1990, 6, 3, 0, 0, 0, 0, time.UTC), *args.Birthday)
	assert.Equal(t, map[string]string{"name": "Bob Example", "phone": "+15550002"}, args.EmergencyContact)
}
