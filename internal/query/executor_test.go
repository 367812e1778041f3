package query

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
)

// In-memory fakes implementing the consumer-side store interfaces.

type fakeClientStore struct {
	clients []model.Client
	err     error
}

func (f *fakeClientStore) GetByID(_ context.Context, id uint64) (model.Client, error) {
	if f.err != nil {
		return model.Client{}, f.err
	}
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Client{}, repository.ErrClientNotFound
}

func (f *fakeClientStore) List(_ context.Context, status string, limit, skip int) ([]model.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Client
	for _, c := range f.clients {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	if skip < len(out) {
		out = out[skip:]
	} else {
		out = nil
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeClientStore) Search(_ context.Context, term string, limit int) ([]model.Client, error) {
	return f.List(context.Background(), "", limit, 0)
}

type fakeOrderStore struct {
	orders []model.Order
}

func (f *fakeOrderStore) GetByID(_ context.Context, id uint64) (model.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Order{}, repository.ErrOrderNotFound
}

func (f *fakeOrderStore) List(_ context.Context, clientID uint64, status string, limit, skip int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if clientID != 0 && o.ClientID != clientID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

type fakePaymentStore struct{ payments []model.Payment }

func (f *fakePaymentStore) List(_ context.Context, orderID uint64, status string, limit int) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.payments {
		if orderID != 0 && p.OrderID != orderID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeCourseStore struct{ courses []model.Course }

func (f *fakeCourseStore) List(_ context.Context, instructor string, activeOnly bool, limit, skip int) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.courses {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeClassStore struct{ classes []model.Class }

func (f *fakeClassStore) List(_ context.Context, courseID uint64, instructor string, from, to *time.Time, limit, skip int) ([]model.Class, error) {
	return f.classes, nil
}

type fakeAttendanceStore struct{ records []model.Attendance }

func (f *fakeAttendanceStore) List(_ context.Context, classID, clientID uint64, status string, limit int) ([]model.Attendance, error) {
	return f.records, nil
}

type fakeAnalytics struct{ last string }

func (f *fakeAnalytics) Revenue(_ context.Context, period string) (string, error) {
	f.last = "revenue:" + period
	return f.last, nil
}
func (f *fakeAnalytics) ClientInsights(context.Context) (string, error) {
	f.last = "clients"
	return f.last, nil
}
func (f *fakeAnalytics) ServiceInsights(context.Context) (string, error) {
	f.last = "services"
	return f.last, nil
}
func (f *fakeAnalytics) AttendanceInsights(_ context.Context, courseName string) (string, error) {
	f.last = "attendance:" + courseName
	return f.last, nil
}
func (f *fakeAnalytics) Summary(context.Context) (string, error) {
	f.last = "summary"
	return f.last, nil
}

func newTestExecutor() *Executor {
	reg := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &Executor{
		Clients: &fakeClientStore{clients: []model.Client{
			{ID: 1, Name: "Alice Example", Email: "alice@x.com", Phone: "+15550001", Status: model.ClientActive, RegistrationDate: reg},
			{ID: 2, Name: "Bob Example", Email: "bob@x.com", Phone: "+15550002", Status: model.ClientInactive, RegistrationDate: reg},
		}},
		Orders: &fakeOrderStore{orders: []model.Order{
			{ID: 10, ClientID: 1, ServiceType: model.ServiceCourse, ServiceID: 3, ServiceName: "Yoga Beginner", Amount: 120, Status: model.OrderPending, CreatedDate: reg},
		}},
		Payments:   &fakePaymentStore{},
		Courses:    &fakeCourseStore{},
		Classes:    &fakeClassStore{},
		Attendance: &fakeAttendanceStore{},
		Reports:    &fakeAnalytics{},
		SampleData: true,
	}
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m), "payload: %s", s)
	return m
}

func TestRunFindClients(t *testing.T) {
	e := newTestExecutor()
	out := e.Run(context.Background(), "show clients", Params{})
	m := decode(t, out)

	assert.Equal(t, true, m["success"])
	assert.EqualValues(t, 2, m["count"])
	clients := m["clients"].([]any)
	require.Len(t, clients, 2)
	first := clients[0].(map[string]any)
	assert.Equal(t, "1", first["_id"])
	assert.Equal(t, "Alice Example", first["name"])
	assert.NotContains(t, m, "note")
}

func TestRunFindClientsSampleFallback(t *testing.T) {
	e := newTestExecutor()
	e.Clients = &fakeClientStore{}
	out := e.Run(context.Background(), "show clients", Params{})
	m := decode(t, out)

	assert.Equal(t, true, m["success"])
	assert.EqualValues(t, 5, m["count"])
	assert.Equal(t, "Sample data - database appears to be empty", m["note"])
	clients := m["clients"].([]any)
	require.Len(t, clients, 5)
	assert.Equal(t, "sample001", clients[0].(map[string]any)["_id"])
}

func TestRunFindClientsEmptyWithoutSamplePolicy(t *testing.T) {
	e := newTestExecutor()
	e.Clients = &fakeClientStore{}
	e.SampleData = false
	m := decode(t, e.Run(context.Background(), "show clients", Params{}))

	assert.Equal(t, true, m["success"])
	assert.EqualValues(t, 0, m["count"])
	assert.NotContains(t, m, "note")
}

func TestRunGetOrdersSampleFallbackHonorsLimit(t *testing.T) {
	e := newTestExecutor()
	e.Orders = &fakeOrderStore{}
	m := decode(t, e.Run(context.Background(), "get_orders", Params{Limit: 2}))

	// count reports the full sample set even when the page is shorter
	assert.EqualValues(t, 5, m["count"])
	assert.Len(t, m["orders"].([]any), 2)
	assert.Equal(t, "Sample data - database appears to be empty", m["note"])
}

func TestRunGetClientByID(t *testing.T) {
	e := newTestExecutor()

	m := decode(t, e.Run(context.Background(), "get_client_by_id", Params{ClientID: "1"}))
	assert.Equal(t, true, m["success"])
	assert.Equal(t, "Alice Example", m["client"].(map[string]any)["name"])

	m = decode(t, e.Run(context.Background(), "get_client_by_id", Params{ClientID: "999"}))
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "Client not found", m["message"])

	// garbage ids behave like missing records, not errors
	m = decode(t, e.Run(context.Background(), "get_client_by_id", Params{ClientID: "abc"}))
	assert.Equal(t, false, m["success"])
}

func TestRunGetOrderByIDIncludesClientAndPayments(t *testing.T) {
	e := newTestExecutor()
	e.Payments = &fakePaymentStore{payments: []model.Payment{
		{ID: 7, OrderID: 10, Amount: 120, Status: model.PaymentCompleted, PaymentDate: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC), Method: model.MethodCard},
	}}

	m := decode(t, e.Run(context.Background(), "get_order_by_id", Params{OrderID: "10"}))
	order := m["order"].(map[string]any)
	assert.Equal(t, "10", order["_id"])
	assert.Equal(t, "alice@x.com", order["client_info"].(map[string]any)["email"])
	require.Len(t, order["payments"].([]any), 1)

	m = decode(t, e.Run(context.Background(), "get_order_by_id", Params{OrderID: "404"}))
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "Order not found", m["message"])
}

func TestRunUnknownOperationListsCapabilities(t *testing.T) {
	e := newTestExecutor()
	out := e.Run(context.Background(), "teleport the studio", Params{})
	assert.Contains(t, out, "Available query types:")
	assert.Contains(t, out, "revenue_analytics")
}

func TestRunStorageErrorIsReported(t *testing.T) {
	e := newTestExecutor()
	e.Clients = &fakeClientStore{err: errStoreDown}
	out := e.Run(context.Background(), "show clients", Params{})
	assert.Equal(t, "Database operation failed: boom", out)
}

func TestRunDispatchesAnalytics(t *testing.T) {
	e := newTestExecutor()
	reports := e.Reports.(*fakeAnalytics)

	assert.Equal(t, "revenue:week", e.Run(context.Background(), "revenue analytics", Params{Period: "week"}))
	assert.Equal(t, "summary", e.Run(context.Background(), "summary_statistics", Params{}))
	assert.Equal(t, "clients", e.Run(context.Background(), "client_analytics", Params{}))
	assert.Equal(t, "clients", reports.last)
}

var errStoreDown = errors.New("boom")
