package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KrishKoria/Qest/internal/integration"
	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/queue"
	"github.com/KrishKoria/Qest/internal/repository"
)

// In-memory fakes implementing the orchestrator's store interfaces.

type memClientStore struct {
	clients []model.Client
	nextID  uint64

	enrolledCalls int
}

func (m *memClientStore) Create(_ context.Context, c *model.Client) (uint64, error) {
	for _, e := range m.clients {
		if e.Email == c.Email {
			return 0, repository.ErrDuplicateClient
		}
	}
	m.nextID++
	c.ID = m.nextID
	m.clients = append(m.clients, *c)
	return c.ID, nil
}

func (m *memClientStore) GetByEmail(_ context.Context, email string) (model.Client, error) {
	for _, c := range m.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Client{}, repository.ErrClientNotFound
}

func (m *memClientStore) FindByEmailOrPhone(_ context.Context, email, phone string) (model.Client, error) {
	for _, c := range m.clients {
		if c.Email == email || c.Phone == phone {
			return c, nil
		}
	}
	return model.Client{}, repository.ErrClientNotFound
}

func (m *memClientStore) SetEnrolledServices(_ context.Context, id uint64, services []string, at time.Time) error {
	m.enrolledCalls++
	for i := range m.clients {
		if m.clients[i].ID == id {
			m.clients[i].EnrolledServices = services
			m.clients[i].LastActivity = &at
			return nil
		}
	}
	return repository.ErrClientNotFound
}

type memOrderStore struct {
	orders []model.Order
	paid   []uint64
	nextID uint64
}

func (m *memOrderStore) Create(_ context.Context, o *model.Order) (uint64, error) {
	m.nextID++
	o.ID = m.nextID
	m.orders = append(m.orders, *o)
	return o.ID, nil
}

func (m *memOrderStore) MarkPaid(_ context.Context, id uint64, paidAt time.Time) error {
	m.paid = append(m.paid, id)
	return nil
}

type memPaymentStore struct {
	payments []model.Payment
	nextID   uint64
}

func (m *memPaymentStore) Create(_ context.Context, p *model.Payment) (uint64, error) {
	m.nextID++
	p.ID = m.nextID
	m.payments = append(m.payments, *p)
	return p.ID, nil
}

type memCourseStore struct {
	courses    []model.Course
	increments []uint64
}

func (m *memCourseStore) FindByName(_ context.Context, name string) (model.Course, error) {
	for _, c := range m.courses {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Course{}, repository.ErrServiceNotFound
}

func (m *memCourseStore) IncrementEnrollment(_ context.Context, id uint64) error {
	m.increments = append(m.increments, id)
	return nil
}

type memClassStore struct {
	classes    []model.Class
	increments []uint64
}

func (m *memClassStore) FindByName(_ context.Context, name string) (model.Class, error) {
	for _, c := range m.classes {
		if c.CourseName == name {
			return c, nil
		}
	}
	return model.Class{}, repository.ErrServiceNotFound
}

func (m *memClassStore) IncrementEnrollment(_ context.Context, id uint64) error {
	m.increments = append(m.increments, id)
	return nil
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc      *Service
	clients  *memClientStore
	orders   *memOrderStore
	payments *memPaymentStore
	courses  *memCourseStore
	classes  *memClassStore
	events   *[]queue.NotificationEvent
}

func newTestService(succeed bool) testEnv {
	clients := &memClientStore{}
	orders := &memOrderStore{}
	payments := &memPaymentStore{}
	courses := &memCourseStore{courses: []model.Course{
		{ID: 3, Name: "Yoga Beginner", Instructor: "Sarah Johnson", Price: 120, IsActive: true},
		{ID: 4, Name: "Free Taster", Instructor: "Sarah Johnson", Price: 0, IsActive: true},
	}}
	classes := &memClassStore{classes: []model.Class{
		{ID: 8, CourseID: 3, CourseName: "Yoga Beginner", Instructor: "Sarah Johnson"},
	}}

	events := &[]queue.NotificationEvent{}
	sim := &integration.Simulator{
		Outcomes:    integration.FixedOutcomes(succeed),
		GatewayRate: 0.95,
		NotifyRate:  0.95,
		Now:         func() time.Time { return testNow },
		Publish: func(_ context.Context, ev queue.NotificationEvent) error {
			*events = append(*events, ev)
			return nil
		},
	}

	svc := &Service{
		Clients:  clients,
		Orders:   orders,
		Payments: payments,
		Courses:  courses,
		Classes:  classes,
		Sim:      sim,
		TaxRate:  0.10,
		Now:      func() time.Time { return testNow },
	}
	return testEnv{svc, clients, orders, payments, courses, classes, events}
}

func TestCreateClient(t *testing.T) {
	env := newTestService(true)

	res, err := env.svc.CreateClient(context.Background(), CreateClientInput{
		Name: "Alice Example", Email: "alice@x.com", Phone: "+15550001",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Client created successfully", res.Message)
	assert.EqualValues(t, 1, res.ClientID)
	assert.Equal(t, model.ClientActive, res.Client.Status)
	assert.Equal(t, []string{}, res.Client.EnrolledServices)
	assert.Equal(t, testNow, res.Client.RegistrationDate)

	// welcome email fanned out
	require.Len(t, *env.events, 1)
	assert.Equal(t, integration.NotifyWelcome, (*env.events)[0].Type)
	assert.Equal(t, "alice@x.com", (*env.events)[0].RecipientEmail)
}

func TestCreateClientDuplicate(t *testing.T) {
	env := newTestService(true)
	_, err := env.svc.CreateClient(context.Background(), CreateClientInput{
		Name: "Alice Example", Email: "alice@x.com", Phone: "+15550001",
	})
	require.NoError(t, err)

	res, err := env.svc.CreateClient(context.Background(), CreateClientInput{
		Name: "Alice Again", Email: "alice@x.com", Phone: "+15559999",
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Client already exists with this email or phone number", res.Message)
	assert.EqualValues(t, 1, res.ExistingClientID)
	assert.Len(t, env.clients.clients, 1, "duplicate must not write")
}

func TestCreateOrderForCourse(t *testing.T) {
	env := newTestService(true)
	_, err := env.svc.CreateClient(context.Background(), CreateClientInput{
		Name: "Alice Example", Email: "alice@x.com", Phone: "+15550001",
	})
	require.NoError(t, err)

	res, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		ClientEmail: "alice@x.com",
		ServiceType: model.ServiceCourse,
		ServiceName: "Yoga Beginner",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	// catalog price with 10% tax
	assert.Equal(t, 120.0, res.Order.Amount)
	assert.InDelta(t, 12.0, res.Order.TaxAmount, 1e-9)
	assert.Equal(t, model.OrderPending, res.Order.Status)
	require.NotNil(t, res.Order.DueDate)
	assert.Equal(t, time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC), *res.Order.DueDate)

	// enrollment bookkeeping on both sides
	assert.Equal(t, []string{"Yoga Beginner"}, res.Client.EnrolledServices)
	assert.Equal(t, []uint64{3}, env.courses.increments)
	assert.Equal(t, 1, env.clients.enrolledCalls)
}

func TestCreateOrderSkipsDuplicateEnrollment(t *testing.T) {
	env := newTestService(true)
	_, err := env.svc.CreateClient(context.Background(), CreateClientInput{
		Name: "Alice Example", Email: "alice@x.com", Phone: "+15550001",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = env.svc.CreateOrder(context.Background(), CreateOrderInput{
			ClientEmail: "alice@x.com",
			ServiceType: model.ServiceCourse,
			ServiceName: "Yoga Beginner",
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, env.clients.enrolledCalls, "service name is appended once")
	assert.Len(t, env.courses.increments, 2, "enrollment count still bumps per order")
}

func TestCreateOrderUnknownClient(t *testing.T) {
	env := newTestService(true)
	res, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		ClientEmail: "ghost@x.com",
		ServiceType: model.ServiceCourse,
		ServiceName: "Yoga Beginner",
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Client not found with email: ghost@x.com", res.Message)
	assert.Empty(t, env.orders.orders)
}

func TestCreateOrderNoPriceNoAmount(t *testing.T) {
	env := newTestService(true)
	_, err := env.svc.CreateClient(context.Background(), CreateClientInput{
		Name: "Alice Example", Email: "alice@x.com", Phone: "+15550001",
	})
	require.NoError(t, err)

	res, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		ClientEmail: "alice@x.com",
		ServiceType: model.ServiceCourse,
		ServiceName: "Free Taster",
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Service price not available and amount not specified", res.Message)
}

func TestCreateOrderForClassUsesExplicitAmount(t *testing.T) {
	env := newTestService(true)
	_, err := env.svc.CreateClient(context.Background(), CreateClientInput{
		Name: "Alice Example", Email: "alice@x.com", Phone: "+15550001",
	})
	require.NoError(t, err)

	res, err := env.svc.CreateOrder(context.Background(), CreateOrderInput{
		ClientEmail: "alice@x.com",
		ServiceType: model.ServiceClass,
		ServiceName: "Yoga Beginner",
		Amount:      25,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 25.0, res.Order.Amount)
	assert.Equal(t, []uint64{8}, env.classes.increments)
	assert.Empty(t, env.courses.increments)
}

func TestProcessPaymentSuccess(t *testing.T) {
	env := newTestService(true)

	res, err := env.svc.ProcessPayment(context.Background(), 42, 120, model.MethodCard)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Payment processed successfully", res.Message)
	assert.Contains(t, res.TransactionID, "TXN_")

	require.Len(t, env.payments.payments, 1)
	p := env.payments.payments[0]
	assert.Equal(t, model.PaymentCompleted, p.Status)
	assert.EqualValues(t, 42, p.OrderID)
	assert.Contains(t, p.GatewayResponse, `"gateway_response_code":"00"`)
	assert.Equal(t, []uint64{42}, env.orders.paid)
}

func TestProcessPaymentDeclineWritesNothing(t *testing.T) {
	env := newTestService(false)

	res, err := env.svc.ProcessPayment(context.Background(), 42, 120, model.MethodCard)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Payment failed", res.Message)
	assert.Equal(t, "Payment declined by bank", res.Error)
	assert.Empty(t, env.payments.payments)
	assert.Empty(t, env.orders.paid)
}

func TestAssignStaff(t *testing.T) {
	cases := map[string]string{
		"yoga courses":         "Sarah Johnson",
		"Advanced Pilates":     "Mike Chen",
		"fitness assessment":   "Jessica Williams",
		"Membership upgrade":   "Alex Rodriguez",
		"parking availability": "Customer Service Team",
	}
	for in, want := range cases {
		assert.Equal(t, want, assignStaff(in), "enquiry type %q", in)
	}
}

func TestCreateEnquiry(t *testing.T) {
	env := newTestService(true)

	res, err := env.svc.CreateEnquiry(context.Background(), CreateEnquiryInput{
		Name:        "Bob Example",
		Email:       "bob@x.com",
		EnquiryType: "yoga timetable",
		Message:     "When do beginner sessions run?",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "new", res.Enquiry.Status)
	assert.Equal(t, "email", res.Enquiry.PreferredContactMethod)
	assert.Equal(t, "Sarah Johnson", res.Enquiry.AssignedTo)
	assert.True(t, res.CRMIntegration.Success)
	assert.Contains(t, res.CRMIntegration.CorrelationID, "CRM_")

	// acknowledgment to the client plus the staff alert
	require.Len(t, *env.events, 2)
	assert.Equal(t, integration.NotifyEnquiryAck, (*env.events)[0].Type)
	assert.Equal(t, integration.NotifyStaff, (*env.events)[1].Type)
	assert.Equal(t, "Sarah Johnson@studio.com", (*env.events)[1].RecipientEmail)
}

func TestRunActionUnknown(t *testing.T) {
	env := newTestService(true)
	out := env.svc.RunAction(context.Background(), "levitate", ActionArgs{})
	assert.Equal(t, "Unknown action: levitate", out)
}

func TestRunActionCreateClientShapes(t *testing.T) {
	env := newTestService(true)

	out := env.svc.RunAction(context.Background(), ActionCreateClient, ActionArgs{
		Name: "Alice Example", Email: "alice@x.com", Phone: "+15550001",
	})
	// successes are pretty-printed
	assert.True(t, strings.HasPrefix(out, "{\n"))
	var ok struct {
		Success  bool   `json:"success"`
		ClientID string `json:"client_id"`
		Details  struct {
			Status string `json:"status"`
		} `json:"client_details"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ok))
	assert.True(t, ok.Success)
	assert.Equal(t, "1", ok.ClientID)
	assert.Equal(t, model.ClientActive, ok.Details.Status)

	out = env.svc.RunAction(context.Background(), ActionCreateClient, ActionArgs{
		Name: "Alice Again", Email: "alice@x.com", Phone: "+15559999",
	})
	// failures are compact single-line JSON
	assert.NotContains(t, out, "\n")
	var dup struct {
		Success          bool   `json:"success"`
		ExistingClientID string `json:"existing_client_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &dup))
	assert.False(t, dup.Success)
	assert.Equal(t, "1", dup.ExistingClientID)
}

func TestRunActionProcessPaymentBadOrderID(t *testing.T) {
	env := newTestService(true)
	out := env.svc.RunAction(context.Background(), ActionProcessPayment, ActionArgs{
		OrderID: "not-a-number", Amount: 50, PaymentMethod: model.MethodCard,
	})
	assert.Equal(t, `{"success":false,"message":"Order not found"}`, out)
}

func TestRunActionPaymentDecline(t *testing.T) {
	env := newTestService(false)
	out := env.svc.RunAction(context.Background(), ActionProcessPayment, ActionArgs{
		OrderID: "7", Amount: 50, PaymentMethod: model.MethodCard,
	})
	assert.Equal(t, `{"success":false,"message":"Payment failed","error":"Payment declined by bank"}`, out)
}
