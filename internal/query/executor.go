package query

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
)

// Store interfaces are declared here, on the consumer side, so the executor
// can run against the MySQL repositories in production and in-memory fakes
// in tests.

type ClientStore interface {
	GetByID(ctx context.Context, id uint64) (model.Client, error)
	List(ctx context.Context, status string, limit, skip int) ([]model.Client, error)
	Search(ctx context.Context, term string, limit int) ([]model.Client, error)
}

type OrderStore interface {
	GetByID(ctx context.Context, id uint64) (model.Order, error)
	List(ctx context.Context, clientID uint64, status string, limit, skip int) ([]model.Order, error)
}

type PaymentStore interface {
	List(ctx context.Context, orderID uint64, status string, limit int) ([]model.Payment, error)
}

type CourseStore interface {
	List(ctx context.Context, instructor string, activeOnly bool, limit, skip int) ([]model.Course, error)
}

type ClassStore interface {
	List(ctx context.Context, courseID uint64, instructor string, from, to *time.Time, limit, skip int) ([]model.Class, error)
}

type AttendanceStore interface {
	List(ctx context.Context, classID, clientID uint64, status string, limit int) ([]model.Attendance, error)
}

// Analytics is the reporting backend the executor hands the analytics family
// of operations to. Implementations return finished JSON text.
type Analytics interface {
	Revenue(ctx context.Context, period string) (string, error)
	ClientInsights(ctx context.Context) (string, error)
	ServiceInsights(ctx context.Context) (string, error)
	AttendanceInsights(ctx context.Context, courseName string) (string, error)
	Summary(ctx context.Context) (string, error)
}

// Params carries the optional filters an operation may use. Identifier
// fields hold boundary strings and are parsed on demand. A zero Limit
// selects the per-operation default.
type Params struct {
	Status          string
	ClientID        string
	OrderID         string
	ClassID         string
	CourseID        string
	SearchTerm      string
	Instructor      string
	IncludeInactive bool
	Period          string
	CourseName      string
	DateFrom        *time.Time
	DateTo          *time.Time
	Limit           int
	Skip            int
}

func (p Params) limitOr(def int) int {
	if p.Limit > 0 {
		return p.Limit
	}
	return def
}

// Executor resolves operation descriptors and runs them against the record
// store, returning results as JSON text. Every outcome, including errors, is
// a string so callers can relay it verbatim.
type Executor struct {
	Clients    ClientStore
	Orders     OrderStore
	Payments   PaymentStore
	Courses    CourseStore
	Classes    ClassStore
	Attendance AttendanceStore
	Reports    Analytics

	// SampleData enables the canned fallback payloads on empty listings.
	SampleData bool
}

// Run normalizes opType and dispatches. Unknown operations produce the
// capability listing rather than an error.
func (e *Executor) Run(ctx context.Context, opType string, p Params) string {
	var (
		out string
		err error
	)
	switch Normalize(opType) {
	case OpFindClients:
		out, err = e.findClients(ctx, p)
	case OpGetClientByID:
		out, err = e.getClientByID(ctx, p)
	case OpSearchClients:
		out, err = e.searchClients(ctx, p)
	case OpGetOrders:
		out, err = e.getOrders(ctx, p)
	case OpGetOrderByID:
		out, err = e.getOrderByID(ctx, p)
	case OpGetPayments:
		out, err = e.getPayments(ctx, p)
	case OpGetCourses:
		out, err = e.getCourses(ctx, p)
	case OpGetClasses:
		out, err = e.getClasses(ctx, p)
	case OpGetAttendance:
		out, err = e.getAttendance(ctx, p)
	case OpRevenueAnalytics:
		out, err = e.Reports.Revenue(ctx, p.Period)
	case OpClientAnalytics:
		out, err = e.Reports.ClientInsights(ctx)
	case OpServiceAnalytics:
		out, err = e.Reports.ServiceInsights(ctx)
	case OpAttendanceAnalytics:
		out, err = e.Reports.AttendanceInsights(ctx, p.CourseName)
	case OpSummaryStatistics:
		out, err = e.Reports.Summary(ctx)
	default:
		return availableOperations
	}
	if err != nil {
		return "Database operation failed: " + err.Error()
	}
	return out
}

const availableOperations = `Available query types:
        - Client search and management: find_clients, search_clients
        - Order and payment tracking: get_orders, get_payments
        - Course and class information: get_courses, get_classes
        - Attendance monitoring: get_attendance
        - Business analytics and reporting: revenue_analytics, client_analytics, service_analytics, summary_statistics

        Please use one of these query types or a natural language description that matches these categories.`

func (e *Executor) findClients(ctx context.Context, p Params) (string, error) {
	limit := p.limitOr(50)
	clients, err := e.Clients.List(ctx, p.Status, limit, p.Skip)
	if err != nil {
		return "", err
	}
	if len(clients) == 0 && e.SampleData {
		demo := sampleClients
		if limit < len(demo) {
			demo = demo[:limit]
		}
		return jsonText(struct {
			Success bool           `json:"success"`
			Count   int            `json:"count"`
			Clients []sampleClient `json:"clients"`
			Note    string         `json:"note"`
		}{true, len(sampleClients), demo, sampleFallbackNote}), nil
	}
	return jsonText(struct {
		Success bool         `json:"success"`
		Count   int          `json:"count"`
		Clients []clientView `json:"clients"`
	}{true, len(clients), renderClients(clients)}), nil
}

func (e *Executor) getClientByID(ctx context.Context, p Params) (string, error) {
	id, err := ParseID(p.ClientID)
	if err != nil {
		return failure("Client not found"), nil
	}
	c, err := e.Clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return failure("Client not found"), nil
		}
		return "", err
	}
	return jsonText(struct {
		Success bool       `json:"success"`
		Client  clientView `json:"client"`
	}{true, renderClient(c)}), nil
}

func (e *Executor) searchClients(ctx context.Context, p Params) (string, error) {
	clients, err := e.Clients.Search(ctx, p.SearchTerm, p.limitOr(20))
	if err != nil {
		return "", err
	}
	return jsonText(struct {
		Success    bool         `json:"success"`
		SearchTerm string       `json:"search_term"`
		Count      int          `json:"count"`
		Clients    []clientView `json:"clients"`
	}{true, p.SearchTerm, len(clients), renderClients(clients)}), nil
}

func (e *Executor) getOrders(ctx context.Context, p Params) (string, error) {
	clientID, _ := ParseID(p.ClientID)
	limit := p.limitOr(50)
	orders, err := e.Orders.List(ctx, clientID, p.Status, limit, p.Skip)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 && e.SampleData {
		demo := sampleOrders
		if limit < len(demo) {
			demo = demo[:limit]
		}
		return jsonText(struct {
			Success bool          `json:"success"`
			Count   int           `json:"count"`
			Orders  []sampleOrder `json:"orders"`
			Note    string        `json:"note"`
		}{true, len(sampleOrders), demo, sampleFallbackNote}), nil
	}
	return jsonText(struct {
		Success bool        `json:"success"`
		Count   int         `json:"count"`
		Orders  []orderView `json:"orders"`
	}{true, len(orders), renderOrders(orders)}), nil
}

// orderDetailView extends the plain order with the owning client's contact
// card and the payment trail.
type orderDetailView struct {
	orderView
	ClientInfo *clientContact `json:"client_info,omitempty"`
	Payments   []paymentView  `json:"payments"`
}

type clientContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (e *Executor) getOrderByID(ctx context.Context, p Params) (string, error) {
	id, err := ParseID(p.OrderID)
	if err != nil {
		return failure("Order not found"), nil
	}
	o, err := e.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return failure("Order not found"), nil
		}
		return "", err
	}
	detail := orderDetailView{orderView: renderOrder(o)}
	if c, err := e.Clients.GetByID(ctx, o.ClientID); err == nil {
		detail.ClientInfo = &clientContact{Name: c.Name, Email: c.Email, Phone: c.Phone}
	}
	payments, err := e.Payments.List(ctx, id, "", 50)
	if err != nil {
		return "", err
	}
	detail.Payments = renderPayments(payments)
	return jsonText(struct {
		Success bool            `json:"success"`
		Order   orderDetailView `json:"order"`
	}{true, detail}), nil
}

func (e *Executor) getPayments(ctx context.Context, p Params) (string, error) {
	orderID, _ := ParseID(p.OrderID)
	payments, err := e.Payments.List(ctx, orderID, p.Status, p.limitOr(50))
	if err != nil {
		return "", err
	}
	return jsonText(struct {
		Success  bool          `json:"success"`
		Count    int           `json:"count"`
		Payments []paymentView `json:"payments"`
	}{true, len(payments), renderPayments(payments)}), nil
}

func (e *Executor) getCourses(ctx context.Context, p Params) (string, error) {
	courses, err := e.Courses.List(ctx, p.Instructor, !p.IncludeInactive, p.limitOr(50), p.Skip)
	if err != nil {
		return "", err
	}
	return jsonText(struct {
		Success bool         `json:"success"`
		Count   int          `json:"count"`
		Courses []courseView `json:"courses"`
	}{true, len(courses), renderCourses(courses)}), nil
}

func (e *Executor) getClasses(ctx context.Context, p Params) (string, error) {
	courseID, _ := ParseID(p.CourseID)
	classes, err := e.Classes.List(ctx, courseID, p.Instructor, p.DateFrom, p.DateTo, p.limitOr(50), p.Skip)
	if err != nil {
		return "", err
	}
	return jsonText(struct {
		Success bool        `json:"success"`
		Count   int         `json:"count"`
		Classes []classView `json:"classes"`
	}{true, len(classes), renderClasses(classes)}), nil
}

func (e *Executor) getAttendance(ctx context.Context, p Params) (string, error) {
	classID, _ := ParseID(p.ClassID)
	clientID, _ := ParseID(p.ClientID)
	records, err := e.Attendance.List(ctx, classID, clientID, p.Status, p.limitOr(100))
	if err != nil {
		return "", err
	}
	return jsonText(struct {
		Success    bool             `json:"success"`
		Count      int              `json:"count"`
		Attendance []attendanceView `json:"attendance"`
	}{true, len(records), renderAttendance(records)}), nil
}

func jsonText(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "Database operation failed: " + err.Error()
	}
	return string(b)
}

func failure(msg string) string {
	b, _ := json.Marshal(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{false, msg})
	return string(b)
}
