package query

import (
	"strconv"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
)

// This file is the single serialization boundary for entity reads: every
// operation renders cross-reference identifiers as opaque display strings
// and timestamps as RFC 3339 text through these helpers, so the formatting
// rules live in one place instead of being repeated per operation.

// FormatID renders a native identifier as the opaque string exposed at the
// API boundary.
func FormatID(id uint64) string { return strconv.FormatUint(id, 10) }

// ParseID maps a boundary identifier string back to its native form.
func ParseID(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

// FormatTime renders a timestamp as RFC 3339 UTC text.
func FormatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// FormatTimePtr renders an optional timestamp, empty when absent.
func FormatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTime(*t)
}

type clientView struct {
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

func renderClient(c model.Client) clientView {
	services := c.EnrolledServices
	if services == nil {
		services = []string{}
	}
	return clientView{
		ID:               FormatID(c.ID),
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Status:           c.Status,
		EnrolledServices: services,
		RegistrationDate: FormatTime(c.RegistrationDate),
		Birthday:         FormatTimePtr(c.Birthday),
		LastActivity:     FormatTimePtr(c.LastActivity),
		Address:          c.Address,
		EmergencyContact: c.EmergencyContact,
		Notes:            c.Notes,
	}
}

func renderClients(cs []model.Client) []clientView {
	out := make([]clientView, 0, len(cs))
	for _, c := range cs {
		out = append(out, renderClient(c))
	}
	return out
}

type orderView struct {
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

func renderOrder(o model.Order) orderView {
	return orderView{
		ID:              FormatID(o.ID),
		ClientID:        FormatID(o.ClientID),
		ServiceType:     o.ServiceType,
		ServiceID:       FormatID(o.ServiceID),
		ServiceName:     o.ServiceName,
		Amount:          o.Amount,
		Status:          o.Status,
		CreatedDate:     FormatTime(o.CreatedDate),
		DueDate:         FormatTimePtr(o.DueDate),
		PaidDate:        FormatTimePtr(o.PaidDate),
		DiscountApplied: o.DiscountApplied,
		TaxAmount:       o.TaxAmount,
		Notes:           o.Notes,
	}
}

func renderOrders(os []model.Order) []orderView {
	out := make([]orderView, 0, len(os))
	for _, o := range os {
		out = append(out, renderOrder(o))
	}
	return out
}

type paymentView struct {
	ID              string  `json:"_id"`
	OrderID         string  `json:"order_id"`
	Amount          float64 `json:"amount"`
	PaymentDate     string  `json:"payment_date"`
	Method          string  `json:"method"`
	Status          string  `json:"status"`
	TransactionID   string  `json:"transaction_id,omitempty"`
	GatewayResponse string  `json:"gateway_response,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

func renderPayment(p model.Payment) paymentView {
	return paymentView{
		ID:              FormatID(p.ID),
		OrderID:         FormatID(p.OrderID),
		Amount:          p.Amount,
		PaymentDate:     FormatTime(p.PaymentDate),
		Method:          p.Method,
		Status:          p.Status,
		TransactionID:   p.TransactionID,
		GatewayResponse: p.GatewayResponse,
		Notes:           p.Notes,
	}
}

func renderPayments(ps []model.Payment) []paymentView {
	out := make([]paymentView, 0, len(ps))
	for _, p := range ps {
		out = append(out, renderPayment(p))
	}
	return out
}

type courseView struct {
	ID              string   `json:"_id"`
	Name            string   `json:"name"`
	Instructor      string   `json:"instructor"`
	Description     string   `json:"description"`
	DurationWeeks   int      `json:"duration_weeks"`
	Capacity        int      `json:"capacity"`
	EnrollmentCount int      `json:"enrollment_count"`
	CompletionRate  float64  `json:"completion_rate"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	DifficultyLevel string   `json:"difficulty_level"`
	Prerequisites   []string `json:"prerequisites"`
	IsActive        bool     `json:"is_active"`
	CreatedDate     string   `json:"created_date"`
}

func renderCourse(c model.Course) courseView {
	prereq := c.Prerequisites
	if prereq == nil {
		prereq = []string{}
	}
	return courseView{
		ID:              FormatID(c.ID),
		Name:            c.Name,
		Instructor:      c.Instructor,
		Description:     c.Description,
		DurationWeeks:   c.DurationWeeks,
		Capacity:        c.Capacity,
		EnrollmentCount: c.EnrollmentCount,
		CompletionRate:  c.CompletionRate,
		Price:           c.Price,
		Category:        c.Category,
		DifficultyLevel: c.DifficultyLevel,
		Prerequisites:   prereq,
		IsActive:        c.IsActive,
		CreatedDate:     FormatTime(c.CreatedDate),
	}
}

func renderCourses(cs []model.Course) []courseView {
	out := make([]courseView, 0, len(cs))
	for _, c := range cs {
		out = append(out, renderCourse(c))
	}
	return out
}

type classView struct {
	ID                 string   `json:"_id"`
	CourseID           string   `json:"course_id"`
	CourseName         string   `json:"course_name"`
	Instructor         string   `json:"instructor"`
	Schedule           string   `json:"schedule"`
	DurationMinutes    int      `json:"duration_minutes"`
	Capacity           int      `json:"capacity"`
	EnrolledCount      int      `json:"enrolled_count"`
	Room               string   `json:"room,omitempty"`
	EquipmentNeeded    []string `json:"equipment_needed"`
	IsCancelled        bool     `json:"is_cancelled"`
	CancellationReason string   `json:"cancellation_reason,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

func renderClass(c model.Class) classView {
	equipment := c.EquipmentNeeded
	if equipment == nil {
		equipment = []string{}
	}
	return classView{
		ID:                 FormatID(c.ID),
		CourseID:           FormatID(c.CourseID),
		CourseName:         c.CourseName,
		Instructor:         c.Instructor,
		Schedule:           FormatTime(c.Schedule),
		DurationMinutes:    c.DurationMinutes,
		Capacity:           c.Capacity,
		EnrolledCount:      c.EnrolledCount,
		Room:               c.Room,
		EquipmentNeeded:    equipment,
		IsCancelled:        c.IsCancelled,
		CancellationReason: c.CancellationReason,
		Notes:              c.Notes,
	}
}

func renderClasses(cs []model.Class) []classView {
	out := make([]classView, 0, len(cs))
	for _, c := range cs {
		out = append(out, renderClass(c))
	}
	return out
}

type attendanceView struct {
	ID             string `json:"_id"`
	ClassID        string `json:"class_id"`
	ClientID       string `json:"client_id"`
	Date           string `json:"date"`
	Status         string `json:"status"`
	CheckedInTime  string `json:"checked_in_time,omitempty"`
	CheckedOutTime string `json:"checked_out_time,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func renderAttendance(as []model.Attendance) []attendanceView {
	out := make([]attendanceView, 0, len(as))
	for _, a := range as {
		out = append(out, attendanceView{
			ID:             FormatID(a.ID),
			ClassID:        FormatID(a.ClassID),
			ClientID:       FormatID(a.ClientID),
			Date:           FormatTime(a.Date),
			Status:         a.Status,
			CheckedInTime:  FormatTimePtr(a.CheckedInTime),
			CheckedOutTime: FormatTimePtr(a.CheckedOutTime),
			Notes:          a.Notes,
		})
	}
	return out
}
