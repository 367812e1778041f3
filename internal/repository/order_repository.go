package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
)

// OrderRepo manages persistence for the orders collection.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

const orderColumns = `id, client_id, service_type, service_id, service_name, amount, status,
	created_date, due_date, paid_date, discount_applied, tax_amount, notes`

// Create inserts an order and returns its ID.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO orders (client_id, service_type, service_id, service_name, amount, status,
			created_date, due_date, paid_date, discount_applied, tax_amount, notes)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ClientID, o.ServiceType, o.ServiceID, o.ServiceName, o.Amount, o.Status,
		o.CreatedDate, o.DueDate, o.PaidDate, o.DiscountApplied, o.TaxAmount, nullStr(o.Notes))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	o.ID = uint64(id)
	return o.ID, nil
}

// GetByID fetches a single order.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=? LIMIT 1`, id)
	return scanOrder(row)
}

// List returns orders newest first, optionally filtered by client and
// status.
func (r *OrderRepo) List(ctx context.Context, clientID uint64, status string, limit, skip int) ([]model.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	if clientID != 0 {
		q += ` AND client_id=?`
		args = append(args, clientID)
	}
	if status != "" {
		q += ` AND status=?`
		args = append(args, status)
	}
	q += ` ORDER BY created_date DESC LIMIT ? OFFSET ?`
	args = append(args, limit, skip)
	return r.queryOrders(ctx, q, args...)
}

// MarkPaid flips the order to paid and stamps the paid date.
func (r *OrderRepo) MarkPaid(ctx context.Context, id uint64, paidAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status=?, paid_date=? WHERE id=?`, model.OrderPaid, paidAt, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SumAmountByStatus totals order amounts in the given status. Used for the
// outstanding (pending) figure, which is deliberately unwindowed.
func (r *OrderRepo) SumAmountByStatus(ctx context.Context, status string) (float64, error) {
	var total sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM orders WHERE status=?`, status).Scan(&total)
	return total.Float64, err
}

// SumPaidCreatedSince totals paid-order amounts created in the window.
func (r *OrderRepo) SumPaidCreatedSince(ctx context.Context, since time.Time) (float64, error) {
	var total sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM orders WHERE status=? AND created_date >= ?`,
		model.OrderPaid, since).Scan(&total)
	return total.Float64, err
}

// Count returns the total number of orders.
func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

// CountByStatus counts orders in the given status.
func (r *OrderRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status=?`, status).Scan(&n)
	return n, err
}

// CountCreatedSince counts orders created in the window.
func (r *OrderRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_date >= ?`, since).Scan(&n)
	return n, err
}

// EnrollmentTrend is one (service type, service name) bucket of the 30-day
// enrollment trend.
type EnrollmentTrend struct {
	ServiceType  string  `json:"service_type"`
	ServiceName  string  `json:"service_name"`
	Enrollments  int     `json:"enrollment_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

// EnrollmentTrends groups paid and pending orders created since the given
// instant by service, most enrollments first.
func (r *OrderRepo) EnrollmentTrends(ctx context.Context, since time.Time) ([]EnrollmentTrend, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT service_type, service_name, COUNT(*), SUM(amount)
		 FROM orders
		 WHERE created_date >= ? AND status IN (?,?)
		 GROUP BY service_type, service_name
		 ORDER BY COUNT(*) DESC`,
		since, model.OrderPaid, model.OrderPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []EnrollmentTrend
	for rows.Next() {
		var t EnrollmentTrend
		if err := rows.Scan(&t.ServiceType, &t.ServiceName, &t.Enrollments, &t.TotalRevenue); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MostOrderedCourse returns the course referenced by the most orders via a
// group-count-sort-limit-1 query. A zero id signals "no course orders".
func (r *OrderRepo) MostOrderedCourse(ctx context.Context) (uint64, int, error) {
	var (
		id  uint64
		cnt int
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT service_id, COUNT(*) FROM orders WHERE service_type=?
		 GROUP BY service_id ORDER BY COUNT(*) DESC LIMIT 1`,
		model.ServiceCourse).Scan(&id, &cnt)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	return id, cnt, err
}

// SumPaidByPaidDateSince totals paid-order amounts whose paid date falls in
// the window. The dashboard revenue snapshot attributes revenue to the
// moment the payment landed rather than order creation.
func (r *OrderRepo) SumPaidByPaidDateSince(ctx context.Context, since time.Time) (float64, error) {
	var total sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM orders WHERE status=? AND paid_date >= ?`,
		model.OrderPaid, since).Scan(&total)
	return total.Float64, err
}

func (r *OrderRepo) queryOrders(ctx context.Context, q string, args ...any) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row rowScanner) (model.Order, error) {
	var (
		o        model.Order
		dueDate  sql.NullTime
		paidDate sql.NullTime
		notes    sql.NullString
	)
	err := row.Scan(&o.ID, &o.ClientID, &o.ServiceType, &o.ServiceID, &o.ServiceName, &o.Amount,
		&o.Status, &o.CreatedDate, &dueDate, &paidDate, &o.DiscountApplied, &o.TaxAmount, &notes)
	if err == sql.ErrNoRows {
		return o, ErrOrderNotFound
	}
	if err != nil {
		return o, err
	}
	if dueDate.Valid {
		t := dueDate.Time
		o.DueDate = &t
	}
	if paidDate.Valid {
		t := paidDate.Time
		o.PaidDate = &t
	}
	o.Notes = notes.String
	return o, nil
}
