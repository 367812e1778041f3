package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
)

// PaymentRepo manages persistence for the payments collection.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

const paymentColumns = `id, order_id, amount, payment_date, method, status, transaction_id,
	gateway_response, notes`

// Create inserts a payment and returns its ID. Payments are only written
// after a successful gateway capture, so Status is normally "completed".
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO payments (order_id, amount, payment_date, method, status, transaction_id,
			gateway_response, notes)
		 VALUES (?,?,?,?,?,?,?,?)`,
		p.OrderID, p.Amount, p.PaymentDate, p.Method, p.Status,
		nullStr(p.TransactionID), nullStr(p.GatewayResponse), nullStr(p.Notes))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = uint64(id)
	return p.ID, nil
}

// List returns payments newest first, optionally filtered by order and
// status.
func (r *PaymentRepo) List(ctx context.Context, orderID uint64, status string, limit int) ([]model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []any{}
	if orderID != 0 {
		q += ` AND order_id=?`
		args = append(args, orderID)
	}
	if status != "" {
		q += ` AND status=?`
		args = append(args, status)
	}
	q += ` ORDER BY payment_date DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SumCompletedSince totals completed payments dated in the window. Returns
// 0 for an empty window.
func (r *PaymentRepo) SumCompletedSince(ctx context.Context, since time.Time) (float64, error) {
	var total sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM payments WHERE status=? AND payment_date >= ?`,
		model.PaymentCompleted, since).Scan(&total)
	return total.Float64, err
}

// ServiceRevenue is one bucket of completed-payment revenue grouped by the
// service type of the referenced order.
type ServiceRevenue struct {
	ServiceType  string  `json:"service_type"`
	TotalRevenue float64 `json:"total_revenue"`
	OrderCount   int     `json:"order_count"`
}

// RevenueByServiceType joins completed payments in the window onto their
// orders and groups revenue by service type.
func (r *PaymentRepo) RevenueByServiceType(ctx context.Context, since time.Time) ([]ServiceRevenue, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT o.service_type, SUM(p.amount), COUNT(*)
		 FROM payments p
		 JOIN orders o ON o.id = p.order_id
		 WHERE p.status=? AND p.payment_date >= ?
		 GROUP BY o.service_type`,
		model.PaymentCompleted, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ServiceRevenue
	for rows.Next() {
		var sr ServiceRevenue
		if err := rows.Scan(&sr.ServiceType, &sr.TotalRevenue, &sr.OrderCount); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func scanPayment(row rowScanner) (model.Payment, error) {
	var (
		p        model.Payment
		txnID    sql.NullString
		response sql.NullString
		notes    sql.NullString
	)
	err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.PaymentDate, &p.Method, &p.Status,
		&txnID, &response, &notes)
	if err != nil {
		return p, err
	}
	p.TransactionID = txnID.String
	p.GatewayResponse = response.String
	p.Notes = notes.String
	return p, nil
}
