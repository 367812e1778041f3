package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
)

// ClientRepo manages persistence for the clients collection.
type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

const clientColumns = `id, name, email, phone, status, enrolled_services, registration_date,
	birthday, last_activity, address, emergency_contact, notes`

// Create inserts a client and returns its ID. The unique key on email maps
// duplicate inserts to ErrDuplicateClient.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) (uint64, error) {
	services, err := json.Marshal(c.EnrolledServices)
	if err != nil {
		return 0, err
	}
	var contact []byte
	if c.EmergencyContact != nil {
		if contact, err = json.Marshal(c.EmergencyContact); err != nil {
			return 0, err
		}
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO clients (name, email, phone, status, enrolled_services, registration_date,
			birthday, last_activity, address, emergency_contact, notes)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		c.Name, strings.ToLower(strings.TrimSpace(c.Email)), c.Phone, c.Status, services,
		c.RegistrationDate, c.Birthday, c.LastActivity, nullStr(c.Address), nullBytes(contact), nullStr(c.Notes))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateClient
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	c.ID = uint64(id)
	return c.ID, nil
}

// GetByID fetches a single client.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (model.Client, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=? LIMIT 1`, id)
	return scanClient(row)
}

// GetByEmail fetches a client by normalized email.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (model.Client, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE email=? LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email)))
	return scanClient(row)
}

// FindByEmailOrPhone resolves a client matching either contact attribute.
// Used by the duplicate check on client creation.
func (r *ClientRepo) FindByEmailOrPhone(ctx context.Context, email, phone string) (model.Client, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE email=? OR phone=? LIMIT 1`,
		strings.ToLower(strings.TrimSpace(email)), phone)
	return scanClient(row)
}

// List returns clients, optionally filtered by status, paginated by
// limit/skip.
func (r *ClientRepo) List(ctx context.Context, status string, limit, skip int) ([]model.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM clients`
	args := []any{}
	if status != "" {
		q += ` WHERE status=?`
		args = append(args, status)
	}
	q += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, skip)
	return r.queryClients(ctx, q, args...)
}

// Search performs a case-insensitive substring match across name, email and
// phone, combined with OR.
func (r *ClientRepo) Search(ctx context.Context, term string, limit int) ([]model.Client, error) {
	like := "%" + term + "%"
	return r.queryClients(ctx,
		`SELECT `+clientColumns+` FROM clients
		 WHERE name LIKE ? OR email LIKE ? OR phone LIKE ?
		 ORDER BY id LIMIT ?`, like, like, like, limit)
}

// SetEnrolledServices replaces the client's service list and bumps
// last_activity.
func (r *ClientRepo) SetEnrolledServices(ctx context.Context, id uint64, services []string, at time.Time) error {
	b, err := json.Marshal(services)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE clients SET enrolled_services=?, last_activity=? WHERE id=?`, b, at, id)
	return err
}

// StatusCount is one bucket of the client status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CountByStatus groups the collection by status.
func (r *ClientRepo) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM clients GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Count returns the total number of clients.
func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}

// CountByStatusValue counts clients with the given status.
func (r *ClientRepo) CountByStatusValue(ctx context.Context, status string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients WHERE status=?`, status).Scan(&n)
	return n, err
}

// CountRegisteredSince counts clients whose registration date is on or
// after the given instant.
func (r *ClientRepo) CountRegisteredSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE registration_date >= ?`, since).Scan(&n)
	return n, err
}

// BirthdaysInMonth returns clients whose birthday falls in the given
// calendar month, regardless of year.
func (r *ClientRepo) BirthdaysInMonth(ctx context.Context, month time.Month) ([]model.Client, error) {
	return r.queryClients(ctx,
		`SELECT `+clientColumns+` FROM clients
		 WHERE birthday IS NOT NULL AND MONTH(birthday)=? ORDER BY DAY(birthday)`, int(month))
}

func (r *ClientRepo) queryClients(ctx context.Context, q string, args ...any) ([]model.Client, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanClient(row rowScanner) (model.Client, error) {
	var (
		c        model.Client
		services []byte
		birthday sql.NullTime
		activity sql.NullTime
		address  sql.NullString
		contact  []byte
		notes    sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &services, &c.RegistrationDate,
		&birthday, &activity, &address, &contact, &notes)
	if err == sql.ErrNoRows {
		return c, ErrClientNotFound
	}
	if err != nil {
		return c, err
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &c.EnrolledServices); err != nil {
			return c, err
		}
	}
	if birthday.Valid {
		t := birthday.Time
		c.Birthday = &t
	}
	if activity.Valid {
		t := activity.Time
		c.LastActivity = &t
	}
	c.Address = address.String
	c.Notes = notes.String
	if len(contact) > 0 {
		if err := json.Unmarshal(contact, &c.EmergencyContact); err != nil {
			return c, err
		}
	}
	return c, nil
}

// nullStr maps an empty string to NULL so optional text columns stay NULL
// instead of storing empty strings.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
