package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
)

// ClassRepo manages persistence for the classes collection.
type ClassRepo struct{ DB *sql.DB }

func NewClassRepo(db *sql.DB) *ClassRepo { return &ClassRepo{DB: db} }

const classColumns = `id, course_id, course_name, instructor, schedule, duration_minutes,
	capacity, enrolled_count, room, equipment_needed, is_cancelled, cancellation_reason, notes`

// Create inserts a class and returns its ID.
func (r *ClassRepo) Create(ctx context.Context, c *model.Class) (uint64, error) {
	equipment, err := json.Marshal(c.EquipmentNeeded)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO classes (course_id, course_name, instructor, schedule, duration_minutes,
			capacity, enrolled_count, room, equipment_needed, is_cancelled, cancellation_reason, notes)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.CourseID, c.CourseName, c.Instructor, c.Schedule, c.DurationMinutes,
		c.Capacity, c.EnrolledCount, nullStr(c.Room), equipment, c.IsCancelled,
		nullStr(c.CancellationReason), nullStr(c.Notes))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	c.ID = uint64(id)
	return c.ID, nil
}

// GetByID fetches a single class.
func (r *ClassRepo) GetByID(ctx context.Context, id uint64) (model.Class, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+classColumns+` FROM classes WHERE id=? LIMIT 1`, id)
	c, err := scanClass(row)
	if err == sql.ErrNoRows {
		return c, ErrServiceNotFound
	}
	return c, err
}

// FindByName resolves the first class whose course name contains the given
// term, case-insensitively.
func (r *ClassRepo) FindByName(ctx context.Context, name string) (model.Class, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+classColumns+` FROM classes WHERE course_name LIKE ? LIMIT 1`, "%"+name+"%")
	c, err := scanClass(row)
	if err == sql.ErrNoRows {
		return c, ErrServiceNotFound
	}
	return c, err
}

// IDsByCourseName returns the ids of classes whose course name contains the
// given term. The attendance analytics filter resolves classes this way.
func (r *ClassRepo) IDsByCourseName(ctx context.Context, name string) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id FROM classes WHERE course_name LIKE ?`, "%"+name+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List returns non-cancelled classes sorted by schedule ascending, with
// optional course, instructor and date-range filters.
func (r *ClassRepo) List(ctx context.Context, courseID uint64, instructor string, from, to *time.Time, limit, skip int) ([]model.Class, error) {
	q := `SELECT ` + classColumns + ` FROM classes WHERE is_cancelled=0`
	args := []any{}
	if courseID != 0 {
		q += ` AND course_id=?`
		args = append(args, courseID)
	}
	if instructor != "" {
		q += ` AND instructor LIKE ?`
		args = append(args, "%"+instructor+"%")
	}
	if from != nil {
		q += ` AND schedule >= ?`
		args = append(args, *from)
	}
	if to != nil {
		q += ` AND schedule <= ?`
		args = append(args, *to)
	}
	q += ` ORDER BY schedule ASC LIMIT ? OFFSET ?`
	args = append(args, limit, skip)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// IncrementEnrollment bumps the enrolled counter by one.
func (r *ClassRepo) IncrementEnrollment(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE classes SET enrolled_count = enrolled_count + 1 WHERE id=?`, id)
	return err
}

// CountUpcoming counts non-cancelled classes scheduled at or after now.
func (r *ClassRepo) CountUpcoming(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM classes WHERE is_cancelled=0 AND schedule >= ?`, now).Scan(&n)
	return n, err
}

func scanClass(row rowScanner) (model.Class, error) {
	var (
		c         model.Class
		room      sql.NullString
		equipment []byte
		reason    sql.NullString
		notes     sql.NullString
	)
	err := row.Scan(&c.ID, &c.CourseID, &c.CourseName, &c.Instructor, &c.Schedule,
		&c.DurationMinutes, &c.Capacity, &c.EnrolledCount, &room, &equipment,
		&c.IsCancelled, &reason, &notes)
	if err != nil {
		return c, err
	}
	c.Room = room.String
	c.CancellationReason = reason.String
	c.Notes = notes.String
	if len(equipment) > 0 {
		if err := json.Unmarshal(equipment, &c.EquipmentNeeded); err != nil {
			return c, err
		}
	}
	return c, nil
}
