package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/KrishKoria/Qest/internal/model"
)

// AttendanceRepo manages persistence for the attendance collection.
type AttendanceRepo struct{ DB *sql.DB }

func NewAttendanceRepo(db *sql.DB) *AttendanceRepo { return &AttendanceRepo{DB: db} }

const attendanceColumns = `id, class_id, client_id, date, status, checked_in_time,
	checked_out_time, notes`

// Create inserts an attendance record. The unique (class_id, client_id)
// key maps duplicate inserts to ErrDuplicateAttendance.
func (r *AttendanceRepo) Create(ctx context.Context, a *model.Attendance) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO attendance (class_id, client_id, date, status, checked_in_time,
			checked_out_time, notes)
		 VALUES (?,?,?,?,?,?,?)`,
		a.ClassID, a.ClientID, a.Date, a.Status, a.CheckedInTime, a.CheckedOutTime, nullStr(a.Notes))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateAttendance
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID = uint64(id)
	return a.ID, nil
}

// List returns attendance records newest first, with optional class, client
// and status filters.
func (r *AttendanceRepo) List(ctx context.Context, classID, clientID uint64, status string, limit int) ([]model.Attendance, error) {
	q := `SELECT ` + attendanceColumns + ` FROM attendance WHERE 1=1`
	args := []any{}
	if classID != 0 {
		q += ` AND class_id=?`
		args = append(args, classID)
	}
	if clientID != 0 {
		q += ` AND client_id=?`
		args = append(args, clientID)
	}
	if status != "" {
		q += ` AND status=?`
		args = append(args, status)
	}
	q += ` ORDER BY date DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Attendance
	for rows.Next() {
		var (
			a       model.Attendance
			inTime  sql.NullTime
			outTime sql.NullTime
			notes   sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.ClassID, &a.ClientID, &a.Date, &a.Status,
			&inTime, &outTime, &notes); err != nil {
			return nil, err
		}
		if inTime.Valid {
			t := inTime.Time
			a.CheckedInTime = &t
		}
		if outTime.Valid {
			t := outTime.Time
			a.CheckedOutTime = &t
		}
		a.Notes = notes.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// ClassStats is the per-class attendance aggregate produced by joining
// attendance records onto their class.
type ClassStats struct {
	ClassID         uint64
	CourseName      string
	Instructor      string
	Schedule        time.Time
	TotalRegistered int
	PresentCount    int
	LateCount       int
	AbsentCount     int
}

// StatsByClass groups attendance by class and joins class metadata, most
// recent schedule first. When classIDs is non-empty the aggregation is
// restricted to those classes.
func (r *AttendanceRepo) StatsByClass(ctx context.Context, classIDs []uint64) ([]ClassStats, error) {
	q := `SELECT a.class_id, c.course_name, c.instructor, c.schedule, c.enrolled_count,
		 SUM(CASE WHEN a.status=? THEN 1 ELSE 0 END),
		 SUM(CASE WHEN a.status=? THEN 1 ELSE 0 END),
		 SUM(CASE WHEN a.status=? THEN 1 ELSE 0 END)
		 FROM attendance a
		 JOIN classes c ON c.id = a.class_id`
	args := []any{model.AttendancePresent, model.AttendanceLate, model.AttendanceAbsent}
	if len(classIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(classIDs)), ",")
		q += ` WHERE a.class_id IN (` + placeholders + `)`
		for _, id := range classIDs {
			args = append(args, id)
		}
	}
	q += ` GROUP BY a.class_id, c.course_name, c.instructor, c.schedule, c.enrolled_count
		 ORDER BY c.schedule DESC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ClassStats
	for rows.Next() {
		var s ClassStats
		if err := rows.Scan(&s.ClassID, &s.CourseName, &s.Instructor, &s.Schedule,
			&s.TotalRegistered, &s.PresentCount, &s.LateCount, &s.AbsentCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
