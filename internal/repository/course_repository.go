package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/KrishKoria/Qest/internal/model"
)

// CourseRepo manages persistence for the courses collection.
type CourseRepo struct{ DB *sql.DB }

func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{DB: db} }

const courseColumns = `id, name, instructor, description, duration_weeks, capacity,
	enrollment_count, completion_rate, price, category, difficulty_level, prerequisites,
	is_active, created_date`

// Create inserts a course and returns its ID.
func (r *CourseRepo) Create(ctx context.Context, c *model.Course) (uint64, error) {
	prereq, err := json.Marshal(c.Prerequisites)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO courses (name, instructor, description, duration_weeks, capacity,
			enrollment_count, completion_rate, price, category, difficulty_level, prerequisites,
			is_active, created_date)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.Name, c.Instructor, c.Description, c.DurationWeeks, c.Capacity,
		c.EnrollmentCount, c.CompletionRate, c.Price, c.Category, c.DifficultyLevel, prereq,
		c.IsActive, c.CreatedDate)
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

// GetByID fetches a single course.
func (r *CourseRepo) GetByID(ctx context.Context, id uint64) (model.Course, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id=? LIMIT 1`, id)
	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return c, ErrServiceNotFound
	}
	return c, err
}

// FindByName resolves the first course whose name contains the given term,
// case-insensitively. Order creation uses this to map loose service names
// onto catalog entries.
func (r *CourseRepo) FindByName(ctx context.Context, name string) (model.Course, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE name LIKE ? LIMIT 1`, "%"+name+"%")
	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return c, ErrServiceNotFound
	}
	return c, err
}

// List returns courses with optional instructor substring and active-only
// filters.
func (r *CourseRepo) List(ctx context.Context, instructor string, activeOnly bool, limit, skip int) ([]model.Course, error) {
	q := `SELECT ` + courseColumns + ` FROM courses WHERE 1=1`
	args := []any{}
	if instructor != "" {
		q += ` AND instructor LIKE ?`
		args = append(args, "%"+instructor+"%")
	}
	if activeOnly {
		q += ` AND is_active=1`
	}
	q += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, limit, skip)
	return r.queryCourses(ctx, q, args...)
}

// TopByEnrollment returns active courses ordered by enrollment count
// descending.
func (r *CourseRepo) TopByEnrollment(ctx context.Context, limit int) ([]model.Course, error) {
	return r.queryCourses(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE is_active=1
		 ORDER BY enrollment_count DESC LIMIT ?`, limit)
}

// CompletionStats aggregates completion rates over active courses: the
// mean, the count at or above the given threshold, and the total.
func (r *CourseRepo) CompletionStats(ctx context.Context, threshold float64) (avg float64, above int, total int, err error) {
	var (
		mean   sql.NullFloat64
		aboveN sql.NullInt64
	)
	err = r.DB.QueryRowContext(ctx,
		`SELECT AVG(completion_rate),
		        SUM(CASE WHEN completion_rate >= ? THEN 1 ELSE 0 END),
		        COUNT(*)
		 FROM courses WHERE is_active=1`, threshold).Scan(&mean, &aboveN, &total)
	return mean.Float64, int(aboveN.Int64), total, err
}

// IncrementEnrollment bumps the enrollment counter by one.
func (r *CourseRepo) IncrementEnrollment(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE courses SET enrollment_count = enrollment_count + 1 WHERE id=?`, id)
	return err
}

// CountActive counts active courses.
func (r *CourseRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses WHERE is_active=1`).Scan(&n)
	return n, err
}

func (r *CourseRepo) queryCourses(ctx context.Context, q string, args ...any) ([]model.Course, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCourse(row rowScanner) (model.Course, error) {
	var (
		c      model.Course
		prereq []byte
	)
	err := row.Scan(&c.ID, &c.Name, &c.Instructor, &c.Description, &c.DurationWeeks, &c.Capacity,
		&c.EnrollmentCount, &c.CompletionRate, &c.Price, &c.Category, &c.DifficultyLevel, &prereq,
		&c.IsActive, &c.CreatedDate)
	if err != nil {
		return c, err
	}
	if len(prereq) > 0 {
		if err := json.Unmarshal(prereq, &c.Prerequisites); err != nil {
			return c, err
		}
	}
	return c, nil
}
