package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema defines the six record collections. The core never deletes rows;
// lifecycle is expressed through status columns. Two uniqueness constraints
// are enforced here at the storage layer because the duplicate checks in the
// service layer are not transactionally coupled with the inserts:
// clients.email and the (class_id, client_id) pair on attendance.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		enrolled_services TEXT NOT NULL,
		registration_date DATETIME NOT NULL,
		birthday DATETIME NULL,
		last_activity DATETIME NULL,
		address VARCHAR(255) NULL,
		emergency_contact TEXT NULL,
		notes TEXT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_clients_email (email),
		KEY idx_clients_phone (phone),
		KEY idx_clients_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		client_id BIGINT UNSIGNED NOT NULL,
		service_type VARCHAR(16) NOT NULL,
		service_id BIGINT UNSIGNED NOT NULL,
		service_name VARCHAR(100) NOT NULL,
		amount DOUBLE NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		created_date DATETIME NOT NULL,
		due_date DATETIME NULL,
		paid_date DATETIME NULL,
		discount_applied DOUBLE NOT NULL DEFAULT 0,
		tax_amount DOUBLE NOT NULL DEFAULT 0,
		notes TEXT NULL,
		PRIMARY KEY (id),
		KEY idx_orders_client (client_id),
		KEY idx_orders_status (status),
		KEY idx_orders_created (created_date),
		KEY idx_orders_service (service_type, service_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		order_id BIGINT UNSIGNED NOT NULL,
		amount DOUBLE NOT NULL,
		payment_date DATETIME NOT NULL,
		method VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		transaction_id VARCHAR(64) NULL,
		gateway_response TEXT NULL,
		notes TEXT NULL,
		PRIMARY KEY (id),
		KEY idx_payments_order (order_id),
		KEY idx_payments_status (status),
		KEY idx_payments_date (payment_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS courses (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(100) NOT NULL,
		instructor VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		duration_weeks INT NOT NULL,
		capacity INT NOT NULL,
		enrollment_count INT NOT NULL DEFAULT 0,
		completion_rate DOUBLE NOT NULL DEFAULT 0,
		price DOUBLE NOT NULL,
		category VARCHAR(50) NOT NULL,
		difficulty_level VARCHAR(20) NOT NULL,
		prerequisites TEXT NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_date DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_courses_instructor (instructor),
		KEY idx_courses_category (category),
		KEY idx_courses_active (is_active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS classes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		course_id BIGINT UNSIGNED NOT NULL,
		course_name VARCHAR(100) NOT NULL,
		instructor VARCHAR(100) NOT NULL,
		schedule DATETIME NOT NULL,
		duration_minutes INT NOT NULL,
		capacity INT NOT NULL,
		enrolled_count INT NOT NULL DEFAULT 0,
		room VARCHAR(50) NULL,
		equipment_needed TEXT NOT NULL,
		is_cancelled TINYINT(1) NOT NULL DEFAULT 0,
		cancellation_reason VARCHAR(255) NULL,
		notes TEXT NULL,
		PRIMARY KEY (id),
		KEY idx_classes_course (course_id),
		KEY idx_classes_schedule (schedule),
		KEY idx_classes_cancelled (is_cancelled)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		class_id BIGINT UNSIGNED NOT NULL,
		client_id BIGINT UNSIGNED NOT NULL,
		date DATETIME NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'present',
		checked_in_time DATETIME NULL,
		checked_out_time DATETIME NULL,
		notes TEXT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_attendance_class_client (class_id, client_id),
		KEY idx_attendance_client (client_id),
		KEY idx_attendance_date (date),
		KEY idx_attendance_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the collection tables when they do not exist yet.
// It is safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
