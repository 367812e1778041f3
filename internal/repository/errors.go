// Package repository contains the data access layer for the six record
// collections. Each repository wraps a *sql.DB handle, speaks raw SQL and
// returns sentinel errors so higher layers can translate failures into
// structured results instead of propagating raw database faults.
package repository

import (
	"errors"
	"strings"
)

// ErrClientNotFound indicates a client lookup resolved no row.
var ErrClientNotFound = errors.New("client not found")

// ErrOrderNotFound indicates an order lookup resolved no row.
var ErrOrderNotFound = errors.New("order not found")

// ErrServiceNotFound indicates no course or class matched a service lookup.
var ErrServiceNotFound = errors.New("service not found")

// ErrDuplicateClient signals the storage-layer unique key on clients.email
// rejected an insert. The duplicate check and the insert are not a single
// transaction, so concurrent creations rely on this backstop.
var ErrDuplicateClient = errors.New("client already exists")

// ErrDuplicateAttendance signals the unique (class_id, client_id) pair on
// the attendance collection rejected an insert.
var ErrDuplicateAttendance = errors.New("attendance already recorded")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
