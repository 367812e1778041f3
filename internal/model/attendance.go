package model

import "time"

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Attendance links a Client to a Class. At most one record exists per
// (class, client) pair; the storage layer rejects duplicates.
type Attendance struct {
	ID             uint64     // primary key
	ClassID        uint64     // ref Class
	ClientID       uint64     // ref Client
	Date           time.Time  // session date
	Status         string     // present | absent | late | excused
	CheckedInTime  *time.Time // optional
	CheckedOutTime *time.Time // optional
	Notes          string     // optional free text
}
