package model

import "time"

// Class is a single scheduled session of a Course. Cancelled classes stay
// in the collection but are excluded from default listings.
type Class struct {
	ID                 uint64    // primary key
	CourseID           uint64    // ref Course
	CourseName         string    // denormalized course name
	Instructor         string    // session instructor
	Schedule           time.Time // session start
	DurationMinutes    int       // > 0
	Capacity           int       // > 0
	EnrolledCount      int       // >= 0
	Room               string    // optional
	EquipmentNeeded    []string  // optional equipment list
	IsCancelled        bool      // excluded from listings when true
	CancellationReason string    // set when IsCancelled
	Notes              string    // optional free text
}
