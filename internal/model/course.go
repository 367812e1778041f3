package model

import "time"

// Course is a multi-week program clients enroll in. EnrollmentCount is
// incremented on every order referencing the course.
type Course struct {
	ID              uint64    // primary key
	Name            string    // program name
	Instructor      string    // lead instructor
	Description     string    // marketing copy
	DurationWeeks   int       // > 0
	Capacity        int       // > 0
	EnrollmentCount int       // >= 0, bumped per order
	CompletionRate  float64   // percentage in [0, 100]
	Price           float64   // > 0
	Category        string    // e.g. "Yoga", "Pilates"
	DifficultyLevel string    // beginner | intermediate | advanced
	Prerequisites   []string  // names of required prior courses
	IsActive        bool      // inactive courses are hidden from default listings
	CreatedDate     time.Time // insertion time
}
