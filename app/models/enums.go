package models

import "strings"

// DayOfWeek defines the days of the week for schedules.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// ParseDay normalizes a day string to a DayOfWeek value.
// Returns false when the input is not one of the seven days.
func ParseDay(s string) (DayOfWeek, bool) {
	day := DayOfWeek(strings.ToLower(strings.TrimSpace(s)))
	switch day {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return day, true
	}
	return "", false
}

// EnrollmentStatus defines the lifecycle states of a pending enrollment.
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentFinalized EnrollmentStatus = "finalized"
	EnrollmentRejected  EnrollmentStatus = "rejected"
	EnrollmentExpired   EnrollmentStatus = "expired"
)

// ConflictType classifies the outcome of a schedule conflict check.
type ConflictType string

const (
	ConflictNone    ConflictType = "none"
	ConflictSection ConflictType = "section_overlap"
	ConflictTeacher ConflictType = "teacher_overlap"
)
