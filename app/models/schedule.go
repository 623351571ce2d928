package models

import (
	"time"
)

// ScheduleEntry is one scheduled class meeting for a section-subject pairing.
// Times are same-day wall-clock values in zero-padded "HH:MM" form, so plain
// string comparison orders them correctly.
type ScheduleEntry struct {
	ID           string     `json:"id" db:"id"`
	EntryKey     string     `json:"entry_key" db:"entry_key"`
	SubjectCode  string     `json:"subject_code" db:"subject_code" validate:"required"`
	SubjectTitle string     `json:"subject_title" db:"subject_title" validate:"required"`
	CourseCode   string     `json:"course_code" db:"course_code" validate:"required"`
	YearLevel    int        `json:"year_level" db:"year_level" validate:"required,min=1,max=6"`
	SectionName  string     `json:"section_name" db:"section_name" validate:"required"`
	TeacherID    string     `json:"teacher_id" db:"teacher_id" validate:"required,uuid"`
	TeacherName  string     `json:"teacher_name" db:"teacher_name"`
	Day          DayOfWeek  `json:"day" db:"day" validate:"required"`
	StartTime    string     `json:"start_time" db:"start_time" validate:"required"`
	EndTime      string     `json:"end_time" db:"end_time" validate:"required"`
	RoomOrLink   string     `json:"room_or_link,omitempty" db:"room_or_link"`
	MaxCapacity  int        `json:"max_capacity" db:"max_capacity" validate:"min=0"`
	EnrolledCount int       `json:"enrolled_count" db:"enrolled_count"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Key returns the composite identifier the entry is stored under:
// {courseCode}-{yearLevel}-{sectionBlock}-{subjectCode}. SectionName already
// carries the course-year-block triple, so the key is section plus subject.
func (e *ScheduleEntry) Key() string {
	return e.SectionName + "-" + e.SubjectCode
}

// ConflictResult reports the outcome of a schedule conflict check.
// Type is ConflictNone when the proposal is clear; otherwise With holds the
// first colliding entry.
type ConflictResult struct {
	Type ConflictType   `json:"type"`
	With *ScheduleEntry `json:"with,omitempty"`
}

// SectionChoice is one chosen section-subject pairing inside a pending
// enrollment. A skipped subject is simply absent from the choice list.
type SectionChoice struct {
	EntryKey    string `json:"entry_key" db:"entry_key" validate:"required"`
	SubjectCode string `json:"subject_code" db:"subject_code"`
	SectionName string `json:"section_name" db:"section_name"`
}
