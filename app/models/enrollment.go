package models

import "time"

// PendingEnrollment is a student's submitted set of section choices for one
// term, waiting for the registrar to finalize or reject it.
type PendingEnrollment struct {
	ID            string           `json:"id" db:"id"`
	StudentID     string           `json:"student_id" db:"student_id" validate:"required,uuid"`
	Term          string           `json:"term" db:"term" validate:"required"`
	Status        EnrollmentStatus `json:"status" db:"status"`
	FinalizeToken string           `json:"finalize_token,omitempty" db:"finalize_token"`
	Choices       []SectionChoice  `json:"choices"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// SubjectAssignment is the persisted per-student record produced by a
// successful finalization. Subject and schedule fields are denormalized so
// the student's load remains readable after later schedule edits.
type SubjectAssignment struct {
	ID           string    `json:"id" db:"id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	Term         string    `json:"term" db:"term"`
	EntryKey     string    `json:"entry_key" db:"entry_key"`
	SubjectCode  string    `json:"subject_code" db:"subject_code"`
	SubjectTitle string    `json:"subject_title" db:"subject_title"`
	SectionName  string    `json:"section_name" db:"section_name"`
	TeacherID    string    `json:"teacher_id" db:"teacher_id"`
	TeacherName  string    `json:"teacher_name" db:"teacher_name"`
	Day          DayOfWeek `json:"day" db:"day"`
	StartTime    string    `json:"start_time" db:"start_time"`
	EndTime      string    `json:"end_time" db:"end_time"`
	RoomOrLink   string    `json:"room_or_link,omitempty" db:"room_or_link"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
