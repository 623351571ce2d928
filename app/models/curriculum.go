package models

import "time"

// CurriculumSubject is one subject offered to a course+year cohort in a
// semester; the set of these rows is the working set enrollment chooses from.
type CurriculumSubject struct {
	ID           string    `json:"id" db:"id"`
	CourseCode   string    `json:"course_code" db:"course_code" validate:"required"`
	YearLevel    int       `json:"year_level" db:"year_level" validate:"required,min=1,max=6"`
	Semester     string    `json:"semester" db:"semester" validate:"required"`
	SubjectCode  string    `json:"subject_code" db:"subject_code" validate:"required"`
	SubjectTitle string    `json:"subject_title" db:"subject_title"`
	Units        int       `json:"units" db:"units" validate:"min=0"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CourseSection holds the list of valid section-block names for a course+year
// (e.g. ["A", "B", "C"] for BSIT year 1). The block list is mutated with
// atomic array ops so concurrent admin edits don't clobber each other.
type CourseSection struct {
	ID            string    `json:"id" db:"id"`
	CourseCode    string    `json:"course_code" db:"course_code" validate:"required"`
	YearLevel     int       `json:"year_level" db:"year_level" validate:"required,min=1,max=6"`
	SectionBlocks []string  `json:"section_blocks" db:"section_blocks"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
