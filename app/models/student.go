package models

import "time"

type Student struct {
	ID           string     `json:"id" db:"id"`
	StudentNo    string     `json:"student_no" db:"student_no" validate:"required"`
	FirstName    string     `json:"first_name" db:"first_name" validate:"required"`
	LastName     string     `json:"last_name" db:"last_name" validate:"required"`
	Email        string     `json:"email" db:"email" validate:"required,email"`
	CourseCode   string     `json:"course_code" db:"course_code" validate:"required"`
	YearLevel    int        `json:"year_level" db:"year_level" validate:"required,min=1,max=6"`
	SectionBlock string     `json:"section_block,omitempty" db:"section_block"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}
