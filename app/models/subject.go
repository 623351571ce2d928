package models

import "time"

type Subject struct {
	ID        string     `json:"id" db:"id"`
	Code      string     `json:"code" db:"code" validate:"required"`
	Title     string     `json:"title" db:"title" validate:"required"`
	Units     int        `json:"units" db:"units" validate:"min=0"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}
