package models

import "time"

type User struct {
	ID        string     `json:"id" db:"id" validate:"omitempty,uuid"`
	Email     string     `json:"email" db:"email" validate:"required,email"`
	Password  string     `json:"-" db:"password" validate:"required,min=8"`
	FirstName string     `json:"first_name" db:"first_name" validate:"required"`
	LastName  string     `json:"last_name" db:"last_name" validate:"required"`
	Phone     string     `json:"phone,omitempty" db:"phone"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	Roles     []*Role    `json:"roles,omitempty"`
}

type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
