package models

type Role struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Role names seeded by migrations.
const (
	RoleAdmin     = "admin"
	RoleRegistrar = "registrar"
	RoleScheduler = "scheduler"
	RoleTeacher   = "teacher"
	RoleStudent   = "student"
)
