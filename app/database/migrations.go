package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS subjects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			units INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_no TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			course_code TEXT NOT NULL,
			year_level INT NOT NULL,
			section_block TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS curriculum_subjects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course_code TEXT NOT NULL,
			year_level INT NOT NULL,
			semester TEXT NOT NULL,
			subject_code TEXT NOT NULL,
			subject_title TEXT NOT NULL DEFAULT '',
			units INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (course_code, year_level, semester, subject_code)
		)`,

		`CREATE TABLE IF NOT EXISTS course_sections (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			course_code TEXT NOT NULL,
			year_level INT NOT NULL,
			section_blocks TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (course_code, year_level)
		)`,

		`CREATE TABLE IF NOT EXISTS schedule_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			entry_key TEXT NOT NULL,
			subject_code TEXT NOT NULL,
			subject_title TEXT NOT NULL,
			course_code TEXT NOT NULL,
			year_level INT NOT NULL,
			section_name TEXT NOT NULL,
			teacher_id UUID NOT NULL REFERENCES users(id),
			teacher_name TEXT NOT NULL DEFAULT '',
			day TEXT NOT NULL,
			start_time CHAR(5) NOT NULL,
			end_time CHAR(5) NOT NULL,
			room_or_link TEXT NOT NULL DEFAULT '',
			max_capacity INT NOT NULL DEFAULT 0 CHECK (max_capacity >= 0),
			enrolled_count INT NOT NULL DEFAULT 0 CHECK (enrolled_count >= 0),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			CHECK (start_time < end_time),
			CHECK (enrolled_count <= max_capacity)
		)`,

		// Uniqueness only among live entries: a soft-deleted row keeps its key
		// without blocking the section+subject from being scheduled again.
		// The DROP clears the column-level constraint from older databases.
		`ALTER TABLE schedule_entries DROP CONSTRAINT IF EXISTS schedule_entries_entry_key_key`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_schedule_entries_entry_key
			ON schedule_entries (entry_key) WHERE is_active = true`,

		`CREATE INDEX IF NOT EXISTS idx_schedule_entries_section
			ON schedule_entries (section_name, day) WHERE is_active = true`,

		`CREATE INDEX IF NOT EXISTS idx_schedule_entries_teacher
			ON schedule_entries (teacher_id, day) WHERE is_active = true`,

		`CREATE TABLE IF NOT EXISTS pending_enrollments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			term TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			finalize_token TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, term)
		)`,

		`CREATE TABLE IF NOT EXISTS pending_enrollment_choices (
			enrollment_id UUID NOT NULL REFERENCES pending_enrollments(id) ON DELETE CASCADE,
			entry_key TEXT NOT NULL,
			subject_code TEXT NOT NULL DEFAULT '',
			section_name TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (enrollment_id, entry_key)
		)`,

		`CREATE TABLE IF NOT EXISTS subject_assignments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			term TEXT NOT NULL,
			entry_key TEXT NOT NULL,
			subject_code TEXT NOT NULL,
			subject_title TEXT NOT NULL DEFAULT '',
			section_name TEXT NOT NULL,
			teacher_id UUID,
			teacher_name TEXT NOT NULL DEFAULT '',
			day TEXT NOT NULL DEFAULT '',
			start_time CHAR(5) NOT NULL DEFAULT '00:00',
			end_time CHAR(5) NOT NULL DEFAULT '00:00',
			room_or_link TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, term, entry_key)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func seedRoles(db *sql.DB) error {
	for _, name := range []string{"admin", "registrar", "scheduler", "teacher", "student"} {
		if _, err := db.Exec(
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name,
		); err != nil {
			log.Printf("Failed to seed role %s: %v", name, err)
			return err
		}
	}
	return nil
}
