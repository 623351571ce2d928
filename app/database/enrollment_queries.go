package database

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"

	"sanisidro-college/app/models"
)

// ErrEnrollmentNotFound is returned when the referenced pending enrollment
// does not exist.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// ErrEnrollmentNotPending is returned when finalize or reject is attempted on
// an enrollment that has already left the pending state.
var ErrEnrollmentNotPending = errors.New("enrollment is not pending")

// ErrNoChoices is returned when a pending enrollment carries no section
// choices; finalize requires a non-empty choice set.
var ErrNoChoices = errors.New("enrollment has no section choices")

// ErrUnknownEntry is returned when a choice references a schedule entry that
// does not exist or is no longer active.
var ErrUnknownEntry = errors.New("choice references an unknown schedule entry")

// CapacityExceededError aborts a finalize attempt: the named section has no
// remaining capacity. Nothing is incremented when this is returned.
type CapacityExceededError struct {
	SectionName string
	EntryKey    string
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("section %s is full", e.SectionName)
}

// PartialWriteError reports that the capacity increments committed but the
// follow-up assignment-record batch failed. Re-running finalize with the same
// choice set repairs the records without incrementing again.
type PartialWriteError struct {
	Token string
	Err   error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("assignment records incomplete (finalize token %s): %v", e.Token, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// FinalizeOutcome describes a successful (or repaired) finalization.
type FinalizeOutcome struct {
	Enrollment  *models.PendingEnrollment
	Assignments []*models.SubjectAssignment
	Repaired    bool
}

// FinalizeToken derives the idempotency token for one finalize attempt:
// the same student, term and section set always hash to the same token, so a
// re-run after a partial write can be recognized and must not double-count.
func FinalizeToken(studentID, term string, entryKeys []string) string {
	keys := append([]string(nil), entryKeys...)
	sort.Strings(keys)
	sum := sha256.Sum256([]byte(studentID + "|" + term + "|" + strings.Join(keys, ",")))
	return hex.EncodeToString(sum[:])
}

// CreatePendingEnrollment records a student's chosen section set for a term.
func CreatePendingEnrollment(db *sql.DB, studentID, term string, choices []models.SectionChoice) (*models.PendingEnrollment, error) {
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	enrollment := &models.PendingEnrollment{
		StudentID: studentID,
		Term:      term,
		Status:    models.EnrollmentPending,
		Choices:   choices,
	}

	err = tx.QueryRow(
		`INSERT INTO pending_enrollments (student_id, term, status, created_at, updated_at)
		 VALUES ($1, $2, 'pending', NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		studentID, term,
	).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		return nil, err
	}

	for _, choice := range choices {
		if _, err := tx.Exec(
			`INSERT INTO pending_enrollment_choices (enrollment_id, entry_key, subject_code, section_name)
			 VALUES ($1, $2, $3, $4)`,
			enrollment.ID, choice.EntryKey, choice.SubjectCode, choice.SectionName,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func scanEnrollment(row rowScanner) (*models.PendingEnrollment, error) {
	enrollment := &models.PendingEnrollment{}
	err := row.Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.Term,
		&enrollment.Status, &enrollment.FinalizeToken,
		&enrollment.CreatedAt, &enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// GetEnrollmentByID returns an enrollment with its choices loaded.
func GetEnrollmentByID(db *sql.DB, id string) (*models.PendingEnrollment, error) {
	enrollment, err := scanEnrollment(db.QueryRow(
		`SELECT id, student_id, term, status, finalize_token, created_at, updated_at
		 FROM pending_enrollments WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	choices, err := getEnrollmentChoices(db, id)
	if err != nil {
		return nil, err
	}
	enrollment.Choices = choices
	return enrollment, nil
}

func getEnrollmentChoices(db *sql.DB, enrollmentID string) ([]models.SectionChoice, error) {
	rows, err := db.Query(
		`SELECT entry_key, subject_code, section_name
		 FROM pending_enrollment_choices WHERE enrollment_id = $1 ORDER BY entry_key`,
		enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []models.SectionChoice
	for rows.Next() {
		var choice models.SectionChoice
		if err := rows.Scan(&choice.EntryKey, &choice.SubjectCode, &choice.SectionName); err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}
	return choices, rows.Err()
}

// GetEnrollments lists enrollments, optionally filtered by status.
func GetEnrollments(db *sql.DB, status string) ([]*models.PendingEnrollment, error) {
	query := `SELECT id, student_id, term, status, finalize_token, created_at, updated_at
			  FROM pending_enrollments`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.PendingEnrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, rows.Err()
}

// RejectEnrollment flips a pending enrollment to rejected.
func RejectEnrollment(db *sql.DB, id string) (*models.PendingEnrollment, error) {
	enrollment, err := scanEnrollment(db.QueryRow(
		`UPDATE pending_enrollments SET status = 'rejected', updated_at = NOW()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING id, student_id, term, status, finalize_token, created_at, updated_at`,
		id))
	if err != nil {
		if err == sql.ErrNoRows {
			// Either missing or already decided; look it up to tell which.
			if _, lookupErr := GetEnrollmentByID(db, id); lookupErr == ErrEnrollmentNotFound {
				return nil, ErrEnrollmentNotFound
			}
			return nil, ErrEnrollmentNotPending
		}
		return nil, err
	}
	return enrollment, nil
}

// ExpireStaleEnrollments flips pending enrollments older than the cutoff to
// expired. Called by the background sweeper.
func ExpireStaleEnrollments(db *sql.DB, olderThan time.Duration) (int64, error) {
	res, err := db.Exec(
		`UPDATE pending_enrollments SET status = 'expired', updated_at = NOW()
		 WHERE status = 'pending' AND created_at < $1`,
		time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FinalizeEnrollment admits a student into every chosen section or none.
//
// One transaction locks the enrollment row and every referenced schedule
// entry (FOR UPDATE, ordered by entry_key so concurrent finalizers acquire
// locks in the same order), re-reads the counters under the lock, and either
// increments them all or aborts with CapacityExceededError. Concurrent
// attempts against the same section serialize on the row lock, so
// enrolled_count can never pass max_capacity.
//
// The assignment-record batch runs after commit as a best-effort write; its
// failure surfaces as PartialWriteError. A re-run sees the stored finalize
// token, skips the increments, and only repairs the records.
func FinalizeEnrollment(db *sql.DB, id string) (*FinalizeOutcome, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("finalize transaction: %w", err)
	}
	defer tx.Rollback()

	enrollment, err := scanEnrollment(tx.QueryRow(
		`SELECT id, student_id, term, status, finalize_token, created_at, updated_at
		 FROM pending_enrollments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("finalize transaction: %w", err)
	}

	entryKeys, err := choiceKeysTx(tx, id)
	if err != nil {
		return nil, fmt.Errorf("finalize transaction: %w", err)
	}
	if len(entryKeys) == 0 {
		return nil, ErrNoChoices
	}

	token := FinalizeToken(enrollment.StudentID, enrollment.Term, entryKeys)

	repaired := false
	switch enrollment.Status {
	case models.EnrollmentPending:
		// fall through to the increment path below
	case models.EnrollmentFinalized:
		if enrollment.FinalizeToken != token {
			return nil, ErrEnrollmentNotPending
		}
		// Same choice set already counted: repair the records only.
		repaired = true
	default:
		return nil, ErrEnrollmentNotPending
	}

	entries, err := lockEntriesTx(tx, entryKeys)
	if err != nil {
		return nil, err
	}

	if !repaired {
		for _, entry := range entries {
			if entry.EnrolledCount >= entry.MaxCapacity {
				return nil, &CapacityExceededError{SectionName: entry.SectionName, EntryKey: entry.EntryKey}
			}
		}

		if _, err := tx.Exec(
			`UPDATE schedule_entries
			 SET enrolled_count = enrolled_count + 1, updated_at = NOW()
			 WHERE entry_key = ANY($1)`,
			pq.Array(entryKeys),
		); err != nil {
			return nil, fmt.Errorf("finalize transaction: %w", err)
		}

		if _, err := tx.Exec(
			`UPDATE pending_enrollments
			 SET status = 'finalized', finalize_token = $1, updated_at = NOW()
			 WHERE id = $2`,
			token, id,
		); err != nil {
			return nil, fmt.Errorf("finalize transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("finalize transaction: %w", err)
	}

	enrollment.Status = models.EnrollmentFinalized
	enrollment.FinalizeToken = token

	// Best-effort batch; not atomic with the increments above.
	assignments, err := writeAssignments(db, enrollment, entries)
	if err != nil {
		return nil, &PartialWriteError{Token: token, Err: err}
	}

	return &FinalizeOutcome{Enrollment: enrollment, Assignments: assignments, Repaired: repaired}, nil
}

func choiceKeysTx(tx *sql.Tx, enrollmentID string) ([]string, error) {
	rows, err := tx.Query(
		`SELECT entry_key FROM pending_enrollment_choices WHERE enrollment_id = $1 ORDER BY entry_key`,
		enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// lockEntriesTx acquires row locks on every referenced entry. The ORDER BY
// gives all finalizers the same acquisition order.
func lockEntriesTx(tx *sql.Tx, entryKeys []string) ([]*models.ScheduleEntry, error) {
	rows, err := tx.Query(
		`SELECT `+scheduleEntryColumns+` FROM schedule_entries
		 WHERE entry_key = ANY($1) AND is_active = true
		 ORDER BY entry_key
		 FOR UPDATE`,
		pq.Array(entryKeys))
	if err != nil {
		return nil, fmt.Errorf("finalize transaction: %w", err)
	}
	defer rows.Close()

	var entries []*models.ScheduleEntry
	for rows.Next() {
		entry, err := scanScheduleEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("finalize transaction: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("finalize transaction: %w", err)
	}
	if len(entries) != len(entryKeys) {
		return nil, ErrUnknownEntry
	}
	return entries, nil
}

func writeAssignments(db *sql.DB, enrollment *models.PendingEnrollment, entries []*models.ScheduleEntry) ([]*models.SubjectAssignment, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var assignments []*models.SubjectAssignment
	for _, entry := range entries {
		assignment := &models.SubjectAssignment{
			StudentID:    enrollment.StudentID,
			Term:         enrollment.Term,
			EntryKey:     entry.EntryKey,
			SubjectCode:  entry.SubjectCode,
			SubjectTitle: entry.SubjectTitle,
			SectionName:  entry.SectionName,
			TeacherID:    entry.TeacherID,
			TeacherName:  entry.TeacherName,
			Day:          entry.Day,
			StartTime:    entry.StartTime,
			EndTime:      entry.EndTime,
			RoomOrLink:   entry.RoomOrLink,
		}
		// ON CONFLICT keeps the repair path from duplicating records.
		if _, err := tx.Exec(
			`INSERT INTO subject_assignments
			 (student_id, term, entry_key, subject_code, subject_title, section_name,
			  teacher_id, teacher_name, day, start_time, end_time, room_or_link, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
			 ON CONFLICT (student_id, term, entry_key) DO NOTHING`,
			assignment.StudentID, assignment.Term, assignment.EntryKey,
			assignment.SubjectCode, assignment.SubjectTitle, assignment.SectionName,
			assignment.TeacherID, assignment.TeacherName, assignment.Day,
			assignment.StartTime, assignment.EndTime, assignment.RoomOrLink,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetStudentAssignments returns a student's finalized load for a term.
func GetStudentAssignments(db *sql.DB, studentID, term string) ([]*models.SubjectAssignment, error) {
	rows, err := db.Query(
		`SELECT id, student_id, term, entry_key, subject_code, subject_title, section_name,
				teacher_id, teacher_name, day, start_time, end_time, room_or_link, created_at
		 FROM subject_assignments
		 WHERE student_id = $1 AND term = $2
		 ORDER BY day, start_time`,
		studentID, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.SubjectAssignment
	for rows.Next() {
		assignment := &models.SubjectAssignment{}
		if err := rows.Scan(
			&assignment.ID, &assignment.StudentID, &assignment.Term, &assignment.EntryKey,
			&assignment.SubjectCode, &assignment.SubjectTitle, &assignment.SectionName,
			&assignment.TeacherID, &assignment.TeacherName, &assignment.Day,
			&assignment.StartTime, &assignment.EndTime, &assignment.RoomOrLink,
			&assignment.CreatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}
