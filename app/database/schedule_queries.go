package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sanisidro-college/app/models"
)

// ErrDuplicateEntry is returned when a schedule entry with the same composite
// key already exists.
var ErrDuplicateEntry = errors.New("schedule entry already exists for this section and subject")

// ErrCapacityBelowEnrolled is returned when an update would set max_capacity
// below the seats already taken.
var ErrCapacityBelowEnrolled = errors.New("max capacity cannot be below the current enrolled count")

// isUniqueViolation reports whether err is Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// ScheduleConflictError is returned when a persisting write would violate the
// section-overlap or teacher-overlap invariant.
type ScheduleConflictError struct {
	Result models.ConflictResult
}

func (e *ScheduleConflictError) Error() string {
	if e.Result.With == nil {
		return string(e.Result.Type)
	}
	return fmt.Sprintf("%s with %s (%s %s-%s)",
		e.Result.Type, e.Result.With.EntryKey, e.Result.With.Day,
		e.Result.With.StartTime, e.Result.With.EndTime)
}

// ScheduleFilters represents filtering options for schedule entries
type ScheduleFilters struct {
	CourseCode  string
	YearLevel   int
	SectionName string
	TeacherID   string
	Day         string
}

const scheduleEntryColumns = `id, entry_key, subject_code, subject_title, course_code, year_level,
	section_name, teacher_id, teacher_name, day, start_time, end_time, room_or_link,
	max_capacity, enrolled_count, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScheduleEntry(row rowScanner) (*models.ScheduleEntry, error) {
	entry := &models.ScheduleEntry{}
	err := row.Scan(
		&entry.ID, &entry.EntryKey, &entry.SubjectCode, &entry.SubjectTitle,
		&entry.CourseCode, &entry.YearLevel, &entry.SectionName,
		&entry.TeacherID, &entry.TeacherName, &entry.Day,
		&entry.StartTime, &entry.EndTime, &entry.RoomOrLink,
		&entry.MaxCapacity, &entry.EnrolledCount, &entry.IsActive,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func queryScheduleEntries(db *sql.DB, query string, args ...interface{}) ([]*models.ScheduleEntry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ScheduleEntry
	for rows.Next() {
		entry, err := scanScheduleEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetScheduleEntries returns active entries matching the filters, ordered for
// the timetable grid.
func GetScheduleEntries(db *sql.DB, filters ScheduleFilters) ([]*models.ScheduleEntry, error) {
	query := `SELECT ` + scheduleEntryColumns + ` FROM schedule_entries WHERE is_active = true`
	args := []interface{}{}
	idx := 1

	if filters.CourseCode != "" {
		query += fmt.Sprintf(" AND course_code = $%d", idx)
		args = append(args, filters.CourseCode)
		idx++
	}
	if filters.YearLevel > 0 {
		query += fmt.Sprintf(" AND year_level = $%d", idx)
		args = append(args, filters.YearLevel)
		idx++
	}
	if filters.SectionName != "" {
		query += fmt.Sprintf(" AND section_name = $%d", idx)
		args = append(args, filters.SectionName)
		idx++
	}
	if filters.TeacherID != "" {
		query += fmt.Sprintf(" AND teacher_id = $%d", idx)
		args = append(args, filters.TeacherID)
		idx++
	}
	if filters.Day != "" {
		query += fmt.Sprintf(" AND day = $%d", idx)
		args = append(args, filters.Day)
		idx++
	}

	query += " ORDER BY day, start_time, section_name"
	return queryScheduleEntries(db, query, args...)
}

func GetScheduleEntryByID(db *sql.DB, id string) (*models.ScheduleEntry, error) {
	query := `SELECT ` + scheduleEntryColumns + ` FROM schedule_entries WHERE id = $1 AND is_active = true`
	return scanScheduleEntry(db.QueryRow(query, id))
}

func GetScheduleEntryByKey(db *sql.DB, entryKey string) (*models.ScheduleEntry, error) {
	query := `SELECT ` + scheduleEntryColumns + ` FROM schedule_entries WHERE entry_key = $1 AND is_active = true`
	return scanScheduleEntry(db.QueryRow(query, entryKey))
}

// GetSectionScope returns all active entries for a section, the working set
// for the section-overlap check.
func GetSectionScope(db *sql.DB, sectionName string) ([]*models.ScheduleEntry, error) {
	query := `SELECT ` + scheduleEntryColumns + ` FROM schedule_entries
			  WHERE section_name = $1 AND is_active = true
			  ORDER BY day, start_time, entry_key`
	return queryScheduleEntries(db, query, sectionName)
}

// GetTeacherScope returns all active entries for a teacher across every
// section, the working set for the double-booking check.
func GetTeacherScope(db *sql.DB, teacherID string) ([]*models.ScheduleEntry, error) {
	query := `SELECT ` + scheduleEntryColumns + ` FROM schedule_entries
			  WHERE teacher_id = $1 AND is_active = true
			  ORDER BY day, start_time, entry_key`
	return queryScheduleEntries(db, query, teacherID)
}

// findConflictTx re-runs the overlap checks inside the writing transaction.
// Half-open intervals: an entry ending exactly when the proposal starts is
// not a conflict. Section overlap is checked before teacher overlap.
func findConflictTx(tx *sql.Tx, proposed *models.ScheduleEntry, excludeID string) (*ScheduleConflictError, error) {
	overlap := `SELECT ` + scheduleEntryColumns + ` FROM schedule_entries
				WHERE %s = $1 AND day = $2 AND is_active = true
				AND start_time < $3 AND $4 < end_time
				AND ($5 = '' OR id::text != $5)
				ORDER BY start_time, entry_key
				LIMIT 1`

	sectionQuery := fmt.Sprintf(overlap, "section_name")
	entry, err := scanScheduleEntry(tx.QueryRow(sectionQuery,
		proposed.SectionName, proposed.Day, proposed.EndTime, proposed.StartTime, excludeID))
	if err == nil {
		return &ScheduleConflictError{Result: models.ConflictResult{Type: models.ConflictSection, With: entry}}, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	teacherQuery := fmt.Sprintf(overlap, "teacher_id")
	entry, err = scanScheduleEntry(tx.QueryRow(teacherQuery,
		proposed.TeacherID, proposed.Day, proposed.EndTime, proposed.StartTime, excludeID))
	if err == nil {
		return &ScheduleConflictError{Result: models.ConflictResult{Type: models.ConflictTeacher, With: entry}}, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	return nil, nil
}

// CreateScheduleEntry persists a schedule entry. The overlap invariants are
// re-validated inside the same transaction as the insert, so the advisory
// check on the screen is not the only guard.
func CreateScheduleEntry(db *sql.DB, entry *models.ScheduleEntry) (*models.ScheduleEntry, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	conflict, err := findConflictTx(tx, entry, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	entry.EntryKey = entry.Key()

	var exists bool
	if err := tx.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM schedule_entries WHERE entry_key = $1 AND is_active = true)`,
		entry.EntryKey,
	).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEntry
	}

	query := `INSERT INTO schedule_entries
		(entry_key, subject_code, subject_title, course_code, year_level, section_name,
		 teacher_id, teacher_name, day, start_time, end_time, room_or_link,
		 max_capacity, enrolled_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 0, true, NOW(), NOW())
		RETURNING id, enrolled_count, created_at, updated_at`

	err = tx.QueryRow(query,
		entry.EntryKey, entry.SubjectCode, entry.SubjectTitle,
		entry.CourseCode, entry.YearLevel, entry.SectionName,
		entry.TeacherID, entry.TeacherName, entry.Day,
		entry.StartTime, entry.EndTime, entry.RoomOrLink, entry.MaxCapacity,
	).Scan(&entry.ID, &entry.EnrolledCount, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		// A concurrent insert can slip past the existence check above.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	entry.IsActive = true
	return entry, nil
}

// UpdateScheduleEntry rewrites the schedule fields of an entry, re-validating
// the overlap invariants against everything except the entry itself.
// enrolled_count moves only inside the enrollment finalizer; here it is only
// read, to refuse shrinking max_capacity below the seats already taken.
func UpdateScheduleEntry(db *sql.DB, id string, entry *models.ScheduleEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	conflict, err := findConflictTx(tx, entry, id)
	if err != nil {
		return err
	}
	if conflict != nil {
		return conflict
	}

	// Lock the row so the count can't move between this read and the UPDATE;
	// the finalizer increments under the same row lock.
	var enrolled int
	err = tx.QueryRow(
		`SELECT enrolled_count FROM schedule_entries WHERE id = $1 AND is_active = true FOR UPDATE`,
		id,
	).Scan(&enrolled)
	if err != nil {
		return err
	}
	if entry.MaxCapacity < enrolled {
		return ErrCapacityBelowEnrolled
	}

	entry.EntryKey = entry.Key()

	query := `UPDATE schedule_entries
			  SET entry_key = $1, subject_code = $2, subject_title = $3, course_code = $4,
				  year_level = $5, section_name = $6, teacher_id = $7, teacher_name = $8,
				  day = $9, start_time = $10, end_time = $11, room_or_link = $12,
				  max_capacity = $13, updated_at = NOW()
			  WHERE id = $14 AND is_active = true`

	res, err := tx.Exec(query,
		entry.EntryKey, entry.SubjectCode, entry.SubjectTitle,
		entry.CourseCode, entry.YearLevel, entry.SectionName,
		entry.TeacherID, entry.TeacherName, entry.Day,
		entry.StartTime, entry.EndTime, entry.RoomOrLink, entry.MaxCapacity, id,
	)
	if err != nil {
		// A rekeying edit can land on another live entry's key.
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// DeleteScheduleEntry soft-deletes an entry.
func DeleteScheduleEntry(db *sql.DB, id string) error {
	query := `UPDATE schedule_entries SET is_active = false, deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND is_active = true`
	res, err := db.Exec(query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
