package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanisidro-college/app/models"
)

func TestFinalizeToken(t *testing.T) {
	token := FinalizeToken("s1", "2026-2027-1", []string{"BSIT-1-A-IT101", "BSIT-1-A-GE01"})

	// order of the choice set must not matter
	reordered := FinalizeToken("s1", "2026-2027-1", []string{"BSIT-1-A-GE01", "BSIT-1-A-IT101"})
	assert.Equal(t, token, reordered)

	assert.NotEqual(t, token, FinalizeToken("s2", "2026-2027-1", []string{"BSIT-1-A-IT101", "BSIT-1-A-GE01"}))
	assert.NotEqual(t, token, FinalizeToken("s1", "2026-2027-2", []string{"BSIT-1-A-IT101", "BSIT-1-A-GE01"}))
	assert.NotEqual(t, token, FinalizeToken("s1", "2026-2027-1", []string{"BSIT-1-A-IT101"}))
	assert.Len(t, token, 64)
}

// The tests below need a real Postgres instance because finalization relies on
// row locks. Point TEST_DATABASE_URL at a scratch database to run them.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, RunMigrations(db))

	cleanup := func() {
		for _, table := range []string{
			"subject_assignments", "pending_enrollment_choices", "pending_enrollments",
			"schedule_entries", "course_sections", "curriculum_subjects", "subjects",
			"students", "user_roles", "sessions", "users",
		} {
			_, err := db.Exec("DELETE FROM " + table)
			require.NoError(t, err)
		}
	}
	cleanup()
	t.Cleanup(func() {
		cleanup()
		db.Close()
	})
	return db
}

func seedTeacher(t *testing.T, db *sql.DB, email string) string {
	t.Helper()
	var id string
	require.NoError(t, db.QueryRow(
		`INSERT INTO users (email, password, first_name, last_name, is_active, created_at, updated_at)
		 VALUES ($1, 'x', 'Test', 'Teacher', true, NOW(), NOW()) RETURNING id`,
		email,
	).Scan(&id))
	return id
}

func seedStudent(t *testing.T, db *sql.DB, n int) string {
	t.Helper()
	var id string
	require.NoError(t, db.QueryRow(
		`INSERT INTO students (student_no, first_name, last_name, email, course_code, year_level)
		 VALUES ($1, 'Stu', 'Dent', $2, 'BSIT', 1) RETURNING id`,
		fmt.Sprintf("2026-%04d", n), fmt.Sprintf("stu%d@test.test", n),
	).Scan(&id))
	return id
}

func seedEntry(t *testing.T, db *sql.DB, teacherID, entryKey string, maxCapacity, enrolledCount int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO schedule_entries
		 (entry_key, subject_code, subject_title, course_code, year_level, section_name,
		  teacher_id, teacher_name, day, start_time, end_time, max_capacity, enrolled_count)
		 VALUES ($1, 'IT101', 'Intro to Computing', 'BSIT', 1, 'BSIT-1-A',
		  $2, 'Test Teacher', 'monday', '08:00', '09:30', $3, $4)`,
		entryKey, teacherID, maxCapacity, enrolledCount)
	require.NoError(t, err)
}

func enrolledCount(t *testing.T, db *sql.DB, entryKey string) int {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow(
		`SELECT enrolled_count FROM schedule_entries WHERE entry_key = $1`, entryKey).Scan(&count))
	return count
}

func TestFinalizeEnrollmentConcurrentCapacity(t *testing.T) {
	db := testDB(t)
	teacherID := seedTeacher(t, db, "teacher@test.test")

	const capacity = 2
	const attempts = 5
	seedEntry(t, db, teacherID, "BSIT-1-A-IT101", capacity, 0)

	ids := make([]string, attempts)
	for i := range ids {
		studentID := seedStudent(t, db, i+1)
		enrollment, err := CreatePendingEnrollment(db, studentID, "2026-2027-1",
			[]models.SectionChoice{{EntryKey: "BSIT-1-A-IT101", SubjectCode: "IT101", SectionName: "BSIT-1-A"}})
		require.NoError(t, err)
		ids[i] = enrollment.ID
	}

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, results[i] = FinalizeEnrollment(db, id)
		}(i, id)
	}
	wg.Wait()

	admitted, full := 0, 0
	for _, err := range results {
		var capErr *CapacityExceededError
		switch {
		case err == nil:
			admitted++
		case errors.As(err, &capErr):
			full++
			assert.Equal(t, "BSIT-1-A", capErr.SectionName)
		default:
			t.Fatalf("unexpected finalize error: %v", err)
		}
	}

	assert.Equal(t, capacity, admitted)
	assert.Equal(t, attempts-capacity, full)
	assert.Equal(t, capacity, enrolledCount(t, db, "BSIT-1-A-IT101"))
}

func TestFinalizeEnrollmentAllOrNothing(t *testing.T) {
	db := testDB(t)
	teacherID := seedTeacher(t, db, "teacher@test.test")

	seedEntry(t, db, teacherID, "BSIT-1-A-IT101", 40, 0)
	seedEntry(t, db, teacherID, "BSIT-1-A-GE01", 1, 1) // already full

	studentID := seedStudent(t, db, 1)
	enrollment, err := CreatePendingEnrollment(db, studentID, "2026-2027-1", []models.SectionChoice{
		{EntryKey: "BSIT-1-A-IT101"},
		{EntryKey: "BSIT-1-A-GE01"},
	})
	require.NoError(t, err)

	_, err = FinalizeEnrollment(db, enrollment.ID)
	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "BSIT-1-A-GE01", capErr.EntryKey)

	// the open section must not have been touched
	assert.Equal(t, 0, enrolledCount(t, db, "BSIT-1-A-IT101"))
	assert.Equal(t, 1, enrolledCount(t, db, "BSIT-1-A-GE01"))

	reloaded, err := GetEnrollmentByID(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPending, reloaded.Status)
}

func TestFinalizeEnrollmentRepairDoesNotDoubleCount(t *testing.T) {
	db := testDB(t)
	teacherID := seedTeacher(t, db, "teacher@test.test")
	seedEntry(t, db, teacherID, "BSIT-1-A-IT101", 40, 0)

	studentID := seedStudent(t, db, 1)
	enrollment, err := CreatePendingEnrollment(db, studentID, "2026-2027-1",
		[]models.SectionChoice{{EntryKey: "BSIT-1-A-IT101"}})
	require.NoError(t, err)

	first, err := FinalizeEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	assert.False(t, first.Repaired)
	assert.Len(t, first.Assignments, 1)
	assert.Equal(t, 1, enrolledCount(t, db, "BSIT-1-A-IT101"))

	// simulate a lost assignment batch, then re-run
	_, err = db.Exec(`DELETE FROM subject_assignments WHERE student_id = $1`, studentID)
	require.NoError(t, err)

	second, err := FinalizeEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	assert.True(t, second.Repaired)
	assert.Equal(t, first.Enrollment.FinalizeToken, second.Enrollment.FinalizeToken)
	assert.Equal(t, 1, enrolledCount(t, db, "BSIT-1-A-IT101"))

	assignments, err := GetStudentAssignments(db, studentID, "2026-2027-1")
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestFinalizeEnrollmentUnknownEntry(t *testing.T) {
	db := testDB(t)
	studentID := seedStudent(t, db, 1)

	enrollment, err := CreatePendingEnrollment(db, studentID, "2026-2027-1",
		[]models.SectionChoice{{EntryKey: "BSIT-9-Z-NOPE"}})
	require.NoError(t, err)

	_, err = FinalizeEnrollment(db, enrollment.ID)
	assert.ErrorIs(t, err, ErrUnknownEntry)
}

func TestRejectEnrollmentLifecycle(t *testing.T) {
	db := testDB(t)
	teacherID := seedTeacher(t, db, "teacher@test.test")
	seedEntry(t, db, teacherID, "BSIT-1-A-IT101", 40, 0)

	studentID := seedStudent(t, db, 1)
	enrollment, err := CreatePendingEnrollment(db, studentID, "2026-2027-1",
		[]models.SectionChoice{{EntryKey: "BSIT-1-A-IT101"}})
	require.NoError(t, err)

	rejected, err := RejectEnrollment(db, enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentRejected, rejected.Status)

	// already decided
	_, err = RejectEnrollment(db, enrollment.ID)
	assert.ErrorIs(t, err, ErrEnrollmentNotPending)
	_, err = FinalizeEnrollment(db, enrollment.ID)
	assert.ErrorIs(t, err, ErrEnrollmentNotPending)

	// missing entirely
	_, err = RejectEnrollment(db, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
