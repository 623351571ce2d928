package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanisidro-college/app/models"
)

func scheduleFixture(teacherID, section, subject string, day models.DayOfWeek, start, end string) *models.ScheduleEntry {
	return &models.ScheduleEntry{
		SubjectCode:  subject,
		SubjectTitle: subject + " Title",
		CourseCode:   "BSIT",
		YearLevel:    1,
		SectionName:  section,
		TeacherID:    teacherID,
		TeacherName:  "Test Teacher",
		Day:          day,
		StartTime:    start,
		EndTime:      end,
		MaxCapacity:  40,
	}
}

func TestCreateScheduleEntryRevalidatesOverlap(t *testing.T) {
	db := testDB(t)
	t1 := seedTeacher(t, db, "teacher@test.test")
	t2 := seedTeacher(t, db, "teacher2@test.test")

	base, err := CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-1-A", "IT101", models.Monday, "08:00", "09:30"))
	require.NoError(t, err)
	assert.Equal(t, "BSIT-1-A-IT101", base.EntryKey)
	assert.Equal(t, 0, base.EnrolledCount)

	// overlapping slot in the same section, different teacher
	_, err = CreateScheduleEntry(db, scheduleFixture(t2, "BSIT-1-A", "GE01", models.Monday, "09:00", "10:30"))
	var conflict *ScheduleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.ConflictSection, conflict.Result.Type)
	assert.Equal(t, "BSIT-1-A-IT101", conflict.Result.With.EntryKey)

	// back-to-back in the same section is clear
	_, err = CreateScheduleEntry(db, scheduleFixture(t2, "BSIT-1-A", "GE01", models.Monday, "09:30", "11:00"))
	require.NoError(t, err)

	// same teacher double-booked across sections
	_, err = CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-2-B", "IT201", models.Monday, "09:00", "10:30"))
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.ConflictTeacher, conflict.Result.Type)

	// same slot on another day is clear
	_, err = CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-2-B", "IT201", models.Tuesday, "09:00", "10:30"))
	require.NoError(t, err)
}

func TestUpdateScheduleEntryExcludesItself(t *testing.T) {
	db := testDB(t)
	t1 := seedTeacher(t, db, "teacher@test.test")

	base, err := CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-1-A", "IT101", models.Monday, "08:00", "09:30"))
	require.NoError(t, err)
	_, err = CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-1-A", "GE01", models.Monday, "10:00", "11:30"))
	require.NoError(t, err)

	// rewriting a slot over itself must not count as a conflict
	edit := scheduleFixture(t1, "BSIT-1-A", "IT101", models.Monday, "08:00", "09:30")
	require.NoError(t, UpdateScheduleEntry(db, base.ID, edit))

	// moving onto the other entry's slot must
	edit = scheduleFixture(t1, "BSIT-1-A", "IT101", models.Monday, "10:30", "11:30")
	err = UpdateScheduleEntry(db, base.ID, edit)
	var conflict *ScheduleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.ConflictSection, conflict.Result.Type)
}

func TestScheduleEntryKeyReusableAfterDelete(t *testing.T) {
	db := testDB(t)
	t1 := seedTeacher(t, db, "teacher@test.test")

	base, err := CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-1-A", "IT101", models.Monday, "08:00", "09:30"))
	require.NoError(t, err)

	// a second live entry under the same key is rejected
	_, err = CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-1-A", "IT101", models.Tuesday, "08:00", "09:30"))
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	// after a soft delete the key is free again
	require.NoError(t, DeleteScheduleEntry(db, base.ID))
	recreated, err := CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-1-A", "IT101", models.Monday, "08:00", "09:30"))
	require.NoError(t, err)
	assert.Equal(t, base.EntryKey, recreated.EntryKey)
	assert.NotEqual(t, base.ID, recreated.ID)
}

func TestUpdateScheduleEntryCapacityFloor(t *testing.T) {
	db := testDB(t)
	t1 := seedTeacher(t, db, "teacher@test.test")

	base, err := CreateScheduleEntry(db, scheduleFixture(t1, "BSIT-1-A", "IT101", models.Monday, "08:00", "09:30"))
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE schedule_entries SET enrolled_count = 3 WHERE id = $1`, base.ID)
	require.NoError(t, err)

	edit := scheduleFixture(t1, "BSIT-1-A", "IT101", models.Monday, "08:00", "09:30")
	edit.MaxCapacity = 2
	assert.ErrorIs(t, UpdateScheduleEntry(db, base.ID, edit), ErrCapacityBelowEnrolled)

	// shrinking down to the taken seats is still allowed
	edit.MaxCapacity = 3
	require.NoError(t, UpdateScheduleEntry(db, base.ID, edit))

	entry, err := GetScheduleEntryByID(db, base.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.MaxCapacity)
	assert.Equal(t, 3, entry.EnrolledCount)
}
