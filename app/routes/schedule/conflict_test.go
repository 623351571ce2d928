package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sanisidro-college/app/models"
)

func entry(id, section, teacher string, day models.DayOfWeek, start, end string) *models.ScheduleEntry {
	return &models.ScheduleEntry{
		ID:          id,
		SectionName: section,
		TeacherID:   teacher,
		Day:         day,
		StartTime:   start,
		EndTime:     end,
	}
}

func TestCheckConflict(t *testing.T) {
	existing := entry("e1", "BSIT-1-A", "t1", models.Monday, "08:00", "09:30")

	tests := []struct {
		name         string
		proposed     *models.ScheduleEntry
		sectionScope []*models.ScheduleEntry
		teacherScope []*models.ScheduleEntry
		want         models.ConflictType
	}{
		{
			name:         "identical slot in same section",
			proposed:     entry("", "BSIT-1-A", "t2", models.Monday, "08:00", "09:30"),
			sectionScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictSection,
		},
		{
			name:         "partial overlap in same section",
			proposed:     entry("", "BSIT-1-A", "t2", models.Monday, "09:00", "10:30"),
			sectionScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictSection,
		},
		{
			name:         "proposal entirely inside existing slot",
			proposed:     entry("", "BSIT-1-A", "t2", models.Monday, "08:30", "09:00"),
			sectionScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictSection,
		},
		{
			name:         "back-to-back classes do not collide",
			proposed:     entry("", "BSIT-1-A", "t2", models.Monday, "09:30", "11:00"),
			sectionScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictNone,
		},
		{
			name:         "ends exactly when existing starts",
			proposed:     entry("", "BSIT-1-A", "t2", models.Monday, "07:00", "08:00"),
			sectionScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictNone,
		},
		{
			name:         "same time on a different day",
			proposed:     entry("", "BSIT-1-A", "t2", models.Tuesday, "08:00", "09:30"),
			sectionScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictNone,
		},
		{
			name:         "same teacher overlapping in another section",
			proposed:     entry("", "BSIT-2-B", "t1", models.Monday, "09:00", "10:30"),
			teacherScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictTeacher,
		},
		{
			name:         "different teacher in another section is clear",
			proposed:     entry("", "BSIT-2-B", "t2", models.Monday, "09:00", "10:30"),
			teacherScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictNone,
		},
		{
			name:         "section overlap wins over teacher overlap",
			proposed:     entry("", "BSIT-1-A", "t1", models.Monday, "08:00", "09:30"),
			sectionScope: []*models.ScheduleEntry{existing},
			teacherScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictSection,
		},
		{
			name:     "empty scopes",
			proposed: entry("", "BSIT-1-A", "t1", models.Monday, "08:00", "09:30"),
			want:     models.ConflictNone,
		},
		{
			name:         "update skips its own saved row",
			proposed:     entry("e1", "BSIT-1-A", "t1", models.Monday, "08:00", "09:30"),
			sectionScope: []*models.ScheduleEntry{existing},
			teacherScope: []*models.ScheduleEntry{existing},
			want:         models.ConflictNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckConflict(tt.proposed, tt.sectionScope, tt.teacherScope)
			assert.Equal(t, tt.want, result.Type)
			if tt.want == models.ConflictNone {
				assert.Nil(t, result.With)
			} else {
				assert.NotNil(t, result.With)
			}
		})
	}
}

func TestCheckConflictReportsFirstCollision(t *testing.T) {
	first := entry("e1", "BSIT-1-A", "t1", models.Monday, "08:00", "09:00")
	second := entry("e2", "BSIT-1-A", "t2", models.Monday, "08:30", "10:00")
	proposed := entry("", "BSIT-1-A", "t3", models.Monday, "08:00", "10:00")

	result := CheckConflict(proposed, []*models.ScheduleEntry{first, second}, nil)
	assert.Equal(t, models.ConflictSection, result.Type)
	assert.Equal(t, "e1", result.With.ID)
}

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"08:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"8:00", false},
		{"08-00", false},
		{"08:0a", false},
		{"", false},
		{"08:000", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateTimeFormat(tt.in))
		})
	}
}

func TestValidateEntry(t *testing.T) {
	valid := func() *models.ScheduleEntry {
		return &models.ScheduleEntry{
			SectionName: "BSIT-1-A",
			SubjectCode: "IT101",
			TeacherID:   "t1",
			Day:         "Monday",
			StartTime:   "08:00",
			EndTime:     "09:30",
			MaxCapacity: 40,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*models.ScheduleEntry)
		wantErr bool
	}{
		{name: "valid entry", mutate: func(e *models.ScheduleEntry) {}},
		{name: "missing section", mutate: func(e *models.ScheduleEntry) { e.SectionName = " " }, wantErr: true},
		{name: "missing subject", mutate: func(e *models.ScheduleEntry) { e.SubjectCode = "" }, wantErr: true},
		{name: "missing teacher", mutate: func(e *models.ScheduleEntry) { e.TeacherID = "" }, wantErr: true},
		{name: "bogus day", mutate: func(e *models.ScheduleEntry) { e.Day = "Funday" }, wantErr: true},
		{name: "bad start time", mutate: func(e *models.ScheduleEntry) { e.StartTime = "8am" }, wantErr: true},
		{name: "start equals end", mutate: func(e *models.ScheduleEntry) { e.EndTime = e.StartTime }, wantErr: true},
		{name: "start after end", mutate: func(e *models.ScheduleEntry) { e.StartTime, e.EndTime = "10:00", "09:00" }, wantErr: true},
		{name: "negative capacity", mutate: func(e *models.ScheduleEntry) { e.MaxCapacity = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			err := validateEntry(e)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEntryNormalizesDay(t *testing.T) {
	e := &models.ScheduleEntry{
		SectionName: "BSIT-1-A",
		SubjectCode: "IT101",
		TeacherID:   "t1",
		Day:         "  MONDAY ",
		StartTime:   "08:00",
		EndTime:     "09:30",
	}
	assert.NoError(t, validateEntry(e))
	assert.Equal(t, models.Monday, e.Day)
}
