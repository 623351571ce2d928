package schedule

import (
	"sanisidro-college/app/models"
)

// CheckConflict decides whether a proposed schedule entry collides with the
// already-saved working set. sectionScope holds the entries sharing the
// proposal's section; teacherScope holds the teacher's entries across every
// section. The caller fetches both scopes and guarantees the proposal is
// well-formed (start before end, known day) before calling.
//
// Section overlap is evaluated first and wins when both would collide. The
// result carries the first colliding entry in scope order. Empty scopes mean
// no conflict.
func CheckConflict(proposed *models.ScheduleEntry, sectionScope, teacherScope []*models.ScheduleEntry) models.ConflictResult {
	for _, existing := range sectionScope {
		if proposed.ID != "" && existing.ID == proposed.ID {
			continue
		}
		if existing.Day == proposed.Day && overlaps(proposed, existing) {
			return models.ConflictResult{Type: models.ConflictSection, With: existing}
		}
	}

	for _, existing := range teacherScope {
		if proposed.ID != "" && existing.ID == proposed.ID {
			continue
		}
		if existing.TeacherID != proposed.TeacherID {
			continue
		}
		if existing.Day == proposed.Day && overlaps(proposed, existing) {
			return models.ConflictResult{Type: models.ConflictTeacher, With: existing}
		}
	}

	return models.ConflictResult{Type: models.ConflictNone}
}

// overlaps applies the half-open interval test, so a class ending exactly
// when another starts does not collide. Times are zero-padded "HH:MM"
// strings, which compare correctly as text.
func overlaps(a, b *models.ScheduleEntry) bool {
	return a.StartTime < b.EndTime && b.StartTime < a.EndTime
}
