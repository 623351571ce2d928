package schedule

import (
	"fmt"
	"strings"

	"sanisidro-college/app/models"
)

// ValidateTimeFormat validates a zero-padded wall-clock time (HH:MM).
func ValidateTimeFormat(timeStr string) bool {
	if len(timeStr) != 5 || timeStr[2] != ':' {
		return false
	}
	for i, r := range timeStr {
		if i == 2 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	hour := (timeStr[0]-'0')*10 + (timeStr[1] - '0')
	minute := (timeStr[3]-'0')*10 + (timeStr[4] - '0')
	return hour < 24 && minute < 60
}

// validateEntry rejects malformed proposals before they reach the conflict
// checker or the store.
func validateEntry(entry *models.ScheduleEntry) error {
	if strings.TrimSpace(entry.SectionName) == "" {
		return fmt.Errorf("section name is required")
	}
	if strings.TrimSpace(entry.SubjectCode) == "" {
		return fmt.Errorf("subject code is required")
	}
	if entry.TeacherID == "" {
		return fmt.Errorf("teacher is required")
	}
	day, ok := models.ParseDay(string(entry.Day))
	if !ok {
		return fmt.Errorf("invalid day of week: %s", entry.Day)
	}
	entry.Day = day
	if !ValidateTimeFormat(entry.StartTime) || !ValidateTimeFormat(entry.EndTime) {
		return fmt.Errorf("times must be in HH:MM format")
	}
	if entry.StartTime >= entry.EndTime {
		return fmt.Errorf("start time must be before end time")
	}
	if entry.MaxCapacity < 0 {
		return fmt.Errorf("max capacity cannot be negative")
	}
	return nil
}
