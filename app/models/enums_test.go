package models

import "testing"

func TestParseDay(t *testing.T) {
	tests := []struct {
		in     string
		want   DayOfWeek
		wantOK bool
	}{
		{"monday", Monday, true},
		{"Monday", Monday, true},
		{"  SATURDAY ", Saturday, true},
		{"sunday", Sunday, true},
		{"mon", "", false},
		{"", "", false},
		{"holiday", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDay(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseDay(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestScheduleEntryKey(t *testing.T) {
	entry := &ScheduleEntry{SectionName: "BSIT-1-A", SubjectCode: "IT101"}
	if got, want := entry.Key(), "BSIT-1-A-IT101"; got != want {
		t.Errorf("ScheduleEntry.Key() = %q, want %q", got, want)
	}
}
