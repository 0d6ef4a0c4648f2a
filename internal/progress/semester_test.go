package progress

import (
	"testing"
	"time"
)

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
}

func TestCurrentSemester(t *testing.T) {
	tests := []struct {
		name           string
		enrollmentYear int
		asOf           time.Time
		want           int
	}{
		{"enrollment September is first semester", 2024, date(2024, time.September), 1},
		{"first autumn term", 2024, date(2024, time.November), 1},
		{"january still first semester", 2024, date(2025, time.January), 1},
		{"march still first semester", 2024, date(2025, time.March), 1},
		{"april starts second semester", 2024, date(2025, time.April), 2},
		{"summer is still second semester", 2024, date(2025, time.July), 2},
		{"second autumn", 2024, date(2025, time.October), 3},
		{"fourth year spring", 2024, date(2028, time.May), 8},
		{"clamped after graduation", 2020, date(2028, time.May), MaxSemester},
		{"clamped below at pre-enrollment date", 2024, date(2024, time.April), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentSemester(tt.enrollmentYear, tt.asOf)
			if got != tt.want {
				t.Errorf("CurrentSemester(%d, %s) = %d, want %d",
					tt.enrollmentYear, tt.asOf.Format("2006-01"), got, tt.want)
			}
		})
	}
}
