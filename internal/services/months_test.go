package services

import (
	"testing"
	"time"
)

func TestMonthsBefore(t *testing.T) {
	cases := []struct {
		name      string
		year      int
		month     int
		n         int
		wantYear  int
		wantMonth int
	}{
		{"same_month", 2025, 7, 0, 2025, 7},
		{"one_back", 2025, 7, 1, 2025, 6},
		{"into_previous_year", 2025, 1, 1, 2024, 12},
		{"three_back_across_year", 2025, 2, 3, 2024, 11},
		{"twelve_back", 2025, 6, 12, 2024, 6},
		{"forward", 2024, 12, -1, 2025, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			year, month := monthsBefore(tc.year, tc.month, tc.n)
			if year != tc.wantYear || month != tc.wantMonth {
				t.Errorf("monthsBefore(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tc.year, tc.month, tc.n, year, month, tc.wantYear, tc.wantMonth)
			}
		})
	}

	t.Run("stable_from_short_months", func(t *testing.T) {
		// Stepping back from March must land in February regardless of
		// February's length.
		year, month := monthsBefore(2025, 3, 1)
		if year != 2025 || month != 2 {
			t.Errorf("expected (2025, 2), got (%d, %d)", year, month)
		}
		year, month = monthsBefore(2024, 3, 1)
		if year != 2024 || month != 2 {
			t.Errorf("expected (2024, 2), got (%d, %d)", year, month)
		}
	})
}

func TestNextMonth(t *testing.T) {
	t.Run("mid_year", func(t *testing.T) {
		year, month := nextMonth(2025, 6)
		if year != 2025 || month != 7 {
			t.Errorf("expected (2025, 7), got (%d, %d)", year, month)
		}
	})

	t.Run("december_rolls_into_january", func(t *testing.T) {
		year, month := nextMonth(2025, 12)
		if year != 2026 || month != 1 {
			t.Errorf("expected (2026, 1), got (%d, %d)", year, month)
		}
	})
}

func TestMonthStart(t *testing.T) {
	start := monthStart(2025, 6)
	want := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("expected %v, got %v", want, start)
	}
}
