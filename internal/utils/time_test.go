package utils

import (
	"testing"
	"time"
)

func TestComputeWeekEndInclusive(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"2024-01-01", "2024-01-07"},
		{"2024-02-26", "2024-03-03"},
		{"2023-02-26", "2023-03-04"},
		{"2024-12-30", "2025-01-05"},
		{"2024-03-28", "2024-04-03"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := ComputeWeekEndInclusive(tt.start)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeWeekEndInclusive(%q) = %q, want %q", tt.start, got, tt.want)
			}
		})
	}
}

func TestComputeWeekEndInclusiveRejectsGarbage(t *testing.T) {
	if _, err := ComputeWeekEndInclusive("01/01/2024"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestWeekEndInclusiveIgnoresLocalTimezone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// Week containing the spring-forward transition.
	start := time.Date(2024, 3, 25, 23, 30, 0, 0, berlin)
	got := WeekEndInclusive(start)
	if FormatDate(got) != "2024-03-31" {
		t.Errorf("expected 2024-03-31, got %s", FormatDate(got))
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC result, got %v", got.Location())
	}
}
