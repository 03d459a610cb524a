package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange(date(2024, 1, 1), date(2024, 1, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Contains(date(2024, 1, 1)) || !r.Contains(date(2024, 1, 7)) {
		t.Error("range must include both ends")
	}
	if r.Contains(date(2024, 1, 8)) || r.Contains(date(2023, 12, 31)) {
		t.Error("range must exclude dates outside it")
	}

	if _, err := NewDateRange(date(2024, 1, 2), date(2024, 1, 1)); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	single, err := NewDateRange(date(2024, 5, 5), date(2024, 5, 5))
	if err != nil || !single.Contains(date(2024, 5, 5)) {
		t.Fatalf("single-day range should be valid, err=%v", err)
	}
}

func TestWeekRange(t *testing.T) {
	r := WeekRange(date(2024, 2, 26))
	if r.String() != "2024-02-26..2024-03-03" {
		t.Errorf("unexpected week %s", r)
	}
}

func TestMealSlotValid(t *testing.T) {
	for _, s := range []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack, SlotCustom} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if MealSlot("brunch").Valid() {
		t.Error("brunch should be invalid")
	}
}

func TestNormalizeDietTags(t *testing.T) {
	got := NormalizeDietTags([]string{" Vegan", "gluten-free", "vegan", "", "  "})
	want := []string{"gluten-free", "vegan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if len(NormalizeDietTags(nil)) != 0 {
		t.Error("nil input should normalise to empty")
	}
}

func TestSharesTag(t *testing.T) {
	if !SharesTag([]string{"vegan", "keto"}, []string{"keto"}) {
		t.Error("expected shared tag")
	}
	if SharesTag([]string{"vegan"}, []string{"keto"}) {
		t.Error("expected no shared tag")
	}
	if SharesTag(nil, []string{"keto"}) {
		t.Error("empty list shares nothing")
	}
}
