package scheduling

import (
	"testing"
	"time"
)

func TestMondayOf(t *testing.T) {
	cases := map[string]string{
		"2025-06-02": "2025-06-02", // Monday maps to itself
		"2025-06-04": "2025-06-02", // Wednesday
		"2025-06-08": "2025-06-02", // Sunday belongs to the preceding Monday
	}
	for in, want := range cases {
		if got := MondayOf(day(in)); got != day(want) {
			t.Fatalf("MondayOf(%s) = %v, want %s", in, got, want)
		}
	}
}

func TestMonthWindowCoversWholeWeeks(t *testing.T) {
	// June 2025 starts on a Sunday, so the grid begins Monday May 26.
	w := MonthWindow(day("2025-06-15"))
	if w.Start != day("2025-05-26") {
		t.Fatalf("window start = %v, want 2025-05-26", w.Start)
	}
	if w.End != day("2025-07-06") {
		t.Fatalf("window end = %v, want 2025-07-06", w.End)
	}
	if w.Start.Weekday() != time.Monday {
		t.Fatalf("window must start on Monday, got %s", w.Start.Weekday())
	}
	if n := len(w.Days()); n%7 != 0 {
		t.Fatalf("window must be whole weeks, got %d days", n)
	}
}

func TestWeekWindowIsSevenDaysFromMonday(t *testing.T) {
	w := WeekWindow(day("2025-06-05")) // Thursday
	if w.Start != day("2025-06-02") || w.End != day("2025-06-08") {
		t.Fatalf("unexpected week window %v..%v", w.Start, w.End)
	}
	if len(w.Days()) != 7 {
		t.Fatalf("week window must have 7 days")
	}
}

func TestDayWindowSingleDate(t *testing.T) {
	w := DayWindow(day("2025-06-05"))
	if len(w.Days()) != 1 || w.Start != day("2025-06-05") {
		t.Fatalf("unexpected day window %v..%v", w.Start, w.End)
	}
}

func TestWindowDefaultsToMonth(t *testing.T) {
	anchor := day("2025-06-15")
	if Window("bogus", anchor) != MonthWindow(anchor) {
		t.Fatalf("unknown view should fall back to month window")
	}
}
