package extract

import (
	"testing"
	"time"
)

func TestExtractDatesISOTimestamp(t *testing.T) {
	ref := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	dates := ExtractDates("Your interview slot is 2024-03-05T14:00:00.", ref)
	if len(dates) != 1 {
		t.Fatalf("got %d dates, want 1: %v", len(dates), dates)
	}
	want := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	if !dates[0].Equal(want) {
		t.Errorf("got %v, want %v", dates[0], want)
	}
}

func TestExtractDatesScheduledPhrase(t *testing.T) {
	ref := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	text := "Your interview is scheduled for Monday, January 15th at 2:00 PM."
	dates := ExtractDates(text, ref)
	if len(dates) == 0 {
		t.Fatal("got no dates")
	}
	want := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	if !containsTime(dates, want) {
		t.Errorf("got %v, want to contain %v", dates, want)
	}
}

func TestExtractDatesWithExplicitYear(t *testing.T) {
	ref := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	dates := ExtractDates("We confirmed January 15, 2024 at 2:00 PM for your call.", ref)
	want := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	if !containsTime(dates, want) {
		t.Errorf("got %v, want to contain %v", dates, want)
	}
}

func TestExtractDatesTomorrow(t *testing.T) {
	ref := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	dates := ExtractDates("Can you join us tomorrow at 2:00 pm?", ref)
	if len(dates) != 1 {
		t.Fatalf("got %d dates, want 1: %v", len(dates), dates)
	}
	if dates[0].Day() != 11 || dates[0].Month() != time.January {
		t.Errorf("got %v, want January 11", dates[0])
	}
	if dates[0].Hour() != 14 {
		t.Errorf("got hour %d, want 14", dates[0].Hour())
	}
}

func TestExtractDatesFiltersPast(t *testing.T) {
	ref := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	dates := ExtractDates("Your interview on 2023-12-01T10:00:00 went well.", ref)
	if len(dates) != 0 {
		t.Errorf("got %v, want no dates for a past timestamp", dates)
	}
}

func TestExtractDatesDedupesAndSorts(t *testing.T) {
	ref := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	text := "Options: 2024-03-10T15:00:00 or 2024-02-01T09:30:00, again 2024-03-10T15:00:00."
	dates := ExtractDates(text, ref)
	if len(dates) != 2 {
		t.Fatalf("got %d dates, want 2: %v", len(dates), dates)
	}
	if !dates[0].Before(dates[1]) {
		t.Errorf("dates not sorted ascending: %v", dates)
	}
	if dates[0].Month() != time.February {
		t.Errorf("got %v first, want the February slot", dates[0])
	}
}

func TestExtractDatesNoDates(t *testing.T) {
	ref := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	dates := ExtractDates("Thank you for applying. We will review your submission.", ref)
	if len(dates) != 0 {
		t.Errorf("got %v, want no dates", dates)
	}
}

func containsTime(dates []time.Time, want time.Time) bool {
	for _, d := range dates {
		if d.Equal(want) {
			return true
		}
	}
	return false
}
