package timezone_test

import (
	"pawstay/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	// Test Now() function
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	// Test GetLocation()
	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed == (time.Time{}) {
		t.Error("Parse() returned a zero time")
	}
}

func TestStartOfDay(t *testing.T) {
	loc := timezone.GetLocation()
	in := time.Date(2024, 3, 10, 17, 45, 12, 99, loc)

	got := timezone.StartOfDay(in)

	want := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	loc := timezone.GetLocation()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "same day",
			start: time.Date(2024, 5, 1, 8, 0, 0, 0, loc),
			end:   time.Date(2024, 5, 1, 22, 0, 0, 0, loc),
			want:  0,
		},
		{
			name:  "three nights ignoring clock time",
			start: time.Date(2024, 5, 1, 18, 0, 0, 0, loc),
			end:   time.Date(2024, 5, 4, 9, 0, 0, 0, loc),
			want:  3,
		},
		{
			name:  "end before start",
			start: time.Date(2024, 5, 4, 0, 0, 0, 0, loc),
			end:   time.Date(2024, 5, 2, 0, 0, 0, 0, loc),
			want:  -2,
		},
		{
			name:  "across month boundary",
			start: time.Date(2024, 1, 30, 0, 0, 0, 0, loc),
			end:   time.Date(2024, 2, 2, 0, 0, 0, 0, loc),
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timezone.DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}
