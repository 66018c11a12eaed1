package timezone_test

import (
	"testing"
	"time"

	"atrium/shared/timezone"
)

func TestNowAndLocation(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestToAppTime(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("expected converted time to have a location")
	}

	if !appTime.Equal(utcTime) {
		t.Error("expected converted time to represent the same instant")
	}
}

func TestFormatAndParse(t *testing.T) {
	testTime := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2026-03-02")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed.IsZero() {
		t.Error("Parse() returned a zero time")
	}

	if parsed.Location() != timezone.GetLocation() {
		t.Error("expected parsed time to be in the application location")
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := timezone.Parse("2006-01-02", "not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}
