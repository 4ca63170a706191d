package shared

import (
	"testing"
	"time"
)

func TestParseDatePlain(t *testing.T) {
	parsed, err := ParseDate("2025-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.March || parsed.Day() != 14 {
		t.Fatalf("got %v", parsed)
	}
}

func TestParseDateRFC3339(t *testing.T) {
	parsed, err := ParseDate("2025-03-14T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Day() != 14 {
		t.Fatalf("got %v", parsed)
	}
}

func TestParseDateEmpty(t *testing.T) {
	parsed, err := ParseDate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.IsZero() {
		t.Fatalf("expected zero time, got %v", parsed)
	}
}

func TestParseDateGarbage(t *testing.T) {
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("expected error")
	}
}
