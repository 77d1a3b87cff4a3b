package dates

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func TestParseAt_TodayTokens(t *testing.T) {
	for _, input := range []string{"today", "Today", " TODAY ", "اليوم"} {
		got, err := ParseAt(input, testNow)
		if err != nil {
			t.Fatalf("ParseAt(%q) error: %v", input, err)
		}
		if got.String() != "2026-03-15" {
			t.Errorf("ParseAt(%q) = %s, want 2026-03-15", input, got)
		}
	}
}

func TestParseAt_YesterdayTokens(t *testing.T) {
	for _, input := range []string{"yesterday", "أمس", "امس"} {
		got, err := ParseAt(input, testNow)
		if err != nil {
			t.Fatalf("ParseAt(%q) error: %v", input, err)
		}
		if got.String() != "2026-03-14" {
			t.Errorf("ParseAt(%q) = %s, want 2026-03-14", input, got)
		}
	}
}

func TestParseAt_NumericLayouts(t *testing.T) {
	cases := map[string]string{
		"2026-01-30":   "2026-01-30",
		"30/01/2026":   "2026-01-30",
		"30-01-2026":   "2026-01-30",
		" 2026-01-30 ": "2026-01-30",
	}
	for input, want := range cases {
		got, err := ParseAt(input, testNow)
		if err != nil {
			t.Fatalf("ParseAt(%q) error: %v", input, err)
		}
		if got.String() != want {
			t.Errorf("ParseAt(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestParseAt_Unrecognized(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "30.01.2026", "not a date", "2026/01/30"} {
		_, err := ParseAt(input, testNow)
		if !errors.Is(err, ErrUnrecognized) {
			t.Errorf("ParseAt(%q) error = %v, want ErrUnrecognized", input, err)
		}
	}
}

func TestParseAt_DropsTimeOfDay(t *testing.T) {
	got, err := ParseAt("today", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("parsed date has time of day %02d:%02d:%02d", h, m, s)
	}
}
