package workflow

import (
	"errors"
	"testing"
)

func TestIsSkipToken(t *testing.T) {
	for _, input := range []string{"skip", "Skip", " SKIP ", "تخطي"} {
		if !IsSkipToken(input) {
			t.Errorf("IsSkipToken(%q) = false", input)
		}
	}
	for _, input := range []string{"", "skipped", "no", "0"} {
		if IsSkipToken(input) {
			t.Errorf("IsSkipToken(%q) = true", input)
		}
	}
}

func TestParseAmount(t *testing.T) {
	if v, err := ParseAmount(" 12.5 "); err != nil || v != 12.5 {
		t.Errorf("ParseAmount(12.5) = %v, %v", v, err)
	}
	if _, err := ParseAmount("abc"); !errors.Is(err, ErrNotNumber) {
		t.Errorf("ParseAmount(abc) error = %v, want ErrNotNumber", err)
	}
	if _, err := ParseAmount("0"); !errors.Is(err, ErrNotPositive) {
		t.Errorf("ParseAmount(0) error = %v, want ErrNotPositive", err)
	}
	if _, err := ParseAmount("-3"); !errors.Is(err, ErrNotPositive) {
		t.Errorf("ParseAmount(-3) error = %v, want ErrNotPositive", err)
	}
}

func TestParseCost(t *testing.T) {
	if v, err := ParseCost("0"); err != nil || v != 0 {
		t.Errorf("ParseCost(0) = %v, %v, want zero cost accepted", v, err)
	}
	if v, err := ParseCost("150000"); err != nil || v != 150000 {
		t.Errorf("ParseCost(150000) = %v, %v", v, err)
	}
	if _, err := ParseCost("-1"); !errors.Is(err, ErrNegative) {
		t.Errorf("ParseCost(-1) error = %v, want ErrNegative", err)
	}
	if _, err := ParseCost("x"); !errors.Is(err, ErrNotNumber) {
		t.Errorf("ParseCost(x) error = %v, want ErrNotNumber", err)
	}
}
