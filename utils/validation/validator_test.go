package validation

import (
	"strings"
	"testing"
	"time"
)

func TestValidateContactPhone(t *testing.T) {
	cases := []struct {
		phoneType string
		phone     string
		wantErr   bool
	}{
		{"cell", "09123456789", false},   // exactly 11 digits
		{"cell", "0912345678", true},     // 10 digits
		{"cell", "091234567890", true},   // 12 digits
		{"cell", "0912345678a", true},    // non-digit
		{"telephone", "2123456", false},  // 7 digits
		{"telephone", "2123456789", false}, // 10 digits
		{"telephone", "212345", true},    // 6 digits
		{"telephone", "21234567890", true}, // 11 digits
		{"fax", "2123456", true},         // unknown type
	}

	for _, tc := range cases {
		err := ValidateContactPhone(tc.phoneType, tc.phone)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateContactPhone(%q, %q) = %v, wantErr=%v", tc.phoneType, tc.phone, err, tc.wantErr)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	started := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	equal := started
	after := started.AddDate(0, 0, 1)
	before := started.AddDate(0, 0, -1)

	if err := ValidateDateRange(started, nil); err != nil {
		t.Errorf("open-ended partnership rejected: %v", err)
	}
	if err := ValidateDateRange(started, &after); err != nil {
		t.Errorf("end one day after start rejected: %v", err)
	}
	if err := ValidateDateRange(started, &equal); err == nil {
		t.Error("end equal to start must be rejected")
	}
	if err := ValidateDateRange(started, &before); err == nil {
		t.Error("end before start must be rejected")
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	if err != nil || id != 42 {
		t.Errorf("ParseID(42) = %d, %v", id, err)
	}

	rejected := []string{
		"",
		"abc",
		"-1",
		"4.2",
		"1 OR 1=1",
		"1; DROP TABLE partnerships",
		"id = 1",
	}
	for _, param := range rejected {
		if _, err := ParseID(param); err != ErrInvalidID {
			t.Errorf("ParseID(%q) = %v, want ErrInvalidID", param, err)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
	if got := SanitizeString(strings.Repeat(" ", 4)); got != "" {
		t.Errorf("SanitizeString(spaces) = %q", got)
	}
}
