package utils

import "testing"

func TestParseISODate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want string
	}{
		{"2024-07-22", true, "2024-07-22"},
		{"  2024-07-22  ", true, "2024-07-22"},
		{"2024-13-99", false, ""},
		{"22/07/2024", false, ""},
		{"not a date", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		got, ok := ParseISODate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseISODate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && FormatISODate(got) != tt.want {
			t.Errorf("ParseISODate(%q) = %s, want %s", tt.in, FormatISODate(got), tt.want)
		}
	}
}

func TestNextDay_RollsOverMonths(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2024-07-22", "2024-07-23"},
		{"2024-07-31", "2024-08-01"},
		{"2024-02-28", "2024-02-29"},
		{"2023-12-31", "2024-01-01"},
	}

	for _, tt := range tests {
		start, ok := ParseISODate(tt.in)
		if !ok {
			t.Fatalf("fixture date %q did not parse", tt.in)
		}
		if got := FormatISODate(NextDay(start)); got != tt.want {
			t.Errorf("NextDay(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
