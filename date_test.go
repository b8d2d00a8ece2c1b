package licspend

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEndOfQuarter(t *testing.T) {
	tests := []struct {
		name string
		on   Date
		want Date
	}{
		{"mid Q1", NewDate(2026, time.January, 17), NewDate(2026, time.March, 31)},
		{"last day of Q1", NewDate(2026, time.March, 31), NewDate(2026, time.March, 31)},
		{"first day of Q2", NewDate(2026, time.April, 1), NewDate(2026, time.June, 30)},
		{"mid Q3", NewDate(2026, time.August, 2), NewDate(2026, time.September, 30)},
		{"Q4 ends on new year's eve", NewDate(2026, time.November, 15), NewDate(2026, time.December, 31)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.on.EndOfQuarter(); got != tc.want {
				t.Errorf("EndOfQuarter(%s) = %s, want %s", tc.on, got, tc.want)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	on := NewDate(2026, time.January, 17)
	tests := []struct {
		name string
		to   Date
		want int
	}{
		{"same day", on, 0},
		{"tomorrow", NewDate(2026, time.January, 18), 1},
		{"next month", NewDate(2026, time.February, 17), 31},
		{"yesterday", NewDate(2026, time.January, 16), -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := on.DaysUntil(tc.to); got != tc.want {
				t.Errorf("DaysUntil(%s) = %d, want %d", tc.to, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2026-01-31", NewDate(2026, time.January, 31), false},
		{"2026-1-31", NewDate(2026, time.January, 31), false},
		{"1/31/2026", NewDate(2026, time.January, 31), false},
		{"", Date{}, false},
		{"  ", Date{}, false},
		{"not-a-date", Date{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDateShortUS(t *testing.T) {
	if got := NewDate(2026, time.June, 3).ShortUS(); got != "6/3/2026" {
		t.Errorf("ShortUS() = %q, want %q", got, "6/3/2026")
	}
	if got := (Date{}).ShortUS(); got != "N/A" {
		t.Errorf("zero ShortUS() = %q, want %q", got, "N/A")
	}
}

func TestDateJSON(t *testing.T) {
	type record struct {
		On Date `json:"on"`
	}
	tests := []struct {
		name string
		in   string
		want Date
	}{
		{"iso date", `{"on":"2026-06-30"}`, NewDate(2026, time.June, 30)},
		{"empty string is no date", `{"on":""}`, Date{}},
		{"null is no date", `{"on":null}`, Date{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r record
			if err := json.Unmarshal([]byte(tc.in), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if r.On != tc.want {
				t.Errorf("got %v, want %v", r.On, tc.want)
			}
			// and back
			out, err := json.Marshal(r)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var again record
			if err := json.Unmarshal(out, &again); err != nil {
				t.Fatalf("unmarshal round trip: %v", err)
			}
			if again.On != tc.want {
				t.Errorf("round trip got %v, want %v", again.On, tc.want)
			}
		})
	}
}
