package event

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(time.Date(2025, time.January, 10, 23, 59, 0, 0, time.UTC))

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"2025-01-10"` {
		t.Errorf("Marshal() = %s, want \"2025-01-10\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDate_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"number", `20250110`},
		{"wrong layout", `"10/01/2025"`},
		{"not json", `2025-01-10`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.input), &d); err == nil {
				t.Errorf("Unmarshal(%s) expected error, got %v", tt.input, d)
			}
		})
	}

	var d Date
	if err := json.Unmarshal([]byte(`""`), &d); err != nil || !d.IsZero() {
		t.Errorf("Unmarshal(\"\") = %v, %v; want zero date", d, err)
	}
}

func TestDate_IsPast(t *testing.T) {
	now := time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"yesterday", "2024-06-14", true},
		{"today", "2024-06-15", false},
		{"tomorrow", "2024-06-16", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseISODate(tt.date)
			if err != nil {
				t.Fatalf("ParseISODate(%q) error: %v", tt.date, err)
			}
			if got := d.IsPast(now); got != tt.want {
				t.Errorf("IsPast() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDate_IsWithinDays(t *testing.T) {
	now := time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		days int
		want bool
	}{
		{"disabled window", "2030-01-01", 0, true},
		{"today", "2024-06-15", 7, true},
		{"edge of window", "2024-06-22", 7, true},
		{"beyond window", "2024-06-23", 7, false},
		{"past", "2024-06-14", 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := ParseISODate(tt.date)
			if got := d.IsWithinDays(now, tt.days); got != tt.want {
				t.Errorf("IsWithinDays(%d) = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}
