package parse

import (
	"testing"
	"time"
)

// fixedNow is mid-2024 so yearless dates on either side of it are exercised.
var fixedNow = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

func TestParseDateAt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantDate string
		wantOK   bool
	}{
		{"range with trailing year", "10 Jan - 11 Jan, 2025", "2025-01-10", true},
		{"month day year", "March 15, 2024", "2024-03-15", true},
		{"garbage", "garbage", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   \n\t ", "", false},
		{"iso", "2025-03-15", "2025-03-15", true},
		{"rfc3339", "2025-03-15T09:00:00Z", "2025-03-15", true},
		{"abbreviated month with comma year", "Jan 10, 2025", "2025-01-10", true},
		{"day month year", "15 March 2025", "2025-03-15", true},
		{"day first numeric", "15/03/2025", "2025-03-15", true},
		{"month first numeric when day > 12", "03/15/2025", "2025-03-15", true},
		{"two digit year", "05.04.26", "2026-04-05", true},
		{"dashed day first numeric", "15-03-2026", "2026-03-15", true},
		{"dashed two digit year", "05-04-26", "2026-04-05", true},
		{"yearless future stays in current year", "Aug 10", "2024-08-10", true},
		{"yearless past rolls to next year", "Jan 10", "2025-01-10", true},
		{"yearless today is not bumped", "June 15", "2024-06-15", true},
		{"yearless range", "Jan 10 - Jan 11", "2025-01-10", true},
		{"en dash range", "Sep 7 – Sep 8", "2024-09-07", true},
		{"compact day range", "10-11 Jan 2025", "2025-01-10", true},
		{"range across new year", "Dec 28 - Jan 3, 2026", "2025-12-28", true},
		{"day month range across new year", "30 décembre au 2 janvier 2026", "2025-12-30", true},
		{"range within one year keeps trailing year", "Mar 28 - Apr 3, 2026", "2026-03-28", true},
		{"range with explicit start year", "Dec 28, 2025 - Jan 3, 2026", "2025-12-28", true},
		{"french range", "10 au 12 janvier 2025", "2025-01-10", true},
		{"french month", "5 févr. 2025", "2025-02-05", true},
		{"french full month", "1er décembre 2024", "2024-12-01", true},
		{"ordinal suffix", "March 3rd, 2025", "2025-03-03", true},
		{"embedded in a sentence", "Join us on March 15, 2025 at the arena", "2025-03-15", true},
		{"weekday prefix", "Sat, 12 Oct 2024", "2024-10-12", true},
		{"invalid day", "Feb 30, 2025", "", false},
		{"leap day yearless", "Feb 29", "2028-02-29", true},
		{"prose with to before date", "Welcome to the March 15, 2025 open", "2025-03-15", true},
		{"day month followed by year digits", "10 Jan 2025", "2025-01-10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDateAt(tt.input, fixedNow)
			if ok != tt.wantOK {
				t.Fatalf("ParseDateAt(%q) ok = %v, want %v (got %v)", tt.input, ok, tt.wantOK, got)
			}
			if !ok {
				if !got.IsZero() {
					t.Errorf("ParseDateAt(%q) = %v, want zero time when unparseable", tt.input, got)
				}
				return
			}
			if s := got.Format("2006-01-02"); s != tt.wantDate {
				t.Errorf("ParseDateAt(%q) = %s, want %s", tt.input, s, tt.wantDate)
			}
			if got.Hour() != 0 || got.Location() != time.UTC {
				t.Errorf("ParseDateAt(%q) = %v, want UTC midnight", tt.input, got)
			}
		})
	}
}

func TestParseDate_UsesCurrentClock(t *testing.T) {
	got, ok := ParseDate("March 15, 2024")
	if !ok {
		t.Fatal("ParseDate should parse an explicit date")
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("ParseDate = %v, want 2024-03-15", got)
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name     string
		fallback Fallback
		want     string
	}{
		{"zero value is today", Fallback{}, "2024-06-15"},
		{"offset into the future", Fallback{OffsetDays: 90}, "2024-09-13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fallback.Date(fixedNow)
			if s := got.Format("2006-01-02"); s != tt.want {
				t.Errorf("Fallback.Date() = %s, want %s", s, tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("Fallback.Date() = %v, want midnight", got)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	if got := ResolveDate("not a date", fixedNow, Fallback{OffsetDays: 90}); got.Format("2006-01-02") != "2024-09-13" {
		t.Errorf("ResolveDate fallback = %v, want 2024-09-13", got)
	}
	if got := ResolveDate("Jan 10, 2025", fixedNow, Fallback{OffsetDays: 90}); got.Format("2006-01-02") != "2025-01-10" {
		t.Errorf("ResolveDate = %v, want 2025-01-10", got)
	}
}

func FuzzParseDateAt(f *testing.F) {
	for _, s := range []string{
		"Dec 28 - Jan 3, 2026",
		"10-11 Jan 2025",
		"15-03-2026",
		"1er décembre 2024",
		"Feb 29",
		"2025-13-45",
		"99/99/99",
		"au to - –",
	} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		got, ok := ParseDateAt(s, fixedNow)
		if !ok {
			if !got.IsZero() {
				t.Errorf("ParseDateAt(%q) = %v with ok false, want zero time", s, got)
			}
			return
		}
		if got.Location() != time.UTC || got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
			t.Errorf("ParseDateAt(%q) = %v, want UTC midnight", s, got)
		}
	})
}
