package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// months maps lowercase English and French month names and abbreviations.
var months = map[string]time.Month{
	"jan": time.January, "january": time.January, "janv": time.January, "janvier": time.January,
	"feb": time.February, "february": time.February, "fév": time.February, "fev": time.February,
	"févr": time.February, "fevr": time.February, "février": time.February, "fevrier": time.February,
	"mar": time.March, "march": time.March, "mars": time.March,
	"apr": time.April, "april": time.April, "avr": time.April, "avril": time.April,
	"may": time.May, "mai": time.May,
	"jun": time.June, "june": time.June, "juin": time.June,
	"jul": time.July, "july": time.July, "juil": time.July, "juillet": time.July,
	"aug": time.August, "august": time.August, "août": time.August, "aout": time.August,
	"sep": time.September, "sept": time.September, "september": time.September, "septembre": time.September,
	"oct": time.October, "october": time.October, "octobre": time.October,
	"nov": time.November, "november": time.November, "novembre": time.November,
	"dec": time.December, "december": time.December, "déc": time.December, "décembre": time.December,
	"decembre": time.December,
}

var (
	monthAlt = func() string {
		names := make([]string, 0, len(months))
		for name := range months {
			names = append(names, regexp.QuoteMeta(name))
		}
		// Longest first so "september" wins over "sep".
		sort.Slice(names, func(i, j int) bool {
			if len(names[i]) != len(names[j]) {
				return len(names[i]) > len(names[j])
			}
			return names[i] < names[j]
		})
		return strings.Join(names, "|")
	}()

	isoPattern      = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})`)
	numericPattern  = regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{4}|\d{2})\b`)
	monthDayPattern = regexp.MustCompile(`(?i)\b(` + monthAlt + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4})\b)?`)
	dayMonthPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th|er)?\s+(` + monthAlt + `)\b\.?(?:,?\s+(\d{4})\b)?`)
	yearPattern     = regexp.MustCompile(`\b(20\d{2}|19\d{2})\b`)
	dayRangePattern = regexp.MustCompile(`(?i)^(\d{1,2})(?:er)?\s*(?:[-–]|au|to)\s*\d{1,2}(\s)`)

	rangeDelimiters = []string{" - ", " – ", " — ", "–", " to ", " au ", " until "}
)

// ParseDate resolves a free-text date relative to the current time.
// See ParseDateAt.
func ParseDate(s string) (time.Time, bool) {
	return ParseDateAt(s, time.Now())
}

// ParseDateAt resolves a free-text date to a calendar date at UTC midnight.
//
// Ranges resolve to their start. A year found anywhere in the string is used
// when the start of the range omits it, less one when the range crosses into
// that year ("Dec 28 - Jan 3, 2026" starts in 2025). Without any year the current year is
// tried first and, when that lands before today, the following year, since
// listed events are assumed to be upcoming. ok is false when nothing in the
// string looks like a date.
func ParseDateAt(s string, now time.Time) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, false
	}

	start, end := splitRange(s)
	d, ok := match(start)
	if !ok {
		d, ok = match(s)
		if !ok {
			return time.Time{}, false
		}
	}

	if d.year == 0 {
		if m := yearPattern.FindStringSubmatch(s); m != nil {
			d.year, _ = strconv.Atoi(m[1])
			if e, ok := match(end); ok && e.month < d.month && (e.year == 0 || e.year == d.year) {
				d.year--
			}
		}
	}

	if d.year != 0 {
		return d.date(d.year)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	// Feb 29 may need up to four years to land on a leap year.
	for year := now.Year(); year <= now.Year()+4; year++ {
		if t, ok := d.date(year); ok && !t.Before(today) {
			return t, true
		}
	}
	return time.Time{}, false
}

// splitRange returns the start-of-range and end-of-range parts of s. end is
// empty when s is not a range across months.
func splitRange(s string) (start, end string) {
	if m := dayRangePattern.FindStringSubmatchIndex(s); m != nil {
		// "10-11 Jan 2025" keeps the first day and the shared month.
		return s[m[2]:m[3]] + s[m[4]:], ""
	}
	lower := strings.ToLower(s)
	for _, delim := range rangeDelimiters {
		if i := strings.Index(lower, delim); i > 0 {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(delim):])
		}
	}
	return s, ""
}

type dateParts struct {
	year  int
	month time.Month
	day   int
}

func (d dateParts) date(year int) (time.Time, bool) {
	if d.day < 1 || d.day > 31 || d.month < time.January || d.month > time.December {
		return time.Time{}, false
	}
	t := time.Date(year, d.month, d.day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.day {
		return time.Time{}, false
	}
	return t, true
}

type candidateMatch struct {
	pos   int
	parts dateParts
}

// match finds the earliest date-looking substring of s.
func match(s string) (dateParts, bool) {
	var found []candidateMatch

	if m := isoPattern.FindStringSubmatchIndex(s); m != nil {
		y, _ := strconv.Atoi(s[m[2]:m[3]])
		mo, _ := strconv.Atoi(s[m[4]:m[5]])
		d, _ := strconv.Atoi(s[m[6]:m[7]])
		found = append(found, candidateMatch{m[0], dateParts{y, time.Month(mo), d}})
	}

	if m := numericPattern.FindStringSubmatchIndex(s); m != nil {
		a, _ := strconv.Atoi(s[m[2]:m[3]])
		b, _ := strconv.Atoi(s[m[4]:m[5]])
		y, _ := strconv.Atoi(s[m[6]:m[7]])
		if y < 100 {
			y += 2000
		}
		// Day first unless that cannot be a month/day pair.
		day, month := a, b
		if b > 12 && a <= 12 {
			day, month = b, a
		}
		found = append(found, candidateMatch{m[0], dateParts{y, time.Month(month), day}})
	}

	if m := monthDayPattern.FindStringSubmatchIndex(s); m != nil {
		p := dateParts{month: months[strings.ToLower(s[m[2]:m[3]])]}
		p.day, _ = strconv.Atoi(s[m[4]:m[5]])
		if m[6] >= 0 {
			p.year, _ = strconv.Atoi(s[m[6]:m[7]])
		}
		found = append(found, candidateMatch{m[0], p})
	}

	if m := dayMonthPattern.FindStringSubmatchIndex(s); m != nil {
		p := dateParts{month: months[strings.ToLower(s[m[4]:m[5]])]}
		p.day, _ = strconv.Atoi(s[m[2]:m[3]])
		if m[6] >= 0 {
			p.year, _ = strconv.Atoi(s[m[6]:m[7]])
		}
		found = append(found, candidateMatch{m[0], p})
	}

	if len(found) == 0 {
		return dateParts{}, false
	}
	best := found[0]
	for _, c := range found[1:] {
		if c.pos < best.pos {
			best = c
		}
	}
	return best.parts, true
}

// Fallback is the policy applied when a source gives no usable date.
// The zero value means "today".
type Fallback struct {
	OffsetDays int
}

// Date returns the fallback date relative to now, truncated to UTC midnight.
func (f Fallback) Date(now time.Time) time.Time {
	t := now.AddDate(0, 0, f.OffsetDays)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolveDate parses s and substitutes the fallback when it cannot be parsed.
// It always returns a concrete date.
func ResolveDate(s string, now time.Time, fb Fallback) time.Time {
	if t, ok := ParseDateAt(s, now); ok {
		return t
	}
	return fb.Date(now)
}
