// Package dates converts between calendar dates and canonical YYYY-MM-DD
// strings using local-midnight semantics.
//
// Strings are never fed to a generic layout parser: a layout parse yields a
// UTC instant, and rendering that instant in a zone west of UTC moves it to
// the previous day. Everything here builds dates with time.Date in the
// caller's location instead.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical wire format for calendar days.
const Layout = "2006-01-02"

// epochYear is used when the year segment is missing or not a number.
const epochYear = 1970

// ParseLocal parses s as a calendar day anchored to local midnight.
// See ParseIn for the fallback rules.
func ParseLocal(s string) time.Time {
	return ParseIn(s, time.Local)
}

// ParseIn splits s on '-' into year, month and day and returns midnight of
// that day in loc. Malformed input is not an error: a missing, invalid or
// zero month or day falls back to 1, a missing or invalid year to 1970.
// Out-of-range components roll over the way time.Date normalizes them.
func ParseIn(s string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	parts := strings.Split(strings.TrimSpace(s), "-")

	year, ok := segment(parts, 0)
	if !ok {
		year = epochYear
	}
	month, ok := segment(parts, 1)
	if !ok || month == 0 {
		month = 1
	}
	day, ok := segment(parts, 2)
	if !ok || day == 0 {
		day = 1
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// segment returns the i-th integer segment; ok is false when it is absent
// or unparsable. Year 0 is a real year, month and day 0 are not.
func segment(parts []string, i int) (n int, ok bool) {
	if i >= len(parts) {
		return 0, false
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToISODate renders t as YYYY-MM-DD in t's own location.
func ToISODate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// FormatHuman renders a YYYY-MM-DD string as "Month Day, Year".
func FormatHuman(s string) string {
	return ParseLocal(s).Format("January 2, 2006")
}

// Today returns the current local calendar day.
func Today() string {
	return ToISODate(time.Now())
}

// AddDays moves s by n calendar days (negative moves back).
func AddDays(s string, n int) string {
	return ToISODate(ParseLocal(s).AddDate(0, 0, n))
}

// MonthDay returns the "MM-DD" part of a YYYY-MM-DD string, the form used
// by month_day ("on this day") queries.
func MonthDay(s string) string {
	t := ParseLocal(s)
	return fmt.Sprintf("%02d-%02d", int(t.Month()), t.Day())
}

// Valid reports whether s is a well-formed YYYY-MM-DD string naming a real
// calendar day.
func Valid(s string) bool {
	if len(s) != len(Layout) || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return ToISODate(ParseLocal(s)) == s
}
