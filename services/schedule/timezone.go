package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout   = "2006-01-02"
	Time24Layout = "15:04"
	LabelLayout  = "3:04 PM"
)

var (
	clock24Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	clock12Pattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)$`)
)

// NormalizeTime turns "09:30", "9:30 PM", "9am" or "9 p.m." into a zero-padded
// 24-hour "HH:MM". ok is false when the input is not a valid clock time.
func NormalizeTime(input string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	if s == "" {
		return "", false
	}

	if m := clock12Pattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return "", false
		}
		hour %= 12
		if m[3] == "pm" {
			hour += 12
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}

	if m := clock24Pattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return "", false
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}

	return "", false
}

// LoadLocation resolves a named zone, returning an error for unknown names.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("schedule: empty time zone name")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("schedule: unknown time zone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDate parses a "YYYY-MM-DD" civil date as midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: invalid date %q: %w", date, err)
	}
	return d, nil
}

// ZonedToUTC returns the instant at which the wall clock in loc reads date + time24.
// A wall time skipped by a DST jump resolves the same way time.Date does.
func ZonedToUTC(date, time24 string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse(Time24Layout, time24)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: invalid time %q: %w", time24, err)
	}
	local := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
	return local.UTC(), nil
}

// DayBoundsUTC returns the first and last instant of a civil date in loc.
func DayBoundsUTC(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	return start.UTC(), end.UTC(), nil
}

// FormatInZone renders t as "3:04 PM" civil time in loc.
func FormatInZone(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LabelLayout)
}

// ParseStartTime turns the three historical shapes of a stored booking time into one
// instant. Preference order: normalized 24h value, stored RFC3339 instant, display label.
func ParseStartTime(date, time24, instant, display string, loc *time.Location) (time.Time, error) {
	if t, ok := NormalizeTime(time24); ok {
		return ZonedToUTC(date, t, loc)
	}
	if instant != "" {
		if t, err := time.Parse(time.RFC3339, instant); err == nil {
			return t.UTC(), nil
		}
	}
	if t, ok := NormalizeTime(display); ok {
		return ZonedToUTC(date, t, loc)
	}
	return time.Time{}, fmt.Errorf("schedule: no usable start time for %s (time24=%q instant=%q display=%q)", date, time24, instant, display)
}
