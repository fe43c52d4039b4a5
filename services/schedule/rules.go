package schedule

import (
	"fmt"
	"strings"
	"time"

	"detailing/config"
)

// Rules is the business-hours configuration the slot generator works from.
// Treat it as a value: copy it, don't mutate a shared instance.
type Rules struct {
	Location        *time.Location
	OpenMinute      int // minutes after local midnight
	CloseMinute     int
	Increment       time.Duration
	Buffer          time.Duration
	ClosedWeekdays  map[time.Weekday]bool
	DefaultDuration int // minutes, used when a service has no duration
}

// DefaultRules is 08:00-18:00 in 30-minute steps with a 30-minute buffer,
// closed on Sunday and Monday.
func DefaultRules(loc *time.Location) Rules {
	return Rules{
		Location:        loc,
		OpenMinute:      8 * 60,
		CloseMinute:     18 * 60,
		Increment:       30 * time.Minute,
		Buffer:          30 * time.Minute,
		ClosedWeekdays:  map[time.Weekday]bool{time.Sunday: true, time.Monday: true},
		DefaultDuration: 60,
	}
}

// RulesFromConfig builds Rules from the loaded application config.
func RulesFromConfig(cfg config.Config) (Rules, error) {
	loc, err := LoadLocation(cfg.ServiceTimezone)
	if err != nil {
		return Rules{}, err
	}
	rules := DefaultRules(loc)

	if cfg.BusinessOpen != "" {
		if rules.OpenMinute, err = clockMinutes(cfg.BusinessOpen); err != nil {
			return Rules{}, err
		}
	}
	if cfg.BusinessClose != "" {
		if rules.CloseMinute, err = clockMinutes(cfg.BusinessClose); err != nil {
			return Rules{}, err
		}
	}
	if rules.CloseMinute <= rules.OpenMinute {
		return Rules{}, fmt.Errorf("schedule: business close %s must be after open %s", cfg.BusinessClose, cfg.BusinessOpen)
	}
	if cfg.SlotIncrementMin > 0 {
		rules.Increment = time.Duration(cfg.SlotIncrementMin) * time.Minute
	}
	if cfg.BufferMin >= 0 {
		rules.Buffer = time.Duration(cfg.BufferMin) * time.Minute
	}
	if cfg.DefaultDuration > 0 {
		rules.DefaultDuration = cfg.DefaultDuration
	}
	if strings.TrimSpace(cfg.ClosedWeekdays) != "" {
		days, err := ParseWeekdays(cfg.ClosedWeekdays)
		if err != nil {
			return Rules{}, err
		}
		rules.ClosedWeekdays = days
	}
	return rules, nil
}

// ParseWeekdays reads a comma separated list such as "sunday,mon".
// The literal "none" yields an empty set.
func ParseWeekdays(list string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)
	for _, raw := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || name == "none" {
			continue
		}
		matched := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if name == full || name == full[:3] {
				days[d] = true
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("schedule: unknown weekday %q", raw)
		}
	}
	return days, nil
}

// IsClosed reports whether the civil date falls on a closed weekday.
func (r Rules) IsClosed(day time.Time) bool {
	return r.ClosedWeekdays[day.In(r.Location).Weekday()]
}

// OpenAt returns the opening instant of the given civil day.
func (r Rules) OpenAt(day time.Time) time.Time {
	return r.atMinute(day, r.OpenMinute)
}

// CloseAt returns the closing instant of the given civil day.
func (r Rules) CloseAt(day time.Time) time.Time {
	return r.atMinute(day, r.CloseMinute)
}

func (r Rules) atMinute(day time.Time, minute int) time.Time {
	d := day.In(r.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), minute/60, minute%60, 0, 0, r.Location)
}

func clockMinutes(value string) (int, error) {
	t, ok := NormalizeTime(value)
	if !ok {
		return 0, fmt.Errorf("schedule: invalid clock time %q", value)
	}
	parsed, _ := time.Parse(Time24Layout, t)
	return parsed.Hour()*60 + parsed.Minute(), nil
}
