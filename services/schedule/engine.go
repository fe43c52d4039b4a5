package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"detailing/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OccupiedProvider returns the busy intervals of a civil date. *Aggregator implements it.
type OccupiedProvider interface {
	OccupiedForDate(ctx context.Context, date string) []models.OccupiedInterval
}

// monthFetchLimit bounds how many days of a month are aggregated at once.
const monthFetchLimit = 4

// ValidatedSlot is a requested booking time that passed every check.
type ValidatedSlot struct {
	Date            string
	Time24          string
	Label           string
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// Engine answers availability queries and validates booking requests.
type Engine struct {
	rules     Rules
	occupied  OccupiedProvider
	durations DurationLookup
	logger    *zap.Logger
}

func NewEngine(rules Rules, occupied OccupiedProvider, durations DurationLookup, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rules: rules, occupied: occupied, durations: durations, logger: logger}
}

// Rules returns a copy of the engine's business-hours configuration.
func (e *Engine) Rules() Rules { return e.rules }

// ServiceDuration resolves a service title to a duration, falling back to the
// default when the catalog has no usable match.
func (e *Engine) ServiceDuration(ctx context.Context, title string) time.Duration {
	minutes := e.rules.DefaultDuration
	if e.durations != nil && strings.TrimSpace(title) != "" {
		m, found, err := e.durations.DurationByTitle(ctx, title)
		switch {
		case err != nil:
			e.logger.Warn("Service duration lookup failed, using default",
				zap.String("service", title), zap.Error(err))
		case found && m > 0:
			minutes = m
		}
	}
	return time.Duration(minutes) * time.Minute
}

// AvailableSlots lists the free start times on date for an appointment of duration.
// Today and earlier dates are rejected with ErrPastDate; closed days yield no slots.
func (e *Engine) AvailableSlots(ctx context.Context, date string, duration time.Duration, now time.Time) ([]models.CandidateSlot, error) {
	day, err := ParseDate(date, e.rules.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !e.isFutureDay(day, now) {
		return nil, ErrPastDate
	}
	if e.rules.IsClosed(day) {
		return []models.CandidateSlot{}, nil
	}

	occupied := e.occupied.OccupiedForDate(ctx, date)
	slots := GenerateCandidates(e.rules, day, duration, occupied)
	if slots == nil {
		slots = []models.CandidateSlot{}
	}
	return slots, nil
}

// MonthAvailability reports, for every day of the month, whether at least one slot is free.
// Days that are not bookable by policy are reported unavailable without any lookup.
func (e *Engine) MonthAvailability(ctx context.Context, year int, month time.Month, duration time.Duration, now time.Time) ([]models.DayAvailability, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("schedule: invalid month %d", month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, e.rules.Location)
	days := first.AddDate(0, 1, -1).Day()

	result := make([]models.DayAvailability, days)
	var g errgroup.Group
	g.SetLimit(monthFetchLimit)
	for i := 0; i < days; i++ {
		day := first.AddDate(0, 0, i)
		date := day.Format(DateLayout)
		result[i] = models.DayAvailability{Date: date}

		if !e.isFutureDay(day, now) || e.rules.IsClosed(day) {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			occupied := e.occupied.OccupiedForDate(ctx, date)
			free := len(GenerateCandidates(e.rules, day, duration, occupied)) > 0
			result[i].Available = free
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// ValidateRequest is the authoritative check run before a booking is written.
// rawTime may be in any accepted 12h or 24h form.
func (e *Engine) ValidateRequest(ctx context.Context, date, rawTime, serviceTitle string, now time.Time) (*ValidatedSlot, error) {
	day, err := ParseDate(date, e.rules.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}
	time24, ok := NormalizeTime(rawTime)
	if !ok {
		return nil, ErrInvalidTime
	}
	if !e.isFutureDay(day, now) {
		return nil, ErrPastDate
	}
	if e.rules.IsClosed(day) {
		return nil, ErrClosedDay
	}

	start, err := ZonedToUTC(date, time24, e.rules.Location)
	if err != nil {
		return nil, ErrInvalidTime
	}
	duration := e.ServiceDuration(ctx, serviceTitle)
	end := start.Add(duration)
	if start.Before(e.rules.OpenAt(day)) || end.After(e.rules.CloseAt(day)) {
		return nil, ErrOutsideHours
	}

	occupied := e.occupied.OccupiedForDate(ctx, date)
	if hits := Conflicts(start, end, occupied, e.rules.Buffer); len(hits) > 0 {
		return nil, &SlotConflictError{Start: start, End: end, Intervals: hits}
	}

	return &ValidatedSlot{
		Date:            date,
		Time24:          time24,
		Label:           FormatInZone(start, e.rules.Location),
		Start:           start,
		End:             end,
		DurationMinutes: int(duration / time.Minute),
	}, nil
}

// isFutureDay reports whether day is strictly after the civil date of now.
func (e *Engine) isFutureDay(day, now time.Time) bool {
	n := now.In(e.rules.Location)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, e.rules.Location)
	d := day.In(e.rules.Location)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, e.rules.Location).After(today)
}
