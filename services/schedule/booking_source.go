package schedule

import (
	"context"
	"strings"
	"sync"
	"time"

	"detailing/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BookingFinder returns the bookings holding time on a civil date.
type BookingFinder interface {
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
}

// DurationLookup resolves a service title to its duration in minutes.
// found is false when no service matches.
type DurationLookup interface {
	DurationByTitle(ctx context.Context, title string) (minutes int, found bool, err error)
}

// maxDurationLookups bounds concurrent catalog reads per fetch.
const maxDurationLookups = 8

// BookingSource exposes internally stored bookings as a BusySource.
type BookingSource struct {
	Bookings        BookingFinder
	Durations       DurationLookup
	Location        *time.Location
	DefaultDuration int
	Logger          *zap.Logger
}

func (s *BookingSource) Name() string { return models.SourceInternalBooking }

func (s *BookingSource) FetchForDate(ctx context.Context, date string) ([]models.OccupiedInterval, error) {
	bookings, err := s.Bookings.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	durations := s.resolveDurations(ctx, bookings)

	intervals := make([]models.OccupiedInterval, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		start, err := ParseStartTime(b.Date, b.Time24, b.StartUTC, b.Time, s.Location)
		if err != nil {
			s.logger().Warn("Skipping booking with unreadable start time",
				zap.String("bookingID", b.ID), zap.String("date", date), zap.Error(err))
			continue
		}
		minutes := durations[titleKey(b.Service)]
		intervals = append(intervals, models.OccupiedInterval{
			Start:  start,
			End:    start.Add(time.Duration(minutes) * time.Minute),
			Source: models.SourceInternalBooking,
			Title:  b.Service,
			ID:     b.ID,
		})
	}
	return intervals, nil
}

// resolveDurations looks each distinct service title up once, concurrently.
// Misses and lookup failures fall back to the default duration.
func (s *BookingSource) resolveDurations(ctx context.Context, bookings []models.Booking) map[string]int {
	fallback := s.DefaultDuration
	if fallback <= 0 {
		fallback = 60
	}

	titles := make(map[string]string)
	for _, b := range bookings {
		titles[titleKey(b.Service)] = b.Service
	}

	var (
		mu       sync.Mutex
		resolved = make(map[string]int, len(titles))
		g        errgroup.Group
	)
	g.SetLimit(maxDurationLookups)
	for key, title := range titles {
		g.Go(func() error {
			minutes := fallback
			if s.Durations != nil && strings.TrimSpace(title) != "" {
				m, found, err := s.Durations.DurationByTitle(ctx, title)
				switch {
				case err != nil:
					s.logger().Warn("Service duration lookup failed, using default",
						zap.String("service", title), zap.Error(err))
				case found && m > 0:
					minutes = m
				}
			}
			mu.Lock()
			resolved[key] = minutes
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return resolved
}

func (s *BookingSource) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
