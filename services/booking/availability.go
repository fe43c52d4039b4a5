package booking

import (
	"context"
	"time"

	"detailing/models"
	"detailing/services/schedule"
)

// AvailableSlots lists the free start times on date for the named service.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, date, serviceTitle string) ([]models.CandidateSlot, error) {
	duration := s.Engine.ServiceDuration(ctx, serviceTitle)
	return s.Engine.AvailableSlots(ctx, date, duration, s.now())
}

// MonthAvailability answers the date-picker prefetch for month ("YYYY-MM"), served from
// a short-lived cache when one is configured.
func (s *DefaultBookingService) MonthAvailability(ctx context.Context, month, serviceTitle string) ([]models.DayAvailability, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	loc := s.Engine.Rules().Location
	key := MonthCacheKey(month, s.now().In(loc).Format(schedule.DateLayout), serviceTitle)
	if s.Cache != nil {
		if days, ok := s.Cache.Get(ctx, key); ok {
			return days, nil
		}
	}

	duration := s.Engine.ServiceDuration(ctx, serviceTitle)
	days, err := s.Engine.MonthAvailability(ctx, first.Year(), first.Month(), duration, s.now())
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(ctx, key, days)
	}
	return days, nil
}

func (s *DefaultBookingService) invalidateMonth(ctx context.Context, date string) {
	if s.Cache == nil || len(date) < 7 {
		return
	}
	s.Cache.InvalidateMonth(ctx, date[:7])
}
