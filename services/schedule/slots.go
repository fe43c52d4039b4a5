package schedule

import (
	"time"

	"detailing/models"
)

// GenerateCandidates lists the start times on day (any instant within the civil date)
// at which an appointment of duration fits inside business hours without touching the
// buffer-padded span of any occupied interval. Results are in chronological order.
func GenerateCandidates(rules Rules, day time.Time, duration time.Duration, occupied []models.OccupiedInterval) []models.CandidateSlot {
	if rules.IsClosed(day) || duration <= 0 || rules.Increment <= 0 {
		return nil
	}

	open := rules.OpenAt(day)
	closing := rules.CloseAt(day)

	var slots []models.CandidateSlot
	for start := open; !start.After(closing); start = start.Add(rules.Increment) {
		end := start.Add(duration)
		if end.After(closing) {
			// Later starts only end later.
			break
		}
		if IsSlotConflicting(start, end, occupied, rules.Buffer) {
			continue
		}
		local := start.In(rules.Location)
		slots = append(slots, models.CandidateSlot{
			Start:  start.UTC(),
			End:    end.UTC(),
			Time24: local.Format(Time24Layout),
			Label:  local.Format(LabelLayout),
		})
	}
	return slots
}

// IsSlotConflicting reports whether [start, end) overlaps any occupied interval
// padded by buffer on both sides. Touching the padded edge is not a conflict.
func IsSlotConflicting(start, end time.Time, occupied []models.OccupiedInterval, buffer time.Duration) bool {
	for _, occ := range occupied {
		if overlaps(start, end, occ, buffer) {
			return true
		}
	}
	return false
}

// Conflicts returns every occupied interval that [start, end) collides with.
func Conflicts(start, end time.Time, occupied []models.OccupiedInterval, buffer time.Duration) []models.OccupiedInterval {
	var hits []models.OccupiedInterval
	for _, occ := range occupied {
		if overlaps(start, end, occ, buffer) {
			hits = append(hits, occ)
		}
	}
	return hits
}

func overlaps(start, end time.Time, occ models.OccupiedInterval, buffer time.Duration) bool {
	return start.Before(occ.End.Add(buffer)) && end.After(occ.Start.Add(-buffer))
}
