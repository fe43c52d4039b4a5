package models

import "time"

// CandidateSlot is a bookable start time generated for a given date.
type CandidateSlot struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Time24 string    `json:"time24"` // e.g. "09:30"
	Label  string    `json:"label"`  // e.g. "9:30 AM"
}

// DayAvailability is one cell of the month prefetch used by the date picker.
type DayAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}
