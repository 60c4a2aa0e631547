package scheduling

import (
	"sort"
	"time"

	"github.com/caresync-health/clinic-scheduler/internal/models"
)

const DefaultSlotMinutes = 30

// TimeSlot is a derived, never-persisted bookable interval, formatted
// as clinic-local "15:04" strings.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// anchorHM pins an "15:04" string onto a calendar date in that date's
// location.
func anchorHM(date time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

// WindowsForDate selects the declared windows that apply to one
// calendar date. Explicit-date rows override the weekday pattern
// entirely: if any row names the date, only those rows count, so a
// single inactive dated row marks a day off. Inactive rows never
// produce bookable time. Result is ordered by start time.
func WindowsForDate(windows []models.AvailabilityWindow, date time.Time) []models.AvailabilityWindow {
	dateStr := date.Format("2006-01-02")
	weekday := int(date.Weekday())

	var dated, weekly []models.AvailabilityWindow
	dateOverridden := false

	for _, w := range windows {
		switch {
		case w.Date == dateStr:
			dateOverridden = true
			if w.Active && w.StartTime != "" && w.EndTime != "" {
				dated = append(dated, w)
			}
		case w.Date == "" && w.Weekday == weekday:
			if w.Active && w.StartTime != "" && w.EndTime != "" {
				weekly = append(weekly, w)
			}
		}
	}

	out := weekly
	if dateOverridden {
		out = dated
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// FreeSlots computes the bookable slots for one doctor and date:
// discretize each applicable window by slotMinutes, drop slots that
// overlap a blocking appointment, drop slots whose start is not in the
// future. Ascending by start; an empty result is a valid outcome, not
// an error.
func FreeSlots(
	windows []models.AvailabilityWindow,
	booked []models.Appointment,
	date time.Time,
	slotMinutes int,
	now time.Time,
) []TimeSlot {

	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	step := time.Duration(slotMinutes) * time.Minute

	slots := []TimeSlot{}

	for _, w := range WindowsForDate(windows, date) {
		winStart := anchorHM(date, w.StartTime)
		winEnd := anchorHM(date, w.EndTime)

		for cur := winStart; !cur.Add(step).After(winEnd); cur = cur.Add(step) {
			slotStart := cur
			slotEnd := cur.Add(step)

			if !slotStart.After(now) {
				continue
			}

			conflict := false
			for _, ap := range booked {
				if slotStart.Before(ap.EndTime) && slotEnd.After(ap.StartTime) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, TimeSlot{
					Start: slotStart.Format("15:04"),
					End:   slotEnd.Format("15:04"),
				})
			}
		}
	}

	return slots
}
