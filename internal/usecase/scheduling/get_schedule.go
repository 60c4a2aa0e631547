package scheduling

import (
	"context"
	"time"

	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
)

// ScheduleDay is one date's declared working windows, before any
// bookings are subtracted.
type ScheduleDay struct {
	Date    string            `json:"date"`
	Windows []domain.TimeSlot `json:"windows"`
}

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

// Execute returns the doctor's theoretical working windows for each
// date in [from, to], inclusive. Dates outside the working pattern
// yield an empty window list; that is not an error.
func (uc *GetSchedule) Execute(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]ScheduleDay, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}

	windows, err := uc.repo.ListWindows(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	days := []ScheduleDay{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := ScheduleDay{
			Date:    d.Format("2006-01-02"),
			Windows: []domain.TimeSlot{},
		}
		for _, w := range domain.WindowsForDate(windows, d) {
			day.Windows = append(day.Windows, domain.TimeSlot{
				Start: w.StartTime,
				End:   w.EndTime,
			})
		}
		days = append(days, day)
	}

	return days, nil
}
