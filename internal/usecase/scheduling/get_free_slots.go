package scheduling

import (
	"context"
	"time"

	"github.com/caresync-health/clinic-scheduler/internal/cache"
	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
)

type GetFreeSlots struct {
	repo  domain.Repository
	cache *cache.SlotCache
	now   func() time.Time
}

func NewGetFreeSlots(repo domain.Repository, slotCache *cache.SlotCache) *GetFreeSlots {
	return &GetFreeSlots{
		repo:  repo,
		cache: slotCache,
		now:   time.Now,
	}
}

// Execute computes the bookable slots for one doctor and calendar
// date. Cached lists are hints; the booking path recomputes from the
// database regardless.
func (uc *GetFreeSlots) Execute(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]domain.TimeSlot, error) {

	doc, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	dateStr := date.Format("2006-01-02")
	if slots, ok := uc.cache.Get(ctx, doctorID, dateStr); ok {
		return slots, nil
	}

	windows, err := uc.repo.ListWindows(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := uc.repo.ListBlockingAppointments(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := domain.FreeSlots(windows, booked, date, doc.SlotMinutes, uc.now())

	uc.cache.Set(ctx, doctorID, dateStr, slots)

	return slots, nil
}
