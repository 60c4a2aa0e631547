package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync-health/clinic-scheduler/internal/audit"
	"github.com/caresync-health/clinic-scheduler/internal/cache"
	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/models"
	"github.com/caresync-health/clinic-scheduler/internal/notify"
	"github.com/caresync-health/clinic-scheduler/internal/timezone"
)

// ======================================================
// SUBMIT BOOKING — the only path that creates appointments
// ======================================================

type SubmitBooking struct {
	repo   domain.Repository
	cache  *cache.SlotCache
	audit  *audit.Dispatcher
	notify *notify.Dispatcher

	tz   string
	lead time.Duration
	now  func() time.Time
}

func NewSubmitBooking(
	repo domain.Repository,
	slotCache *cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	tz string,
	lead time.Duration,
) *SubmitBooking {
	return &SubmitBooking{
		repo:   repo,
		cache:  slotCache,
		audit:  auditDispatcher,
		notify: notifyDispatcher,
		tz:     tz,
		lead:   lead,
		now:    func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute turns a wizard's collected answers into a persisted
// appointment or a typed rejection. Free slots are recomputed from
// live data here; whatever the UI showed the patient is treated as a
// hint only.
func (uc *SubmitBooking) Execute(
	ctx context.Context,
	patientID uint,
	req domain.BookingRequest,
) (*models.Appointment, error) {

	doc, err := uc.repo.GetDoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(uc.tz, req.Date, req.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	date, err := timezone.ParseDate(uc.tz, req.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	windows, err := uc.repo.ListWindows(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	booked, err := uc.repo.ListBlockingAppointments(ctx, doc.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	now := uc.now()
	free := domain.FreeSlots(windows, booked, date, doc.SlotMinutes, now)

	cmd, err := domain.BuildBookingCommand(doc, req, patientID, start, free, now, uc.lead)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ConfirmationCode: uuid.NewString(),
		PatientID:        cmd.PatientID,
		DoctorID:         cmd.DoctorID,
		StartTime:        cmd.Start,
		EndTime:          cmd.End,
		Modality:         cmd.Modality,
		VisitType:        cmd.VisitType,
		Notes:            cmd.Notes,
		FeeCents:         cmd.FeeCents,
		Status:           string(domain.StatusScheduled),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, domain.CodeSlotUnavailable) {
			// Lost the cross-session race: someone committed this
			// interval between our read and our insert.
			uc.audit.Dispatch(audit.Event{
				ActorID:   &patientID,
				ActorRole: models.RolePatient,
				Action:    "booking_conflict",
				Entity:    "appointment",
				Metadata: map[string]any{
					"doctor_id": doc.ID,
					"start":     cmd.Start,
					"end":       cmd.End,
				},
			})
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, doc.ID, req.Date)

	uc.audit.Dispatch(audit.Event{
		ActorID:   &patientID,
		ActorRole: models.RolePatient,
		Action:    "appointment_booked",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	uc.notify.Dispatch(notify.Message{
		Kind:          notify.KindBookingReceived,
		AppointmentID: ap.ID,
		DoctorID:      ap.DoctorID,
		PatientID:     ap.PatientID,
		Status:        ap.Status,
		StartTime:     ap.StartTime,
	})
	uc.notify.Dispatch(notify.Message{
		Kind:          notify.KindBookingConfirmed,
		AppointmentID: ap.ID,
		DoctorID:      ap.DoctorID,
		PatientID:     ap.PatientID,
		Status:        ap.Status,
		StartTime:     ap.StartTime,
	})

	return ap, nil
}
