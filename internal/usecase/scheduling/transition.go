package scheduling

import (
	"context"
	"time"

	"github.com/caresync-health/clinic-scheduler/internal/audit"
	"github.com/caresync-health/clinic-scheduler/internal/cache"
	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/models"
	"github.com/caresync-health/clinic-scheduler/internal/notify"
	"github.com/caresync-health/clinic-scheduler/internal/timezone"
)

type TransitionAppointment struct {
	repo   domain.Repository
	cache  *cache.SlotCache
	audit  *audit.Dispatcher
	notify *notify.Dispatcher

	tz  string
	now func() time.Time
}

func NewTransitionAppointment(
	repo domain.Repository,
	slotCache *cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	tz string,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:   repo,
		cache:  slotCache,
		audit:  auditDispatcher,
		notify: notifyDispatcher,
		tz:     tz,
		now:    func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute applies one lifecycle transition on behalf of an actor. The
// fetch is scoped by role, so a doctor can only touch their own
// appointments and a patient their own bookings.
func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	var (
		ap  *models.Appointment
		err error
	)

	switch actor.Role {
	case models.RolePatient:
		ap, err = uc.repo.GetAppointmentForPatient(ctx, appointmentID, actor.UserID)
	case models.RoleDoctor:
		var doc *models.Doctor
		doc, err = uc.repo.GetDoctorByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		ap, err = uc.repo.GetAppointmentForDoctor(ctx, appointmentID, doc.ID)
	case models.RoleAdmin:
		ap, err = uc.repo.GetAppointment(ctx, appointmentID)
	default:
		return nil, httperr.ErrBusiness(domain.CodeTransitionForbidden)
	}
	if err != nil {
		return nil, err
	}

	if err := domain.Transition(ap, to, actor, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Any transition may change what the slot matcher shows (a
	// cancellation frees the interval), so the day's cached list goes.
	day := ap.StartTime.In(timezone.Location(uc.tz)).Format("2006-01-02")
	uc.cache.Invalidate(ctx, ap.DoctorID, day)

	actorID := actor.UserID
	uc.audit.Dispatch(audit.Event{
		ActorID:   &actorID,
		ActorRole: actor.Role,
		Action:    "appointment_" + ap.Status,
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	uc.notify.Dispatch(notify.Message{
		Kind:          notify.KindStatusChanged,
		AppointmentID: ap.ID,
		DoctorID:      ap.DoctorID,
		PatientID:     ap.PatientID,
		Status:        ap.Status,
		StartTime:     ap.StartTime,
	})

	return ap, nil
}
