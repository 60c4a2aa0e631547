package scheduling

import (
	"time"

	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusMissed    Status = "missed"
)

// allowedTransitions is the whole state machine. Everything not listed
// here is rejected; completed, cancelled and missed are terminal.
var allowedTransitions = map[Status][]Status{
	StatusScheduled: {StatusCompleted, StatusCancelled, StatusMissed},
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusMissed:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	return ValidStatus(s) && len(allowedTransitions[s]) == 0
}

func CanTransition(from, to Status) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Blocking reports whether an appointment in this status still occupies
// its interval for conflict purposes. Only cancellation frees the slot;
// completed/missed appointments happened and keep their time.
func Blocking(s Status) bool {
	return s != StatusCancelled
}

// ===============================
// Actors
// ===============================

// Actor is the resolved identity invoking a transition. UserID is the
// account id; for patients it matches Appointment.PatientID.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) isStaff() bool {
	return a.Role == models.RoleDoctor || a.Role == models.RoleAdmin
}

// ===============================
// Transitions
// ===============================

// Transition applies a status change in place, enforcing the transition
// table plus the role and timing gates:
//
//	scheduled → completed   doctor/admin, after the start time
//	scheduled → missed      doctor/admin, after the start time
//	scheduled → cancelled   owning patient before start, staff any time
//
// Doctor ownership of the appointment is the caller's concern (the
// repository fetch is already scoped per role).
func Transition(ap *models.Appointment, to Status, actor Actor, now time.Time) error {
	if !CanTransition(Status(ap.Status), to) {
		return httperr.ErrBusiness(CodeInvalidTransition)
	}

	switch to {
	case StatusCompleted:
		if !actor.isStaff() {
			return httperr.ErrBusiness(CodeTransitionForbidden)
		}
		if !now.After(ap.StartTime) {
			return httperr.ErrBusiness(CodeNotStartedYet)
		}
		ap.Status = string(StatusCompleted)
		ap.CompletedAt = &now

	case StatusMissed:
		if !actor.isStaff() {
			return httperr.ErrBusiness(CodeTransitionForbidden)
		}
		if !now.After(ap.StartTime) {
			return httperr.ErrBusiness(CodeNotStartedYet)
		}
		ap.Status = string(StatusMissed)
		ap.MissedAt = &now

	case StatusCancelled:
		switch actor.Role {
		case models.RolePatient:
			if actor.UserID != ap.PatientID {
				return httperr.ErrBusiness(CodeTransitionForbidden)
			}
			if !now.Before(ap.StartTime) {
				return httperr.ErrBusiness(CodeAlreadyStarted)
			}
		case models.RoleDoctor, models.RoleAdmin:
			// staff may cancel at any time
		default:
			return httperr.ErrBusiness(CodeTransitionForbidden)
		}
		ap.Status = string(StatusCancelled)
		ap.CancelledAt = &now
		ap.CancelledBy = actor.Role

	default:
		return httperr.ErrBusiness(CodeInvalidTransition)
	}

	return nil
}
