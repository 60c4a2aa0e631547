package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
)

// writeSchedulingError maps business rejections onto HTTP statuses.
// Anything that is not a business error is an opaque storage failure
// and surfaces as a generic 500.
func writeSchedulingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong, try again.")
		return
	}

	switch code {
	case domain.CodeDoctorNotFound:
		httperr.NotFound(c, code, "Doctor not found.")
	case domain.CodeAppointmentNotFound:
		httperr.NotFound(c, code, "Appointment not found.")
	case domain.CodeSlotUnavailable:
		httperr.Conflict(c, code, "That time is no longer available, pick another slot.")
	case domain.CodeTransitionForbidden:
		httperr.Forbidden(c, code, "You are not allowed to make this change.")
	case domain.CodeInvalidTransition:
		httperr.Conflict(c, code, "The appointment is no longer in a state that allows this change.")
	case domain.CodeSpecialtyNotOffered:
		httperr.BadRequest(c, code, "The doctor does not offer this specialty.")
	case domain.CodeModalityUnsupported:
		httperr.BadRequest(c, code, "The doctor does not offer this visit modality.")
	case domain.CodeLeadTimeViolation:
		httperr.BadRequest(c, code, "The selected time is too soon.")
	case domain.CodeNotStartedYet:
		httperr.BadRequest(c, code, "The appointment has not taken place yet.")
	case domain.CodeAlreadyStarted:
		httperr.BadRequest(c, code, "The appointment has already started.")
	default:
		httperr.BadRequest(c, code, "Request rejected.")
	}
}
