package scheduling

// Business rejection codes. Expected outcomes of validation and
// lifecycle rules; rendered as field-level feedback, never as 500s.
const (
	CodeDoctorNotFound      = "doctor_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeSpecialtyNotOffered = "specialty_not_offered"
	CodeModalityUnsupported = "modality_unsupported"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeLeadTimeViolation   = "lead_time_violation"
	CodeInvalidTransition   = "invalid_transition"
	CodeTransitionForbidden = "transition_forbidden"
	CodeNotStartedYet       = "appointment_not_started"
	CodeAlreadyStarted      = "appointment_already_started"
)
