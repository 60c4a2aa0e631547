package scheduling

import (
	"strings"
	"time"

	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/models"
)

// Visit durations in minutes. Unknown types fall back to the doctor's
// slot granularity.
var visitDurations = map[string]int{
	"consultation":         30,
	"follow-up":            15,
	"cognitive-assessment": 60,
}

func VisitDurationMinutes(visitType string, fallback int) int {
	if d, ok := visitDurations[strings.ToLower(strings.TrimSpace(visitType))]; ok {
		return d
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultSlotMinutes
}

// BookingRequest is the wizard's collected state before validation.
// Transient; never persisted.
type BookingRequest struct {
	Specialty string `json:"specialty"`
	DoctorID  uint   `json:"doctor_id"`
	Date      string `json:"date"` // 2006-01-02
	Time      string `json:"time"` // 15:04
	Modality  string `json:"modality"`
	VisitType string `json:"visit_type"`
	Notes     string `json:"notes"`
}

// BookingCommand is a validated, immutable order to create one
// appointment. Only the orchestrator turns it into a row.
type BookingCommand struct {
	PatientID uint
	DoctorID  uint
	Start     time.Time
	End       time.Time
	Modality  string
	VisitType string
	Notes     string
	FeeCents  int
}

// OffersSpecialty compares case-insensitively against the doctor's
// declared specialty names.
func OffersSpecialty(doc *models.Doctor, specialty string) bool {
	want := strings.ToLower(strings.TrimSpace(specialty))
	for _, s := range doc.Specialties {
		if strings.ToLower(s.Name) == want {
			return true
		}
	}
	return false
}

// BuildBookingCommand runs the admission checks in order, short-
// circuiting on the first failure:
//
//  1. the doctor offers the requested specialty
//  2. the requested modality is supported
//  3. every granularity sub-slot of [start, start+duration) is among
//     the currently free slots — the authoritative re-check; UI slot
//     lists are hints only
//  4. start is no earlier than now + lead
//
// free must be the live FreeSlots result for the doctor and date.
func BuildBookingCommand(
	doc *models.Doctor,
	req BookingRequest,
	patientID uint,
	start time.Time,
	free []TimeSlot,
	now time.Time,
	lead time.Duration,
) (BookingCommand, error) {

	if req.Specialty != "" && !OffersSpecialty(doc, req.Specialty) {
		return BookingCommand{}, httperr.ErrBusiness(CodeSpecialtyNotOffered)
	}

	modality := req.Modality
	if modality == "" {
		modality = models.ModalityInPerson
	}
	switch modality {
	case models.ModalityInPerson:
	case models.ModalityVirtual:
		if !doc.VirtualCapable {
			return BookingCommand{}, httperr.ErrBusiness(CodeModalityUnsupported)
		}
	default:
		return BookingCommand{}, httperr.ErrBusiness(CodeModalityUnsupported)
	}

	slotMinutes := doc.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	step := time.Duration(slotMinutes) * time.Minute

	duration := time.Duration(VisitDurationMinutes(req.VisitType, slotMinutes)) * time.Minute
	end := start.Add(duration)

	freeStarts := make(map[string]struct{}, len(free))
	for _, s := range free {
		freeStarts[s.Start] = struct{}{}
	}
	// A visit longer than one slot must cover only free sub-slots; this
	// also rejects starts that would overflow the window's end.
	for cur := start; cur.Before(end); cur = cur.Add(step) {
		if _, ok := freeStarts[cur.Format("15:04")]; !ok {
			return BookingCommand{}, httperr.ErrBusiness(CodeSlotUnavailable)
		}
	}

	if start.Before(now.Add(lead)) {
		return BookingCommand{}, httperr.ErrBusiness(CodeLeadTimeViolation)
	}

	return BookingCommand{
		PatientID: patientID,
		DoctorID:  doc.ID,
		Start:     start,
		End:       end,
		Modality:  modality,
		VisitType: req.VisitType,
		Notes:     req.Notes,
		FeeCents:  doc.ConsultationFeeCents,
	}, nil
}
