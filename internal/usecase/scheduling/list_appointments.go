package scheduling

import (
	"context"
	"time"

	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/timezone"
)

// AppointmentListItem is the flat projection both consoles render.
type AppointmentListItem struct {
	ID               uint      `json:"id"`
	ConfirmationCode string    `json:"confirmation_code"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	Modality         string    `json:"modality"`
	VisitType        string    `json:"visit_type"`
	Notes            string    `json:"notes"`
	PatientName      string    `json:"patient_name"`
	DoctorName       string    `json:"doctor_name"`
}

// ======================================================
// DOCTOR DAY LIST
// ======================================================

type ListDoctorDay struct {
	repo domain.Repository
	tz   string
}

func NewListDoctorDay(repo domain.Repository, tz string) *ListDoctorDay {
	return &ListDoctorDay{repo: repo, tz: tz}
}

func (uc *ListDoctorDay) Execute(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]AppointmentListItem, error) {

	loc := timezone.Location(uc.tz)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointments(ctx, domain.AppointmentFilter{
		DoctorID: doctorID,
		From:     start,
		To:       end,
	})
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentListItem, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListItem{
			ID:               ap.ID,
			ConfirmationCode: ap.ConfirmationCode,
			StartTime:        ap.StartTime,
			EndTime:          ap.EndTime,
			Status:           ap.Status,
			Modality:         ap.Modality,
			VisitType:        ap.VisitType,
			Notes:            ap.Notes,
			PatientName:      ap.Patient.Name,
			DoctorName:       ap.Doctor.Name,
		})
	}

	return out, nil
}

// ======================================================
// PATIENT LIST
// ======================================================

type ListPatientAppointments struct {
	repo domain.Repository
}

func NewListPatientAppointments(repo domain.Repository) *ListPatientAppointments {
	return &ListPatientAppointments{repo: repo}
}

func (uc *ListPatientAppointments) Execute(
	ctx context.Context,
	patientID uint,
	statusIn []domain.Status,
) ([]AppointmentListItem, error) {

	appointments, err := uc.repo.ListAppointments(ctx, domain.AppointmentFilter{
		PatientID: patientID,
		StatusIn:  statusIn,
	})
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentListItem, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListItem{
			ID:               ap.ID,
			ConfirmationCode: ap.ConfirmationCode,
			StartTime:        ap.StartTime,
			EndTime:          ap.EndTime,
			Status:           ap.Status,
			Modality:         ap.Modality,
			VisitType:        ap.VisitType,
			Notes:            ap.Notes,
			PatientName:      ap.Patient.Name,
			DoctorName:       ap.Doctor.Name,
		})
	}

	return out, nil
}
