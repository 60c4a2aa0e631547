package scheduling

import (
	"context"
	"time"

	"github.com/caresync-health/clinic-scheduler/internal/models"
)

type DoctorFilter struct {
	Specialty   string
	VirtualOnly bool
}

type AppointmentFilter struct {
	DoctorID  uint
	PatientID uint
	From      time.Time
	To        time.Time
	StatusIn  []Status
}

type Repository interface {
	// -------- Doctors --------
	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	GetDoctorByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Doctor, error)

	ListDoctors(
		ctx context.Context,
		filter DoctorFilter,
	) ([]models.Doctor, error)

	CreateDoctor(
		ctx context.Context,
		doc *models.Doctor,
	) error

	// -------- Availability windows --------
	ListWindows(
		ctx context.Context,
		doctorID uint,
	) ([]models.AvailabilityWindow, error)

	ReplaceWindows(
		ctx context.Context,
		doctorID uint,
		windows []models.AvailabilityWindow,
	) error

	// -------- Appointments (read) --------
	// ListBlockingAppointments returns the doctor's non-cancelled
	// appointments whose start falls in [dayStart, dayEnd), ordered
	// ascending.
	ListBlockingAppointments(
		ctx context.Context,
		doctorID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentForPatient(
		ctx context.Context,
		id uint,
		patientID uint,
	) (*models.Appointment, error)

	GetAppointmentForDoctor(
		ctx context.Context,
		id uint,
		doctorID uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter AppointmentFilter,
	) ([]models.Appointment, error)

	// -------- Appointments (write) --------
	// CreateAppointment must re-check the interval against blocking
	// rows atomically with the insert and fail with
	// CodeSlotUnavailable when the race is lost.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
