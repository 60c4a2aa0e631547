package scheduling

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/caresync-health/clinic-scheduler/internal/audit"
	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/models"
	"github.com/caresync-health/clinic-scheduler/internal/notify"
)

// fakeRepo implements domain.Repository with per-method function
// fields. Tests configure only the calls they expect; anything else
// panics and fails the test loudly.
type fakeRepo struct {
	getDoctorByID            func(ctx context.Context, id uint) (*models.Doctor, error)
	getDoctorByUserID        func(ctx context.Context, userID uint) (*models.Doctor, error)
	listDoctors              func(ctx context.Context, filter domain.DoctorFilter) ([]models.Doctor, error)
	createDoctor             func(ctx context.Context, doc *models.Doctor) error
	listWindows              func(ctx context.Context, doctorID uint) ([]models.AvailabilityWindow, error)
	replaceWindows           func(ctx context.Context, doctorID uint, windows []models.AvailabilityWindow) error
	listBlockingAppointments func(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error)
	getAppointment           func(ctx context.Context, id uint) (*models.Appointment, error)
	getAppointmentForPatient func(ctx context.Context, id, patientID uint) (*models.Appointment, error)
	getAppointmentForDoctor  func(ctx context.Context, id, doctorID uint) (*models.Appointment, error)
	listAppointments         func(ctx context.Context, filter domain.AppointmentFilter) ([]models.Appointment, error)
	createAppointment        func(ctx context.Context, ap *models.Appointment) error
	updateAppointment        func(ctx context.Context, ap *models.Appointment) error
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) GetDoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	if f.getDoctorByID == nil {
		panic("fakeRepo: unexpected GetDoctorByID")
	}
	return f.getDoctorByID(ctx, id)
}

func (f *fakeRepo) GetDoctorByUserID(ctx context.Context, userID uint) (*models.Doctor, error) {
	if f.getDoctorByUserID == nil {
		panic("fakeRepo: unexpected GetDoctorByUserID")
	}
	return f.getDoctorByUserID(ctx, userID)
}

func (f *fakeRepo) ListDoctors(ctx context.Context, filter domain.DoctorFilter) ([]models.Doctor, error) {
	if f.listDoctors == nil {
		panic("fakeRepo: unexpected ListDoctors")
	}
	return f.listDoctors(ctx, filter)
}

func (f *fakeRepo) CreateDoctor(ctx context.Context, doc *models.Doctor) error {
	if f.createDoctor == nil {
		panic("fakeRepo: unexpected CreateDoctor")
	}
	return f.createDoctor(ctx, doc)
}

func (f *fakeRepo) ListWindows(ctx context.Context, doctorID uint) ([]models.AvailabilityWindow, error) {
	if f.listWindows == nil {
		panic("fakeRepo: unexpected ListWindows")
	}
	return f.listWindows(ctx, doctorID)
}

func (f *fakeRepo) ReplaceWindows(ctx context.Context, doctorID uint, windows []models.AvailabilityWindow) error {
	if f.replaceWindows == nil {
		panic("fakeRepo: unexpected ReplaceWindows")
	}
	return f.replaceWindows(ctx, doctorID, windows)
}

func (f *fakeRepo) ListBlockingAppointments(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	if f.listBlockingAppointments == nil {
		panic("fakeRepo: unexpected ListBlockingAppointments")
	}
	return f.listBlockingAppointments(ctx, doctorID, dayStart, dayEnd)
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if f.getAppointment == nil {
		panic("fakeRepo: unexpected GetAppointment")
	}
	return f.getAppointment(ctx, id)
}

func (f *fakeRepo) GetAppointmentForPatient(ctx context.Context, id, patientID uint) (*models.Appointment, error) {
	if f.getAppointmentForPatient == nil {
		panic("fakeRepo: unexpected GetAppointmentForPatient")
	}
	return f.getAppointmentForPatient(ctx, id, patientID)
}

func (f *fakeRepo) GetAppointmentForDoctor(ctx context.Context, id, doctorID uint) (*models.Appointment, error) {
	if f.getAppointmentForDoctor == nil {
		panic("fakeRepo: unexpected GetAppointmentForDoctor")
	}
	return f.getAppointmentForDoctor(ctx, id, doctorID)
}

func (f *fakeRepo) ListAppointments(ctx context.Context, filter domain.AppointmentFilter) ([]models.Appointment, error) {
	if f.listAppointments == nil {
		panic("fakeRepo: unexpected ListAppointments")
	}
	return f.listAppointments(ctx, filter)
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.createAppointment == nil {
		panic("fakeRepo: unexpected CreateAppointment")
	}
	return f.createAppointment(ctx, ap)
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.updateAppointment == nil {
		panic("fakeRepo: unexpected UpdateAppointment")
	}
	return f.updateAppointment(ctx, ap)
}

// noopSink satisfies audit.Sink without a database.
type noopSink struct{}

func (noopSink) Log(actorID *uint, actorRole, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func testAuditDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(noopSink{})
}

func testNotifyDispatcher() *notify.Dispatcher {
	return notify.NewDispatcher(notify.NewLogNotifier(zerolog.Nop()))
}
