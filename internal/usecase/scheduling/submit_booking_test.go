package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/models"
)

// 2025-04-10 is a Thursday.
func bookingDoctor() *models.Doctor {
	return &models.Doctor{
		ID:     1,
		UserID: 9,
		Name:   "Dr. Ada Moreira",
		Specialties: []models.Specialty{
			{DoctorID: 1, Name: "Cardiology"},
		},
		SlotMinutes:          30,
		ConsultationFeeCents: 15000,
		Active:               true,
	}
}

func thursdayMorning() []models.AvailabilityWindow {
	return []models.AvailabilityWindow{
		{DoctorID: 1, Weekday: 4, StartTime: "09:00", EndTime: "12:00", Active: true},
	}
}

func newTestSubmitBooking(repo *fakeRepo, now time.Time) *SubmitBooking {
	uc := NewSubmitBooking(repo, nil, testAuditDispatcher(), testNotifyDispatcher(), "UTC", time.Hour)
	uc.now = func() time.Time { return now }
	return uc
}

func TestSubmitBooking_Success(t *testing.T) {
	var created *models.Appointment
	repo := &fakeRepo{
		getDoctorByID: func(_ context.Context, id uint) (*models.Doctor, error) {
			assert.Equal(t, uint(1), id)
			return bookingDoctor(), nil
		},
		listWindows: func(_ context.Context, _ uint) ([]models.AvailabilityWindow, error) {
			return thursdayMorning(), nil
		},
		listBlockingAppointments: func(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
			return nil, nil
		},
		createAppointment: func(_ context.Context, ap *models.Appointment) error {
			ap.ID = 55
			created = ap
			return nil
		},
	}
	now := time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC)
	uc := newTestSubmitBooking(repo, now)

	ap, err := uc.Execute(context.Background(), 42, domain.BookingRequest{
		Specialty: "Cardiology",
		DoctorID:  1,
		Date:      "2025-04-10",
		Time:      "09:30",
		Modality:  models.ModalityInPerson,
		VisitType: "consultation",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(55), ap.ID)
	assert.Equal(t, uint(42), ap.PatientID)
	assert.Equal(t, uint(1), ap.DoctorID)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.NotEmpty(t, ap.ConfirmationCode)
	assert.Equal(t, time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC), ap.StartTime)
	assert.Equal(t, time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC), ap.EndTime)
	assert.Equal(t, 15000, ap.FeeCents)
}

func TestSubmitBooking_SlotAlreadyTaken(t *testing.T) {
	taken := models.Appointment{
		DoctorID:  1,
		StartTime: time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC),
		Status:    string(domain.StatusScheduled),
	}
	repo := &fakeRepo{
		getDoctorByID: func(_ context.Context, _ uint) (*models.Doctor, error) {
			return bookingDoctor(), nil
		},
		listWindows: func(_ context.Context, _ uint) ([]models.AvailabilityWindow, error) {
			return thursdayMorning(), nil
		},
		listBlockingAppointments: func(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
			return []models.Appointment{taken}, nil
		},
	}
	uc := newTestSubmitBooking(repo, time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), 42, domain.BookingRequest{
		DoctorID:  1,
		Date:      "2025-04-10",
		Time:      "09:00",
		VisitType: "consultation",
	})

	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotUnavailable))
}

func TestSubmitBooking_LosesInsertRace(t *testing.T) {
	repo := &fakeRepo{
		getDoctorByID: func(_ context.Context, _ uint) (*models.Doctor, error) {
			return bookingDoctor(), nil
		},
		listWindows: func(_ context.Context, _ uint) ([]models.AvailabilityWindow, error) {
			return thursdayMorning(), nil
		},
		listBlockingAppointments: func(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
			return nil, nil
		},
		createAppointment: func(_ context.Context, _ *models.Appointment) error {
			// Another session committed the interval between our read
			// and our insert.
			return httperr.ErrBusiness(domain.CodeSlotUnavailable)
		},
	}
	uc := newTestSubmitBooking(repo, time.Date(2025, 4, 9, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), 42, domain.BookingRequest{
		DoctorID:  1,
		Date:      "2025-04-10",
		Time:      "09:00",
		VisitType: "consultation",
	})

	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotUnavailable))
}

func TestSubmitBooking_UnknownDoctor(t *testing.T) {
	repo := &fakeRepo{
		getDoctorByID: func(_ context.Context, _ uint) (*models.Doctor, error) {
			return nil, httperr.ErrBusiness(domain.CodeDoctorNotFound)
		},
	}
	uc := newTestSubmitBooking(repo, time.Now())

	_, err := uc.Execute(context.Background(), 42, domain.BookingRequest{DoctorID: 99})

	assert.True(t, httperr.IsBusiness(err, domain.CodeDoctorNotFound))
}

func TestSubmitBooking_MalformedDate(t *testing.T) {
	repo := &fakeRepo{
		getDoctorByID: func(_ context.Context, _ uint) (*models.Doctor, error) {
			return bookingDoctor(), nil
		},
	}
	uc := newTestSubmitBooking(repo, time.Now())

	_, err := uc.Execute(context.Background(), 42, domain.BookingRequest{
		DoctorID: 1,
		Date:     "10/04/2025",
		Time:     "09:00",
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestSubmitBooking_LeadTimeTooShort(t *testing.T) {
	repo := &fakeRepo{
		getDoctorByID: func(_ context.Context, _ uint) (*models.Doctor, error) {
			return bookingDoctor(), nil
		},
		listWindows: func(_ context.Context, _ uint) ([]models.AvailabilityWindow, error) {
			return thursdayMorning(), nil
		},
		listBlockingAppointments: func(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
			return nil, nil
		},
	}
	// 09:30 booking at 09:00 on the same day with a one-hour lead.
	uc := newTestSubmitBooking(repo, time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), 42, domain.BookingRequest{
		DoctorID:  1,
		Date:      "2025-04-10",
		Time:      "09:30",
		VisitType: "consultation",
	})

	assert.True(t, httperr.IsBusiness(err, domain.CodeLeadTimeViolation))
}
