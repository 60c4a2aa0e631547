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

func newTestTransition(repo *fakeRepo, now time.Time) *TransitionAppointment {
	uc := NewTransitionAppointment(repo, nil, testAuditDispatcher(), testNotifyDispatcher(), "UTC")
	uc.now = func() time.Time { return now }
	return uc
}

func pastAppointment(now time.Time) *models.Appointment {
	start := now.Add(-time.Hour)
	return &models.Appointment{
		ID:        7,
		PatientID: 42,
		DoctorID:  1,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    string(domain.StatusScheduled),
	}
}

func TestTransition_DoctorCompletesOwnPastAppointment(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	ap := pastAppointment(now)

	var updated *models.Appointment
	repo := &fakeRepo{
		getDoctorByUserID: func(_ context.Context, userID uint) (*models.Doctor, error) {
			assert.Equal(t, uint(9), userID)
			return &models.Doctor{ID: 1, UserID: 9}, nil
		},
		getAppointmentForDoctor: func(_ context.Context, id, doctorID uint) (*models.Appointment, error) {
			assert.Equal(t, uint(7), id)
			assert.Equal(t, uint(1), doctorID)
			return ap, nil
		},
		updateAppointment: func(_ context.Context, ap *models.Appointment) error {
			updated = ap
			return nil
		},
	}
	uc := newTestTransition(repo, now)
	actor := domain.Actor{UserID: 9, Role: models.RoleDoctor}

	got, err := uc.Execute(context.Background(), actor, 7, domain.StatusCompleted)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	require.NotNil(t, got.CompletedAt)
}

func TestTransition_PatientCancelsOwnFutureBooking(t *testing.T) {
	now := time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC)
	ap := pastAppointment(now)
	ap.StartTime = now.Add(2 * time.Hour)
	ap.EndTime = ap.StartTime.Add(30 * time.Minute)

	repo := &fakeRepo{
		getAppointmentForPatient: func(_ context.Context, id, patientID uint) (*models.Appointment, error) {
			assert.Equal(t, uint(42), patientID)
			return ap, nil
		},
		updateAppointment: func(_ context.Context, _ *models.Appointment) error {
			return nil
		},
	}
	uc := newTestTransition(repo, now)
	actor := domain.Actor{UserID: 42, Role: models.RolePatient}

	got, err := uc.Execute(context.Background(), actor, 7, domain.StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.Equal(t, models.RolePatient, got.CancelledBy)
	require.NotNil(t, got.CancelledAt)
}

func TestTransition_PatientCannotComplete(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	ap := pastAppointment(now)

	repo := &fakeRepo{
		getAppointmentForPatient: func(_ context.Context, _, _ uint) (*models.Appointment, error) {
			return ap, nil
		},
	}
	uc := newTestTransition(repo, now)
	actor := domain.Actor{UserID: 42, Role: models.RolePatient}

	_, err := uc.Execute(context.Background(), actor, 7, domain.StatusCompleted)

	assert.True(t, httperr.IsBusiness(err, domain.CodeTransitionForbidden))
}

func TestTransition_TerminalAppointmentRejected(t *testing.T) {
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	ap := pastAppointment(now)
	ap.Status = string(domain.StatusCancelled)

	repo := &fakeRepo{
		getAppointment: func(_ context.Context, _ uint) (*models.Appointment, error) {
			return ap, nil
		},
	}
	uc := newTestTransition(repo, now)
	actor := domain.Actor{UserID: 1, Role: models.RoleAdmin}

	_, err := uc.Execute(context.Background(), actor, 7, domain.StatusCompleted)

	assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidTransition))
}

func TestTransition_UnknownAppointment(t *testing.T) {
	repo := &fakeRepo{
		getAppointment: func(_ context.Context, _ uint) (*models.Appointment, error) {
			return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
		},
	}
	uc := newTestTransition(repo, time.Now())
	actor := domain.Actor{UserID: 1, Role: models.RoleAdmin}

	_, err := uc.Execute(context.Background(), actor, 999, domain.StatusCancelled)

	assert.True(t, httperr.IsBusiness(err, domain.CodeAppointmentNotFound))
}

func TestTransition_UnknownRoleForbidden(t *testing.T) {
	uc := newTestTransition(&fakeRepo{}, time.Now())
	actor := domain.Actor{UserID: 1, Role: "receptionist"}

	_, err := uc.Execute(context.Background(), actor, 7, domain.StatusCancelled)

	assert.True(t, httperr.IsBusiness(err, domain.CodeTransitionForbidden))
}
