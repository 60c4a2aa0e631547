package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/models"
)

func TestGetSchedule_RangeWithDayOff(t *testing.T) {
	repo := &fakeRepo{
		getDoctorByID: func(_ context.Context, _ uint) (*models.Doctor, error) {
			return bookingDoctor(), nil
		},
		listWindows: func(_ context.Context, _ uint) ([]models.AvailabilityWindow, error) {
			return []models.AvailabilityWindow{
				// Thursdays, with the 11th (a Friday) explicitly off.
				{DoctorID: 1, Weekday: 4, StartTime: "09:00", EndTime: "12:00", Active: true},
				{DoctorID: 1, Weekday: 5, StartTime: "09:00", EndTime: "12:00", Active: true},
				{DoctorID: 1, Date: "2025-04-11", Active: false},
			}, nil
		},
	}
	uc := NewGetSchedule(repo)

	from := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)

	days, err := uc.Execute(context.Background(), 1, from, to)

	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, "2025-04-10", days[0].Date)
	assert.Equal(t, []domain.TimeSlot{{Start: "09:00", End: "12:00"}}, days[0].Windows)

	assert.Equal(t, "2025-04-11", days[1].Date)
	assert.Empty(t, days[1].Windows)

	assert.Equal(t, "2025-04-12", days[2].Date)
	assert.Empty(t, days[2].Windows)
}

func TestListPatientAppointments_StatusFilterPassedThrough(t *testing.T) {
	repo := &fakeRepo{
		listAppointments: func(_ context.Context, filter domain.AppointmentFilter) ([]models.Appointment, error) {
			assert.Equal(t, uint(42), filter.PatientID)
			assert.Equal(t, []domain.Status{domain.StatusScheduled}, filter.StatusIn)
			return []models.Appointment{{
				ID:        7,
				PatientID: 42,
				DoctorID:  1,
				Status:    string(domain.StatusScheduled),
				Patient:   models.User{Name: "Joana Reis"},
				Doctor:    models.Doctor{Name: "Dr. Ada Moreira"},
			}}, nil
		},
	}
	uc := NewListPatientAppointments(repo)

	items, err := uc.Execute(context.Background(), 42, []domain.Status{domain.StatusScheduled})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Joana Reis", items[0].PatientName)
	assert.Equal(t, "Dr. Ada Moreira", items[0].DoctorName)
}
