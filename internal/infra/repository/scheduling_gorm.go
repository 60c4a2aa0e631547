package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Doctors
// --------------------------------------------------

func (r *SchedulingGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("Specialties").
		First(&doc, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeDoctorNotFound)
		}
		return nil, err
	}
	return &doc, nil
}

func (r *SchedulingGormRepository) GetDoctorByUserID(
	ctx context.Context,
	userID uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("Specialties").
		Where("user_id = ?", userID).
		First(&doc).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeDoctorNotFound)
		}
		return nil, err
	}
	return &doc, nil
}

func (r *SchedulingGormRepository) ListDoctors(
	ctx context.Context,
	filter domain.DoctorFilter,
) ([]models.Doctor, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Preload("Specialties").
		Where("doctors.active = true")

	if filter.Specialty != "" {
		q = q.
			Joins("JOIN specialties ON specialties.doctor_id = doctors.id").
			Where("LOWER(specialties.name) = ?", strings.ToLower(filter.Specialty)).
			Distinct("doctors.*")
	}

	if filter.VirtualOnly {
		q = q.Where("doctors.virtual_capable = true")
	}

	var doctors []models.Doctor
	if err := q.Order("doctors.name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *SchedulingGormRepository) CreateDoctor(
	ctx context.Context,
	doc *models.Doctor,
) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *SchedulingGormRepository) ListWindows(
	ctx context.Context,
	doctorID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("weekday ASC, date ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *SchedulingGormRepository) ReplaceWindows(
	ctx context.Context,
	doctorID uint,
	windows []models.AvailabilityWindow,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("doctor_id = ?", doctorID).
			Delete(&models.AvailabilityWindow{}).Error; err != nil {
			return err
		}

		if len(windows) == 0 {
			return nil
		}

		for i := range windows {
			windows[i].ID = 0
			windows[i].DoctorID = doctorID
		}
		return tx.Create(&windows).Error
	})
}

// --------------------------------------------------
// Appointments (read)
// --------------------------------------------------

func (r *SchedulingGormRepository) ListBlockingAppointments(
	ctx context.Context,
	doctorID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"doctor_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			doctorID, string(domain.StatusCancelled), dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {
	return r.getAppointment(ctx, "id = ?", id)
}

func (r *SchedulingGormRepository) GetAppointmentForPatient(
	ctx context.Context,
	id uint,
	patientID uint,
) (*models.Appointment, error) {
	return r.getAppointment(ctx, "id = ? AND patient_id = ?", id, patientID)
}

func (r *SchedulingGormRepository) GetAppointmentForDoctor(
	ctx context.Context,
	id uint,
	doctorID uint,
) (*models.Appointment, error) {
	return r.getAppointment(ctx, "id = ? AND doctor_id = ?", id, doctorID)
}

func (r *SchedulingGormRepository) getAppointment(
	ctx context.Context,
	query string,
	args ...any,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		First(&ap).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
		}
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor")

	if filter.DoctorID != 0 {
		q = q.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != 0 {
		q = q.Where("patient_id = ?", filter.PatientID)
	}
	if !filter.From.IsZero() {
		q = q.Where("start_time >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("start_time < ?", filter.To)
	}
	if len(filter.StatusIn) > 0 {
		statuses := make([]string, 0, len(filter.StatusIn))
		for _, s := range filter.StatusIn {
			statuses = append(statuses, string(s))
		}
		q = q.Where("status IN ?", statuses)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointments (write)
// --------------------------------------------------

// CreateAppointment re-checks the interval and inserts in one
// transaction. The FOR UPDATE lock on the doctor's blocking rows
// serializes concurrent submits for the same interval; the loser sees
// the winner's row and fails with slot_unavailable.
func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.DoctorID, string(domain.StatusCancelled), ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(domain.CodeSlotUnavailable)
		}

		return tx.Create(ap).Error
	})
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
