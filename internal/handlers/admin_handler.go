package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/caresync-health/clinic-scheduler/internal/config"
	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/httpresp"
	"github.com/caresync-health/clinic-scheduler/internal/middleware"
	"github.com/caresync-health/clinic-scheduler/internal/models"
	"github.com/caresync-health/clinic-scheduler/internal/timezone"
	ucScheduling "github.com/caresync-health/clinic-scheduler/internal/usecase/scheduling"
)

// AdminHandler provisions doctors and oversees every appointment.
type AdminHandler struct {
	db         *gorm.DB
	repo       domain.Repository
	transition *ucScheduling.TransitionAppointment
	config     *config.Config
}

func NewAdminHandler(
	db *gorm.DB,
	repo domain.Repository,
	transition *ucScheduling.TransitionAppointment,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		db:         db,
		repo:       repo,
		transition: transition,
		config:     cfg,
	}
}

// ======================================================
// DOCTOR PROVISIONING
// ======================================================

type CreateDoctorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	Specialties          []string `json:"specialties" binding:"required,min=1"`
	SlotMinutes          int      `json:"slot_minutes"`
	VirtualCapable       bool     `json:"virtual_capable"`
	ConsultationFeeCents int      `json:"consultation_fee_cents"`
}

func (h *AdminHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid doctor data.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "Email already in use.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create account.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleDoctor,
	}
	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create account.")
		return
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}

	doc := models.Doctor{
		UserID:               user.ID,
		Name:                 req.Name,
		SlotMinutes:          slotMinutes,
		VirtualCapable:       req.VirtualCapable,
		ConsultationFeeCents: req.ConsultationFeeCents,
		Active:               true,
	}
	for _, s := range req.Specialties {
		name := strings.TrimSpace(s)
		if name == "" {
			continue
		}
		doc.Specialties = append(doc.Specialties, models.Specialty{Name: name})
	}

	if err := h.repo.CreateDoctor(c.Request.Context(), &doc); err != nil {
		httperr.Internal(c, "failed_to_create_doctor", "Could not create doctor.")
		return
	}

	httpresp.Created(c, doc)
}

// ======================================================
// APPOINTMENT OVERSIGHT
// ======================================================

func (h *AdminHandler) ListAppointments(c *gin.Context) {
	filter := domain.AppointmentFilter{}

	if v := c.Query("doctor_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
			return
		}
		filter.DoctorID = uint(id)
	}

	if v := c.Query("patient_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_patient_id", "Invalid patient id.")
			return
		}
		filter.PatientID = uint(id)
	}

	if v := c.Query("from"); v != "" {
		from, err := timezone.ParseDate(h.config.ClinicTimezone, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid from date.")
			return
		}
		filter.From = from
	}

	if v := c.Query("to"); v != "" {
		to, err := timezone.ParseDate(h.config.ClinicTimezone, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid to date.")
			return
		}
		filter.To = to.AddDate(0, 0, 1)
	}

	if v := c.Query("status"); v != "" {
		status := domain.Status(v)
		if !domain.ValidStatus(status) {
			httperr.BadRequest(c, "invalid_status", "Unknown status filter.")
			return
		}
		filter.StatusIn = []domain.Status{status}
	}

	apps, err := h.repo.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, apps)
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) TransitionAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	to := domain.Status(req.Status)
	if !domain.ValidStatus(to) {
		httperr.BadRequest(c, "invalid_status", "Unknown target status.")
		return
	}

	actor := domain.Actor{UserID: userID, Role: models.RoleAdmin}

	ap, err := h.transition.Execute(c.Request.Context(), actor, uint(id), to)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AUDIT LOGS
// ======================================================

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	q := h.db.Model(&models.AuditLog{})
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := q.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
