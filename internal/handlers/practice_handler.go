package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caresync-health/clinic-scheduler/internal/config"
	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/httpresp"
	"github.com/caresync-health/clinic-scheduler/internal/middleware"
	"github.com/caresync-health/clinic-scheduler/internal/models"
	"github.com/caresync-health/clinic-scheduler/internal/timezone"
	ucScheduling "github.com/caresync-health/clinic-scheduler/internal/usecase/scheduling"
)

// PracticeHandler is the doctor console: availability windows, the day
// sheet, and status transitions.
type PracticeHandler struct {
	repo        domain.Repository
	getSchedule *ucScheduling.GetSchedule
	listDay     *ucScheduling.ListDoctorDay
	transition  *ucScheduling.TransitionAppointment
	config      *config.Config
}

func NewPracticeHandler(
	repo domain.Repository,
	getSchedule *ucScheduling.GetSchedule,
	listDay *ucScheduling.ListDoctorDay,
	transition *ucScheduling.TransitionAppointment,
	cfg *config.Config,
) *PracticeHandler {
	return &PracticeHandler{
		repo:        repo,
		getSchedule: getSchedule,
		listDay:     listDay,
		transition:  transition,
		config:      cfg,
	}
}

// doctorFromContext resolves the acting doctor's profile from the
// authenticated user id.
func (h *PracticeHandler) doctorFromContext(c *gin.Context) (*models.Doctor, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	doc, err := h.repo.GetDoctorByUserID(c.Request.Context(), userID)
	if err != nil {
		httperr.NotFound(c, "doctor_profile_not_found", "No doctor profile for this account.")
		return nil, false
	}
	return doc, true
}

// ======================================================
// AVAILABILITY WINDOWS
// ======================================================

type AvailabilityWindowConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`
}

type AvailabilityUpdateRequest struct {
	Windows []AvailabilityWindowConfig `json:"windows" binding:"required"`
}

func (h *PracticeHandler) GetAvailability(c *gin.Context) {
	doc, ok := h.doctorFromContext(c)
	if !ok {
		return
	}

	windows, err := h.repo.ListWindows(c.Request.Context(), doc.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Could not load availability.")
		return
	}

	httpresp.OK(c, windows)
}

// UpdateAvailability replaces the doctor's declared windows wholesale;
// the console always submits the full set.
func (h *PracticeHandler) UpdateAvailability(c *gin.Context) {
	doc, ok := h.doctorFromContext(c)
	if !ok {
		return
	}

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid availability data.")
		return
	}

	windows := make([]models.AvailabilityWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		if w.Active && !validWindowTimes(w.StartTime, w.EndTime) {
			httperr.BadRequest(c, "invalid_window_times", "Window times must be HH:mm with start before end.")
			return
		}
		windows = append(windows, models.AvailabilityWindow{
			DoctorID:  doc.ID,
			Weekday:   w.Weekday,
			Date:      w.Date,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Active:    w.Active,
		})
	}

	if err := h.repo.ReplaceWindows(c.Request.Context(), doc.ID, windows); err != nil {
		httperr.Internal(c, "failed_to_save_availability", "Could not save availability.")
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}

func validWindowTimes(start, end string) bool {
	if len(start) != 5 || len(end) != 5 {
		return false
	}
	if _, err := timezone.ParseDateTime("UTC", "2000-01-01", start); err != nil {
		return false
	}
	if _, err := timezone.ParseDateTime("UTC", "2000-01-01", end); err != nil {
		return false
	}
	return start < end
}

// ======================================================
// SCHEDULE (declared windows over a range)
// ======================================================

func (h *PracticeHandler) GetSchedule(c *gin.Context) {
	doc, ok := h.doctorFromContext(c)
	if !ok {
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_range", "from and to dates are required.")
		return
	}

	from, err := timezone.ParseDate(h.config.ClinicTimezone, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid from date.")
		return
	}
	to, err := timezone.ParseDate(h.config.ClinicTimezone, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid to date.")
		return
	}
	if to.Before(from) || to.Sub(from) > 62*24*time.Hour {
		httperr.BadRequest(c, "invalid_range", "Range must be ordered and at most two months.")
		return
	}

	days, err := h.getSchedule.Execute(c.Request.Context(), doc.ID, from, to)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"days": days})
}

// ======================================================
// DAY SHEET
// ======================================================

func (h *PracticeHandler) ListByDate(c *gin.Context) {
	doc, ok := h.doctorFromContext(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := timezone.ParseDate(h.config.ClinicTimezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	items, err := h.listDay.Execute(c.Request.Context(), doc.ID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":         dateStr,
		"appointments": items,
	})
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *PracticeHandler) Complete(c *gin.Context) {
	h.applyTransition(c, domain.StatusCompleted)
}

func (h *PracticeHandler) Missed(c *gin.Context) {
	h.applyTransition(c, domain.StatusMissed)
}

func (h *PracticeHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, domain.StatusCancelled)
}

func (h *PracticeHandler) applyTransition(c *gin.Context, to domain.Status) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	actor := domain.Actor{UserID: userID, Role: models.RoleDoctor}

	ap, err := h.transition.Execute(c.Request.Context(), actor, uint(id), to)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
