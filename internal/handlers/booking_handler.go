package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/httpresp"
	"github.com/caresync-health/clinic-scheduler/internal/middleware"
	"github.com/caresync-health/clinic-scheduler/internal/models"
	ucScheduling "github.com/caresync-health/clinic-scheduler/internal/usecase/scheduling"
)

// BookingHandler is the patient-side surface: submit, list, cancel.
type BookingHandler struct {
	submitBooking *ucScheduling.SubmitBooking
	transition    *ucScheduling.TransitionAppointment
	listMine      *ucScheduling.ListPatientAppointments
}

func NewBookingHandler(
	submitBooking *ucScheduling.SubmitBooking,
	transition *ucScheduling.TransitionAppointment,
	listMine *ucScheduling.ListPatientAppointments,
) *BookingHandler {
	return &BookingHandler{
		submitBooking: submitBooking,
		transition:    transition,
		listMine:      listMine,
	}
}

type SubmitBookingRequest struct {
	Specialty string `json:"specialty"`
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Modality  string `json:"modality"`
	VisitType string `json:"visit_type"`
	Notes     string `json:"notes"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	ap, err := h.submitBooking.Execute(c.Request.Context(), patientID, domain.BookingRequest{
		Specialty: req.Specialty,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Modality:  req.Modality,
		VisitType: req.VisitType,
		Notes:     req.Notes,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *BookingHandler) List(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var statusIn []domain.Status
	if s := c.Query("status"); s != "" {
		status := domain.Status(s)
		if !domain.ValidStatus(status) {
			httperr.BadRequest(c, "invalid_status", "Unknown status filter.")
			return
		}
		statusIn = append(statusIn, status)
	}

	items, err := h.listMine.Execute(c.Request.Context(), patientID, statusIn)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, items)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	actor := domain.Actor{UserID: patientID, Role: models.RolePatient}

	ap, err := h.transition.Execute(c.Request.Context(), actor, uint(id), domain.StatusCancelled)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
