package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caresync-health/clinic-scheduler/internal/config"
	domain "github.com/caresync-health/clinic-scheduler/internal/domain/scheduling"
	"github.com/caresync-health/clinic-scheduler/internal/httperr"
	"github.com/caresync-health/clinic-scheduler/internal/httpresp"
	"github.com/caresync-health/clinic-scheduler/internal/timezone"
	ucScheduling "github.com/caresync-health/clinic-scheduler/internal/usecase/scheduling"
)

// PublicHandler serves the unauthenticated doctor-discovery surface
// the booking wizard reads before the patient signs in.
type PublicHandler struct {
	repo         domain.Repository
	getFreeSlots *ucScheduling.GetFreeSlots
	config       *config.Config
}

func NewPublicHandler(
	repo domain.Repository,
	getFreeSlots *ucScheduling.GetFreeSlots,
	cfg *config.Config,
) *PublicHandler {
	return &PublicHandler{
		repo:         repo,
		getFreeSlots: getFreeSlots,
		config:       cfg,
	}
}

// ListDoctors filters by specialty and virtual capability.
func (h *PublicHandler) ListDoctors(c *gin.Context) {
	filter := domain.DoctorFilter{
		Specialty:   c.Query("specialty"),
		VirtualOnly: c.Query("virtual_only") == "true",
	}

	doctors, err := h.repo.ListDoctors(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Could not list doctors.")
		return
	}

	httpresp.List(c, doctors)
}

// FreeSlots exposes the slot matcher: bookable start times for one
// doctor and date. An empty list is a normal answer.
func (h *PublicHandler) FreeSlots(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_doctor_id", "Invalid doctor id.")
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

	slots, err := h.getFreeSlots.Execute(c.Request.Context(), uint(doctorID), date)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
