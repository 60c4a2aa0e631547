package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/caresync-health/clinic-scheduler/internal/audit"
	"github.com/caresync-health/clinic-scheduler/internal/cache"
	"github.com/caresync-health/clinic-scheduler/internal/config"
	"github.com/caresync-health/clinic-scheduler/internal/handlers"
	infraRepo "github.com/caresync-health/clinic-scheduler/internal/infra/repository"
	"github.com/caresync-health/clinic-scheduler/internal/middleware"
	"github.com/caresync-health/clinic-scheduler/internal/models"
	"github.com/caresync-health/clinic-scheduler/internal/notify"
	ucScheduling "github.com/caresync-health/clinic-scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	slotCache := cache.NewSlotCache(rdb, time.Duration(cfg.SlotCacheTTLSeconds)*time.Second)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifier := notify.NewLogNotifier(log.Logger)
	notifyDispatcher := notify.NewDispatcher(notifier)

	lead := time.Duration(cfg.BookingLeadMinutes) * time.Minute

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	getFreeSlotsUC := ucScheduling.NewGetFreeSlots(schedulingRepo, slotCache)

	getScheduleUC := ucScheduling.NewGetSchedule(schedulingRepo)

	submitBookingUC := ucScheduling.NewSubmitBooking(
		schedulingRepo,
		slotCache,
		auditDispatcher,
		notifyDispatcher,
		cfg.ClinicTimezone,
		lead,
	)

	transitionUC := ucScheduling.NewTransitionAppointment(
		schedulingRepo,
		slotCache,
		auditDispatcher,
		notifyDispatcher,
		cfg.ClinicTimezone,
	)

	listDoctorDayUC := ucScheduling.NewListDoctorDay(schedulingRepo, cfg.ClinicTimezone)
	listPatientUC := ucScheduling.NewListPatientAppointments(schedulingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(schedulingRepo, getFreeSlotsUC, cfg)

	bookingHandler := handlers.NewBookingHandler(
		submitBookingUC,
		transitionUC,
		listPatientUC,
	)

	practiceHandler := handlers.NewPracticeHandler(
		schedulingRepo,
		getScheduleUC,
		listDoctorDayUC,
		transitionUC,
		cfg,
	)

	adminHandler := handlers.NewAdminHandler(db, schedulingRepo, transitionUC, cfg)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/doctors", publicHandler.ListDoctors)
			publicAPI.GET("/doctors/:id/slots", publicHandler.FreeSlots)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// PATIENT BOOKINGS
			// ------------------------------
			patient := secured.Group("/me/appointments")
			patient.Use(middleware.RequireRoles(models.RolePatient))
			{
				patient.POST("", bookingHandler.Create)
				patient.GET("", bookingHandler.List)
				patient.PATCH("/:id/cancel", bookingHandler.Cancel)
			}

			// ------------------------------
			// DOCTOR CONSOLE
			// ------------------------------
			practice := secured.Group("/practice")
			practice.Use(middleware.RequireRoles(models.RoleDoctor))
			{
				practice.GET("/availability", practiceHandler.GetAvailability)
				practice.PUT("/availability", practiceHandler.UpdateAvailability)
				practice.GET("/schedule", practiceHandler.GetSchedule)
				practice.GET("/appointments", practiceHandler.ListByDate)
				practice.PATCH("/appointments/:id/complete", practiceHandler.Complete)
				practice.PATCH("/appointments/:id/missed", practiceHandler.Missed)
				practice.PATCH("/appointments/:id/cancel", practiceHandler.Cancel)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				admin.POST("/doctors", adminHandler.CreateDoctor)
				admin.GET("/appointments", adminHandler.ListAppointments)
				admin.PATCH("/appointments/:id/status", adminHandler.TransitionAppointment)
				admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}
}
