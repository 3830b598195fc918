package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Store is everything a storage backend provides.
type Store interface {
	domain.Ledger
	domain.Catalog
	audit.Reader
}

type Dependencies struct {
	Store    Store
	Locker   lock.Locker
	Audit    ucAppointment.AuditSink
	Notifier ucAppointment.Notifier
	Metrics  *metrics.Metrics
	Log      *zap.Logger
	Now      func() time.Time
}

// Notifier and Audit are usually the background dispatchers.
var (
	_ ucAppointment.Notifier  = (*notification.Dispatcher)(nil)
	_ ucAppointment.AuditSink = (*audit.Dispatcher)(nil)
)

func RegisterRoutes(r *gin.Engine, deps Dependencies, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.RequestLogger(deps.Log))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET(cfg.MetricsPath, gin.WrapH(deps.Metrics.Handler()))
	}

	r.GET("/health", handlers.Health)

	store := deps.Store

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		store,
		store,
		ucAppointment.AvailabilityConfig{
			StepMinutes:     cfg.SlotStepMinutes,
			Timeout:         cfg.AvailabilityTimeout,
			DefaultTimezone: cfg.DefaultTimezone,
			Now:             deps.Now,
		},
		deps.Metrics,
		deps.Log,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		store,
		store,
		availabilityUC,
		deps.Locker,
		deps.Audit,
		deps.Notifier,
		deps.Metrics,
		deps.Log,
	)

	transitionDeps := ucAppointment.TransitionDeps{
		Ledger:   store,
		Audit:    deps.Audit,
		Notifier: deps.Notifier,
		Metrics:  deps.Metrics,
		Log:      deps.Log,
		Now:      deps.Now,
	}

	getWorkingHoursUC := ucAppointment.NewGetWorkingHours(store, deps.Log)
	updateWorkingHoursUC := ucAppointment.NewUpdateWorkingHours(store, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(availabilityUC, getWorkingHoursUC, deps.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		ucAppointment.NewConfirmAppointment(transitionDeps),
		ucAppointment.NewRejectAppointment(transitionDeps),
		ucAppointment.NewCompleteAppointment(transitionDeps),
		ucAppointment.NewCancelAppointment(transitionDeps),
		ucAppointment.NewListAppointmentsByDate(store, store),
		ucAppointment.NewListAppointmentsByMonth(store, store),
		deps.Log,
	)

	workingHoursHandler := handlers.NewWorkingHoursHandler(getWorkingHoursUC, updateWorkingHoursUC, deps.Log)
	meHandler := handlers.NewMeHandler(store, deps.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(store, store, deps.Log)

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
			publicAPI.GET("/providers/:providerId/availability", publicHandler.Availability)
			publicAPI.GET("/providers/:providerId/working-hours", publicHandler.WorkingHours)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm())
			secured.PATCH("/appointments/:id/reject", appointmentHandler.Reject())
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete())
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel())

			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
