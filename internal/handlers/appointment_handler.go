package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *appointment.CreateAppointment
	confirmUC  *appointment.ConfirmAppointment
	rejectUC   *appointment.RejectAppointment
	completeUC *appointment.CompleteAppointment
	cancelUC   *appointment.CancelAppointment

	listByDateUC  *appointment.ListAppointmentsByDate
	listByMonthUC *appointment.ListAppointmentsByMonth

	log *zap.Logger
}

func NewAppointmentHandler(
	createUC *appointment.CreateAppointment,
	confirmUC *appointment.ConfirmAppointment,
	rejectUC *appointment.RejectAppointment,
	completeUC *appointment.CompleteAppointment,
	cancelUC *appointment.CancelAppointment,
	listByDateUC *appointment.ListAppointmentsByDate,
	listByMonthUC *appointment.ListAppointmentsByMonth,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		confirmUC:     confirmUC,
		rejectUC:      rejectUC,
		completeUC:    completeUC,
		cancelUC:      cancelUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		log:           log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProviderID  string `json:"provider_id" binding:"required"`
	EmployeeID  string `json:"employee_id"`
	ServiceName string `json:"service" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.EmployeeID == "" {
		req.EmployeeID = req.ProviderID
	}

	ap, err := h.createUC.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		CustomerID:  middleware.UserID(c),
		ProviderID:  req.ProviderID,
		EmployeeID:  req.EmployeeID,
		ServiceName: req.ServiceName,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// STATUS CHANGES
// ======================================================

type transitionFunc func(ctx context.Context, actorID, appointmentID string) (*models.Appointment, error)

func (h *AppointmentHandler) transition(fn transitionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ap, err := fn(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		httpresp.OK(c, ap)
	}
}

func (h *AppointmentHandler) Confirm() gin.HandlerFunc {
	return h.transition(h.confirmUC.Execute)
}

func (h *AppointmentHandler) Reject() gin.HandlerFunc {
	return h.transition(h.rejectUC.Execute)
}

func (h *AppointmentHandler) Complete() gin.HandlerFunc {
	return h.transition(h.completeUC.Execute)
}

func (h *AppointmentHandler) Cancel() gin.HandlerFunc {
	return h.transition(h.cancelUC.Execute)
}

// ======================================================
// LIST (employee queue)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := time.Parse(schedule.DateFormat, dateStr)
	if err != nil {
		httperr.BadRequest(c, domain.CodeInvalidDateOrTime, "Invalid date.")
		return
	}

	employeeID := middleware.UserID(c)
	aps, err := h.listByDateUC.Execute(c.Request.Context(), employeeID, date)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, aps, httpresp.ListMeta{EmployeeID: employeeID, From: dateStr, To: dateStr})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	employeeID := middleware.UserID(c)
	aps, err := h.listByMonthUC.Execute(c.Request.Context(), employeeID, year, month)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	httpresp.List(c, aps, httpresp.ListMeta{
		EmployeeID: employeeID,
		From:       first.Format(schedule.DateFormat),
		To:         first.AddDate(0, 1, -1).Format(schedule.DateFormat),
	})
}
