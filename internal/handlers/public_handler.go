package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated booking page data.
type PublicHandler struct {
	availability *appointment.GetAvailability
	workingHours *appointment.GetWorkingHours
	log          *zap.Logger
}

func NewPublicHandler(
	availability *appointment.GetAvailability,
	workingHours *appointment.GetWorkingHours,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		workingHours: workingHours,
		log:          log,
	}
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	providerID := c.Param("providerId")
	employeeID := c.Query("employee_id")
	service := c.Query("service")
	dateStr := c.Query("date")

	if employeeID == "" {
		employeeID = providerID
	}
	if service == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Service and date are required.")
		return
	}

	date, err := time.Parse(schedule.DateFormat, dateStr)
	if err != nil {
		httperr.BadRequest(c, domain.CodeInvalidDateOrTime, "Invalid date.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ProviderID:  providerID,
			EmployeeID:  employeeID,
			ServiceName: service,
			Date:        date,
		},
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        dateStr,
		"employee_id": employeeID,
		"service":     service,
		"slots":       slots,
	})
}

////////////////////////////////////////////////////////
// WORKING HOURS
////////////////////////////////////////////////////////

func (h *PublicHandler) WorkingHours(c *gin.Context) {
	providerID := c.Param("providerId")
	employeeID := c.DefaultQuery("employee_id", providerID)

	week, err := h.workingHours.Execute(c.Request.Context(), employeeID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee_id":   employeeID,
		"working_hours": week,
	})
}
