package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type WorkingHoursHandler struct {
	getUC    *appointment.GetWorkingHours
	updateUC *appointment.UpdateWorkingHours
	log      *zap.Logger
}

func NewWorkingHoursHandler(
	getUC *appointment.GetWorkingHours,
	updateUC *appointment.UpdateWorkingHours,
	log *zap.Logger,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{getUC: getUC, updateUC: updateUC, log: log}
}

// UpdateWorkingHoursRequest accepts either form of stored hours:
// {"working_hours": "09:00-18:00"} or a per-day object keyed by weekday.
type UpdateWorkingHoursRequest struct {
	WorkingHours schedule.Raw `json:"working_hours"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	week, err := h.getUC.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"working_hours": week})
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req UpdateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	week, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), req.WorkingHours)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"working_hours": week})
}
