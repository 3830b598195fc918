package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

var businessErrors = map[string]struct {
	status  int
	message string
}{
	domain.CodeInvalidDateOrTime:          {http.StatusBadRequest, "Invalid date or time."},
	ucAppointment.CodeInvalidWorkingHours: {http.StatusBadRequest, "Invalid working hours."},
	domain.CodeRoleNotAllowed:             {http.StatusForbidden, "This account cannot perform this action."},
	domain.CodeNotAssigned:                {http.StatusForbidden, "Appointment belongs to someone else."},
	domain.CodeAppointmentNotFound:        {http.StatusNotFound, "Appointment not found."},
	domain.CodeCustomerNotFound:           {http.StatusNotFound, "Customer not found."},
	domain.CodeEmployeeNotFound:           {http.StatusNotFound, "Employee not found."},
	domain.CodeSlotUnavailable:            {http.StatusConflict, "Slot is no longer available. Please pick another time."},
	domain.CodeInvalidState:               {http.StatusConflict, "Appointment cannot move to this status."},
	domain.CodeAvailabilityUnknown:        {http.StatusServiceUnavailable, "Availability could not be checked. Try again."},
}

// writeError maps use case errors onto the JSON error envelope. Anything
// that is not a known business error is logged and answered with 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	if code := httperr.Code(err); code != "" {
		if e, ok := businessErrors[code]; ok {
			httperr.Write(c, e.status, code, e.message)
			return
		}
		httperr.BadRequest(c, code, code)
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "not_found", "Not found.")
		return
	}

	_ = c.Error(err)
	log.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", "Unexpected error.")
}
