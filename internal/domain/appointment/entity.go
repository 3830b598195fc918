package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the target status and stamps the matching
// timestamps. It returns the status ap had before the call.
func Transition(ap *models.Appointment, to Status, now time.Time) (Status, error) {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return from, err
	}

	ap.Status = string(to)
	ap.UpdatedAt = now

	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}

	return from, nil
}

// CanAct reports whether actorID may move ap to the target status. Staff
// decisions belong to the assigned employee or the barbershop owner; a
// customer may only cancel their own booking.
func CanAct(ap *models.Appointment, actorID string, to Status) bool {
	if actorID == "" {
		return false
	}
	if actorID == ap.EmployeeID || actorID == ap.ProviderID {
		return true
	}
	return to == StatusCancelled && actorID == ap.CustomerID
}
