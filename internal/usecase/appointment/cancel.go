package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

type CancelAppointment struct {
	transitioner
}

func NewCancelAppointment(d TransitionDeps) *CancelAppointment {
	return &CancelAppointment{transitioner: newTransitioner(d)}
}

// Execute cancels a pending or confirmed appointment. The customer may cancel
// their own booking; the other side is told about it.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.move(ctx, actorID, appointmentID, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	msg := notification.StatusChanged(ap)
	if actorID == ap.CustomerID {
		msg.UserID = ap.EmployeeID
	}
	uc.notify(ap, msg)

	return ap, nil
}
