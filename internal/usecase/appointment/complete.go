package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

type CompleteAppointment struct {
	transitioner
}

func NewCompleteAppointment(d TransitionDeps) *CompleteAppointment {
	return &CompleteAppointment{transitioner: newTransitioner(d)}
}

// Execute marks a confirmed appointment as done and asks the customer for a
// review.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.move(ctx, actorID, appointmentID, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	uc.notify(ap, notification.ReviewRequest(ap))
	return ap, nil
}
