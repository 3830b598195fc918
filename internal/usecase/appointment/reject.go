package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

type RejectAppointment struct {
	transitioner
}

func NewRejectAppointment(d TransitionDeps) *RejectAppointment {
	return &RejectAppointment{transitioner: newTransitioner(d)}
}

func (uc *RejectAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.move(ctx, actorID, appointmentID, domain.StatusRejected)
	if err != nil {
		return nil, err
	}

	uc.notify(ap, notification.StatusChanged(ap))
	return ap, nil
}
