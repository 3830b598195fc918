package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

type ConfirmAppointment struct {
	transitioner
}

func NewConfirmAppointment(d TransitionDeps) *ConfirmAppointment {
	return &ConfirmAppointment{transitioner: newTransitioner(d)}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.move(ctx, actorID, appointmentID, domain.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	uc.notify(ap, notification.StatusChanged(ap))
	return ap, nil
}
