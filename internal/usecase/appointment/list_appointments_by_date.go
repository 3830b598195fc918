package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type ListAppointmentsByDate struct {
	ledger  domain.Ledger
	catalog domain.Catalog
}

func NewListAppointmentsByDate(
	ledger domain.Ledger,
	catalog domain.Catalog,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		ledger:  ledger,
		catalog: catalog,
	}
}

// Execute returns the employee's queue for one day, every status included,
// ordered by time.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	employeeID string,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	if _, err := requireStaff(ctx, uc.catalog, employeeID); err != nil {
		return nil, err
	}

	day := date.Format(schedule.DateFormat)

	appointments, err := uc.ledger.ListForEmployee(ctx, employeeID, day, day)
	if err != nil {
		return nil, err
	}

	return toListDTOs(ctx, uc.catalog, appointments), nil
}
