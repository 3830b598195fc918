package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type ListAppointmentsByMonth struct {
	ledger  domain.Ledger
	catalog domain.Catalog
}

func NewListAppointmentsByMonth(
	ledger domain.Ledger,
	catalog domain.Catalog,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		ledger:  ledger,
		catalog: catalog,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	employeeID string,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 1 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	if _, err := requireStaff(ctx, uc.catalog, employeeID); err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	appointments, err := uc.ledger.ListForEmployee(
		ctx,
		employeeID,
		start.Format(schedule.DateFormat),
		end.Format(schedule.DateFormat),
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(ctx, uc.catalog, appointments), nil
}
