package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// requireStaff loads the provider record of userID. Users without one are
// customers and get ErrRoleNotAllowed.
func requireStaff(ctx context.Context, catalog domain.Catalog, userID string) (*models.Provider, error) {
	provider, err := catalog.GetProvider(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrRoleNotAllowed
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func toListDTOs(
	ctx context.Context,
	catalog domain.Catalog,
	appointments []models.Appointment,
) []dto.AppointmentListDTO {

	names := map[string]string{}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		name, seen := names[ap.CustomerID]
		if !seen {
			if u, err := catalog.GetUser(ctx, ap.CustomerID); err == nil {
				name = u.Name
			}
			names[ap.CustomerID] = name
		}

		end := ap.Time
		if start, err := schedule.ParseClock(ap.Time); err == nil {
			end = schedule.FormatClock(start + ap.DurationMinutes)
		}

		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			Date:            ap.Date,
			StartTime:       ap.Time,
			EndTime:         end,
			DurationMinutes: ap.DurationMinutes,
			Status:          ap.Status,
			CustomerID:      ap.CustomerID,
			CustomerName:    name,
			ServiceName:     ap.ServiceName,
			Price:           ap.Price,
		})
	}

	return out
}
