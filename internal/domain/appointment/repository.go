package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Ledger is the appointment store. Appointments are never deleted; they only
// move to a terminal status.
type Ledger interface {
	// ListActiveForDay returns pending and confirmed appointments of a
	// barbershop on date ("YYYY-MM-DD"), all employees included.
	ListActiveForDay(
		ctx context.Context,
		providerID string,
		date string,
	) ([]models.Appointment, error)

	// Reserve inserts ap unless an active appointment of the same employee
	// on the same date overlaps it, in which case it returns ErrSlotTaken.
	// The check and the insert are atomic with respect to other Reserve
	// calls.
	Reserve(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// UpdateStatus persists the status and timestamps of ap provided the
	// stored status still equals from; otherwise it returns ErrStaleState.
	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// ListForEmployee returns every appointment of employeeID with
	// fromDate <= date <= toDate, ordered by date and time.
	ListForEmployee(
		ctx context.Context,
		employeeID string,
		fromDate string,
		toDate string,
	) ([]models.Appointment, error)
}

// Catalog reads users and providers (with their services and working hours).
type Catalog interface {
	GetUser(
		ctx context.Context,
		id string,
	) (*models.User, error)

	GetProvider(
		ctx context.Context,
		id string,
	) (*models.Provider, error)

	UpdateWorkingHours(
		ctx context.Context,
		providerID string,
		raw schedule.Raw,
	) error
}
