package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

// Notifier queues a notification without waiting for delivery.
type Notifier interface {
	Dispatch(msg notification.Message) bool
}

// AuditSink records booking decisions in the background.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID string

	ProviderID  string
	EmployeeID  string
	ServiceName string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	ledger       domain.Ledger
	catalog      domain.Catalog
	availability *GetAvailability
	locker       lock.Locker
	audit        AuditSink
	notifier     Notifier
	metrics      *metrics.Metrics
	log          *zap.Logger
	now          func() time.Time
}

func NewCreateAppointment(
	ledger domain.Ledger,
	catalog domain.Catalog,
	availability *GetAvailability,
	locker lock.Locker,
	audit AuditSink,
	notifier Notifier,
	m *metrics.Metrics,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		ledger:       ledger,
		catalog:      catalog,
		availability: availability,
		locker:       locker,
		audit:        audit,
		notifier:     notifier,
		metrics:      m,
		log:          log,
		now:          availability.cfg.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Caller must be a customer (stored role)
	// --------------------------------------------------
	customer, err := uc.catalog.GetUser(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeCustomerNotFound)
		}
		uc.metrics.Booking(metrics.OutcomeError)
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if !customer.IsCustomer() {
		uc.metrics.Booking(metrics.OutcomeRejected)
		uc.log.Info("booking refused for non-customer",
			zap.String("user_id", customer.ID),
			zap.String("role", customer.Role),
		)
		return nil, domain.ErrRoleNotAllowed
	}

	// --------------------------------------------------
	// 2. Date / time
	// --------------------------------------------------
	day, err := time.Parse(schedule.DateFormat, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}
	startMin, err := schedule.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}
	slot := schedule.FormatClock(startMin)

	// --------------------------------------------------
	// 3. Serialize bookings of this employee-day
	// --------------------------------------------------
	if uc.locker != nil {
		release, err := uc.locker.Acquire(ctx, lock.BookingKey(in.EmployeeID, in.Date))
		if err != nil {
			uc.metrics.Booking(metrics.OutcomeError)
			return nil, fmt.Errorf("booking lock: %w", err)
		}
		defer release()
	}

	// --------------------------------------------------
	// 4. Re-validate against fresh availability
	// --------------------------------------------------
	av, err := uc.availability.compute(ctx, domain.AvailabilityInput{
		ProviderID:  in.ProviderID,
		EmployeeID:  in.EmployeeID,
		ServiceName: in.ServiceName,
		Date:        day,
	})
	if err != nil {
		uc.metrics.Booking(metrics.OutcomeError)
		return nil, err
	}
	if av.service == nil || !av.has(slot) {
		uc.metrics.Booking(metrics.OutcomeUnavailable)
		return nil, domain.ErrSlotTaken
	}

	// --------------------------------------------------
	// 5. Snapshot service, reserve
	// --------------------------------------------------
	now := uc.now().UTC()

	ap := &models.Appointment{
		ID:              uuid.NewString(),
		CustomerID:      customer.ID,
		ProviderID:      av.employee.ShopID(),
		EmployeeID:      av.employee.ID,
		ServiceName:     av.service.Name,
		Date:            in.Date,
		Time:            slot,
		DurationMinutes: av.service.DurationMinutes,
		Price:           av.service.Price,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.ledger.Reserve(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.metrics.Booking(metrics.OutcomeUnavailable)
			return nil, err
		}
		uc.metrics.Booking(metrics.OutcomeError)
		return nil, fmt.Errorf("reserve appointment: %w", err)
	}

	// --------------------------------------------------
	// 6. Side effects
	// --------------------------------------------------
	uc.metrics.Booking(metrics.OutcomeBooked)

	uc.audit.Dispatch(audit.Event{
		ProviderID: ap.ProviderID,
		ActorID:    customer.ID,
		Action:     audit.ActionAppointmentCreated,
		Entity:     "appointment",
		EntityID:   ap.ID,
		Metadata: map[string]any{
			"employee_id": ap.EmployeeID,
			"service":     ap.ServiceName,
			"date":        ap.Date,
			"time":        ap.Time,
		},
	})

	if !uc.notifier.Dispatch(notification.Booked(ap)) {
		uc.log.Warn("booking notification not queued", zap.String("appointment_id", ap.ID))
	}

	return ap, nil
}
