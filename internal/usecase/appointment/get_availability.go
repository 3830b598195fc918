package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AvailabilityConfig struct {
	StepMinutes int
	// Timeout bounds the appointment fetch. When it expires the slots are
	// reported as unknown rather than free.
	Timeout time.Duration
	// DefaultTimezone applies to providers without a timezone of their own.
	DefaultTimezone string
	Now             func() time.Time
}

type GetAvailability struct {
	ledger  domain.Ledger
	catalog domain.Catalog
	cfg     AvailabilityConfig
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewGetAvailability(
	ledger domain.Ledger,
	catalog domain.Catalog,
	cfg AvailabilityConfig,
	m *metrics.Metrics,
	log *zap.Logger,
) *GetAvailability {
	if cfg.StepMinutes <= 0 {
		cfg.StepMinutes = domain.DefaultStepMinutes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &GetAvailability{
		ledger:  ledger,
		catalog: catalog,
		cfg:     cfg,
		metrics: m,
		log:     log,
	}
}

// availability is the outcome of one engine run, kept together so booking
// can reuse the employee and service it was computed from.
type availability struct {
	employee *models.Provider
	service  *models.Service
	slots    []string
}

func (a *availability) has(slot string) bool {
	for _, s := range a.slots {
		if s == slot {
			return true
		}
	}
	return false
}

// Execute lists the free start times of a service with one employee on a
// date, in ascending order. Closed days, unknown services and malformed
// working hours produce an empty list. A failed appointment fetch produces
// ErrAvailabilityUnknown.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	av, err := uc.compute(ctx, in)
	if err != nil {
		return nil, err
	}

	uc.metrics.AvailabilityServed(len(av.slots))
	return av.slots, nil
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*availability, error) {

	if in.Date.IsZero() {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	// --------------------------------------------------
	// Employee
	// --------------------------------------------------
	employee, err := uc.catalog.GetProvider(ctx, in.EmployeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeEmployeeNotFound)
		}
		uc.metrics.AvailabilityUnknown()
		return nil, fmt.Errorf("%w: load employee: %v", domain.ErrAvailabilityUnknown, err)
	}
	if !employee.BelongsTo(in.ProviderID) {
		return nil, httperr.ErrBusiness(domain.CodeEmployeeNotFound)
	}

	av := &availability{employee: employee, slots: []string{}}

	// --------------------------------------------------
	// Working hours
	// --------------------------------------------------
	week, err := schedule.Resolve(&employee.WorkingHours)
	if err != nil {
		uc.log.Warn("malformed working hours, treating day as closed",
			zap.String("employee_id", employee.ID),
			zap.Error(err),
		)
	}

	day, ok := week.Day(schedule.WeekdayKey(in.Date))
	if !ok || day.IsClosed {
		return av, nil
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	service, ok := employee.FindService(in.ServiceName)
	if !ok {
		return av, nil
	}
	av.service = service

	candidates := domain.GenerateSlotsStep(day, service.DurationMinutes, uc.cfg.StepMinutes)
	if len(candidates) == 0 {
		return av, nil
	}

	// --------------------------------------------------
	// Existing appointments (fresh read, bounded)
	// --------------------------------------------------
	date := in.Date.Format(schedule.DateFormat)

	fetchCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	existing, err := uc.ledger.ListActiveForDay(fetchCtx, employee.ShopID(), date)
	if err != nil {
		uc.metrics.AvailabilityUnknown()
		uc.log.Error("availability unknown",
			zap.String("provider_id", employee.ShopID()),
			zap.String("employee_id", in.EmployeeID),
			zap.String("date", date),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrAvailabilityUnknown, err)
	}

	free := domain.FilterAvailable(candidates, service.DurationMinutes, existing, employee.ID)
	av.slots = uc.dropPast(free, date, employee.Timezone)

	return av, nil
}

// dropPast removes starts that already passed when date is today in the
// provider's timezone.
func (uc *GetAvailability) dropPast(slots []string, date, tz string) []string {
	now := uc.cfg.Now().In(timezone.Location(tz, uc.cfg.DefaultTimezone))

	today := now.Format(schedule.DateFormat)
	if date > today {
		return slots
	}
	if date < today {
		return []string{}
	}

	minute := now.Hour()*60 + now.Minute()
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		start, err := schedule.ParseClock(s)
		if err != nil || start <= minute {
			continue
		}
		out = append(out, s)
	}
	return out
}
