package appointment

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const CodeInvalidWorkingHours = "invalid_working_hours"

type GetWorkingHours struct {
	catalog domain.Catalog
	log     *zap.Logger
}

func NewGetWorkingHours(catalog domain.Catalog, log *zap.Logger) *GetWorkingHours {
	return &GetWorkingHours{catalog: catalog, log: log}
}

// Execute returns the resolved seven-day schedule of a provider. Malformed
// stored hours resolve to every day closed.
func (uc *GetWorkingHours) Execute(
	ctx context.Context,
	providerID string,
) (schedule.WeeklySchedule, error) {

	provider, err := uc.catalog.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeEmployeeNotFound)
		}
		return nil, err
	}

	week, err := schedule.Resolve(&provider.WorkingHours)
	if err != nil {
		uc.log.Warn("malformed working hours", zap.String("provider_id", providerID), zap.Error(err))
	}
	return week, nil
}

type UpdateWorkingHours struct {
	catalog domain.Catalog
	audit   AuditSink
}

func NewUpdateWorkingHours(catalog domain.Catalog, audit AuditSink) *UpdateWorkingHours {
	return &UpdateWorkingHours{catalog: catalog, audit: audit}
}

// Execute stores raw as given after checking it resolves cleanly: a legacy
// string must parse, and every map entry must use a known weekday key and
// valid HH:MM bounds on open days.
func (uc *UpdateWorkingHours) Execute(
	ctx context.Context,
	providerID string,
	raw schedule.Raw,
) (schedule.WeeklySchedule, error) {

	if raw.IsEmpty() {
		return nil, httperr.ErrBusiness(CodeInvalidWorkingHours)
	}
	if err := validateWeekly(raw.Weekly); err != nil {
		return nil, err
	}
	week, err := schedule.Resolve(&raw)
	if err != nil {
		return nil, httperr.ErrBusiness(CodeInvalidWorkingHours)
	}

	provider, err := requireStaff(ctx, uc.catalog, providerID)
	if err != nil {
		return nil, err
	}
	if err := uc.catalog.UpdateWorkingHours(ctx, providerID, raw); err != nil {
		return nil, fmt.Errorf("update working hours: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: provider.ShopID(),
		ActorID:    providerID,
		Action:     audit.ActionWorkingHoursUpdated,
		Entity:     "provider",
		EntityID:   providerID,
		Metadata:   raw,
	})

	return week, nil
}

func validateWeekly(w schedule.WeeklySchedule) error {
	for day, hours := range w {
		if !day.IsValid() {
			return httperr.ErrBusiness(CodeInvalidWorkingHours)
		}
		if hours.IsClosed {
			continue
		}

		start, err := schedule.ParseClock(hours.Start)
		if err != nil {
			return httperr.ErrBusiness(CodeInvalidWorkingHours)
		}
		end, err := schedule.ParseClock(hours.End)
		if err != nil || end <= start {
			return httperr.ErrBusiness(CodeInvalidWorkingHours)
		}
	}
	return nil
}
